package logger

import (
	"context"
	"testing"
	"time"

	common_models "patient-reports/internal/common/models"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type chanSink struct {
	records chan common_models.Log
}

func (s *chanSink) Insert(_ context.Context, record common_models.Log) error {
	s.records <- record
	return nil
}

func TestDBCore_TeesEntries(t *testing.T) {
	sink := &chanSink{records: make(chan common_models.Log, 4)}
	base, observed := observer.New(zapcore.InfoLevel)
	log := zap.New(NewDBCore(base, NewDBLogWriter(sink, "patient-reports")))

	log.With(zap.String("component", "render")).Warn("Chart has no matching data", zap.String("reportId", "r-1"))
	log.Debug("below level")

	select {
	case rec := <-sink.records:
		if rec.Message != "Chart has no matching data" {
			t.Errorf("message = %q", rec.Message)
		}
		if rec.ReportID != "r-1" || rec.AppId != "patient-reports" {
			t.Errorf("record = %+v", rec)
		}
		if rec.Level != "warn" || rec.LogLevelId != 30 {
			t.Errorf("level = %s/%d", rec.Level, rec.LogLevelId)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("log entry never reached the sink")
	}

	select {
	case rec := <-sink.records:
		t.Errorf("disabled level reached the sink: %+v", rec)
	case <-time.After(50 * time.Millisecond):
	}

	if observed.Len() != 1 {
		t.Errorf("base core saw %d entries, want 1", observed.Len())
	}
	if got := observed.All()[0].ContextMap()["component"]; got != "render" {
		t.Errorf("child fields lost: %v", got)
	}
}

func TestMapLevelToInt(t *testing.T) {
	tests := []struct {
		level zapcore.Level
		want  int
	}{
		{zapcore.DebugLevel, 10},
		{zapcore.InfoLevel, 20},
		{zapcore.WarnLevel, 30},
		{zapcore.ErrorLevel, 40},
		{zapcore.FatalLevel, 50},
		{zapcore.PanicLevel, 20},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			if got := mapLevelToInt(tt.level); got != tt.want {
				t.Errorf("mapLevelToInt(%s) = %d, want %d", tt.level, got, tt.want)
			}
		})
	}
}

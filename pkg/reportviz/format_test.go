package reportviz

import (
	"fmt"
	"math"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFormatter_Format(t *testing.T) {
	f := NewFormatter("en-US")
	day := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "nil", in: nil, want: EmptyCell},
		{name: "true", in: true, want: "Yes"},
		{name: "false", in: false, want: "No"},
		{name: "string", in: "Ann", want: "Ann"},
		{name: "grouped integer", in: 1234567.0, want: "1,234,567"},
		{name: "int", in: 42, want: "42"},
		{name: "fraction rounded", in: 3.14159, want: "3.14"},
		{name: "time", in: day, want: "Mar 5, 2024"},
		{name: "zero time", in: time.Time{}, want: EmptyCell},
		{name: "bson datetime", in: primitive.NewDateTimeFromTime(day), want: "Mar 5, 2024"},
		{name: "list", in: []any{"a", 2.0, nil}, want: "a, 2, " + EmptyCell},
		{name: "object", in: map[string]any{"a": 1.0}, want: `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Format(tt.in); got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatter_Locale(t *testing.T) {
	de := NewFormatter("de-DE")
	if got := de.Number(1234567); got != "1.234.567" {
		t.Errorf("de Number = %q", got)
	}
	if got := de.Format(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)); got != "05.03.2024" {
		t.Errorf("de date = %q", got)
	}

	fallback := NewFormatter("not a locale!")
	if got := fallback.Number(1000); got != "1,000" {
		t.Errorf("fallback Number = %q", got)
	}
}

func TestFormatter_Percent(t *testing.T) {
	if got := NewFormatter("en").Percent(33.333); got != "33.33%" {
		t.Errorf("Percent = %q", got)
	}
}

func TestHumanize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "totalVisits", want: "Total Visits"},
		{in: "new_patients", want: "New Patients"},
		{in: "personalInfo.firstName", want: "Personal Info First Name"},
		{in: "status", want: "Status"},
		{in: "ID", want: "ID"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Humanize(tt.in); got != tt.want {
				t.Errorf("Humanize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestColorForSeries(t *testing.T) {
	if ColorForSeries(0) != ColorForSeries(len(defaultColors)) {
		t.Error("palette must cycle")
	}
	if ColorForSeries(0) == ColorForSeries(1) {
		t.Error("adjacent series must differ")
	}
	for _, index := range []int{-1, -len(defaultColors), math.MinInt, math.MaxInt} {
		if got := ColorForSeries(index); got == "" {
			t.Errorf("ColorForSeries(%d) is empty", index)
		}
	}
	if ColorForSeries(-1) != ColorForSeries(len(defaultColors)-1) {
		t.Error("negative indexes must wrap")
	}
}

func TestMatchLocale(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "en-US", want: "en-US"},
		{in: "de", want: "de-DE"},
		{in: "fr-CH", want: "fr-FR"},
		{in: "es-MX,es;q=0.9", want: "es-ES"},
		{in: "ar-EG", want: "ar"},
		{in: "ja-JP", want: "en-US"},
		{in: "!!", want: "en-US"},
		{in: "", want: "en-US"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := MatchLocale(tt.in); got != tt.want {
				t.Errorf("MatchLocale(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMatchLocale_BoundedOutput(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 500; i++ {
		seen[MatchLocale(fmt.Sprintf("en-x-u%d", i))] = struct{}{}
		seen[MatchLocale(fmt.Sprintf("de-DE-x-k%d", i))] = struct{}{}
	}
	if len(seen) > len(SupportedLocales) {
		t.Errorf("distinct locales = %d, want at most %d", len(seen), len(SupportedLocales))
	}
}

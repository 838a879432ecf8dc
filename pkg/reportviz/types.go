package reportviz

import (
	"errors"
	"fmt"
	"time"
)

type ChartType string

const (
	ChartTypeBar     ChartType = "bar"
	ChartTypeLine    ChartType = "line"
	ChartTypeArea    ChartType = "area"
	ChartTypePie     ChartType = "pie"
	ChartTypeTable   ChartType = "table"
	ChartTypeSummary ChartType = "summary"
	ChartTypeHeatmap ChartType = "heatmap"
	ChartTypeScatter ChartType = "scatter"
)

var chartTypes = []ChartType{
	ChartTypeBar, ChartTypeLine, ChartTypeArea, ChartTypePie,
	ChartTypeTable, ChartTypeSummary, ChartTypeHeatmap, ChartTypeScatter,
}

// Valid reports whether t is one of the declared chart types.
func (t ChartType) Valid() bool {
	for _, ct := range chartTypes {
		if ct == t {
			return true
		}
	}
	return false
}

type ReportType string

const (
	ReportTypePatient ReportType = "patient"
	ReportTypeVisit   ReportType = "visit"
	ReportTypeStatus  ReportType = "status"
	ReportTypeCustom  ReportType = "custom"
	ReportTypeEvent   ReportType = "event"
)

func (t ReportType) Valid() bool {
	switch t {
	case ReportTypePatient, ReportTypeVisit, ReportTypeStatus, ReportTypeCustom, ReportTypeEvent:
		return true
	}
	return false
}

// ChartConfig declares one chart of a saved report. DataField is only a hint used
// to match the chart against the generated data.
type ChartConfig struct {
	Type      ChartType      `json:"type" bson:"type"`
	Title     string         `json:"title" bson:"title"`
	DataField string         `json:"dataField" bson:"data_field"`
	Order     int            `json:"order" bson:"order"`
	Options   map[string]any `json:"options,omitempty" bson:"options,omitempty"`
}

type FilterConfig struct {
	Field    string `json:"field" bson:"field"`
	Operator string `json:"operator" bson:"operator"`
	Value    any    `json:"value" bson:"value"`
}

type FieldConfig struct {
	Field   string `json:"field" bson:"field"`
	Label   string `json:"label" bson:"label"`
	Include bool   `json:"include" bson:"include"`
}

type ReportConfig struct {
	Name        string         `json:"name" bson:"name"`
	Description string         `json:"description" bson:"description"`
	Type        ReportType     `json:"type" bson:"type"`
	Charts      []ChartConfig  `json:"charts" bson:"charts"`
	Filters     []FilterConfig `json:"filters" bson:"filters"`
	Fields      []FieldConfig  `json:"fields" bson:"fields"`
}

// Result is one chart's dataset as returned by report generation. Its shape is
// only known by inspecting its fields. A nil Result means the chart is unresolved.
type Result map[string]any

// Payload is a generated report after normalization.
type Payload struct {
	Config      ReportConfig
	Data        any
	Charts      []any
	GeneratedAt time.Time
}

var ErrPayloadNotObject = errors.New("report payload is not an object")

// ParsePayload reads a normalized payload document. Only a non-object document is
// an error; every missing or malformed field degrades to its zero value.
func ParsePayload(doc any) (*Payload, error) {
	m, ok := asMap(doc)
	if !ok {
		return nil, fmt.Errorf("parse payload: %w (got %T)", ErrPayloadNotObject, doc)
	}

	p := &Payload{Data: m["data"]}
	if cfg, ok := asMap(m["reportConfig"]); ok {
		p.Config = parseReportConfig(cfg)
	}
	if charts, ok := asSlice(m["charts"]); ok {
		p.Charts = charts
	}
	if ts, ok := m["generatedAt"].(time.Time); ok {
		p.GeneratedAt = ts
	}
	return p, nil
}

func parseReportConfig(m map[string]any) ReportConfig {
	cfg := ReportConfig{
		Name:        stringField(m, "name"),
		Description: stringField(m, "description"),
		Type:        ReportType(stringField(m, "type")),
	}
	if charts, ok := asSlice(m["charts"]); ok {
		for _, c := range charts {
			if cm, ok := asMap(c); ok {
				cfg.Charts = append(cfg.Charts, parseChartConfig(cm))
			}
		}
	}
	if filters, ok := asSlice(m["filters"]); ok {
		for _, f := range filters {
			if fm, ok := asMap(f); ok {
				cfg.Filters = append(cfg.Filters, FilterConfig{
					Field:    stringField(fm, "field"),
					Operator: stringField(fm, "operator"),
					Value:    fm["value"],
				})
			}
		}
	}
	if fields, ok := asSlice(m["fields"]); ok {
		for _, f := range fields {
			if fm, ok := asMap(f); ok {
				include, _ := fm["include"].(bool)
				cfg.Fields = append(cfg.Fields, FieldConfig{
					Field:   stringField(fm, "field"),
					Label:   stringField(fm, "label"),
					Include: include,
				})
			}
		}
	}
	return cfg
}

func parseChartConfig(m map[string]any) ChartConfig {
	cc := ChartConfig{
		Type:      ChartType(stringField(m, "type")),
		Title:     stringField(m, "title"),
		DataField: stringField(m, "dataField"),
	}
	if order, ok := toFloat(m["order"]); ok {
		cc.Order = int(order)
	}
	if opts, ok := asMap(m["options"]); ok {
		cc.Options = opts
	}
	return cc
}

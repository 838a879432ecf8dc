package report

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"patient-reports/pkg/reportviz"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidReport     = errors.New("invalid report")
	ErrInvalidReportType = errors.New("invalid report type")
	ErrInvalidChartType  = errors.New("invalid chart type")
	ErrInvalidPayload    = errors.New("invalid report payload")
	ErrChartIndex        = errors.New("chart index out of range")
	ErrImageUnsupported  = errors.New("chart cannot be rendered as an image")
)

// Report is a saved report definition.
type Report struct {
	ID              primitive.ObjectID       `json:"id" bson:"_id,omitempty"`
	Name            string                   `json:"name" bson:"name"`
	Description     string                   `json:"description" bson:"description"`
	Type            reportviz.ReportType     `json:"type" bson:"type"`
	Charts          []reportviz.ChartConfig  `json:"charts" bson:"charts"`
	Filters         []reportviz.FilterConfig `json:"filters" bson:"filters"`
	Fields          []reportviz.FieldConfig  `json:"fields" bson:"fields"`
	LastGeneratedAt *time.Time               `json:"lastGeneratedAt,omitempty" bson:"last_generated_at,omitempty"`
	CreatedBy       string                   `json:"createdBy,omitempty" bson:"created_by,omitempty"`
	CreatedAt       time.Time                `json:"createdAt" bson:"created_at"`
	UpdatedAt       time.Time                `json:"updatedAt" bson:"updated_at"`
}

// Validate checks the definition against the closed report and chart type sets.
func (r *Report) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidReport)
	}
	if !r.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidReportType, r.Type)
	}
	for i, c := range r.Charts {
		if !c.Type.Valid() {
			return fmt.Errorf("%w: chart %d has type %q", ErrInvalidChartType, i+1, c.Type)
		}
	}
	return nil
}

// ConfigDocument is the reportConfig block embedded in generated payloads, keyed
// the way the generator writes it.
func (r *Report) ConfigDocument() bson.M {
	charts := make(bson.A, len(r.Charts))
	for i, c := range r.Charts {
		chart := bson.M{
			"type":      string(c.Type),
			"title":     c.Title,
			"dataField": c.DataField,
			"order":     c.Order,
		}
		if len(c.Options) > 0 {
			chart["options"] = c.Options
		}
		charts[i] = chart
	}
	return bson.M{
		"name":        r.Name,
		"description": r.Description,
		"type":        string(r.Type),
		"charts":      charts,
	}
}

// GeneratedReport is one payload produced by the report generator, stored as
// received so it can be re-rendered later.
type GeneratedReport struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ReportID    primitive.ObjectID `json:"reportId" bson:"report_id"`
	Payload     bson.M             `json:"payload,omitempty" bson:"payload,omitempty"`
	GeneratedAt time.Time          `json:"generatedAt" bson:"generated_at"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
}

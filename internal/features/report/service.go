package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	common_models "patient-reports/internal/common/models"
	"patient-reports/internal/config"
	"patient-reports/internal/features/audit"
	"patient-reports/pkg/reportviz"
	"patient-reports/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const defaultGeneratedLimit = 50

// RenderPublisher pushes freshly rendered reports to live subscribers.
type RenderPublisher interface {
	Publish(topic string, payload any)
}

type ReportService interface {
	CreateReport(ctx context.Context, report *Report) error
	GetReport(ctx context.Context, id string) (*Report, error)
	ListReports(ctx context.Context) ([]Report, error)
	UpdateReport(ctx context.Context, id string, report *Report) error
	DeleteReport(ctx context.Context, id string) error

	SaveGenerated(ctx context.Context, reportID string, body []byte) (*GeneratedReport, error)
	ListGenerated(ctx context.Context, reportID string, limit int64) ([]GeneratedReport, error)
	RenderGenerated(ctx context.Context, generatedID string) (*reportviz.RenderedReport, error)
	RenderLatest(ctx context.Context, reportID string) (*reportviz.RenderedReport, error)
	RenderPayload(ctx context.Context, body []byte) (*reportviz.RenderedReport, error)
	ExportExcel(ctx context.Context, generatedID string) ([]byte, string, error)
	RenderChartImage(ctx context.Context, generatedID string, index int) ([]byte, string, error)
	PurgeGenerated(ctx context.Context, cutoff time.Time) (int64, error)
}

type ReportServiceImpl struct {
	ReportRepo    ReportRepository
	GeneratedRepo GeneratedReportRepository
	AuditService  audit.AuditService
	Publisher     RenderPublisher
	Logger        *zap.Logger

	defaultLocale string
	engines       sync.Map // supported locale -> *reportviz.Engine
}

func NewReportService(
	reportRepo ReportRepository,
	generatedRepo GeneratedReportRepository,
	auditService audit.AuditService,
	publisher RenderPublisher,
	cfg *config.Config,
	logger *zap.Logger,
) ReportService {
	return &ReportServiceImpl{
		ReportRepo:    reportRepo,
		GeneratedRepo: generatedRepo,
		AuditService:  auditService,
		Publisher:     publisher,
		Logger:        logger,
		defaultLocale: cfg.Locale,
	}
}

// engineFor returns the engine for the request's locale, or the configured default.
// Locales are matched onto the supported set first so the cache stays bounded.
func (s *ReportServiceImpl) engineFor(ctx context.Context) *reportviz.Engine {
	locale, _ := ctx.Value(common_models.LocaleKey).(string)
	if locale == "" {
		locale = s.defaultLocale
	}
	locale = reportviz.MatchLocale(locale)
	if e, ok := s.engines.Load(locale); ok {
		return e.(*reportviz.Engine)
	}
	e := reportviz.NewEngine(s.Logger, reportviz.WithFormatter(reportviz.NewFormatter(locale)))
	actual, _ := s.engines.LoadOrStore(locale, e)
	return actual.(*reportviz.Engine)
}

func (s *ReportServiceImpl) CreateReport(ctx context.Context, report *Report) error {
	if err := report.Validate(); err != nil {
		return err
	}
	if report.ID.IsZero() {
		report.ID = primitive.NewObjectID()
	}
	if claims, ok := utils.ClaimsFromContext(ctx); ok {
		report.CreatedBy = claims.UserID
	}
	report.LastGeneratedAt = nil

	if err := s.ReportRepo.Create(ctx, report); err != nil {
		return err
	}
	_ = s.AuditService.LogChange(ctx, common_models.AuditActionCreate, "reports", report.ID.Hex(), map[string]common_models.Change{
		"report": {New: report},
	})
	return nil
}

func (s *ReportServiceImpl) GetReport(ctx context.Context, id string) (*Report, error) {
	return s.ReportRepo.Get(ctx, id)
}

func (s *ReportServiceImpl) ListReports(ctx context.Context) ([]Report, error) {
	return s.ReportRepo.List(ctx)
}

func (s *ReportServiceImpl) UpdateReport(ctx context.Context, id string, report *Report) error {
	if err := report.Validate(); err != nil {
		return err
	}
	oldReport, err := s.GetReport(ctx, id)
	if err != nil {
		return err
	}
	if err := s.ReportRepo.Update(ctx, id, report); err != nil {
		return err
	}
	report.ID = oldReport.ID
	report.CreatedAt = oldReport.CreatedAt
	report.CreatedBy = oldReport.CreatedBy
	report.LastGeneratedAt = oldReport.LastGeneratedAt

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionUpdate, "reports", id, map[string]common_models.Change{
		"report": {Old: oldReport, New: report},
	})
	return nil
}

// DeleteReport removes the definition and every payload generated for it.
func (s *ReportServiceImpl) DeleteReport(ctx context.Context, id string) error {
	oldReport, err := s.GetReport(ctx, id)
	if err != nil {
		return err
	}
	if err := s.ReportRepo.Delete(ctx, id); err != nil {
		return err
	}
	removed, err := s.GeneratedRepo.DeleteByReport(ctx, oldReport.ID)
	if err != nil {
		s.Logger.Warn("Failed to delete generated payloads", zap.String("reportId", id), zap.Error(err))
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionDelete, "reports", id, map[string]common_models.Change{
		"report":    {Old: oldReport, New: "DELETED"},
		"generated": {Old: removed, New: 0},
	})
	return nil
}

// SaveGenerated stores a payload produced by the report generator for reportID and
// pushes its rendering to live subscribers. A payload without its own
// reportConfig is rendered against the saved definition.
func (s *ReportServiceImpl) SaveGenerated(ctx context.Context, reportID string, body []byte) (*GeneratedReport, error) {
	report, err := s.GetReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	doc, err := decodePayload(body)
	if err != nil {
		return nil, err
	}
	if _, ok := doc["reportConfig"]; !ok {
		doc["reportConfig"] = report.ConfigDocument()
	}

	rendered, err := s.engineFor(ctx).Render(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	generatedAt := rendered.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now().UTC()
	}
	gen := &GeneratedReport{
		ReportID:    report.ID,
		Payload:     doc,
		GeneratedAt: generatedAt,
	}
	if err := s.GeneratedRepo.Create(ctx, gen); err != nil {
		return nil, err
	}
	if err := s.ReportRepo.SetLastGenerated(ctx, report.ID, generatedAt); err != nil {
		s.Logger.Warn("Failed to stamp lastGeneratedAt", zap.String("reportId", reportID), zap.Error(err))
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionGenerate, "generated_reports", gen.ID.Hex(), map[string]common_models.Change{
		"report_id": {New: reportID},
	})
	s.Logger.Info("Generated report stored",
		zap.String("reportId", reportID),
		zap.String("generatedId", gen.ID.Hex()),
		zap.Int("charts", len(rendered.Charts)))

	if s.Publisher != nil {
		s.Publisher.Publish(reportID, newGeneratedEvent(gen, rendered))
	}
	return gen, nil
}

func (s *ReportServiceImpl) ListGenerated(ctx context.Context, reportID string, limit int64) ([]GeneratedReport, error) {
	report, err := s.GetReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultGeneratedLimit
	}
	return s.GeneratedRepo.ListByReport(ctx, report.ID, limit)
}

func (s *ReportServiceImpl) RenderGenerated(ctx context.Context, generatedID string) (*reportviz.RenderedReport, error) {
	gen, err := s.GeneratedRepo.Get(ctx, generatedID)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, gen)
}

func (s *ReportServiceImpl) RenderLatest(ctx context.Context, reportID string) (*reportviz.RenderedReport, error) {
	report, err := s.GetReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	gen, err := s.GeneratedRepo.Latest(ctx, report.ID)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, gen)
}

// RenderPayload renders a payload without storing it.
func (s *ReportServiceImpl) RenderPayload(ctx context.Context, body []byte) (*reportviz.RenderedReport, error) {
	doc, err := decodePayload(body)
	if err != nil {
		return nil, err
	}
	rendered, err := s.engineFor(ctx).Render(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return rendered, nil
}

func (s *ReportServiceImpl) ExportExcel(ctx context.Context, generatedID string) ([]byte, string, error) {
	rendered, err := s.RenderGenerated(ctx, generatedID)
	if err != nil {
		return nil, "", err
	}
	data, err := BuildWorkbook(rendered)
	if err != nil {
		return nil, "", err
	}
	return data, exportFilename(rendered, "", "xlsx"), nil
}

func (s *ReportServiceImpl) RenderChartImage(ctx context.Context, generatedID string, index int) ([]byte, string, error) {
	rendered, err := s.RenderGenerated(ctx, generatedID)
	if err != nil {
		return nil, "", err
	}
	if index < 0 || index >= len(rendered.Charts) {
		return nil, "", fmt.Errorf("%w: %d of %d", ErrChartIndex, index, len(rendered.Charts))
	}
	data, err := ChartPNG(rendered.Charts[index])
	if err != nil {
		return nil, "", err
	}
	return data, exportFilename(rendered, fmt.Sprintf("chart-%d", index+1), "png"), nil
}

// PurgeGenerated deletes payloads generated before cutoff.
func (s *ReportServiceImpl) PurgeGenerated(ctx context.Context, cutoff time.Time) (int64, error) {
	removed, err := s.GeneratedRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		_ = s.AuditService.LogChange(ctx, common_models.AuditActionPurge, "generated_reports", "", map[string]common_models.Change{
			"cutoff":  {New: cutoff},
			"removed": {New: removed},
		})
	}
	s.Logger.Info("Purged generated reports", zap.Int64("removed", removed), zap.Time("cutoff", cutoff))
	return removed, nil
}

func (s *ReportServiceImpl) render(ctx context.Context, gen *GeneratedReport) (*reportviz.RenderedReport, error) {
	rendered, err := s.engineFor(ctx).Render(gen.Payload)
	if err != nil {
		return nil, fmt.Errorf("render generated report %s: %w", gen.ID.Hex(), err)
	}
	if rendered.GeneratedAt.IsZero() {
		rendered.GeneratedAt = gen.GeneratedAt
	}
	return rendered, nil
}

// decodePayload reads a generator payload. Extended JSON wrappers are decoded
// into bson primitives when the whole document is valid extended JSON; otherwise
// the plain JSON object is kept as is and normalized at render time.
func decodePayload(body []byte) (bson.M, error) {
	var doc bson.M
	if err := bson.UnmarshalExtJSON(body, false, &doc); err == nil && doc != nil {
		return doc, nil
	}
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: payload is not an object", ErrInvalidPayload)
	}
	return bson.M(raw), nil
}

// GeneratedEvent is what live subscribers receive when a report is generated.
type GeneratedEvent struct {
	Type        string                    `json:"type"`
	GeneratedID string                    `json:"generatedId"`
	ReportID    string                    `json:"reportId"`
	Report      *reportviz.RenderedReport `json:"report"`
}

func newGeneratedEvent(gen *GeneratedReport, rendered *reportviz.RenderedReport) GeneratedEvent {
	return GeneratedEvent{
		Type:        "report.generated",
		GeneratedID: gen.ID.Hex(),
		ReportID:    gen.ReportID.Hex(),
		Report:      rendered,
	}
}

func exportFilename(rendered *reportviz.RenderedReport, label, ext string) string {
	name := utils.Slugify(rendered.Name)
	if name == "" {
		name = "report"
	}
	stamp := rendered.GeneratedAt
	if stamp.IsZero() {
		stamp = time.Now()
	}
	base := fmt.Sprintf("%s_%s", name, stamp.UTC().Format("20060102_150405"))
	if label != "" {
		base += "_" + label
	}
	return base + "." + ext
}

// IsClientError reports whether err comes from bad input rather than a failure.
func IsClientError(err error) bool {
	for _, target := range []error{ErrInvalidReport, ErrInvalidReportType, ErrInvalidChartType, ErrInvalidPayload, ErrChartIndex, ErrImageUnsupported} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

package reportviz

import (
	"fmt"

	"patient-reports/pkg/normalize"

	"go.uber.org/zap"
)

// Engine renders generated report payloads: normalize, resolve, dispatch.
type Engine struct {
	normalizer *normalize.Normalizer
	dispatcher *Dispatcher
	strategies []Strategy
	logger     *zap.Logger
}

type Option func(*Engine)

// WithStrategies replaces the resolver strategy list.
func WithStrategies(strategies ...Strategy) Option {
	return func(e *Engine) { e.strategies = strategies }
}

func WithFormatter(f *Formatter) Option {
	return func(e *Engine) { e.dispatcher = NewDispatcher(f) }
}

func NewEngine(logger *zap.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		normalizer: normalize.NewNormalizer(logger, normalize.DefaultRules()),
		dispatcher: NewDispatcher(nil),
		strategies: DefaultStrategies(),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Render renders every declared chart of doc. Only a document that is not an
// object fails; each chart otherwise renders or degrades on its own.
func (e *Engine) Render(doc any) (*RenderedReport, error) {
	payload, err := ParsePayload(e.normalizer.Normalize(doc))
	if err != nil {
		return nil, err
	}

	charts := payload.Config.Charts
	if len(charts) == 0 {
		charts = implicitCharts(payload)
	}
	results := ResolveWith(e.strategies, charts, payload)

	report := &RenderedReport{
		Name:        payload.Config.Name,
		Description: payload.Config.Description,
		Type:        payload.Config.Type,
		GeneratedAt: payload.GeneratedAt,
		Charts:      make([]RenderSpec, len(charts)),
	}
	for i, cfg := range charts {
		if results[i] == nil {
			e.logger.Info("Chart has no matching data",
				zap.Int("index", i),
				zap.String("dataField", cfg.DataField),
				zap.String("report", payload.Config.Name))
		}
		report.Charts[i] = e.renderChart(results[i], cfg, i)
	}
	return report, nil
}

// renderChart renders a single chart, isolating any failure to that chart.
func (e *Engine) renderChart(r Result, cfg ChartConfig, index int) (spec RenderSpec) {
	defer func() {
		if rec := recover(); rec != nil {
			e.logger.Error("Chart renderer failed",
				zap.Int("index", index),
				zap.String("type", string(cfg.Type)),
				zap.Any("panic", rec))
			spec = RenderSpec{
				Kind:      KindError,
				Index:     index,
				Title:     cfg.Title,
				ChartType: cfg.Type,
				Message:   fmt.Sprintf("Chart %d could not be rendered", index+1),
			}
		}
	}()
	return e.dispatcher.Render(r, cfg.Type, index, cfg.Title)
}

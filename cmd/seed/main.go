package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"patient-reports/internal/config"
	"patient-reports/internal/database"
	"patient-reports/internal/features/audit"
	"patient-reports/internal/features/report"
	"patient-reports/internal/features/system"
	"patient-reports/internal/logger"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

//go:embed data/reports.json
var seedData []byte

type seedReport struct {
	Report   report.Report     `json:"report"`
	Payloads []json.RawMessage `json:"payloads"`
}

// Seed stores the demo report definitions, skipping names that already exist,
// and feeds each one its sample generator payloads.
func Seed(lc fx.Lifecycle, reportService report.ReportService, logger *zap.Logger, shutdowner fx.Shutdowner) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer func() {
					if err := shutdowner.Shutdown(); err != nil {
						logger.Error("Failed to shutdown", zap.Error(err))
					}
				}()

				if err := seed(context.Background(), reportService, logger); err != nil {
					logger.Error("Seeding failed", zap.Error(err))
					return
				}
				logger.Info("Seeding complete")
			}()
			return nil
		},
	})
}

func seed(ctx context.Context, reportService report.ReportService, logger *zap.Logger) error {
	var seeds []seedReport
	if err := json.Unmarshal(seedData, &seeds); err != nil {
		return fmt.Errorf("read seed data: %w", err)
	}

	existing, err := reportService.ListReports(ctx)
	if err != nil {
		return err
	}
	names := make(map[string]bool, len(existing))
	for _, r := range existing {
		names[r.Name] = true
	}

	for i := range seeds {
		def := &seeds[i].Report
		if names[def.Name] {
			logger.Info("Report exists, skipping", zap.String("report", def.Name))
			continue
		}
		if err := reportService.CreateReport(ctx, def); err != nil {
			return fmt.Errorf("create %q: %w", def.Name, err)
		}
		for _, payload := range seeds[i].Payloads {
			gen, err := reportService.SaveGenerated(ctx, def.ID.Hex(), payload)
			if err != nil {
				return fmt.Errorf("generate %q: %w", def.Name, err)
			}
			logger.Info("Generated report seeded",
				zap.String("report", def.Name),
				zap.String("reportId", def.ID.Hex()),
				zap.String("generatedId", gen.ID.Hex()))
		}
	}
	return nil
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			database.NewDatabase,
			audit.NewAuditRepository,
			audit.NewAuditService,
			report.NewReportRepository,
			report.NewGeneratedReportRepository,
			system.NewReportHub,
			func(h *system.ReportHub) report.RenderPublisher { return h },
			report.NewReportService,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(Seed),
	)

	app.Run()
}

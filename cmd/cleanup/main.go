// Package main deletes old generated report payloads outside the scheduled
// retention sweep.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"patient-reports/internal/config"
	"patient-reports/internal/database"
	"patient-reports/internal/features/report"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	days   int
	dryRun bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete generated report payloads older than a number of days",
		RunE:  run,
	}

	rootCmd.Flags().IntVar(&days, "days", 0, "Age in days; defaults to RETENTION_DAYS")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Only count matching payloads")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if days == 0 {
		days = cfg.RetentionDays
	}
	if days <= 0 {
		return fmt.Errorf("--days must be positive, got %d", days)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return fmt.Errorf("connect to MongoDB: %w", err)
	}
	defer client.Disconnect(ctx)

	db := &database.MongodbDB{DB: client.Database(cfg.DBName)}
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	if dryRun {
		n, err := db.DB.Collection("generated_reports").CountDocuments(ctx, bson.M{"generated_at": bson.M{"$lt": cutoff}})
		if err != nil {
			return fmt.Errorf("count payloads: %w", err)
		}
		cmd.Printf("%d generated payloads older than %s\n", n, cutoff.Format(time.RFC3339))
		return nil
	}

	removed, err := report.NewGeneratedReportRepository(db).DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("delete payloads: %w", err)
	}
	cmd.Printf("Deleted %d generated payloads older than %s\n", removed, cutoff.Format(time.RFC3339))
	return nil
}

package cron_feature

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const RetentionJobName = "generated-report-retention"

type RunStatus string

const (
	RunStatusRunning RunStatus = "running"
	RunStatusSuccess RunStatus = "success"
	RunStatusFailed  RunStatus = "failed"
)

// JobRun represents a single execution of a scheduled job
type JobRun struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	JobName         string             `json:"job_name" bson:"job_name"`
	Trigger         string             `json:"trigger" bson:"trigger"` // "schedule" or "manual"
	Cutoff          time.Time          `json:"cutoff" bson:"cutoff"`
	StartTime       time.Time          `json:"start_time" bson:"start_time"`
	EndTime         *time.Time         `json:"end_time,omitempty" bson:"end_time,omitempty"`
	Status          RunStatus          `json:"status" bson:"status"`
	RecordsAffected int64              `json:"records_affected" bson:"records_affected"`
	Error           string             `json:"error,omitempty" bson:"error,omitempty"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
}

package cron_feature

import (
	"context"
	"time"

	"patient-reports/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type JobRunRepository interface {
	CreateRun(ctx context.Context, run *JobRun) error
	UpdateRun(ctx context.Context, run *JobRun) error
	ListRuns(ctx context.Context, jobName string, limit int64) ([]JobRun, error)
}

type JobRunRepositoryImpl struct {
	collection *mongo.Collection
}

func NewJobRunRepository(db *database.MongodbDB) JobRunRepository {
	return &JobRunRepositoryImpl{
		collection: db.DB.Collection("job_runs"),
	}
}

func (r *JobRunRepositoryImpl) CreateRun(ctx context.Context, run *JobRun) error {
	run.ID = primitive.NewObjectID()
	run.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, run)
	return err
}

func (r *JobRunRepositoryImpl) UpdateRun(ctx context.Context, run *JobRun) error {
	filter := bson.M{"_id": run.ID}
	update := bson.M{"$set": run}

	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

func (r *JobRunRepositoryImpl) ListRuns(ctx context.Context, jobName string, limit int64) ([]JobRun, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "start_time", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"job_name": jobName}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var runs []JobRun
	if err = cursor.All(ctx, &runs); err != nil {
		return nil, err
	}

	if runs == nil {
		runs = []JobRun{}
	}

	return runs, nil
}

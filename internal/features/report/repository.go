package report

import (
	"context"
	"errors"
	"time"

	"patient-reports/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReportRepository interface {
	Create(ctx context.Context, report *Report) error
	Get(ctx context.Context, id string) (*Report, error)
	List(ctx context.Context) ([]Report, error)
	Update(ctx context.Context, id string, report *Report) error
	Delete(ctx context.Context, id string) error
	SetLastGenerated(ctx context.Context, id primitive.ObjectID, at time.Time) error
}

type ReportRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewReportRepository(db *database.MongodbDB) ReportRepository {
	return &ReportRepositoryImpl{
		Collection: db.DB.Collection("reports"),
	}
}

// objectID parses a hex id; a malformed id can never match and is reported as
// not found.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

func (r *ReportRepositoryImpl) Create(ctx context.Context, report *Report) error {
	now := time.Now()
	report.CreatedAt = now
	report.UpdatedAt = now
	_, err := r.Collection.InsertOne(ctx, report)
	return err
}

func (r *ReportRepositoryImpl) Get(ctx context.Context, id string) (*Report, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var report Report
	if err := r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&report); err != nil {
		return nil, notFound(err)
	}
	return &report, nil
}

func (r *ReportRepositoryImpl) List(ctx context.Context) ([]Report, error) {
	opts := options.Find().SetSort(bson.M{"updated_at": -1})
	cursor, err := r.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reports := make([]Report, 0)
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *ReportRepositoryImpl) Update(ctx context.Context, id string, report *Report) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	report.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"name":        report.Name,
			"description": report.Description,
			"type":        report.Type,
			"charts":      report.Charts,
			"filters":     report.Filters,
			"fields":      report.Fields,
			"updated_at":  report.UpdatedAt,
		},
	}
	res, err := r.Collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ReportRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.Collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ReportRepositoryImpl) SetLastGenerated(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := r.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"last_generated_at": at},
	})
	return err
}

type GeneratedReportRepository interface {
	Create(ctx context.Context, gen *GeneratedReport) error
	Get(ctx context.Context, id string) (*GeneratedReport, error)
	Latest(ctx context.Context, reportID primitive.ObjectID) (*GeneratedReport, error)
	ListByReport(ctx context.Context, reportID primitive.ObjectID, limit int64) ([]GeneratedReport, error)
	DeleteByReport(ctx context.Context, reportID primitive.ObjectID) (int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type GeneratedReportRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewGeneratedReportRepository(db *database.MongodbDB) GeneratedReportRepository {
	return &GeneratedReportRepositoryImpl{
		Collection: db.DB.Collection("generated_reports"),
	}
}

func (r *GeneratedReportRepositoryImpl) Create(ctx context.Context, gen *GeneratedReport) error {
	if gen.ID.IsZero() {
		gen.ID = primitive.NewObjectID()
	}
	gen.CreatedAt = time.Now()
	_, err := r.Collection.InsertOne(ctx, gen)
	return err
}

func (r *GeneratedReportRepositoryImpl) Get(ctx context.Context, id string) (*GeneratedReport, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var gen GeneratedReport
	if err := r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&gen); err != nil {
		return nil, notFound(err)
	}
	return &gen, nil
}

func (r *GeneratedReportRepositoryImpl) Latest(ctx context.Context, reportID primitive.ObjectID) (*GeneratedReport, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "generated_at", Value: -1}})
	var gen GeneratedReport
	if err := r.Collection.FindOne(ctx, bson.M{"report_id": reportID}, opts).Decode(&gen); err != nil {
		return nil, notFound(err)
	}
	return &gen, nil
}

// ListByReport returns payload-less summaries, newest first.
func (r *GeneratedReportRepositoryImpl) ListByReport(ctx context.Context, reportID primitive.ObjectID, limit int64) ([]GeneratedReport, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "generated_at", Value: -1}}).
		SetProjection(bson.M{"payload": 0}).
		SetLimit(limit)
	cursor, err := r.Collection.Find(ctx, bson.M{"report_id": reportID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	gens := make([]GeneratedReport, 0)
	if err := cursor.All(ctx, &gens); err != nil {
		return nil, err
	}
	return gens, nil
}

func (r *GeneratedReportRepositoryImpl) DeleteByReport(ctx context.Context, reportID primitive.ObjectID) (int64, error) {
	res, err := r.Collection.DeleteMany(ctx, bson.M{"report_id": reportID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *GeneratedReportRepositoryImpl) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.Collection.DeleteMany(ctx, bson.M{"generated_at": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *GeneratedReportRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "report_id", Value: 1}, {Key: "generated_at", Value: -1}}},
		{Keys: bson.D{{Key: "generated_at", Value: 1}}},
	})
	return err
}

package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pulsedev/pulse/internal/reports/domain/report"
	"github.com/pulsedev/pulse/pkg/calendar"
)

const reportCollection = "weekly_reports"

type reportDocument struct {
	ID               string    `bson:"_id"`
	UserID           string    `bson:"user_id"`
	WeekStart        string    `bson:"week_start"`
	TasksCompleted   int       `bson:"tasks_completed"`
	TotalTimeSpent   float64   `bson:"total_time_spent"`
	ExpectedVsActual float64   `bson:"expected_vs_actual"`
	PomodoroCount    int       `bson:"pomodoro_count"`
	GeneratedAt      time.Time `bson:"generated_at"`
}

// MongoReportRepository implements report.Repository on a MongoDB
// collection keyed by (user_id, week_start).
type MongoReportRepository struct {
	collection *mongo.Collection
}

// NewMongoReportRepository creates a new MongoDB report repository.
func NewMongoReportRepository(db *mongo.Database) *MongoReportRepository {
	return &MongoReportRepository{collection: db.Collection(reportCollection)}
}

// UpsertReplace sets the metrics for a week, inserting the document on
// first write. The document id is immutable once inserted.
func (r *MongoReportRepository) UpsertReplace(ctx context.Context, rep *report.WeeklyReport) error {
	filter := bson.M{
		"user_id":    rep.UserID().String(),
		"week_start": calendar.DayKey(rep.WeekStart()),
	}
	update := bson.M{
		"$set": bson.M{
			"tasks_completed":    rep.TasksCompleted(),
			"total_time_spent":   rep.TotalTimeSpent(),
			"expected_vs_actual": rep.ExpectedVsActual(),
			"pomodoro_count":     rep.PomodoroCount(),
			"generated_at":       rep.GeneratedAt(),
		},
		"$setOnInsert": bson.M{"_id": rep.ID().String()},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert weekly report: %w", err)
	}
	return nil
}

// FindByUserID retrieves all reports for a user, most recent week first.
func (r *MongoReportRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*report.WeeklyReport, error) {
	opts := options.Find().SetSort(bson.D{{Key: "week_start", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID.String()}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query weekly reports: %w", err)
	}
	defer cursor.Close(ctx)

	var reports []*report.WeeklyReport
	for cursor.Next(ctx) {
		var doc reportDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode weekly report: %w", err)
		}

		id, err := uuid.Parse(doc.ID)
		if err != nil {
			return nil, fmt.Errorf("corrupt report id %q: %w", doc.ID, err)
		}
		uid, err := uuid.Parse(doc.UserID)
		if err != nil {
			return nil, fmt.Errorf("corrupt user id %q: %w", doc.UserID, err)
		}
		weekStart, err := calendar.ParseDayKey(doc.WeekStart)
		if err != nil {
			return nil, fmt.Errorf("corrupt week start %q: %w", doc.WeekStart, err)
		}

		reports = append(reports, report.Rehydrate(id, uid, weekStart, doc.TasksCompleted, doc.TotalTimeSpent, doc.ExpectedVsActual, doc.PomodoroCount, doc.GeneratedAt))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate weekly reports: %w", err)
	}
	return reports, nil
}

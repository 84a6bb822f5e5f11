package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pulsedev/pulse/internal/activity/domain/ledger"
)

const ledgerCollection = "user_activity"

type ledgerDocument struct {
	UserID             string  `bson:"user_id"`
	Day                string  `bson:"day"`
	TasksCreated       int     `bson:"tasks_created"`
	TasksCompleted     int     `bson:"tasks_completed"`
	TimeSpent          float64 `bson:"time_spent"`
	PomodorosCompleted int     `bson:"pomodoros_completed"`
}

// MongoLedgerRepository implements ledger.Repository on a MongoDB
// collection keyed by (user_id, day).
type MongoLedgerRepository struct {
	collection *mongo.Collection
}

// NewMongoLedgerRepository creates a new MongoDB ledger repository.
func NewMongoLedgerRepository(db *mongo.Database) *MongoLedgerRepository {
	return &MongoLedgerRepository{collection: db.Collection(ledgerCollection)}
}

// IncrementFor applies the deltas with a $inc upsert.
func (r *MongoLedgerRepository) IncrementFor(ctx context.Context, userID uuid.UUID, day string, d ledger.Deltas) error {
	filter := bson.M{"user_id": userID.String(), "day": day}
	update := bson.M{"$inc": bson.M{
		"tasks_created":       d.TasksCreated,
		"tasks_completed":     d.TasksCompleted,
		"time_spent":          d.TimeSpent,
		"pomodoros_completed": d.PomodorosCompleted,
	}}
	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to increment activity ledger: %w", err)
	}
	return nil
}

// ReplaceCounts sets the task-derived counters. The pomodoro counter only
// gets a value when the document is first inserted.
func (r *MongoLedgerRepository) ReplaceCounts(ctx context.Context, userID uuid.UUID, day string, c ledger.Counts) error {
	filter := bson.M{"user_id": userID.String(), "day": day}
	update := bson.M{
		"$set": bson.M{
			"tasks_created":   c.TasksCreated,
			"tasks_completed": c.TasksCompleted,
			"time_spent":      c.TimeSpent,
		},
		"$setOnInsert": bson.M{"pomodoros_completed": 0},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to replace activity counts: %w", err)
	}
	return nil
}

// FindRange returns entries within the inclusive day-key range, ascending.
func (r *MongoLedgerRepository) FindRange(ctx context.Context, userID uuid.UUID, fromDay, toDay string) ([]ledger.Entry, error) {
	filter := bson.M{
		"user_id": userID.String(),
		"day":     bson.M{"$gte": fromDay, "$lte": toDay},
	}
	opts := options.Find().SetSort(bson.D{{Key: "day", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity ledger: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []ledger.Entry
	for cursor.Next(ctx) {
		var doc ledgerDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode ledger entry: %w", err)
		}
		uid, err := uuid.Parse(doc.UserID)
		if err != nil {
			return nil, fmt.Errorf("corrupt user id %q: %w", doc.UserID, err)
		}
		entries = append(entries, ledger.Entry{
			UserID:             uid,
			Day:                doc.Day,
			TasksCreated:       doc.TasksCreated,
			TasksCompleted:     doc.TasksCompleted,
			TimeSpent:          doc.TimeSpent,
			PomodorosCompleted: doc.PomodorosCompleted,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ledger entries: %w", err)
	}
	return entries, nil
}

package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pulsedev/pulse/internal/tasking/domain/pomodoro"
)

const sessionCollection = "pomodoro_sessions"

type sessionDocument struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	TaskID    *string   `bson:"task_id,omitempty"`
	Date      time.Time `bson:"date"`
	Duration  float64   `bson:"duration"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoSessionRepository implements pomodoro.Repository on a MongoDB
// collection.
type MongoSessionRepository struct {
	collection *mongo.Collection
}

// NewMongoSessionRepository creates a new MongoDB session repository.
func NewMongoSessionRepository(db *mongo.Database) *MongoSessionRepository {
	return &MongoSessionRepository{collection: db.Collection(sessionCollection)}
}

// Save upserts a session document.
func (r *MongoSessionRepository) Save(ctx context.Context, s *pomodoro.Session) error {
	var taskID *string
	if s.TaskID() != nil {
		v := s.TaskID().String()
		taskID = &v
	}
	doc := sessionDocument{
		ID:        s.ID().String(),
		UserID:    s.UserID().String(),
		TaskID:    taskID,
		Date:      s.Date(),
		Duration:  s.Duration(),
		CreatedAt: s.CreatedAt(),
		UpdatedAt: s.UpdatedAt(),
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// FindByUserID retrieves all sessions for a user, newest first.
func (r *MongoSessionRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*pomodoro.Session, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID.String()}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []*pomodoro.Session
	for cursor.Next(ctx) {
		var doc sessionDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode session: %w", err)
		}

		id, err := uuid.Parse(doc.ID)
		if err != nil {
			return nil, fmt.Errorf("corrupt session id %q: %w", doc.ID, err)
		}
		uid, err := uuid.Parse(doc.UserID)
		if err != nil {
			return nil, fmt.Errorf("corrupt user id %q: %w", doc.UserID, err)
		}
		var taskID *uuid.UUID
		if doc.TaskID != nil {
			parsed, err := uuid.Parse(*doc.TaskID)
			if err != nil {
				return nil, fmt.Errorf("corrupt task id %q: %w", *doc.TaskID, err)
			}
			taskID = &parsed
		}

		sessions = append(sessions, pomodoro.Rehydrate(id, uid, taskID, doc.Date, doc.Duration, doc.CreatedAt))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}
	return sessions, nil
}

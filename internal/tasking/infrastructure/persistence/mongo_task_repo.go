package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pulsedev/pulse/internal/tasking/domain/task"
)

const taskCollection = "tasks"

// taskDocument is the MongoDB representation of a task.
type taskDocument struct {
	ID                string     `bson:"_id"`
	UserID            string     `bson:"user_id"`
	Title             string     `bson:"title"`
	Completed         bool       `bson:"completed"`
	TimeSpent         float64    `bson:"time_spent"`
	ExpectedTime      float64    `bson:"expected_time"`
	PomodoroCount     int        `bson:"pomodoro_count"`
	Priority          int        `bson:"priority"`
	IsRecurring       bool       `bson:"is_recurring"`
	RecurringType     string     `bson:"recurring_type,omitempty"`
	Dependencies      []string   `bson:"dependencies,omitempty"`
	LastCompletedDate *time.Time `bson:"last_completed_date,omitempty"`
	CompletedAt       *time.Time `bson:"completed_at,omitempty"`
	CreatedAt         time.Time  `bson:"created_at"`
	UpdatedAt         time.Time  `bson:"updated_at"`
}

// MongoTaskRepository implements task.Repository on a MongoDB collection.
type MongoTaskRepository struct {
	collection *mongo.Collection
}

// NewMongoTaskRepository creates a new MongoDB task repository.
func NewMongoTaskRepository(db *mongo.Database) *MongoTaskRepository {
	return &MongoTaskRepository{collection: db.Collection(taskCollection)}
}

// Save upserts a task document.
func (r *MongoTaskRepository) Save(ctx context.Context, t *task.Task) error {
	doc := toTaskDocument(t)
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts); err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	return nil
}

// FindByID retrieves a task owned by the given user, or nil.
func (r *MongoTaskRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*task.Task, error) {
	var doc taskDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id.String(), "user_id": userID.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return fromTaskDocument(doc)
}

// FindByUserID retrieves all tasks for a user, newest first.
func (r *MongoTaskRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*task.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID.String()}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer cursor.Close(ctx)

	var tasks []*task.Task
	for cursor.Next(ctx) {
		var doc taskDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode task: %w", err)
		}
		t, err := fromTaskDocument(doc)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}
	return tasks, nil
}

// Delete removes a task.
func (r *MongoTaskRepository) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id.String(), "user_id": userID.String()})
	if err != nil {
		return false, fmt.Errorf("failed to delete task: %w", err)
	}
	return result.DeletedCount > 0, nil
}

// RemoveDependencyReferences pulls a deleted task id out of every other
// task's dependency array.
func (r *MongoTaskRepository) RemoveDependencyReferences(ctx context.Context, userID, deletedID uuid.UUID) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"user_id": userID.String()},
		bson.M{"$pull": bson.M{"dependencies": deletedID.String()}},
	)
	if err != nil {
		return fmt.Errorf("failed to remove dependency references: %w", err)
	}
	return nil
}

func toTaskDocument(t *task.Task) taskDocument {
	var deps []string
	for _, dep := range t.Dependencies() {
		deps = append(deps, dep.String())
	}
	return taskDocument{
		ID:                t.ID().String(),
		UserID:            t.UserID().String(),
		Title:             t.Title(),
		Completed:         t.Completed(),
		TimeSpent:         t.TimeSpent(),
		ExpectedTime:      t.ExpectedTime(),
		PomodoroCount:     t.PomodoroCount(),
		Priority:          int(t.Priority()),
		IsRecurring:       t.IsRecurring(),
		RecurringType:     string(t.RecurringType()),
		Dependencies:      deps,
		LastCompletedDate: t.LastCompletedDate(),
		CompletedAt:       t.CompletedAt(),
		CreatedAt:         t.CreatedAt(),
		UpdatedAt:         t.UpdatedAt(),
	}
}

func fromTaskDocument(doc taskDocument) (*task.Task, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("corrupt task id %q: %w", doc.ID, err)
	}
	userID, err := uuid.Parse(doc.UserID)
	if err != nil {
		return nil, fmt.Errorf("corrupt user id %q: %w", doc.UserID, err)
	}

	var deps []uuid.UUID
	for _, raw := range doc.Dependencies {
		dep, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("corrupt dependency id %q: %w", raw, err)
		}
		deps = append(deps, dep)
	}

	return task.Rehydrate(
		id, userID, doc.Title,
		doc.Completed, doc.CompletedAt,
		doc.TimeSpent, doc.ExpectedTime, doc.PomodoroCount,
		deps,
		task.Priority(doc.Priority),
		doc.IsRecurring, task.RecurringType(doc.RecurringType),
		doc.LastCompletedDate,
		doc.CreatedAt, doc.UpdatedAt,
	), nil
}

package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/webtodo/todo-system/internal/core/domain"
)

const (
	todosCollection = "todos"
	todosSequence   = "todos"
)

type TodoRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewTodoRepository(db *mongo.Database) *TodoRepository {
	return &TodoRepository{db: db, coll: db.Collection(todosCollection)}
}

func (r *TodoRepository) Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := *todo
	if doc.ID == 0 {
		id, err := nextSequence(ctx, r.db, todosSequence)
		if err != nil {
			return nil, err
		}
		doc.ID = id
	} else if err := bumpSequence(ctx, r.db, todosSequence, doc.ID); err != nil {
		return nil, err
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert todo: %w", err)
	}
	return &doc, nil
}

func (r *TodoRepository) FindByID(ctx context.Context, id int) (*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var todo domain.Todo
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&todo); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("find todo: %w", err)
	}
	return &todo, nil
}

func (r *TodoRepository) FindAll(ctx context.Context) ([]*domain.Todo, error) {
	return r.find(ctx, bson.M{})
}

// FindOpenByOwner is the non-admin list view: only the owner's open items.
func (r *TodoRepository) FindOpenByOwner(ctx context.Context, ownerID int) ([]*domain.Todo, error) {
	return r.find(ctx, bson.M{"owner_id": ownerID, "is_closed": false})
}

func (r *TodoRepository) find(ctx context.Context, filter bson.M) ([]*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer cursor.Close(ctx)

	todos := []*domain.Todo{}
	if err := cursor.All(ctx, &todos); err != nil {
		return nil, fmt.Errorf("decode todos: %w", err)
	}
	return todos, nil
}

// Update is last write wins: no version filter, matching the deliberate
// absence of optimistic locking on todos.
func (r *TodoRepository) Update(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": todo.ID},
		bson.M{"$set": bson.M{
			"title":         todo.Title,
			"description":   todo.Description,
			"is_closed":     todo.IsClosed,
			"updated_at":    todo.UpdatedAt,
			"updated_by_id": todo.UpdatedByID,
		}},
	)
	if err != nil {
		return nil, fmt.Errorf("update todo: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrTodoNotFound
	}
	return todo, nil
}

func (r *TodoRepository) Delete(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

func (r *TodoRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count todos: %w", err)
	}
	return count, nil
}

// EnsureIndexes creates the indexes backing the list queries.
func (r *TodoRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "is_closed", Value: 1}}},
	})
	return err
}

package mongo

import (
	"context"
	"time"

	"github.com/hireform/hireform/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// aiLogRetention is how long audit records stick around before the TTL
// index reaps them.
const aiLogRetention = 30 * 24 * time.Hour

type AILogRepository interface {
	Insert(ctx context.Context, l *models.AILog) error
	ListByForm(ctx context.Context, formID string, limit int64) ([]models.AILog, error)
}

type aiLogRepo struct {
	col *mongo.Collection
}

func NewAILogRepo(db *mongo.Database) AILogRepository {
	return &aiLogRepo{col: db.Collection("ai_logs")}
}

func (r *aiLogRepo) Insert(ctx context.Context, l *models.AILog) error {
	if l.Timestamp.IsZero() {
		l.Timestamp = time.Now().UTC()
	}
	if l.ExpiresAt.IsZero() {
		l.ExpiresAt = l.Timestamp.Add(aiLogRetention)
	}
	_, err := r.col.InsertOne(ctx, l)
	return err
}

func (r *aiLogRepo) ListByForm(ctx context.Context, formID string, limit int64) ([]models.AILog, error) {
	if limit <= 0 {
		limit = 100
	}

	cur, err := r.col.Find(ctx,
		bson.M{"form_id": formID},
		options.Find().
			SetSort(bson.D{{Key: "timestamp", Value: -1}}).
			SetLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.AILog
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

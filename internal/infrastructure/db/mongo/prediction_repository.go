package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/emotionai/emotion-api/internal/core/domain"
)

const collectionPredictions = "predictions"

type PredictionRepository struct {
	col *mongo.Collection
}

func NewPredictionRepository(db *mongo.Database) *PredictionRepository {
	return &PredictionRepository{col: db.Collection(collectionPredictions)}
}

type audioDoc struct {
	Format          string  `bson:"format"`
	SampleRate      int     `bson:"sample_rate"`
	Channels        int     `bson:"channels"`
	BitDepth        int     `bson:"bit_depth"`
	DurationSeconds float64 `bson:"duration_seconds"`
}

type predictionDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Username      string             `bson:"username"`
	Name          string             `bson:"name"`
	Age           int                `bson:"age"`
	Emotion       string             `bson:"predicted_emotion"`
	Probabilities map[string]float64 `bson:"probabilities"`
	Confidence    float64            `bson:"confidence"`
	File          string             `bson:"file,omitempty"`
	Audio         *audioDoc          `bson:"audio,omitempty"`
	CreatedAt     time.Time          `bson:"created_at"`
}

func newPredictionDoc(p *domain.Prediction) predictionDoc {
	probs := make(map[string]float64, len(p.Probs))
	for e, v := range p.Probs {
		probs[string(e)] = v
	}
	doc := predictionDoc{
		Username:      p.Username,
		Name:          p.SubjectName,
		Age:           p.SubjectAge,
		Emotion:       string(p.Emotion),
		Probabilities: probs,
		Confidence:    p.Confidence,
		File:          p.File,
		CreatedAt:     p.CreatedAt.UTC().Truncate(time.Millisecond),
	}
	if p.Audio != nil {
		doc.Audio = &audioDoc{
			Format:          p.Audio.Format,
			SampleRate:      p.Audio.SampleRate,
			Channels:        p.Audio.Channels,
			BitDepth:        p.Audio.BitDepth,
			DurationSeconds: p.Audio.DurationSeconds,
		}
	}
	return doc
}

func (d predictionDoc) toDomain() domain.Prediction {
	probs := make(domain.Probabilities, len(d.Probabilities))
	for k, v := range d.Probabilities {
		probs[domain.Emotion(k)] = v
	}
	p := domain.Prediction{
		ID:          d.ID.Hex(),
		Username:    d.Username,
		SubjectName: d.Name,
		SubjectAge:  d.Age,
		Emotion:     domain.Emotion(d.Emotion),
		Probs:       probs,
		Confidence:  d.Confidence,
		File:        d.File,
		CreatedAt:   d.CreatedAt.UTC(),
	}
	if d.Audio != nil {
		p.Audio = &domain.AudioInfo{
			Format:          d.Audio.Format,
			SampleRate:      d.Audio.SampleRate,
			Channels:        d.Audio.Channels,
			BitDepth:        d.Audio.BitDepth,
			DurationSeconds: d.Audio.DurationSeconds,
		}
	}
	return p
}

// Create inserts p and assigns its ID.
func (r *PredictionRepository) Create(ctx context.Context, p *domain.Prediction) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := newPredictionDoc(p)
	doc.ID = primitive.NewObjectID()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("%w: insert prediction: %v", domain.ErrPersistence, err)
	}
	p.ID = doc.ID.Hex()
	p.CreatedAt = doc.CreatedAt
	return nil
}

// ListByUsername returns every prediction for username, newest first.
func (r *PredictionRepository) ListByUsername(ctx context.Context, username string) ([]domain.Prediction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"username": username}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: find predictions: %v", domain.ErrPersistence, err)
	}
	defer cur.Close(ctx)

	var docs []predictionDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: decode predictions: %v", domain.ErrPersistence, err)
	}

	out := make([]domain.Prediction, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *PredictionRepository) CountByUsername(ctx context.Context, username string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"username": username})
	if err != nil {
		return 0, fmt.Errorf("%w: count predictions: %v", domain.ErrPersistence, err)
	}
	return n, nil
}

// EnsureIndexes creates the compound index backing per-user history reads.
func (r *PredictionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "username", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}

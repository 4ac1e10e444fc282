package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hashdoctor/telehealth-api/internal/core/domain"
)

const collectionChats = "chats"

// chatThread is one conversation document, keyed by the canonical
// conversation key.
type chatThread struct {
	Key      string           `bson:"_id"`
	Messages []domain.Message `bson:"messages"`
}

// ChatRepository persists conversation threads. Appends are upserts,
// so the first message of a pair creates the thread.
type ChatRepository struct {
	col *mongo.Collection
}

func NewChatRepository(db *mongo.Database) *ChatRepository {
	return &ChatRepository{col: db.Collection(collectionChats)}
}

func (r *ChatRepository) Append(ctx context.Context, key string, msg domain.Message) error {
	return r.push(ctx, key, bson.A{msg})
}

func (r *ChatRepository) AppendBulk(ctx context.Context, key string, msgs []domain.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	docs := make(bson.A, 0, len(msgs))
	for _, m := range msgs {
		docs = append(docs, m)
	}
	return r.push(ctx, key, docs)
}

func (r *ChatRepository) push(ctx context.Context, key string, msgs bson.A) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": key},
		bson.M{"$push": bson.M{"messages": bson.M{"$each": msgs}}},
		options.Update().SetUpsert(true),
	)
	return err
}

// Thread returns the messages under key in insertion order. A missing
// thread yields an empty slice.
func (r *ChatRepository) Thread(ctx context.Context, key string) ([]domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t chatThread
	err := r.col.FindOne(ctx, bson.M{"_id": key}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []domain.Message{}, nil
		}
		return nil, err
	}
	return t.Messages, nil
}

func (r *ChatRepository) All(ctx context.Context) (map[string][]domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	chats := make(map[string][]domain.Message)
	for cur.Next(ctx) {
		var t chatThread
		if err := cur.Decode(&t); err != nil {
			return nil, err
		}
		chats[t.Key] = t.Messages
	}
	return chats, cur.Err()
}

func (r *ChatRepository) ReplaceAll(ctx context.Context, chats map[string][]domain.Message) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := r.col.Drop(ctx); err != nil {
		return err
	}
	if len(chats) == 0 {
		return nil
	}

	docs := make([]any, 0, len(chats))
	for key, msgs := range chats {
		docs = append(docs, chatThread{Key: key, Messages: msgs})
	}
	_, err := r.col.InsertMany(ctx, docs)
	return err
}

func (r *ChatRepository) DeleteAll(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.Drop(ctx)
}

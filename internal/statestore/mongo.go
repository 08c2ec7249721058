package statestore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"pions/internal/config"
	"pions/internal/domain"
)

const mongoCollection = "pion_state"

// stateDocument is the single document kept in the pion_state collection.
type stateDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

type mongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

var _ domain.StateStore = (*mongoStore)(nil)

func newMongoStore(ctx context.Context, cfg config.StoreConfig, password string) (*mongoStore, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(buildMongoURI(cfg, password)))
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping: %w", err)
	}

	dbName := cfg.Database
	if dbName == "" {
		dbName = "pions"
	}
	return &mongoStore{
		client: client,
		coll:   client.Database(dbName).Collection(mongoCollection),
	}, nil
}

// buildMongoURI accepts either a full mongodb:// or mongodb+srv:// URI in
// Host, or a bare host name.
func buildMongoURI(cfg config.StoreConfig, password string) string {
	if strings.HasPrefix(cfg.Host, "mongodb://") || strings.HasPrefix(cfg.Host, "mongodb+srv://") {
		uri := cfg.Host
		if password != "" {
			uri = strings.ReplaceAll(uri, "<password>", password)
		}
		return uri
	}
	port := cfg.Port
	if port == 0 {
		port = 27017
	}
	if cfg.Username != "" {
		return fmt.Sprintf("mongodb://%s:%s@%s:%d", cfg.Username, password, cfg.Host, port)
	}
	return fmt.Sprintf("mongodb://%s:%d", cfg.Host, port)
}

func (m *mongoStore) LoadState(ctx context.Context) ([]byte, error) {
	var doc stateDocument
	err := m.coll.FindOne(ctx, bson.M{"_id": recordKey}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	return []byte(doc.Value), nil
}

func (m *mongoStore) SaveState(ctx context.Context, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	doc := stateDocument{Key: recordKey, Value: string(data), UpdatedAt: time.Now().UTC()}
	_, err := m.coll.ReplaceOne(ctx, bson.M{"_id": recordKey}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

func (m *mongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

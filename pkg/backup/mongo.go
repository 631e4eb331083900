// Package backup keeps cold copies of archived weeks in MongoDB. It is
// defense-in-depth only: the archive batch in Postgres is the source of
// truth, and every failure here is logged, never propagated.
package backup

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"

	"salesboard/config"
	"salesboard/internal/model"
)

const connectTimeout = 20 * time.Second

// Document is one backed-up project tagged with its week.
type Document struct {
	WeekLabel           string    `bson:"week_label"`
	OriginalID          int64     `bson:"original_id"`
	SalespersonID       string    `bson:"salesperson_id"`
	SalespersonName     string    `bson:"salesperson_name"`
	SalespersonInitials string    `bson:"salesperson_initials"`
	ProjectTypeID       string    `bson:"project_type_id"`
	ProjectName         string    `bson:"project_name"`
	Location            string    `bson:"location"`
	LoggedAt            time.Time `bson:"logged_at"`
	BackedUpAt          time.Time `bson:"backed_up_at"`
}

type Store struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewStore connects to Mongo. A nil Store is returned without error when no
// URI is configured; its methods are no-ops.
func NewStore(cfg config.BackupConfig, logger *zap.Logger) (*Store, error) {
	if cfg.MongoURI == "" {
		logger.Info("Week backup disabled, no mongo_uri configured")
		return nil, nil
	}

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	database := cfg.Database
	if database == "" {
		database = "salesboard"
	}
	collection := cfg.Collection
	if collection == "" {
		collection = "week_backups"
	}

	logger.Info("Week backup store connected",
		zap.String("database", database),
		zap.String("collection", collection),
	)

	return &Store{
		client:     client,
		collection: client.Database(database).Collection(collection),
		logger:     logger,
	}, nil
}

// BackupWeek copies the archived snapshot into the backup collection,
// tagged with the week label.
func (s *Store) BackupWeek(ctx context.Context, weekLabel string, events []model.ProjectEvent) error {
	if s == nil || len(events) == 0 {
		return nil
	}

	now := time.Now()
	docs := make([]interface{}, 0, len(events))
	for _, ev := range events {
		docs = append(docs, Document{
			WeekLabel:           weekLabel,
			OriginalID:          ev.ID,
			SalespersonID:       ev.SalespersonID,
			SalespersonName:     ev.SalespersonName,
			SalespersonInitials: ev.SalespersonInitials,
			ProjectTypeID:       ev.ProjectTypeID,
			ProjectName:         ev.ProjectName,
			Location:            ev.Location,
			LoggedAt:            ev.LoggedAt,
			BackedUpAt:          now,
		})
	}

	if _, err := s.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert week backup: %w", err)
	}

	s.logger.Info("Week snapshot backed up",
		zap.String("week_label", weekLabel),
		zap.Int("count", len(events)),
	)
	return nil
}

func (s *Store) Close(ctx context.Context) {
	if s == nil {
		return
	}
	_ = s.client.Disconnect(ctx)
}

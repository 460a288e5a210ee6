package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"horse.fit/manna/internal/bible"
)

// ChapterRecord is the shared-store row for one cached chapter.
type ChapterRecord struct {
	Key       string    `gorm:"primaryKey;size:64"`
	Payload   []byte    `gorm:"type:jsonb;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	UpdatedAt time.Time
}

func (ChapterRecord) TableName() string {
	return "chapter_cache"
}

// Store is a Postgres-backed chapter cache shared across replicas.
type Store struct {
	gdb *gorm.DB
}

func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database url is required")
	}

	gdb, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("get cache sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(8)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping cache database: %w", err)
	}

	if err := gdb.WithContext(ctx).AutoMigrate(&ChapterRecord{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("auto-migrate cache schema: %w", err)
	}

	return &Store{gdb: gdb}, nil
}

func (s *Store) Get(ctx context.Context, key string) (*bible.Chapter, bool) {
	if s == nil || s.gdb == nil {
		return nil, false
	}

	var record ChapterRecord
	err := s.gdb.WithContext(ctx).
		Where("key = ? AND expires_at > ?", key, time.Now().UTC()).
		First(&record).Error
	if err != nil {
		return nil, false
	}

	var chapter bible.Chapter
	if err := json.Unmarshal(record.Payload, &chapter); err != nil {
		return nil, false
	}
	return &chapter, true
}

func (s *Store) Set(ctx context.Context, key string, chapter *bible.Chapter, ttl time.Duration) error {
	if s == nil || s.gdb == nil {
		return fmt.Errorf("cache store is not initialized")
	}
	if ttl <= 0 {
		return nil
	}

	payload, err := json.Marshal(chapter)
	if err != nil {
		return fmt.Errorf("marshal cached chapter: %w", err)
	}

	record := ChapterRecord{
		Key:       key,
		Payload:   payload,
		ExpiresAt: time.Now().UTC().Add(ttl),
	}
	err = s.gdb.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "expires_at", "updated_at"}),
		}).
		Create(&record).Error
	if err != nil {
		return fmt.Errorf("upsert cached chapter: %w", err)
	}
	return nil
}

// Prune deletes expired rows. Called opportunistically from the serve loop.
func (s *Store) Prune(ctx context.Context) (int64, error) {
	if s == nil || s.gdb == nil {
		return 0, fmt.Errorf("cache store is not initialized")
	}
	res := s.gdb.WithContext(ctx).
		Where("expires_at <= ?", time.Now().UTC()).
		Delete(&ChapterRecord{})
	if res.Error != nil {
		return 0, fmt.Errorf("prune cached chapters: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *Store) Close() error {
	if s == nil || s.gdb == nil {
		return nil
	}
	sqlDB, err := s.gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

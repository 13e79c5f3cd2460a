// Package store persists canonical transactions in the transactions table.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cleared-dev/statements/internal/model"
)

// RecentLimit is the number of records the listing returns.
const RecentLimit = 50

var (
	// ErrStorage wraps any failed read or write against the database.
	ErrStorage = errors.New("storage error")
	// ErrSchemaInit wraps a failure to create the transactions table.
	ErrSchemaInit = errors.New("schema initialization failed")
)

// Store reads and writes transaction records.
type Store struct {
	db *gorm.DB
}

// New wraps an open gorm handle.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Open connects to the Postgres database described by dsn.
func Open(dsn string) (*Store, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing database dsn: %w", err)
	}
	sqlDB := stdlib.OpenDB(*cfg)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("%w: connecting to database: %w", ErrStorage, err)
	}
	return New(db), nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: ping: %w", ErrStorage, err)
	}
	return nil
}

// EnsureSchema creates the transactions table if it does not exist. Callers
// at start-up treat a failure as a warning.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&model.Record{}); err != nil {
		return fmt.Errorf("%w: transactions: %w", ErrSchemaInit, err)
	}
	return nil
}

// Insert writes one record in its own statement and returns the generated id.
func (s *Store) Insert(ctx context.Context, rec *model.Record) (uint, error) {
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return 0, fmt.Errorf("%w: inserting transaction: %w", ErrStorage, err)
	}
	return rec.ID, nil
}

// Recent returns up to limit records, newest id first. A non-positive limit
// means RecentLimit.
func (s *Store) Recent(ctx context.Context, limit int) ([]model.Record, error) {
	if limit <= 0 {
		limit = RecentLimit
	}
	var recs []model.Record
	if err := s.db.WithContext(ctx).Order("id desc").Limit(limit).Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("%w: listing transactions: %w", ErrStorage, err)
	}
	return recs, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&model.Record{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("%w: counting transactions: %w", ErrStorage, err)
	}
	return n, nil
}

package repositories

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"postboard/app/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormStore is the relational Store. Postgres is the production target,
// SQLite serves local runs and tests.
type GormStore struct {
	db *gorm.DB
}

// OpenPostgres connects to postgres and migrates the schema.
func OpenPostgres(dsn string, log *slog.Logger) (*GormStore, error) {
	return openGorm(postgres.Open(dsn), log)
}

// OpenSQLite opens a sqlite file with foreign keys enforced.
func OpenSQLite(path string, log *slog.Logger) (*GormStore, error) {
	return openGorm(sqlite.Open(path+"?_foreign_keys=on"), log)
}

func openGorm(dialector gorm.Dialector, log *slog.Logger) (*GormStore, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger(log),
		TranslateError: true,
		NowFunc:        func() time.Time { return now() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &GormStore{db: db}, nil
}

func gormLogger(log *slog.Logger) logger.Interface {
	if log == nil {
		return logger.Discard
	}
	level := logger.Warn
	if log.Enabled(context.Background(), slog.LevelDebug) {
		level = logger.Info
	}
	return logger.New(slog.NewLogLogger(log.Handler(), slog.LevelWarn), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

// DB exposes the gorm handle, mostly for tests.
func (s *GormStore) DB() *gorm.DB {
	return s.db
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *GormStore) View(ctx context.Context, fn func(tx Tx) error) error {
	return s.Update(ctx, fn)
}

func (s *GormStore) Update(ctx context.Context, fn func(tx Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(gormTx{db: tx})
	})
}

type gormTx struct {
	db *gorm.DB
}

func (t gormTx) Users() UserRepository       { return &GormUserRepository{db: t.db} }
func (t gormTx) Posts() PostRepository       { return &GormPostRepository{db: t.db} }
func (t gormTx) Comments() CommentRepository { return &GormCommentRepository{db: t.db} }

// translate maps gorm errors onto the package sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrDuplicateEmail, err)
	default:
		return err
	}
}

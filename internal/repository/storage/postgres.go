package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type kvRecord struct {
	Key       string `gorm:"primaryKey;size:255"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (kvRecord) TableName() string {
	return "kv_records"
}

type PostgresStorage struct {
	Connection *gorm.DB
}

func NewPostgresStorage(dsn string) (*PostgresStorage, error) {
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("can't open database: %w", err)
	}

	return &PostgresStorage{Connection: conn}, nil
}

// Init - creates the key-value table when it does not exist yet.
func (that *PostgresStorage) Init(ctx context.Context) error {
	if err := that.Connection.WithContext(ctx).AutoMigrate(&kvRecord{}); err != nil {
		return fmt.Errorf("can't create table: %w", err)
	}

	return nil
}

func (that *PostgresStorage) Get(ctx context.Context, key string) (string, error) {
	var record kvRecord

	err := that.Connection.WithContext(ctx).Where("key = ?", key).Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("can't get %s: %w", key, err)
	}

	return record.Value, nil
}

func (that *PostgresStorage) Set(ctx context.Context, key, value string) error {
	record := kvRecord{Key: key, Value: value, UpdatedAt: time.Now()}

	err := that.Connection.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("can't save %s: %w", key, err)
	}

	return nil
}

func (that *PostgresStorage) Close() error {
	db, err := that.Connection.DB()
	if err != nil {
		return fmt.Errorf("can't get database handle: %w", err)
	}

	return db.Close()
}

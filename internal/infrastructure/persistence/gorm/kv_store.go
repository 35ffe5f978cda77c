package gorm

import (
	"context"
	"errors"
	"fmt"

	"github.com/chefaid/chefaid/internal/ports/outbound"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVStore implements outbound.KeyValueStore on any GORM dialect
type KVStore struct {
	db *gorm.DB
}

var (
	_ outbound.KeyValueStore = (*KVStore)(nil)
	_ outbound.HealthChecker = (*KVStore)(nil)
)

// NewKVStore creates a new settings store on an already migrated database
func NewKVStore(db *gorm.DB) *KVStore {
	return &KVStore{db: db}
}

// Get retrieves a value by key
func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	var model SettingModel
	err := s.db.WithContext(ctx).Where("setting_key = ?", key).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting %s: %w", key, err)
	}
	return model.Value, true, nil
}

// Set inserts or overwrites a value
func (s *KVStore) Set(ctx context.Context, key, value string) error {
	model := SettingModel{Key: key, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}

// Delete removes a key; deleting a missing key is not an error
func (s *KVStore) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("setting_key = ?", key).Delete(&SettingModel{}).Error; err != nil {
		return fmt.Errorf("delete setting %s: %w", key, err)
	}
	return nil
}

// Ping checks the underlying connection
func (s *KVStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Package settings provides the application layer for the stored preferences
package settings

import (
	"context"
	"errors"

	domain "github.com/chefaid/chefaid/internal/domain/settings"
	"github.com/chefaid/chefaid/internal/ports/inbound"
	"github.com/chefaid/chefaid/internal/ports/outbound"
	apperrors "github.com/chefaid/chefaid/pkg/errors"
	"go.uber.org/zap"
)

// Validator validates commands
type Validator interface {
	ValidateStruct(s interface{}) error
}

// WriteRecorder counts settings writes
type WriteRecorder interface {
	SettingWritten(key string)
}

// Service implements inbound.SettingsService on a key-value store
type Service struct {
	store     outbound.KeyValueStore
	validator Validator
	metrics   WriteRecorder
	logger    *zap.Logger
}

var _ inbound.SettingsService = (*Service)(nil)

// NewService creates a new settings service
func NewService(store outbound.KeyValueStore, validator Validator, metrics WriteRecorder, logger *zap.Logger) *Service {
	return &Service{
		store:     store,
		validator: validator,
		metrics:   metrics,
		logger:    logger.Named("settings-service"),
	}
}

// Load reads both settings fresh from the store. A missing or unparsable
// party size reads as the default.
func (s *Service) Load(ctx context.Context) (domain.Settings, error) {
	result := domain.Default()

	apiKey, _, err := s.store.Get(ctx, domain.KeyAPIKey)
	if err != nil {
		return result, apperrors.NewDatabaseError("load api key", err)
	}
	result.APIKey = apiKey

	raw, ok, err := s.store.Get(ctx, domain.KeyNumPeople)
	if err != nil {
		return result, apperrors.NewDatabaseError("load party size", err)
	}
	if ok {
		result.NumPeople = domain.ParseNumPeople(raw)
	}

	return result, nil
}

// Save persists an explicit save from the settings screen
func (s *Service) Save(ctx context.Context, cmd inbound.SaveSettingsCommand) (domain.Settings, error) {
	key, err := domain.NormalizeAPIKey(cmd.APIKey)
	if errors.Is(err, domain.ErrAPIKeyRequired) {
		return domain.Settings{}, apperrors.NewPreconditionError("Required", "Please enter your Gemini API key.")
	}
	if err := s.validator.ValidateStruct(cmd); err != nil {
		return domain.Settings{}, err
	}

	if err := s.write(ctx, domain.KeyAPIKey, key); err != nil {
		return domain.Settings{}, err
	}
	if err := s.write(ctx, domain.KeyNumPeople, domain.FormatNumPeople(cmd.NumPeople)); err != nil {
		return domain.Settings{}, err
	}

	s.logger.Info("Settings saved", zap.Int("num_people", cmd.NumPeople))
	return domain.Settings{APIKey: key, NumPeople: cmd.NumPeople}, nil
}

// SetNumPeople stores a party size without touching the key
func (s *Service) SetNumPeople(ctx context.Context, n int) (domain.Settings, error) {
	if err := domain.ValidateNumPeople(n); err != nil {
		return domain.Settings{}, apperrors.NewValidationError(err.Error())
	}
	if err := s.write(ctx, domain.KeyNumPeople, domain.FormatNumPeople(n)); err != nil {
		return domain.Settings{}, err
	}
	return s.Load(ctx)
}

// AdjustPeople applies a stepper change to the stored party size, clamped
// to the allowed range
func (s *Service) AdjustPeople(ctx context.Context, delta int) (domain.Settings, error) {
	current, err := s.Load(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	return s.SetNumPeople(ctx, domain.AdjustNumPeople(current.NumPeople, delta))
}

// ClearAPIKey overwrites the stored key with an empty value
func (s *Service) ClearAPIKey(ctx context.Context) error {
	if err := s.write(ctx, domain.KeyAPIKey, ""); err != nil {
		return err
	}
	s.logger.Info("API key cleared")
	return nil
}

func (s *Service) write(ctx context.Context, key, value string) error {
	if err := s.store.Set(ctx, key, value); err != nil {
		s.logger.Error("Settings write failed", zap.String("key", key), zap.Error(err))
		return apperrors.NewDatabaseError("save "+key, err)
	}
	if s.metrics != nil {
		s.metrics.SettingWritten(key)
	}
	return nil
}

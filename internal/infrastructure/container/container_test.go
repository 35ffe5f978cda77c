package container

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	settingsapp "github.com/chefaid/chefaid/internal/application/settings"
	domain "github.com/chefaid/chefaid/internal/domain/settings"
	"github.com/chefaid/chefaid/internal/infrastructure/ai/gemini"
	"github.com/chefaid/chefaid/internal/infrastructure/ai/googlegenai"
	"github.com/chefaid/chefaid/internal/infrastructure/config"
	"github.com/chefaid/chefaid/internal/infrastructure/persistence/memory"
	"github.com/chefaid/chefaid/internal/infrastructure/security"
	"github.com/chefaid/chefaid/internal/ports/inbound"
	"github.com/chefaid/chefaid/pkg/healthcheck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestGraphIsComplete(t *testing.T) {
	assert.NoError(t, fx.ValidateApp(Server("")))
	assert.NoError(t, fx.ValidateApp(Core("")))
}

func TestCore_PopulatesServices(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chefaid.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  log_level: error
storage:
  driver: sqlite
  sqlite_path: `+filepath.Join(dir, "settings.db")+`
export:
  directory: `+filepath.Join(dir, "exports")+`
`), 0o600))

	var settings inbound.SettingsService
	var kitchen inbound.KitchenService
	var health *healthcheck.HealthCheck
	app := fx.New(fx.NopLogger, Core(path), fx.Populate(&settings, &kitchen, &health))
	require.NoError(t, app.Err())
	require.NoError(t, app.Start(context.Background()))
	defer func() { assert.NoError(t, app.Stop(context.Background())) }()

	saved, err := settings.SetNumPeople(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 5, saved.NumPeople)

	doc, err := kitchen.ExportCalendar(context.Background(), inbound.ExportCalendarCommand{Text: "**Day 1** Soup"})
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Events)
	assert.FileExists(t, doc.Location)

	report := health.Check(context.Background())
	assert.Equal(t, healthcheck.StatusHealthy, report.Status)
	names := make([]string, 0, len(report.Checks))
	for _, check := range report.Checks {
		names = append(names, check.Name)
	}
	assert.ElementsMatch(t, []string{"database", "settings_store", "settings", "export_directory"}, names)
}

func TestSettingsChecker(t *testing.T) {
	store := memory.NewKVStore()
	service := settingsapp.NewService(store, security.NewValidationService(zap.NewNop()), nil, zap.NewNop())
	checker := SettingsChecker(service)
	ctx := context.Background()

	check := checker.Check(ctx)
	assert.Equal(t, healthcheck.StatusHealthy, check.Status)
	assert.Equal(t, "API key not configured", check.Message)

	require.NoError(t, store.Set(ctx, domain.KeyAPIKey, "secret"))
	check = checker.Check(ctx)
	assert.Equal(t, "API key configured", check.Message)
	assert.Equal(t, map[string]interface{}{"has_api_key": true, "num_people": 2}, check.Metadata)
}

func TestOpenStorage(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		cfg := &config.Config{Storage: config.StorageConfig{Driver: config.DriverMemory}}

		s, err := OpenStorage(cfg, zap.NewNop())

		require.NoError(t, err)
		assert.Empty(t, s.Checkers)
		assert.NoError(t, s.Close())
	})

	t.Run("sqlite persists across reopen", func(t *testing.T) {
		cfg := &config.Config{Storage: config.StorageConfig{
			Driver:     config.DriverSQLite,
			SQLitePath: filepath.Join(t.TempDir(), "nested", "settings.db"),
		}}
		ctx := context.Background()

		s, err := OpenStorage(cfg, zap.NewNop())
		require.NoError(t, err)
		assert.Contains(t, s.Checkers, "database")
		require.NoError(t, s.Store.Set(ctx, domain.KeyNumPeople, "3"))
		require.NoError(t, s.Close())

		reopened, err := OpenStorage(cfg, zap.NewNop())
		require.NoError(t, err)
		defer reopened.Close()
		value, ok, err := reopened.Store.Get(ctx, domain.KeyNumPeople)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "3", value)
	})

	t.Run("api key routed to keyring", func(t *testing.T) {
		dir := t.TempDir()
		cfg := &config.Config{Storage: config.StorageConfig{
			Driver:        config.DriverSQLite,
			SQLitePath:    filepath.Join(dir, "settings.db"),
			SecretBackend: config.SecretBackendKeyring,
			Keyring: config.KeyringConfig{
				ServiceName:  "chefaid-test",
				Backends:     []string{"file"},
				FileDir:      filepath.Join(dir, "keyring"),
				FilePassword: "test",
			},
		}}
		ctx := context.Background()

		s, err := OpenStorage(cfg, zap.NewNop())
		require.NoError(t, err)
		defer s.Close()
		require.NoError(t, s.Store.Set(ctx, domain.KeyAPIKey, "secret-key"))
		require.NoError(t, s.Store.Set(ctx, domain.KeyNumPeople, "2"))

		assert.Contains(t, s.Checkers, "settings_store")
		entries, err := os.ReadDir(filepath.Join(dir, "keyring"))
		require.NoError(t, err)
		assert.Len(t, entries, 1)
		value, ok, err := s.Store.Get(ctx, domain.KeyAPIKey)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "secret-key", value)
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := &config.Config{Storage: config.StorageConfig{Driver: "mongo"}}

		_, err := OpenStorage(cfg, zap.NewNop())

		assert.Error(t, err)
	})
}

// brokenPool is a gorm connection pool with no database/sql handle behind it
type brokenPool struct {
	gorm.ConnPool
}

func (brokenPool) GetDBConn() (*sql.DB, error) {
	return nil, errors.New("no handle")
}

func TestStorage_AddGormReleasesOnFailure(t *testing.T) {
	closed := false
	s := &Storage{
		Checkers: make(map[string]healthcheck.Checker),
		closers:  []func() error{func() error { closed = true; return nil }},
	}
	db := &gorm.DB{Config: &gorm.Config{ConnPool: brokenPool{}}}

	err := s.addGorm(db)

	require.Error(t, err)
	assert.ErrorContains(t, err, "no handle")
	assert.True(t, closed)
	assert.NotContains(t, s.Checkers, "database")
}

func TestNewGenerator(t *testing.T) {
	tests := []struct {
		provider string
		want     interface{}
		wantErr  bool
	}{
		{config.ProviderREST, &gemini.Client{}, false},
		{"", &gemini.Client{}, false},
		{config.ProviderGenAI, &googlegenai.Client{}, false},
		{"openai", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			cfg := &config.Config{AI: config.AIConfig{Provider: tt.provider}}

			gen, err := NewGenerator(cfg, zap.NewNop())

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, gen)
		})
	}
}

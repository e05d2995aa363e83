package app

import (
	"path/filepath"
	"testing"

	"carelog/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	application, err := NewWithConfig(config.Config{
		GeneralVersion: "test",
		Environment:    "test",
		ServerPort:     8288,
		DatabaseDbPath: filepath.Join(t.TempDir(), "app.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })
	return application
}

func TestNewWithConfig_WiresEverything(t *testing.T) {
	application := newTestApp(t)
	assert.NoError(t, application.validate())
}

func TestValidate_ReportsMissingDependency(t *testing.T) {
	application := newTestApp(t)

	tests := []struct {
		name     string
		modify   func(a *App)
		expected string
	}{
		{name: "transaction service", modify: func(a *App) { a.TransactionService = nil }, expected: "transaction service is nil"},
		{name: "cache service", modify: func(a *App) { a.CacheService = nil }, expected: "cache service is nil"},
		{name: "locker", modify: func(a *App) { a.Locker = nil }, expected: "locker is nil"},
		{name: "user repository", modify: func(a *App) { a.UserRepo = nil }, expected: "user repository is nil"},
		{name: "settings repository", modify: func(a *App) { a.SettingsRepo = nil }, expected: "settings repository is nil"},
		{name: "day repository", modify: func(a *App) { a.DayRepo = nil }, expected: "day repository is nil"},
		{name: "entry repository", modify: func(a *App) { a.EntryRepo = nil }, expected: "entry repository is nil"},
		{name: "contact repository", modify: func(a *App) { a.ContactRepo = nil }, expected: "contact repository is nil"},
		{name: "settings controller", modify: func(a *App) { a.SettingsController = nil }, expected: "settings controller is nil"},
		{name: "day controller", modify: func(a *App) { a.DayController = nil }, expected: "day controller is nil"},
		{name: "contact controller", modify: func(a *App) { a.ContactController = nil }, expected: "contact controller is nil"},
		{name: "database", modify: func(a *App) { a.Database.SQL = nil }, expected: "database is nil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			broken := *application
			tt.modify(&broken)
			assert.EqualError(t, broken.validate(), tt.expected)
		})
	}
}

package database

import (
	"context"
	"path/filepath"
	"testing"

	"carelog/config"
	"carelog/internal/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		DatabaseDbPath: filepath.Join(t.TempDir(), "test.db"),
		ServerPort:     8288,
	}
}

func TestNew_Success(t *testing.T) {
	db, err := New(testConfig(t))
	require.NoError(t, err)
	defer db.Close()

	assert.NotNil(t, db.SQL)
	assert.Nil(t, db.Cache.Settings)

	for _, table := range []string{"users", "metrics", "event_types", "day_records", "events", "questions", "contacts"} {
		assert.True(t, db.SQL.Migrator().HasTable(table), "table %s should exist", table)
	}
}

func TestNew_WithCache(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := testConfig(t)
	host, port := splitAddr(t, mr)
	cfg.DatabaseCacheAddress = host
	cfg.DatabaseCachePort = port

	db, err := New(cfg)
	require.NoError(t, err)
	defer db.Close()

	assert.NotNil(t, db.Cache.Settings)
}

func TestFlushCaches(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := testConfig(t)
	host, port := splitAddr(t, mr)
	cfg.DatabaseCacheAddress = host
	cfg.DatabaseCachePort = port

	db, err := New(cfg)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, NewCacheBuilder(db.Cache.Settings, "settings:u1").WithStruct(map[string]int{"a": 1}).WithContext(ctx).Set())
	require.True(t, mr.DB(1).Exists("settings:u1"))

	require.NoError(t, db.FlushCaches(ctx))
	assert.False(t, mr.DB(1).Exists("settings:u1"))
}

func TestFlushCaches_WithoutCache(t *testing.T) {
	db, err := New(testConfig(t))
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, db.FlushCaches(context.Background()))
}

func TestNew_UnreachableCache(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port := splitAddr(t, mr)
	mr.Close()

	cfg := testConfig(t)
	cfg.DatabaseCacheAddress = host
	cfg.DatabaseCachePort = port

	_, err := New(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize cache database")
}

func TestNew_InvalidConfig(t *testing.T) {
	invalidConfig := config.Config{
		DatabaseDbPath:       "",
		DatabaseCacheAddress: "",
		DatabaseCachePort:    0,
	}

	_, err := New(invalidConfig)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database path is empty")
}

func TestInitializeSQLiteDB_Success(t *testing.T) {
	db := &DB{
		log: logger.New("test"),
	}

	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	err := db.initializeSQLiteDB(&gorm.Config{}, config.Config{DatabaseDbPath: dbPath})
	require.NoError(t, err)
	defer db.Close()

	assert.FileExists(t, dbPath)

	var journalMode string
	require.NoError(t, db.SQL.Raw("PRAGMA journal_mode").Scan(&journalMode).Error)
	assert.Equal(t, "wal", journalMode)

	var foreignKeys int
	require.NoError(t, db.SQL.Raw("PRAGMA foreign_keys").Scan(&foreignKeys).Error)
	assert.Equal(t, 1, foreignKeys)
}

func TestInitializeSQLiteDB_EmptyPath(t *testing.T) {
	db := &DB{
		log: logger.New("test"),
	}

	err := db.initializeSQLiteDB(&gorm.Config{}, config.Config{DatabaseDbPath: ""})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database path is empty")
}

func TestInitializeSQLiteDB_InMemory(t *testing.T) {
	db := &DB{
		log: logger.New("test"),
	}

	err := db.initializeSQLiteDB(&gorm.Config{}, config.Config{DatabaseDbPath: ":memory:"})
	require.NoError(t, err)
	assert.NotNil(t, db.SQL)

	sqlDB, err := db.SQL.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)

	_ = sqlDB.Close()
}

func TestMigrate_Idempotent(t *testing.T) {
	db, err := New(testConfig(t))
	require.NoError(t, err)
	defer db.Close()

	applied, err := db.Migrate()
	require.NoError(t, err)
	assert.Equal(t, 0, applied)

	statuses, err := db.MigrationStatus()
	require.NoError(t, err)
	require.Len(t, statuses, 3)
	for _, status := range statuses {
		assert.True(t, status.Applied, "migration %s should be applied", status.ID)
		assert.NotNil(t, status.AppliedAt)
	}
	assert.Equal(t, "0001_users_settings.sql", statuses[0].ID)
}

func TestClose_WithNilSQL(t *testing.T) {
	db := &DB{
		log: logger.New("test"),
		SQL: nil,
	}

	err := db.Close()
	assert.NoError(t, err)
}

func TestSQLWithContext(t *testing.T) {
	db := &DB{
		log: logger.New("test"),
	}

	err := db.initializeSQLiteDB(&gorm.Config{}, config.Config{DatabaseDbPath: ":memory:"})
	require.NoError(t, err)
	defer db.Close()

	gormDB := db.SQLWithContext(context.Background())

	assert.NotNil(t, gormDB)
	assert.NotSame(t, db.SQL, gormDB)
}

func TestInitializeCacheDB_Disabled(t *testing.T) {
	db := &DB{
		log: logger.New("test"),
	}

	err := db.initializeCacheDB(config.Config{DatabaseCacheAddress: "", DatabaseCachePort: 6379})
	assert.NoError(t, err)
	assert.Nil(t, db.Cache.Settings)
}

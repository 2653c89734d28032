package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-queue/internal/config"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

func TestNewDB_SQLiteMigrates(t *testing.T) {
	cfg := &config.Config{
		StoreDriver: config.DriverSQLite,
		SQLitePath:  filepath.Join(t.TempDir(), "queue.db"),
	}

	db, err := NewDB(cfg)
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable(&models.StoreEntry{}))
	assert.True(t, db.Migrator().HasTable(&models.AuditLog{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func TestNewDB_RejectsNonSQLDriver(t *testing.T) {
	_, err := NewDB(&config.Config{StoreDriver: config.DriverRedis})
	assert.Error(t, err)
}

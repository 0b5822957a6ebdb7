// Package dbtest opens throwaway sqlite databases with the production schema
// and seeds them for repository, service and handler tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Augusto140/Englife-server/internal/config"
	"github.com/Augusto140/Englife-server/internal/infrastructure/database/postgres"
	"github.com/Augusto140/Englife-server/internal/infrastructure/database/postgres/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

// NewSQLite returns a migrated database in t.TempDir. A single connection
// keeps sqlite from reporting busy errors under concurrent tests.
func NewSQLite(t testing.TB) *postgres.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "englife.db")
	db, err := postgres.Open(sqlite.Open(path+"?_busy_timeout=5000&_foreign_keys=1"), "test", config.DatabaseConfig{
		MaxOpenConns:   1,
		ConnectTimeout: 2 * time.Second,
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(context.Background()))

	t.Cleanup(func() { _ = db.Close() })
	return db
}

func SeedLocation(t testing.TB, db *postgres.DB, name string) uint {
	t.Helper()
	m := &models.LocationModel{Name: name, Description: name, Type: "indoor", CreatedAt: time.Now()}
	require.NoError(t, db.DB.Create(m).Error)
	return m.ID
}

// SeedDatalogger creates a datalogger device at the location and returns the datalogger id.
func SeedDatalogger(t testing.TB, db *postgres.DB, name, mac string, locationID uint) uint {
	t.Helper()
	device := &models.DeviceModel{
		Name:       name,
		MacAddress: mac,
		Type:       "datalogger",
		LocationID: &locationID,
		CreatedAt:  time.Now(),
	}
	require.NoError(t, db.DB.Create(device).Error)

	dl := &models.DataloggerModel{DeviceID: device.ID, ReadingInterval: 60}
	require.NoError(t, db.DB.Create(dl).Error)
	return dl.ID
}

func SeedSensor(t testing.TB, db *postgres.DB, dataloggerID uint, name, position string) uint {
	t.Helper()
	s := &models.SensorModel{
		DataloggerID: dataloggerID,
		Name:         name,
		Type:         "temperature",
		Unit:         "C",
		Position:     position,
	}
	require.NoError(t, db.DB.Create(s).Error)
	return s.ID
}

// SeedReading stores the timestamp in UTC at second precision so that sqlite
// text comparison orders it correctly.
func SeedReading(t testing.TB, db *postgres.DB, sensorID uint, value float64, ts time.Time) {
	t.Helper()
	r := &models.SensorReadingModel{SensorID: sensorID, Value: value, Timestamp: ts.UTC().Truncate(time.Second)}
	require.NoError(t, db.DB.Create(r).Error)
}

func SeedAlert(t testing.TB, db *postgres.DB, message string, resolved bool, ts time.Time) {
	t.Helper()
	a := &models.AlertModel{
		Type:      "temperature",
		Message:   message,
		Severity:  "high",
		Timestamp: ts.UTC().Truncate(time.Second),
		Resolved:  resolved,
	}
	require.NoError(t, db.DB.Create(a).Error)
}

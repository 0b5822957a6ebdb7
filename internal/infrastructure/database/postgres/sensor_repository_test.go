package postgres_test

import (
	"context"
	"testing"
	"time"

	domainSensor "github.com/Augusto140/Englife-server/internal/domain/sensor"
	"github.com/Augusto140/Englife-server/internal/infrastructure/database/dbtest"
	"github.com/Augusto140/Englife-server/internal/infrastructure/database/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedTwoBarns creates Barn A (top, bottom sensors) and Barn B (top sensor)
// with readings inside the last day and one reading two days old.
func seedTwoBarns(t *testing.T, db *postgres.DB, now time.Time) {
	t.Helper()

	barnA := dbtest.SeedLocation(t, db, "Barn A")
	barnB := dbtest.SeedLocation(t, db, "Barn B")
	dlA := dbtest.SeedDatalogger(t, db, "DL-A", "AA:BB:CC:DD:EE:10", barnA)
	dlB := dbtest.SeedDatalogger(t, db, "DL-B", "AA:BB:CC:DD:EE:11", barnB)

	topA := dbtest.SeedSensor(t, db, dlA, "A-top", "top")
	bottomA := dbtest.SeedSensor(t, db, dlA, "A-bottom", "bottom")
	topB := dbtest.SeedSensor(t, db, dlB, "B-top", "top")

	dbtest.SeedReading(t, db, topA, 20.5, now.Add(-30*time.Minute))
	dbtest.SeedReading(t, db, bottomA, 18.0, now.Add(-20*time.Minute))
	dbtest.SeedReading(t, db, topB, 25.0, now.Add(-10*time.Minute))
	dbtest.SeedReading(t, db, topA, 30.0, now.Add(-48*time.Hour))
}

func TestSensorRepository_ReadingsFilterComposition(t *testing.T) {
	db := dbtest.NewSQLite(t)
	repo := postgres.NewSensorRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()
	seedTwoBarns(t, db, now)

	since := now.Add(-24 * time.Hour)

	all, err := repo.Readings(ctx, &domainSensor.ReadingFilter{Since: since, Limit: 1000})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	barnA, err := repo.Readings(ctx, &domainSensor.ReadingFilter{Since: since, Location: "Barn A", Limit: 1000})
	require.NoError(t, err)
	require.Len(t, barnA, 2)
	for _, r := range barnA {
		assert.Equal(t, "Barn A", r.Location)
		assert.Equal(t, "DL-A", r.Datalogger)
	}

	topOnly, err := repo.Readings(ctx, &domainSensor.ReadingFilter{Since: since, Location: "Barn A", Position: "top", Limit: 1000})
	require.NoError(t, err)
	require.Len(t, topOnly, 1)
	assert.Equal(t, 20.5, topOnly[0].Value)

	unknown, err := repo.Readings(ctx, &domainSensor.ReadingFilter{Since: since, Location: "Nowhere", Limit: 1000})
	require.NoError(t, err)
	assert.Empty(t, unknown)
}

func TestSensorRepository_ReadingsOrderingAndCap(t *testing.T) {
	db := dbtest.NewSQLite(t)
	repo := postgres.NewSensorRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()
	seedTwoBarns(t, db, now)

	recent, err := repo.Readings(ctx, &domainSensor.ReadingFilter{Since: now.Add(-time.Hour), Limit: 2})
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.False(t, recent[0].Timestamp.Before(recent[1].Timestamp))
	assert.Equal(t, 25.0, recent[0].Value)

	ascending, err := repo.Readings(ctx, &domainSensor.ReadingFilter{Since: now.Add(-24 * time.Hour), Ascending: true})
	require.NoError(t, err)
	require.Len(t, ascending, 3)
	for i := 1; i < len(ascending); i++ {
		assert.False(t, ascending[i].Timestamp.Before(ascending[i-1].Timestamp))
	}
}

func TestSensorRepository_ReadingsSQLShape(t *testing.T) {
	var captured string
	matcher := sqlmock.QueryMatcherFunc(func(_, actual string) error {
		captured = actual
		return nil
	})
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(matcher))
	require.NoError(t, err)
	defer sqlDB.Close()
	db := setupMockDB(t, sqlDB)
	repo := postgres.NewSensorRepository(db)
	ctx := context.Background()
	columns := []string{"location", "position", "value", "timestamp", "datalogger"}

	mock.ExpectQuery("readings").WillReturnRows(
		sqlmock.NewRows(columns).AddRow("Barn A", "top", 21.5, time.Now(), "DL-A"),
	)
	readings, err := repo.Readings(ctx, &domainSensor.ReadingFilter{Since: time.Now().Add(-24 * time.Hour), Limit: 1000})
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.Contains(t, captured, "sensor_readings.timestamp >= $1")
	assert.NotContains(t, captured, "locations.name =")
	assert.NotContains(t, captured, "sensors.position =")
	assert.Contains(t, captured, "ORDER BY sensor_readings.timestamp DESC")
	assert.Contains(t, captured, "LIMIT")

	mock.ExpectQuery("readings").WillReturnRows(sqlmock.NewRows(columns))
	_, err = repo.Readings(ctx, &domainSensor.ReadingFilter{Since: time.Now(), Location: "Barn A", Position: "top", Limit: 1000})
	require.NoError(t, err)
	assert.Contains(t, captured, "locations.name = $2")
	assert.Contains(t, captured, "sensors.position = $3")

	mock.ExpectQuery("readings").WillReturnRows(sqlmock.NewRows(columns))
	_, err = repo.Readings(ctx, &domainSensor.ReadingFilter{Since: time.Now(), Ascending: true})
	require.NoError(t, err)
	assert.Contains(t, captured, "ORDER BY sensor_readings.timestamp ASC")
	assert.NotContains(t, captured, "LIMIT")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSensorRepository_AverageSince(t *testing.T) {
	db := dbtest.NewSQLite(t)
	repo := postgres.NewSensorRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	avg, err := repo.AverageSince(ctx, now.Add(-10*time.Minute))
	require.NoError(t, err)
	assert.Nil(t, avg)

	seedTwoBarns(t, db, now)
	avg, err = repo.AverageSince(ctx, now.Add(-25*time.Minute))
	require.NoError(t, err)
	require.NotNil(t, avg)
	assert.InDelta(t, 21.5, *avg, 0.0001)
}

func TestSensorRepository_CreateListAndPositions(t *testing.T) {
	db := dbtest.NewSQLite(t)
	repo := postgres.NewSensorRepository(db)
	ctx := context.Background()
	loc := dbtest.SeedLocation(t, db, "Barn A")
	dl := dbtest.SeedDatalogger(t, db, "DL-A", "AA:BB:CC:DD:EE:10", loc)

	addr := "0x28"
	require.NoError(t, repo.Create(ctx, &domainSensor.Sensor{DataloggerID: dl, Name: "s2", Type: "temperature", Unit: "C", Position: "top", Address: &addr}))
	require.NoError(t, repo.Create(ctx, &domainSensor.Sensor{DataloggerID: dl, Name: "s1", Type: "temperature", Unit: "C", Position: "bottom"}))
	require.NoError(t, repo.Create(ctx, &domainSensor.Sensor{DataloggerID: dl, Name: "s3", Type: "temperature", Unit: "C", Position: "top"}))

	sensors, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, sensors, 3)
	assert.Equal(t, "s1", sensors[0].Name)
	assert.Equal(t, "DL-A", sensors[0].DataloggerName)

	positions, err := repo.Positions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"bottom", "top"}, positions)
}

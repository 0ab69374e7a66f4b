package schedule

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairfix/site/db"
)

var scheduleColumns = []string{"id", "make", "model", "year", "interval_miles", "service_task", "description", "severity"}

func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db.SetForTesting(mockDB)
	ClearCache() // no cross-test cache hits
	return mock
}

func TestItemsForVehicle(t *testing.T) {
	mock := setupMockDB(t)

	rows := sqlmock.NewRows(scheduleColumns).
		AddRow(1, "Toyota", "Camry", 2020, 10000, "Oil Service", "Synthetic Oil Change", "Routine").
		AddRow(2, "Toyota", "Camry", 2020, 30000, "Brake Service", "Inspect pads and rotors", "Major")

	mock.ExpectQuery("SELECT id, make, model, year, interval_miles, service_task, description, severity").
		WithArgs("Toyota", "Camry", 2020).
		WillReturnRows(rows)

	items, err := ItemsForVehicle("Toyota", "Camry", 2020)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Oil Service", items[0].ServiceTask)
	assert.Equal(t, 30000, items[1].IntervalMiles)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemsForVehicle_CachedSecondRead(t *testing.T) {
	mock := setupMockDB(t)
	if itemCache == nil {
		require.NoError(t, InitCache())
	}

	rows := sqlmock.NewRows(scheduleColumns).
		AddRow(1, "Toyota", "Camry", 2020, 10000, "Oil Service", "", "Routine")

	// Only one query expected; the second read must come from cache.
	mock.ExpectQuery("SELECT id, make, model, year").
		WithArgs("Toyota", "Camry", 2020).
		WillReturnRows(rows)

	first, err := ItemsForVehicle("Toyota", "Camry", 2020)
	require.NoError(t, err)
	require.Len(t, first, 1)
	itemCache.Wait()

	second, err := ItemsForVehicle("Toyota", "Camry", 2020)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClearCache_DropsCachedRows(t *testing.T) {
	mock := setupMockDB(t)
	if itemCache == nil {
		require.NoError(t, InitCache())
	}

	for i := 0; i < 2; i++ {
		mock.ExpectQuery("SELECT id, make, model, year").
			WithArgs("Toyota", "Camry", 2020).
			WillReturnRows(sqlmock.NewRows(scheduleColumns).
				AddRow(1, "Toyota", "Camry", 2020, 10000, "Oil Service", "", "Routine"))
	}

	first, err := ItemsForVehicle("Toyota", "Camry", 2020)
	require.NoError(t, err)
	itemCache.Wait()

	// After a clear the next read must hit the database again.
	ClearCache()

	second, err := ItemsForVehicle("Toyota", "Camry", 2020)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestForecastForVehicle_NextUpcomingInterval(t *testing.T) {
	mock := setupMockDB(t)

	rows := sqlmock.NewRows(scheduleColumns).
		AddRow(1, "Toyota", "Camry", 2020, 10000, "Oil Service", "", "Routine").
		AddRow(2, "Toyota", "Camry", 2020, 30000, "Brake Service", "", "Major").
		AddRow(3, "Toyota", "Camry", 2020, 60000, "Transmission Service", "", "Critical")

	mock.ExpectQuery("SELECT id, make, model, year").
		WithArgs("Toyota", "Camry", 2020).
		WillReturnRows(rows)

	f, err := ForecastForVehicle("Toyota", "Camry", 2020, 12000)

	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Equal(t, "Good", f.Status)
	assert.Equal(t, 30000, f.NextServiceDueAt)
	assert.Equal(t, 18000, f.MilesUntilService)
	assert.Equal(t, 400, f.EstimatedCost)
}

func TestForecastForVehicle_AllIntervalsBehind(t *testing.T) {
	mock := setupMockDB(t)

	rows := sqlmock.NewRows(scheduleColumns).
		AddRow(1, "Toyota", "Camry", 2020, 10000, "Oil Service", "", "Routine").
		AddRow(2, "Toyota", "Camry", 2020, 30000, "Brake Service", "", "Major")

	mock.ExpectQuery("SELECT id, make, model, year").
		WithArgs("Toyota", "Camry", 2020).
		WillReturnRows(rows)

	f, err := ForecastForVehicle("Toyota", "Camry", 2020, 80000)

	require.NoError(t, err)
	require.NotNil(t, f)
	// Falls back to the highest interval, long overdue.
	assert.Equal(t, "Overdue", f.Status)
	assert.Equal(t, 30000, f.NextServiceDueAt)
	assert.Equal(t, 0, f.MilesUntilService)
}

func TestForecastForVehicle_OverdueThreshold(t *testing.T) {
	tests := []struct {
		name    string
		mileage int
		want    string
	}{
		{"within grace", 10400, "Good"},
		{"at grace boundary", 10500, "Good"},
		{"past grace", 10501, "Overdue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := setupMockDB(t)

			rows := sqlmock.NewRows(scheduleColumns).
				AddRow(1, "Toyota", "Camry", 2020, 10000, "Oil Service", "", "Routine")

			mock.ExpectQuery("SELECT id, make, model, year").
				WithArgs("Toyota", "Camry", 2020).
				WillReturnRows(rows)

			f, err := ForecastForVehicle("Toyota", "Camry", 2020, tt.mileage)
			require.NoError(t, err)
			require.NotNil(t, f)
			assert.Equal(t, tt.want, f.Status)
		})
	}
}

func TestForecastForVehicle_NoSchedule(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery("SELECT id, make, model, year").
		WithArgs("Edsel", "Corsair", 1959).
		WillReturnRows(sqlmock.NewRows(scheduleColumns))

	f, err := ForecastForVehicle("Edsel", "Corsair", 1959, 1000)

	require.NoError(t, err)
	assert.Nil(t, f)
}

func TestEstimateCost(t *testing.T) {
	assert.Equal(t, 80, EstimateCost(SeverityRoutine))
	assert.Equal(t, 400, EstimateCost(SeverityMajor))
	assert.Equal(t, 800, EstimateCost(SeverityCritical))
	assert.Equal(t, 800, EstimateCost("anything else"))
}

package postgres_test

import (
	"context"
	"testing"
	"time"

	"campuspool-backend/internal/domain"
	"campuspool-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var carpoolListColumns = []string{
	"id", "created_by", "carpool_type", "title", "description",
	"event_name", "pickup_details", "dropoff_details",
	"departure_date", "departure_time",
	"capacity", "current_passengers", "tags", "contact", "created_at", "updated_at",
	"display_name", "sso_id",
}

func carpoolListRow(rows *sqlmock.Rows, id int32, title string) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(id, 1, "airport", title, "", nil, nil, nil,
		time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC), "15:30",
		4, 2, "{}", "owner@example.edu", now, now, "Owner", "owner1")
}

func TestCarpoolRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewCarpoolRepository(db)
	ctx := context.Background()

	now := time.Now()
	carpool := &domain.Carpool{
		CreatedBy:     1,
		Type:          domain.CarpoolTypeAirport,
		Title:         "SFO Friday",
		DepartureDate: time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC),
		DepartureTime: "15:30",
		Capacity:      4,
		Contact:       "owner@example.edu",
	}

	mock.ExpectQuery("INSERT INTO carpools").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(10, now, now))

	err = repo.Create(ctx, carpool)
	assert.NoError(t, err)
	assert.Equal(t, int32(10), carpool.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCarpoolRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewCarpoolRepository(db)
	ctx := context.Background()

	t.Run("DefaultSort", func(t *testing.T) {
		rows := carpoolListRow(sqlmock.NewRows(carpoolListColumns), 10, "SFO Friday")
		mock.ExpectQuery(`ORDER BY c.departure_date ASC NULLS LAST`).WillReturnRows(rows)

		views, err := repo.List(ctx, domain.CarpoolFilter{})
		assert.NoError(t, err)
		assert.Len(t, views, 1)
		assert.Equal(t, "SFO Friday", views[0].Title)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UnknownSortKeyFallsBack", func(t *testing.T) {
		// A hostile sort parameter never reaches the SQL string; the query
		// uses the default order instead.
		rows := sqlmock.NewRows(carpoolListColumns)
		mock.ExpectQuery(`ORDER BY c.departure_date ASC NULLS LAST`).WillReturnRows(rows)

		_, err := repo.List(ctx, domain.CarpoolFilter{SortBy: "capacity; DROP TABLE carpools--"})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("SortDescByAllowListedKey", func(t *testing.T) {
		rows := sqlmock.NewRows(carpoolListColumns)
		mock.ExpectQuery(`ORDER BY c.capacity DESC NULLS LAST`).WillReturnRows(rows)

		_, err := repo.List(ctx, domain.CarpoolFilter{SortBy: domain.SortByCapacity, SortDesc: true})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Filters", func(t *testing.T) {
		rows := sqlmock.NewRows(carpoolListColumns)
		mock.ExpectQuery(`WHERE c.carpool_type = \$1 AND (.+)c.title ILIKE \$2(.+)AND c.departure_date >= \$3 AND c.current_passengers < c.capacity`).
			WithArgs("airport", "%sfo%", "2026-09-01").
			WillReturnRows(rows)

		_, err := repo.List(ctx, domain.CarpoolFilter{
			Type:          domain.CarpoolTypeAirport,
			Search:        "sfo",
			DateFrom:      "2026-09-01",
			AvailableOnly: true,
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCarpoolRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewCarpoolRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM carpools").
			WithArgs(int32(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, 10))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM carpools").
			WithArgs(int32(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, 404), domain.ErrNotFound)
	})
}

func TestCarpoolRepository_ListTrips(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewCarpoolRepository(db)
	ctx := context.Background()

	now := time.Now()
	columns := append(append([]string{}, carpoolListColumns...), "role")
	rows := sqlmock.NewRows(columns).
		AddRow(10, 7, "airport", "SFO Friday", "", nil, nil, nil,
			time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC), "15:30",
			4, 2, "{}", "owner@example.edu", now, now, "Owner", "owner1", "owner").
		AddRow(11, 1, "event", "Tahoe trip", "", nil, nil, nil,
			time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC), "07:00",
			3, 1, "{}", "owner@example.edu", now, now, "Owner", "owner1", "approved")

	mock.ExpectQuery("CASE WHEN c.created_by").
		WithArgs(int32(7)).
		WillReturnRows(rows)

	trips, err := repo.ListTrips(ctx, 7)
	assert.NoError(t, err)
	assert.Len(t, trips, 2)
	assert.Equal(t, domain.TripRoleOwner, trips[0].Role)
	assert.Equal(t, "approved", trips[1].Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

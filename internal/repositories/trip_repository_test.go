package repositories

import (
	"context"
	"regexp"
	"testing"

	"dpxcruise/internal/domain"
	"dpxcruise/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var tripCols = []string{"tripid", "start_port", "end_port", "startdate", "enddate", "night", "is_active", "sp", "ep", "ports"}

func TestTripFindCombinesFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`WHERE t\.is_active = 'Y' AND t\.start_port = \(SELECT portid FROM dpx_port WHERE pname LIKE \? ORDER BY portid LIMIT 1\) AND t\.night = \? ORDER BY`).
		WithArgs("%Miami%", 7).
		WillReturnRows(sqlmock.NewRows(tripCols).
			AddRow(3, 1, 2, "2025-06-01", "2025-06-08", 7, "Y", "Miami", "Nassau", "Miami, Cozumel, Nassau"))

	trips, err := TripRepository{DB: db}.Find(context.Background(), models.TripFilter{StartPort: " Miami ", Nights: 7}, true)
	if err != nil {
		t.Fatalf("find error: %v", err)
	}
	if len(trips) != 1 || trips[0].PortNames != "Miami, Cozumel, Nassau" {
		t.Fatalf("unexpected trips: %+v", trips)
	}
	if trips[0].StartPort == nil || *trips[0].StartPort != 1 {
		t.Fatalf("start port not mapped: %+v", trips[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTripFindWithoutFiltersListsAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`LEFT JOIN dpx_port ep ON ep\.portid = t\.end_port\s+ORDER BY t\.startdate`).
		WillReturnRows(sqlmock.NewRows(tripCols).
			AddRow(1, nil, nil, "2025-06-01", "2025-06-08", 7, "N", "", "", ""))

	trips, err := TripRepository{DB: db}.Find(context.Background(), models.TripFilter{}, false)
	if err != nil {
		t.Fatalf("find error: %v", err)
	}
	if len(trips) != 1 || trips[0].StartPort != nil {
		t.Fatalf("unexpected trips: %+v", trips)
	}
}

func TestTripGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE t.tripid = ? AND t.is_active = 'Y'")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(tripCols))

	_, err = TripRepository{DB: db}.GetByID(context.Background(), 9, true)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

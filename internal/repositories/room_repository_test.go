package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestOccupancyCountsAlwaysHasBothKeys(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT occupancy_status, COUNT\\(\\*\\) FROM dpx_pass_room").WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"occupancy_status", "n"}).AddRow("Y", 3))

	got, err := RoomRepository{DB: db}.OccupancyCounts(context.Background(), 2)
	if err != nil {
		t.Fatalf("counts error: %v", err)
	}
	if got["Occupied"] != 3 || got["Not-occupied"] != 0 {
		t.Fatalf("unexpected counts: %v", got)
	}
}

func TestListByRoomsEmptySkipsQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	got, err := PassengerRepository{DB: db}.ListByRooms(context.Background(), nil)
	if err != nil || len(got) != 0 {
		t.Fatalf("got=%v err=%v", got, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected query: %v", err)
	}
}

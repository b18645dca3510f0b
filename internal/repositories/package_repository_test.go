package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestAddSelectionIsIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO dpx_pass_package").WithArgs(int64(4), int64(9), int64(4), int64(9)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO dpx_pass_package").WithArgs(int64(4), int64(9), int64(4), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := PackageRepository{DB: db}
	added, err := repo.AddSelection(context.Background(), 4, 9)
	if err != nil || !added {
		t.Fatalf("first add: added=%v err=%v", added, err)
	}
	added, err = repo.AddSelection(context.Background(), 4, 9)
	if err != nil || added {
		t.Fatalf("second add should be a no-op: added=%v err=%v", added, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

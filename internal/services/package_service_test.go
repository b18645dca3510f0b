package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestDeselectTwiceSucceeds(t *testing.T) {
	db, mock := newMock(t)
	const q = `DELETE FROM dpx_pass_package WHERE trippackid = \? AND passengerid = \?`
	mock.ExpectExec(q).WithArgs(int64(8), int64(9)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs(int64(8), int64(9)).WillReturnResult(sqlmock.NewResult(0, 0))

	svc := PackageService{DB: db}
	require.NoError(t, svc.Deselect(context.Background(), 8, 9))
	require.NoError(t, svc.Deselect(context.Background(), 8, 9))
}

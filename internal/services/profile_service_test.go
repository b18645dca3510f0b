package services

import (
	"context"
	"errors"
	"testing"

	"dpxcruise/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	qUnsave       = `DELETE FROM dpx_saved_pass WHERE userid = \? AND passinfoid = \?`
	qDropUnbooked = `DELETE FROM dpx_passenger_info WHERE passinfoid = \? AND NOT EXISTS`
)

func TestDeleteProfileCommits(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(qUnsave).WithArgs(int64(3), int64(40)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(qDropUnbooked).WithArgs(int64(40), int64(40)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, ProfileService{DB: db}.Delete(context.Background(), 3, 40))
}

func TestDeleteProfileNotSaved(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(qUnsave).WithArgs(int64(3), int64(40)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := ProfileService{DB: db}.Delete(context.Background(), 3, 40)
	assert.True(t, domain.IsNotFound(err), "err=%v", err)
}

func TestDeleteProfileRollsBackOnProfileDeleteError(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(qUnsave).WithArgs(int64(3), int64(40)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(qDropUnbooked).WithArgs(int64(40), int64(40)).WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectRollback()

	err := ProfileService{DB: db}.Delete(context.Background(), 3, 40)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lock wait timeout")
}

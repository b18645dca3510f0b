package services

import (
	"context"
	"testing"

	"dpxcruise/internal/domain"
	"dpxcruise/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTripInput(t *testing.T) {
	got, err := normalizeTripInput(models.TripInput{StartPort: 1, EndPort: 2, StartDate: "2025-07-01", EndDate: "2025-07-08"})
	require.NoError(t, err)
	assert.Equal(t, 7, got.Nights)
	assert.Equal(t, models.TripActive, got.IsActive)

	got, err = normalizeTripInput(models.TripInput{StartDate: "2025-07-01", EndDate: "2025-07-08", Nights: 6, IsActive: " n "})
	require.NoError(t, err)
	assert.Equal(t, 6, got.Nights)
	assert.Equal(t, models.TripInactive, got.IsActive)

	cases := []models.TripInput{
		{StartDate: "07/01/2025", EndDate: "2025-07-08"},
		{StartDate: "2025-07-08", EndDate: "2025-07-01"},
		{StartDate: "2025-07-01", EndDate: "2025-07-08", IsActive: "maybe"},
		{StartDate: "2025-07-01", EndDate: "2025-07-08", Nights: -1},
	}
	for _, in := range cases {
		_, err := normalizeTripInput(in)
		assert.True(t, domain.IsValidation(err), "input %+v: err=%v", in, err)
	}
}

func TestSearchRejectsBadDate(t *testing.T) {
	_, err := TripService{}.Search(context.Background(), models.TripFilter{StartDate: "tomorrow"}, false)
	assert.True(t, domain.IsValidation(err))
}

func TestUpdateUnknownTrip(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("UPDATE dpx_trip SET").WillReturnResult(sqlmock.NewResult(0, 0))

	err := TripService{DB: db}.Update(context.Background(), 99, models.TripInput{StartDate: "2025-07-01", EndDate: "2025-07-08"})
	assert.True(t, domain.IsNotFound(err), "err=%v", err)
}

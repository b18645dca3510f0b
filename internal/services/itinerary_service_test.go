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

func threePorts() *sqlmock.Rows {
	return sqlmock.NewRows(tripPortCols).
		AddRow(1, 4, 10, "Miami", 1, "", "").
		AddRow(2, 4, 20, "Cozumel", 2, "", "").
		AddRow(3, 4, 30, "Nassau", 3, "", "")
}

func TestDeletePortRenumbersRemainingStops(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(qTripLock).WithArgs(int64(4)).WillReturnRows(sqlmock.NewRows([]string{"tripid"}).AddRow(4))
	mock.ExpectExec("DELETE FROM dpx_trip_port WHERE tripportid = \\? AND tripid = \\?").WithArgs(int64(2), int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(qTripPorts).WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(tripPortCols).
			AddRow(1, 4, 10, "Miami", 1, "", "").
			AddRow(3, 4, 30, "Nassau", 3, "", ""))
	mock.ExpectExec("UPDATE dpx_trip_port SET sequence_number = \\?").WithArgs(2, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE dpx_trip SET start_port = \\?, end_port = \\?").WithArgs(int64(10), int64(30), int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, ItineraryService{DB: db}.DeletePort(context.Background(), 4, 2))
}

func TestDeleteLastPortKeepsTripEndpoints(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(qTripLock).WithArgs(int64(4)).WillReturnRows(sqlmock.NewRows([]string{"tripid"}).AddRow(4))
	mock.ExpectExec("DELETE FROM dpx_trip_port").WithArgs(int64(1), int64(4)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(qTripPorts).WithArgs(int64(4)).WillReturnRows(sqlmock.NewRows(tripPortCols))
	mock.ExpectCommit()

	require.NoError(t, ItineraryService{DB: db}.DeletePort(context.Background(), 4, 1))
}

func TestDeletePortUnknownStop(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(qTripLock).WithArgs(int64(4)).WillReturnRows(sqlmock.NewRows([]string{"tripid"}).AddRow(4))
	mock.ExpectExec("DELETE FROM dpx_trip_port").WithArgs(int64(8), int64(4)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := ItineraryService{DB: db}.DeletePort(context.Background(), 4, 8)
	assert.True(t, domain.IsNotFound(err), "err=%v", err)
}

func TestAddPortAppendsAfterLastStop(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(qTripLock).WithArgs(int64(4)).WillReturnRows(sqlmock.NewRows([]string{"tripid"}).AddRow(4))
	mock.ExpectQuery("SELECT portid FROM dpx_port WHERE portid = \\?").WithArgs(int64(40)).
		WillReturnRows(sqlmock.NewRows([]string{"portid"}).AddRow(40))
	mock.ExpectQuery(qTripPorts).WithArgs(int64(4)).WillReturnRows(threePorts())
	mock.ExpectExec("INSERT INTO dpx_trip_port").
		WithArgs(int64(4), int64(40), 4, "2025-06-05 08:00:00", "2025-06-05 17:30:00").
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectExec("UPDATE dpx_trip SET start_port").WithArgs(int64(10), int64(40), int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tp, err := ItineraryService{DB: db}.AddPort(context.Background(), 4, 40, "2025-06-05T08:00", "2025-06-05 17:30:00")
	require.NoError(t, err)
	assert.Equal(t, 4, tp.Sequence)
	assert.Equal(t, int64(9), tp.ID)
}

func TestAddPortRejectsDepartureBeforeArrival(t *testing.T) {
	_, err := ItineraryService{}.AddPort(context.Background(), 4, 40, "2025-06-05 18:00:00", "2025-06-05 08:00:00")
	assert.True(t, domain.IsValidation(err))
}

func TestReorderPortsAppliesPermutation(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(qTripLock).WithArgs(int64(4)).WillReturnRows(sqlmock.NewRows([]string{"tripid"}).AddRow(4))
	mock.ExpectQuery(qTripPorts).WithArgs(int64(4)).WillReturnRows(threePorts())
	mock.ExpectExec("UPDATE dpx_trip_port SET sequence_number").WithArgs(1, int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE dpx_trip_port SET sequence_number").WithArgs(2, int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE dpx_trip_port SET sequence_number").WithArgs(3, int64(2)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE dpx_trip SET start_port").WithArgs(int64(30), int64(20), int64(4)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	order := []models.PortOrder{
		{TripPortID: 1, Sequence: 2},
		{TripPortID: 2, Sequence: 3},
		{TripPortID: 3, Sequence: 1},
	}
	require.NoError(t, ItineraryService{DB: db}.ReorderPorts(context.Background(), 4, order))
}

func TestReorderPortsRejectsInvalidOrderWithoutWrites(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(qTripLock).WithArgs(int64(4)).WillReturnRows(sqlmock.NewRows([]string{"tripid"}).AddRow(4))
	mock.ExpectQuery(qTripPorts).WithArgs(int64(4)).WillReturnRows(threePorts())
	mock.ExpectRollback()

	order := []models.PortOrder{
		{TripPortID: 1, Sequence: 1},
		{TripPortID: 2, Sequence: 1},
		{TripPortID: 3, Sequence: 2},
	}
	err := ItineraryService{DB: db}.ReorderPorts(context.Background(), 4, order)
	assert.True(t, domain.IsValidation(err), "err=%v", err)
}

func TestApplyOrderValidation(t *testing.T) {
	ports := []models.TripPort{{ID: 1, PortID: 10, Sequence: 1}, {ID: 2, PortID: 20, Sequence: 2}}

	tests := []struct {
		name  string
		order []models.PortOrder
	}{
		{"missing stop", []models.PortOrder{{TripPortID: 1, Sequence: 1}}},
		{"foreign stop", []models.PortOrder{{TripPortID: 1, Sequence: 1}, {TripPortID: 7, Sequence: 2}}},
		{"duplicate stop", []models.PortOrder{{TripPortID: 1, Sequence: 1}, {TripPortID: 1, Sequence: 2}}},
		{"gap", []models.PortOrder{{TripPortID: 1, Sequence: 1}, {TripPortID: 2, Sequence: 3}}},
		{"zero", []models.PortOrder{{TripPortID: 1, Sequence: 0}, {TripPortID: 2, Sequence: 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := applyOrder(ports, tt.order)
			assert.True(t, domain.IsValidation(err), "err=%v", err)
		})
	}

	got, err := applyOrder(ports, []models.PortOrder{{TripPortID: 2, Sequence: 1}, {TripPortID: 1, Sequence: 2}})
	require.NoError(t, err)
	assert.Equal(t, []int64{20, 10}, []int64{got[0].PortID, got[1].PortID})
}

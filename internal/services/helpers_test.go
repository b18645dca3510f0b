package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)

func clock() time.Time { return fixedNow }

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

var (
	groupCols     = []string{"groupid", "tripid", "group_size"}
	roomCols      = []string{"roomid", "roomnumber", "price", "occupancy_status", "tripid", "sid", "locaid", "groupid", "type", "bed", "location_side"}
	passengerCols = []string{"passengerid", "groupid", "roomid", "passinfoid", "fname", "lname", "email", "gender", "nationality"}
	tripPortCols  = []string{"tripportid", "tripid", "portid", "pname", "sequence_number", "arrivaltime", "departuretime"}
	invoiceCols   = []string{"inid", "totalamount", "duedate", "tripid", "groupid"}
)

const (
	qGroupLock   = `SELECT groupid, tripid, group_size FROM dpx_group WHERE groupid = \? FOR UPDATE`
	qGroup       = `SELECT groupid, tripid, group_size FROM dpx_group WHERE groupid = \?`
	qRoomLock    = `FROM dpx_pass_room r .* WHERE r\.roomid = \? FOR UPDATE`
	qPassenger   = `FROM dpx_passenger p JOIN dpx_passenger_info pi ON pi\.passinfoid = p\.passinfoid WHERE p\.passengerid = \?`
	qTripLock    = `SELECT tripid FROM dpx_trip WHERE tripid = \? FOR UPDATE`
	qTripPorts   = `FROM dpx_trip_port tp JOIN dpx_port p`
	qInvoiceLock = `FROM dpx_invoice WHERE inid = \? FOR UPDATE`
	qSumPayments = `SELECT COALESCE\(SUM\(payamount\), 0\) FROM dpx_payment WHERE inid = \?`
)

package repositories

import (
	"context"
	"database/sql"
	"errors"

	intdb "dpxcruise/internal/db"
	"dpxcruise/internal/domain/models"
)

type PortRepository struct {
	DB intdb.DBTX
}

func (r PortRepository) db() intdb.DBTX { return conn(r.DB) }

func (r PortRepository) List(ctx context.Context) ([]models.Port, error) {
	rows, err := r.db().QueryContext(ctx, `SELECT portid, pname FROM dpx_port ORDER BY pname ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Port{}
	for rows.Next() {
		var p models.Port
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r PortRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var got int64
	err := r.db().QueryRowContext(ctx, `SELECT portid FROM dpx_port WHERE portid = ?`, id).Scan(&got)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// TripPortRepository stores the ordered itinerary of each trip.
type TripPortRepository struct {
	DB intdb.DBTX
}

func (r TripPortRepository) db() intdb.DBTX { return conn(r.DB) }

func (r TripPortRepository) ListByTrip(ctx context.Context, tripID int64) ([]models.TripPort, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT tp.tripportid, tp.tripid, tp.portid, p.pname, tp.sequence_number,
			COALESCE(DATE_FORMAT(tp.arrivaltime, '%Y-%m-%d %H:%i:%s'), ''),
			COALESCE(DATE_FORMAT(tp.departuretime, '%Y-%m-%d %H:%i:%s'), '')
		FROM dpx_trip_port tp
		JOIN dpx_port p ON p.portid = tp.portid
		WHERE tp.tripid = ?
		ORDER BY tp.sequence_number ASC, tp.tripportid ASC
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TripPort{}
	for rows.Next() {
		var tp models.TripPort
		if err := rows.Scan(&tp.ID, &tp.TripID, &tp.PortID, &tp.PortName, &tp.Sequence, &tp.ArrivalTime, &tp.DepartureTime); err != nil {
			return nil, err
		}
		out = append(out, tp)
	}
	return out, rows.Err()
}

func (r TripPortRepository) Insert(ctx context.Context, tp models.TripPort) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO dpx_trip_port (tripid, portid, sequence_number, arrivaltime, departuretime)
		VALUES (?, ?, ?, ?, ?)
	`, tp.TripID, tp.PortID, tp.Sequence, intdb.NullIfEmpty(tp.ArrivalTime), intdb.NullIfEmpty(tp.DepartureTime))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r TripPortRepository) SetSequence(ctx context.Context, tripPortID int64, seq int) error {
	_, err := r.db().ExecContext(ctx, `UPDATE dpx_trip_port SET sequence_number = ? WHERE tripportid = ?`, seq, tripPortID)
	return err
}

func (r TripPortRepository) SetTimes(ctx context.Context, tripPortID int64, arrival, departure string) (int64, error) {
	res, err := r.db().ExecContext(ctx,
		`UPDATE dpx_trip_port SET arrivaltime = ?, departuretime = ? WHERE tripportid = ?`,
		intdb.NullIfEmpty(arrival), intdb.NullIfEmpty(departure), tripPortID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r TripPortRepository) Delete(ctx context.Context, tripID, tripPortID int64) (int64, error) {
	res, err := r.db().ExecContext(ctx, `DELETE FROM dpx_trip_port WHERE tripportid = ? AND tripid = ?`, tripPortID, tripID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

package repositories

import (
	"context"
	"database/sql"
	"strings"

	intdb "dpxcruise/internal/db"
	"dpxcruise/internal/domain/models"
)

type TripRepository struct {
	DB intdb.DBTX
}

func (r TripRepository) db() intdb.DBTX { return conn(r.DB) }

const tripSelect = `
	SELECT t.tripid, t.start_port, t.end_port,
		DATE_FORMAT(t.startdate, '%Y-%m-%d'), DATE_FORMAT(t.enddate, '%Y-%m-%d'),
		t.night, t.is_active,
		COALESCE(sp.pname, ''), COALESCE(ep.pname, ''),
		COALESCE((
			SELECT GROUP_CONCAT(p.pname ORDER BY tp.sequence_number SEPARATOR ', ')
			FROM dpx_trip_port tp
			JOIN dpx_port p ON p.portid = tp.portid
			WHERE tp.tripid = t.tripid
		), '')
	FROM dpx_trip t
	LEFT JOIN dpx_port sp ON sp.portid = t.start_port
	LEFT JOIN dpx_port ep ON ep.portid = t.end_port
`

// Find applies every non-empty filter conjunctively. Port filters match the
// first port whose name contains the text.
func (r TripRepository) Find(ctx context.Context, f models.TripFilter, activeOnly bool) ([]models.Trip, error) {
	var (
		conds []string
		args  []any
	)
	if activeOnly {
		conds = append(conds, "t.is_active = 'Y'")
	}
	if s := strings.TrimSpace(f.StartPort); s != "" {
		conds = append(conds, "t.start_port = (SELECT portid FROM dpx_port WHERE pname LIKE ? ORDER BY portid LIMIT 1)")
		args = append(args, "%"+s+"%")
	}
	if s := strings.TrimSpace(f.EndPort); s != "" {
		conds = append(conds, "t.end_port = (SELECT portid FROM dpx_port WHERE pname LIKE ? ORDER BY portid LIMIT 1)")
		args = append(args, "%"+s+"%")
	}
	if f.StartDate != "" {
		conds = append(conds, "t.startdate >= ?")
		args = append(args, f.StartDate)
	}
	if f.EndDate != "" {
		conds = append(conds, "t.enddate <= ?")
		args = append(args, f.EndDate)
	}
	if f.Nights > 0 {
		conds = append(conds, "t.night = ?")
		args = append(args, f.Nights)
	}

	query := tripSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY t.startdate ASC, t.tripid ASC"

	rows, err := r.db().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TripRepository) GetByID(ctx context.Context, id int64, activeOnly bool) (models.Trip, error) {
	query := tripSelect + " WHERE t.tripid = ?"
	if activeOnly {
		query += " AND t.is_active = 'Y'"
	}
	t, err := scanTrip(r.db().QueryRowContext(ctx, query, id))
	if err != nil {
		return models.Trip{}, notFound(err, "trip")
	}
	return t, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(s rowScanner) (models.Trip, error) {
	var (
		t          models.Trip
		start, end sql.NullInt64
	)
	if err := s.Scan(&t.ID, &start, &end, &t.StartDate, &t.EndDate, &t.Nights, &t.IsActive,
		&t.StartPortName, &t.EndPortName, &t.PortNames); err != nil {
		return models.Trip{}, err
	}
	t.StartPort = nullableID(start)
	t.EndPort = nullableID(end)
	return t, nil
}

// Lock takes a row lock on the trip for the rest of the transaction.
func (r TripRepository) Lock(ctx context.Context, id int64) error {
	var got int64
	err := r.db().QueryRowContext(ctx, `SELECT tripid FROM dpx_trip WHERE tripid = ? FOR UPDATE`, id).Scan(&got)
	return notFound(err, "trip")
}

func (r TripRepository) Nights(ctx context.Context, id int64) (int, error) {
	var n int
	err := r.db().QueryRowContext(ctx, `SELECT night FROM dpx_trip WHERE tripid = ?`, id).Scan(&n)
	return n, notFound(err, "trip")
}

func (r TripRepository) Create(ctx context.Context, in models.TripInput) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO dpx_trip (start_port, end_port, startdate, enddate, night, is_active)
		VALUES (?, ?, ?, ?, ?, ?)
	`, intdb.NullIfZero(in.StartPort), intdb.NullIfZero(in.EndPort), in.StartDate, in.EndDate, in.Nights, in.IsActive)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update rewrites the schedule fields and the active flag.
func (r TripRepository) Update(ctx context.Context, id int64, in models.TripInput) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		UPDATE dpx_trip SET startdate = ?, enddate = ?, night = ?, is_active = ?
		WHERE tripid = ?
	`, in.StartDate, in.EndDate, in.Nights, in.IsActive, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r TripRepository) SetEndpoints(ctx context.Context, id, startPort, endPort int64) error {
	_, err := r.db().ExecContext(ctx, `UPDATE dpx_trip SET start_port = ?, end_port = ? WHERE tripid = ?`, startPort, endPort, id)
	return err
}

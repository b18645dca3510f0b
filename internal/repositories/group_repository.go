package repositories

import (
	"context"

	intdb "dpxcruise/internal/db"
	"dpxcruise/internal/domain/models"
)

type GroupRepository struct {
	DB intdb.DBTX
}

func (r GroupRepository) db() intdb.DBTX { return conn(r.DB) }

func (r GroupRepository) Create(ctx context.Context, tripID int64, size int) (int64, error) {
	res, err := r.db().ExecContext(ctx, `INSERT INTO dpx_group (tripid, group_size) VALUES (?, ?)`, tripID, size)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r GroupRepository) GetByID(ctx context.Context, id int64) (models.Group, error) {
	var g models.Group
	err := r.db().QueryRowContext(ctx, `SELECT groupid, tripid, group_size FROM dpx_group WHERE groupid = ?`, id).
		Scan(&g.ID, &g.TripID, &g.Size)
	if err != nil {
		return models.Group{}, notFound(err, "group")
	}
	return g, nil
}

// GetForUpdate locks the group row for the rest of the transaction.
func (r GroupRepository) GetForUpdate(ctx context.Context, id int64) (models.Group, error) {
	var g models.Group
	err := r.db().QueryRowContext(ctx, `SELECT groupid, tripid, group_size FROM dpx_group WHERE groupid = ? FOR UPDATE`, id).
		Scan(&g.ID, &g.TripID, &g.Size)
	if err != nil {
		return models.Group{}, notFound(err, "group")
	}
	return g, nil
}

func (r GroupRepository) SetSize(ctx context.Context, id int64, size int) error {
	_, err := r.db().ExecContext(ctx, `UPDATE dpx_group SET group_size = ? WHERE groupid = ?`, size, id)
	return err
}

func (r GroupRepository) ListByTrip(ctx context.Context, tripID int64) ([]models.Group, error) {
	rows, err := r.db().QueryContext(ctx, `SELECT groupid, tripid, group_size FROM dpx_group WHERE tripid = ? ORDER BY groupid`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Group{}
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.TripID, &g.Size); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

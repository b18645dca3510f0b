package repositories

import (
	"context"
	"database/sql"

	intdb "dpxcruise/internal/db"
	"dpxcruise/internal/domain/models"
)

type RoomRepository struct {
	DB intdb.DBTX
}

func (r RoomRepository) db() intdb.DBTX { return conn(r.DB) }

const roomSelect = `
	SELECT r.roomid, r.roomnumber, r.price, r.occupancy_status, r.tripid, r.sid, r.locaid, r.groupid,
		s.type, s.bed, COALESCE(l.location_side, '')
	FROM dpx_pass_room r
	JOIN dpx_stateroom s ON s.sid = r.sid
	LEFT JOIN dpx_location l ON l.locaid = r.locaid
`

func scanRoom(s rowScanner) (models.Room, error) {
	var (
		rm    models.Room
		group sql.NullInt64
	)
	if err := s.Scan(&rm.ID, &rm.Number, &rm.Price, &rm.Status, &rm.TripID, &rm.StateroomID, &rm.LocationID, &group,
		&rm.Type, &rm.Beds, &rm.LocationSide); err != nil {
		return models.Room{}, err
	}
	rm.GroupID = nullableID(group)
	return rm, nil
}

func (r RoomRepository) list(ctx context.Context, where string, args ...any) ([]models.Room, error) {
	rows, err := r.db().QueryContext(ctx, roomSelect+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Room{}
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

// TypesForTrip summarizes unoccupied rooms of a trip by stateroom type.
func (r RoomRepository) TypesForTrip(ctx context.Context, tripID int64) ([]models.RoomTypeSummary, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT s.sid, s.type, s.size, s.bed, s.bathroom, s.balcony, COUNT(r.roomid), MIN(r.price)
		FROM dpx_pass_room r
		JOIN dpx_stateroom s ON s.sid = r.sid
		WHERE r.tripid = ? AND r.occupancy_status = 'N'
		GROUP BY s.sid, s.type, s.size, s.bed, s.bathroom, s.balcony
		ORDER BY MIN(r.price) ASC, s.sid ASC
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.RoomTypeSummary{}
	for rows.Next() {
		var t models.RoomTypeSummary
		if err := rows.Scan(&t.StateroomID, &t.Type, &t.Size, &t.Beds, &t.Bathroom, &t.Balcony, &t.EmptyRooms, &t.MinPrice); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r RoomRepository) AvailableByType(ctx context.Context, tripID, stateroomID int64) ([]models.Room, error) {
	return r.list(ctx, ` WHERE r.tripid = ? AND r.sid = ? AND r.occupancy_status = 'N' ORDER BY r.roomnumber ASC`, tripID, stateroomID)
}

func (r RoomRepository) ListByGroup(ctx context.Context, groupID int64) ([]models.Room, error) {
	return r.list(ctx, ` WHERE r.groupid = ? ORDER BY r.roomnumber ASC`, groupID)
}

func (r RoomRepository) ListByTrip(ctx context.Context, tripID int64) ([]models.Room, error) {
	return r.list(ctx, ` WHERE r.tripid = ? ORDER BY r.roomnumber ASC`, tripID)
}

func (r RoomRepository) GetByID(ctx context.Context, id int64) (models.Room, error) {
	rm, err := scanRoom(r.db().QueryRowContext(ctx, roomSelect+` WHERE r.roomid = ?`, id))
	if err != nil {
		return models.Room{}, notFound(err, "room")
	}
	return rm, nil
}

// GetForUpdate locks the room row for the rest of the transaction.
func (r RoomRepository) GetForUpdate(ctx context.Context, id int64) (models.Room, error) {
	rm, err := scanRoom(r.db().QueryRowContext(ctx, roomSelect+` WHERE r.roomid = ? FOR UPDATE`, id))
	if err != nil {
		return models.Room{}, notFound(err, "room")
	}
	return rm, nil
}

// Occupy claims the room for groupID only if it is free or already held by
// that group. It returns the number of rows matched.
func (r RoomRepository) Occupy(ctx context.Context, roomID, groupID int64) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		UPDATE dpx_pass_room SET occupancy_status = 'Y', groupid = ?
		WHERE roomid = ? AND (occupancy_status = 'N' OR groupid = ?)
	`, groupID, roomID, groupID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r RoomRepository) Release(ctx context.Context, roomID int64) (int64, error) {
	res, err := r.db().ExecContext(ctx, `UPDATE dpx_pass_room SET occupancy_status = 'N', groupid = NULL WHERE roomid = ?`, roomID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r RoomRepository) Create(ctx context.Context, tripID int64, in models.RoomInput) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO dpx_pass_room (roomnumber, price, occupancy_status, tripid, sid, locaid)
		VALUES (?, ?, 'N', ?, ?, ?)
	`, in.Number, in.Price, tripID, in.StateroomID, in.LocationID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r RoomRepository) Update(ctx context.Context, roomID int64, in models.RoomInput) (int64, error) {
	res, err := r.db().ExecContext(ctx,
		`UPDATE dpx_pass_room SET roomnumber = ?, price = ?, sid = ?, locaid = ? WHERE roomid = ?`,
		in.Number, in.Price, in.StateroomID, in.LocationID, roomID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r RoomRepository) Delete(ctx context.Context, roomID int64) (int64, error) {
	res, err := r.db().ExecContext(ctx, `DELETE FROM dpx_pass_room WHERE roomid = ?`, roomID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r RoomRepository) Options(ctx context.Context) (models.RoomOptions, error) {
	out := models.RoomOptions{Staterooms: []models.Stateroom{}, Locations: []models.Location{}}

	rows, err := r.db().QueryContext(ctx, `SELECT sid, type, size, bed, bathroom, balcony FROM dpx_stateroom ORDER BY sid`)
	if err != nil {
		return out, err
	}
	for rows.Next() {
		var s models.Stateroom
		if err := rows.Scan(&s.ID, &s.Type, &s.Size, &s.Beds, &s.Bathroom, &s.Balcony); err != nil {
			rows.Close()
			return out, err
		}
		out.Staterooms = append(out.Staterooms, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return out, err
	}

	rows, err = r.db().QueryContext(ctx, `SELECT locaid, location_side FROM dpx_location ORDER BY locaid`)
	if err != nil {
		return out, err
	}
	defer rows.Close()
	for rows.Next() {
		var l models.Location
		if err := rows.Scan(&l.ID, &l.Side); err != nil {
			return out, err
		}
		out.Locations = append(out.Locations, l)
	}
	return out, rows.Err()
}

// OccupancyCounts counts rooms of a trip by occupancy status.
func (r RoomRepository) OccupancyCounts(ctx context.Context, tripID int64) (map[string]int, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT occupancy_status, COUNT(*) FROM dpx_pass_room WHERE tripid = ? GROUP BY occupancy_status
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{"Occupied": 0, "Not-occupied": 0}
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		if status == models.RoomOccupied {
			out["Occupied"] += n
		} else {
			out["Not-occupied"] += n
		}
	}
	return out, rows.Err()
}

package repositories

import (
	"context"
	"database/sql"
	"strings"

	intdb "dpxcruise/internal/db"
	"dpxcruise/internal/domain/models"
)

// PassengerRepository manages booked passengers of a group.
type PassengerRepository struct {
	DB intdb.DBTX
}

func (r PassengerRepository) db() intdb.DBTX { return conn(r.DB) }

const passengerSelect = `
	SELECT p.passengerid, p.groupid, p.roomid, p.passinfoid,
		pi.fname, pi.lname, COALESCE(pi.email, ''), COALESCE(pi.gender, ''), COALESCE(pi.nationality, '')
	FROM dpx_passenger p
	JOIN dpx_passenger_info pi ON pi.passinfoid = p.passinfoid
`

func (r PassengerRepository) list(ctx context.Context, where string, args ...any) ([]models.Passenger, error) {
	rows, err := r.db().QueryContext(ctx, passengerSelect+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Passenger{}
	for rows.Next() {
		var (
			p    models.Passenger
			room sql.NullInt64
		)
		if err := rows.Scan(&p.ID, &p.GroupID, &room, &p.PassInfoID, &p.FirstName, &p.LastName, &p.Email, &p.Gender, &p.Nationality); err != nil {
			return nil, err
		}
		p.RoomID = nullableID(room)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r PassengerRepository) ListByGroup(ctx context.Context, groupID int64) ([]models.Passenger, error) {
	return r.list(ctx, ` WHERE p.groupid = ? ORDER BY p.passengerid`, groupID)
}

func (r PassengerRepository) ListByRooms(ctx context.Context, roomIDs []int64) ([]models.Passenger, error) {
	if len(roomIDs) == 0 {
		return []models.Passenger{}, nil
	}
	args := make([]any, len(roomIDs))
	for i, id := range roomIDs {
		args[i] = id
	}
	in := strings.TrimSuffix(strings.Repeat("?,", len(roomIDs)), ",")
	return r.list(ctx, ` WHERE p.roomid IN (`+in+`) ORDER BY p.roomid, p.passengerid`, args...)
}

func (r PassengerRepository) ListByTrip(ctx context.Context, tripID int64) ([]models.Passenger, error) {
	return r.list(ctx, ` JOIN dpx_group g ON g.groupid = p.groupid WHERE g.tripid = ? ORDER BY p.groupid, p.passengerid`, tripID)
}

func (r PassengerRepository) GetByID(ctx context.Context, id int64) (models.Passenger, error) {
	rows, err := r.list(ctx, ` WHERE p.passengerid = ?`, id)
	if err != nil {
		return models.Passenger{}, err
	}
	if len(rows) == 0 {
		return models.Passenger{}, notFound(sql.ErrNoRows, "passenger")
	}
	return rows[0], nil
}

// InsertBatch adds one unroomed passenger per profile in a single
// statement. MySQL hands a multi-row insert consecutive ids starting at
// LastInsertId.
func (r PassengerRepository) InsertBatch(ctx context.Context, groupID int64, passInfoIDs []int64) ([]int64, error) {
	if len(passInfoIDs) == 0 {
		return []int64{}, nil
	}
	args := make([]any, 0, 2*len(passInfoIDs))
	for _, id := range passInfoIDs {
		args = append(args, groupID, id)
	}
	values := strings.TrimSuffix(strings.Repeat("(?, ?),", len(passInfoIDs)), ",")
	res, err := r.db().ExecContext(ctx, `INSERT INTO dpx_passenger (groupid, passinfoid) VALUES `+values, args...)
	if err != nil {
		return nil, err
	}
	first, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	ids := make([]int64, len(passInfoIDs))
	for i := range ids {
		ids[i] = first + int64(i)
	}
	return ids, nil
}

func (r PassengerRepository) CountByGroup(ctx context.Context, groupID int64) (int, error) {
	var n int
	err := r.db().QueryRowContext(ctx, `SELECT COUNT(*) FROM dpx_passenger WHERE groupid = ?`, groupID).Scan(&n)
	return n, err
}

func (r PassengerRepository) CountInRoom(ctx context.Context, roomID int64) (int, error) {
	var n int
	err := r.db().QueryRowContext(ctx, `SELECT COUNT(*) FROM dpx_passenger WHERE roomid = ?`, roomID).Scan(&n)
	return n, err
}

func (r PassengerRepository) SetRoom(ctx context.Context, passengerID, roomID int64) (int64, error) {
	res, err := r.db().ExecContext(ctx, `UPDATE dpx_passenger SET roomid = ? WHERE passengerid = ?`, roomID, passengerID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r PassengerRepository) ClearRoom(ctx context.Context, passengerID int64) (int64, error) {
	res, err := r.db().ExecContext(ctx, `UPDATE dpx_passenger SET roomid = NULL WHERE passengerid = ?`, passengerID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r PassengerRepository) ClearRoomForAll(ctx context.Context, roomID int64) error {
	_, err := r.db().ExecContext(ctx, `UPDATE dpx_passenger SET roomid = NULL WHERE roomid = ?`, roomID)
	return err
}

func (r PassengerRepository) Delete(ctx context.Context, passengerID int64) (int64, error) {
	res, err := r.db().ExecContext(ctx, `DELETE FROM dpx_passenger WHERE passengerid = ?`, passengerID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// PassengerInfoRepository stores traveler profiles and the profiles a user
// has saved for reuse.
type PassengerInfoRepository struct {
	DB intdb.DBTX
}

func (r PassengerInfoRepository) db() intdb.DBTX { return conn(r.DB) }

func (r PassengerInfoRepository) Create(ctx context.Context, p models.PassengerInfo) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO dpx_passenger_info
			(fname, lname, birthdate, street, city, state, country, zipcode, gender, nationality, email, phone)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.FirstName, p.LastName, intdb.NullIfEmpty(p.Birthdate), intdb.NullIfEmpty(p.Street), intdb.NullIfEmpty(p.City),
		intdb.NullIfEmpty(p.State), intdb.NullIfEmpty(p.Country), intdb.NullIfEmpty(p.Zipcode), intdb.NullIfEmpty(p.Gender),
		intdb.NullIfEmpty(p.Nationality), intdb.NullIfEmpty(p.Email), intdb.NullIfEmpty(p.Phone))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r PassengerInfoRepository) Save(ctx context.Context, userID, passInfoID int64) error {
	_, err := r.db().ExecContext(ctx, `INSERT INTO dpx_saved_pass (userid, passinfoid) VALUES (?, ?)`, userID, passInfoID)
	return err
}

func (r PassengerInfoRepository) ListSaved(ctx context.Context, userID int64) ([]models.PassengerInfo, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT pi.passinfoid, pi.fname, pi.lname,
			COALESCE(DATE_FORMAT(pi.birthdate, '%Y-%m-%d'), ''),
			COALESCE(pi.street, ''), COALESCE(pi.city, ''), COALESCE(pi.state, ''), COALESCE(pi.country, ''),
			COALESCE(pi.zipcode, ''), COALESCE(pi.gender, ''), COALESCE(pi.nationality, ''),
			COALESCE(pi.email, ''), COALESCE(pi.phone, '')
		FROM dpx_saved_pass sp
		JOIN dpx_passenger_info pi ON pi.passinfoid = sp.passinfoid
		WHERE sp.userid = ?
		ORDER BY pi.passinfoid
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.PassengerInfo{}
	for rows.Next() {
		var p models.PassengerInfo
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Birthdate, &p.Street, &p.City, &p.State,
			&p.Country, &p.Zipcode, &p.Gender, &p.Nationality, &p.Email, &p.Phone); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r PassengerInfoRepository) Unsave(ctx context.Context, userID, passInfoID int64) (int64, error) {
	res, err := r.db().ExecContext(ctx, `DELETE FROM dpx_saved_pass WHERE userid = ? AND passinfoid = ?`, userID, passInfoID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteIfUnbooked removes the profile unless a booked passenger still
// references it.
func (r PassengerInfoRepository) DeleteIfUnbooked(ctx context.Context, passInfoID int64) error {
	_, err := r.db().ExecContext(ctx, `
		DELETE FROM dpx_passenger_info
		WHERE passinfoid = ?
		  AND NOT EXISTS (SELECT 1 FROM dpx_passenger WHERE passinfoid = ?)
	`, passInfoID, passInfoID)
	return err
}

// Distribution counts a trip's booked passengers by nationality and gender.
func (r PassengerInfoRepository) Distribution(ctx context.Context, tripID int64) (models.PassengerDistribution, error) {
	out := models.PassengerDistribution{Nationality: map[string]int{}, Gender: map[string]int{}}
	rows, err := r.db().QueryContext(ctx, `
		SELECT COALESCE(NULLIF(pi.nationality, ''), 'Unknown'), COALESCE(NULLIF(pi.gender, ''), 'Unknown')
		FROM dpx_passenger p
		JOIN dpx_group g ON g.groupid = p.groupid
		JOIN dpx_passenger_info pi ON pi.passinfoid = p.passinfoid
		WHERE g.tripid = ?
	`, tripID)
	if err != nil {
		return out, err
	}
	defer rows.Close()
	for rows.Next() {
		var nationality, gender string
		if err := rows.Scan(&nationality, &gender); err != nil {
			return out, err
		}
		out.Nationality[nationality]++
		out.Gender[gender]++
	}
	return out, rows.Err()
}

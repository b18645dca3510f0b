package repositories

import (
	"context"

	intdb "dpxcruise/internal/db"
	"dpxcruise/internal/domain/models"
)

// CatalogRepository covers the restaurants and activities a ship offers and
// which of them run on each trip.
type CatalogRepository struct {
	DB intdb.DBTX
}

func (r CatalogRepository) db() intdb.DBTX { return conn(r.DB) }

const restaurantSelect = `
	SELECT r.resid, r.resname, r.restype,
		COALESCE(TIME_FORMAT(r.resstarttime, '%H:%i'), ''), COALESCE(TIME_FORMAT(r.resendtime, '%H:%i'), ''),
		COALESCE(r.resfloor, 0)
	FROM dpx_restaurant r
`

func (r CatalogRepository) restaurants(ctx context.Context, query string, args ...any) ([]models.Restaurant, error) {
	rows, err := r.db().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Restaurant{}
	for rows.Next() {
		var res models.Restaurant
		if err := rows.Scan(&res.ID, &res.Name, &res.Type, &res.StartTime, &res.EndTime, &res.Floor); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r CatalogRepository) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	return r.restaurants(ctx, restaurantSelect+` ORDER BY r.resname`)
}

func (r CatalogRepository) ListTripRestaurants(ctx context.Context, tripID int64) ([]models.Restaurant, error) {
	return r.restaurants(ctx, restaurantSelect+`
		JOIN dpx_trip_restaurant tr ON tr.resid = r.resid
		WHERE tr.tripid = ?
		ORDER BY r.resname`, tripID)
}

func (r CatalogRepository) AddTripRestaurant(ctx context.Context, tripID, restaurantID int64) error {
	_, err := r.db().ExecContext(ctx, `INSERT INTO dpx_trip_restaurant (tripid, resid) VALUES (?, ?)`, tripID, restaurantID)
	return err
}

func (r CatalogRepository) RemoveTripRestaurant(ctx context.Context, tripID, restaurantID int64) (int64, error) {
	res, err := r.db().ExecContext(ctx, `DELETE FROM dpx_trip_restaurant WHERE tripid = ? AND resid = ?`, tripID, restaurantID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const activitySelect = `
	SELECT a.actid, a.actname, COALESCE(a.unit, 0), COALESCE(a.min_age_limit, 0), COALESCE(a.max_age_limit, 0),
		COALESCE((SELECT GROUP_CONCAT(af.floor ORDER BY af.floor SEPARATOR ', ') FROM dpx_activity_floor af WHERE af.actid = a.actid), '')
	FROM dpx_activity a
`

func (r CatalogRepository) activities(ctx context.Context, query string, args ...any) ([]models.Activity, error) {
	rows, err := r.db().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Activity{}
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.Name, &a.Units, &a.MinAge, &a.MaxAge, &a.Floors); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r CatalogRepository) ListActivities(ctx context.Context) ([]models.Activity, error) {
	return r.activities(ctx, activitySelect+` ORDER BY a.actname`)
}

func (r CatalogRepository) ListTripActivities(ctx context.Context, tripID int64) ([]models.Activity, error) {
	return r.activities(ctx, activitySelect+`
		JOIN dpx_trip_activity ta ON ta.actid = a.actid
		WHERE ta.tripid = ?
		ORDER BY a.actname`, tripID)
}

func (r CatalogRepository) AddTripActivity(ctx context.Context, tripID, activityID int64) error {
	_, err := r.db().ExecContext(ctx, `INSERT INTO dpx_trip_activity (tripid, actid) VALUES (?, ?)`, tripID, activityID)
	return err
}

func (r CatalogRepository) RemoveTripActivity(ctx context.Context, tripID, activityID int64) (int64, error) {
	res, err := r.db().ExecContext(ctx, `DELETE FROM dpx_trip_activity WHERE tripid = ? AND actid = ?`, tripID, activityID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

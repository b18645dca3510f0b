package repositories

import (
	"context"

	intdb "dpxcruise/internal/db"
	"dpxcruise/internal/domain/models"
)

type PackageRepository struct {
	DB intdb.DBTX
}

func (r PackageRepository) db() intdb.DBTX { return conn(r.DB) }

func (r PackageRepository) ListCatalog(ctx context.Context) ([]models.Package, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT packid, packtype, packcost, pricing_type, is_available
		FROM dpx_package ORDER BY packid
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Package{}
	for rows.Next() {
		var p models.Package
		if err := rows.Scan(&p.ID, &p.Type, &p.Cost, &p.PricingType, &p.IsAvailable); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r PackageRepository) listTripPackages(ctx context.Context, where string, args ...any) ([]models.TripPackage, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT tp.trippackid, tp.tripid, p.packid, p.packtype, p.packcost, p.pricing_type, p.is_available
		FROM dpx_trip_package tp
		JOIN dpx_package p ON p.packid = tp.packid
	`+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TripPackage{}
	for rows.Next() {
		var p models.TripPackage
		if err := rows.Scan(&p.TripPackageID, &p.TripID, &p.ID, &p.Type, &p.Cost, &p.PricingType, &p.IsAvailable); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r PackageRepository) ListForTrip(ctx context.Context, tripID int64) ([]models.TripPackage, error) {
	return r.listTripPackages(ctx, ` WHERE tp.tripid = ? ORDER BY tp.trippackid`, tripID)
}

func (r PackageRepository) ListForPassenger(ctx context.Context, passengerID int64) ([]models.TripPackage, error) {
	return r.listTripPackages(ctx,
		` JOIN dpx_pass_package pp ON pp.trippackid = tp.trippackid WHERE pp.passengerid = ? ORDER BY pp.passpackid`,
		passengerID)
}

// AddSelection records that a passenger picked a trip package. Picking the
// same package twice leaves a single selection; added reports whether a row
// was written.
func (r PackageRepository) AddSelection(ctx context.Context, tripPackageID, passengerID int64) (bool, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO dpx_pass_package (trippackid, passengerid)
		SELECT ?, ? FROM DUAL
		WHERE NOT EXISTS (SELECT 1 FROM dpx_pass_package WHERE trippackid = ? AND passengerid = ?)
	`, tripPackageID, passengerID, tripPackageID, passengerID)
	if err != nil {
		if intdb.IsDuplicateKey(err) {
			return false, nil
		}
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r PackageRepository) RemoveSelection(ctx context.Context, tripPackageID, passengerID int64) (int64, error) {
	res, err := r.db().ExecContext(ctx, `DELETE FROM dpx_pass_package WHERE trippackid = ? AND passengerid = ?`, tripPackageID, passengerID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r PackageRepository) DeleteSelectionsForPassenger(ctx context.Context, passengerID int64) error {
	_, err := r.db().ExecContext(ctx, `DELETE FROM dpx_pass_package WHERE passengerid = ?`, passengerID)
	return err
}

// TripOf returns the trip a trip package belongs to.
func (r PackageRepository) TripOf(ctx context.Context, tripPackageID int64) (int64, error) {
	var tripID int64
	err := r.db().QueryRowContext(ctx, `SELECT tripid FROM dpx_trip_package WHERE trippackid = ?`, tripPackageID).Scan(&tripID)
	return tripID, notFound(err, "trip package")
}

func (r PackageRepository) OfferOnTrip(ctx context.Context, tripID, packageID int64) (int64, error) {
	res, err := r.db().ExecContext(ctx, `INSERT INTO dpx_trip_package (tripid, packid) VALUES (?, ?)`, tripID, packageID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r PackageRepository) CountSelections(ctx context.Context, tripPackageID int64) (int, error) {
	var n int
	err := r.db().QueryRowContext(ctx, `SELECT COUNT(*) FROM dpx_pass_package WHERE trippackid = ?`, tripPackageID).Scan(&n)
	return n, err
}

func (r PackageRepository) Withdraw(ctx context.Context, tripPackageID int64) (int64, error) {
	res, err := r.db().ExecContext(ctx, `DELETE FROM dpx_trip_package WHERE trippackid = ?`, tripPackageID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

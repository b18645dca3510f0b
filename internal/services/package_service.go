package services

import (
	"context"
	"database/sql"
	"fmt"

	intdb "dpxcruise/internal/db"
	"dpxcruise/internal/domain"
	"dpxcruise/internal/domain/models"
	"dpxcruise/internal/repositories"
	"dpxcruise/internal/utils"
)

type PackageService struct {
	DB        *sql.DB
	RequestID string
}

func (s PackageService) Catalog(ctx context.Context) ([]models.Package, error) {
	return repositories.PackageRepository{DB: s.DB}.ListCatalog(ctx)
}

func (s PackageService) TripPackages(ctx context.Context, tripID int64) ([]models.TripPackage, error) {
	return repositories.PackageRepository{DB: s.DB}.ListForTrip(ctx, tripID)
}

func (s PackageService) PassengerPackages(ctx context.Context, passengerID int64) ([]models.TripPackage, error) {
	return repositories.PackageRepository{DB: s.DB}.ListForPassenger(ctx, passengerID)
}

// Select adds a trip package to a passenger. Selecting it again is a no-op.
func (s PackageService) Select(ctx context.Context, tripPackageID, passengerID int64) (bool, error) {
	p, err := repositories.PassengerRepository{DB: s.DB}.GetByID(ctx, passengerID)
	if err != nil {
		return false, err
	}
	pkgs := repositories.PackageRepository{DB: s.DB}
	tripID, err := pkgs.TripOf(ctx, tripPackageID)
	if err != nil {
		return false, err
	}
	g, err := repositories.GroupRepository{DB: s.DB}.GetByID(ctx, p.GroupID)
	if err != nil {
		return false, err
	}
	if g.TripID != tripID {
		return false, domain.ValidationError{Field: "trippackid", Msg: "package is not offered on the passenger's trip"}
	}

	added, err := pkgs.AddSelection(ctx, tripPackageID, passengerID)
	if err != nil {
		return false, err
	}
	utils.LogEvent(s.RequestID, "package", "select", fmt.Sprintf("trip_package_id=%d passenger_id=%d added=%t", tripPackageID, passengerID, added))
	return added, nil
}

// Deselect drops a passenger's package choice. Removing a choice that is
// not there succeeds, so a retried request answers the same way.
func (s PackageService) Deselect(ctx context.Context, tripPackageID, passengerID int64) error {
	n, err := repositories.PackageRepository{DB: s.DB}.RemoveSelection(ctx, tripPackageID, passengerID)
	if err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "package", "deselect",
		fmt.Sprintf("trip_package_id=%d passenger_id=%d removed=%t", tripPackageID, passengerID, n > 0))
	return nil
}

// Offer makes a catalog package available on a trip.
func (s PackageService) Offer(ctx context.Context, tripID, packageID int64) (int64, error) {
	id, err := repositories.PackageRepository{DB: s.DB}.OfferOnTrip(ctx, tripID, packageID)
	if intdb.IsDuplicateKey(err) {
		return 0, domain.ConflictError{Resource: "trip package", Msg: "package already offered on this trip", Err: err}
	}
	if err != nil {
		return 0, err
	}
	utils.LogEvent(s.RequestID, "package", "offer", fmt.Sprintf("trip_id=%d package_id=%d", tripID, packageID))
	return id, nil
}

// Withdraw removes a trip package nobody has selected.
func (s PackageService) Withdraw(ctx context.Context, tripPackageID int64) error {
	err := intdb.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		pkgs := repositories.PackageRepository{DB: tx}
		n, err := pkgs.CountSelections(ctx, tripPackageID)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ConflictError{Resource: "trip package", Msg: fmt.Sprintf("selected by %d passengers", n)}
		}
		deleted, err := pkgs.Withdraw(ctx, tripPackageID)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return domain.NotFoundError{Resource: "trip package"}
		}
		return nil
	})
	if err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "package", "withdraw", fmt.Sprintf("trip_package_id=%d", tripPackageID))
	return nil
}

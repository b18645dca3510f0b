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

// CatalogService manages which restaurants and activities run on a trip.
type CatalogService struct {
	DB        *sql.DB
	RequestID string
}

func (s CatalogService) repo() repositories.CatalogRepository {
	return repositories.CatalogRepository{DB: s.DB}
}

func (s CatalogService) Restaurants(ctx context.Context) ([]models.Restaurant, error) {
	return s.repo().ListRestaurants(ctx)
}

func (s CatalogService) TripRestaurants(ctx context.Context, tripID int64) ([]models.Restaurant, error) {
	return s.repo().ListTripRestaurants(ctx, tripID)
}

func (s CatalogService) AddRestaurant(ctx context.Context, tripID, restaurantID int64) error {
	if err := s.repo().AddTripRestaurant(ctx, tripID, restaurantID); err != nil {
		if intdb.IsDuplicateKey(err) {
			return domain.ConflictError{Resource: "restaurant", Msg: "already on this trip", Err: err}
		}
		return err
	}
	utils.LogEvent(s.RequestID, "catalog", "add_restaurant", fmt.Sprintf("trip_id=%d resid=%d", tripID, restaurantID))
	return nil
}

func (s CatalogService) RemoveRestaurant(ctx context.Context, tripID, restaurantID int64) error {
	n, err := s.repo().RemoveTripRestaurant(ctx, tripID, restaurantID)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "trip restaurant"}
	}
	utils.LogEvent(s.RequestID, "catalog", "remove_restaurant", fmt.Sprintf("trip_id=%d resid=%d", tripID, restaurantID))
	return nil
}

func (s CatalogService) Activities(ctx context.Context) ([]models.Activity, error) {
	return s.repo().ListActivities(ctx)
}

func (s CatalogService) TripActivities(ctx context.Context, tripID int64) ([]models.Activity, error) {
	return s.repo().ListTripActivities(ctx, tripID)
}

func (s CatalogService) AddActivity(ctx context.Context, tripID, activityID int64) error {
	if err := s.repo().AddTripActivity(ctx, tripID, activityID); err != nil {
		if intdb.IsDuplicateKey(err) {
			return domain.ConflictError{Resource: "activity", Msg: "already on this trip", Err: err}
		}
		return err
	}
	utils.LogEvent(s.RequestID, "catalog", "add_activity", fmt.Sprintf("trip_id=%d actid=%d", tripID, activityID))
	return nil
}

func (s CatalogService) RemoveActivity(ctx context.Context, tripID, activityID int64) error {
	n, err := s.repo().RemoveTripActivity(ctx, tripID, activityID)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "trip activity"}
	}
	utils.LogEvent(s.RequestID, "catalog", "remove_activity", fmt.Sprintf("trip_id=%d actid=%d", tripID, activityID))
	return nil
}

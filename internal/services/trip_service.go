package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"dpxcruise/internal/domain"
	"dpxcruise/internal/domain/models"
	"dpxcruise/internal/repositories"
	"dpxcruise/internal/utils"
)

type TripService struct {
	DB        *sql.DB
	RequestID string
}

// Search lists trips matching every given filter. Customers only ever see
// active trips.
func (s TripService) Search(ctx context.Context, f models.TripFilter, includeInactive bool) ([]models.Trip, error) {
	for _, d := range []struct{ field, value string }{{"startdate", f.StartDate}, {"enddate", f.EndDate}} {
		if d.value == "" {
			continue
		}
		if _, err := utils.ParseDate(d.value); err != nil {
			return nil, domain.ValidationError{Field: d.field, Msg: "expected YYYY-MM-DD", Err: err}
		}
	}
	if f.Nights < 0 {
		return nil, domain.ValidationError{Field: "night", Msg: "must not be negative"}
	}
	return repositories.TripRepository{DB: s.DB}.Find(ctx, f, !includeInactive)
}

// Get returns one trip with its full itinerary.
func (s TripService) Get(ctx context.Context, id int64, includeInactive bool) (models.Trip, error) {
	t, err := repositories.TripRepository{DB: s.DB}.GetByID(ctx, id, !includeInactive)
	if err != nil {
		return models.Trip{}, err
	}
	t.Itinerary, err = repositories.TripPortRepository{DB: s.DB}.ListByTrip(ctx, id)
	if err != nil {
		return models.Trip{}, err
	}
	return t, nil
}

func normalizeTripInput(in models.TripInput) (models.TripInput, error) {
	start, err := utils.ParseDate(in.StartDate)
	if err != nil {
		return in, domain.ValidationError{Field: "startdate", Msg: "expected YYYY-MM-DD", Err: err}
	}
	end, err := utils.ParseDate(in.EndDate)
	if err != nil {
		return in, domain.ValidationError{Field: "enddate", Msg: "expected YYYY-MM-DD", Err: err}
	}
	if end.Before(start) {
		return in, domain.ValidationError{Field: "enddate", Msg: "must not be before startdate"}
	}
	if in.Nights < 0 {
		return in, domain.ValidationError{Field: "night", Msg: "must not be negative"}
	}
	if in.Nights == 0 {
		in.Nights = utils.NightsBetween(start, end)
	}

	in.IsActive = strings.ToUpper(strings.TrimSpace(in.IsActive))
	if in.IsActive == "" {
		in.IsActive = models.TripActive
	}
	if in.IsActive != models.TripActive && in.IsActive != models.TripInactive {
		return in, domain.ValidationError{Field: "is_active", Msg: "must be Y or N"}
	}
	in.StartDate = utils.FormatDate(start)
	in.EndDate = utils.FormatDate(end)
	return in, nil
}

func (s TripService) Create(ctx context.Context, in models.TripInput) (int64, error) {
	in, err := normalizeTripInput(in)
	if err != nil {
		return 0, err
	}
	id, err := repositories.TripRepository{DB: s.DB}.Create(ctx, in)
	if err != nil {
		return 0, err
	}
	utils.LogEvent(s.RequestID, "trip", "create", fmt.Sprintf("trip_id=%d", id))
	return id, nil
}

func (s TripService) Update(ctx context.Context, id int64, in models.TripInput) error {
	in, err := normalizeTripInput(in)
	if err != nil {
		return err
	}
	n, err := repositories.TripRepository{DB: s.DB}.Update(ctx, id, in)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	utils.LogEvent(s.RequestID, "trip", "update", fmt.Sprintf("trip_id=%d is_active=%s", id, in.IsActive))
	return nil
}

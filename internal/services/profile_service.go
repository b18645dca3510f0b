package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	intdb "dpxcruise/internal/db"
	"dpxcruise/internal/domain"
	"dpxcruise/internal/domain/models"
	"dpxcruise/internal/repositories"
	"dpxcruise/internal/utils"
)

// ProfileService manages the traveler profiles a user keeps for reuse.
type ProfileService struct {
	DB        *sql.DB
	RequestID string
}

func normalizeProfile(p models.PassengerInfo) (models.PassengerInfo, error) {
	p.FirstName = utils.NormalizeSpace(p.FirstName)
	p.LastName = utils.NormalizeSpace(p.LastName)
	if p.FirstName == "" || p.LastName == "" {
		return p, domain.ValidationError{Msg: "first and last name are required"}
	}
	if p.Birthdate != "" {
		d, err := utils.ParseDate(p.Birthdate)
		if err != nil {
			return p, domain.ValidationError{Field: "birthdate", Msg: "expected YYYY-MM-DD", Err: err}
		}
		p.Birthdate = utils.FormatDate(d)
	}
	if p.Email != "" {
		p.Email = utils.NormalizeEmail(p.Email)
		if !utils.IsValidEmail(p.Email) {
			return p, domain.ValidationError{Field: "email", Msg: "invalid email format"}
		}
	}
	for _, f := range []*string{&p.Street, &p.City, &p.State, &p.Country, &p.Zipcode, &p.Gender, &p.Nationality, &p.Phone} {
		*f = strings.TrimSpace(*f)
	}
	return p, nil
}

// Create stores a new profile and, when userID is set, saves it for that user.
func (s ProfileService) Create(ctx context.Context, userID int64, p models.PassengerInfo) (int64, error) {
	p, err := normalizeProfile(p)
	if err != nil {
		return 0, err
	}
	var id int64
	err = intdb.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		infos := repositories.PassengerInfoRepository{DB: tx}
		var err error
		id, err = infos.Create(ctx, p)
		if err != nil {
			return err
		}
		if userID > 0 {
			return infos.Save(ctx, userID, id)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	utils.LogEvent(s.RequestID, "profile", "create", fmt.Sprintf("passinfo_id=%d", id))
	return id, nil
}

// Save links an existing profile to the user. Saving twice is a no-op.
func (s ProfileService) Save(ctx context.Context, userID, passInfoID int64) error {
	if userID <= 0 || passInfoID <= 0 {
		return domain.ValidationError{Msg: "userid and passinfoid are required"}
	}
	err := repositories.PassengerInfoRepository{DB: s.DB}.Save(ctx, userID, passInfoID)
	if err != nil && !intdb.IsDuplicateKey(err) {
		return err
	}
	utils.LogEvent(s.RequestID, "profile", "save", fmt.Sprintf("user_id=%d passinfo_id=%d", userID, passInfoID))
	return nil
}

func (s ProfileService) Saved(ctx context.Context, userID int64) ([]models.PassengerInfo, error) {
	return repositories.PassengerInfoRepository{DB: s.DB}.ListSaved(ctx, userID)
}

// Delete unsaves the profile and drops it unless it is on a booking.
func (s ProfileService) Delete(ctx context.Context, userID, passInfoID int64) error {
	err := intdb.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		infos := repositories.PassengerInfoRepository{DB: tx}
		n, err := infos.Unsave(ctx, userID, passInfoID)
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.NotFoundError{Resource: "saved passenger"}
		}
		return infos.DeleteIfUnbooked(ctx, passInfoID)
	})
	if err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "profile", "delete", fmt.Sprintf("passinfo_id=%d", passInfoID))
	return nil
}

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

// RoomAdminService lets employees maintain the room inventory of a trip.
type RoomAdminService struct {
	DB        *sql.DB
	RequestID string
}

func (s RoomAdminService) Options(ctx context.Context) (models.RoomOptions, error) {
	return repositories.RoomRepository{DB: s.DB}.Options(ctx)
}

func (s RoomAdminService) Rooms(ctx context.Context, tripID int64) ([]models.Room, error) {
	return repositories.RoomRepository{DB: s.DB}.ListByTrip(ctx, tripID)
}

func validateRoomInput(in models.RoomInput) (models.RoomInput, error) {
	in.Number = utils.NormalizeSpace(in.Number)
	if in.Number == "" {
		return in, domain.ValidationError{Field: "roomnumber", Msg: "is required"}
	}
	if in.Price.IsNegative() {
		return in, domain.ValidationError{Field: "price", Msg: "must not be negative"}
	}
	if in.StateroomID <= 0 || in.LocationID <= 0 {
		return in, domain.ValidationError{Msg: "sid and locaid are required"}
	}
	return in, nil
}

func (s RoomAdminService) Add(ctx context.Context, tripID int64, in models.RoomInput) (int64, error) {
	in, err := validateRoomInput(in)
	if err != nil {
		return 0, err
	}
	id, err := repositories.RoomRepository{DB: s.DB}.Create(ctx, tripID, in)
	if intdb.IsDuplicateKey(err) {
		return 0, domain.ConflictError{Resource: "room", Msg: "room number already exists on this trip", Err: err}
	}
	if err != nil {
		return 0, err
	}
	utils.LogEvent(s.RequestID, "room", "add", fmt.Sprintf("trip_id=%d room_id=%d", tripID, id))
	return id, nil
}

// Update changes type, location and price. An empty room number keeps the
// current one.
func (s RoomAdminService) Update(ctx context.Context, roomID int64, in models.RoomInput) error {
	rooms := repositories.RoomRepository{DB: s.DB}
	if utils.NormalizeSpace(in.Number) == "" {
		current, err := rooms.GetByID(ctx, roomID)
		if err != nil {
			return err
		}
		in.Number = current.Number
	}
	in, err := validateRoomInput(in)
	if err != nil {
		return err
	}
	n, err := rooms.Update(ctx, roomID, in)
	if intdb.IsDuplicateKey(err) {
		return domain.ConflictError{Resource: "room", Msg: "room number already exists on this trip", Err: err}
	}
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "room"}
	}
	utils.LogEvent(s.RequestID, "room", "update", fmt.Sprintf("room_id=%d", roomID))
	return nil
}

// Delete removes a room that no group holds.
func (s RoomAdminService) Delete(ctx context.Context, roomID int64) error {
	err := intdb.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		rooms := repositories.RoomRepository{DB: tx}
		room, err := rooms.GetForUpdate(ctx, roomID)
		if err != nil {
			return err
		}
		if room.Status == models.RoomOccupied {
			return domain.ConflictError{Resource: "room", Msg: "occupied rooms cannot be deleted"}
		}
		_, err = rooms.Delete(ctx, roomID)
		return err
	})
	if err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "room", "delete", fmt.Sprintf("room_id=%d", roomID))
	return nil
}

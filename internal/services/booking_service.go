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

// BookingService covers a travel group from creation through room
// assignment.
type BookingService struct {
	DB        *sql.DB
	RequestID string
}

func (s BookingService) CreateGroup(ctx context.Context, tripID int64, size int) (int64, error) {
	if size < 1 {
		return 0, domain.ValidationError{Field: "group_size", Msg: "must be at least 1"}
	}
	if _, err := (repositories.TripRepository{DB: s.DB}).GetByID(ctx, tripID, true); err != nil {
		return 0, err
	}
	id, err := repositories.GroupRepository{DB: s.DB}.Create(ctx, tripID, size)
	if err != nil {
		return 0, err
	}
	utils.LogEvent(s.RequestID, "booking", "create_group", fmt.Sprintf("group_id=%d trip_id=%d size=%d", id, tripID, size))
	return id, nil
}

func (s BookingService) GroupPassengers(ctx context.Context, groupID int64) ([]models.Passenger, error) {
	if _, err := (repositories.GroupRepository{DB: s.DB}).GetByID(ctx, groupID); err != nil {
		return nil, err
	}
	return repositories.PassengerRepository{DB: s.DB}.ListByGroup(ctx, groupID)
}

// AssignPassengers books the given traveler profiles into the group with no
// room. group_size stays as declared at creation.
func (s BookingService) AssignPassengers(ctx context.Context, groupID int64, passInfoIDs []int64) ([]int64, error) {
	if len(passInfoIDs) == 0 {
		return nil, domain.ValidationError{Field: "passengers", Msg: "at least one passenger is required"}
	}
	if _, err := (repositories.GroupRepository{DB: s.DB}).GetByID(ctx, groupID); err != nil {
		return nil, err
	}
	ids, err := repositories.PassengerRepository{DB: s.DB}.InsertBatch(ctx, groupID, passInfoIDs)
	if err != nil {
		return nil, err
	}
	utils.LogEvent(s.RequestID, "booking", "assign_passengers", fmt.Sprintf("group_id=%d count=%d", groupID, len(ids)))
	return ids, nil
}

// RoomTypes summarizes the free rooms of the group's trip by type.
func (s BookingService) RoomTypes(ctx context.Context, groupID int64) ([]models.RoomTypeSummary, error) {
	g, err := repositories.GroupRepository{DB: s.DB}.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return repositories.RoomRepository{DB: s.DB}.TypesForTrip(ctx, g.TripID)
}

func (s BookingService) AvailableRooms(ctx context.Context, groupID, stateroomID int64) ([]models.Room, error) {
	g, err := repositories.GroupRepository{DB: s.DB}.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return repositories.RoomRepository{DB: s.DB}.AvailableByType(ctx, g.TripID, stateroomID)
}

// GroupRooms lists the rooms held by the group with the passengers in each.
func (s BookingService) GroupRooms(ctx context.Context, groupID int64) ([]models.GroupRoom, error) {
	rooms, err := repositories.RoomRepository{DB: s.DB}.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, len(rooms))
	for i, r := range rooms {
		ids[i] = r.ID
	}
	passengers, err := repositories.PassengerRepository{DB: s.DB}.ListByRooms(ctx, ids)
	if err != nil {
		return nil, err
	}
	byRoom := map[int64][]models.Passenger{}
	for _, p := range passengers {
		if p.RoomID != nil {
			byRoom[*p.RoomID] = append(byRoom[*p.RoomID], p)
		}
	}
	out := make([]models.GroupRoom, 0, len(rooms))
	for _, r := range rooms {
		ps := byRoom[r.ID]
		if ps == nil {
			ps = []models.Passenger{}
		}
		out = append(out, models.GroupRoom{Room: r, Passengers: ps})
	}
	return out, nil
}

// ParseOccupancy accepts Y/N or the Occupied/Not-occupied labels.
func ParseOccupancy(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "y", "occupied":
		return models.RoomOccupied, nil
	case "n", "not-occupied", "not occupied", "free":
		return models.RoomFree, nil
	}
	return "", domain.ValidationError{Field: "occupancy_status", Msg: "must be Y or N"}
}

// OccupyRoom claims a free room for the group, or releases one the group
// holds. A room held by another group is never taken over.
func (s BookingService) OccupyRoom(ctx context.Context, roomID, groupID int64, status string) error {
	err := intdb.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		g, err := repositories.GroupRepository{DB: tx}.GetByID(ctx, groupID)
		if err != nil {
			return err
		}
		rooms := repositories.RoomRepository{DB: tx}
		room, err := rooms.GetForUpdate(ctx, roomID)
		if err != nil {
			return err
		}
		if room.TripID != g.TripID {
			return domain.ValidationError{Field: "roomid", Msg: "room is not on the group's trip"}
		}
		heldByOther := room.Status == models.RoomOccupied && !room.HeldBy(groupID)

		if status == models.RoomFree {
			if heldByOther {
				return domain.ConflictError{Resource: "room", Msg: "held by another group"}
			}
			if err := (repositories.PassengerRepository{DB: tx}).ClearRoomForAll(ctx, roomID); err != nil {
				return err
			}
			_, err := rooms.Release(ctx, roomID)
			return err
		}

		if heldByOther {
			return domain.ConflictError{Resource: "room", Msg: "already occupied"}
		}
		n, err := rooms.Occupy(ctx, roomID, groupID)
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ConflictError{Resource: "room", Msg: "already occupied"}
		}
		return nil
	})
	if err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "booking", "occupy_room", fmt.Sprintf("room_id=%d group_id=%d status=%s", roomID, groupID, status))
	return nil
}

// AssignToRoom places a passenger in a room held by their group, refusing
// once every bed is taken.
func (s BookingService) AssignToRoom(ctx context.Context, roomID, passengerID int64) error {
	err := intdb.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		passengers := repositories.PassengerRepository{DB: tx}
		p, err := passengers.GetByID(ctx, passengerID)
		if err != nil {
			return err
		}
		room, err := repositories.RoomRepository{DB: tx}.GetForUpdate(ctx, roomID)
		if err != nil {
			return err
		}
		if !room.HeldBy(p.GroupID) {
			return domain.ConflictError{Resource: "room", Msg: "not held by the passenger's group"}
		}
		if p.RoomID != nil && *p.RoomID == roomID {
			return nil
		}
		n, err := passengers.CountInRoom(ctx, roomID)
		if err != nil {
			return err
		}
		if n >= room.Beds {
			return domain.ConflictError{Resource: "room", Msg: fmt.Sprintf("all %d beds are taken", room.Beds)}
		}
		_, err = passengers.SetRoom(ctx, passengerID, roomID)
		return err
	})
	if err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "booking", "assign_room", fmt.Sprintf("room_id=%d passenger_id=%d", roomID, passengerID))
	return nil
}

func (s BookingService) RemoveFromRoom(ctx context.Context, passengerID int64) error {
	n, err := repositories.PassengerRepository{DB: s.DB}.ClearRoom(ctx, passengerID)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "passenger"}
	}
	utils.LogEvent(s.RequestID, "booking", "remove_from_room", fmt.Sprintf("passenger_id=%d", passengerID))
	return nil
}

// ClearRoom moves every occupant out and frees the room.
func (s BookingService) ClearRoom(ctx context.Context, roomID int64) error {
	err := intdb.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		rooms := repositories.RoomRepository{DB: tx}
		if _, err := rooms.GetForUpdate(ctx, roomID); err != nil {
			return err
		}
		if err := (repositories.PassengerRepository{DB: tx}).ClearRoomForAll(ctx, roomID); err != nil {
			return err
		}
		_, err := rooms.Release(ctx, roomID)
		return err
	})
	if err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "booking", "clear_room", fmt.Sprintf("room_id=%d", roomID))
	return nil
}

// DeletePassenger removes a passenger from the group together with their
// package selections and rewrites group_size from a live count.
func (s BookingService) DeletePassenger(ctx context.Context, groupID, passengerID int64) (int, error) {
	var size int
	err := intdb.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		groups := repositories.GroupRepository{DB: tx}
		if _, err := groups.GetForUpdate(ctx, groupID); err != nil {
			return err
		}
		passengers := repositories.PassengerRepository{DB: tx}
		p, err := passengers.GetByID(ctx, passengerID)
		if err != nil {
			return err
		}
		if p.GroupID != groupID {
			return domain.NotFoundError{Resource: "passenger"}
		}
		if err := (repositories.PackageRepository{DB: tx}).DeleteSelectionsForPassenger(ctx, passengerID); err != nil {
			return err
		}
		if _, err := passengers.Delete(ctx, passengerID); err != nil {
			return err
		}
		size, err = passengers.CountByGroup(ctx, groupID)
		if err != nil {
			return err
		}
		return groups.SetSize(ctx, groupID, size)
	})
	if err != nil {
		return 0, err
	}
	utils.LogEvent(s.RequestID, "booking", "delete_passenger", fmt.Sprintf("group_id=%d passenger_id=%d size=%d", groupID, passengerID, size))
	return size, nil
}

// TripRoster lists every group of the trip with its passengers.
func (s BookingService) TripRoster(ctx context.Context, tripID int64) ([]models.GroupRoster, error) {
	groups, err := repositories.GroupRepository{DB: s.DB}.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	passengers, err := repositories.PassengerRepository{DB: s.DB}.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	byGroup := map[int64][]models.Passenger{}
	for _, p := range passengers {
		byGroup[p.GroupID] = append(byGroup[p.GroupID], p)
	}
	out := make([]models.GroupRoster, 0, len(groups))
	for _, g := range groups {
		ps := byGroup[g.ID]
		if ps == nil {
			ps = []models.Passenger{}
		}
		out = append(out, models.GroupRoster{Group: g, Passengers: ps})
	}
	return out, nil
}

package models

import "github.com/shopspring/decimal"

const (
	RoomFree     = "N"
	RoomOccupied = "Y"
)

type Stateroom struct {
	ID       int64  `json:"sid"`
	Type     string `json:"type"`
	Size     int    `json:"size"`
	Beds     int    `json:"bed"`
	Bathroom int    `json:"bathroom"`
	Balcony  string `json:"balcony"`
}

type Location struct {
	ID   int64  `json:"locaid"`
	Side string `json:"location_side"`
}

type Room struct {
	ID           int64           `json:"roomid"`
	Number       string          `json:"roomnumber"`
	Price        decimal.Decimal `json:"price"`
	Status       string          `json:"occupancy_status"`
	TripID       int64           `json:"tripid"`
	StateroomID  int64           `json:"sid"`
	LocationID   int64           `json:"locaid"`
	GroupID      *int64          `json:"groupid"`
	Type         string          `json:"type"`
	Beds         int             `json:"bed"`
	LocationSide string          `json:"location_side"`
}

// GroupRoom is a held room with its assigned passengers. Passengers is
// never nil so an empty room still reports "passengers": [].
type GroupRoom struct {
	Room
	Passengers []Passenger `json:"passengers"`
}

// HeldBy reports whether the room is occupied by groupID.
func (r Room) HeldBy(groupID int64) bool {
	return r.Status == RoomOccupied && r.GroupID != nil && *r.GroupID == groupID
}

// RoomTypeSummary is one bookable stateroom type available on a trip.
type RoomTypeSummary struct {
	StateroomID int64           `json:"sid"`
	Type        string          `json:"type"`
	Size        int             `json:"size"`
	Beds        int             `json:"bed"`
	Bathroom    int             `json:"bathroom"`
	Balcony     string          `json:"balcony"`
	EmptyRooms  int             `json:"empty_rooms"`
	MinPrice    decimal.Decimal `json:"min_price"`
}

type RoomInput struct {
	Number      string
	Price       decimal.Decimal
	StateroomID int64
	LocationID  int64
}

type RoomOptions struct {
	Staterooms []Stateroom `json:"staterooms"`
	Locations  []Location  `json:"locations"`
}

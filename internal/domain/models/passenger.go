package models

type Group struct {
	ID     int64 `json:"groupid"`
	TripID int64 `json:"tripid"`
	Size   int   `json:"group_size"`
}

type PassengerInfo struct {
	ID          int64  `json:"passinfoid"`
	FirstName   string `json:"fname"`
	LastName    string `json:"lname"`
	Birthdate   string `json:"birthdate"`
	Street      string `json:"street"`
	City        string `json:"city"`
	State       string `json:"state"`
	Country     string `json:"country"`
	Zipcode     string `json:"zipcode"`
	Gender      string `json:"gender"`
	Nationality string `json:"nationality"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

// Passenger is a traveler booked into a group.
type Passenger struct {
	ID          int64  `json:"passengerid"`
	GroupID     int64  `json:"groupid"`
	RoomID      *int64 `json:"roomid"`
	PassInfoID  int64  `json:"passinfoid"`
	FirstName   string `json:"fname"`
	LastName    string `json:"lname"`
	Email       string `json:"email"`
	Gender      string `json:"gender,omitempty"`
	Nationality string `json:"nationality,omitempty"`
}

// GroupRoster is one group of a trip with its passengers.
type GroupRoster struct {
	Group      Group       `json:"group"`
	Passengers []Passenger `json:"passengers"`
}

package models

const (
	TripActive   = "Y"
	TripInactive = "N"
)

type Port struct {
	ID   int64  `json:"portid"`
	Name string `json:"pname"`
}

type Trip struct {
	ID            int64      `json:"tripid"`
	StartPort     *int64     `json:"start_port"`
	EndPort       *int64     `json:"end_port"`
	StartPortName string     `json:"start_port_name"`
	EndPortName   string     `json:"end_port_name"`
	StartDate     string     `json:"startdate"`
	EndDate       string     `json:"enddate"`
	Nights        int        `json:"night"`
	IsActive      string     `json:"is_active"`
	PortNames     string     `json:"ports"`
	Itinerary     []TripPort `json:"itinerary,omitempty"`
}

// TripFilter narrows a trip search; zero values are ignored.
type TripFilter struct {
	StartPort string
	EndPort   string
	StartDate string
	EndDate   string
	Nights    int
}

type TripInput struct {
	StartPort int64
	EndPort   int64
	StartDate string
	EndDate   string
	Nights    int
	IsActive  string
}

type TripPort struct {
	ID            int64  `json:"tripportid"`
	TripID        int64  `json:"tripid"`
	PortID        int64  `json:"portid"`
	PortName      string `json:"pname"`
	Sequence      int    `json:"sequence_number"`
	ArrivalTime   string `json:"arrivaltime"`
	DepartureTime string `json:"departuretime"`
}

// PortOrder is one entry of a reorder request.
type PortOrder struct {
	TripPortID int64 `json:"tripportid" binding:"required"`
	Sequence   int   `json:"sequence_number" binding:"required"`
}

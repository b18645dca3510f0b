package models

import "github.com/shopspring/decimal"

const (
	PaymentInstallment = "Installment"
	PaymentFull        = "Full Payment"
)

type Invoice struct {
	ID          int64           `json:"inid"`
	TotalAmount decimal.Decimal `json:"totalamount"`
	DueDate     string          `json:"duedate"`
	TripID      int64           `json:"tripid"`
	GroupID     int64           `json:"groupid"`
}

type RoomLine struct {
	RoomID     int64           `json:"roomid"`
	RoomNumber string          `json:"roomnumber"`
	Type       string          `json:"type"`
	Rate       decimal.Decimal `json:"rate"`
	Beds       int             `json:"bed"`
	Price      decimal.Decimal `json:"price"`
}

type PackageLine struct {
	PassengerID int64           `json:"passengerid"`
	FirstName   string          `json:"fname"`
	LastName    string          `json:"lname"`
	PackageType string          `json:"packtype"`
	PricingType string          `json:"pricing_type"`
	UnitCost    decimal.Decimal `json:"packcost"`
	Nights      int             `json:"night"`
	Cost        decimal.Decimal `json:"package_cost"`
}

type InvoiceDetails struct {
	Invoice          Invoice         `json:"invoice"`
	RoomDetails      []RoomLine      `json:"room_details"`
	PackageDetails   []PackageLine   `json:"package_details"`
	TotalRoomCost    decimal.Decimal `json:"total_room_cost"`
	TotalPackageCost decimal.Decimal `json:"total_package_cost"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
	Remaining        decimal.Decimal `json:"remaining"`
}

type Payment struct {
	ID        int64           `json:"paymentid"`
	InvoiceID int64           `json:"inid"`
	PayDate   string          `json:"paydate"`
	Amount    decimal.Decimal `json:"payamount"`
	Method    string          `json:"paymethod"`
	Type      string          `json:"paytype"`
}

package models

import "github.com/shopspring/decimal"

const (
	PricingPerPersonNight = "person/night"
	PricingFlat           = "flat"
)

type Package struct {
	ID          int64           `json:"packid"`
	Type        string          `json:"packtype"`
	Cost        decimal.Decimal `json:"packcost"`
	PricingType string          `json:"pricing_type"`
	IsAvailable string          `json:"is_available"`
}

// TripPackage is a package offered on a specific trip.
type TripPackage struct {
	TripPackageID int64 `json:"trippackid"`
	TripID        int64 `json:"tripid"`
	Package
}

package domain

import (
	"dpxcruise/internal/domain/models"

	"github.com/shopspring/decimal"
)

// RoomCost charges the room rate once per bed.
func RoomCost(rate decimal.Decimal, beds int) decimal.Decimal {
	return rate.Mul(decimal.NewFromInt(int64(beds)))
}

// PackageCost charges per-person/night packages for every night of the
// trip. Any other pricing type is a one-off charge.
func PackageCost(cost decimal.Decimal, pricingType string, nights int) decimal.Decimal {
	if pricingType == models.PricingPerPersonNight {
		return cost.Mul(decimal.NewFromInt(int64(nights)))
	}
	return cost
}

type InvoiceTotals struct {
	Rooms    decimal.Decimal
	Packages decimal.Decimal
	Total    decimal.Decimal
}

// PriceInvoice fills the computed price of every line and returns the sums.
func PriceInvoice(rooms []models.RoomLine, packages []models.PackageLine) InvoiceTotals {
	totals := InvoiceTotals{Rooms: decimal.Zero, Packages: decimal.Zero}
	for i := range rooms {
		rooms[i].Price = RoomCost(rooms[i].Rate, rooms[i].Beds)
		totals.Rooms = totals.Rooms.Add(rooms[i].Price)
	}
	for i := range packages {
		packages[i].Cost = PackageCost(packages[i].UnitCost, packages[i].PricingType, packages[i].Nights)
		totals.Packages = totals.Packages.Add(packages[i].Cost)
	}
	totals.Total = totals.Rooms.Add(totals.Packages)
	return totals
}

// ClassifyPayment decides the payment type of amount against the balance
// still owed, refusing payments that are not positive or overpay.
func ClassifyPayment(amount, remaining decimal.Decimal) (string, error) {
	if !amount.IsPositive() {
		return "", ValidationError{Field: "amount", Msg: "must be positive"}
	}
	if !remaining.IsPositive() {
		return "", ConflictError{Resource: "invoice", Msg: "already fully paid"}
	}
	if amount.GreaterThan(remaining) {
		return "", ConflictError{Resource: "payment", Msg: "amount exceeds remaining balance " + remaining.StringFixed(2)}
	}
	if amount.Equal(remaining) {
		return models.PaymentFull, nil
	}
	return models.PaymentInstallment, nil
}

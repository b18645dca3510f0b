package domain

import (
	"testing"

	"dpxcruise/internal/domain/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestPriceInvoiceRoomAndNightlyPackage(t *testing.T) {
	rooms := []models.RoomLine{{RoomID: 1, Rate: dec("100"), Beds: 2}}
	packages := []models.PackageLine{{PassengerID: 7, UnitCost: dec("20"), PricingType: models.PricingPerPersonNight, Nights: 7}}

	totals := PriceInvoice(rooms, packages)

	assert.True(t, dec("200").Equal(rooms[0].Price))
	assert.True(t, dec("140").Equal(packages[0].Cost))
	assert.True(t, dec("340").Equal(totals.Total), "got %s", totals.Total)
}

func TestPackageCostFlatIgnoresNights(t *testing.T) {
	assert.True(t, dec("45.50").Equal(PackageCost(dec("45.50"), models.PricingFlat, 9)))
	assert.True(t, dec("0").Equal(PackageCost(dec("12"), models.PricingPerPersonNight, 0)))
}

func TestPriceInvoiceEmpty(t *testing.T) {
	totals := PriceInvoice(nil, nil)
	assert.True(t, totals.Total.IsZero())
}

func TestClassifyPayment(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		remaining string
		want      string
		conflict  bool
		invalid   bool
	}{
		{name: "partial", amount: "150", remaining: "300", want: models.PaymentInstallment},
		{name: "exact", amount: "150", remaining: "150", want: models.PaymentFull},
		{name: "overpay", amount: "150.01", remaining: "150", conflict: true},
		{name: "settled", amount: "1", remaining: "0", conflict: true},
		{name: "zero", amount: "0", remaining: "150", invalid: true},
		{name: "negative", amount: "-5", remaining: "150", invalid: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ClassifyPayment(dec(tt.amount), dec(tt.remaining))
			switch {
			case tt.conflict:
				assert.True(t, IsConflict(err), "err=%v", err)
			case tt.invalid:
				assert.True(t, IsValidation(err), "err=%v", err)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

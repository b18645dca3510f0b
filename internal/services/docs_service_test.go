package services

import (
	"bytes"
	"context"
	"testing"

	"dpxcruise/internal/domain"
	"dpxcruise/internal/domain/models"

	"github.com/shopspring/decimal"
)

func TestInvoicePDF(t *testing.T) {
	svc := DocsService{
		Now: clock,
		Loader: func(ctx context.Context, groupID, tripID int64) (invoiceDocData, error) {
			return invoiceDocData{
				Trip: models.Trip{ID: tripID, StartPortName: "Miami", EndPortName: "Nassau", StartDate: "2025-07-01", EndDate: "2025-07-04", Nights: 3},
				Details: models.InvoiceDetails{
					Invoice: models.Invoice{ID: 12, TotalAmount: decimal.NewFromInt(340), DueDate: "2025-07-01", TripID: tripID, GroupID: groupID},
					RoomDetails: []models.RoomLine{
						{RoomNumber: "A101", Type: "Balcony", Rate: decimal.NewFromInt(95), Beds: 2, Price: decimal.NewFromInt(190)},
					},
					PackageDetails: []models.PackageLine{
						{FirstName: "Ann", LastName: "Lee", PackageType: "Wifi", PricingType: models.PricingPerPersonNight,
							UnitCost: decimal.NewFromInt(50), Nights: 3, Cost: decimal.NewFromInt(150)},
					},
					TotalPaid: decimal.NewFromInt(40),
					Remaining: decimal.NewFromInt(300),
				},
			}, nil
		},
	}

	data, name, err := svc.InvoicePDF(context.Background(), 5, 2)
	if err != nil {
		t.Fatalf("InvoicePDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("expected a PDF document, got %q", data[:min(len(data), 8)])
	}
	if name != "INVOICE_12_GROUP_5.pdf" {
		t.Fatalf("filename = %q", name)
	}
}

func TestInvoicePDFPropagatesLoaderError(t *testing.T) {
	svc := DocsService{Loader: func(context.Context, int64, int64) (invoiceDocData, error) {
		return invoiceDocData{}, domain.NotFoundError{Resource: "invoice"}
	}}
	if _, _, err := svc.InvoicePDF(context.Background(), 1, 1); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

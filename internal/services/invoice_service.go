package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	intdb "dpxcruise/internal/db"
	"dpxcruise/internal/domain"
	"dpxcruise/internal/domain/models"
	"dpxcruise/internal/repositories"
	"dpxcruise/internal/utils"

	"github.com/shopspring/decimal"
)

// invoiceTerm is how long after issue an invoice falls due.
const invoiceTerm = 30 * 24 * time.Hour

type InvoiceService struct {
	DB        *sql.DB
	Now       func() time.Time
	RequestID string
}

func (s InvoiceService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CreateOrUpdate prices the group's rooms and package selections and stores
// the total on the group's single invoice for the trip. Calling it again with
// unchanged bookings leaves the invoice as it was; the due date is set once.
func (s InvoiceService) CreateOrUpdate(ctx context.Context, groupID, tripID int64) (models.Invoice, bool, error) {
	var (
		inv     models.Invoice
		created bool
	)
	err := intdb.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		g, err := repositories.GroupRepository{DB: tx}.GetForUpdate(ctx, groupID)
		if err != nil {
			return err
		}
		if g.TripID != tripID {
			return domain.ValidationError{Field: "tripid", Msg: "group is not booked on this trip"}
		}

		invoices := repositories.InvoiceRepository{DB: tx}
		rooms, err := invoices.RoomLines(ctx, groupID)
		if err != nil {
			return err
		}
		packages, err := invoices.PackageLines(ctx, groupID)
		if err != nil {
			return err
		}
		totals := domain.PriceInvoice(rooms, packages)

		existing, found, err := invoices.FindByGroupTrip(ctx, groupID, tripID)
		if err != nil {
			return err
		}
		if found {
			inv = existing
			inv.TotalAmount = totals.Total
			return invoices.UpdateTotal(ctx, inv.ID, totals.Total)
		}

		inv = models.Invoice{
			TotalAmount: totals.Total,
			DueDate:     utils.FormatDate(s.now().Add(invoiceTerm)),
			TripID:      tripID,
			GroupID:     groupID,
		}
		inv.ID, err = invoices.Insert(ctx, inv)
		if err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return models.Invoice{}, false, err
	}
	utils.LogEvent(s.RequestID, "invoice", "upsert",
		fmt.Sprintf("invoice_id=%d group_id=%d total=%s created=%t", inv.ID, groupID, inv.TotalAmount.StringFixed(2), created))
	return inv, created, nil
}

// Details returns the invoice with its line items and balance.
func (s InvoiceService) Details(ctx context.Context, groupID, tripID int64) (models.InvoiceDetails, error) {
	invoices := repositories.InvoiceRepository{DB: s.DB}
	inv, found, err := invoices.FindByGroupTrip(ctx, groupID, tripID)
	if err != nil {
		return models.InvoiceDetails{}, err
	}
	if !found {
		return models.InvoiceDetails{}, domain.NotFoundError{Resource: "invoice"}
	}
	rooms, err := invoices.RoomLines(ctx, groupID)
	if err != nil {
		return models.InvoiceDetails{}, err
	}
	packages, err := invoices.PackageLines(ctx, groupID)
	if err != nil {
		return models.InvoiceDetails{}, err
	}
	paid, err := invoices.SumPayments(ctx, inv.ID)
	if err != nil {
		return models.InvoiceDetails{}, err
	}
	totals := domain.PriceInvoice(rooms, packages)

	return models.InvoiceDetails{
		Invoice:          inv,
		RoomDetails:      rooms,
		PackageDetails:   packages,
		TotalRoomCost:    totals.Rooms,
		TotalPackageCost: totals.Packages,
		TotalPaid:        paid,
		Remaining:        decimal.Max(inv.TotalAmount.Sub(paid), decimal.Zero),
	}, nil
}

// RecordPayment books a payment against the invoice. The invoice row is
// locked so concurrent payments cannot together exceed the total.
func (s InvoiceService) RecordPayment(ctx context.Context, invoiceID int64, amount decimal.Decimal, method string) (models.Payment, error) {
	method = utils.NormalizeSpace(method)
	if method == "" {
		return models.Payment{}, domain.ValidationError{Field: "paymethod", Msg: "is required"}
	}
	amount = amount.Round(2)

	var p models.Payment
	err := intdb.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		invoices := repositories.InvoiceRepository{DB: tx}
		inv, err := invoices.GetForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		paid, err := invoices.SumPayments(ctx, inv.ID)
		if err != nil {
			return err
		}
		payType, err := domain.ClassifyPayment(amount, inv.TotalAmount.Sub(paid))
		if err != nil {
			return err
		}
		p = models.Payment{
			InvoiceID: inv.ID,
			PayDate:   utils.FormatDate(s.now()),
			Amount:    amount,
			Method:    method,
			Type:      payType,
		}
		p.ID, err = invoices.InsertPayment(ctx, p)
		return err
	})
	if err != nil {
		return models.Payment{}, err
	}
	utils.LogEvent(s.RequestID, "invoice", "payment",
		fmt.Sprintf("invoice_id=%d amount=%s type=%s method=%s", invoiceID, amount.StringFixed(2), p.Type, strings.ToLower(method)))
	return p, nil
}

// PaymentHistory lists payments newest first.
func (s InvoiceService) PaymentHistory(ctx context.Context, invoiceID int64) ([]models.Payment, error) {
	return repositories.InvoiceRepository{DB: s.DB}.ListPayments(ctx, invoiceID)
}

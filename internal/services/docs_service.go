package services

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"dpxcruise/internal/domain/models"
	"dpxcruise/internal/repositories"
	"dpxcruise/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders printable invoices.
type DocsService struct {
	DB        *sql.DB
	RequestID string
	Now       func() time.Time
	Loader    func(ctx context.Context, groupID, tripID int64) (invoiceDocData, error)
}

type invoiceDocData struct {
	Trip    models.Trip
	Details models.InvoiceDetails
}

// InvoicePDF returns the invoice of a group as a PDF and its file name.
func (s DocsService) InvoicePDF(ctx context.Context, groupID, tripID int64) ([]byte, string, error) {
	data, err := s.load(ctx, groupID, tripID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_invoice", fmt.Sprintf("group_id=%d trip_id=%d", groupID, tripID))
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	return buildInvoicePDF(data, now)
}

func (s DocsService) load(ctx context.Context, groupID, tripID int64) (invoiceDocData, error) {
	if s.Loader != nil {
		return s.Loader(ctx, groupID, tripID)
	}
	details, err := InvoiceService{DB: s.DB, RequestID: s.RequestID}.Details(ctx, groupID, tripID)
	if err != nil {
		return invoiceDocData{}, err
	}
	trip, err := repositories.TripRepository{DB: s.DB}.GetByID(ctx, tripID, false)
	if err != nil {
		return invoiceDocData{}, err
	}
	return invoiceDocData{Trip: trip, Details: details}, nil
}

func buildInvoicePDF(d invoiceDocData, now time.Time) ([]byte, string, error) {
	inv := d.Details.Invoice

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "DPX CRUISE INVOICE")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	header := []string{
		fmt.Sprintf("Invoice No : INV-%06d", inv.ID),
		fmt.Sprintf("Issued     : %s", now.Format("2006-01-02 15:04")),
		fmt.Sprintf("Due Date   : %s", safe(inv.DueDate, "-")),
		fmt.Sprintf("Group      : #%d", inv.GroupID),
		fmt.Sprintf("Voyage     : %s -> %s", safe(d.Trip.StartPortName, "-"), safe(d.Trip.EndPortName, "-")),
		fmt.Sprintf("Dates      : %s to %s (%d nights)", safe(d.Trip.StartDate, "-"), safe(d.Trip.EndDate, "-"), d.Trip.Nights),
	}
	for _, line := range header {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}
	if d.Trip.PortNames != "" {
		pdf.MultiCell(0, 6, "Ports      : "+d.Trip.PortNames, "", "", false)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Staterooms")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	if len(d.Details.RoomDetails) == 0 {
		pdf.Cell(0, 6, "No rooms held")
		pdf.Ln(6)
	}
	for _, r := range d.Details.RoomDetails {
		pdf.Cell(120, 6, fmt.Sprintf("Room %s (%s) %s x %d beds", r.RoomNumber, safe(r.Type, "-"), utils.FormatMoney(r.Rate), r.Beds))
		pdf.CellFormat(0, 6, utils.FormatMoney(r.Price), "", 0, "R", false, 0, "")
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Packages")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	if len(d.Details.PackageDetails) == 0 {
		pdf.Cell(0, 6, "No packages selected")
		pdf.Ln(6)
	}
	for _, p := range d.Details.PackageDetails {
		desc := fmt.Sprintf("%s %s: %s", p.FirstName, p.LastName, p.PackageType)
		if p.PricingType == models.PricingPerPersonNight {
			desc += fmt.Sprintf(" (%s x %d nights)", utils.FormatMoney(p.UnitCost), p.Nights)
		}
		pdf.Cell(120, 6, desc)
		pdf.CellFormat(0, 6, utils.FormatMoney(p.Cost), "", 0, "R", false, 0, "")
		pdf.Ln(6)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	totals := [][2]string{
		{"Total", utils.FormatMoney(inv.TotalAmount)},
		{"Paid", utils.FormatMoney(d.Details.TotalPaid)},
		{"Balance Due", utils.FormatMoney(d.Details.Remaining)},
	}
	for _, t := range totals {
		pdf.Cell(120, 8, t[0])
		pdf.CellFormat(0, 8, t[1], "", 0, "R", false, 0, "")
		pdf.Ln(8)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Payments may be made in installments until the due date.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("INVOICE_%d_GROUP_%d.pdf", inv.ID, inv.GroupID)
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

package repositories

import (
	"context"
	"database/sql"
	"errors"

	intdb "dpxcruise/internal/db"
	"dpxcruise/internal/domain/models"

	"github.com/shopspring/decimal"
)

type InvoiceRepository struct {
	DB intdb.DBTX
}

func (r InvoiceRepository) db() intdb.DBTX { return conn(r.DB) }

// RoomLines lists the rooms held by the group with their per-bed rate.
func (r InvoiceRepository) RoomLines(ctx context.Context, groupID int64) ([]models.RoomLine, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT r.roomid, r.roomnumber, s.type, r.price, s.bed
		FROM dpx_pass_room r
		JOIN dpx_stateroom s ON s.sid = r.sid
		WHERE r.groupid = ?
		ORDER BY r.roomnumber
	`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.RoomLine{}
	for rows.Next() {
		var l models.RoomLine
		if err := rows.Scan(&l.RoomID, &l.RoomNumber, &l.Type, &l.Rate, &l.Beds); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// PackageLines lists every package selection of the group's passengers
// along with the trip length used for nightly pricing.
func (r InvoiceRepository) PackageLines(ctx context.Context, groupID int64) ([]models.PackageLine, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT p.passengerid, pi.fname, pi.lname, pk.packtype, pk.pricing_type, pk.packcost, t.night
		FROM dpx_passenger p
		JOIN dpx_passenger_info pi ON pi.passinfoid = p.passinfoid
		JOIN dpx_pass_package pp ON pp.passengerid = p.passengerid
		JOIN dpx_trip_package tp ON tp.trippackid = pp.trippackid
		JOIN dpx_package pk ON pk.packid = tp.packid
		JOIN dpx_trip t ON t.tripid = tp.tripid
		WHERE p.groupid = ?
		ORDER BY p.passengerid, pp.passpackid
	`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.PackageLine{}
	for rows.Next() {
		var l models.PackageLine
		if err := rows.Scan(&l.PassengerID, &l.FirstName, &l.LastName, &l.PackageType, &l.PricingType, &l.UnitCost, &l.Nights); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

const invoiceSelect = `SELECT inid, totalamount, DATE_FORMAT(duedate, '%Y-%m-%d'), tripid, groupid FROM dpx_invoice`

func scanInvoice(s rowScanner) (models.Invoice, error) {
	var inv models.Invoice
	err := s.Scan(&inv.ID, &inv.TotalAmount, &inv.DueDate, &inv.TripID, &inv.GroupID)
	return inv, err
}

// FindByGroupTrip returns found=false when the group has no invoice yet.
func (r InvoiceRepository) FindByGroupTrip(ctx context.Context, groupID, tripID int64) (models.Invoice, bool, error) {
	inv, err := scanInvoice(r.db().QueryRowContext(ctx, invoiceSelect+` WHERE groupid = ? AND tripid = ?`, groupID, tripID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Invoice{}, false, nil
	}
	if err != nil {
		return models.Invoice{}, false, err
	}
	return inv, true, nil
}

// GetForUpdate locks the invoice row for the rest of the transaction.
func (r InvoiceRepository) GetForUpdate(ctx context.Context, id int64) (models.Invoice, error) {
	inv, err := scanInvoice(r.db().QueryRowContext(ctx, invoiceSelect+` WHERE inid = ? FOR UPDATE`, id))
	if err != nil {
		return models.Invoice{}, notFound(err, "invoice")
	}
	return inv, nil
}

func (r InvoiceRepository) Insert(ctx context.Context, inv models.Invoice) (int64, error) {
	res, err := r.db().ExecContext(ctx,
		`INSERT INTO dpx_invoice (totalamount, duedate, tripid, groupid) VALUES (?, ?, ?, ?)`,
		inv.TotalAmount, inv.DueDate, inv.TripID, inv.GroupID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r InvoiceRepository) UpdateTotal(ctx context.Context, id int64, total decimal.Decimal) error {
	_, err := r.db().ExecContext(ctx, `UPDATE dpx_invoice SET totalamount = ? WHERE inid = ?`, total, id)
	return err
}

func (r InvoiceRepository) SumPayments(ctx context.Context, invoiceID int64) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db().QueryRowContext(ctx, `SELECT COALESCE(SUM(payamount), 0) FROM dpx_payment WHERE inid = ?`, invoiceID).Scan(&sum)
	return sum, err
}

func (r InvoiceRepository) InsertPayment(ctx context.Context, p models.Payment) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO dpx_payment (paydate, payamount, paymethod, paytype, inid)
		VALUES (?, ?, ?, ?, ?)
	`, p.PayDate, p.Amount, p.Method, p.Type, p.InvoiceID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListPayments returns the newest payments first.
func (r InvoiceRepository) ListPayments(ctx context.Context, invoiceID int64) ([]models.Payment, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT paymentid, inid, DATE_FORMAT(paydate, '%Y-%m-%d'), payamount, paymethod, paytype
		FROM dpx_payment
		WHERE inid = ?
		ORDER BY paydate DESC, paymentid DESC
	`, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Payment{}
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.PayDate, &p.Amount, &p.Method, &p.Type); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// InvoicedPassengersByDay sums the group size of every invoiced group of a
// trip by the day its invoice was issued. Invoices are issued 30 days
// before they fall due.
func (r InvoiceRepository) InvoicedPassengersByDay(ctx context.Context, tripID int64) (map[string]int, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT DATE_FORMAT(DATE_SUB(i.duedate, INTERVAL 30 DAY), '%Y-%m-%d') AS issued, SUM(g.group_size)
		FROM dpx_invoice i
		JOIN dpx_group g ON g.groupid = i.groupid
		WHERE i.tripid = ?
		GROUP BY issued
		ORDER BY issued
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var (
			day string
			n   int
		)
		if err := rows.Scan(&day, &n); err != nil {
			return nil, err
		}
		out[day] = n
	}
	return out, rows.Err()
}

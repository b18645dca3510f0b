package handlers

import (
	"net/http"

	"dpxcruise/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func invoiceService(c *gin.Context) services.InvoiceService {
	return services.InvoiceService{DB: db(), Now: current().Now, RequestID: requestID(c)}
}

type invoiceRequest struct {
	GroupID int64 `json:"groupid"`
	TripID  int64 `json:"tripid"`
}

// POST /api/invoice/create-or-update
func CreateOrUpdateInvoice(c *gin.Context) {
	var req invoiceRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if !requirePositive(c, map[string]int64{"groupid": req.GroupID, "tripid": req.TripID}) {
		return
	}
	inv, created, err := invoiceService(c).CreateOrUpdate(c.Request.Context(), req.GroupID, req.TripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	extra := gin.H{"inid": inv.ID, "totalAmount": inv.TotalAmount, "duedate": inv.DueDate}
	if created {
		respondMessage(c, http.StatusCreated, "Invoice created successfully", extra)
		return
	}
	respondMessage(c, http.StatusOK, "Invoice updated successfully", extra)
}

func groupTripQuery(c *gin.Context) (int64, int64, bool) {
	groupID, ok := queryID(c, "groupid")
	if !ok {
		return 0, 0, false
	}
	tripID, ok := queryID(c, "tripid", "tripID")
	if !ok {
		return 0, 0, false
	}
	return groupID, tripID, true
}

// GET /api/invoice/details
func InvoiceDetails(c *gin.Context) {
	groupID, tripID, ok := groupTripQuery(c)
	if !ok {
		return
	}
	out, err := invoiceService(c).Details(c.Request.Context(), groupID, tripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type paymentRequest struct {
	InvoiceID int64           `json:"inid"`
	Amount    decimal.Decimal `json:"payamount"`
	Method    string          `json:"paymethod"`
}

// POST /api/invoice/payment
func RecordPayment(c *gin.Context) {
	var req paymentRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if !requirePositive(c, map[string]int64{"inid": req.InvoiceID}) {
		return
	}
	p, err := invoiceService(c).RecordPayment(c.Request.Context(), req.InvoiceID, req.Amount, req.Method)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Payment recorded successfully", gin.H{"paytype": p.Type, "payment": p})
}

// GET /api/invoice/payment-history
func PaymentHistory(c *gin.Context) {
	invoiceID, ok := queryID(c, "inid")
	if !ok {
		return
	}
	out, err := invoiceService(c).PaymentHistory(c.Request.Context(), invoiceID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/invoice/pdf
func InvoicePDF(c *gin.Context) {
	groupID, tripID, ok := groupTripQuery(c)
	if !ok {
		return
	}
	svc := services.DocsService{DB: db(), Now: current().Now, RequestID: requestID(c)}
	data, filename, err := svc.InvoicePDF(c.Request.Context(), groupID, tripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	sendFile(c, "application/pdf", "inline", filename, data)
}

package handlers

import (
	"net/http"

	"dpxcruise/internal/services"

	"github.com/gin-gonic/gin"
)

func reportsService(c *gin.Context) services.ReportsService {
	return services.ReportsService{DB: db(), RequestID: requestID(c)}
}

// GET /api/visual/room-occupancy
func RoomOccupancy(c *gin.Context) {
	tripID, ok := queryID(c, "tripid", "tripID")
	if !ok {
		return
	}
	out, err := reportsService(c).RoomOccupancy(c.Request.Context(), tripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/visual/passenger-distribution
func PassengerDistribution(c *gin.Context) {
	tripID, ok := queryID(c, "tripid", "tripID")
	if !ok {
		return
	}
	out, err := reportsService(c).PassengerDistribution(c.Request.Context(), tripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/visual/invoice-count
func InvoiceCount(c *gin.Context) {
	tripID, ok := queryID(c, "tripid", "tripID")
	if !ok {
		return
	}
	out, err := reportsService(c).InvoiceCount(c.Request.Context(), tripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/visual/export
func ExportTripReport(c *gin.Context) {
	tripID, ok := queryID(c, "tripid", "tripID")
	if !ok {
		return
	}
	data, filename, err := reportsService(c).ExportTrip(c.Request.Context(), tripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	sendFile(c, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "attachment", filename, data)
}

package handlers

import (
	"net/http"

	"dpxcruise/internal/domain/models"
	"dpxcruise/internal/services"

	"github.com/gin-gonic/gin"
)

func itineraryService(c *gin.Context) services.ItineraryService {
	return services.ItineraryService{DB: db(), RequestID: requestID(c)}
}

// GET /api/trip-port/tripPorts
func TripPorts(c *gin.Context) {
	tripID, ok := queryID(c, "tripID", "tripid")
	if !ok {
		return
	}
	ports, err := itineraryService(c).TripPorts(c.Request.Context(), tripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, ports)
}

type addTripPortRequest struct {
	TripID        int64  `json:"tripID"`
	PortID        int64  `json:"portID"`
	ArrivalTime   string `json:"arrivaltime"`
	DepartureTime string `json:"departuretime"`
}

// POST /api/trip-port/add
func AddTripPort(c *gin.Context) {
	var req addTripPortRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if !requirePositive(c, map[string]int64{"tripID": req.TripID, "portID": req.PortID}) {
		return
	}
	tp, err := itineraryService(c).AddPort(c.Request.Context(), req.TripID, req.PortID, req.ArrivalTime, req.DepartureTime)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tp)
}

type updateOrderRequest struct {
	TripID    int64              `json:"tripID"`
	TripPorts []models.PortOrder `json:"tripPorts" binding:"required,dive"`
}

// PUT /api/trip-port/updateOrder
func UpdateTripPortOrder(c *gin.Context) {
	var req updateOrderRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if !requirePositive(c, map[string]int64{"tripID": req.TripID}) {
		return
	}
	if err := itineraryService(c).ReorderPorts(c.Request.Context(), req.TripID, req.TripPorts); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Port order updated successfully", nil)
}

type updateTimesRequest struct {
	TripPortID    int64  `json:"tripportid"`
	ArrivalTime   string `json:"arrivaltime"`
	DepartureTime string `json:"departuretime"`
}

// PUT /api/trip-port/updateTimes
func UpdateTripPortTimes(c *gin.Context) {
	var req updateTimesRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if !requirePositive(c, map[string]int64{"tripportid": req.TripPortID}) {
		return
	}
	if err := itineraryService(c).UpdateTimes(c.Request.Context(), req.TripPortID, req.ArrivalTime, req.DepartureTime); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Port times updated successfully", nil)
}

type deleteTripPortRequest struct {
	TripID     int64 `json:"tripID"`
	TripPortID int64 `json:"tripportid"`
}

// DELETE /api/trip-port/delete
func DeleteTripPort(c *gin.Context) {
	var req deleteTripPortRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if !requirePositive(c, map[string]int64{"tripID": req.TripID, "tripportid": req.TripPortID}) {
		return
	}
	if err := itineraryService(c).DeletePort(c.Request.Context(), req.TripID, req.TripPortID); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Port deleted successfully", nil)
}

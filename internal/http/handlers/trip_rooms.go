package handlers

import (
	"net/http"

	"dpxcruise/internal/domain/models"
	"dpxcruise/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func roomAdminService(c *gin.Context) services.RoomAdminService {
	return services.RoomAdminService{DB: db(), RequestID: requestID(c)}
}

// GET /api/trip-room/options
func RoomOptions(c *gin.Context) {
	out, err := roomAdminService(c).Options(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/trip-room/rooms
func TripRooms(c *gin.Context) {
	tripID, ok := queryID(c, "tripID", "tripid")
	if !ok {
		return
	}
	out, err := roomAdminService(c).Rooms(c.Request.Context(), tripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type roomRequest struct {
	TripID     int64           `json:"tripID"`
	RoomID     int64           `json:"roomID"`
	RoomNumber string          `json:"roomNumber"`
	SID        int64           `json:"sid"`
	LocaID     int64           `json:"locaid"`
	Price      decimal.Decimal `json:"price"`
}

func (r roomRequest) input() models.RoomInput {
	return models.RoomInput{Number: r.RoomNumber, Price: r.Price, StateroomID: r.SID, LocationID: r.LocaID}
}

// POST /api/trip-room/add
func AddTripRoom(c *gin.Context) {
	var req roomRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if !requirePositive(c, map[string]int64{"tripID": req.TripID}) {
		return
	}
	id, err := roomAdminService(c).Add(c.Request.Context(), req.TripID, req.input())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Room added successfully", gin.H{"roomid": id})
}

// PUT /api/trip-room/update
func UpdateTripRoom(c *gin.Context) {
	var req roomRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if !requirePositive(c, map[string]int64{"roomID": req.RoomID}) {
		return
	}
	if err := roomAdminService(c).Update(c.Request.Context(), req.RoomID, req.input()); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Room updated successfully", nil)
}

// DELETE /api/trip-room/delete
func DeleteTripRoom(c *gin.Context) {
	var req roomRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if !requirePositive(c, map[string]int64{"roomID": req.RoomID}) {
		return
	}
	if err := roomAdminService(c).Delete(c.Request.Context(), req.RoomID); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Room deleted successfully", nil)
}

// GET /api/trip-passenger/passengers
func TripPassengers(c *gin.Context) {
	tripID, ok := queryID(c, "tripid", "tripID")
	if !ok {
		return
	}
	out, err := bookingService(c).TripRoster(c.Request.Context(), tripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

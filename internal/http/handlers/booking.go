package handlers

import (
	"net/http"

	"dpxcruise/internal/services"

	"github.com/gin-gonic/gin"
)

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{DB: db(), RequestID: requestID(c)}
}

// GET /api/group/passengers and /api/package/group-passengers
func GroupPassengers(c *gin.Context) {
	groupID, ok := queryID(c, "groupid")
	if !ok {
		return
	}
	out, err := bookingService(c).GroupPassengers(c.Request.Context(), groupID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type createGroupRequest struct {
	TripID    int64 `json:"tripid"`
	GroupSize int   `json:"group_size"`
}

// POST /api/group/create
func CreateGroup(c *gin.Context) {
	var req createGroupRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if !requirePositive(c, map[string]int64{"tripid": req.TripID}) {
		return
	}
	id, err := bookingService(c).CreateGroup(c.Request.Context(), req.TripID, req.GroupSize)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Group created successfully", gin.H{"groupid": id})
}

type assignPassengersRequest struct {
	GroupID    int64 `json:"groupid"`
	Passengers []struct {
		PassInfoID int64 `json:"passinfoid"`
	} `json:"passengers"`
}

// POST /api/group/assign
func AssignPassengers(c *gin.Context) {
	var req assignPassengersRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if !requirePositive(c, map[string]int64{"groupid": req.GroupID}) {
		return
	}
	ids := make([]int64, 0, len(req.Passengers))
	for _, p := range req.Passengers {
		if p.PassInfoID <= 0 {
			respondError(c, http.StatusBadRequest, "missing_id", "passinfoid is required for every passenger", nil)
			return
		}
		ids = append(ids, p.PassInfoID)
	}
	created, err := bookingService(c).AssignPassengers(c.Request.Context(), req.GroupID, ids)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Passengers assigned successfully", gin.H{"passengerids": created})
}

// GET /api/rooms/types
func RoomTypes(c *gin.Context) {
	groupID, ok := queryID(c, "groupid")
	if !ok {
		return
	}
	out, err := bookingService(c).RoomTypes(c.Request.Context(), groupID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/rooms/available
func AvailableRooms(c *gin.Context) {
	groupID, ok := queryID(c, "groupid")
	if !ok {
		return
	}
	sid, ok := queryID(c, "sid")
	if !ok {
		return
	}
	out, err := bookingService(c).AvailableRooms(c.Request.Context(), groupID, sid)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/rooms/group-rooms
func GroupRooms(c *gin.Context) {
	groupID, ok := queryID(c, "groupid")
	if !ok {
		return
	}
	out, err := bookingService(c).GroupRooms(c.Request.Context(), groupID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type roomActionRequest struct {
	RoomID      int64  `json:"roomid"`
	GroupID     int64  `json:"groupid"`
	PassengerID int64  `json:"passengerid"`
	Status      string `json:"status"`
}

// POST /api/rooms/remove
func ClearRoom(c *gin.Context) {
	var req roomActionRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if !requirePositive(c, map[string]int64{"roomid": req.RoomID}) {
		return
	}
	if err := bookingService(c).ClearRoom(c.Request.Context(), req.RoomID); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Room cleared successfully", nil)
}

// POST /api/rooms/occupy
func OccupyRoom(c *gin.Context) {
	var req roomActionRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if !requirePositive(c, map[string]int64{"roomid": req.RoomID, "groupid": req.GroupID}) {
		return
	}
	status, err := services.ParseOccupancy(req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := bookingService(c).OccupyRoom(c.Request.Context(), req.RoomID, req.GroupID, status); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Room status updated successfully", gin.H{"occupancy_status": status})
}

// POST /api/rooms/assign-passenger
func AssignPassengerToRoom(c *gin.Context) {
	var req roomActionRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if !requirePositive(c, map[string]int64{"roomid": req.RoomID, "passengerid": req.PassengerID}) {
		return
	}
	if err := bookingService(c).AssignToRoom(c.Request.Context(), req.RoomID, req.PassengerID); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Passenger assigned to room successfully", nil)
}

// POST /api/rooms/remove-passenger
func RemovePassengerFromRoom(c *gin.Context) {
	var req roomActionRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if !requirePositive(c, map[string]int64{"passengerid": req.PassengerID}) {
		return
	}
	if err := bookingService(c).RemoveFromRoom(c.Request.Context(), req.PassengerID); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Passenger removed from room successfully", nil)
}

// POST /api/rooms/delete-passenger
func DeletePassenger(c *gin.Context) {
	var req roomActionRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if !requirePositive(c, map[string]int64{"passengerid": req.PassengerID, "groupid": req.GroupID}) {
		return
	}
	size, err := bookingService(c).DeletePassenger(c.Request.Context(), req.GroupID, req.PassengerID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Passenger deleted successfully and group size updated", gin.H{"group_size": size})
}

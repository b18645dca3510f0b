package handlers

import (
	"net/http"

	"dpxcruise/internal/domain/models"
	"dpxcruise/internal/services"

	"github.com/gin-gonic/gin"
)

func tripService(c *gin.Context) services.TripService {
	return services.TripService{DB: db(), RequestID: requestID(c)}
}

type findTripsRequest struct {
	StartPort string `json:"startPort"`
	EndPort   string `json:"endPort"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Night     int    `json:"night"`
}

func (r findTripsRequest) filter() models.TripFilter {
	return models.TripFilter{
		StartPort: r.StartPort,
		EndPort:   r.EndPort,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Nights:    r.Night,
	}
}

func findTrips(c *gin.Context, includeInactive bool) {
	var req findTripsRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid_payload", "invalid payload", err.Error())
			return
		}
	}
	trips, err := tripService(c).Search(c.Request.Context(), req.filter(), includeInactive)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trips)
}

func findTripByID(c *gin.Context, includeInactive bool) {
	id, ok := queryID(c, "tripid", "tripID")
	if !ok {
		return
	}
	trip, err := tripService(c).Get(c.Request.Context(), id, includeInactive)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// POST /api/trips/find
func FindTrips(c *gin.Context) { findTrips(c, false) }

// POST /api/trips/admin/find
func AdminFindTrips(c *gin.Context) { findTrips(c, true) }

// GET /api/trips/findid
func FindTripByID(c *gin.Context) { findTripByID(c, false) }

// GET /api/trips/admin/findid
func AdminFindTripByID(c *gin.Context) { findTripByID(c, true) }

type tripRequest struct {
	TripID    int64  `json:"tripid"`
	StartPort int64  `json:"start_port"`
	EndPort   int64  `json:"end_port"`
	StartDate string `json:"startdate"`
	EndDate   string `json:"enddate"`
	Night     int    `json:"night"`
	IsActive  string `json:"is_active"`
}

func (r tripRequest) input() models.TripInput {
	return models.TripInput{
		StartPort: r.StartPort,
		EndPort:   r.EndPort,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Nights:    r.Night,
		IsActive:  r.IsActive,
	}
}

// POST /api/trips/add
func AddTrip(c *gin.Context) {
	var req tripRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	id, err := tripService(c).Create(c.Request.Context(), req.input())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Trip added successfully", gin.H{"tripid": id})
}

// POST /api/trips/update
func UpdateTrip(c *gin.Context) {
	var req tripRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if !requirePositive(c, map[string]int64{"tripid": req.TripID}) {
		return
	}
	if err := tripService(c).Update(c.Request.Context(), req.TripID, req.input()); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Trip updated successfully", nil)
}

// GET /api/trips/ports and /api/trip-port/ports
func ListPorts(c *gin.Context) {
	ports, err := itineraryService(c).Ports(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, ports)
}

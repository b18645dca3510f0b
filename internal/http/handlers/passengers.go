package handlers

import (
	"net/http"

	"dpxcruise/internal/domain/models"
	"dpxcruise/internal/services"

	"github.com/gin-gonic/gin"
)

func profileService(c *gin.Context) services.ProfileService {
	return services.ProfileService{DB: db(), RequestID: requestID(c)}
}

// GET /api/passenger/saved
func SavedPassengers(c *gin.Context) {
	userID, ok := queryID(c, "userid")
	if !ok {
		return
	}
	out, err := profileService(c).Saved(c.Request.Context(), userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type createPassengerRequest struct {
	UserID int64 `json:"userid"`
	models.PassengerInfo
}

// POST /api/passenger/create
func CreatePassengerProfile(c *gin.Context) {
	var req createPassengerRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	id, err := profileService(c).Create(c.Request.Context(), req.UserID, req.PassengerInfo)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Passenger created successfully", gin.H{"passinfoid": id})
}

type savedPassengerRequest struct {
	UserID     int64 `json:"userid"`
	PassInfoID int64 `json:"passinfoid"`
}

// POST /api/passenger/save
func SavePassengerProfile(c *gin.Context) {
	var req savedPassengerRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := profileService(c).Save(c.Request.Context(), req.UserID, req.PassInfoID); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Passenger saved successfully", nil)
}

// DELETE /api/passenger/delete
func DeletePassengerProfile(c *gin.Context) {
	var req savedPassengerRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if !requirePositive(c, map[string]int64{"userid": req.UserID, "passinfoid": req.PassInfoID}) {
		return
	}
	if err := profileService(c).Delete(c.Request.Context(), req.UserID, req.PassInfoID); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Passenger deleted successfully", nil)
}

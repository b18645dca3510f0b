package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/package/passenger-packages
func PassengerPackages(c *gin.Context) {
	passengerID, ok := queryID(c, "passengerid")
	if !ok {
		return
	}
	out, err := packageService(c).PassengerPackages(c.Request.Context(), passengerID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type packageSelectionRequest struct {
	TripPackID  int64 `json:"trippackid"`
	PassengerID int64 `json:"passengerid"`
}

// POST /api/package/add-package
func AddPassengerPackage(c *gin.Context) {
	var req packageSelectionRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if !requirePositive(c, map[string]int64{"trippackid": req.TripPackID, "passengerid": req.PassengerID}) {
		return
	}
	added, err := packageService(c).Select(c.Request.Context(), req.TripPackID, req.PassengerID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !added {
		respondMessage(c, http.StatusOK, "Package already selected", gin.H{"added": false})
		return
	}
	respondMessage(c, http.StatusCreated, "Package added successfully", gin.H{"added": true})
}

// POST /api/package/remove-package
func RemovePassengerPackage(c *gin.Context) {
	var req packageSelectionRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if !requirePositive(c, map[string]int64{"trippackid": req.TripPackID, "passengerid": req.PassengerID}) {
		return
	}
	if err := packageService(c).Deselect(c.Request.Context(), req.TripPackID, req.PassengerID); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Package removed successfully", nil)
}

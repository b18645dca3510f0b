package handlers

import (
	"net/http"

	"dpxcruise/internal/services"

	"github.com/gin-gonic/gin"
)

func packageService(c *gin.Context) services.PackageService {
	return services.PackageService{DB: db(), RequestID: requestID(c)}
}

func catalogService(c *gin.Context) services.CatalogService {
	return services.CatalogService{DB: db(), RequestID: requestID(c)}
}

// GET /api/trip-package/list
func ListPackages(c *gin.Context) {
	pkgs, err := packageService(c).Catalog(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, pkgs)
}

// GET /api/trip-package/tripPackages and /api/package/trip-packages
func TripPackages(c *gin.Context) {
	tripID, ok := queryID(c, "tripID", "tripid")
	if !ok {
		return
	}
	pkgs, err := packageService(c).TripPackages(c.Request.Context(), tripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, pkgs)
}

type offerPackageRequest struct {
	TripID int64 `json:"tripID"`
	PackID int64 `json:"packID"`
}

// POST /api/trip-package/add
func AddTripPackage(c *gin.Context) {
	var req offerPackageRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if !requirePositive(c, map[string]int64{"tripID": req.TripID, "packID": req.PackID}) {
		return
	}
	id, err := packageService(c).Offer(c.Request.Context(), req.TripID, req.PackID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Package added to trip successfully", gin.H{"trippackid": id})
}

type withdrawPackageRequest struct {
	TripPackID int64 `json:"trippackid"`
}

// DELETE /api/trip-package/delete
func DeleteTripPackage(c *gin.Context) {
	var req withdrawPackageRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if !requirePositive(c, map[string]int64{"trippackid": req.TripPackID}) {
		return
	}
	if err := packageService(c).Withdraw(c.Request.Context(), req.TripPackID); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Package removed from trip successfully", nil)
}

// GET /api/trip-restaurant/list
func ListRestaurants(c *gin.Context) {
	out, err := catalogService(c).Restaurants(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/trip-restaurant/tripRestaurants
func TripRestaurants(c *gin.Context) {
	tripID, ok := queryID(c, "tripID", "tripid")
	if !ok {
		return
	}
	out, err := catalogService(c).TripRestaurants(c.Request.Context(), tripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type tripRestaurantRequest struct {
	TripID int64 `json:"tripID"`
	ResID  int64 `json:"resid"`
}

// POST /api/trip-restaurant/add
func AddTripRestaurant(c *gin.Context) {
	var req tripRestaurantRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if !requirePositive(c, map[string]int64{"tripID": req.TripID, "resid": req.ResID}) {
		return
	}
	if err := catalogService(c).AddRestaurant(c.Request.Context(), req.TripID, req.ResID); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Restaurant added to trip successfully", nil)
}

// DELETE /api/trip-restaurant/delete
func DeleteTripRestaurant(c *gin.Context) {
	var req tripRestaurantRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if !requirePositive(c, map[string]int64{"tripID": req.TripID, "resid": req.ResID}) {
		return
	}
	if err := catalogService(c).RemoveRestaurant(c.Request.Context(), req.TripID, req.ResID); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Restaurant removed from trip successfully", nil)
}

// GET /api/trip-activity/list
func ListActivities(c *gin.Context) {
	out, err := catalogService(c).Activities(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/trip-activity/tripActivities
func TripActivities(c *gin.Context) {
	tripID, ok := queryID(c, "tripID", "tripid")
	if !ok {
		return
	}
	out, err := catalogService(c).TripActivities(c.Request.Context(), tripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type tripActivityRequest struct {
	TripID int64 `json:"tripID"`
	ActID  int64 `json:"actID"`
}

// POST /api/trip-activity/add
func AddTripActivity(c *gin.Context) {
	var req tripActivityRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if !requirePositive(c, map[string]int64{"tripID": req.TripID, "actID": req.ActID}) {
		return
	}
	if err := catalogService(c).AddActivity(c.Request.Context(), req.TripID, req.ActID); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Activity added to trip successfully", nil)
}

// DELETE /api/trip-activity/delete
func DeleteTripActivity(c *gin.Context) {
	var req tripActivityRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if !requirePositive(c, map[string]int64{"tripID": req.TripID, "actID": req.ActID}) {
		return
	}
	if err := catalogService(c).RemoveActivity(c.Request.Context(), req.TripID, req.ActID); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Activity removed from trip successfully", nil)
}

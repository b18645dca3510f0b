package api

import (
	"log"
	stdhttp "net/http"

	intconfig "dpxcruise/internal/config"
	"dpxcruise/internal/domain"
	h "dpxcruise/internal/http/handlers"
	"dpxcruise/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, deps h.Deps) *gin.Engine {
	h.Configure(deps)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	authed := middleware.AuthRequired(deps.Tokens)
	staff := middleware.RequireRoles(domain.RoleEmployee)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		api.POST("/verification/send-code", h.SendCode)

		auth := api.Group("/auth")
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/reset-password", h.ResetPassword)
		auth.PUT("/change-username", authed, h.ChangeUsername)
		auth.PUT("/change-password", authed, h.ChangePassword)
		auth.DELETE("/delete-account", h.DeleteAccount)

		trips := api.Group("/trips")
		trips.POST("/find", h.FindTrips)
		trips.GET("/findid", h.FindTripByID)
		trips.GET("/ports", h.ListPorts)
		tripsAdmin := trips.Group("", authed, staff)
		tripsAdmin.POST("/admin/find", h.AdminFindTrips)
		tripsAdmin.GET("/admin/findid", h.AdminFindTripByID)
		tripsAdmin.POST("/add", h.AddTrip)
		tripsAdmin.POST("/update", h.UpdateTrip)

		tripPort := api.Group("/trip-port")
		tripPort.GET("/ports", h.ListPorts)
		tripPort.GET("/tripPorts", h.TripPorts)
		tripPortAdmin := tripPort.Group("", authed, staff)
		tripPortAdmin.POST("/add", h.AddTripPort)
		tripPortAdmin.PUT("/updateOrder", h.UpdateTripPortOrder)
		tripPortAdmin.PUT("/updateTimes", h.UpdateTripPortTimes)
		tripPortAdmin.DELETE("/delete", h.DeleteTripPort)

		tripPackage := api.Group("/trip-package")
		tripPackage.GET("/list", h.ListPackages)
		tripPackage.GET("/tripPackages", h.TripPackages)
		tripPackage.POST("/add", authed, staff, h.AddTripPackage)
		tripPackage.DELETE("/delete", authed, staff, h.DeleteTripPackage)

		tripRestaurant := api.Group("/trip-restaurant")
		tripRestaurant.GET("/list", h.ListRestaurants)
		tripRestaurant.GET("/tripRestaurants", h.TripRestaurants)
		tripRestaurant.POST("/add", authed, staff, h.AddTripRestaurant)
		tripRestaurant.DELETE("/delete", authed, staff, h.DeleteTripRestaurant)

		tripActivity := api.Group("/trip-activity")
		tripActivity.GET("/list", h.ListActivities)
		tripActivity.GET("/tripActivities", h.TripActivities)
		tripActivity.POST("/add", authed, staff, h.AddTripActivity)
		tripActivity.DELETE("/delete", authed, staff, h.DeleteTripActivity)

		tripRoom := api.Group("/trip-room", authed, staff)
		tripRoom.GET("/options", h.RoomOptions)
		tripRoom.GET("/rooms", h.TripRooms)
		tripRoom.POST("/add", h.AddTripRoom)
		tripRoom.PUT("/update", h.UpdateTripRoom)
		tripRoom.DELETE("/delete", h.DeleteTripRoom)

		api.GET("/trip-passenger/passengers", authed, staff, h.TripPassengers)

		group := api.Group("/group")
		group.GET("/passengers", h.GroupPassengers)
		group.POST("/create", h.CreateGroup)
		group.POST("/assign", h.AssignPassengers)

		passenger := api.Group("/passenger")
		passenger.GET("/saved", h.SavedPassengers)
		passenger.POST("/create", h.CreatePassengerProfile)
		passenger.POST("/save", h.SavePassengerProfile)
		passenger.DELETE("/delete", h.DeletePassengerProfile)

		rooms := api.Group("/rooms")
		rooms.GET("/types", h.RoomTypes)
		rooms.GET("/available", h.AvailableRooms)
		rooms.GET("/group-rooms", h.GroupRooms)
		rooms.POST("/remove", h.ClearRoom)
		rooms.POST("/occupy", h.OccupyRoom)
		rooms.POST("/assign-passenger", h.AssignPassengerToRoom)
		rooms.POST("/remove-passenger", h.RemovePassengerFromRoom)
		rooms.POST("/delete-passenger", h.DeletePassenger)

		pkg := api.Group("/package")
		pkg.GET("/group-passengers", h.GroupPassengers)
		pkg.GET("/trip-packages", h.TripPackages)
		pkg.GET("/passenger-packages", h.PassengerPackages)
		pkg.POST("/add-package", h.AddPassengerPackage)
		pkg.POST("/remove-package", h.RemovePassengerPackage)

		invoice := api.Group("/invoice")
		invoice.POST("/create-or-update", h.CreateOrUpdateInvoice)
		invoice.GET("/details", h.InvoiceDetails)
		invoice.POST("/payment", h.RecordPayment)
		invoice.GET("/payment-history", h.PaymentHistory)
		invoice.GET("/pdf", h.InvoicePDF)

		visual := api.Group("/visual", authed, staff)
		visual.GET("/room-occupancy", h.RoomOccupancy)
		visual.GET("/passenger-distribution", h.PassengerDistribution)
		visual.GET("/invoice-count", h.InvoiceCount)
		visual.GET("/export", h.ExportTripReport)
	}

	h.SetRouter(r)
	return r
}

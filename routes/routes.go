package routes

import (
	"venuepro-backend/config"
	"venuepro-backend/controllers"
	"venuepro-backend/models"
	"venuepro-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"https://app.venuepro.digital",
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) bool {
			return origin == "https://app.venuepro.digital" ||
				origin == "http://localhost:3000"
		},
	}))

	r.Use(config.PerformanceLogger())

	// Public short-link redirect
	r.GET("/l/:code", controllers.Redirect)

	// Provider callbacks, verified by signature rather than JWT
	webhooks := r.Group("/webhooks")
	{
		webhooks.POST("/stripe", controllers.StripeWebhook)
		webhooks.POST("/twilio/status", controllers.TwilioStatusCallback)
	}

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)
			customers.GET("/:id/loyalty", controllers.GetCustomerLoyalty)
		}

		// Booking type routes
		bookingTypes := api.Group("/booking-types")
		{
			bookingTypes.POST("", controllers.CreateBookingType)
			bookingTypes.GET("", controllers.GetBookingTypes)
			bookingTypes.PUT("/:id", controllers.UpdateBookingType)
			bookingTypes.DELETE("/:id", controllers.DeleteBookingType)
		}

		// Booking and availability routes
		bookings := api.Group("/bookings")
		{
			bookings.GET("/availability", controllers.GetAvailability)
			bookings.POST("", controllers.CreateBooking)
			bookings.GET("", controllers.GetBookings)
			bookings.GET("/:id", controllers.GetBooking)
			bookings.PUT("/:id", controllers.UpdateBooking)
			bookings.POST("/:id/cancel", controllers.CancelBooking)
		}

		// Opening hours and overrides
		hours := api.Group("/hours")
		{
			hours.PUT("", controllers.UpdateOpeningHours)
			hours.POST("/overrides", controllers.CreateOverride)
			hours.GET("/overrides", controllers.GetOverrides)
			hours.DELETE("/overrides/:id", controllers.DeleteOverride)
			hours.GET("/status", controllers.GetServiceStatus)
		}

		// Event routes
		events := api.Group("/events")
		{
			events.POST("", controllers.CreateEvent)
			events.GET("", controllers.GetEvents)
			events.GET("/:id", controllers.GetEvent)
			events.PUT("/:id", controllers.UpdateEvent)
			events.POST("/:id/checkin", controllers.CheckInCustomer)
			events.GET("/:id/attendees", controllers.GetEventAttendees)
		}

		// Achievement rules
		achievements := api.Group("/achievements")
		{
			achievements.POST("", controllers.CreateAchievement)
			achievements.GET("", controllers.GetAchievements)
			achievements.PUT("/:id", controllers.UpdateAchievement)
			achievements.DELETE("/:id", controllers.DeleteAchievement)
		}

		// Invoice routes
		invoices := api.Group("/invoices")
		{
			invoices.POST("", controllers.CreateInvoice)
			invoices.GET("", controllers.GetInvoices)
			invoices.GET("/:id", controllers.GetInvoice)
			invoices.POST("/:id/payments", controllers.RecordPayment)
			invoices.POST("/:id/void", controllers.VoidInvoice)
			invoices.POST("/:id/email", controllers.SendInvoiceEmail)
			invoices.POST("/:id/payment-intent", controllers.CreateInvoicePaymentIntent)
		}

		// Messaging routes
		messages := api.Group("/messages")
		{
			messages.POST("/templates", controllers.CreateTemplate)
			messages.GET("/templates", controllers.GetTemplates)
			messages.PUT("/templates/:id", controllers.UpdateTemplate)
			messages.DELETE("/templates/:id", controllers.DeleteTemplate)
			messages.POST("/send", controllers.SendMessage)
			messages.POST("/announce", controllers.AnnounceEvent)
			messages.GET("/logs", controllers.GetMessageLogs)
		}

		// Rota and payroll; payroll is restricted to owners and managers
		employees := api.Group("/employees")
		{
			employees.POST("", controllers.CreateEmployee)
			employees.GET("", controllers.GetEmployees)
			employees.PUT("/:id", controllers.UpdateEmployee)
			employees.DELETE("/:id", controllers.DeleteEmployee)
		}

		rota := api.Group("/rota")
		{
			rota.POST("/shifts", controllers.CreateShift)
			rota.GET("", controllers.GetRota)
			rota.PUT("/shifts/:id", controllers.UpdateShift)
			rota.DELETE("/shifts/:id", controllers.DeleteShift)
			rota.POST("/publish", controllers.PublishRota)
		}

		payroll := api.Group("/payroll", utils.RequireRole(models.RoleOwner, models.RoleManager))
		{
			payroll.POST("/runs", controllers.RunPayroll)
			payroll.GET("/runs", controllers.GetPayrollRuns)
			payroll.GET("/runs/:id", controllers.GetPayrollRun)
		}

		// Short link routes
		links := api.Group("/links")
		{
			links.POST("", controllers.CreateShortLink)
			links.GET("", controllers.GetShortLinks)
			links.GET("/:id/stats", controllers.GetShortLinkStats)
			links.DELETE("/:id", controllers.DeleteShortLink)
		}

		// Targets and the P&L dashboard; owners and managers only
		pnl := api.Group("/pnl", utils.RequireRole(models.RoleOwner, models.RoleManager))
		{
			pnl.POST("/targets", controllers.SetTarget)
			pnl.GET("/targets", controllers.GetTargets)
			pnl.DELETE("/targets/:id", controllers.DeleteTarget)
			pnl.GET("/dashboard", controllers.GetPnLDashboard)
		}

		// Reports routes
		reportController := controllers.ReportController{}
		api.GET("/reports", reportController.GetReportAnalytics)

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)

		// Settings routes
		profile := api.Group("/profile")
		{
			profile.GET("", controllers.GetVenueProfile)
			profile.PUT("", controllers.UpdateVenueProfile)
			profile.PUT("/notifications", controllers.UpdateNotificationSettings)
		}
	}

	return r
}

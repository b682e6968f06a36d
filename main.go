package main

import (
	"fmt"
	"log"
	"os"

	"venuepro-backend/config"
	"venuepro-backend/models"
	"venuepro-backend/routes"
	"venuepro-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.LoadConfig()
	config.ConnectDB()
	config.ConnectRedis()
	services.InitStripe()

	config.DB.AutoMigrate(
		&models.Venue{},
		&models.User{},
		&models.Customer{},
		&models.BookingType{},
		&models.Booking{},
		&models.BusinessHoursOverride{},
		&models.Event{},
		&models.EventCheckin{},
		&models.Achievement{},
		&models.AchievementAward{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.MessageTemplate{},
		&models.MessageLog{},
		&models.Employee{},
		&models.Shift{},
		&models.PayrollRun{},
		&models.PayrollLine{},
		&models.ShortLink{},
		&models.LinkClick{},
		&models.MetricTarget{},
		&models.WebhookLog{},
	)
}

func main() {
	reminders := services.NewReminderService(config.DB, services.NewSMSService(config.DB))
	reminders.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}

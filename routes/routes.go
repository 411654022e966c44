package routes

import (
	"careloom-backend/config"
	"careloom-backend/controllers"
	"careloom-backend/services"
	"careloom-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(reminderService *services.ReminderService) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"https://app.careloom.co",
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

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
		// Relationship routes
		relationships := api.Group("/relationships")
		{
			relationships.POST("", controllers.CreateRelationship)
			relationships.GET("", controllers.GetRelationships)
			relationships.GET("/:id", controllers.GetRelationship)
			relationships.PUT("/:id", controllers.UpdateRelationship)
			relationships.DELETE("/:id", controllers.DeleteRelationship)
		}

		// Reminder routes
		reminderController := controllers.ReminderController{Service: reminderService}
		reminders := api.Group("/reminders")
		{
			reminders.POST("/run", reminderController.RunReminders)
			reminders.GET("/logs", controllers.GetReminderLogs)
		}

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)

		// Settings routes
		profile := api.Group("/profile")
		{
			profile.GET("", controllers.GetProfile)
			profile.PUT("", controllers.UpdateProfile)
			profile.PUT("/notifications", controllers.UpdateNotificationSettings)
		}
	}

	return r
}

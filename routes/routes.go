package routes

import (
	"relocation-api/controllers"
	"relocation-api/middleware"
	"relocation-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			public.POST("/login", controllers.Login)
			public.POST("/register", controllers.Register)
			public.GET("/offers", controllers.GetOffers)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Relocation API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Notifications; PUT on the collection marks everything read
			protected.GET("/notifications", controllers.GetNotifications)
			protected.PUT("/notifications", controllers.MarkAllNotificationsRead)
			protected.PUT("/notifications/:id/read", controllers.MarkNotificationRead)

			// Stored files; per-client ownership is enforced in the handler
			protected.GET("/documents/download/:id", controllers.DownloadDocument)

			// Client self-service (owning client resolved from the token)
			me := protected.Group("/me", middleware.RequireRole(models.RoleClient))
			{
				me.GET("", controllers.GetMyCase)
				me.GET("/payments", controllers.GetMyPayments)
				me.GET("/stages", controllers.GetMyStages)
				me.GET("/documents", controllers.GetMyDocuments)
				me.POST("/payments/receipt", controllers.SubmitReceipt)
				me.POST("/payments/second", controllers.RequestSecondPayment)
				me.POST("/documents", controllers.UploadMyDocument)
				me.DELETE("/documents/:type", controllers.DeleteMyDocument)
			}

			// Admin review workflows; one role gate for the whole group
			admin := protected.Group("", middleware.RequireAdmin())
			{
				clients := admin.Group("/clients")
				{
					clients.GET("", controllers.GetClients)
					clients.GET("/:id", controllers.GetClient)
					clients.PATCH("/:id", controllers.UpdateClient)
					clients.PUT("/:id", controllers.UpdateClient)
					clients.PATCH("/:id/status", controllers.UpdateClientCaseStatus)
					clients.PATCH("/:id/payment-status", controllers.UpdatePaymentStatus)

					// Only super admin can delete a client file
					clients.DELETE("/:id", middleware.RequireRole(models.RoleSuperAdmin), controllers.DeleteClient)

					clients.GET("/:id/stages", controllers.GetClientStages)
					clients.PUT("/:id/stages", controllers.UpdateClientStage)

					clients.GET("/:id/payments", controllers.GetClientPayments)
					clients.POST("/:id/payments", controllers.CreateClientPayment)

					clients.POST("/:id/documents", controllers.UploadClientDocument)
					clients.DELETE("/:id/documents/:type", controllers.DeleteClientDocument)
				}

				payments := admin.Group("/payments")
				{
					payments.PUT("/:id/verify", controllers.VerifyPayment)
					payments.PUT("/:id/reject", controllers.RejectPayment)
				}

				registrations := admin.Group("/registrations")
				{
					registrations.GET("", controllers.GetRegistrations)
					registrations.POST("/:id/approve", controllers.ApproveRegistration)
					registrations.POST("/:id/reject", controllers.RejectRegistration)
				}

				dashboard := admin.Group("/dashboard")
				{
					dashboard.GET("/stats", controllers.GetDashboardStats)
				}
			}
		}
	}
}

// File: /routes/routes.go
package routes

import (
	"net/http"

	"fleetexpense-api/config"
	"fleetexpense-api/controllers"
	"fleetexpense-api/middleware"
	"fleetexpense-api/repositories"
	"fleetexpense-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, emailService *services.EmailService) {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	vehicleRepo := repositories.NewVehicleRepository(db)
	groupRepo := repositories.NewGroupRepository(db)
	expenseRepo := repositories.NewExpenseRepository(db)

	// Services
	scopeStore := services.NewScopeStore(userRepo, vehicleRepo, groupRepo)
	rollupService := services.NewRollupService(scopeStore, expenseRepo, cfg.ComparisonConcurrency)
	userService := services.NewUserService(userRepo, emailService)
	vehicleService := services.NewVehicleService(vehicleRepo)
	groupService := services.NewGroupService(groupRepo, userRepo, vehicleRepo)
	expenseService := services.NewExpenseService(expenseRepo, groupRepo)

	// Controllers
	authController := controllers.NewAuthController(userService, cfg.JWTSecret, cfg.JWTTTL)
	userController := controllers.NewUserController(userService, rollupService)
	vehicleController := controllers.NewVehicleController(vehicleService, rollupService)
	groupController := controllers.NewGroupController(groupService, rollupService)
	expenseController := controllers.NewExpenseController(expenseService)
	comparisonController := controllers.NewComparisonController(rollupService)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	api := r.Group("/api")
	api.Use(middleware.ValidateJSON())

	// Auth routes (public)
	auth := api.Group("/auth")
	{
		limited := auth.Group("/")
		limited.Use(middleware.RateLimit(cfg.RateLimitPerMinute, cfg.RateLimitBurst))
		limited.POST("/signup", authController.Signup)
		limited.POST("/login", authController.Login)

		auth.POST("/logout", authController.Logout)
	}

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	admin := middleware.RequireAdmin()
	{
		users := protected.Group("/users")
		{
			users.GET("/me", userController.GetMe)
			users.GET("/:id", userController.GetUser)
			users.GET("", admin, userController.GetUsers)
			users.POST("", admin, userController.CreateUser)
			users.DELETE("/:id", admin, userController.DeleteUser)
			users.POST("/getUsersWithTotalAmount", admin, userController.GetUsersWithTotalAmount)
		}

		vehicles := protected.Group("/vehicles")
		{
			vehicles.GET("", vehicleController.GetVehicles)
			vehicles.GET("/mine", vehicleController.GetMyVehicles)
			vehicles.GET("/:id", vehicleController.GetVehicle)
			vehicles.POST("", admin, vehicleController.CreateVehicle)
			vehicles.PUT("/:id", admin, vehicleController.UpdateVehicle)
			vehicles.DELETE("/:id", admin, vehicleController.DeleteVehicle)

			vehicles.POST("/getExpenseCategory", admin, vehicleController.GetExpenseCategory)
			vehicles.POST("/getExpenseCategoryByUserEmail", vehicleController.GetExpenseCategoryByUserEmail)
			vehicles.POST("/getExpenseCategoryByVehicle", vehicleController.GetExpenseCategoryByVehicle)
			vehicles.POST("/getVehiclesWithTotalAmount", vehicleController.GetVehiclesWithTotalAmount)
		}

		groups := protected.Group("/groups")
		{
			groups.GET("", groupController.GetGroups)
			groups.POST("", admin, groupController.AssignGroup)
			groups.DELETE("/:id", admin, groupController.DeleteGroup)
			groups.POST("/getExpenseCategory", groupController.GetExpenseCategory)
		}

		expenses := protected.Group("/expenses")
		{
			expenses.GET("/:category", expenseController.GetExpenses)
			expenses.POST("/:category", expenseController.CreateExpense)
			expenses.GET("/:category/:id", expenseController.GetExpense)
			expenses.PUT("/:category/:id", expenseController.UpdateExpense)
			expenses.DELETE("/:category/:id", expenseController.DeleteExpense)
		}

		comparison := protected.Group("/comparison")
		{
			comparison.POST("/getusercomparison", comparisonController.GetUserComparison)
			comparison.POST("/getvehiclecomparison", comparisonController.GetVehicleComparison)
			comparison.POST("/getuservehiclecomparison", comparisonController.GetUserVehicleComparison)
			comparison.POST("/getvehicleusercomparison", comparisonController.GetVehicleUserComparison)
		}
	}
}

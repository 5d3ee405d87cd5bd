package main

import (
	"log"

	"github.com/MoamenFouad/UniQuest/internal/config"
	"github.com/MoamenFouad/UniQuest/internal/database"
	"github.com/MoamenFouad/UniQuest/internal/handlers"
	"github.com/MoamenFouad/UniQuest/internal/middleware"
	"github.com/MoamenFouad/UniQuest/internal/services"

	_ "github.com/MoamenFouad/UniQuest/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           UniQuest API
// @version         1.0
// @description     Gamified study rooms: quests with deadlines, proof submissions, XP and leaderboards
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	clock := services.NewClock(cfg.TZOffsetMinutes)

	authService := services.NewAuthService(db, cfg.JWTSecret)
	userService := services.NewUserService(db)
	roomService := services.NewRoomService(db)
	taskService := services.NewTaskService(db, clock, roomService)
	submissionService := services.NewSubmissionService(db, roomService)
	xpService := services.NewXPService(db)
	leaderboardService := services.NewLeaderboardService(db)
	dashboardService := services.NewDashboardService(db, xpService, leaderboardService, clock)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	roomHandler := handlers.NewRoomHandler(roomService)
	taskHandler := handlers.NewTaskHandler(taskService)
	submissionHandler := handlers.NewSubmissionHandler(submissionService, cfg.UploadDir)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.Static("/uploads", cfg.UploadDir)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		users := api.Group("/users")
		users.Use(middleware.JWTAuth(authService))
		{
			users.GET("/me", userHandler.GetMe)
			users.PUT("/me", userHandler.UpdateMe)
		}

		rooms := api.Group("/rooms")
		rooms.Use(middleware.JWTAuth(authService))
		{
			rooms.POST("", roomHandler.CreateRoom)
			rooms.GET("", roomHandler.MyRooms)
			rooms.GET("/:code", roomHandler.GetRoom)
			rooms.PUT("/:code", roomHandler.UpdateRoom)
			rooms.DELETE("/:code", roomHandler.DeleteRoom)
			rooms.POST("/:code/join", roomHandler.JoinRoom)
			rooms.POST("/:code/leave", roomHandler.LeaveRoom)
			rooms.POST("/:code/archive", roomHandler.ArchiveRoom)
			rooms.POST("/:code/unarchive", roomHandler.UnarchiveRoom)
			rooms.GET("/:code/members", roomHandler.ListMembers)
			rooms.PUT("/:code/members/:userID/role", roomHandler.SetMemberRole)
			rooms.POST("/:code/tasks", taskHandler.CreateTask)
			rooms.GET("/:code/tasks", taskHandler.ListTasks)
			rooms.DELETE("/:code/tasks/:id", taskHandler.DeleteTask)
			rooms.GET("/:code/leaderboard", leaderboardHandler.Room)
			rooms.GET("/:code/submissions/export", submissionHandler.ExportSubmissions)
		}

		tasks := api.Group("/tasks")
		tasks.Use(middleware.JWTAuth(authService))
		{
			tasks.POST("/:id/submissions", submissionHandler.Submit)
			tasks.GET("/:id/submissions", submissionHandler.ListSubmissions)
			tasks.POST("/:id/submissions/:sid/verify", submissionHandler.Verify)
		}

		api.GET("/leaderboard", middleware.JWTAuth(authService), leaderboardHandler.Global)
		api.GET("/dashboard", middleware.JWTAuth(authService), dashboardHandler.GetDashboard)
	}

	log.Printf("server listening on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

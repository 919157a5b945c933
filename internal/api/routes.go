package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"ngx/coaching/internal/domain"
	"ngx/coaching/internal/service"
)

// Services bundles everything the HTTP layer calls into.
type Services struct {
	Auth      service.AuthService
	Trainers  service.TrainerService
	Clients   service.ClientService
	Exercises service.ExerciseService
	Programs  service.ProgramService
	Templates service.TemplateService
	Exports   service.ExportService
}

func SetupRoutes(router *gin.Engine, svc Services, logger *slog.Logger) {
	authHandler := NewAuthHandler(svc.Auth, logger)
	trainerHandler := NewTrainerHandler(svc.Trainers, logger)
	clientHandler := NewClientHandler(svc.Clients, logger)
	exerciseHandler := NewExerciseHandler(svc.Exercises, logger)
	programHandler := NewProgramHandler(svc.Programs, svc.Exports, logger)
	templateHandler := NewTemplateHandler(svc.Templates, svc.Exports, logger)
	exportHandler := NewExportHandler(svc.Exports, logger)

	router.Use(RequestLogger(logger))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(AuthMiddleware(svc.Auth))
	protected.GET("/me", authHandler.Me)

	// Management routes are for trainers only.
	trainer := protected.Group("")
	trainer.Use(RoleMiddleware(domain.RoleTrainer))
	{
		exercises := trainer.Group("/exercises")
		{
			exercises.POST("", exerciseHandler.CreateExercise)
			exercises.GET("", exerciseHandler.ListExercises)
			exercises.GET("/categories", exerciseHandler.Categories)
			exercises.GET("/:id", exerciseHandler.GetExercise)
			exercises.PUT("/:id", exerciseHandler.UpdateExercise)
			exercises.DELETE("/:id", exerciseHandler.DeleteExercise)
		}

		clients := trainer.Group("/trainer/clients")
		{
			clients.POST("", trainerHandler.AddClientByEmail)
			clients.GET("", trainerHandler.GetManagedClients)
			clients.GET("/:clientId", trainerHandler.GetManagedClient)
		}

		programs := trainer.Group("/programs")
		{
			programs.POST("", programHandler.CreateProgram)
			programs.POST("/drafts", programHandler.CreateDraft)
			programs.GET("", programHandler.ListPrograms)
			programs.GET("/:id", programHandler.GetProgram)
			programs.PUT("/:id", programHandler.SaveProgram)
			programs.PATCH("/:id", programHandler.UpdateDetails)
			programs.DELETE("/:id", programHandler.DeleteProgram)
			programs.POST("/:id/validate", programHandler.ValidateProgram)
			programs.POST("/:id/nodes", programHandler.AddNode)
			programs.PUT("/:id/nodes/:path", programHandler.UpdateNode)
			programs.DELETE("/:id/nodes/:path", programHandler.RemoveNode)
			programs.POST("/:id/move", programHandler.MoveNode)
			programs.POST("/:id/exports", programHandler.CreateExport)
			programs.GET("/:id/exports", programHandler.ListExports)
		}

		templates := trainer.Group("/templates")
		{
			templates.POST("", templateHandler.CreateTemplate)
			templates.GET("", templateHandler.ListTemplates)
			templates.GET("/:id", templateHandler.GetTemplate)
			templates.PUT("/:id", templateHandler.SaveTemplate)
			templates.DELETE("/:id", templateHandler.DeleteTemplate)
			templates.POST("/:id/exports", templateHandler.CreateExport)
			templates.GET("/:id/exports", templateHandler.ListExports)

			templates.POST("/:id/weeks", templateHandler.AddWeek)
			templates.PUT("/:id/week-order", templateHandler.MoveWeek)
			templates.PUT("/:id/weeks/:weekId", templateHandler.UpdateWeek)
			templates.DELETE("/:id/weeks/:weekId", templateHandler.RemoveWeek)

			workouts := templates.Group("/:id/weeks/:weekId")
			workouts.POST("/workouts", templateHandler.AddWorkout)
			workouts.PUT("/workout-order", templateHandler.MoveWorkout)
			workouts.PUT("/workouts/:workoutId", templateHandler.UpdateWorkout)
			workouts.DELETE("/workouts/:workoutId", templateHandler.RemoveWorkout)

			items := workouts.Group("/workouts/:workoutId")
			items.POST("/exercises", templateHandler.AddExercise)
			items.PUT("/exercise-order", templateHandler.MoveExercise)
			items.PATCH("/exercises/:exerciseId", templateHandler.EditExercise)
			items.DELETE("/exercises/:exerciseId", templateHandler.RemoveExercise)
		}

		trainer.GET("/exports/:id/download", exportHandler.Download)
	}

	client := protected.Group("/client")
	client.Use(RoleMiddleware(domain.RoleClient))
	{
		client.GET("/programs", clientHandler.GetMyPrograms)
		client.GET("/programs/:id", clientHandler.GetMyProgram)
		client.GET("/programs/:id/schedule", clientHandler.GetMySchedule)
	}
}

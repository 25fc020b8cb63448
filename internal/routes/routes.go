package routes

import (
	"fmt"

	"github.com/dreluiss/pulseon-mobile-evolve/internal/config"
	"github.com/dreluiss/pulseon-mobile-evolve/internal/handlers"
	"github.com/dreluiss/pulseon-mobile-evolve/internal/middleware"
	"github.com/dreluiss/pulseon-mobile-evolve/internal/onboarding"
	"github.com/dreluiss/pulseon-mobile-evolve/internal/repository"
	"github.com/dreluiss/pulseon-mobile-evolve/internal/services"
	sessionws "github.com/dreluiss/pulseon-mobile-evolve/internal/websocket"
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) error {
	userRepo := repository.NewUserRepository(db)
	authSessionRepo := repository.NewAuthSessionRepository(db)
	passwordResetRepo := repository.NewPasswordResetRepository(db)
	userProfileRepo := repository.NewUserProfileRepository(db)
	workoutRepo := repository.NewWorkoutRepository(db)
	avatarRepo := repository.NewAvatarRepository(db)

	var storageService services.StorageService
	if cfg.StorageConfigured() {
		storageService = services.NewSupabaseStorageService(cfg.SupabaseURL, cfg.SupabaseBucket, cfg.SupabaseServiceKey)
	}
	var mailer services.Mailer = services.LogMailer{}
	if cfg.SMTPConfigured() {
		mailer = services.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
	}

	sessionService := services.NewSessionService(
		db,
		userRepo,
		authSessionRepo,
		passwordResetRepo,
		mailer,
		services.SessionConfig{
			JWTSecret:        cfg.JWTSecret,
			SessionTTL:       cfg.SessionTTL,
			PasswordResetURL: cfg.PasswordResetURL,
		},
	)
	profileService := services.NewProfileService(userProfileRepo)
	workoutService := services.NewWorkoutService(db, workoutRepo)
	avatarService := services.NewAvatarService(avatarRepo, storageService)
	dashboardService := services.NewDashboardService(profileService, workoutService, userRepo)

	sessionHub := sessionws.NewHub()
	go sessionHub.Run()
	sessionService.Subscribe(sessionHub.Publish)

	authHandler := handlers.NewAuthHandler(sessionService)
	onboardingHandler := handlers.NewOnboardingHandler(onboarding.NewStore(), profileService)
	profileHandler := handlers.NewProfileHandler(profileService, avatarService)
	workoutHandler := handlers.NewWorkoutHandler(workoutService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	sessionEventsHandler := handlers.NewSessionEventsHandler(sessionHub)

	if err := registerDocsRoutes(app, cfg); err != nil {
		return fmt.Errorf("register docs routes: %w", err)
	}

	authRequired := middleware.AuthRequired(sessionService)
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.SignUp)
	auth.Post("/signin", authHandler.SignIn)
	auth.Post("/password-reset", authHandler.RequestPasswordReset)
	auth.Post("/password-reset/confirm", authHandler.ResetPassword)
	auth.Post("/signout", authRequired, authHandler.SignOut)
	auth.Get("/me", authRequired, authHandler.Me)

	onboardingRoutes := api.Group("/onboarding", authRequired)
	onboardingRoutes.Post("", onboardingHandler.Start)
	onboardingRoutes.Get("", onboardingHandler.GetState)
	onboardingRoutes.Patch("", onboardingHandler.Update)
	onboardingRoutes.Delete("", onboardingHandler.Abandon)
	onboardingRoutes.Post("/next", onboardingHandler.Next)
	onboardingRoutes.Post("/previous", onboardingHandler.Previous)
	onboardingRoutes.Post("/confirm", onboardingHandler.Confirm)
	onboardingRoutes.Post("/complete", onboardingHandler.Complete)

	profile := api.Group("/profile", authRequired)
	profile.Get("", profileHandler.GetProfile)
	profile.Put("", profileHandler.UpdateProfile)
	profile.Get("/avatar", profileHandler.GetAvatar)
	profile.Post("/avatar", profileHandler.UploadAvatar)
	profile.Delete("/avatar", profileHandler.DeleteAvatar)

	workouts := api.Group("/workouts", authRequired)
	workouts.Get("", workoutHandler.ListWorkouts)
	workouts.Get("/:id", workoutHandler.GetWorkout)
	workouts.Post("/:id/complete", workoutHandler.CompleteWorkout)

	api.Get("/dashboard", authRequired, dashboardHandler.GetDashboard)

	api.Use("/ws/session", authRequired, sessionEventsHandler.Upgrade)
	api.Get("/ws/session", websocket.New(sessionEventsHandler.HandleWebSocket))

	return nil
}

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	_ "github.com/lib/pq"
	config "github.com/maheshrc27/tripnest-api/configs"
	"github.com/maheshrc27/tripnest-api/internal/api/handlers"
	"github.com/maheshrc27/tripnest-api/internal/api/middleware"
	job "github.com/maheshrc27/tripnest-api/internal/jobs"
	"github.com/maheshrc27/tripnest-api/internal/mailer"
	"github.com/maheshrc27/tripnest-api/internal/queue"
	"github.com/maheshrc27/tripnest-api/internal/repository"
	"github.com/maheshrc27/tripnest-api/internal/service"
	"github.com/maheshrc27/tripnest-api/migrations"
	"github.com/maheshrc27/tripnest-api/pkg/utils"
	"github.com/robfig/cron"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	if _, err := utils.NewLogger(cfg.Log); err != nil {
		slog.Error("Failed to set up logging", "error", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		fatal("Failed to connect to database", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		fatal("Database is unreachable", err)
	}

	if cfg.MigrateOnStart {
		if err := migrations.Up(db); err != nil {
			fatal("Failed to apply migrations", err)
		}
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Minute,
		WriteTimeout: time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			slog.Error(err.Error(), "method", c.Method(), "path", c.Path())
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	tx := repository.NewTransactor(db)
	userRepo := repository.NewUserRepository(db)
	otpRepo := repository.NewOTPRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	placeRepo := repository.NewPlaceRepository(db)
	placeImageRepo := repository.NewPlaceImageRepository(db)
	tripRepo := repository.NewTripRepository(db)
	tripDayRepo := repository.NewTripDayRepository(db)
	tripItemRepo := repository.NewTripItemRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	postRepo := repository.NewPostRepository(db)
	postPhotoRepo := repository.NewPostPhotoRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)

	r2Service, err := service.NewR2Service(context.Background(), *cfg)
	if err != nil {
		fatal("Failed to set up object storage", err)
	}
	tasks := queue.NewClient(client)

	authService := service.NewAuthService(*cfg, tx, userRepo, otpRepo, tasks)
	passwordService := service.NewPasswordService(*cfg, tx, userRepo, otpRepo, tasks)
	userService := service.NewUserService(userRepo, followRepo)
	settingsService := service.NewSettingsService(userRepo, r2Service)
	tripService := service.NewTripService(tx, tripRepo, tripDayRepo, tripItemRepo, r2Service)
	itineraryService := service.NewItineraryService(tx, tripDayRepo, tripItemRepo, placeRepo)
	placeService := service.NewPlaceService(placeRepo, locationRepo, placeImageRepo, r2Service, tasks)
	favoriteService := service.NewFavoriteService(favoriteRepo, placeRepo, tripRepo)
	postService := service.NewPostService(tx, postRepo, postPhotoRepo, reactionRepo, r2Service)
	commentService := service.NewCommentService(commentRepo, postRepo)

	router := &handlers.Router{
		Auth:      handlers.NewAuthHandler(*cfg, authService, passwordService, userService),
		Trip:      handlers.NewTripHandler(tripService, itineraryService),
		Place:     handlers.NewPlaceHandler(placeService),
		Favorite:  handlers.NewFavoriteHandler(favoriteService),
		Post:      handlers.NewPostHandler(postService, commentService),
		User:      handlers.NewUserHandler(userService),
		Settings:  handlers.NewSettingsHandler(settingsService),
		Session:   middleware.NewAuthMiddleware(*cfg),
		RateLimit: middleware.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst),
	}
	router.Register(app)

	// cron jobs
	c := cron.New()
	if err := job.NewOTPCleanupJob(otpRepo).Schedule(c); err != nil {
		fatal("Failed to schedule otp cleanup", err)
	}
	c.Start()

	//queue
	queueW := queue.NewQueue(mailer.NewSMTPMailer(cfg.SMTP), r2Service, cfg.OTPTTL)
	server := asynq.NewServer(redisConn, asynq.Config{
		Concurrency: 10,
	})
	mux := asynq.NewServeMux()
	queueW.Register(mux)

	slog.Info("Starting the Asynq server...")
	if err := server.Start(mux); err != nil {
		fatal("Could not start Asynq server", err)
	}

	go func() {
		if err := app.Listen(cfg.ListenAddr()); err != nil {
			fatal("Failed to start server", err)
		}
	}()
	slog.Info("Server is running", "url", cfg.APIURL)

	gracefulShutdown(app, server, c)
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, server *asynq.Server, c *cron.Cron) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	slog.Info("Shutting down server...")

	c.Stop()
	server.Shutdown()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("Failed to shut down server", "error", err)
	}

	slog.Info("Server shutdown complete.")
}

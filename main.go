package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"card-explorer-backend/handlers"
	"card-explorer-backend/middleware"
	"card-explorer-backend/models"
	"card-explorer-backend/services"
	"card-explorer-backend/utils"
	"card-explorer-backend/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 32 * 1024 * 1024, // profile photos and card media
	})

	app.Use(utils.MetricsMiddleware())

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	origins := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range origins {
		origins[i] = strings.TrimSpace(origin)
	}
	allowedOrigins := strings.Join(origins, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if os.Getenv("AUTO_MIGRATE") != "false" {
		if err := db.AutoMigrate(
			&models.Person{},
			&models.PlayerProfile{},
			&models.Educator{},
			&models.Card{},
			&models.RareCardStory{},
			&models.CollectionEntry{},
			&models.Trade{},
			&models.Friendship{},
			&models.Message{},
			&models.Chat{},
			&models.Mission{},
			&models.MissionQuantityGoal{},
			&models.MissionRarityGoal{},
			&models.QuantityParticipation{},
			&models.RarityParticipation{},
		); err != nil {
			log.Fatal("failed to migrate database:", err)
		}
	}

	if err := utils.InitStorage(); err != nil {
		log.Printf("⚠️  Storage disabled: %v", err)
	}

	authURL := os.Getenv("AUTH_PROVIDER_URL")
	authKey := os.Getenv("AUTH_PROVIDER_KEY")
	if authURL == "" || authKey == "" {
		log.Fatal("AUTH_PROVIDER_URL and AUTH_PROVIDER_KEY environment variables not set")
	}
	authClient := services.NewAuthClient(authURL, authKey)

	personService := services.NewPersonService(db)
	accountService := services.NewAccountService(db, authClient)
	profileService := services.NewProfileService(db)
	educatorService := services.NewEducatorService(db)
	cardService := services.NewCardService(db)
	progressionService := services.NewProgressionService(db)
	collectionService := services.NewCollectionService(db, progressionService)
	messageService := services.NewMessageService(db)
	tradeService := services.NewTradeService(db, progressionService, messageService)
	friendshipService := services.NewFriendshipService(db)
	missionService := services.NewMissionService(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	syncInterval := 5 * time.Minute
	if v := os.Getenv("PROFILE_SYNC_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			syncInterval = d
		}
	}
	workers.NewProfileSyncWorker(db, syncInterval).Start(ctx)

	missionService.StartMissionScheduler()

	authRequired := middleware.RequireUser(authClient, personService)

	handlers.SetupHealthRoutes(app, db)
	handlers.SetupAuthRoutes(app, accountService)
	handlers.SetupPersonRoutes(app, personService, profileService, educatorService, progressionService, authRequired)
	handlers.SetupCardRoutes(app, cardService, authRequired)
	handlers.SetupCollectionRoutes(app, collectionService, authRequired)
	handlers.SetupTradeRoutes(app, tradeService, authRequired)
	handlers.SetupFriendshipRoutes(app, friendshipService, authRequired)
	handlers.SetupMessageRoutes(app, messageService, authRequired)
	handlers.SetupMissionRoutes(app, missionService, authRequired)

	app.Get("/metrics", utils.MetricsHandler())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Println("✅ Mission scheduler running (every 1m)")
	log.Printf("✅ Profile sync worker running (every %s)", syncInterval)
	log.Printf("✅ CORS configured for origins: %s", allowedOrigins)

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

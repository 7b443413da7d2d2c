package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"carrylink/internal/adapter/api"
	"carrylink/internal/adapter/api/handler"
	apimiddleware "carrylink/internal/adapter/api/middleware"
	"carrylink/internal/adapter/api/router"
	"carrylink/internal/adapter/repository"
	"carrylink/internal/infrastructure/firebase"
	"carrylink/internal/infrastructure/ratelimit"
	"carrylink/internal/infrastructure/websocket"
	"carrylink/internal/usecase"
	"carrylink/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption

	if cfg.ServiceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		opt = option.WithCredentialsJSON([]byte(cfg.ServiceAccountJSON))
	} else {
		if _, err := os.Stat(cfg.ServiceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", cfg.ServiceAccountPath)
		}

		log.Printf("Using Firebase service account from file: %s", cfg.ServiceAccountPath)
		opt = option.WithCredentialsFile(cfg.ServiceAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	listingRepo := repository.NewFirestoreListingRepository(firestoreClient)
	matchRepo := repository.NewFirestoreMatchRepository(firestoreClient)
	messageRepo := repository.NewFirestoreMessageRepository(firestoreClient)
	reviewRepo := repository.NewFirestoreReviewRepository(firestoreClient)
	notificationRepo := repository.NewFirestoreNotificationRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient)

	wsManager := websocket.NewManager()
	wsManager.CanJoinMatch = func(userID, matchID string) bool {
		match, err := matchRepo.GetByID(ctx, matchID)
		return err == nil && match.HasParticipant(userID)
	}
	wsManager.Start(ctx)
	notifier := websocket.NewNotifier(wsManager)

	limiter := ratelimit.NewRateLimiter()
	limiter.StartCleanupRoutine()

	userUseCase := usecase.NewUserUseCase(userRepo, firebaseAuthClient)
	listingUseCase := usecase.NewListingUseCase(listingRepo, cfg.ActiveListingLimit, cfg.CandidateLimit)
	matchUseCase := usecase.NewMatchUseCase(matchRepo, listingRepo, notificationRepo, notifier, limiter)
	chatUseCase := usecase.NewChatUseCase(messageRepo, matchRepo, notificationRepo, notifier, limiter)
	reviewUseCase := usecase.NewReviewUseCase(reviewRepo, matchRepo, userRepo, notificationRepo)
	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo)

	handler.Setup(userUseCase, listingUseCase, matchUseCase, chatUseCase, reviewUseCase, notificationUseCase)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)

	wsHandler := handler.NewWebSocketHandler(wsManager, authMiddleware)

	router.Setup(e, authMiddleware)
	router.SetupWebSocketRouter(e, wsHandler, authMiddleware)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}

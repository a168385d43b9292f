package main

import (
	"context"
	"log"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	"staygo/internal/adapter/api"
	"staygo/internal/adapter/api/handler"
	apimiddleware "staygo/internal/adapter/api/middleware"
	"staygo/internal/adapter/api/router"
	"staygo/internal/adapter/repository"
	"staygo/internal/domain/service"
	"staygo/internal/infrastructure/cache"
	"staygo/internal/infrastructure/firebase"
	"staygo/internal/usecase"
	"staygo/pkg/config"
	"staygo/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opts []option.ClientOption
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(serviceAccountJSON)))
	} else if serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"); serviceAccountPath != "" {
		opts = append(opts, option.WithCredentialsFile(serviceAccountPath))
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	// Review-stats caching is optional; without Redis every request computes
	// the aggregate from the store.
	var statsCache *cache.Cache
	if cfg.RedisAddr != "" {
		redisClient, err := cache.Connect(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Warn("Redis unavailable, review stats caching disabled: %v", err)
		} else {
			defer redisClient.Close()
			statsCache = cache.New(redisClient, 10*time.Minute)
		}
	}

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	listingRepo := repository.NewFirestoreListingRepository(firestoreClient)
	reservationRepo := repository.NewFirestoreReservationRepository(firestoreClient)
	paymentRepo := repository.NewFirestorePaymentRepository(firestoreClient)
	reviewRepo := repository.NewFirestoreReviewRepository(firestoreClient)
	messageRepo := repository.NewFirestoreMessageRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)

	cardValidator := service.NewCardValidator(cfg.EnforceLuhnChecksum)

	authUseCase := usecase.NewAuthUseCase(userRepo, firebaseAuthClient)
	userUseCase := usecase.NewUserUseCase(userRepo)
	listingUseCase := usecase.NewListingUseCase(listingRepo, userRepo)
	reservationUseCase := usecase.NewReservationUseCase(reservationRepo, listingRepo, userRepo)
	paymentUseCase := usecase.NewPaymentUseCase(paymentRepo, reservationRepo, cardValidator)
	reviewUseCase := usecase.NewReviewUseCase(reviewRepo, reservationRepo, userRepo, statsCache, cfg.ReviewRequireCompletedStay)
	messagingUseCase := usecase.NewMessagingUseCase(messageRepo, reservationRepo, userRepo)

	reservationUseCase.SetStatusListener(func(reservationID, from, to string) {
		logger.Info("Reservation %s moved %s -> %s", reservationID, from, to)
	})

	handler.Setup(authUseCase, userUseCase, listingUseCase, reservationUseCase, paymentUseCase, reviewUseCase, messagingUseCase)
	handler.SetupHealthHandler()

	e := echo.New()

	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)
	adminMiddleware := apimiddleware.NewAdminMiddleware(userRepo)

	router.Setup(e, authMiddleware, adminMiddleware)

	logger.Info("Starting server on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

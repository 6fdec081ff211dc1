package main

import (
	"database/sql"
	"log"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"homehelpBack/internal/config"
	"homehelpBack/internal/handlers"
	"homehelpBack/internal/repositories"
	"homehelpBack/internal/services"
	"homehelpBack/utils"
)

type application struct {
	errorLog            *log.Logger
	infoLog             *log.Logger
	db                  *sql.DB
	jwtSecret           []byte
	userRepo            *repositories.UserRepository
	bookingHandler      *handlers.BookingHandler
	serviceHandler      *handlers.ServiceHandler
	reviewHandler       *handlers.ReviewHandler
	reportHandler       *handlers.ReportHandler
	notificationHandler *handlers.NotificationHandler
	notifications       *services.NotificationService
	wsHub               *NotificationHub
}

func initializeApp(db *sql.DB, rdb *redis.Client, cfg config.Config, push services.PushSender, jwtSecret []byte, errorLog, infoLog *log.Logger) *application {
	// Repositories
	userRepo := repositories.UserRepository{DB: db}
	serviceRepo := repositories.ServiceRepository{DB: db}
	bookingRepo := repositories.BookingRepository{DB: db}
	reviewRepo := repositories.ReviewRepository{DB: db}
	reportRepo := repositories.ReportRepository{DB: db}
	notificationRepo := repositories.NotificationRepository{DB: db}

	wsHub := NewNotificationHub(infoLog)

	storage := &utils.S3Storage{
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: envOr("S3_ACCESS_KEY", ""),
		SecretKey: envOr("S3_SECRET_KEY", ""),
		PublicURL: cfg.Storage.PublicURL,
	}

	// Services
	notificationService := services.NewNotificationService(&notificationRepo, push, wsHub, infoLog, errorLog)
	var availabilityCache services.AvailabilityCache
	if rdb != nil {
		availabilityCache = &services.RedisAvailabilityCache{Client: rdb}
	}
	availabilityService := &services.AvailabilityService{
		ServiceRepo: &serviceRepo,
		BookingRepo: &bookingRepo,
		Cache:       availabilityCache,
		ErrorLog:    errorLog,
	}
	bookingService := &services.BookingService{
		BookingRepo:   &bookingRepo,
		ServiceRepo:   &serviceRepo,
		ReportRepo:    &reportRepo,
		UserRepo:      &userRepo,
		Availability:  availabilityService,
		Notifications: notificationService,
	}
	serviceService := &services.ServiceService{ServiceRepo: &serviceRepo, Storage: storage}
	reviewService := &services.ReviewService{
		ReviewRepo:    &reviewRepo,
		ServiceRepo:   &serviceRepo,
		Notifications: notificationService,
	}
	reportService := &services.ReportService{
		ReportRepo:    &reportRepo,
		Notifications: notificationService,
	}

	// Handlers
	bookingHandler := &handlers.BookingHandler{Service: bookingService, Availability: availabilityService, ErrorLog: errorLog}
	serviceHandler := &handlers.ServiceHandler{Service: serviceService, ErrorLog: errorLog}
	reviewHandler := &handlers.ReviewHandler{Service: reviewService, ErrorLog: errorLog}
	reportHandler := &handlers.ReportHandler{Service: reportService, ErrorLog: errorLog}
	notificationHandler := &handlers.NotificationHandler{Service: notificationService, ErrorLog: errorLog}

	return &application{
		errorLog:            errorLog,
		infoLog:             infoLog,
		db:                  db,
		jwtSecret:           jwtSecret,
		userRepo:            &userRepo,
		bookingHandler:      bookingHandler,
		serviceHandler:      serviceHandler,
		reviewHandler:       reviewHandler,
		reportHandler:       reportHandler,
		notificationHandler: notificationHandler,
		notifications:       notificationService,
		wsHub:               wsHub,
	}
}

func openDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Printf("Failed to open DB: %v", err)
		return nil, err
	}
	if err = db.Ping(); err != nil {
		log.Printf("Failed to ping DB: %v", err)
		return nil, err
	}
	return db, nil
}

func addSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		next.ServeHTTP(w, r)
	})
}

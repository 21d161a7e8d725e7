package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"gorm.io/gorm"

	"github.com/example/debtdesk/internal/auth"
	"github.com/example/debtdesk/internal/config"
	"github.com/example/debtdesk/internal/db"
	httpserver "github.com/example/debtdesk/internal/http"
	"github.com/example/debtdesk/internal/models"
	"github.com/example/debtdesk/internal/mq"
	"github.com/example/debtdesk/internal/repository"
	"github.com/example/debtdesk/internal/service"
	"github.com/example/debtdesk/internal/storage"
	"github.com/example/debtdesk/internal/worker"
)

func main() {
	cfg := config.Load()

	database, err := db.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	autoMigrate(database)

	var publisher mq.Publisher
	publisher, err = mq.NewRabbitPublisher(cfg.MQURL, cfg.MQCaseExchange)
	if err != nil {
		log.Printf("warning: rabbitmq unavailable (%v), continuing without events", err)
		publisher = nil
	}

	blobs, err := storage.NewDiskStore(cfg.StorageDir)
	if err != nil {
		log.Fatalf("init storage: %v", err)
	}

	caseRepo := repository.NewCaseRepository(database)
	eventRepo := repository.NewEventRepository(database)
	docRepo := repository.NewDocumentRepository(database)
	msgRepo := repository.NewMessageRepository(database)
	userRepo := repository.NewUserRepository(database)
	callbackRepo := repository.NewCallbackRepository(database)
	reviewRepo := repository.NewReviewRepository(database)
	leadRepo := repository.NewLeadRepository(database)
	contactRepo := repository.NewContactRepository(database)
	statsRepo := repository.NewStatsRepository(database)

	caseSvc := service.NewCaseService(caseRepo, docRepo, blobs, publisher)
	docSvc := service.NewDocumentService(caseRepo, docRepo, eventRepo, blobs, publisher)
	msgSvc := service.NewMessageService(caseRepo, msgRepo, eventRepo, publisher)
	engagementSvc := service.NewEngagementService(callbackRepo, reviewRepo, leadRepo, contactRepo)
	adminSvc := service.NewAdminService(userRepo, statsRepo)

	authMW := auth.Middleware(userRepo, cfg.AdminEmails)
	apiServer := httpserver.NewServer(caseSvc, docSvc, msgSvc, engagementSvc, adminSvc, authMW)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go worker.NewSessionSweeper(database, cfg.SessionSweepInterval).Run(ctx)

	srv := &http.Server{
		Addr:    cfg.HTTPPort,
		Handler: apiServer.Engine,
	}

	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutdown initiated")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if publisher != nil {
		if closer, ok := publisher.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
	}
	log.Println("bye")
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Case{},
		&models.CaseDocument{},
		&models.CaseMessage{},
		&models.CaseEvent{},
		&models.CallbackRequest{},
		&models.Review{},
		&models.PaymentLead{},
		&models.ContactMessage{},
	)
	if err != nil {
		log.Fatalf("auto migrate: %v", err)
	}
}

func init() {
	if mode := os.Getenv("GIN_MODE"); mode == "" {
		gin.SetMode(gin.ReleaseMode)
	}
}

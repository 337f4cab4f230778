package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/wheelio/rental-backend/internal/auth"
	"github.com/wheelio/rental-backend/internal/config"
	"github.com/wheelio/rental-backend/internal/db"
	"github.com/wheelio/rental-backend/internal/events"
	"github.com/wheelio/rental-backend/internal/handlers"
	"github.com/wheelio/rental-backend/internal/invoice"
	"github.com/wheelio/rental-backend/internal/mail"
	"github.com/wheelio/rental-backend/internal/middleware"
	"github.com/wheelio/rental-backend/internal/rental"
	"github.com/wheelio/rental-backend/internal/routes"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using process environment")
	}
	cfg := config.Load()

	log.SetFormatter(&log.JSONFormatter{})
	log.SetLevel(log.InfoLevel)

	client, err := db.ConnectMongo(cfg.MongoURI)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())
	log.Info("connected to MongoDB")

	database := client.Database(cfg.MongoDB)
	accounts := &db.MongoAccountCollection{Collection: database.Collection("accounts")}
	statuses := &db.MongoStatusCollection{Collection: database.Collection("showroom_statuses")}
	cars := &db.MongoCarCollection{Collection: database.Collection("cars")}
	bookings := &db.MongoBookingCollection{Collection: database.Collection("bookings")}
	txn := &db.MongoTxnRunner{Client: client}

	authService := auth.NewService(cfg.JWTSecret)

	generator, err := invoice.NewPDFGenerator(cfg.InvoiceDir)
	if err != nil {
		log.WithError(err).Fatal("failed to set up invoice directory")
	}
	store := &invoice.Store{Dir: cfg.InvoiceDir}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.MQTTBroker != "" {
		mqttPublisher, err := events.NewMQTTPublisher(cfg.MQTTBroker, cfg.MQTTClientID)
		if err != nil {
			log.WithError(err).Warn("MQTT broker unreachable, availability events disabled")
		} else {
			defer mqttPublisher.Close()
			publisher = mqttPublisher
		}
	}

	mailer := &mail.SMTPMailer{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPass,
		From:     cfg.MailFrom,
	}

	lifecycle := rental.NewService(cars, bookings, txn, generator, publisher, cfg.BaseURL)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Metrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static("/invoices", cfg.InvoiceDir)

	routes.Setup(r.Group("/api"), authService, routes.Handlers{
		Accounts:  handlers.NewAccountHandler(authService, accounts, statuses, mailer, cfg.ResetURLBase),
		Cars:      handlers.NewCarHandler(cars, bookings, accounts),
		Lifecycle: handlers.NewLifecycleHandler(lifecycle),
		Invoices:  handlers.NewInvoiceHandler(bookings, store, cfg.BaseURL),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
}

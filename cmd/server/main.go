package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AnasGabbadi/fitness-tracker-api/internal/api"
	"github.com/AnasGabbadi/fitness-tracker-api/internal/config"
	"github.com/AnasGabbadi/fitness-tracker-api/internal/repository/mongo"
	"github.com/AnasGabbadi/fitness-tracker-api/internal/service"
	"github.com/AnasGabbadi/fitness-tracker-api/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.Info("starting fitness tracker API...")

	cfg, err := config.LoadConfig(".")
	if err != nil {
		logrus.WithError(err).Fatal("could not load config")
	}
	if cfg.Server.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to MongoDB")
	}
	defer func() {
		logrus.Info("disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			logrus.WithError(err).Error("failed to disconnect MongoDB")
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	logrus.Info("database connection established")

	// Index creation runs in the background so a slow Mongo does not delay
	// startup.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		if err := mongo.EnsureUserIndexes(ctx, appDB.Collection("users")); err != nil {
			logrus.WithError(err).Warn("failed to create user indexes")
		}
		if err := mongo.EnsureExerciseIndexes(ctx, appDB.Collection("exercises")); err != nil {
			logrus.WithError(err).Warn("failed to create exercise indexes")
		}
		if err := mongo.EnsureWorkoutIndexes(ctx, appDB.Collection("workouts")); err != nil {
			logrus.WithError(err).Warn("failed to create workout indexes")
		}
		if err := mongo.EnsureWorkoutLogIndexes(ctx, appDB.Collection("workout_logs")); err != nil {
			logrus.WithError(err).Warn("failed to create workout log indexes")
		}
		if err := mongo.EnsureProgressIndexes(ctx, appDB.Collection("progress")); err != nil {
			logrus.WithError(err).Warn("failed to create progress indexes")
		}
		logrus.Info("index creation completed")
	}()

	photoStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		logrus.WithError(err).Fatal("failed to initialize photo storage")
	}

	userRepo := mongo.NewMongoUserRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB)
	logRepo := mongo.NewMongoWorkoutLogRepository(appDB)
	progressRepo := mongo.NewMongoProgressRepository(appDB)

	authService := service.NewAuthService(userRepo, exerciseRepo, workoutRepo, logRepo, progressRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	exerciseService := service.NewExerciseService(exerciseRepo)
	workoutService := service.NewWorkoutService(workoutRepo, exerciseRepo)
	logService := service.NewWorkoutLogService(logRepo, workoutRepo, exerciseRepo)
	progressService := service.NewProgressService(progressRepo, userRepo, photoStorage)

	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger())

	api.SetupRoutes(router, cfg.JWT.Secret, authService, exerciseService, workoutService, logService, progressService)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	logrus.WithField("address", cfg.Server.Address).Info("server starting")

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("ListenAndServe error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logrus.WithError(err).Fatal("server forced to shutdown")
	}

	logrus.Info("server exiting")
}

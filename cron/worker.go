package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"yadori/config"
	repository "yadori/database/repository"
	"yadori/models"
	"yadori/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitAmenityWorker runs the async worker in background.
func InitAmenityWorker(repo repository.AmenityRepository, logger *zap.Logger) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeAmenityNotify, handleAmenityTask(repo, logger))

	go func() {
		log.Println("[AmenityWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[AmenityWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[AmenityWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// handleAmenityTask delivers the staff notification for a request and marks
// it notified. Delivery here is the operations log feed that the staff
// dashboard tails.
func handleAmenityTask(repo repository.AmenityRepository, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.AmenityTaskPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid amenity task payload", zap.Error(err))
			return err
		}

		logger.Info("Amenity request for housekeeping",
			zap.String("requestID", p.RequestID),
			zap.Int("bookingID", p.BookingID),
			zap.String("items", p.Summary))

		if err := repo.UpdateStatus(ctx, p.RequestID, models.AmenityRequestNotified); err != nil {
			logger.Error("failed to mark amenity request notified",
				zap.String("requestID", p.RequestID), zap.Error(err))
			return err
		}
		return nil
	}
}

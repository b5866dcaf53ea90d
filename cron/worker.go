package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"mentora/config"
	"mentora/services/booking"

	"github.com/hibiken/asynq"
)

const TypeExpireStale = "booking:expire_stale"

// InitSweepWorker runs the async worker and its scheduler in background.
// The scheduler enqueues an expire_stale task on a fixed interval; the
// worker expires abandoned pending bookings and frees their slots.
func InitSweepWorker(bookingSvc booking.BookingService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeExpireStale, handleExpireStaleTask(bookingSvc))

	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{})
	cronspec := fmt.Sprintf("@every %dm", config.AppConfig.SweepIntervalMin)
	if _, err := scheduler.Register(cronspec, asynq.NewTask(TypeExpireStale, nil)); err != nil {
		log.Fatalf("[SweepWorker] Failed to register sweep schedule: %v", err)
	}

	go func() {
		if err := scheduler.Run(); err != nil {
			log.Printf("[SweepWorker] Scheduler stopped: %v", err)
		}
	}()

	go func() {
		log.Println("[SweepWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[SweepWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[SweepWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleExpireStaleTask(bookingSvc booking.BookingService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		ttl := time.Duration(config.AppConfig.PendingBookingTTLMin) * time.Minute
		count, err := bookingSvc.ExpireStale(ctx, ttl)
		if err != nil {
			log.Printf("[SweepHandler] Sweep failed: %v", err)
			return err
		}
		if count > 0 {
			log.Printf("[SweepHandler] Expired %d stale pending bookings", count)
		}
		return nil
	}
}

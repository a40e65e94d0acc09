package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"tutoria/config"
	"tutoria/models"
	"tutoria/services/notification"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitBookingEventWorker runs the async worker in background, draining the
// booking event queue and handing each event to the dispatcher.
func InitBookingEventWorker(dispatcher notification.Dispatcher) {
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
	mux.HandleFunc(notification.TypeBookingEvent, handleBookingEventTask(dispatcher))

	go monitorRedisConnection()

	go func() {
		log.Println("[BookingEventWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[BookingEventWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[BookingEventWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleBookingEventTask(dispatcher notification.Dispatcher) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var event models.BookingEvent
		if err := json.Unmarshal(task.Payload(), &event); err != nil {
			log.Printf("[BookingEventWorker] invalid payload: %v", err)
			return err
		}

		if err := dispatcher.Dispatch(ctx, event); err != nil {
			log.Printf("[BookingEventWorker] failed to dispatch %s for booking %s: %v",
				event.Type, event.BookingID, err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[BookingEventWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}

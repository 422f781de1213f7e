package schedule

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/gofiber/fiber/v2/log"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// Start schedules a store health check every interval and returns the running scheduler.
func Start(db Pinger, interval time.Duration) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Error("Error while creating scheduler:", err)
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(checkStore, db),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Error("Error while creating job:", err)
		return nil, err
	}

	s.Start()
	return s, nil
}

func checkStore(db Pinger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.Ping(ctx); err != nil {
		log.Error("MongoDB ping failed:", err)
		return err
	}
	return nil
}

package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"amazecare-server/internal/store"
)

// StartDailyScheduler runs the holiday completion sweep every day shortly
// after midnight. Holidays whose end date has passed move from Scheduled
// to Completed so they stop blocking bookings sooner than a lazy check
// would.
func StartDailyScheduler(st store.Store, log zerolog.Logger) *cron.Cron {
	c := cron.New()

	// Runs every day at 00:05 AM
	if _, err := c.AddFunc("5 0 * * *", func() {
		completeExpiredHolidays(st, log)
	}); err != nil {
		log.Error().Err(err).Msg("failed to register holiday completion job")
	}

	c.Start()
	return c
}

func completeExpiredHolidays(st store.Store, log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	updated, err := st.CompleteExpiredHolidays(ctx, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("holiday completion sweep failed")
		return
	}
	if updated > 0 {
		log.Info().Int64("completed", updated).Msg("expired holidays marked completed")
	}
}

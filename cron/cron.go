package cron

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/urbanassist/urban-assist/db"
	"github.com/urbanassist/urban-assist/models"
)

// stalePendingAge is how long past its scheduled date a pending booking may
// sit before the sweep cancels it.
const stalePendingAge = 24 * time.Hour

// StartCronJobs starts the background scheduler.
func StartCronJobs() {
	c := cron.New()
	if _, err := c.AddFunc("@hourly", cancelStalePendingBookings); err != nil {
		log.Fatal().Err(err).Msg("failed to add cron job")
	}
	c.Start()
	log.Info().Msg("cron scheduler started")
}

// cancelStalePendingBookings cancels pending bookings whose scheduled date
// passed without the runner ever responding.
func cancelStalePendingBookings() {
	cutoff := time.Now().Add(-stalePendingAge)

	result := db.DB.Model(&models.Booking{}).
		Where("status = ? AND scheduled_date < ?", models.StatusPending, cutoff).
		Update("status", models.StatusCancelled)
	if result.Error != nil {
		log.Error().Err(result.Error).Msg("stale booking sweep failed")
		return
	}
	if result.RowsAffected > 0 {
		log.Info().Int64("cancelled", result.RowsAffected).Msg("cancelled stale pending bookings")
	}
}

package db

import (
	"github.com/rs/zerolog/log"

	"github.com/urbanassist/urban-assist/models"
)

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Runner{},
		&models.Service{},
		&models.Booking{},
		&models.Review{},
		&models.ChatMessage{},
		&models.Notification{},
		&models.Payment{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	log.Info().Msg("migrations applied")
}

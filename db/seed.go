package db

import (
	"github.com/rs/zerolog/log"

	"github.com/urbanassist/urban-assist/models"
)

var defaultServices = []models.Service{
	{Name: "Shopping & Errands", Description: "Grocery shopping, pharmacy runs, and general errands", Category: "errands", Icon: "shopping-cart"},
	{Name: "Airport Pickup/Drop-off", Description: "Transportation to and from airports", Category: "transportation", Icon: "plane"},
	{Name: "Moving & Relocation Help", Description: "Assistance with moving, packing, and relocation", Category: "moving", Icon: "truck"},
	{Name: "City Tours & Sightseeing", Description: "Guided tours and local sightseeing experiences", Category: "tourism", Icon: "map"},
	{Name: "Pet Care & Walking", Description: "Pet sitting, dog walking, and pet care services", Category: "pets", Icon: "heart"},
	{Name: "Home Maintenance", Description: "Basic home repairs, cleaning, and maintenance", Category: "home", Icon: "home"},
	{Name: "Event Setup & Support", Description: "Help with event planning, setup, and coordination", Category: "events", Icon: "calendar"},
	{Name: "Personal Assistant", Description: "Administrative tasks, scheduling, and personal assistance", Category: "personal", Icon: "user"},
}

// SeedServices creates any catalog entry that does not exist yet. Safe to run
// on every startup.
func SeedServices() {
	for _, svc := range defaultServices {
		var existing models.Service
		if DB.Where("name = ?", svc.Name).First(&existing).RowsAffected == 0 {
			if err := DB.Create(&svc).Error; err != nil {
				log.Error().Err(err).Str("service", svc.Name).Msg("failed to seed service")
			}
		}
	}
	log.Info().Msg("service catalog seeded")
}

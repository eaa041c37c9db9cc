package tourism

import (
	"context"

	repository "yadori/database/repository"
	"yadori/models"

	"go.uber.org/zap"
)

// defaultSpots is the starter catalog for the neighbourhood around the
// property. Operators can extend the collection directly.
var defaultSpots = []models.TourismSpot{
	{
		ID:          1,
		Name:        "Senso-ji Temple",
		Category:    "Culture",
		Description: "Tokyo's oldest temple, famous for the Kaminarimon gate and the Nakamise shopping street leading up to it.",
		Distance:    "1.2km",
		Address:     "2-3-1 Asakusa, Taito City, Tokyo",
		Hours:       "6:00 - 17:00",
		Website:     "https://www.senso-ji.jp",
		Images: []models.SpotImage{
			{URL: "https://images.example.com/sensoji-main.jpg", Caption: "Kaminarimon gate", IsMain: true},
			{URL: "https://images.example.com/sensoji-night.jpg", Caption: "Temple grounds at night"},
		},
	},
	{
		ID:          2,
		Name:        "Tokyo Skytree",
		Category:    "Sightseeing",
		Description: "The tallest structure in Japan with observation decks at 350m and 450m, plus an aquarium and shopping complex at the base.",
		Distance:    "2.5km",
		Address:     "1-1-2 Oshiage, Sumida City, Tokyo",
		Hours:       "10:00 - 21:00",
		Website:     "https://www.tokyo-skytree.jp",
		Images: []models.SpotImage{
			{URL: "https://images.example.com/skytree-main.jpg", Caption: "Skytree from the river", IsMain: true},
		},
	},
	{
		ID:          3,
		Name:        "Ueno Park",
		Category:    "Nature",
		Description: "A spacious public park known for cherry blossoms in spring, with museums, a zoo, and Shinobazu Pond.",
		Distance:    "0.8km",
		Address:     "Uenokoen, Taito City, Tokyo",
		Hours:       "5:00 - 23:00",
		Images: []models.SpotImage{
			{URL: "https://images.example.com/ueno-main.jpg", Caption: "Cherry blossoms along the main path", IsMain: true},
		},
	},
	{
		ID:          4,
		Name:        "Ameyoko Market",
		Category:    "Shopping",
		Description: "A bustling open-air market street under the railway tracks, selling fresh food, sweets, clothing, and souvenirs.",
		Distance:    "0.9km",
		Address:     "4 Chome Ueno, Taito City, Tokyo",
		Hours:       "10:00 - 19:00",
		Images: []models.SpotImage{
			{URL: "https://images.example.com/ameyoko-main.jpg", Caption: "Market street at midday", IsMain: true},
		},
	},
}

// Seed upserts the starter spots. It is safe to call on every boot.
func Seed(ctx context.Context, repo repository.TourismRepository, logger *zap.Logger) {
	for _, spot := range defaultSpots {
		if err := repo.Upsert(ctx, spot); err != nil {
			logger.Warn("failed to seed tourism spot",
				zap.Int("spotID", spot.ID), zap.Error(err))
		}
	}
}

package gifts

import (
	"net/url"

	"event-rsvp/internal/models"
)

// PlaceholderImage returns the image used for items added without one. The
// same id always yields the same image.
func PlaceholderImage(id string) string {
	return "https://picsum.photos/seed/" + url.PathEscape(id) + "/400/300"
}

// SeedCatalog is the catalog used until an admin changes it.
func SeedCatalog() []models.GiftItem {
	return []models.GiftItem{
		{
			ID:          "1",
			Name:        "Jogo de Panelas",
			Description: "Jogo de panelas antiaderentes com 5 peças",
			ImageURL:    PlaceholderImage("1"),
		},
		{
			ID:          "2",
			Name:        "Jogo de Toalhas",
			Description: "Kit de toalhas de banho e rosto em algodão",
			ImageURL:    PlaceholderImage("2"),
		},
		{
			ID:          "3",
			Name:        "Cafeteira Elétrica",
			Description: "Cafeteira elétrica programável para 30 xícaras",
			ImageURL:    PlaceholderImage("3"),
		},
		{
			ID:          "4",
			Name:        "Aparelho de Jantar",
			Description: "Aparelho de jantar em porcelana com 20 peças",
			ImageURL:    PlaceholderImage("4"),
		},
	}
}

package dto

import "github.com/playhub/community-api/internal/models"

// GameDTO represents a catalogue entry
type GameDTO struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Platform    string `json:"platform,omitempty"`
	Genre       string `json:"genre,omitempty"`
	ReleaseYear int    `json:"releaseYear,omitempty"`
	CoverURL    string `json:"coverUrl,omitempty"`
}

func ToGameDTO(game models.Game) GameDTO {
	return GameDTO{
		ID:          game.ID,
		Title:       game.Title,
		Platform:    game.Platform,
		Genre:       game.Genre,
		ReleaseYear: game.ReleaseYear,
		CoverURL:    game.CoverURL,
	}
}

func ToGameDTOs(games []models.Game) []GameDTO {
	out := make([]GameDTO, len(games))
	for i, game := range games {
		out[i] = ToGameDTO(game)
	}
	return out
}

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/playhub/community-api/internal/config"
	"github.com/playhub/community-api/internal/database"
	"github.com/playhub/community-api/internal/logging"
	"github.com/playhub/community-api/internal/models"
	"github.com/playhub/community-api/internal/repository"
	"github.com/sirupsen/logrus"
)

// SeedGame is one catalogue entry in a seed file
type SeedGame struct {
	Title       string `json:"title"`
	Platform    string `json:"platform"`
	Genre       string `json:"genre"`
	ReleaseYear int    `json:"releaseYear"`
	CoverURL    string `json:"coverUrl"`
}

var defaultCatalogue = []SeedGame{
	{Title: "Celeste", Platform: "Multi-platform", Genre: "Platformer", ReleaseYear: 2018},
	{Title: "Disco Elysium", Platform: "PC", Genre: "RPG", ReleaseYear: 2019},
	{Title: "Elden Ring", Platform: "Multi-platform", Genre: "Action RPG", ReleaseYear: 2022},
	{Title: "Hades", Platform: "Multi-platform", Genre: "Roguelike", ReleaseYear: 2020},
	{Title: "Hollow Knight", Platform: "Multi-platform", Genre: "Metroidvania", ReleaseYear: 2017},
	{Title: "Outer Wilds", Platform: "Multi-platform", Genre: "Adventure", ReleaseYear: 2019},
	{Title: "Stardew Valley", Platform: "Multi-platform", Genre: "Simulation", ReleaseYear: 2016},
	{Title: "The Legend of Zelda: Breath of the Wild", Platform: "Nintendo Switch", Genre: "Action-adventure", ReleaseYear: 2017},
}

func main() {
	file := flag.String("file", "", "JSON file with an array of games (defaults to the built-in catalogue)")
	flag.Parse()

	cfg := config.Load()
	log := logging.NewLogger(cfg.LogLevel)
	log.Info("Starting seed script...")

	games := defaultCatalogue
	if *file != "" {
		loaded, err := loadCatalogue(*file)
		if err != nil {
			log.Fatalf("Failed to read catalogue: %v", err)
		}
		games = loaded
	}

	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db, log); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	created, err := seedGames(context.Background(), repository.NewGameRepository(db), games, log)
	if err != nil {
		log.Fatalf("Failed to seed games: %v", err)
	}
	log.WithFields(logrus.Fields{
		"total":   len(games),
		"created": created,
	}).Info("Seed completed")
}

func loadCatalogue(path string) ([]SeedGame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var games []SeedGame
	if err := json.Unmarshal(data, &games); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return games, nil
}

// seedGames inserts every game whose title is not already present and
// returns how many were created. Running it twice is a no-op.
func seedGames(ctx context.Context, repo repository.GameRepository, games []SeedGame, log logrus.FieldLogger) (int, error) {
	existing, err := repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list games: %w", err)
	}
	known := make(map[string]bool, len(existing))
	for _, game := range existing {
		known[game.Title] = true
	}

	created := 0
	for _, item := range games {
		if item.Title == "" {
			log.Warn("Skipping game without title")
			continue
		}
		if known[item.Title] {
			continue
		}

		game := &models.Game{
			Title:       item.Title,
			Platform:    item.Platform,
			Genre:       item.Genre,
			ReleaseYear: item.ReleaseYear,
			CoverURL:    item.CoverURL,
		}
		if err := repo.FindOrCreate(ctx, game); err != nil {
			return created, fmt.Errorf("seed %q: %w", item.Title, err)
		}
		known[item.Title] = true
		created++
	}
	return created, nil
}

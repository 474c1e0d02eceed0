package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/playhub/community-api/internal/cache"
	"github.com/playhub/community-api/internal/models"
	"gorm.io/gorm"
)

// GormGameRepository is a GORM implementation of GameRepository
type GormGameRepository struct {
	db *gorm.DB
}

// NewGameRepository creates a new GameRepository
func NewGameRepository(db *gorm.DB) GameRepository {
	return &GormGameRepository{db: db}
}

// FindByID finds a game by ID
func (r *GormGameRepository) FindByID(ctx context.Context, id uint64) (*models.Game, error) {
	var game models.Game
	if err := r.db.WithContext(ctx).First(&game, id).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

// List lists all games ordered by title
func (r *GormGameRepository) List(ctx context.Context) ([]models.Game, error) {
	var games []models.Game
	if err := r.db.WithContext(ctx).Order("title ASC").Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

// ListPage lists one page of games ordered by title
func (r *GormGameRepository) ListPage(ctx context.Context, offset, limit int) ([]models.Game, error) {
	var games []models.Game
	if err := r.db.WithContext(ctx).Order("title ASC").Offset(offset).Limit(limit).Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

// FindOrCreate matches on title
func (r *GormGameRepository) FindOrCreate(ctx context.Context, game *models.Game) error {
	return r.db.WithContext(ctx).
		Where(models.Game{Title: game.Title}).
		FirstOrCreate(game).Error
}

// CachedGameRepository serves game lookups from Redis before falling back
// to the wrapped repository. Games are never mutated through the API, so
// entries only expire by TTL.
type CachedGameRepository struct {
	GameRepository
	cache *cache.Client
	ttl   time.Duration
}

// NewCachedGameRepository wraps next with a read-through cache
func NewCachedGameRepository(next GameRepository, c *cache.Client, ttl time.Duration) GameRepository {
	return &CachedGameRepository{
		GameRepository: next,
		cache:          c,
		ttl:            ttl,
	}
}

func gameCacheKey(id uint64) string {
	return fmt.Sprintf("game:%d", id)
}

// FindByID checks the cache first and populates it on a miss
func (r *CachedGameRepository) FindByID(ctx context.Context, id uint64) (*models.Game, error) {
	if data := r.cache.Get(ctx, gameCacheKey(id)); data != nil {
		var cached models.Game
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	game, err := r.GameRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(game); err == nil {
		r.cache.Set(ctx, gameCacheKey(id), payload, r.ttl)
	}
	return game, nil
}

package video

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/xpanvictor/vidquiz/internal/domains/video"
	"gorm.io/gorm"
)

type GormVideoRepo struct {
	db *gorm.DB
}

// Create implements video.VideoRepository
func (g *GormVideoRepo) Create(ctx context.Context, v *video.Video) error {
	entity := NewVideoEntityFromDomain(v)
	if err := g.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("failed to create video: %w", err)
	}

	// Update domain object with any changes from database (like auto-generated fields)
	*v = *entity.ToDomain()
	return nil
}

// GetByID implements video.VideoRepository
func (g *GormVideoRepo) GetByID(ctx context.Context, id string) (*video.Video, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, video.ErrVideoNotFound
	}

	var entity VideoEntity
	if err := g.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, video.ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to get video by ID: %w", err)
	}
	return entity.ToDomain(), nil
}

// List implements video.VideoRepository
func (g *GormVideoRepo) List(ctx context.Context, offset, limit int) ([]video.Video, int64, error) {
	var total int64
	if err := g.db.WithContext(ctx).Model(&VideoEntity{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count videos: %w", err)
	}

	var entities []VideoEntity
	if err := g.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&entities).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list videos: %w", err)
	}

	videos := make([]video.Video, len(entities))
	for i := range entities {
		videos[i] = *entities[i].ToDomain()
	}
	return videos, total, nil
}

// Save implements video.VideoRepository. Every column is written.
func (g *GormVideoRepo) Save(ctx context.Context, v *video.Video) error {
	entity := NewVideoEntityFromDomain(v)
	result := g.db.WithContext(ctx).Model(&VideoEntity{ID: v.ID}).Select("*").Omit("created_at").Updates(entity)
	if result.Error != nil {
		return fmt.Errorf("failed to save video: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return video.ErrVideoNotFound
	}

	v.UpdatedAt = entity.UpdatedAt
	return nil
}

// Delete implements video.VideoRepository
func (g *GormVideoRepo) Delete(ctx context.Context, id string) error {
	result := g.db.WithContext(ctx).Where("id = ?", id).Delete(&VideoEntity{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete video: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return video.ErrVideoNotFound
	}
	return nil
}

func NewGormVideoRepo(db *gorm.DB) video.VideoRepository {
	return &GormVideoRepo{db: db}
}

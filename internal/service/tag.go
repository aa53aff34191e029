package service

import (
	"context"

	"campuspool-backend/internal/domain"
	"campuspool-backend/internal/repository"
)

// defaultTagColor is the campus cardinal red the UI falls back to.
const defaultTagColor = "#8C1515"

type tagService struct {
	tagRepo repository.TagRepository
}

func NewTagService(tagRepo repository.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

func (s *tagService) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return s.tagRepo.List(ctx)
}

func (s *tagService) CreateTag(ctx context.Context, name, color string) (*domain.Tag, error) {
	if name == "" {
		return nil, domain.NewValidationError("name", "is required")
	}
	if color == "" {
		color = defaultTagColor
	}
	tag := &domain.Tag{Name: name, Color: color}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// Package matching maps raw account labels from imported statements to the
// labels the user prefers, so repeated imports of the same account land on
// one consistent label.
package matching

import (
	"context"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching

type Repository interface {
	FindMatch(ctx context.Context, rawLabel string) (string, error)
	CreateMapping(ctx context.Context, rawPattern, preferredLabel string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the preferred label for a raw statement label, or the
// empty string when nothing matches.
func (s *Service) Suggest(ctx context.Context, rawLabel string) (string, error) {
	return s.repo.FindMatch(ctx, rawLabel)
}

// Learn remembers a mapping from a raw pattern to a preferred label.
func (s *Service) Learn(ctx context.Context, rawPattern, preferredLabel string) error {
	return s.repo.CreateMapping(ctx, rawPattern, preferredLabel)
}

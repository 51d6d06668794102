package service

import (
	"context"
	"strings"

	apperrors "github.com/julianstephens/habitstack/internal/errors"
	"github.com/julianstephens/habitstack/internal/models"
	"github.com/julianstephens/habitstack/internal/storage"
)

// RegisterUser creates a user with a unique username.
func (s *Service) RegisterUser(ctx context.Context, username string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return models.User{}, apperrors.Validationf("username cannot be empty")
	}

	user := models.User{ID: s.newID(), Username: username, CreatedAt: s.now()}
	if err := s.store.AddUser(ctx, user); err != nil {
		if apperrors.IsConflict(err) {
			return models.User{}, apperrors.Validationf("username %q is already taken", username)
		}
		return models.User{}, err
	}
	return user, nil
}

// ResolveUser finds a user by id or, failing that, by username.
func (s *Service) ResolveUser(ctx context.Context, ref string) (models.User, error) {
	u, err := s.store.GetUser(ctx, ref)
	if err == nil {
		return u, nil
	}
	if !apperrors.IsNotFound(err) {
		return models.User{}, err
	}
	return s.store.GetUserByName(ctx, ref)
}

// ImportCatalog upserts predefined habits by id and returns how many were written.
func (s *Service) ImportCatalog(ctx context.Context, habits []models.PredefinedHabit) (int, error) {
	for i, h := range habits {
		if strings.TrimSpace(h.ID) == "" || strings.TrimSpace(h.Name) == "" {
			return 0, apperrors.Validationf("catalog entry %d: id and name are required", i+1)
		}
	}

	err := s.store.WithTx(ctx, func(repo storage.Repository) error {
		for _, h := range habits {
			if err := repo.UpsertPredefinedHabit(ctx, h); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(habits), nil
}

func (s *Service) ListPredefinedHabits(ctx context.Context) ([]models.PredefinedHabit, error) {
	return s.store.GetAllPredefinedHabits(ctx)
}

func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.store.GetAllUsers(ctx)
}

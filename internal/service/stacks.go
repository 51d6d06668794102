package service

import (
	"context"
	"fmt"

	"github.com/julianstephens/habitstack/internal/constants"
	apperrors "github.com/julianstephens/habitstack/internal/errors"
	"github.com/julianstephens/habitstack/internal/logger"
	"github.com/julianstephens/habitstack/internal/models"
	"github.com/julianstephens/habitstack/internal/storage"
	"github.com/julianstephens/habitstack/internal/validation"
	"github.com/julianstephens/habitstack/internal/window"
)

// resolved is a validated stack input with display names and uniqueness keys
type resolved struct {
	habit1, habit2         models.HabitDescriptor
	habit1Name, habit2Name string
	habit1Key, habit2Key   string
	goal                   constants.Goal
}

func resolveName(ctx context.Context, repo storage.Repository, d models.HabitDescriptor) (models.HabitDescriptor, string, error) {
	if d.IsPredefined() {
		h, err := repo.GetPredefinedHabit(ctx, d.PredefinedID)
		if err != nil {
			return models.HabitDescriptor{}, "", err
		}
		return models.HabitDescriptor{PredefinedID: h.ID}, h.Name, nil
	}
	name := validation.CleanName(d.Custom)
	return models.HabitDescriptor{Custom: name}, name, nil
}

// resolveInput validates in and checks that the user has no other stack
// (besides selfID) with the same habits.
func resolveInput(ctx context.Context, repo storage.Repository, userID, selfID string, in models.HabitStackInput) (resolved, error) {
	if err := validation.ValidateStackInput(in); err != nil {
		return resolved{}, err
	}

	var r resolved
	var err error
	if r.habit1, r.habit1Name, err = resolveName(ctx, repo, in.Habit1); err != nil {
		return resolved{}, err
	}
	if r.habit2, r.habit2Name, err = resolveName(ctx, repo, in.Habit2); err != nil {
		return resolved{}, err
	}
	if err := validation.ValidateDistinct(r.habit1Name, r.habit2Name); err != nil {
		return resolved{}, err
	}

	r.goal = in.Goal
	if r.goal == "" {
		r.goal = constants.GoalDaily
	}
	r.habit1Key = validation.HabitKey(r.habit1)
	r.habit2Key = validation.HabitKey(r.habit2)

	existing, err := repo.FindHabitStackID(ctx, userID, r.habit1Key, r.habit2Key)
	if err != nil {
		return resolved{}, err
	}
	if existing != "" && existing != selfID {
		return resolved{}, duplicateStack()
	}
	return r, nil
}

func duplicateStack() error {
	return apperrors.Validationf("you already have a habit stack with these habits")
}

// CreateHabitStack stores a new stack and materializes its first window: the
// stack starts with active_until set to yesterday and is then extended by
// constants.InitialWindowDays, giving one open log for each day from today on.
func (s *Service) CreateHabitStack(ctx context.Context, userID string, in models.HabitStackInput) (models.HabitStack, error) {
	today := s.today()
	plan, err := window.Initial(today)
	if err != nil {
		return models.HabitStack{}, err
	}

	var stack models.HabitStack
	err = s.store.WithTx(ctx, func(repo storage.Repository) error {
		if _, err := repo.GetUser(ctx, userID); err != nil {
			return err
		}

		r, err := resolveInput(ctx, repo, userID, "", in)
		if err != nil {
			return err
		}

		stack = models.HabitStack{
			ID:          s.newID(),
			UserID:      userID,
			Habit1:      r.habit1,
			Habit2:      r.habit2,
			Habit1Name:  r.habit1Name,
			Habit2Name:  r.habit2Name,
			Goal:        r.goal,
			CreatedAt:   s.now(),
			ActiveUntil: plan.Base,
		}
		if err := repo.AddHabitStack(ctx, stack, r.habit1Key, r.habit2Key); err != nil {
			if apperrors.IsConflict(err) {
				return duplicateStack()
			}
			return err
		}

		created, err := s.materialize(ctx, repo, stack, plan)
		if err != nil {
			return err
		}
		stack.ActiveUntil = plan.End

		logger.Debug("Created habit stack", "stack", stack.ID, "user", userID, "logs", created)
		return nil
	})
	if err != nil {
		return models.HabitStack{}, err
	}
	return stack, nil
}

func (s *Service) GetHabitStack(ctx context.Context, userID, stackID string) (models.HabitStack, error) {
	return s.store.GetHabitStack(ctx, userID, stackID)
}

func (s *Service) ListHabitStacks(ctx context.Context, userID string) ([]models.HabitStack, error) {
	return s.store.GetHabitStacksForUser(ctx, userID)
}

// UpdateHabitStack replaces the habits and goal of a stack. Logs, tracker and
// milestones are kept.
func (s *Service) UpdateHabitStack(ctx context.Context, userID, stackID string, in models.HabitStackInput) (models.HabitStack, error) {
	var stack models.HabitStack
	err := s.store.WithTx(ctx, func(repo storage.Repository) error {
		current, err := repo.LockHabitStack(ctx, userID, stackID)
		if err != nil {
			return err
		}

		r, err := resolveInput(ctx, repo, userID, stackID, in)
		if err != nil {
			return err
		}

		stack = current
		stack.Habit1, stack.Habit2 = r.habit1, r.habit2
		stack.Habit1Name, stack.Habit2Name = r.habit1Name, r.habit2Name
		stack.Goal = r.goal

		if err := repo.UpdateHabitStack(ctx, stack, r.habit1Key, r.habit2Key); err != nil {
			if apperrors.IsConflict(err) {
				return duplicateStack()
			}
			return err
		}
		return nil
	})
	if err != nil {
		return models.HabitStack{}, err
	}
	return stack, nil
}

// DeleteHabitStack removes a stack together with its logs, tracker and milestones.
func (s *Service) DeleteHabitStack(ctx context.Context, userID, stackID string) error {
	if err := s.store.DeleteHabitStack(ctx, userID, stackID); err != nil {
		return fmt.Errorf("failed to delete habit stack: %w", err)
	}
	logger.Debug("Deleted habit stack", "stack", stackID, "user", userID)
	return nil
}

package service

import (
	"context"

	"github.com/julianstephens/habitstack/internal/validation"
)

// CheckIntegrity validates the stored stacks of every user.
func (s *Service) CheckIntegrity(ctx context.Context) (validation.ValidationResult, error) {
	users, err := s.store.GetAllUsers(ctx)
	if err != nil {
		return validation.ValidationResult{}, err
	}

	var states []validation.StackState
	for _, u := range users {
		stacks, err := s.store.GetHabitStacksForUser(ctx, u.ID)
		if err != nil {
			return validation.ValidationResult{}, err
		}
		for _, stack := range stacks {
			logs, err := s.store.GetLogEntries(ctx, u.ID, stack.ID)
			if err != nil {
				return validation.ValidationResult{}, err
			}
			state := validation.StackState{Stack: stack, Logs: logs}

			tracker, exists, err := loadTracker(ctx, s.store, u.ID, stack.ID)
			if err != nil {
				return validation.ValidationResult{}, err
			}
			if exists {
				state.Tracker = &tracker
			}
			states = append(states, state)
		}
	}

	return validation.New().ValidateStacks(states), nil
}

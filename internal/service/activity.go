package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/outabout/outabout-api/internal/domain"
	"github.com/outabout/outabout-api/internal/repository"
)

var (
	ErrActivityNotFound = repository.ErrActivityNotFound
	ErrNotParticipant   = errors.New("user is not a participant of this activity")
)

type ActivityRepository interface {
	Create(ctx context.Context, activity domain.Activity) (domain.Activity, error)
	FindByID(ctx context.Context, id uint) (domain.Activity, error)
	FindAll(ctx context.Context) ([]domain.Activity, error)
	FindParticipants(ctx context.Context, activityID uint) ([]domain.Participation, error)
	IsParticipant(ctx context.Context, activityID, userID uint) (bool, error)
}

type ActivityService struct {
	repo ActivityRepository
}

func NewActivityService(repo ActivityRepository) *ActivityService {
	return &ActivityService{
		repo: repo,
	}
}

// CreateActivity stores the activity with hostID as its host. The repository
// seeds the host's participation row; NumParticipants starts at zero and only
// ever counts accepted joiners.
func (s *ActivityService) CreateActivity(ctx context.Context, activity domain.Activity, hostID uint) (domain.Activity, error) {
	activity.HostID = hostID
	activity.NumParticipants = 0

	created, err := s.repo.Create(ctx, activity)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *ActivityService) GetActivity(ctx context.Context, id, callerID uint) (domain.Activity, error) {
	activity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	isParticipant, err := s.repo.IsParticipant(ctx, id, callerID)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("s.repo.IsParticipant -> %w", err)
	}
	activity.IsParticipant = isParticipant

	return activity, nil
}

func (s *ActivityService) GetActivities(ctx context.Context, callerID uint) ([]domain.Activity, error) {
	activities, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	for i := range activities {
		isParticipant, err := s.repo.IsParticipant(ctx, activities[i].ID, callerID)
		if err != nil {
			return nil, fmt.Errorf("s.repo.IsParticipant -> %w", err)
		}
		activities[i].IsParticipant = isParticipant
	}

	return activities, nil
}

func (s *ActivityService) GetParticipants(ctx context.Context, activityID, callerID uint) ([]domain.Participation, error) {
	isParticipant, err := s.repo.IsParticipant(ctx, activityID, callerID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.IsParticipant -> %w", err)
	}
	if !isParticipant {
		return nil, ErrNotParticipant
	}

	participants, err := s.repo.FindParticipants(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindParticipants -> %w", err)
	}

	return participants, nil
}

func (s *ActivityService) IsParticipating(ctx context.Context, activityID, userID uint) (bool, error) {
	isParticipant, err := s.repo.IsParticipant(ctx, activityID, userID)
	if err != nil {
		return false, fmt.Errorf("s.repo.IsParticipant -> %w", err)
	}

	return isParticipant, nil
}

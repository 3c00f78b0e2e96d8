package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/outabout/outabout-api/internal/domain"
	"github.com/outabout/outabout-api/internal/repository"
)

var (
	ErrDuplicateRequest    = repository.ErrDuplicateRequest
	ErrInvalidRequestState = errors.New("state must be accepted or rejected")
	ErrNotActivityHost     = errors.New("only the activity host may decide requests")
	ErrHostCannotJoin      = errors.New("the host is already part of the activity")
)

type ActivityRequestRepository interface {
	Create(ctx context.Context, userID, activityID uint) (domain.ActivityRequest, error)
	Decide(ctx context.Context, id string, state domain.ActivityRequestState, reason string) (bool, error)
	FindByID(ctx context.Context, id string) (domain.ActivityRequest, error)
	HasAccepted(ctx context.Context, activityID, userID uint) (bool, error)
	FindByActivityID(ctx context.Context, activityID uint) ([]domain.ActivityRequest, error)
	DeleteByPair(ctx context.Context, activityID, userID uint) error
	RemoveParticipant(ctx context.Context, activityID, userID uint, wasAccepted bool) (bool, error)
}

type RequestActivityRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Activity, error)
}

type ActivityRequestService struct {
	repo         ActivityRequestRepository
	activityRepo RequestActivityRepository
}

func NewActivityRequestService(repo ActivityRequestRepository, activityRepo RequestActivityRepository) *ActivityRequestService {
	return &ActivityRequestService{
		repo:         repo,
		activityRepo: activityRepo,
	}
}

// CreateRequest opens a pending join request for userID on activityID.
// The ledger enforces at most one pending request per pair
// (ErrDuplicateRequest). No participation or counter side effects happen
// until the request is accepted.
func (s *ActivityRequestService) CreateRequest(ctx context.Context, userID, activityID uint) (domain.ActivityRequest, error) {
	activity, err := s.activityRepo.FindByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, repository.ErrActivityNotFound) {
			return domain.ActivityRequest{}, ErrActivityNotFound
		}

		return domain.ActivityRequest{}, fmt.Errorf("s.activityRepo.FindByID -> %w", err)
	}

	if activity.HostID == userID {
		return domain.ActivityRequest{}, ErrHostCannotJoin
	}

	created, err := s.repo.Create(ctx, userID, activityID)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateRequest) {
			return domain.ActivityRequest{}, ErrDuplicateRequest
		}

		return domain.ActivityRequest{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// DecideRequest accepts or rejects the request identified by id on behalf of
// deciderID, who must host the target activity. It reports false when the
// request does not exist, mirroring the ledger's contract: not-found is an
// outcome, not an error. Acceptance side effects (participation row, +1
// counter delta) are applied atomically by the repository and only on a
// pending request.
func (s *ActivityRequestService) DecideRequest(ctx context.Context, deciderID uint, id string, state domain.ActivityRequestState, reason string) (bool, error) {
	if !state.IsDecision() {
		return false, ErrInvalidRequestState
	}

	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return false, nil
		}

		return false, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	activity, err := s.activityRepo.FindByID(ctx, request.ActivityID)
	if err != nil {
		return false, fmt.Errorf("s.activityRepo.FindByID -> %w", err)
	}

	if activity.HostID != deciderID {
		return false, ErrNotActivityHost
	}

	found, err := s.repo.Decide(ctx, id, state, reason)
	if err != nil {
		return false, fmt.Errorf("s.repo.Decide -> %w", err)
	}

	return found, nil
}

// GetRequests lists the ledger rows of an activity for its host.
func (s *ActivityRequestService) GetRequests(ctx context.Context, hostID, activityID uint) ([]domain.ActivityRequest, error) {
	activity, err := s.activityRepo.FindByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, repository.ErrActivityNotFound) {
			return nil, ErrActivityNotFound
		}

		return nil, fmt.Errorf("s.activityRepo.FindByID -> %w", err)
	}

	if activity.HostID != hostID {
		return nil, ErrNotActivityHost
	}

	requests, err := s.repo.FindByActivityID(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByActivityID -> %w", err)
	}

	return requests, nil
}

// WithdrawRequest removes the caller's ledger rows for an activity
// (cancel-before-decision). Participation and the counter are untouched.
func (s *ActivityRequestService) WithdrawRequest(ctx context.Context, activityID, userID uint) error {
	if err := s.repo.DeleteByPair(ctx, activityID, userID); err != nil {
		return fmt.Errorf("s.repo.DeleteByPair -> %w", err)
	}

	return nil
}

// WithdrawParticipant removes the participation row for the pair and, when
// wasAccepted, applies the -1 counter delta in the same transaction.
func (s *ActivityRequestService) WithdrawParticipant(ctx context.Context, activityID, userID uint, wasAccepted bool) (bool, error) {
	removed, err := s.repo.RemoveParticipant(ctx, activityID, userID, wasAccepted)
	if err != nil {
		return false, fmt.Errorf("s.repo.RemoveParticipant -> %w", err)
	}

	return removed, nil
}

// LeaveActivity is the full withdrawal: it removes the participation row
// (decrementing the counter when the caller had been accepted) and then
// clears the ledger rows for the pair. Whether the caller was accepted is
// read from the whole ledger, since a newer pending request must not mask an
// earlier acceptance.
func (s *ActivityRequestService) LeaveActivity(ctx context.Context, activityID, userID uint) (bool, error) {
	wasAccepted, err := s.repo.HasAccepted(ctx, activityID, userID)
	if err != nil {
		return false, fmt.Errorf("s.repo.HasAccepted -> %w", err)
	}

	removed, err := s.repo.RemoveParticipant(ctx, activityID, userID, wasAccepted)
	if err != nil {
		return false, fmt.Errorf("s.repo.RemoveParticipant -> %w", err)
	}

	if err = s.repo.DeleteByPair(ctx, activityID, userID); err != nil {
		return false, fmt.Errorf("s.repo.DeleteByPair -> %w", err)
	}

	return removed, nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/outabout/outabout-api/internal/domain"
	"github.com/outabout/outabout-api/internal/repository/dao"
)

var (
	ErrDuplicateRequest = dao.ErrDuplicateRequest
	ErrRequestNotFound  = dao.ErrRequestNotFound
)

type ActivityRequestDAO interface {
	Insert(ctx context.Context, request dao.ActivityRequest) (dao.ActivityRequest, error)
	Decide(ctx context.Context, id, state, reason string) (bool, error)
	FindByID(ctx context.Context, id string) (dao.ActivityRequest, error)
	HasAccepted(ctx context.Context, activityID, userID uint) (bool, error)
	FindByActivityID(ctx context.Context, activityID uint) ([]dao.ActivityRequest, error)
	DeleteByPair(ctx context.Context, activityID, userID uint) error
	RemoveParticipant(ctx context.Context, activityID, userID uint, wasAccepted bool) (bool, error)
}

type ActivityRequestRepository struct {
	dao ActivityRequestDAO
}

func NewActivityRequestRepository(dao ActivityRequestDAO) *ActivityRequestRepository {
	return &ActivityRequestRepository{
		dao: dao,
	}
}

func (r *ActivityRequestRepository) Create(ctx context.Context, userID, activityID uint) (domain.ActivityRequest, error) {
	created, err := r.dao.Insert(ctx, dao.ActivityRequest{
		UserID:     userID,
		ActivityID: activityID,
	})
	if err != nil {
		return domain.ActivityRequest{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ActivityRequestRepository) Decide(ctx context.Context, id string, state domain.ActivityRequestState, reason string) (bool, error) {
	found, err := r.dao.Decide(ctx, id, string(state), reason)
	if err != nil {
		return false, fmt.Errorf("r.dao.Decide -> %w", err)
	}

	return found, nil
}

func (r *ActivityRequestRepository) FindByID(ctx context.Context, id string) (domain.ActivityRequest, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.ActivityRequest{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ActivityRequestRepository) HasAccepted(ctx context.Context, activityID, userID uint) (bool, error) {
	hasAccepted, err := r.dao.HasAccepted(ctx, activityID, userID)
	if err != nil {
		return false, fmt.Errorf("r.dao.HasAccepted -> %w", err)
	}

	return hasAccepted, nil
}

func (r *ActivityRequestRepository) FindByActivityID(ctx context.Context, activityID uint) ([]domain.ActivityRequest, error) {
	found, err := r.dao.FindByActivityID(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByActivityID -> %w", err)
	}

	requests := make([]domain.ActivityRequest, len(found))
	for i, request := range found {
		requests[i] = r.daoToDomain(request)
	}

	return requests, nil
}

func (r *ActivityRequestRepository) DeleteByPair(ctx context.Context, activityID, userID uint) error {
	if err := r.dao.DeleteByPair(ctx, activityID, userID); err != nil {
		return fmt.Errorf("r.dao.DeleteByPair -> %w", err)
	}

	return nil
}

func (r *ActivityRequestRepository) RemoveParticipant(ctx context.Context, activityID, userID uint, wasAccepted bool) (bool, error) {
	removed, err := r.dao.RemoveParticipant(ctx, activityID, userID, wasAccepted)
	if err != nil {
		return false, fmt.Errorf("r.dao.RemoveParticipant -> %w", err)
	}

	return removed, nil
}

func (r *ActivityRequestRepository) daoToDomain(req dao.ActivityRequest) domain.ActivityRequest {
	return domain.ActivityRequest{
		ID:             req.ID,
		UserID:         req.UserID,
		ActivityID:     req.ActivityID,
		State:          domain.ActivityRequestState(req.State),
		RejectedReason: req.RejectedReason,
		CreatedAt:      req.CreatedAt,
	}
}

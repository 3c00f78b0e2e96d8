package repository

import (
	"context"
	"fmt"

	"github.com/outabout/outabout-api/internal/domain"
	"github.com/outabout/outabout-api/internal/repository/dao"
)

var (
	ErrActivityNotFound = dao.ErrActivityNotFound
)

type ActivityDAO interface {
	Insert(ctx context.Context, activity dao.Activity) (dao.Activity, error)
	FindByID(ctx context.Context, id uint) (dao.Activity, error)
	FindAll(ctx context.Context) ([]dao.Activity, error)
	FindParticipants(ctx context.Context, activityID uint) ([]dao.Participation, error)
	IsParticipant(ctx context.Context, activityID, userID uint) (bool, error)
}

type ActivityRepository struct {
	dao ActivityDAO
}

func NewActivityRepository(dao ActivityDAO) *ActivityRepository {
	return &ActivityRepository{
		dao: dao,
	}
}

func (r *ActivityRepository) Create(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(activity))
	if err != nil {
		return domain.Activity{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ActivityRepository) FindByID(ctx context.Context, id uint) (domain.Activity, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ActivityRepository) FindAll(ctx context.Context) ([]domain.Activity, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	activities := make([]domain.Activity, len(found))
	for i, activity := range found {
		activities[i] = r.daoToDomain(activity)
	}

	return activities, nil
}

func (r *ActivityRepository) FindParticipants(ctx context.Context, activityID uint) ([]domain.Participation, error) {
	found, err := r.dao.FindParticipants(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindParticipants -> %w", err)
	}

	participants := make([]domain.Participation, len(found))
	for i, p := range found {
		participants[i] = domain.Participation{
			UserID:     p.UserID,
			ActivityID: p.ActivityID,
			Host:       p.Host,
			CreatedAt:  p.CreatedAt,
		}
	}

	return participants, nil
}

func (r *ActivityRepository) IsParticipant(ctx context.Context, activityID, userID uint) (bool, error) {
	isParticipant, err := r.dao.IsParticipant(ctx, activityID, userID)
	if err != nil {
		return false, fmt.Errorf("r.dao.IsParticipant -> %w", err)
	}

	return isParticipant, nil
}

func (r *ActivityRepository) domainToDao(a domain.Activity) dao.Activity {
	return dao.Activity{
		ID:              a.ID,
		Name:            a.Name,
		Date:            a.Date,
		Location:        a.Location,
		Description:     a.Description,
		HostID:          a.HostID,
		NumParticipants: a.NumParticipants,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func (r *ActivityRepository) daoToDomain(a dao.Activity) domain.Activity {
	return domain.Activity{
		ID:              a.ID,
		Name:            a.Name,
		Date:            a.Date,
		Location:        a.Location,
		Description:     a.Description,
		HostID:          a.HostID,
		NumParticipants: a.NumParticipants,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

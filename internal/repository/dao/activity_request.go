package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrDuplicateRequest = errors.New("a pending request for this activity already exists")
	ErrRequestNotFound  = errors.New("activity request not found")
)

const (
	RequestStatePending  = "pending"
	RequestStateAccepted = "accepted"
	RequestStateRejected = "rejected"
)

// ActivityRequest is the join-request ledger. The partial unique index keeps a
// (user, activity) pair down to a single pending row at a time; decided rows
// do not block a new attempt.
type ActivityRequest struct {
	ID             string `gorm:"type:uuid;primaryKey"`
	UserID         uint   `gorm:"not null;uniqueIndex:uniq_pending_request,where:state = 'pending'"`
	ActivityID     uint   `gorm:"not null;index;uniqueIndex:uniq_pending_request,where:state = 'pending'"`
	State          string `gorm:"not null;default:pending"`
	RejectedReason string

	CreatedAt time.Time `gorm:"not null"`
}

func (r *ActivityRequest) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	return nil
}

type ActivityRequestDAO struct {
	db *gorm.DB
}

func NewActivityRequestDAO(db *gorm.DB) *ActivityRequestDAO {
	return &ActivityRequestDAO{
		db: db,
	}
}

func (d *ActivityRequestDAO) Insert(ctx context.Context, request ActivityRequest) (ActivityRequest, error) {
	request.State = RequestStatePending

	result := d.db.WithContext(ctx).Create(&request)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.ConstraintName, "uniq_pending_request") {
			return ActivityRequest{}, ErrDuplicateRequest
		}

		return ActivityRequest{}, result.Error
	}

	return request, nil
}

// Decide moves the request identified by id into state, storing reason when
// rejecting. Everything runs in one transaction: the request row is locked,
// and only a pending -> accepted transition inserts the participation row and
// applies the +1 counter delta, so re-deciding an already-decided request
// rewrites the ledger row without touching the counter again. The delta is
// additionally tied to the roster insert so the counter always equals the
// number of non-host participation rows.
//
// Returns false without error when no request matches id.
func (d *ActivityRequestDAO) Decide(ctx context.Context, id, state, reason string) (bool, error) {
	found := false

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var request ActivityRequest

		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&request, "id = ?", id)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return nil
			}

			return result.Error
		}

		found = true
		wasPending := request.State == RequestStatePending

		err := tx.Model(&ActivityRequest{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"state":           state,
				"rejected_reason": reason,
			}).Error
		if err != nil {
			return err
		}

		if state != RequestStateAccepted || !wasPending {
			return nil
		}

		participant := Participation{
			UserID:     request.UserID,
			ActivityID: request.ActivityID,
			Host:       false,
		}
		insert := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&participant)
		if insert.Error != nil {
			return insert.Error
		}

		// A returning requester may already be on the roster; the counter
		// moves only when this acceptance actually added a row.
		if insert.RowsAffected == 0 {
			return nil
		}

		return tx.Model(&Activity{}).
			Where("id = ?", request.ActivityID).
			UpdateColumn("num_participants", gorm.Expr("num_participants + ?", 1)).
			Error
	})
	if err != nil {
		return false, err
	}

	return found, nil
}

func (d *ActivityRequestDAO) FindByID(ctx context.Context, id string) (ActivityRequest, error) {
	var request ActivityRequest

	result := d.db.WithContext(ctx).First(&request, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ActivityRequest{}, ErrRequestNotFound
		}

		return ActivityRequest{}, result.Error
	}

	return request, nil
}

// HasAccepted reports whether any accepted request exists for the pair. A
// newer pending request must not mask an earlier acceptance, so this looks at
// the whole ledger rather than the latest row.
func (d *ActivityRequestDAO) HasAccepted(ctx context.Context, activityID, userID uint) (bool, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&ActivityRequest{}).
		Where("activity_id = ? AND user_id = ? AND state = ?", activityID, userID, RequestStateAccepted).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

func (d *ActivityRequestDAO) FindByActivityID(ctx context.Context, activityID uint) ([]ActivityRequest, error) {
	var requests []ActivityRequest

	result := d.db.WithContext(ctx).
		Where("activity_id = ?", activityID).
		Order("created_at ASC").
		Find(&requests)
	if result.Error != nil {
		return nil, result.Error
	}

	return requests, nil
}

// DeleteByPair removes the ledger rows for a pair. It is a pure ledger
// operation; participation rows and the counter are untouched.
func (d *ActivityRequestDAO) DeleteByPair(ctx context.Context, activityID, userID uint) error {
	result := d.db.WithContext(ctx).
		Where("activity_id = ? AND user_id = ?", activityID, userID).
		Delete(&ActivityRequest{})

	return result.Error
}

// RemoveParticipant deletes the participation row and, when the participant
// had been accepted, applies the -1 counter delta in the same transaction.
// The delta is gated on a row actually being deleted so a repeated withdrawal
// cannot drive the counter negative. Returns whether a row was removed.
func (d *ActivityRequestDAO) RemoveParticipant(ctx context.Context, activityID, userID uint, wasAccepted bool) (bool, error) {
	removed := false

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Where("activity_id = ? AND user_id = ?", activityID, userID).
			Delete(&Participation{})
		if result.Error != nil {
			return result.Error
		}

		removed = result.RowsAffected > 0
		if !removed || !wasAccepted {
			return nil
		}

		return tx.Model(&Activity{}).
			Where("id = ?", activityID).
			UpdateColumn("num_participants", gorm.Expr("num_participants - ?", 1)).
			Error
	})
	if err != nil {
		return false, err
	}

	return removed, nil
}

package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrActivityNotFound = errors.New("activity not found")
)

type Activity struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"not null"`
	Date        time.Time `gorm:"not null"`
	Location    string    `gorm:"not null"`
	Description string
	HostID      uint `gorm:"not null;index"`

	// NumParticipants counts accepted non-host joiners. It is only ever
	// mutated with a relative SQL expression (num_participants + ?) so that
	// concurrent acceptances cannot lose updates.
	NumParticipants int `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Participation struct {
	UserID     uint `gorm:"primaryKey;autoIncrement:false"`
	ActivityID uint `gorm:"primaryKey;autoIncrement:false;index"`
	Host       bool `gorm:"not null;default:false"`
	CreatedAt  time.Time
}

func (Participation) TableName() string {
	return "user_activities"
}

type ActivityDAO struct {
	db *gorm.DB
}

func NewActivityDAO(db *gorm.DB) *ActivityDAO {
	return &ActivityDAO{
		db: db,
	}
}

// Insert creates the activity and seeds the host's participation row in the
// same transaction. The host is not part of NumParticipants.
func (d *ActivityDAO) Insert(ctx context.Context, activity Activity) (Activity, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&activity).Error; err != nil {
			return err
		}

		host := Participation{
			UserID:     activity.HostID,
			ActivityID: activity.ID,
			Host:       true,
		}

		return tx.Create(&host).Error
	})
	if err != nil {
		return Activity{}, err
	}

	return activity, nil
}

func (d *ActivityDAO) FindByID(ctx context.Context, id uint) (Activity, error) {
	var activity Activity

	result := d.db.WithContext(ctx).First(&activity, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Activity{}, ErrActivityNotFound
		}

		return Activity{}, result.Error
	}

	return activity, nil
}

func (d *ActivityDAO) FindAll(ctx context.Context) ([]Activity, error) {
	var activities []Activity

	result := d.db.WithContext(ctx).Order("date ASC").Find(&activities)
	if result.Error != nil {
		return nil, result.Error
	}

	return activities, nil
}

func (d *ActivityDAO) FindParticipants(ctx context.Context, activityID uint) ([]Participation, error) {
	var participants []Participation

	result := d.db.WithContext(ctx).
		Where("activity_id = ?", activityID).
		Order("created_at ASC").
		Find(&participants)
	if result.Error != nil {
		return nil, result.Error
	}

	return participants, nil
}

func (d *ActivityDAO) IsParticipant(ctx context.Context, activityID, userID uint) (bool, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Participation{}).
		Where("activity_id = ? AND user_id = ?", activityID, userID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

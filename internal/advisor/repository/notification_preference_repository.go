package repository

import (
	"context"
	"errors"

	"golang-stock-advisor/internal/entity"

	"gorm.io/gorm"
)

// NotificationPreferenceRepository manages per-user alerting thresholds.
type NotificationPreferenceRepository interface {
	GetOrCreate(ctx context.Context, userID uint) (*entity.NotificationPreference, error)
	GetOrCreateTx(tx *gorm.DB, userID uint) (*entity.NotificationPreference, error)
	Save(ctx context.Context, pref *entity.NotificationPreference) error
	ListUserIDsWithPriceAlerts(ctx context.Context) ([]uint, error)
}

type notificationPreferenceRepository struct {
	db *gorm.DB
}

// NewNotificationPreferenceRepository creates a new GORM-based
// preference repository.
func NewNotificationPreferenceRepository(db *gorm.DB) NotificationPreferenceRepository {
	return &notificationPreferenceRepository{db: db}
}

// GetOrCreate returns the user's preferences, creating the default row
// on first access.
func (r *notificationPreferenceRepository) GetOrCreate(ctx context.Context, userID uint) (*entity.NotificationPreference, error) {
	return r.GetOrCreateTx(r.db.WithContext(ctx), userID)
}

// GetOrCreateTx is GetOrCreate on an explicit transaction handle.
func (r *notificationPreferenceRepository) GetOrCreateTx(tx *gorm.DB, userID uint) (*entity.NotificationPreference, error) {
	var pref entity.NotificationPreference
	err := tx.Where("user_id = ?", userID).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		pref = entity.NotificationPreference{
			UserID:                userID,
			PriceAlertsEnabled:    true,
			AISignalAlertsEnabled: true,
			RiskAlertsEnabled:     true,
			AIConfidenceThreshold: 0.7,
			CooldownMinutes:       15,
		}
		if err := tx.Create(&pref).Error; err != nil {
			return nil, err
		}
		return &pref, nil
	}
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

// Save persists updated preferences.
func (r *notificationPreferenceRepository) Save(ctx context.Context, pref *entity.NotificationPreference) error {
	return r.db.WithContext(ctx).Save(pref).Error
}

// ListUserIDsWithPriceAlerts returns every user whose price alerts are
// enabled; the poller fans emitted notifications out to them.
func (r *notificationPreferenceRepository) ListUserIDsWithPriceAlerts(ctx context.Context) ([]uint, error) {
	var userIDs []uint
	err := r.db.WithContext(ctx).Model(&entity.NotificationPreference{}).
		Where("price_alerts_enabled = ?", true).
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return nil, err
	}
	return userIDs, nil
}

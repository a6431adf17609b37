package service

import (
	"context"
	"testing"

	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/internal/advisor/repository"
	"golang-stock-advisor/internal/entity"
	"golang-stock-advisor/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newNotificationService(db *gorm.DB) NotificationService {
	return NewNotificationService(
		repository.NewNotificationRepository(db),
		repository.NewNotificationPreferenceRepository(db),
		repository.NewUsersRepository(db),
		newTestLogger(),
	)
}

func seedNotification(t *testing.T, db *gorm.DB, userID uint, title string, read bool) *entity.Notification {
	t.Helper()
	n := &entity.Notification{
		UserID:  userID,
		Type:    "STOCK_ALERT",
		Title:   title,
		Message: title,
		Symbol:  "AAPL",
		IsRead:  read,
	}
	require.NoError(t, db.Create(n).Error)
	if read {
		require.NoError(t, db.Model(n).Update("is_read", true).Error)
	}
	return n
}

func TestNotificationList_ReturnsUnreadCount(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")
	other := seedUser(t, db, "bob")
	svc := newNotificationService(db)

	seedNotification(t, db, user.ID, "first", false)
	seedNotification(t, db, user.ID, "second", true)
	seedNotification(t, db, other.ID, "not mine", false)

	resp, err := svc.List(context.Background(), user.ID, 10, false)
	require.NoError(t, err)
	assert.Len(t, resp.Notifications, 2)
	assert.Equal(t, int64(1), resp.UnreadCount)

	unread, err := svc.List(context.Background(), user.ID, 10, true)
	require.NoError(t, err)
	require.Len(t, unread.Notifications, 1)
	assert.Equal(t, "first", unread.Notifications[0].Title)
}

func TestNotificationMarkAsRead(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")
	other := seedUser(t, db, "bob")
	svc := newNotificationService(db)

	n := seedNotification(t, db, user.ID, "alert", false)

	require.NoError(t, svc.MarkAsRead(context.Background(), n.ID, user.ID))

	var got entity.Notification
	require.NoError(t, db.First(&got, n.ID).Error)
	assert.True(t, got.IsRead)

	// Unknown id and someone else's notification both report not found.
	err := svc.MarkAsRead(context.Background(), 9999, user.ID)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
	err = svc.MarkAsRead(context.Background(), n.ID, other.ID)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestGetPreferences_CreatesDefaults(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")
	svc := newNotificationService(db)

	prefs, err := svc.GetPreferences(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, prefs.PriceAlertsEnabled)
	assert.Equal(t, 0.7, prefs.AIConfidenceThreshold)
	assert.Equal(t, 15, prefs.CooldownMinutes)
}

func TestGetPreferences_UnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := newNotificationService(db)

	_, err := svc.GetPreferences(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdatePreferences_PartialUpdate(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")
	svc := newNotificationService(db)

	prefs, err := svc.UpdatePreferences(context.Background(), user.ID, &dto.UpdatePreferencesRequest{
		PercentChangeThreshold: utils.ToPointer(2.5),
		PriceUpperThreshold:    utils.ToPointer(200.00),
	})
	require.NoError(t, err)
	assert.Equal(t, 2.5, prefs.PercentChangeThreshold)
	require.NotNil(t, prefs.PriceUpperThreshold)
	assert.Equal(t, 200.00, *prefs.PriceUpperThreshold)

	// Untouched fields keep their values.
	assert.True(t, prefs.PriceAlertsEnabled)
	assert.Equal(t, 15, prefs.CooldownMinutes)

	reloaded, err := svc.GetPreferences(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2.5, reloaded.PercentChangeThreshold)
}

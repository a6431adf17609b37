package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/internal/advisor/repository"
	"golang-stock-advisor/internal/entity"
	"golang-stock-advisor/pkg/logger"

	"gorm.io/gorm"
)

const defaultNotificationLimit = 10

// NotificationService serves the user-facing notification read/ack API
// and preference management.
type NotificationService interface {
	List(ctx context.Context, userID uint, limit int, unreadOnly bool) (*dto.NotificationListResponse, error)
	MarkAsRead(ctx context.Context, id, userID uint) error
	GetPreferences(ctx context.Context, userID uint) (*dto.PreferencesResponse, error)
	UpdatePreferences(ctx context.Context, userID uint, req *dto.UpdatePreferencesRequest) (*dto.PreferencesResponse, error)
}

// NewNotificationService creates a new notification service.
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	preferenceRepo repository.NotificationPreferenceRepository,
	usersRepo repository.UsersRepository,
	log *logger.Logger,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		preferenceRepo:   preferenceRepo,
		usersRepo:        usersRepo,
		logger:           log,
	}
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
	preferenceRepo   repository.NotificationPreferenceRepository
	usersRepo        repository.UsersRepository
	logger           *logger.Logger
}

// List returns the user's most recent notifications with an unread count.
func (s *notificationService) List(ctx context.Context, userID uint, limit int, unreadOnly bool) (*dto.NotificationListResponse, error) {
	if limit <= 0 {
		limit = defaultNotificationLimit
	}

	notifications, err := s.notificationRepo.FindByUser(ctx, userID, limit, unreadOnly)
	if err != nil {
		return nil, err
	}

	unread, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.NotificationListResponse{
		Notifications: make([]dto.NotificationResponse, 0, len(notifications)),
		UnreadCount:   unread,
	}
	for _, n := range notifications {
		resp.Notifications = append(resp.Notifications, dto.NotificationResponse{
			ID:        n.ID,
			Type:      n.Type,
			Title:     n.Title,
			Message:   n.Message,
			Symbol:    n.Symbol,
			Data:      json.RawMessage(n.Data),
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	return resp, nil
}

// MarkAsRead flags one of the user's notifications as read.
func (s *notificationService) MarkAsRead(ctx context.Context, id, userID uint) error {
	rows, err := s.notificationRepo.MarkAsRead(ctx, id, userID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: %d", ErrNotificationNotFound, id)
	}
	return nil
}

// GetPreferences returns the user's preferences, creating defaults on
// first access. Unknown users are reported, not created.
func (s *notificationService) GetPreferences(ctx context.Context, userID uint) (*dto.PreferencesResponse, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	pref, err := s.preferenceRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapPreferences(pref), nil
}

// UpdatePreferences applies a partial preference update.
func (s *notificationService) UpdatePreferences(ctx context.Context, userID uint, req *dto.UpdatePreferencesRequest) (*dto.PreferencesResponse, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	pref, err := s.preferenceRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.PriceAlertsEnabled != nil {
		pref.PriceAlertsEnabled = *req.PriceAlertsEnabled
	}
	if req.AISignalAlertsEnabled != nil {
		pref.AISignalAlertsEnabled = *req.AISignalAlertsEnabled
	}
	if req.RiskAlertsEnabled != nil {
		pref.RiskAlertsEnabled = *req.RiskAlertsEnabled
	}
	if req.PriceUpperThreshold != nil {
		pref.PriceUpperThreshold = req.PriceUpperThreshold
	}
	if req.PriceLowerThreshold != nil {
		pref.PriceLowerThreshold = req.PriceLowerThreshold
	}
	if req.PercentChangeThreshold != nil {
		pref.PercentChangeThreshold = *req.PercentChangeThreshold
	}
	if req.AIConfidenceThreshold != nil {
		pref.AIConfidenceThreshold = *req.AIConfidenceThreshold
	}
	if req.CooldownMinutes != nil {
		pref.CooldownMinutes = *req.CooldownMinutes
	}

	if err := s.preferenceRepo.Save(ctx, pref); err != nil {
		return nil, err
	}
	return mapPreferences(pref), nil
}

func (s *notificationService) requireUser(ctx context.Context, userID uint) error {
	if _, err := s.usersRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %d", ErrUserNotFound, userID)
		}
		return err
	}
	return nil
}

func mapPreferences(pref *entity.NotificationPreference) *dto.PreferencesResponse {
	return &dto.PreferencesResponse{
		PriceAlertsEnabled:     pref.PriceAlertsEnabled,
		AISignalAlertsEnabled:  pref.AISignalAlertsEnabled,
		RiskAlertsEnabled:      pref.RiskAlertsEnabled,
		PriceUpperThreshold:    pref.PriceUpperThreshold,
		PriceLowerThreshold:    pref.PriceLowerThreshold,
		PercentChangeThreshold: pref.PercentChangeThreshold,
		AIConfidenceThreshold:  pref.AIConfidenceThreshold,
		CooldownMinutes:        pref.CooldownMinutes,
	}
}

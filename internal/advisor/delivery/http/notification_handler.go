package http

import (
	"errors"
	"net/http"
	"strconv"

	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/internal/advisor/service"
	"golang-stock-advisor/pkg/logger"

	"github.com/labstack/echo/v4"
)

// NotificationHandler handles HTTP requests for notifications and
// preferences. Caller identity arrives as an opaque X-User-ID header;
// resolving it from credentials is the identity service's job.
type NotificationHandler struct {
	notificationService service.NotificationService
	logger              *logger.Logger
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService service.NotificationService, logger *logger.Logger) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService, logger: logger}
}

// RegisterRoutes registers the notification routes to the Echo group.
func (h *NotificationHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.List)
	g.POST("/:id/read", h.MarkAsRead)
	g.GET("/preferences", h.GetPreferences)
	g.PUT("/preferences", h.UpdatePreferences)
}

func callerID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Request().Header.Get("X-User-ID"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// List godoc
// @Summary List notifications for the calling user
// @Tags notifications
// @Produce  json
// @Param   limit        query   int    false   "Max rows, default 10"
// @Param   unread_only  query   bool   false   "Only unread rows"
// @Success 200 {object} dto.NotificationListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing or invalid X-User-ID header"})
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	unreadOnly, _ := strconv.ParseBool(c.QueryParam("unread_only"))

	resp, err := h.notificationService.List(c.Request().Context(), userID, limit, unreadOnly)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, resp)
}

// MarkAsRead godoc
// @Summary Mark a notification as read
// @Tags notifications
// @Produce  json
// @Param   id  path    int true    "Notification ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} dto.ErrorResponse
// @Router /notifications/{id}/read [post]
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing or invalid X-User-ID header"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid notification ID"})
	}

	if err := h.notificationService.MarkAsRead(c.Request().Context(), uint(id), userID); err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Notification not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Notification marked as read"})
}

// GetPreferences godoc
// @Summary Get notification preferences for the calling user
// @Tags notifications
// @Produce  json
// @Success 200 {object} dto.PreferencesResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /notifications/preferences [get]
func (h *NotificationHandler) GetPreferences(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing or invalid X-User-ID header"})
	}

	resp, err := h.notificationService.GetPreferences(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, resp)
}

// UpdatePreferences godoc
// @Summary Update notification preferences for the calling user
// @Tags notifications
// @Accept  json
// @Produce  json
// @Param   preferences  body    dto.UpdatePreferencesRequest true "Partial preference update"
// @Success 200 {object} dto.PreferencesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /notifications/preferences [put]
func (h *NotificationHandler) UpdatePreferences(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing or invalid X-User-ID header"})
	}

	var req dto.UpdatePreferencesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	resp, err := h.notificationService.UpdatePreferences(c.Request().Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, resp)
}

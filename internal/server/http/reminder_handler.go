package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"remind/internal/logging"
	reminderapp "remind/internal/reminder/app"
	"remind/internal/reminder/domain"
)

// ReminderHandler maps the /reminders endpoints onto the reminder service.
type ReminderHandler struct {
	service *reminderapp.Service
	logger  logging.Logger
}

// NewReminderHandler builds a reminder handler.
func NewReminderHandler(service *reminderapp.Service) *ReminderHandler {
	return &ReminderHandler{
		service: service,
		logger:  logging.NewComponentLogger("ReminderHandler"),
	}
}

type createReminderRequest struct {
	Text     string `json:"text"`
	DateTime string `json:"dateTime"`
}

type updateReminderRequest struct {
	Text     *string `json:"text"`
	DateTime *string `json:"dateTime"`
	Status   *string `json:"status"`
}

// HandleCreate serves POST /reminders.
func (h *ReminderHandler) HandleCreate(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "authorization required"})
		return
	}

	var req createReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "text is required"})
		return
	}
	dateTime, err := parseDateTime(req.DateTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), user.ID, req.Text, dateTime)
	if err != nil {
		h.logger.Error("create reminder: %v", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to create reminder"})
		return
	}
	c.JSON(http.StatusCreated, toReminderDTO(created))
}

// HandleList serves GET /reminders.
func (h *ReminderHandler) HandleList(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "authorization required"})
		return
	}

	filter, options, err := parseListQuery(c.Query("status"), c.Query("limit"), c.Query("page"), c.Query("sortBy"), c.Query("sortType"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	filter.UserID = user.ID

	reminders, err := h.service.Query(c.Request.Context(), filter, options)
	if err != nil {
		h.logger.Error("query reminders: %v", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to query reminders"})
		return
	}
	c.JSON(http.StatusOK, toReminderDTOs(reminders))
}

// HandleGet serves GET /reminders/:reminderId.
func (h *ReminderHandler) HandleGet(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "authorization required"})
		return
	}

	reminder, found, err := h.service.GetByID(c.Request.Context(), c.Param("reminderId"), user.ID)
	if err != nil {
		h.logger.Error("get reminder: %v", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to load reminder"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, errorResponse{Error: "Reminder not found"})
		return
	}
	c.JSON(http.StatusOK, toReminderDTO(reminder))
}

// HandleUpdate serves PATCH /reminders/:reminderId.
func (h *ReminderHandler) HandleUpdate(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "authorization required"})
		return
	}

	var req updateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}
	if req.Text == nil && req.DateTime == nil && req.Status == nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "at least one of text, dateTime or status is required"})
		return
	}

	update := reminderapp.Update{Text: req.Text, Status: req.Status}
	if req.DateTime != nil {
		dateTime, err := parseDateTime(*req.DateTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		update.DateTime = &dateTime
	}

	updated, err := h.service.UpdateByID(c.Request.Context(), c.Param("reminderId"), user.ID, update)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, errorResponse{Error: "Reminder not found"})
			return
		}
		h.logger.Error("update reminder: %v", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to update reminder"})
		return
	}
	c.JSON(http.StatusOK, toReminderDTO(updated))
}

// HandleDelete serves DELETE /reminders/:reminderId. A successful delete
// answers 200 with an empty object.
func (h *ReminderHandler) HandleDelete(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "authorization required"})
		return
	}

	if _, err := h.service.DeleteByID(c.Request.Context(), c.Param("reminderId"), user.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, errorResponse{Error: "Reminder not found"})
			return
		}
		h.logger.Error("delete reminder: %v", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to delete reminder"})
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

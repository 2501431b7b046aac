package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ryanly/mirum-notify/internal/application"
	"github.com/ryanly/mirum-notify/internal/domain/entity"
	"github.com/ryanly/mirum-notify/pkg/response"
	"github.com/ryanly/mirum-notify/pkg/validation"
)

// TriggerHandler exposes the external trigger surface: the cron scheduler,
// the database change feed, and the auth provider's user hook all POST here.
type TriggerHandler struct {
	Daily      *application.DailyQuestionService
	Points     *application.PointsNotifier
	Proposals  *application.ProposalService
	Onboarding *application.OnboardingService
	Logger     *logrus.Logger
}

func NewTriggerHandler(daily *application.DailyQuestionService, points *application.PointsNotifier, proposals *application.ProposalService, onboarding *application.OnboardingService, logger *logrus.Logger) *TriggerHandler {
	return &TriggerHandler{
		Daily:      daily,
		Points:     points,
		Proposals:  proposals,
		Onboarding: onboarding,
		Logger:     logger,
	}
}

type pointsSnapshot struct {
	UserID string `json:"user_id" binding:"required"`
	Points int    `json:"points"`
	Reason string `json:"reason"`
}

type pointsChangeRequest struct {
	Before *pointsSnapshot `json:"before"`
	After  *pointsSnapshot `json:"after"`
}

type proposalCreatedRequest struct {
	UserID string `json:"user_id" binding:"required"`
	// No required tag: zero-point proposals are legal and "required" rejects
	// the zero value.
	Points int    `json:"points"`
	Reason string `json:"reason"`
}

type userCreatedRequest struct {
	UID   string `json:"uid" binding:"required"`
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// DailyTick runs the question-of-the-day job. The scheduler has no caller to
// propagate to, so failures are logged and reported in-band as success=false.
func (h *TriggerHandler) DailyTick(c *gin.Context) {
	if err := h.Daily.Run(c.Request.Context()); err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("daily question job failed")
		}
		resp := response.Success(c, http.StatusOK, map[string]any{"success": false}, "daily job failed")
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, map[string]any{"success": true}, "daily job done")
	c.JSON(resp.Status, resp)
}

// PointsChange handles a write notification on a points entry.
func (h *TriggerHandler) PointsChange(c *gin.Context) {
	var req pointsChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}

	entryID := c.Param("id")
	before := snapshotToEntry(entryID, req.Before)
	after := snapshotToEntry(entryID, req.After)

	if err := h.Points.HandleChange(c.Request.Context(), before, after); err != nil {
		resp := response.Error[any](c, http.StatusInternalServerError, "points notification failed", err.Error())
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success[any](c, http.StatusOK, nil, "handled")
	c.JSON(resp.Status, resp)
}

// ProposalCreated handles the first write on a proposal path.
func (h *TriggerHandler) ProposalCreated(c *gin.Context) {
	var req proposalCreatedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}

	p := &entity.Proposal{
		ID:     c.Param("id"),
		UserID: req.UserID,
		Points: req.Points,
		Reason: req.Reason,
	}
	if err := h.Proposals.HandleCreated(c.Request.Context(), p); err != nil {
		resp := response.Error[any](c, http.StatusInternalServerError, "proposal creation handling failed", err.Error())
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success[any](c, http.StatusOK, nil, "handled")
	c.JSON(resp.Status, resp)
}

// ApprovalWrite handles a write on a proposal's approval-flag sub-path. The
// current flag mapping is re-read from the database, not trusted from the
// notification body.
func (h *TriggerHandler) ApprovalWrite(c *gin.Context) {
	approved, err := h.Proposals.HandleApprovalWrite(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp := response.Error[any](c, http.StatusInternalServerError, "approval handling failed", err.Error())
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, map[string]any{"approved": approved}, "handled")
	c.JSON(resp.Status, resp)
}

// UserCreated handles the auth provider's user-creation hook.
func (h *TriggerHandler) UserCreated(c *gin.Context) {
	var req userCreatedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}

	ev := application.UserCreatedEvent{UID: req.UID, Name: req.Name, Email: req.Email}
	if err := h.Onboarding.HandleUserCreated(c.Request.Context(), ev); err != nil {
		resp := response.Error[any](c, http.StatusInternalServerError, "onboarding failed", err.Error())
		c.JSON(resp.Status, resp)
		return
	}
	c.Status(http.StatusNoContent)
}

func snapshotToEntry(id string, s *pointsSnapshot) *entity.PointsEntry {
	if s == nil {
		return nil
	}
	return &entity.PointsEntry{ID: id, UserID: s.UserID, Points: s.Points, Reason: s.Reason}
}

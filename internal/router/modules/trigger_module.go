package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ryanly/mirum-notify/internal/container"
	handlers "github.com/ryanly/mirum-notify/internal/interface/http"
	"github.com/ryanly/mirum-notify/internal/interface/middleware"
	"github.com/ryanly/mirum-notify/pkg/helpers"
)

type TriggerModule struct {
	Handler *handlers.TriggerHandler
	Tokens  *helpers.TriggerTokenManager
}

func NewTriggerModule(h *handlers.TriggerHandler, tokens *helpers.TriggerTokenManager) *TriggerModule {
	return &TriggerModule{Handler: h, Tokens: tokens}
}

func (m *TriggerModule) Register(rg *gin.RouterGroup) {
	triggers := rg.Group("/triggers")
	triggers.Use(middleware.TriggerAuth(m.Tokens))
	triggers.Use(
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyBySource(), middleware.AllowPrivateIP()),
	)
	{
		triggers.POST("/daily", m.Handler.DailyTick)
		triggers.POST("/points/:id", m.Handler.PointsChange)
		triggers.POST("/proposals/:id", m.Handler.ProposalCreated)
		triggers.POST("/proposals/:id/approvals", m.Handler.ApprovalWrite)
		triggers.POST("/users", m.Handler.UserCreated)
	}
}

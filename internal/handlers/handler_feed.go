package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saricycle/saricycle_backend/internal/core/domain"
	portssvc "github.com/saricycle/saricycle_backend/internal/core/ports/services"
	"github.com/saricycle/saricycle_backend/internal/dto"
	"github.com/saricycle/saricycle_backend/internal/middleware"
)

// feedHandler exposes the live-updating views as server-sent event streams.
// Each event carries the full current value set; the first event is the
// snapshot at subscription time.
type feedHandler struct {
	feedSvc portssvc.FeedSvcFacade
}

func RegisterFeedRoutes(rg *gin.RouterGroup, feedSvc portssvc.FeedSvcFacade) {
	h := &feedHandler{feedSvc: feedSvc}

	accounts := rg.Group("/accounts")
	{
		accounts.GET("/:id/activities/stream", h.streamActivities)
		accounts.GET("/:id/achievements/stream", h.streamAchievements)
	}
}

func (h *feedHandler) streamActivities(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	if _, ok := requireSelfOrAdmin(c, accountID); !ok {
		return
	}

	events := make(chan []dto.ActivityResponse, 1)
	cancel, err := h.feedSvc.SubscribeActivities(c.Request.Context(), accountID, func(records []domain.ActivityRecord) {
		select {
		case events <- dto.ToActivityResponses(records):
		default:
		}
	})
	if err != nil {
		respondError(c, logger, err, "Failed to open activity stream")
		return
	}
	defer cancel()

	streamSSE(c, "activities", events)
}

func (h *feedHandler) streamAchievements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	if _, ok := requireSelfOrAdmin(c, accountID); !ok {
		return
	}

	events := make(chan dto.ListAchievementsResponse, 1)
	cancel, err := h.feedSvc.SubscribeAchievements(c.Request.Context(), accountID, func(progress []domain.AchievementProgress) {
		select {
		case events <- dto.ToListAchievementsResponse(progress):
		default:
		}
	})
	if err != nil {
		respondError(c, logger, err, "Failed to open achievement stream")
		return
	}
	defer cancel()

	streamSSE(c, "achievements", events)
}

// streamSSE writes events from the channel until the client disconnects.
func streamSSE[T any](c *gin.Context, eventName string, events <-chan T) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case payload, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(eventName, payload)
			return true
		}
	})
}

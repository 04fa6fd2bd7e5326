package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/colonyops/cockpit/internal/cockpit/handler/middleware"
	"github.com/colonyops/cockpit/internal/cockpit/service/assistant/domain/entity"
	"github.com/colonyops/cockpit/internal/cockpit/service/assistant/domain/service"
	"github.com/colonyops/cockpit/pkg/logger"
)

// ChatHandler handles POST /v1/assistant/chat: one conversational turn per
// request.
type ChatHandler struct {
	orchestrator *service.Orchestrator
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(orchestrator *service.Orchestrator) *ChatHandler {
	return &ChatHandler{orchestrator: orchestrator}
}

// Handle runs one turn. Access decisions happen inside the orchestrator;
// unknown callers get a polite denial here, never a 401.
func (h *ChatHandler) Handle(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"message": "message is required",
				"type":    "invalid_request_error",
			},
		})
		return
	}

	caller := middleware.CallerFrom(c)
	result, err := h.orchestrator.RunTurn(c.Request.Context(), &service.TurnRequest{
		ConversationID: req.ConversationID,
		Message:        req.Message,
		History:        toHistory(req.History),
		Caller:         caller,
	})
	if err != nil {
		logger.Error("[ChatHandler] turn failed for caller %q: %v", caller.Name, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"message": "internal error",
				"type":    "api_error",
			},
		})
		return
	}

	c.JSON(http.StatusOK, ChatResponse{
		ConversationID: result.ConversationID,
		Message:        result.Reply,
		ToolsUsed:      result.ToolsUsed,
	})
}

func toHistory(msgs []HistoryMessage) []*entity.Message {
	if len(msgs) == 0 {
		return nil
	}
	out := make([]*entity.Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, &entity.Message{
			Role:    entity.Role(m.Role),
			Content: m.Content,
		})
	}
	return out
}

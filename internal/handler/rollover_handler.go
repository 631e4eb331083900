package handler

import (
	"errors"
	"net/http"

	"salesboard/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RolloverHandler struct {
	manager *service.RolloverManager
	board   *service.BoardService
	logger  *zap.Logger
}

func NewRolloverHandler(manager *service.RolloverManager, board *service.BoardService, logger *zap.Logger) *RolloverHandler {
	return &RolloverHandler{manager: manager, board: board, logger: logger}
}

type rolloverRequest struct {
	Confirmed bool `json:"confirmed"`
}

// TriggerRollover is the manual button. The confirmed flag is the API
// counterpart of the UI confirmation dialog; without it nothing runs.
func (h *RolloverHandler) TriggerRollover(c *gin.Context) {
	var req rolloverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("TriggerRollover: invalid body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if !req.Confirmed {
		c.JSON(http.StatusConflict, gin.H{"error": service.ErrNotConfirmed.Error()})
		return
	}

	h.logger.Info("TriggerRollover: manual rollover requested",
		zap.String("client_ip", c.ClientIP()),
	)

	rec, err := h.manager.Run(c.Request.Context(), "manual")
	if err != nil {
		if errors.Is(err, service.ErrRolloverAborted) {
			h.logger.Error("TriggerRollover: aborted, board untouched", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "rollover aborted, board untouched"})
			return
		}
		h.logger.Error("TriggerRollover: failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "rollover failed"})
		return
	}

	h.board.Rebroadcast(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"record": rec})
}

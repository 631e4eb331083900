package handler

import (
	"errors"
	"net/http"

	"salesboard/internal/model"
	"salesboard/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BoardHandler struct {
	board  *service.BoardService
	logger *zap.Logger
}

func NewBoardHandler(board *service.BoardService, logger *zap.Logger) *BoardHandler {
	return &BoardHandler{board: board, logger: logger}
}

type logProjectRequest struct {
	SalespersonID string `json:"salesperson_id"`
	ProjectTypeID string `json:"project_type_id"`
	LocationID    string `json:"location_id"`
}

func (h *BoardHandler) LogProject(c *gin.Context) {
	var req logProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("LogProject: invalid body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ev, err := h.board.LogProject(c.Request.Context(), req.SalespersonID, req.ProjectTypeID, req.LocationID)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			h.logger.Warn("LogProject: rejected", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("LogProject: failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log project"})
		return
	}

	h.logger.Info("LogProject: success",
		zap.Int64("id", ev.ID),
		zap.String("salesperson_id", ev.SalespersonID),
		zap.String("location", ev.Location),
	)
	c.JSON(http.StatusCreated, gin.H{"project": ev})
}

func (h *BoardHandler) ResetBoard(c *gin.Context) {
	n, err := h.board.ResetBoard(c.Request.Context())
	if err != nil {
		h.logger.Error("ResetBoard: failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset board"})
		return
	}

	h.logger.Warn("ResetBoard: success", zap.Int64("deleted", n))
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

func (h *BoardHandler) GetBoard(c *gin.Context) {
	snap, err := h.board.Board(c.Request.Context())
	if err != nil {
		h.logger.Error("GetBoard: failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load board"})
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *BoardHandler) GetLeaderboard(c *gin.Context) {
	snap, err := h.board.Board(c.Request.Context())
	if err != nil {
		h.logger.Error("GetLeaderboard: failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load board"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": snap.Leaderboard})
}

func (h *BoardHandler) GetLocationTotals(c *gin.Context) {
	snap, err := h.board.Board(c.Request.Context())
	if err != nil {
		h.logger.Error("GetLocationTotals: failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load board"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"locations": snap.LocationTotals})
}

func (h *BoardHandler) GetPopularity(c *gin.Context) {
	snap, err := h.board.Board(c.Request.Context())
	if err != nil {
		h.logger.Error("GetPopularity: failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load board"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"project_types": snap.Popularity})
}

func (h *BoardHandler) GetRoster(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"salespeople":   model.Salespersons,
		"project_types": model.ProjectTypes,
		"locations":     model.Locations,
	})
}

func (h *BoardHandler) GetGoal(c *gin.Context) {
	goal, err := h.board.Goal(c.Request.Context())
	if err != nil {
		h.logger.Error("GetGoal: failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read goal"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"target": goal})
}

type updateGoalRequest struct {
	Target int `json:"target"`
}

func (h *BoardHandler) UpdateGoal(c *gin.Context) {
	var req updateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("UpdateGoal: invalid body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.board.UpdateGoal(c.Request.Context(), req.Target); err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("UpdateGoal: failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update goal"})
		return
	}

	h.logger.Info("UpdateGoal: success", zap.Int("target", req.Target))
	c.JSON(http.StatusOK, gin.H{"target": req.Target})
}

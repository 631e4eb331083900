package handler

import (
	"errors"
	"net/http"
	"strconv"

	"salesboard/internal/model"
	"salesboard/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RecordHandler struct {
	records *repository.WeeklyRecordRepository
	logger  *zap.Logger
}

func NewRecordHandler(records *repository.WeeklyRecordRepository, logger *zap.Logger) *RecordHandler {
	return &RecordHandler{records: records, logger: logger}
}

func (h *RecordHandler) ListRecords(c *gin.Context) {
	records, err := h.records.List(c.Request.Context())
	if err != nil {
		h.logger.Error("ListRecords: failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list records"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

// PatchRecord is the admin override. The numbers are taken as typed and
// may desynchronize from the archived events; nothing is recomputed.
func (h *RecordHandler) PatchRecord(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.logger.Warn("PatchRecord: invalid record id", zap.String("id", c.Param("id")))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record id"})
		return
	}

	var patch model.WeeklyRecordPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.logger.Warn("PatchRecord: invalid body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if patch.Completed == nil && patch.TopSalespersonName == nil && patch.TopSalespersonProjects == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty patch"})
		return
	}

	if err := h.records.Patch(c.Request.Context(), id, patch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
			return
		}
		h.logger.Error("PatchRecord: failed", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to patch record"})
		return
	}

	h.logger.Info("PatchRecord: success", zap.Int64("id", id))
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *RecordHandler) DeleteRecord(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record id"})
		return
	}

	if err := h.records.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
			return
		}
		h.logger.Error("DeleteRecord: failed", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

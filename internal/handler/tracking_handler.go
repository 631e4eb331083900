package handler

import (
	"net/http"
	"time"

	"salesboard/internal/repository"
	"salesboard/internal/service"
	"salesboard/internal/week"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TrackingHandler serves the side-state reads: streak, personal bests,
// achievements and the monthly champion.
type TrackingHandler struct {
	streaks      *service.StreakTracker
	bests        *repository.PersonalBestRepository
	achievements *service.AchievementEvaluator
	champions    *repository.ChampionRepository
	logger       *zap.Logger
}

func NewTrackingHandler(
	streaks *service.StreakTracker,
	bests *repository.PersonalBestRepository,
	achievements *service.AchievementEvaluator,
	champions *repository.ChampionRepository,
	logger *zap.Logger,
) *TrackingHandler {
	return &TrackingHandler{
		streaks:      streaks,
		bests:        bests,
		achievements: achievements,
		champions:    champions,
		logger:       logger,
	}
}

func (h *TrackingHandler) GetStreak(c *gin.Context) {
	st, err := h.streaks.Current(c.Request.Context())
	if err != nil {
		h.logger.Error("GetStreak: failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read streak"})
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *TrackingHandler) GetPersonalBests(c *gin.Context) {
	bests, err := h.bests.List(c.Request.Context())
	if err != nil {
		h.logger.Error("GetPersonalBests: failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read personal bests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"personal_bests": bests})
}

func (h *TrackingHandler) GetAchievements(c *gin.Context) {
	unlocked, err := h.achievements.Unlocked(c.Request.Context())
	if err != nil {
		h.logger.Error("GetAchievements: failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read achievements"})
		return
	}

	type unlockedRule struct {
		RuleID     string    `json:"rule_id"`
		Title      string    `json:"title"`
		UnlockedAt time.Time `json:"unlocked_at"`
	}
	out := make([]unlockedRule, 0, len(unlocked))
	for _, a := range unlocked {
		title := ""
		if rule, ok := service.RuleByID(a.RuleID); ok {
			title = rule.Title
		}
		out = append(out, unlockedRule{RuleID: a.RuleID, Title: title, UnlockedAt: a.UnlockedAt})
	}
	c.JSON(http.StatusOK, gin.H{"achievements": out})
}

// GetChampion returns null outside the champion's month; stale champions
// are filtered here, never deleted.
func (h *TrackingHandler) GetChampion(c *gin.Context) {
	month := week.MonthKey(time.Now())
	ch, err := h.champions.GetForMonth(c.Request.Context(), month)
	if err != nil {
		h.logger.Error("GetChampion: failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read champion"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"champion": ch})
}

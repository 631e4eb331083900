package httpserver

import (
	"context"
	"strconv"
	"time"

	"salesboard/internal/handler"
	"salesboard/internal/ws"
	"salesboard/pkg/metrics"
	"salesboard/pkg/mq"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func NewRouter(
	boardHandler *handler.BoardHandler,
	trackingHandler *handler.TrackingHandler,
	recordHandler *handler.RecordHandler,
	rolloverHandler *handler.RolloverHandler,
	hub *ws.Hub,
	logger *zap.Logger,
	db *pgxpool.Pool,
	publisher *mq.Publisher,
) *gin.Engine {
	r := gin.Default()

	// 请求日志中间件
	r.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		metrics.RecordHTTPRequestDuration(c.Request.Method, c.FullPath(), strconv.Itoa(status), latency)
		logger.Info("HTTP Request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(200)
	})

	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c, 1*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(500, gin.H{"status": "db_not_ready", "error": err.Error()})
			return
		}
		if publisher != nil && !publisher.IsConnected() {
			c.JSON(500, gin.H{"status": "mq_not_ready"})
			return
		}
		c.JSON(200, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/ws", func(c *gin.Context) {
		ws.ServeWS(hub, c.Writer, c.Request)
	})

	r.POST("/projects", boardHandler.LogProject)
	r.DELETE("/projects", boardHandler.ResetBoard)
	r.GET("/board", boardHandler.GetBoard)
	r.GET("/leaderboard", boardHandler.GetLeaderboard)
	r.GET("/locations/totals", boardHandler.GetLocationTotals)
	r.GET("/project-types/popularity", boardHandler.GetPopularity)
	r.GET("/roster", boardHandler.GetRoster)
	r.GET("/goal", boardHandler.GetGoal)
	r.PUT("/goal", boardHandler.UpdateGoal)

	r.GET("/streak", trackingHandler.GetStreak)
	r.GET("/personal-bests", trackingHandler.GetPersonalBests)
	r.GET("/achievements", trackingHandler.GetAchievements)
	r.GET("/champion", trackingHandler.GetChampion)

	r.GET("/records", recordHandler.ListRecords)
	r.PATCH("/records/:id", recordHandler.PatchRecord)
	r.DELETE("/records/:id", recordHandler.DeleteRecord)

	r.POST("/rollover", rolloverHandler.TriggerRollover)

	return r
}

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterOptions struct {
	Idempotency    domain.IdempotencyStore
	IdempotencyTTL time.Duration
	// Gatherer backs /metrics; nil leaves the route out.
	Gatherer prometheus.Gatherer
	// Ready is polled by /healthz; nil means always healthy.
	Ready func(ctx context.Context) error
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func NewRouter(h *HTTPSettlementHandler, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/healthz", func(c *gin.Context) {
		if opts.Ready != nil {
			if err := opts.Ready(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	idempotent := Idempotency(opts.Idempotency, opts.IdempotencyTTL)

	v1 := router.Group("/v1")
	{
		v1.GET("/advertisement-packages", h.ListPackages)
		v1.GET("/withdrawals/:id", h.GetWithdrawal)

		sellers := v1.Group("/sellers/:sellerId")
		sellers.GET("/wallet", h.GetWallet)
		sellers.GET("/transactions", h.ListTransactions)
		sellers.GET("/commissions", h.ListCommissions)
		sellers.POST("/withdrawals", idempotent, h.CreateWithdrawal)
		sellers.GET("/withdrawals", h.ListWithdrawals)
		sellers.GET("/bank-account", h.GetBankAccount)
		sellers.PUT("/bank-account", h.UpdateBankAccount)
		sellers.POST("/advertisements", idempotent, h.PurchaseAdvertisement)
		sellers.GET("/advertisements", h.ListAdvertisements)

		ads := v1.Group("/advertisements/:id")
		ads.POST("/pause", h.PauseAdvertisement)
		ads.POST("/resume", h.ResumeAdvertisement)
		ads.POST("/cancel", h.CancelAdvertisement)
		ads.POST("/impressions", h.RecordImpression)
		ads.POST("/clicks", h.RecordClick)
		ads.GET("", h.GetAdvertisement)
		ads.DELETE("", h.DeleteAdvertisement)
	}
	return router
}

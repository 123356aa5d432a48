package handlers

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"cmms/internal/adapter/http/mapper"
	"cmms/internal/adapter/http/middleware"
)

const (
	StatusOk        = "ok"
	StatusDown      = "down"
	healthDBTimeout = 2 * time.Second
)

// HealthInfo describes the running deployment.
type HealthInfo struct {
	Version     string
	MailBackend string
	MediaRoot   string
}

type HealthSummary struct {
	Version    string `json:"version"`
	ServerTime string `json:"server_time"`
	Status     string `json:"status"`
}

type HealthComponents struct {
	Database string `json:"database"`
	Driver   string `json:"driver"`
	Media    string `json:"media"`
	Mail     string `json:"mail_backend"`
}

type HealthReport struct {
	HealthSummary
	Language   string           `json:"language"`
	Components HealthComponents `json:"components"`
}

type HealthHandler struct {
	db   *sqlx.DB
	info HealthInfo
	now  func() time.Time
}

func NewHealthHandler(db *sqlx.DB, info HealthInfo) *HealthHandler {
	if info.Version == "" {
		info.Version = "dev"
	}
	return &HealthHandler{db: db, info: info, now: time.Now}
}

// CheckHealth answers 503 while the database is unreachable.
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	summary := h.summary(h.databaseUp(c.Request.Context()))

	statusCode := http.StatusOK
	if summary.Status != StatusOk {
		statusCode = http.StatusServiceUnavailable
	}
	c.JSON(statusCode, summary)
}

func (h *HealthHandler) CheckHealthReport(c *gin.Context) {
	dbUp := h.databaseUp(c.Request.Context())

	c.JSON(http.StatusOK, HealthReport{
		HealthSummary: h.summary(dbUp),
		Language:      middleware.GetLang(c),
		Components: HealthComponents{
			Database: statusOf(dbUp),
			Driver:   h.driverName(),
			Media:    statusOf(h.mediaWritable()),
			Mail:     h.info.MailBackend,
		},
	})
}

func (h *HealthHandler) summary(dbUp bool) HealthSummary {
	return HealthSummary{
		Version:    h.info.Version,
		ServerTime: h.now().UTC().Format(mapper.DateTimeLayout),
		Status:     statusOf(dbUp),
	}
}

func (h *HealthHandler) databaseUp(ctx context.Context) bool {
	if h.db == nil {
		return false
	}
	timeoutCtx, cancel := context.WithTimeout(ctx, healthDBTimeout)
	defer cancel()
	return h.db.PingContext(timeoutCtx) == nil
}

func (h *HealthHandler) mediaWritable() bool {
	if h.info.MediaRoot == "" {
		return false
	}
	info, err := os.Stat(h.info.MediaRoot)
	if err != nil || !info.IsDir() {
		return false
	}
	tmp, err := os.CreateTemp(h.info.MediaRoot, ".health-*")
	if err != nil {
		return false
	}
	name := tmp.Name()
	_ = tmp.Close()
	return os.Remove(name) == nil
}

func (h *HealthHandler) driverName() string {
	if h.db == nil {
		return ""
	}
	return h.db.DriverName()
}

func statusOf(up bool) string {
	if up {
		return StatusOk
	}
	return StatusDown
}

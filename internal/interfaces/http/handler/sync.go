package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appsync "github.com/gradestock/backend/internal/application/sync"
	syncdomain "github.com/gradestock/backend/internal/domain/sync"
	"github.com/gradestock/backend/internal/interfaces/http/dto"
)

// SyncCoordinator is the run-control surface the sync endpoints expose.
type SyncCoordinator interface {
	StartRun(categoryIDs, productLineIDs []int64) appsync.StartResult
	Stop() appsync.StartResult
	Status() syncdomain.Snapshot
}

// TaxonomyRefresher refreshes the local category tree from the remote.
type TaxonomyRefresher interface {
	Refresh(ctx context.Context) error
}

// SyncHandler handles sync engine API endpoints
type SyncHandler struct {
	BaseHandler
	coordinator SyncCoordinator
	refresher   TaxonomyRefresher
	logger      *zap.Logger
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(coordinator SyncCoordinator, refresher TaxonomyRefresher, logger *zap.Logger) *SyncHandler {
	return &SyncHandler{
		coordinator: coordinator,
		refresher:   refresher,
		logger:      logger,
	}
}

// StartSyncRequest selects which categories a run should crawl. Both lists
// empty means the default category set.
type StartSyncRequest struct {
	CategoryIDs    []int64 `json:"category_ids"`
	ProductLineIDs []int64 `json:"product_line_ids"`
}

// StartSync handles POST /sync/start
func (h *SyncHandler) StartSync(c *gin.Context) {
	var req StartSyncRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.Error(c, 400, dto.ErrCodeInvalidJSON, "invalid request body")
			return
		}
	}

	result := h.coordinator.StartRun(req.CategoryIDs, req.ProductLineIDs)
	if !result.Accepted {
		h.Conflict(c, dto.ErrCodeSyncActive, result.Message)
		return
	}

	h.logger.Info("Sync run accepted",
		zap.Int64s("category_ids", req.CategoryIDs),
		zap.Int64s("product_line_ids", req.ProductLineIDs),
	)
	h.Accepted(c, result)
}

// StopSync handles POST /sync/stop
func (h *SyncHandler) StopSync(c *gin.Context) {
	result := h.coordinator.Stop()
	if !result.Accepted {
		h.Conflict(c, dto.ErrCodeSyncIdle, result.Message)
		return
	}
	h.Success(c, result)
}

// SyncStatus handles GET /sync/status
func (h *SyncHandler) SyncStatus(c *gin.Context) {
	h.Success(c, h.coordinator.Status())
}

// RefreshTaxonomy handles POST /sync/taxonomy
func (h *SyncHandler) RefreshTaxonomy(c *gin.Context) {
	if err := h.refresher.Refresh(c.Request.Context()); err != nil {
		h.logger.Error("Taxonomy refresh failed", zap.Error(err))
		h.BadGateway(c, "taxonomy refresh failed")
		return
	}
	h.Success(c, gin.H{"refreshed": true})
}

// RegisterRoutes registers sync routes on the given router group
func (h *SyncHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sync := rg.Group("/sync")
	{
		sync.POST("/start", h.StartSync)
		sync.POST("/stop", h.StopSync)
		sync.GET("/status", h.SyncStatus)
		sync.POST("/taxonomy", h.RefreshTaxonomy)
	}
}

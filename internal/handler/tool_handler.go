package handler

import (
	"net/http"
	"strconv"

	"github.com/aitoolhub/backend/internal/service"
	"github.com/aitoolhub/backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ToolHandler struct {
	toolService *service.ToolService
}

func NewToolHandler(toolService *service.ToolService) *ToolHandler {
	return &ToolHandler{
		toolService: toolService,
	}
}

type ToolRequest struct {
	Name        string `json:"name" binding:"required"`
	UseCase     string `json:"useCase" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Pricing     string `json:"pricing" binding:"required"`
	Description string `json:"description"`
	Website     string `json:"website"`
}

func (r *ToolRequest) toInput() service.ToolInput {
	return service.ToolInput{
		Name:        r.Name,
		UseCase:     r.UseCase,
		Category:    r.Category,
		Pricing:     r.Pricing,
		Description: r.Description,
		Website:     r.Website,
	}
}

// List returns all tools matching the optional category, pricing and
// minRating query filters, each with its computed avgRating and reviewCount.
// GET /api/tools
func (h *ToolHandler) List(c *gin.Context) {
	category := c.Query("category")
	pricing := c.Query("pricing")

	var minRating *float64
	if raw := c.Query("minRating"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid minRating parameter",
			})
			return
		}
		minRating = &parsed
	}

	tools, err := h.toolService.ListTools(category, pricing, minRating)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tools)
}

// Get returns a single tool by ID.
// GET /api/tools/:id
func (h *ToolHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tool, err := h.toolService.GetTool(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tool)
}

// Create adds a catalog entry under a freshly allocated ID.
// POST /api/tools (admin)
func (h *ToolHandler) Create(c *gin.Context) {
	var req ToolRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.Warn("Create tool request parsing failed",
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	tool, err := h.toolService.CreateTool(req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tool created",
		"id":      tool.ID,
	})
}

// Update overwrites a tool's fields.
// PUT /api/tools/:id (admin)
func (h *ToolHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.Warn("Update tool request parsing failed",
			zap.Int64("tool_id", id),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	if err := h.toolService.UpdateTool(id, req.toInput()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Tool updated",
	})
}

// Delete removes a tool and cascades deletion of its reviews.
// DELETE /api/tools/:id (admin)
func (h *ToolHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.toolService.DeleteTool(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Tool deleted",
	})
}

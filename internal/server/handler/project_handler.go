package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"projectboard/internal/model"
	"projectboard/internal/server/service"
)

// ProjectService is the seam the handler is tested through.
type ProjectService interface {
	List(ctx context.Context, userID int) ([]model.Project, error)
	Create(ctx context.Context, userID int, p model.Project) (*model.Project, error)
	Update(ctx context.Context, userID int, p model.Project) (*model.Project, error)
	Delete(ctx context.Context, userID, id int) error
}

type ProjectHandler struct {
	svc    ProjectService
	logger *zap.Logger
}

func NewProjectHandler(svc ProjectService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{svc: svc, logger: logger}
}

func (h *ProjectHandler) getUserID(c *gin.Context) (int, bool) {
	userID, ok := c.Get("user_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return 0, false
	}
	return userID.(int), true
}

// List handles GET /projects.
func (h *ProjectHandler) List(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	projects, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list projects",
			zap.Int("user_id", userID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list projects"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": projects})
}

// Create handles POST /projects.
func (h *ProjectHandler) Create(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	var p model.Project
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if fieldErrors := validateProject(p); len(fieldErrors) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrors})
		return
	}

	saved, err := h.svc.Create(c.Request.Context(), userID, p)
	if err != nil {
		h.logger.Error("Failed to create project",
			zap.Int("user_id", userID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save project"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": saved})
}

// Update handles PUT /projects/:id.
func (h *ProjectHandler) Update(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	var p model.Project
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if fieldErrors := validateProject(p); len(fieldErrors) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrors})
		return
	}

	// The path, not the body, names the resource.
	p.ID = id

	saved, err := h.svc.Update(c.Request.Context(), userID, p)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to update project",
			zap.Int("user_id", userID),
			zap.Int("id", id),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": saved})
}

// Delete handles DELETE /projects/:id.
func (h *ProjectHandler) Delete(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to delete project",
			zap.Int("user_id", userID),
			zap.Int("id", id),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete project"})
		return
	}

	c.Status(http.StatusNoContent)
}

func validateProject(p model.Project) map[string][]string {
	fieldErrors := map[string][]string{}
	if p.Name == "" {
		fieldErrors["name"] = append(fieldErrors["name"], "Name is required")
	}
	for _, t := range p.Tasks {
		if t.Title == "" {
			fieldErrors["tasks"] = append(fieldErrors["tasks"], "Task title is required")
			break
		}
	}
	return fieldErrors
}

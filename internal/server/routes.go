package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/oriente/oriente/internal/card"
	"github.com/oriente/oriente/internal/column"
	"github.com/oriente/oriente/internal/comment"
	"github.com/oriente/oriente/internal/history"
	"github.com/oriente/oriente/internal/models"
	"github.com/oriente/oriente/internal/ordering"
	"github.com/oriente/oriente/internal/project"
	"github.com/oriente/oriente/internal/tag"
	"github.com/oriente/oriente/internal/user"
	"gorm.io/gorm"
)

// registerRoutes sets up all API routes on the Gin router.
func registerRoutes(router *gin.Engine, db *gorm.DB, loc history.Locale) {
	api := router.Group("/api")

	api.GET("/projects", handleProjectList(db))
	api.POST("/projects", handleProjectCreate(db))
	api.GET("/projects/:id/board", handleBoard(db))
	api.GET("/projects/:id/cards/:cardID/history", handleHistory(db))

	api.POST("/columns/:id/move", handleColumnMove(db))
	api.POST("/cards/:id/move", handleCardMove(db, loc))

	// SSE endpoint: placeholder until a realtime transport exists.
	api.GET("/events", handleSSEStub())
}

// httpStatus maps the core error taxonomy onto HTTP statuses: validation
// errors to 400, consistency (not found) to 404, conflicts to 409, and
// storage errors to 500.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, ordering.ErrPositionOutOfRange),
		errors.Is(err, card.ErrInvalidStatus),
		errors.Is(err, card.ErrInvalidPriority):
		return http.StatusBadRequest
	case errors.Is(err, card.ErrNotFound),
		errors.Is(err, card.ErrColumnNotFound),
		errors.Is(err, card.ErrUserNotFound),
		errors.Is(err, column.ErrNotFound),
		errors.Is(err, column.ErrProjectNotFound),
		errors.Is(err, project.ErrNotFound),
		errors.Is(err, user.ErrNotFound),
		errors.Is(err, tag.ErrNotFound),
		errors.Is(err, comment.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, column.ErrHasCards),
		errors.Is(err, tag.ErrWrongProject):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	c.JSON(httpStatus(err), gin.H{"error": err.Error()})
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(v), true
}

func handleProjectList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		projects, err := project.List(db)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, projects)
	}
}

func handleProjectCreate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Name        string `json:"name" binding:"required"`
			Description string `json:"description"`
			OwnerID     *uint  `json:"owner_id"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		p, err := project.Create(db, project.CreateOpts{
			Name:        req.Name,
			Description: req.Description,
			OwnerID:     req.OwnerID,
		})
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

// handleBoard returns a project's columns, each with its live cards in
// position order.
func handleBoard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := uintParam(c, "id")
		if !ok {
			return
		}
		if _, err := project.Get(db, projectID); err != nil {
			fail(c, err)
			return
		}

		cols, err := column.ListByProject(db, projectID)
		if err != nil {
			fail(c, err)
			return
		}

		for i := range cols {
			cards, err := card.List(db, projectID, card.ListFilters{ColumnID: cols[i].ID})
			if err != nil {
				fail(c, err)
				return
			}
			live := make([]models.Card, 0, len(cards))
			for _, cd := range cards {
				if cd.Status != models.CardStatusDeleted {
					live = append(live, cd)
				}
			}
			cols[i].Cards = live
		}
		c.JSON(http.StatusOK, cols)
	}
}

func handleHistory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := uintParam(c, "id")
		if !ok {
			return
		}
		cardID, ok := uintParam(c, "cardID")
		if !ok {
			return
		}
		cd, err := card.Get(db, cardID)
		if err != nil {
			fail(c, err)
			return
		}
		if cd.ProjectID != projectID {
			fail(c, fmt.Errorf("card: %d not in project %d: %w", cardID, projectID, card.ErrNotFound))
			return
		}

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

		result, err := history.List(db, cardID, projectID, page, size)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"items":       result.Entries,
			"total":       result.Total,
			"total_pages": result.TotalPages,
			"page":        page,
			"size":        size,
		})
	}
}

func handleColumnMove(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uintParam(c, "id")
		if !ok {
			return
		}
		var req struct {
			Position int `json:"position"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		col, err := column.Move(db, id, req.Position)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, col)
	}
}

func handleCardMove(db *gorm.DB, loc history.Locale) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uintParam(c, "id")
		if !ok {
			return
		}
		var req struct {
			ColumnID uint  `json:"column_id" binding:"required"`
			Position int   `json:"position"`
			ActorID  *uint `json:"actor_id"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		moved, desc, err := card.Move(db, id, card.MoveOpts{
			ColumnID: req.ColumnID,
			Position: req.Position,
			Locale:   loc,
		}, req.ActorID)
		if err != nil {
			fail(c, err)
			return
		}
		resp := gin.H{"card": moved}
		if desc != nil {
			resp["moved"] = gin.H{
				"from_column": desc.FromColumn,
				"to_column":   desc.ToColumn,
			}
		}
		c.JSON(http.StatusOK, resp)
	}
}

func handleSSEStub() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")
		c.String(http.StatusOK, "data: {\"type\":\"connected\"}\n\n")
	}
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HassanAli010/UserPref-CRS/internal/repository"
)

type CourseHandler struct {
	catalogRepo repository.CatalogRepository
	userRepo    repository.UserRepository
}

func NewCourseHandler(catalogRepo repository.CatalogRepository, userRepo repository.UserRepository) *CourseHandler {
	return &CourseHandler{
		catalogRepo: catalogRepo,
		userRepo:    userRepo,
	}
}

// GetAllCourses feeds the course selection dropdown.
func (h *CourseHandler) GetAllCourses(c *gin.Context) {
	names := h.catalogRepo.GetAllCourseNames()

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Courses fetched",
		"data": gin.H{
			"courses": names,
			"total":   len(names),
		},
	})
}

// GetMyHistory returns the logged-in user's course history in insertion order.
func (h *CourseHandler) GetMyHistory(c *gin.Context) {
	username := c.GetString("username")
	if username == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "User not authenticated",
		})
		return
	}

	history, err := h.userRepo.GetHistory(username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch history",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "History fetched",
		"data": gin.H{
			"username": username,
			"history":  history,
			"count":    len(history),
		},
	})
}

package handlers

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/HassanAli010/UserPref-CRS/internal/config"
	"github.com/HassanAli010/UserPref-CRS/internal/repository"
	"github.com/HassanAli010/UserPref-CRS/internal/services"
)

type RecommendationHandler struct {
	recommender services.RecommenderService
	config      *config.Config
}

func NewRecommendationHandler(recommender services.RecommenderService) *RecommendationHandler {
	if config.GlobalConfig == nil {
		_ = config.LoadConfig()
	}
	return &RecommendationHandler{
		recommender: recommender,
		config:      config.GlobalConfig,
	}
}

func (h *RecommendationHandler) parseLimit(c *gin.Context) int {
	limitStr := c.DefaultQuery("limit", strconv.Itoa(h.config.DefaultRecommendations))

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = h.config.DefaultRecommendations
	}
	if limit > h.config.MaxRecommendations {
		limit = h.config.MaxRecommendations // Safety limit
	}
	return limit
}

// GetContentBasedRecommendations handles GET /api/recommendations/content?course=...&limit=...
// Course names contain spaces and punctuation, so the name rides a query
// parameter instead of the path.
//
// When a regular user asks for recommendations, the chosen course is recorded
// in their history afterwards — the same flow the recommendation page of the
// previous version had.
func (h *RecommendationHandler) GetContentBasedRecommendations(c *gin.Context) {
	courseName := c.Query("course")
	if courseName == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Course name is required",
		})
		return
	}

	limit := h.parseLimit(c)

	recommendations, err := h.recommender.GetContentBased(courseName, limit)
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Course '" + courseName + "' not found in the course list",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to generate recommendations",
			"error":   err.Error(),
		})
		return
	}

	// Format scores to 2 decimal places for readability
	for i := range recommendations {
		recommendations[i].Score = math.Round(recommendations[i].Score*100) / 100
	}

	historyUpdated := false
	if username := c.GetString("username"); username != "" && c.GetString("role") == "user" {
		if err := h.recommender.RecordInteraction(username, courseName); err != nil {
			log.Printf("⚠️ Failed to record interaction for %s: %v", username, err)
		} else {
			historyUpdated = true
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Content-based recommendations fetched",
		"data": gin.H{
			"course":          courseName,
			"recommendations": recommendations,
			"count":           len(recommendations),
			"type":            "content-based",
			"history_updated": historyUpdated,
		},
	})
}

// GetCollaborativeRecommendations handles GET /api/recommendations/collaborative
// for the logged-in user. An empty result is a normal answer, not an error —
// a user with no history has no signal yet.
func (h *RecommendationHandler) GetCollaborativeRecommendations(c *gin.Context) {
	username := c.GetString("username")
	if username == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "User not authenticated",
		})
		return
	}

	recommendations, err := h.recommender.GetCollaborative(username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to generate recommendations",
			"error":   err.Error(),
		})
		return
	}

	message := "Collaborative recommendations fetched"
	if len(recommendations) == 0 {
		message = "No recommendations available based on user history. Try exploring more courses!"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": message,
		"data": gin.H{
			"username":        username,
			"recommendations": recommendations,
			"count":           len(recommendations),
			"type":            "collaborative",
		},
	})
}

package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HassanAli010/UserPref-CRS/internal/repository"
)

// AdminHandler covers the admin pages of the previous version: inspect a
// user's history, delete a history, delete a user.
type AdminHandler struct {
	userRepo repository.UserRepository
}

func NewAdminHandler(userRepo repository.UserRepository) *AdminHandler {
	return &AdminHandler{userRepo: userRepo}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.userRepo.ListUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch users",
		})
		return
	}

	type userSummary struct {
		Username     string `json:"username"`
		HistoryCount int    `json:"history_count"`
	}

	summaries := make([]userSummary, 0, len(users))
	for _, user := range users {
		summaries = append(summaries, userSummary{
			Username:     user.Username,
			HistoryCount: len(user.History),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Users fetched",
		"data": gin.H{
			"users": summaries,
			"total": len(summaries),
		},
	})
}

func (h *AdminHandler) GetUserHistory(c *gin.Context) {
	username := c.Param("username")

	user, err := h.userRepo.FindUserByUsername(username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch user",
		})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "User not found",
		})
		return
	}

	history := user.History
	if history == nil {
		history = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "User history fetched",
		"data": gin.H{
			"username": user.Username,
			"history":  history,
			"count":    len(history),
		},
	})
}

func (h *AdminHandler) ClearUserHistory(c *gin.Context) {
	username := c.Param("username")

	if err := h.userRepo.ClearHistory(username); err != nil {
		if errors.Is(err, repository.ErrUnknownUser) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "User not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to clear history",
		})
		return
	}

	log.Printf("🗑️ History for user '%s' deleted by admin %s", username, c.GetString("username"))

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "History for user '" + username + "' has been deleted",
	})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	username := c.Param("username")

	if err := h.userRepo.DeleteUser(username); err != nil {
		if errors.Is(err, repository.ErrUnknownUser) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "User not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete user",
		})
		return
	}

	log.Printf("🗑️ User '%s' deleted by admin %s", username, c.GetString("username"))

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "User '" + username + "' has been deleted",
	})
}

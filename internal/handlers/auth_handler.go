package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/HassanAli010/UserPref-CRS/internal/config"
	"github.com/HassanAli010/UserPref-CRS/internal/models"
	"github.com/HassanAli010/UserPref-CRS/internal/repository"
)

type AuthHandler struct {
	userRepo  repository.UserRepository
	adminRepo repository.AdminRepository
	config    *config.Config
}

func NewAuthHandler(userRepo repository.UserRepository, adminRepo repository.AdminRepository) *AuthHandler {
	if config.GlobalConfig == nil {
		_ = config.LoadConfig()
	}
	return &AuthHandler{
		userRepo:  userRepo,
		adminRepo: adminRepo,
		config:    config.GlobalConfig,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	hashedPassword, err := h.userRepo.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to process password",
		})
		return
	}

	if req.Role == "admin" {
		// Single admin account by policy, same as the previous version.
		err := h.adminRepo.CreateAdmin(&models.Admin{
			Username: req.Username,
			Password: hashedPassword,
		})
		if errors.Is(err, repository.ErrAdminExists) {
			c.JSON(http.StatusConflict, gin.H{
				"status":  "error",
				"message": "Admin account already exists. Please log in.",
			})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Failed to create admin account",
			})
			return
		}

		token, err := h.generateJWT(req.Username, "admin")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Failed to generate token",
			})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"status":  "success",
			"message": "Admin account created successfully",
			"data": models.AuthResponse{
				Token:    token,
				Username: req.Username,
				Role:     "admin",
			},
		})
		return
	}

	user := &models.User{
		Username: req.Username,
		Password: hashedPassword,
		History:  []string{},
	}

	if err := h.userRepo.CreateUser(user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			c.JSON(http.StatusConflict, gin.H{
				"status":  "error",
				"message": "Username already exists. Please choose another one.",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create user",
		})
		return
	}

	token, err := h.generateJWT(user.Username, "user")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to generate token",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "User registered successfully",
		"data": models.AuthResponse{
			Token:    token,
			Username: user.Username,
			Role:     "user",
			History:  user.History,
		},
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
		})
		return
	}

	if req.Role == "admin" {
		admin, err := h.adminRepo.GetAdmin()
		if err != nil || admin == nil || admin.Username != req.Username {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Invalid admin credentials",
			})
			return
		}
		if err := h.userRepo.VerifyPassword(admin.Password, req.Password); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Invalid admin credentials",
			})
			return
		}

		token, err := h.generateJWT(admin.Username, "admin")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Failed to generate token",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "Admin login successful",
			"data": models.AuthResponse{
				Token:    token,
				Username: admin.Username,
				Role:     "admin",
			},
		})
		return
	}

	user, err := h.userRepo.FindUserByUsername(req.Username)
	if err != nil || user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Invalid username or password",
		})
		return
	}

	if err := h.userRepo.VerifyPassword(user.Password, req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Invalid username or password",
		})
		return
	}

	token, err := h.generateJWT(user.Username, "user")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to generate token",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "User login successful",
		"data": models.AuthResponse{
			Token:    token,
			Username: user.Username,
			Role:     "user",
			History:  user.History,
		},
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	username := c.GetString("username")
	role := c.GetString("role")
	if username == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "User not authenticated",
		})
		return
	}

	if role == "admin" {
		c.JSON(http.StatusOK, gin.H{
			"status": "success",
			"data": models.AuthResponse{
				Username: username,
				Role:     "admin",
			},
		})
		return
	}

	user, err := h.userRepo.FindUserByUsername(username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch user data",
		})
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "User not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": models.AuthResponse{
			Username: user.Username,
			Role:     "user",
			History:  user.History,
		},
	})
}

func (h *AuthHandler) generateJWT(username, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": username,
		"role":     role,
		"exp":      time.Now().Add(time.Hour * 24 * 7).Unix(), // 7 days
		"iat":      time.Now().Unix(),
	})

	return token.SignedString([]byte(h.config.JWTSecret))
}

package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-frontdesk/models"
	"github.com/yeremiapane/restaurant-frontdesk/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserController struct {
	DB        *gorm.DB
	Blacklist utils.TokenBlacklist
}

func NewUserController(db *gorm.DB, blacklist utils.TokenBlacklist) *UserController {
	if blacklist == nil {
		blacklist = utils.NewMemoryBlacklist()
	}
	return &UserController{DB: db, Blacklist: blacklist}
}

// CreateUser -> admin creates a staff (or admin) account
func (uc *UserController) CreateUser(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required,max=100"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		Role     string `json:"role" binding:"required,oneof=admin staff"`
	}
	if !bindJSON(c, &req) {
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	if err := uc.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	if count > 0 {
		utils.RespondValidation(c, http.StatusConflict, map[string]string{"email": "User with this email already exists."})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    email,
		Password: string(hashed),
		Role:     req.Role,
	}
	if err := uc.DB.Create(&user).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("New user registered: %s (role=%s)", user.Email, user.Role)
	utils.RespondJSON(c, http.StatusCreated, "User registered", gin.H{
		"user_id": user.ID,
	})
}

// Login user -> return JWT
func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if !bindJSON(c, &input) {
		return
	}

	var user models.User
	if err := uc.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(input.Email))).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Login successful for user: %s, role: %s", user.Email, user.Role)
	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token":     token,
		"user_role": strings.ToLower(user.Role),
	})
}

// Logout -> revokes the presented token until it expires
func (uc *UserController) Logout(c *gin.Context) {
	value, exists := c.Get("claims")
	claims, ok := value.(*utils.CustomClaims)
	if !exists || !ok || claims.ExpiresAt == nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("no token to revoke"))
		return
	}

	if err := uc.Blacklist.Revoke(c.Request.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
		utils.ErrorLogger.Printf("Failed to revoke token: %v", err)
		utils.RespondError(c, http.StatusServiceUnavailable, errors.New("logout failed, try again"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Logged out", nil)
}

// GetProfile -> the user behind the token
func (uc *UserController) GetProfile(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var user models.User
	if err := uc.DB.First(&user, id).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile data retrieved successfully", gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	})
}

// GetAllUsers -> admin only, enforced by the router
func (uc *UserController) GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := uc.DB.Order("id ASC").Find(&users).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All users", users)
}

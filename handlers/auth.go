package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"pharmacy-api/middleware"
	"pharmacy-api/models"
	"pharmacy-api/security"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new user account
func Register(db *gorm.DB, hasher security.PasswordHasher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		role := models.RoleCustomer
		if req.Role == string(models.RoleCourier) {
			role = models.RoleCourier
		}

		var existing models.User
		if err := db.Where("username = ? OR email = ?", req.Username, req.Email).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Username or email already registered"})
			return
		}

		hash, err := hasher.Hash(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to hash password"})
			return
		}

		user := models.User{
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: hash,
			Phone:        req.Phone,
			Role:         role,
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			if user.Role == models.RoleCourier {
				return tx.Create(&models.CourierProfile{UserID: user.ID}).Error
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create user"})
			return
		}

		token, err := middleware.GenerateToken(&user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to generate token"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Account created successfully",
			"token":   token,
			"user":    user,
		})
	}
}

// Login authenticates a user by username or email and returns a JWT
func Login(db *gorm.DB, hasher security.PasswordHasher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		login := req.Username
		if login == "" {
			login = req.Email
		}
		if login == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "username or email is required"})
			return
		}

		var user models.User
		if err := db.Where("username = ? OR email = ?", login, login).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid credentials"})
			return
		}
		if err := hasher.Compare(user.PasswordHash, req.Password); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid credentials"})
			return
		}

		now := time.Now()
		db.Model(&user).Updates(map[string]interface{}{
			"login_count": gorm.Expr("login_count + 1"),
			"last_login":  now,
		})
		user.LoginCount++
		user.LastLogin = &now

		token, err := middleware.GenerateToken(&user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to generate token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Login successful",
			"token":   token,
			"user":    user,
		})
	}
}

// GoogleLogin exchanges a verified Google ID token for a local account,
// creating one on first sight
func GoogleLogin(db *gorm.DB, verifier security.GoogleVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Credential string `json:"credential" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		identity, err := verifier.Verify(c.Request.Context(), req.Credential)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid Google credential"})
			return
		}

		var user models.User
		err = db.Where("google_id = ?", identity.Subject).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Link by email before creating a fresh account
			err = db.Where("email = ?", identity.Email).First(&user).Error
			if err == nil {
				db.Model(&user).Update("google_id", identity.Subject)
			} else if errors.Is(err, gorm.ErrRecordNotFound) {
				user = models.User{
					Username:     googleUsername(identity),
					Email:        identity.Email,
					PasswordHash: "-", // no local password for Google accounts
					Role:         models.RoleCustomer,
					Avatar:       identity.Picture,
					GoogleID:     identity.Subject,
				}
				if err := db.Create(&user).Error; err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create user"})
					return
				}
			}
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Database error"})
			return
		}

		now := time.Now()
		db.Model(&user).Updates(map[string]interface{}{
			"login_count": gorm.Expr("login_count + 1"),
			"last_login":  now,
		})

		token, err := middleware.GenerateToken(&user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to generate token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Login successful",
			"token":   token,
			"user":    user,
		})
	}
}

func googleUsername(identity *security.GoogleIdentity) string {
	if identity.Name != "" {
		return identity.Name
	}
	if at := strings.Index(identity.Email, "@"); at > 0 {
		return identity.Email[:at]
	}
	return identity.Email
}

// GetProfile returns the authenticated user's profile
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
	}
}

type UpdateProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// UpdateProfile changes username/email/phone, re-checking uniqueness
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		var req UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
			return
		}

		updates := map[string]interface{}{}
		if req.Username != "" && req.Username != user.Username {
			var other models.User
			if err := db.Where("username = ? AND id <> ?", req.Username, userID).First(&other).Error; err == nil {
				c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Username already taken"})
				return
			}
			updates["username"] = req.Username
		}
		if req.Email != "" && req.Email != user.Email {
			var other models.User
			if err := db.Where("email = ? AND id <> ?", req.Email, userID).First(&other).Error; err == nil {
				c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Email already taken"})
				return
			}
			updates["email"] = req.Email
		}
		if req.Phone != "" {
			updates["phone"] = req.Phone
		}

		if len(updates) > 0 {
			if err := db.Model(&user).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update profile"})
				return
			}
		}
		db.First(&user, userID)
		c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
	}
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// ChangePassword verifies the current password before storing a new hash
func ChangePassword(db *gorm.DB, hasher security.PasswordHasher) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		var req ChangePasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
			return
		}
		if err := hasher.Compare(user.PasswordHash, req.CurrentPassword); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Current password is incorrect"})
			return
		}

		hash, err := hasher.Hash(req.NewPassword)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to hash password"})
			return
		}
		if err := db.Model(&user).Update("password_hash", hash).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to change password"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password changed successfully"})
	}
}

// UpdateAvatar assigns a new avatar to the caller
func UpdateAvatar(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		var req struct {
			Avatar string `json:"avatar" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		if err := db.Model(&models.User{}).Where("id = ?", userID).Update("avatar", req.Avatar).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update avatar"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "avatar": req.Avatar})
	}
}

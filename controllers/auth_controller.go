package controllers

import (
	"net/http"
	"os"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/cafein/api-go/config"
	"github.com/cafein/api-go/models"
	"github.com/cafein/api-go/utils"
)

type AuthController struct {
	DB           *gorm.DB
	GoogleConfig *config.GoogleConfig
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{
		DB:           db,
		GoogleConfig: config.NewGoogleConfig(),
	}
}

func (ac *AuthController) Register(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		FullName string `json:"fullName" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password", "success": false})
		return
	}
	hashedPasswordStr := string(hashedPassword)

	var role models.Role
	if err := ac.DB.Where("name = ?", models.RoleUser).First(&role).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Default role missing", "success": false})
		return
	}

	user := models.User{
		Email:    input.Email,
		Password: &hashedPasswordStr,
		FullName: input.FullName,
		Provider: "email",
		RoleID:   role.ID,
	}

	if err := ac.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists", "success": false})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"user": gin.H{
			"id":       user.ID,
			"email":    user.Email,
			"fullName": user.FullName,
		},
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := ac.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if user.Password == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	ac.issueTokens(c, &user)
}

// issueTokens signs an access/refresh pair for the user and stores the
// refresh token.
func (ac *AuthController) issueTokens(c *gin.Context, user *models.User) {
	var role models.Role
	if err := ac.DB.First(&role, user.RoleID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch user role"})
		return
	}

	accessTokenBase := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    role.Name,
		"exp":     time.Now().Add(time.Hour * 24 * 7).Unix(), // Token expires in 7 days
	})

	refreshTokenBase := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID.String(),
		"exp":     time.Now().Add(time.Hour * 24 * 30).Unix(), // Refresh token expires in 30 days
	})

	accessToken, err := accessTokenBase.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token", "success": false})
		return
	}
	refreshToken, err := refreshTokenBase.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token", "success": false})
		return
	}

	ac.DB.Create(&models.RefreshToken{
		UserID:         user.ID,
		Token:          refreshToken,
		ExpirationDate: time.Now().Add(time.Hour * 24 * 30),
	})

	c.JSON(http.StatusOK, gin.H{
		"token_type":    "Bearer",
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user":          gin.H{"id": user.ID, "email": user.Email, "fullName": user.FullName, "avatar": user.AvatarURL, "role": role.Name},
		"success":       true,
	})
}

func (ac *AuthController) RefreshToken(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	var refreshToken models.RefreshToken
	if err := ac.DB.Where("token = ?", input.RefreshToken).First(&refreshToken).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token", "success": false})
		return
	}

	if time.Now().After(refreshToken.ExpirationDate) {
		// Delete the expired token
		ac.DB.Delete(&refreshToken)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token expired", "success": false})
		return
	}

	var user models.User
	if err := ac.DB.First(&user, "id = ?", refreshToken.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found", "success": false})
		return
	}

	// Rotate: the old token row is replaced by issueTokens' insert.
	ac.DB.Delete(&refreshToken)
	ac.issueTokens(c, &user)
}

func (ac *AuthController) Logout(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	var refreshToken models.RefreshToken
	result := ac.DB.Where("token = ?", input.RefreshToken).Delete(&refreshToken)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout", "success": false})
		return
	}

	// Token not found still logs out successfully
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully", "success": true})
}

func (ac *AuthController) GetProfile(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var dbUser models.User
	if err := ac.DB.First(&dbUser, "id = ?", user.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"id":        dbUser.ID,
			"email":     dbUser.Email,
			"fullName":  dbUser.FullName,
			"avatar":    dbUser.AvatarURL,
			"createdAt": dbUser.CreatedAt,
			"role":      user.Role,
		},
	})
}

func (ac *AuthController) UpdateProfile(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var input struct {
		FullName  string `json:"full_name"`
		AvatarURL string `json:"avatar_url"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var dbUser models.User
	if err := ac.DB.First(&dbUser, "id = ?", user.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	updates := map[string]interface{}{
		"full_name":  input.FullName,
		"avatar_url": input.AvatarURL,
	}

	if err := ac.DB.Model(&dbUser).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user": gin.H{
			"id":       dbUser.ID,
			"email":    dbUser.Email,
			"fullName": dbUser.FullName,
			"avatar":   dbUser.AvatarURL,
		},
	})
}

func (ac *AuthController) GoogleLogin(c *gin.Context) {
	if ac.GoogleConfig == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Google sign-in is not configured", "success": false})
		return
	}

	var input struct {
		IDToken     string `json:"id_token"`
		AccessToken string `json:"access_token"`
		Code        string `json:"code"`
		RedirectURI string `json:"redirect_uri"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	var userInfo *config.GoogleUserInfo
	var err error

	switch {
	case input.Code != "" && input.RedirectURI != "":
		token, exchangeErr := ac.GoogleConfig.ExchangeCode(c.Request.Context(), input.Code)
		if exchangeErr != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization code", "success": false})
			return
		}
		userInfo, err = ac.GoogleConfig.GetUserInfo(token.AccessToken)
	case input.IDToken != "":
		userInfo, err = ac.GoogleConfig.VerifyIDToken(input.IDToken)
	case input.AccessToken != "":
		userInfo, err = ac.GoogleConfig.GetUserInfo(input.AccessToken)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing Google credentials", "success": false})
		return
	}
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not verify Google account", "success": false})
		return
	}

	var user models.User
	err = ac.DB.Where("google_id = ?", userInfo.ID).Or("email = ?", userInfo.Email).First(&user).Error
	if err != nil {
		// First Google sign-in creates the account.
		var role models.Role
		if err := ac.DB.Where("name = ?", models.RoleUser).First(&role).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Default role missing", "success": false})
			return
		}
		user = models.User{
			Email:         userInfo.Email,
			FullName:      userInfo.Name,
			AvatarURL:     userInfo.Picture,
			GoogleID:      &userInfo.ID,
			Provider:      "google",
			RoleID:        role.ID,
			EmailVerified: userInfo.VerifiedEmail,
		}
		if err := ac.DB.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create user", "success": false})
			return
		}
	} else if user.GoogleID == nil {
		// Link the Google identity to the existing email account.
		ac.DB.Model(&user).Updates(map[string]interface{}{"google_id": userInfo.ID, "email_verified": true})
	}

	ac.issueTokens(c, &user)
}

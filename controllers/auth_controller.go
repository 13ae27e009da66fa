package controllers

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"smartbite/config"
	"smartbite/models"
	"smartbite/utils"
)

type AuthController struct {
	otpStore *utils.OTPStore
}

func NewAuthController(otpStore *utils.OTPStore) *AuthController {
	return &AuthController{otpStore: otpStore}
}

// Register godoc
// @Summary Register new user
// @Description Register a new customer account
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Register Request"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	var exists int
	config.DB.QueryRow(context.Background(), "SELECT COUNT(*) FROM users WHERE email=$1", req.Email).Scan(&exists)
	if exists > 0 {
		c.JSON(400, gin.H{"success": false, "message": "Email already exists"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Registration failed"})
		return
	}

	role := req.Role
	if role == "" {
		role = "customer"
	}

	userID := utils.NewID("usr")
	now := time.Now()
	_, err = config.DB.Exec(context.Background(),
		`INSERT INTO users (id, email, password, full_name, phone, role, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		userID, req.Email, hash, req.FullName, req.Phone, role, now, now)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Registration failed"})
		return
	}

	token, _ := utils.GenerateToken(userID, req.Email, role)

	c.JSON(201, gin.H{
		"success": true,
		"message": "Registration successful",
		"data": gin.H{
			"token": token,
			"user": gin.H{
				"id":        userID,
				"email":     req.Email,
				"role":      role,
				"full_name": req.FullName,
				"phone":     req.Phone,
			},
		},
	})
}

// Login godoc
// @Summary User login
// @Description Login with email and password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login Request"
// @Success 200 {object} models.Response
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	var user models.User
	err := config.DB.QueryRow(context.Background(),
		`SELECT id, email, password, full_name, phone, address, role FROM users WHERE email=$1`,
		req.Email).Scan(&user.ID, &user.Email, &user.Password, &user.FullName, &user.Phone, &user.Address, &user.Role)

	if err != nil || !utils.VerifyPassword(user.Password, req.Password) {
		c.JSON(401, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	token, _ := utils.GenerateToken(user.ID, user.Email, user.Role)

	c.JSON(200, gin.H{
		"success": true,
		"message": "Login successful",
		"data": gin.H{
			"token": token,
			"user":  user,
		},
	})
}

// GetProfile godoc
// @Summary Get user profile
// @Description Get current user profile
// @Tags Authentication
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /auth/profile [get]
func (ctrl *AuthController) GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var user models.User
	err := config.DB.QueryRow(context.Background(),
		`SELECT id, email, full_name, phone, address, role, created_at, updated_at
		 FROM users WHERE id=$1`, userID).
		Scan(&user.ID, &user.Email, &user.FullName, &user.Phone, &user.Address,
			&user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "User not found"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Profile retrieved", "data": user})
}

// UpdateProfile godoc
// @Summary Update profile
// @Description Update user profile information
// @Tags Authentication
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.UpdateProfileRequest true "Update Request"
// @Success 200 {object} models.Response
// @Router /auth/profile [patch]
func (ctrl *AuthController) UpdateProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	_, err := config.DB.Exec(context.Background(),
		"UPDATE users SET full_name=$1, phone=$2, address=$3, updated_at=$4 WHERE id=$5",
		req.FullName, req.Phone, req.Address, time.Now(), userID)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to update profile"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Profile updated"})
}

// ChangePassword godoc
// @Summary Change password
// @Description Change user password
// @Tags Authentication
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.ChangePasswordRequest true "Password Request"
// @Success 200 {object} models.Response
// @Router /auth/change-password [post]
func (ctrl *AuthController) ChangePassword(c *gin.Context) {
	userID := c.GetString("user_id")

	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	var currentHash string
	config.DB.QueryRow(context.Background(), "SELECT password FROM users WHERE id=$1", userID).Scan(&currentHash)

	if !utils.VerifyPassword(currentHash, req.OldPassword) {
		c.JSON(400, gin.H{"success": false, "message": "Invalid old password"})
		return
	}

	newHash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to change password"})
		return
	}

	config.DB.Exec(context.Background(), "UPDATE users SET password=$1, updated_at=$2 WHERE id=$3",
		newHash, time.Now(), userID)

	c.JSON(200, gin.H{"success": true, "message": "Password changed"})
}

// ForgotPassword godoc
// @Summary Request password recovery
// @Description Send a one-time password to the account email
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.ForgotPasswordRequest true "Forgot Password Request"
// @Success 200 {object} models.Response
// @Router /auth/forgot-password [post]
func (ctrl *AuthController) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Email is required"})
		return
	}

	var exists int
	config.DB.QueryRow(context.Background(), "SELECT COUNT(*) FROM users WHERE email=$1", req.Email).Scan(&exists)
	if exists == 0 {
		// Do not reveal whether the account exists.
		c.JSON(200, gin.H{"success": true, "message": "If the email is registered, an OTP has been sent"})
		return
	}

	otp, err := ctrl.otpStore.Issue(req.Email)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to generate OTP"})
		return
	}

	emailService, err := models.NewEmailService()
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Email service unavailable", "error": err.Error()})
		return
	}

	if err := emailService.SendOTPEmail(req.Email, otp); err != nil {
		log.Println("Failed to send OTP email:", err)
		c.JSON(500, gin.H{"success": false, "message": "Failed to send OTP email", "error": err.Error()})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "If the email is registered, an OTP has been sent"})
}

// ResetPassword godoc
// @Summary Reset password with OTP
// @Description Verify the OTP and set a new password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.ResetPasswordRequest true "Reset Password Request"
// @Success 200 {object} models.Response
// @Router /auth/reset-password [post]
func (ctrl *AuthController) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Email, OTP and new password are required"})
		return
	}

	if err := ctrl.otpStore.Verify(req.Email, req.OTP); err != nil {
		c.JSON(400, gin.H{"success": false, "message": err.Error()})
		return
	}

	newHash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to reset password"})
		return
	}

	tag, err := config.DB.Exec(context.Background(),
		"UPDATE users SET password=$1, updated_at=$2 WHERE email=$3",
		newHash, time.Now(), req.Email)
	if err != nil || tag.RowsAffected() == 0 {
		c.JSON(500, gin.H{"success": false, "message": "Failed to reset password"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Password reset successfully"})
}

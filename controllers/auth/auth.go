package authController

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hrms/config"
	"hrms/database"
	"hrms/middleware"
	"hrms/models"
	"hrms/utils"
)

func Signup(c *fiber.Ctx) error {
	var reqData models.User

	// Parse Request Body
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	// Check if email already exists
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	// Check if mobile already exists
	if reqData.Mobile != "" {
		if err := db.Where("mobile = ?", reqData.Mobile).First(&models.User{}).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Mobile number is already registered!", nil)
		}
	}

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		Name:            reqData.Name,
		Email:           reqData.Email,
		Mobile:          reqData.Mobile,
		Password:        string(hashedPassword),
		AppliedPosition: reqData.AppliedPosition,
		Department:      reqData.Department,
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to Signup user!", nil)
	}

	if err := SeedPermissions(db, newUser.Role, newUser.ID); err != nil {
		log.Printf("Error seeding permissions: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to assign permissions!", nil)
	}

	// Clean Response
	newUser.Password = ""

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", newUser)
}

// SeedPermissions seeds default permissions for a given role and user ID
func SeedPermissions(db *gorm.DB, role string, userID uint) error {
	permissions := getDefaultPermissions(role)

	var permissionRecords []models.Permission
	for _, p := range permissions {
		permissionRecords = append(permissionRecords, models.Permission{
			UserID:     userID,
			Role:       role,
			Permission: p,
		})
	}

	if err := db.Create(&permissionRecords).Error; err != nil {
		return err
	}

	return nil
}

// getDefaultPermissions returns the default permission strings per role
func getDefaultPermissions(role string) []string {
	if role == "HR" {
		return []string{
			"login",
			"view-status",
			"record-interview",
			"upload-offer-letter",
			"review-document",
			"hr-dashboard",
		}
	}
	return []string{
		"login",
		"view-status",
		"submit-profile",
		"schedule-interview",
		"upload-documents",
		"sign-offer",
		"generate-id-card",
	}
}

func Login(c *fiber.Ctx) error {
	reqData := new(struct {
		Mobile   string `json:"mobile"`
		Email    string `json:"email"`
		Password string `json:"password"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	var user models.User
	var result *gorm.DB

	// Retrieve user by email or mobile
	if reqData.Email != "" {
		result = database.Database.Db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user)
	} else {
		result = database.Database.Db.Where("mobile = ? AND is_deleted = ?", reqData.Mobile, false).First(&user)
	}

	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	if !user.IsEmailVerified {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Email not verified!", nil)
	}

	// Check if the user is blocked
	if user.IsBlocked && user.BlockedUntil != nil && user.BlockedUntil.After(time.Now()) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Your account is temporarily blocked. Try again later.", nil)
	}

	if user.LastFailedLogin != nil && time.Since(*user.LastFailedLogin) > 15*time.Minute {
		user.FailedLoginAttempts = 0
		user.LastFailedLogin = nil
		database.Database.Db.Save(&user)
	}

	// Validate password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		user.FailedLoginAttempts++
		now := time.Now()
		user.LastFailedLogin = &now

		// Block user after 3 failed attempts
		if user.FailedLoginAttempts >= 3 {
			user.IsBlocked = true

			unblockTime := now.Add(15 * time.Minute)
			user.BlockedUntil = &unblockTime
		}

		if err := database.Database.Db.Save(&user).Error; err != nil {
			log.Printf("Error updating failed login state: %v", err)
		}

		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	// Successful login resets the lockout counters
	user.FailedLoginAttempts = 0
	user.LastFailedLogin = nil
	user.IsBlocked = false
	user.BlockedUntil = nil
	user.LastLogin = time.Now()
	if err := database.Database.Db.Save(&user).Error; err != nil {
		log.Printf("Error updating last login: %v", err)
	}

	tracking := models.LoginTracking{
		UserID:    user.ID,
		IPAddress: c.IP(),
		Device:    c.Get("User-Agent"),
		Timestamp: time.Now(),
	}
	if err := database.Database.Db.Create(&tracking).Error; err != nil {
		log.Printf("Error recording login: %v", err)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email, user.Mobile)
	if err != nil {
		log.Printf("Error generating JWT: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to login!", nil)
	}

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"token": token,
		"user":  user,
	})
}

func SendOTP(c *fiber.Ctx) error {
	reqData := new(struct {
		Email  string `json:"email"`
		Mobile string `json:"mobile"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	var user models.User
	var result *gorm.DB
	if reqData.Email != "" {
		result = database.Database.Db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user)
	} else {
		result = database.Database.Db.Where("mobile = ? AND is_deleted = ?", reqData.Mobile, false).First(&user)
	}
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	code := utils.GenerateOTP()
	otp := models.OTP{
		UserID:      user.ID,
		Email:       reqData.Email,
		Mobile:      reqData.Mobile,
		Code:        code,
		ExpiresAt:   time.Now().Add(10 * time.Minute),
		Description: "verification",
	}
	if err := database.Database.Db.Create(&otp).Error; err != nil {
		log.Printf("Error saving OTP: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send OTP!", nil)
	}

	if reqData.Email != "" {
		if err := utils.SendOTPToEmail(reqData.Email, code); err != nil {
			log.Printf("Error sending OTP email: %v", err)
		}
	}
	if reqData.Mobile != "" {
		if err := utils.SendOTPToMobile(reqData.Mobile, code); err != nil {
			log.Printf("Error sending OTP SMS: %v", err)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP sent successfully.", nil)
}

func VerifyOTP(c *fiber.Ctx) error {
	reqData := new(struct {
		Email  string `json:"email"`
		Mobile string `json:"mobile"`
		Code   string `json:"code"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	var otp models.OTP
	query := database.Database.Db.Where("code = ? AND is_used = ? AND is_deleted = ?", reqData.Code, false, false)
	if reqData.Email != "" {
		query = query.Where("email = ?", reqData.Email)
	} else {
		query = query.Where("mobile = ?", reqData.Mobile)
	}
	if err := query.Order("created_at DESC").First(&otp).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid OTP!", nil)
	}

	if time.Now().After(otp.ExpiresAt) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "OTP has expired!", nil)
	}

	otp.IsUsed = true
	if err := database.Database.Db.Save(&otp).Error; err != nil {
		log.Printf("Error marking OTP used: %v", err)
	}

	updates := map[string]interface{}{}
	if reqData.Email != "" {
		updates["is_email_verified"] = true
	}
	if reqData.Mobile != "" {
		updates["is_mobile_verified"] = true
	}
	if err := database.Database.Db.Model(&models.User{}).Where("id = ?", otp.UserID).Updates(updates).Error; err != nil {
		log.Printf("Error updating verification flags: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify OTP!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Verification successful.", nil)
}

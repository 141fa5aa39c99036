package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authService "qcm_backend/internals/features/users/auth/service"
	userModel "qcm_backend/internals/features/users/user/model"
	helper "qcm_backend/internals/helpers"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

var validate = validator.New()

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// POST /api/auth/login
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	var user userModel.UserModel
	if err := ctl.DB.
		First(&user, "lower(user_email) = ? AND user_deleted_at IS NULL", req.Email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to look up user")
	}
	if !user.UserIsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated")
	}
	if !authService.ComparePassword(user.UserPassword, req.Password) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	role, err := authService.ResolveEffectiveRole(ctl.DB, user.UserID.String())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to resolve role")
	}

	token, err := authService.CreateAccessToken(&user, role)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})

	return helper.JsonOK(c, "Login successful", fiber.Map{
		"access_token": token,
		"user": fiber.Map{
			"user_id":   user.UserID,
			"user_name": user.UserName,
			"role":      role,
		},
	})
}

// GET /api/auth/me
func (ctl *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var user userModel.UserModel
	if err := ctl.DB.First(&user, "user_id = ? AND user_deleted_at IS NULL", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch user")
	}

	return helper.JsonOK(c, "ok", fiber.Map{
		"user_id":                user.UserID,
		"user_name":              user.UserName,
		"user_email":             user.UserEmail,
		"role":                   helper.GetUserRole(c),
		"moderator_class_codes":  helper.GetModeratorClassCodes(c),
	})
}

// POST /api/auth/logout
func (ctl *AuthController) Logout(c *fiber.Ctx) error {
	c.ClearCookie("access_token")
	return helper.JsonOK(c, "Logged out", nil)
}

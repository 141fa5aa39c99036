package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"qcm_backend/internals/constants"
	authService "qcm_backend/internals/features/users/auth/service"
	userModel "qcm_backend/internals/features/users/user/model"
	helper "qcm_backend/internals/helpers"
)

/* ================= Controller & Constructor ================= */

type UserAdminController struct {
	DB *gorm.DB
}

func NewUserAdminController(db *gorm.DB) *UserAdminController {
	return &UserAdminController{DB: db}
}

var validate = validator.New()

// requireAdmin re-checks the role server-side. The route group already gates
// on the admin role; destructive user operations verify it again here.
func requireAdmin(c *fiber.Ctx) error {
	if helper.GetUserRole(c) != constants.RoleAdmin {
		return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorAdmin("user management"))
	}
	return nil
}

/* ================= Handlers ================= */

// GET /api/a/users
func (ctl *UserAdminController) ListUsers(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 200)

	tx := ctl.DB.Model(&userModel.UserModel{}).
		Where("user_deleted_at IS NULL")

	if q := strings.TrimSpace(c.Query("search")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("(LOWER(user_name) LIKE ? OR LOWER(user_email) LIKE ?)", like, like)
	}

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count users")
	}

	var rows []userModel.UserModel
	if err := tx.Order("user_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch users")
	}

	return helper.JsonList(c, rows, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

type createUserRequest struct {
	UserName string `json:"user_name" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=admin moderator user"`
}

// POST /api/a/users
func (ctl *UserAdminController) CreateUser(c *fiber.Ctx) error {
	if err := requireAdmin(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	var req createUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	hashed, err := authService.HashPassword(req.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	adminID, _ := helper.GetUserIDFromToken(c)

	user := userModel.UserModel{
		UserName:     strings.TrimSpace(req.UserName),
		UserEmail:    req.Email,
		UserPassword: hashed,
		UserIsActive: true,
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			low := strings.ToLower(err.Error())
			if strings.Contains(low, "duplicate") || strings.Contains(low, "unique") {
				return fiber.NewError(fiber.StatusConflict, "Email is already registered")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create user")
		}
		role := req.Role
		if role == "" {
			role = constants.RoleUser
		}
		return tx.Create(&userModel.UserRoleModel{
			UserRoleUserID:     user.UserID,
			UserRoleRole:       role,
			UserRoleAssignedBy: &adminID,
		}).Error
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "User created", user)
}

type grantRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin moderator user"`
}

// POST /api/a/users/:id/roles
func (ctl *UserAdminController) GrantRole(c *fiber.Ctx) error {
	if err := requireAdmin(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	targetID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	var req grantRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	adminID, _ := helper.GetUserIDFromToken(c)

	var existing userModel.UserRoleModel
	findErr := ctl.DB.
		Where("user_role_user_id = ? AND user_role_role = ?", targetID, req.Role).
		Take(&existing).Error
	if findErr == nil {
		return helper.JsonOK(c, "Role already granted", existing)
	}
	if !errors.Is(findErr, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check role")
	}

	row := userModel.UserRoleModel{
		UserRoleUserID:     targetID,
		UserRoleRole:       req.Role,
		UserRoleAssignedBy: &adminID,
	}
	if err := ctl.DB.Create(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to grant role")
	}
	return helper.JsonCreated(c, "Role granted", row)
}

// DELETE /api/a/users/:id/roles/:role
func (ctl *UserAdminController) RevokeRole(c *fiber.Ctx) error {
	if err := requireAdmin(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	targetID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user ID")
	}
	role := strings.ToLower(strings.TrimSpace(c.Params("role")))

	res := ctl.DB.
		Where("user_role_user_id = ? AND user_role_role = ?", targetID, role).
		Delete(&userModel.UserRoleModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to revoke role")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Role not found for this user")
	}
	return helper.JsonDeleted(c, "Role revoked", fiber.Map{"user_id": targetID, "role": role})
}

type assignClassRequest struct {
	ClassCode string `json:"class_code" validate:"required,min=2,max=20"`
}

// POST /api/a/users/:id/classes
func (ctl *UserAdminController) AssignModeratorClass(c *fiber.Ctx) error {
	if err := requireAdmin(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	targetID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	var req assignClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.ClassCode = strings.ToUpper(strings.TrimSpace(req.ClassCode))
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	var existing userModel.ModeratorClassModel
	findErr := ctl.DB.
		Where("moderator_class_user_id = ? AND moderator_class_code = ?", targetID, req.ClassCode).
		Take(&existing).Error
	if findErr == nil {
		return helper.JsonOK(c, "Class already assigned", existing)
	}
	if !errors.Is(findErr, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check assignment")
	}

	row := userModel.ModeratorClassModel{
		ModeratorClassUserID: targetID,
		ModeratorClassCode:   req.ClassCode,
	}
	if err := ctl.DB.Create(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to assign class")
	}
	return helper.JsonCreated(c, "Class assigned to moderator", row)
}

// DELETE /api/a/users/:id/classes/:code
func (ctl *UserAdminController) RemoveModeratorClass(c *fiber.Ctx) error {
	if err := requireAdmin(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	targetID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user ID")
	}
	code := strings.ToUpper(strings.TrimSpace(c.Params("code")))

	res := ctl.DB.
		Where("moderator_class_user_id = ? AND moderator_class_code = ?", targetID, code).
		Delete(&userModel.ModeratorClassModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to remove assignment")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Assignment not found")
	}
	return helper.JsonDeleted(c, "Class assignment removed", fiber.Map{"user_id": targetID, "class_code": code})
}

type resetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// POST /api/a/users/:id/reset-password
func (ctl *UserAdminController) ResetPassword(c *fiber.Ctx) error {
	if err := requireAdmin(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	targetID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	hashed, err := authService.HashPassword(req.NewPassword)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	res := ctl.DB.Model(&userModel.UserModel{}).
		Where("user_id = ? AND user_deleted_at IS NULL", targetID).
		Update("user_password", hashed)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to reset password")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}

	return helper.JsonUpdated(c, "Password reset successfully", nil)
}

// DELETE /api/a/users/:id
// Soft-deletes the user and removes role rows and moderator scopes.
func (ctl *UserAdminController) DeleteUser(c *fiber.Ctx) error {
	if err := requireAdmin(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	targetID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	adminID, _ := helper.GetUserIDFromToken(c)
	if adminID == targetID {
		return helper.JsonError(c, fiber.StatusBadRequest, "You cannot delete your own account")
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		res := tx.Model(&userModel.UserModel{}).
			Where("user_id = ? AND user_deleted_at IS NULL", targetID).
			Updates(map[string]any{
				"user_deleted_at": now,
				"user_is_active":  false,
				"user_updated_at": now,
			})
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete user")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		if err := tx.Where("user_role_user_id = ?", targetID).
			Delete(&userModel.UserRoleModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to remove roles")
		}
		if err := tx.Where("moderator_class_user_id = ?", targetID).
			Delete(&userModel.ModeratorClassModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to remove class scopes")
		}
		return nil
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonDeleted(c, "User deleted", fiber.Map{"user_id": targetID})
}

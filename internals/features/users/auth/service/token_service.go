package service

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"qcm_backend/internals/configs"
	"qcm_backend/internals/constants"
	userModel "qcm_backend/internals/features/users/user/model"
)

const accessTTLDefault = 24 * time.Hour

func getJWTSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET is not set")
	}
	return secret, nil
}

// CreateAccessToken signs an HS256 token carrying user_id, user_name and role.
func CreateAccessToken(user *userModel.UserModel, role string) (string, error) {
	secret, err := getJWTSecret()
	if err != nil {
		return "", err
	}
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"user_id":   user.UserID.String(),
		"user_name": user.UserName,
		"role":      role,
		"iat":       now.Unix(),
		"exp":       now.Add(accessTTLDefault).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ResolveEffectiveRole picks the strongest role a user holds; defaults to
// "user" when no role rows exist.
func ResolveEffectiveRole(db *gorm.DB, userID string) (string, error) {
	var roles []string
	if err := db.Model(&userModel.UserRoleModel{}).
		Where("user_role_user_id = ?", userID).
		Pluck("user_role_role", &roles).Error; err != nil {
		return "", err
	}
	effective := constants.RoleUser
	for _, r := range roles {
		if constants.RolePriority(r) > constants.RolePriority(effective) {
			effective = r
		}
	}
	return effective, nil
}

package users

import (
	"log"
	"os"

	"gorm.io/gorm"

	"qcm_backend/internals/constants"
	authService "qcm_backend/internals/features/users/auth/service"
	userModel "qcm_backend/internals/features/users/user/model"
)

// SeedAdminUser creates the bootstrap admin account when no admin exists.
// Credentials come from SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD.
func SeedAdminUser(db *gorm.DB) {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ℹ️ SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	var count int64
	if err := db.Model(&userModel.UserRoleModel{}).
		Where("user_role_role = ?", constants.RoleAdmin).
		Count(&count).Error; err != nil {
		log.Printf("❌ Failed to check existing admins: %v", err)
		return
	}
	if count > 0 {
		log.Println("ℹ️ An admin already exists, skipping admin seed")
		return
	}

	hash, err := authService.HashPassword(password)
	if err != nil {
		log.Printf("❌ Failed to hash admin password: %v", err)
		return
	}

	tx := db.Begin()
	user := userModel.UserModel{
		UserName:     "admin",
		UserEmail:    email,
		UserPassword: hash,
		UserIsActive: true,
	}
	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		log.Printf("❌ Failed to create admin user: %v", err)
		return
	}
	role := userModel.UserRoleModel{
		UserRoleUserID: user.UserID,
		UserRoleRole:   constants.RoleAdmin,
	}
	if err := tx.Create(&role).Error; err != nil {
		tx.Rollback()
		log.Printf("❌ Failed to grant admin role: %v", err)
		return
	}
	if err := tx.Commit().Error; err != nil {
		log.Printf("❌ Failed to commit admin seed: %v", err)
		return
	}

	log.Printf("✅ Admin user '%s' created", email)
}

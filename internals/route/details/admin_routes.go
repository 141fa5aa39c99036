// file: internals/route/details/admin_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	adminController "qcm_backend/internals/features/users/admin/controller"
)

// AdminRoutes wires user and role management under the admin group.
func AdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := adminController.NewUserAdminController(db)

	admin.Get("/users", ctl.ListUsers)
	admin.Post("/users", ctl.CreateUser)
	admin.Delete("/users/:id", ctl.DeleteUser)
	admin.Post("/users/:id/reset-password", ctl.ResetPassword)

	admin.Post("/users/:id/roles", ctl.GrantRole)
	admin.Delete("/users/:id/roles/:role", ctl.RevokeRole)

	admin.Post("/users/:id/classes", ctl.AssignModeratorClass)
	admin.Delete("/users/:id/classes/:code", ctl.RemoveModeratorClass)
}

// file: internals/route/details/auth_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "qcm_backend/internals/features/users/auth/controller"
	"qcm_backend/internals/middlewares"
	authMiddleware "qcm_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctl := authController.NewAuthController(db)

	auth := app.Group("/api/auth")
	auth.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
	auth.Post("/logout", ctl.Logout)
	auth.Get("/me", authMiddleware.AuthMiddleware(db), ctl.Me)
}

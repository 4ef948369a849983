package routes

import (
	"time"

	"github.com/foundlyhq/foundly-backend/internal/config"
	"github.com/foundlyhq/foundly-backend/internal/handlers"
	"github.com/foundlyhq/foundly-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	itemHandler *handlers.ItemHandler,
	rewardHandler *handlers.RewardHandler,
	adminHandler *handlers.AdminHandler,
) {
	// Uploaded images and payment proofs.
	app.Static("/uploads", cfg.UploadDir)

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", handlers.Health)

	// Auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Protected auth routes sit outside the /auth limiter on purpose.
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Delete("/auth/account", middleware.JWTProtected(cfg), authHandler.DeleteAccount)

	// Profile (protected)
	profile := api.Group("/profile", middleware.JWTProtected(cfg))
	profile.Get("/", profileHandler.Get)
	profile.Put("/", profileHandler.Update)
	profile.Post("/password", profileHandler.ChangePassword)
	profile.Post("/picture", profileHandler.UploadPicture)
	profile.Get("/payment", profileHandler.GetPaymentProfile)
	profile.Put("/payment", profileHandler.SavePaymentProfile)

	// Items — browsing is public, the detail view upgrades with a token.
	api.Get("/items", itemHandler.List)
	api.Get("/items/mine", middleware.JWTProtected(cfg), itemHandler.MyItems)
	api.Get("/items/:id", middleware.OptionalJWT(cfg), itemHandler.Get)
	api.Post("/items", middleware.JWTProtected(cfg), itemHandler.Create)
	api.Put("/items/:id", middleware.JWTProtected(cfg), itemHandler.Update)
	api.Delete("/items/:id", middleware.JWTProtected(cfg), itemHandler.Delete)
	api.Post("/ai/enhance", middleware.JWTProtected(cfg), itemHandler.Enhance)

	// Reward settlement workflow (all protected)
	workflow := api.Group("/items/:id", middleware.JWTProtected(cfg))
	workflow.Post("/found", rewardHandler.MarkFound)
	workflow.Post("/owner-found", rewardHandler.OwnerMarkFound)
	workflow.Post("/confirm-receipt", rewardHandler.ConfirmReceipt)
	workflow.Post("/claim", rewardHandler.ClaimReward)
	workflow.Post("/pay", rewardHandler.PayReward)
	workflow.Post("/reject-claim", rewardHandler.RejectClaim)
	workflow.Post("/confirm-reward", rewardHandler.ConfirmPayment)
	workflow.Post("/settle", rewardHandler.Settle)
	workflow.Post("/status", rewardHandler.ChangeStatus)

	// Admin panel (protected + admin required)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Get("/stats", adminHandler.Stats)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Put("/users/:id/active", adminHandler.SetUserActive)
	admin.Put("/users/:id/role", adminHandler.SetUserRole)
	admin.Delete("/users/:id", adminHandler.DeleteUser)
	admin.Get("/items", adminHandler.ListItems)
	admin.Delete("/items/:id", adminHandler.DeleteItem)
}

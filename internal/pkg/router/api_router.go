package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/learnhub-io/learnhub-backend/app/controllers"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/middleware"
)

// ApiRouter wires the HTTP surface to the controllers.
type ApiRouter struct {
	Auth    *controllers.AuthController
	Content *controllers.ContentController
	Payment *controllers.PaymentController
	Admin   *controllers.AdminController
}

func NewApiRouter(auth *controllers.AuthController, content *controllers.ContentController, payment *controllers.PaymentController, admin *controllers.AdminController) *ApiRouter {
	return &ApiRouter{Auth: auth, Content: content, Payment: payment, Admin: admin}
}

func (h *ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	v1 := api.Group("/v1")

	v1.Post("/auth/register", h.Auth.HandleRegister)
	v1.Post("/auth/login", h.Auth.HandleLogin)
	v1.Post("/users/fcm-token", middleware.RequireAuth, h.Auth.HandleRegisterFCMToken)

	v1.Post("/content/verify-access", h.Content.HandleVerifyAccess)
	v1.Get("/content/:type/:id", h.Content.HandleGetContent)

	v1.Post("/payments/create-order", h.Payment.HandleCreateOrder)
	v1.Post("/payments/insert-payment", h.Payment.HandleInsertPayment)
	v1.Get("/payments/plans", h.Payment.HandleListPlans)
	v1.Get("/payments/history", middleware.RequireAuth, h.Payment.HandleListPayments)

	admin := v1.Group("/admin", middleware.RequireAuth, middleware.RequireAdmin)
	admin.Post("/give-away-user", h.Admin.HandleGiveAway)
	admin.Get("/content-types", h.Admin.HandleListContentTypes)
	admin.Post("/plans", h.Admin.HandleCreatePlan)
	admin.Put("/plans/:id", h.Admin.HandleUpdatePlan)
	admin.Delete("/plans/:id", h.Admin.HandleDeletePlan)
}

package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/learnhub-io/learnhub-backend/app/controllers"
	"github.com/learnhub-io/learnhub-backend/app/repository"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/cache"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/catalog"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/database"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/entitlements"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/env"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/giveaway"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/notify"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/payments"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/router"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()

	db := database.GetDB()
	repos := repository.NewRepositories(db)
	repository.SetGlobalFactory(repository.NewFactory(db))

	// The closed content-type enum seeds the live catalog; admins can retire
	// entries afterwards without a deploy.
	if err := repos.ContentType.Seed(catalog.AllNames()); err != nil {
		log.Fatalf("seeding content types: %v", err)
	}

	notifier := notify.Setup(context.Background(), repos.FCMToken)

	resolver := entitlements.NewResolverFromDB(db)
	paymentService := payments.NewServiceFromDB(db)
	giveawayService := giveaway.NewServiceFromDB(db, notifier)

	authController := controllers.NewAuthController(repos.User, repos.FCMToken)
	contentController := controllers.NewContentController(resolver, repos.Content)
	paymentController := controllers.NewPaymentController(paymentService, repos.Plan, repos.Payment)
	adminController := controllers.NewAdminController(giveawayService, repos.Plan, repos.ContentType)

	app := fiber.New(fiber.Config{
		AppName: "learnhub-backend",
	})

	app.Use(recover.New(), logger.New())

	router.InstallRouter(app, router.NewApiRouter(authController, contentController, paymentController, adminController))

	return app
}

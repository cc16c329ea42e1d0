package api

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/template/html/v2"
	"github.com/starkteam/stark/config"
	"github.com/starkteam/stark/infra/queue"
	"github.com/starkteam/stark/internal/api/rest/handlers"
	"github.com/starkteam/stark/internal/domain"
	"github.com/starkteam/stark/internal/repository"
	"github.com/starkteam/stark/internal/services"
	"github.com/starkteam/stark/pkg/storage"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func StartServer(cfg config.Config) {
	engine := html.New(cfg.TemplateDir, ".html")

	app := fiber.New(fiber.Config{
		Views:       engine,
		ViewsLayout: "layouts/main",
	})
	app.Use(logger.New())
	app.Static("/static", cfg.StaticDir)

	store := session.New(session.Config{
		CookieHTTPOnly: true,
	})

	// ---------- User store ----------
	users := newUserRepository(cfg)
	pending := repository.NewPendingRepository()

	// ---------- Infra ----------
	uploader, err := storage.NewDiskUploader(cfg.StaticDir)
	if err != nil {
		log.Fatalf("upload dir error: %v", err)
	}
	producer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)
	mailer := services.NewMailService(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.EmailUser,
		cfg.EmailPass,
		cfg.MailFromName,
	)

	// ---------- Services ----------
	authSvc := services.NewAuthService(users, pending, mailer, producer)
	profileSvc := services.NewProfileService(users, uploader, producer)

	// ---------- Handler ----------
	webHandler := handlers.NewWebHandler(authSvc, profileSvc, store)
	webHandler.SetupRoutes(app)

	// ---------- Listen ----------
	addr := cfg.ServerPort
	log.Println("listening on", addr)
	log.Fatal(app.Listen(addr))
}

// newUserRepository picks the durable store when a DSN is configured
// and falls back to the in-memory one otherwise, so the same flows run
// in both deployments.
func newUserRepository(cfg config.Config) repository.UserRepository {
	if cfg.DatabaseDSN == "" {
		log.Println("DATABASE_DSN not set, using in-memory user store")
		return repository.NewMemoryUserRepository()
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	if err := db.AutoMigrate(&domain.User{}); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	log.Println("migration successful")

	return repository.NewUserRepository(db)
}

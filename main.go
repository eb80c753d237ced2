package main

import (
	"context"
	"log"
	"net/http"
	"net/smtp"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RomeoThePickleTec/task-management-system-sub001/config"
	"github.com/RomeoThePickleTec/task-management-system-sub001/controllers"
	"github.com/RomeoThePickleTec/task-management-system-sub001/middleware"
	"github.com/RomeoThePickleTec/task-management-system-sub001/routes"
	"github.com/RomeoThePickleTec/task-management-system-sub001/services"
	"github.com/RomeoThePickleTec/task-management-system-sub001/utils"
)

func main() {
	if err := config.InitLogger(); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer config.Logger.Sync()

	conf, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := config.InitDB(conf); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	if err := config.InitRedis(conf); err != nil {
		log.Fatalf("failed to initialize redis: %v", err)
	}

	utils.InitJWT(conf.JWTSecret)

	// Collaborators are constructed once here and live for the process
	// lifetime; everything below receives them explicitly.
	store := services.NewGormUserStore(config.DB, config.Logger)
	provider := services.NewFirebaseClient(conf.FirebaseAPIKey)
	reconciler := services.NewReconciler(store, provider, config.Logger)
	verifier := utils.NewTokenVerifier(conf.FirebaseProjectID, config.RedisClient)
	notifier := buildNotifier(conf)

	var assistant *services.Assistant
	if conf.AssistantAPIKey != "" {
		client, err := services.NewAssistantClient(conf.AssistantAPIKey, conf.AssistantAPIEndpoint, conf.AssistantModel)
		if err != nil {
			log.Fatalf("failed to initialize assistant client: %v", err)
		}
		assistant = services.NewAssistant(client)
	}

	if conf.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	middleware.SetupMiddleware(r)

	routes.RegisterRoutes(r, routes.Deps{
		Auth:  controllers.NewAuthController(verifier, reconciler, store, provider),
		Users: controllers.NewUserController(store, reconciler),
		Tasks: controllers.NewTaskController(notifier, assistant, store),
	})

	srv := &http.Server{
		Addr:    ":" + conf.ServerPort,
		Handler: r,
	}

	go func() {
		log.Printf("starting server on port %s", conf.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}

	log.Println("server stopped")
}

// buildNotifier picks the notification channel from configuration. The task
// hierarchy never chooses a channel itself.
func buildNotifier(conf config.Config) services.Notifier {
	switch conf.NotifyChannel {
	case "email":
		var auth smtp.Auth
		if conf.NotifySMTPUser != "" {
			host, _, _ := strings.Cut(conf.NotifySMTPAddr, ":")
			auth = smtp.PlainAuth("", conf.NotifySMTPUser, conf.NotifySMTPPassword, host)
		}
		return services.NewEmailNotifier(conf.NotifySMTPAddr, conf.NotifySMTPFrom, auth)
	case "webhook":
		return services.NewWebhookNotifier(conf.NotifyWebhookURL)
	default:
		return nil
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	firebase "firebase.google.com/go/v4"

	"wisewallet/backend/api"
	"wisewallet/backend/config"
	"wisewallet/backend/database"
	"wisewallet/backend/events"
	"wisewallet/backend/firestoredb"
	"wisewallet/backend/handlers"
	"wisewallet/backend/logger"
	"wisewallet/backend/migrations"
	"wisewallet/backend/security"
	"wisewallet/backend/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog := logger.New(logger.Config{
		Level: logger.ParseLevel(cfg.LogLevel),
		JSON:  cfg.IsProduction(),
	})
	slog.SetDefault(appLog.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLog); err != nil {
		appLog.Error("Server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, appLog *logger.Logger) error {
	storageLog := appLog.WithComponent(logger.ComponentStorage)
	appLog.Info("Starting wisewallet",
		"env", cfg.Env,
		"store", cfg.StoreBackend,
		"identity", cfg.IdentityProvider)

	tokens, err := security.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.Issuer)
	if err != nil {
		return err
	}

	var (
		profiles services.ProfileStore
		expenses services.ExpenseRepository
		identity services.IdentityProvider
		health   handlers.Pinger
		app      *firebase.App
	)

	if cfg.StoreBackend == config.BackendFirestore || cfg.IdentityProvider == config.IdentityFirebase {
		app, err = services.NewFirebaseApp(ctx, cfg.Firebase)
		if err != nil {
			return err
		}
	}

	switch cfg.StoreBackend {
	case config.BackendSQL:
		db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()

		if err := migrations.RunMigrations(db); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		storageLog.Info("Database ready", "driver", db.Driver)

		profiles = database.NewProfileRepository(db)
		expenses = database.NewExpenseRepository(db)
		health = db
		if cfg.IdentityProvider == config.IdentityLocal {
			identity = services.NewLocalIdentity(database.NewCredentialRepository(db), cfg.Auth.BcryptCost)
		}

	case config.BackendFirestore:
		client, err := app.Firestore(ctx)
		if err != nil {
			return fmt.Errorf("error initializing firestore: %w", err)
		}
		defer client.Close()
		storageLog.Info("Firestore ready", "project", cfg.Firebase.ProjectID)

		profiles = firestoredb.NewProfileRepository(client)
		expenses = firestoredb.NewExpenseRepository(client)
	}

	if cfg.IdentityProvider == config.IdentityFirebase {
		identity, err = services.NewFirebaseIdentity(ctx, app, cfg.Firebase.WebAPIKey)
		if err != nil {
			return err
		}
	}

	var publisher services.EventPublisher = events.NopPublisher{}
	if cfg.AMQP.URL != "" {
		p, err := events.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.Queue, appLog)
		if err != nil {
			return fmt.Errorf("connect to AMQP: %w", err)
		}
		defer p.Close()
		publisher = p
		appLog.Info("Publishing expense events", "exchange", cfg.AMQP.Exchange, "queue", cfg.AMQP.Queue)
	}

	authService := services.NewAuthService(identity, profiles, tokens, appLog)
	expenseService := services.NewExpenseService(expenses, publisher, appLog)

	srv := api.NewServer(api.Options{
		Addr:            ":" + cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		CORSOrigins:     cfg.Server.CORSOrigins,
		Development:     !cfg.IsProduction(),
		ShowErrorDetail: !cfg.IsProduction(),
	}, authService, expenseService, health, appLog)

	return srv.Run(ctx)
}

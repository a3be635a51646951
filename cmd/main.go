package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"user_management/internal/handlers"
	"user_management/internal/hasher"
	"user_management/internal/logger"
	"user_management/internal/repository"
	"user_management/internal/server"
	"user_management/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// load config.yml first so the logger level can come from it
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(viper.GetString("log.level"))

	if viper.GetBool("debug") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// open DB
	db, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(db)
	passwordHasher := hasher.NewBcryptHasher(viper.GetInt("bcrypt.cost"))
	services := service.NewService(repos, passwordHasher)
	apiHandler := handlers.NewHandler(services, log, viper.GetBool("debug"))

	if viper.GetBool("db.seed") {
		seedSampleUsers(context.Background(), services, log)
	}

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")

	viper.SetDefault("port", "8080")
	viper.SetDefault("db.path", "users.db")
	viper.SetDefault("db.seed", false)
	viper.SetDefault("log.level", logger.InfoLevel)
	viper.SetDefault("bcrypt.cost", bcrypt.DefaultCost)
	viper.SetDefault("debug", false)

	err := viper.ReadInConfig()
	// A missing config file is fine; the defaults above carry the process.
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	return err
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "users.db")
		dbPath = "users.db"
	}
	return repository.InitDB(dbPath)
}

// seedSampleUsers inserts the well-known sample accounts, skipping any that
// already exist. Runs through the service so passwords are hashed the same
// way as registered ones.
func seedSampleUsers(ctx context.Context, services *service.Service, log *logger.Logger) {
	samples := []struct {
		name, email, password string
	}{
		{"Alice Smith", "alice@example.com", "password123"},
		{"Bob Johnson", "bob@example.com", "securepass"},
		{"Charlie Brown", "charlie@example.com", "mysecret"},
	}

	for _, s := range samples {
		id, err := services.Users.Register(ctx, s.name, s.email, s.password)
		switch {
		case err == nil:
			log.Infow("seeded sample user", "name", s.name, "id", id)
		case errors.Is(err, service.ErrNameConflict) || errors.Is(err, service.ErrEmailConflict):
			log.Infow("sample user already present", "name", s.name)
		default:
			log.Errorw("failed to seed sample user", "name", s.name, "err", err)
		}
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}

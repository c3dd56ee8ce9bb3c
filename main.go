package main

import (
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/misionvictoriosa/site-backend/api"
	"github.com/misionvictoriosa/site-backend/config"
	"github.com/misionvictoriosa/site-backend/database"
	"github.com/misionvictoriosa/site-backend/models"
)

func main() {
	log.Info().Msg("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("Error loading .env file")
	}

	c := config.New()

	connStr := config.GetString(c, config.KeyDatabaseURL, "")
	if connStr == "" {
		log.Fatal().Msgf("%s is required", config.KeyDatabaseURL)
	}

	newLogger := logger.New(
		stdlog.New(os.Stdout, "\r\n", stdlog.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	// Test database connection
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		log.Fatal().Err(err).Msg("Error testing database connection")
	}

	currentDB := database.New(db)

	if err := bootstrap(currentDB, c); err != nil {
		log.Fatal().Err(err).Msg("Error initializing database")
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Error().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// bootstrap ensures the schema exists and the admin account is present,
// creating it with the configured default password when absent.
func bootstrap(db database.Database, c map[string]string) error {
	if err := db.Migrate(); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	adminPassword := config.GetString(c, config.KeyAdminPassword, config.DefaultAdminPassword)
	hash, err := models.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	created, err := db.UserRepo().EnsureAdmin(hash)
	if err != nil {
		return fmt.Errorf("ensuring admin account: %w", err)
	}
	if created {
		log.Info().Str("username", models.AdminUsername).Msg("Admin account created with default password; rotate it before going live")
	} else {
		log.Info().Msg("Admin account already exists")
	}
	return nil
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}

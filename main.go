package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rpupo63/portfolio-site-backend/api"
	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/models"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	var db *gorm.DB
	var err error

	dbType := config.GetString(c, "DB_TYPE", "sqlite")
	fmt.Printf("DB_TYPE: %s\n", dbType)
	switch dbType {
	case "postgres":
		connStr := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			config.GetString(c, "POSTGRES_HOST", "localhost"),
			config.GetString(c, "POSTGRES_USER", "portfolio"),
			config.GetString(c, "POSTGRES_PASSWORD", ""),
			config.GetString(c, "POSTGRES_DB", "portfolio"),
			config.GetString(c, "POSTGRES_PORT", "5432"),
			config.GetString(c, "POSTGRES_SSLMODE", "require"),
		)
		fmt.Println("Connecting to Postgres database...")
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  connStr,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			Logger: newLogger,
		})
	case "sqlite":
		path := config.GetString(c, "SQLITE_PATH", "portfolio.db")
		fmt.Printf("Opening SQLite database at %s...\n", path)
		db, err = gorm.Open(sqlite.Open(path), &gorm.Config{
			Logger: newLogger,
		})
	default:
		fmt.Println("Unsupported DB_TYPE. Exiting...")
		os.Exit(1)
	}
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	if err := database.Migrate(db); err != nil {
		fmt.Printf("Error migrating database: %v\n", err)
		os.Exit(1)
	}

	currentDB := database.New(db)

	if config.GetBool(c, "SEED_ADMIN", false) {
		if err := seedAdmin(currentDB, c); err != nil {
			fmt.Printf("Error seeding admin user: %v\n", err)
			os.Exit(1)
		}
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// seedAdmin creates a default admin credential when no user exists yet, so a
// fresh install can log in without a manual setup step.
func seedAdmin(db database.Database, c map[string]string) error {
	count, err := db.UserRepo().Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin := models.User{
		Username: config.GetString(c, "SEED_ADMIN_USERNAME", "admin"),
		Email:    config.GetString(c, "SEED_ADMIN_EMAIL", "admin@localhost"),
		Password: config.GetString(c, "SEED_ADMIN_PASSWORD", "admin123"),
		Role:     "admin",
	}
	if err := db.UserRepo().Add(&admin); err != nil {
		return err
	}
	fmt.Printf("Seeded default admin user %q\n", admin.Username)
	return nil
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}

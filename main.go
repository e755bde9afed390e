package main

import (
	"database/sql"
	"log"
	"os"
	"strings"
	"time"

	"fintrack-api/handlers"
	"fintrack-api/initializers"
	"fintrack-api/middleware"
	"fintrack-api/repository"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if len(jwtSecret) < 32 {
		log.Fatal("JWT_SECRET must be set and at least 32 characters")
	}

	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("postgres", dbURL)
		if err == nil {
			err = db.Ping()
			if err == nil {
				break
			}
		}
		log.Printf("DB connection failed: %v, retrying in 2s...", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		log.Fatal("Could not connect to database:", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatal("Migration driver error:", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		log.Fatal("Migration init error:", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal("Migration failed:", err)
	}

	if err := initializers.InitStorage(); err != nil {
		log.Fatal("Failed to initialize receipt storage:", err)
	}

	usersRepo := repository.NewUsersRepository(db)
	expensesRepo := repository.NewExpensesRepository(db)
	budgetsRepo := repository.NewBudgetsRepository(db)
	receiptsRepo := repository.NewReceiptsRepository(db)

	if os.Getenv("GIN_MODE") == "release" || strings.ToLower(os.Getenv("APP_ENV")) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(gin.Recovery())

	if trustedProxies := os.Getenv("TRUSTED_PROXIES"); trustedProxies != "" {
		parts := strings.Split(trustedProxies, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if err := r.SetTrustedProxies(parts); err != nil {
			log.Fatalf("Invalid TRUSTED_PROXIES: %v", err)
		}
	} else {
		// Loopback only unless configured otherwise.
		_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})
	}

	r.Use(middleware.CORS())
	r.Use(middleware.RateLimit())

	authHandler := handlers.NewAuthHandler(usersRepo, jwtSecret)
	expensesHandler := handlers.NewExpensesHandler(expensesRepo)
	budgetsHandler := handlers.NewBudgetsHandler(budgetsRepo)
	receiptsHandler := handlers.NewReceiptsHandler(receiptsRepo, expensesRepo)

	r.GET("/health", handlers.HealthCheck)

	authPublic := r.Group("/api/auth", middleware.RateLimitAuth())
	authPublic.POST("/register", authHandler.Register)
	authPublic.POST("/login", authHandler.Login)
	authPublic.POST("/logout", authHandler.Logout)

	auth := r.Group("/api", handlers.AuthMiddleware(jwtSecret))
	{
		auth.DELETE("/auth/account", authHandler.DeleteAccount)

		auth.POST("/expenses", expensesHandler.CreateExpense)
		auth.GET("/expenses", expensesHandler.GetExpenses)
		auth.GET("/expenses/:id", expensesHandler.GetExpense)
		auth.GET("/expenses/date/:date", expensesHandler.GetExpensesByDate)
		auth.GET("/expenses/month/:month", expensesHandler.GetExpensesByMonth)
		auth.PUT("/expenses/:id", expensesHandler.UpdateExpense)
		auth.DELETE("/expenses/:id", expensesHandler.DeleteExpense)

		auth.POST("/budgets", budgetsHandler.CreateBudget)
		auth.GET("/budgets/:month", budgetsHandler.GetBudgetByMonth)
		auth.PUT("/budgets/:id", budgetsHandler.UpdateBudget)

		auth.POST("/expenses/:id/receipt", receiptsHandler.UploadReceipt)
		auth.GET("/receipts/:id", receiptsHandler.GetReceipt)
	}

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	if err := r.Run(addr); err != nil {
		log.Fatal("Server error:", err)
	}
}

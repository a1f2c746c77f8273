package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	http_adapter "github.com/namomi/Account/internal/app/account/adapter/in/http"
	memory_adapter "github.com/namomi/Account/internal/app/account/adapter/out/memory"
	mysql_adapter "github.com/namomi/Account/internal/app/account/adapter/out/mysql"
	redis_adapter "github.com/namomi/Account/internal/app/account/adapter/out/redis"
	"github.com/namomi/Account/internal/app/account/usecase"
	"github.com/namomi/Account/pkg/mysql"
	"github.com/namomi/Account/pkg/redis"
)

// StorageType 設定使用哪種儲存後端
type StorageType string

const (
	// MySQL + Redis 分散式鎖，正式部署用
	StorageType_MySQL StorageType = "mysql"
	// 純記憶體 + 單機鎖，本機開發用
	StorageType_Memory StorageType = "memory"
)

type Config struct {
	Storage StorageType              `yaml:"storage"`
	Listen  string                   `yaml:"listen"`
	MySQL   mysql.Config             `yaml:"mysql"`
	Redis   redis.Config             `yaml:"redis"`
	Lock    redis_adapter.LockConfig `yaml:"lock"`
}

func main() {
	// 1. 載入設定
	cfg := loadConfig()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	// 2. 依設定初始化儲存層與鎖
	var (
		users        usecase.AccountUserRepository
		accounts     usecase.AccountRepository
		transactions usecase.TransactionRepository
		lock         usecase.LockManager
	)

	switch cfg.Storage {
	case StorageType_MySQL:
		dbClient, err := mysql.NewClient(cfg.MySQL)
		if err != nil {
			log.Fatalf("Failed to connect to MySQL: %v", err)
		}
		defer dbClient.Close()
		log.Println("Connected to MySQL successfully")

		redisClient, err := redis.NewClient(cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Println("Connected to Redis successfully")

		users = mysql_adapter.NewAccountUserRepository(dbClient)
		accounts = mysql_adapter.NewAccountRepository(dbClient)
		transactions = mysql_adapter.NewTransactionRepository(dbClient)
		lock = redis_adapter.NewLockManager(redisClient, cfg.Lock, logger)
	case StorageType_Memory:
		store := memory_adapter.NewStore()
		users = store
		accounts = store
		transactions = store.TransactionRepository()
		lock = memory_adapter.NewLockManager(cfg.Lock.WaitTime)
		log.Println("Using in-memory storage")
	default:
		log.Fatalf("Invalid storage type: %s", cfg.Storage)
	}

	// 3. 初始化 UseCase
	accountService := usecase.NewAccountService(users, accounts, logger)
	transactionService := usecase.NewTransactionService(users, accounts, transactions, lock, logger)

	// 4. 初始化 HTTP Adapter (Driving Adapter)
	server := http_adapter.NewServer(accountService, transactionService, logger)

	app := fiber.New(fiber.Config{
		AppName: "account",
	})
	server.Register(app)

	// 5. 啟動 HTTP Server
	go func() {
		log.Printf("Starting HTTP server on %s", cfg.Listen)
		if err := app.Listen(cfg.Listen); err != nil {
			log.Fatalf("failed to serve: %v", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("shutdown: %v", err)
	}
	log.Println("Server exited")
}

func loadConfig() Config {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.yaml"
	}

	cfgData, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(cfgData, &cfg); err != nil {
		log.Fatalf("Failed to parse config: %v", err)
	}

	// 補全預設配置 (如果 yaml 沒寫)
	if cfg.Storage == "" {
		cfg.Storage = StorageType_MySQL
	}
	if cfg.Listen == "" {
		cfg.Listen = ":8080"
	}
	if cfg.MySQL.MaxOpenConns == 0 {
		cfg.MySQL.MaxOpenConns = 100
	}
	if cfg.MySQL.MaxIdleConns == 0 {
		cfg.MySQL.MaxIdleConns = 10
	}
	if cfg.MySQL.ConnMaxLifetime == 0 {
		cfg.MySQL.ConnMaxLifetime = 30 * time.Minute
	}

	defaultLock := redis_adapter.DefaultLockConfig()
	if cfg.Lock.WaitTime == 0 {
		cfg.Lock.WaitTime = defaultLock.WaitTime
	}
	if cfg.Lock.LeaseTime == 0 {
		cfg.Lock.LeaseTime = defaultLock.LeaseTime
	}
	if cfg.Lock.RetryDelay == 0 {
		cfg.Lock.RetryDelay = defaultLock.RetryDelay
	}
	return cfg
}

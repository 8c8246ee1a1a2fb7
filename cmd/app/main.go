package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"agromarket/cmd"
	httpin "agromarket/internal/adapters/in/http"
	"agromarket/internal/adapters/out/postgres/orderrepo"
	"agromarket/internal/adapters/out/postgres/productrepo"
)

func main() {
	configs := getConfigs()

	gormDB := mustConnectDB(configs)
	redisClient := redis.NewClient(&redis.Options{Addr: configs.RedisAddr})

	app := cmd.NewCompositionRoot(configs, gormDB, redisClient)
	startWebServer(&app, configs)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),
		RedisAddr:  goDotEnvVariable("REDIS_ADDR"),
		JWTSecret:  goDotEnvVariable("JWT_SECRET"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&productrepo.ProductDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.LineDTO{},
		&orderrepo.HistoryDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config) {
	e := echo.New()
	e.Validator = httpin.NewCustomValidator()

	server := app.CreateServer()
	server.RegisterRoutes(e, []byte(configs.JWTSecret))

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}

package main

import (
	"log"
	"os"
	"time"

	"cafe-pos/config"
	httpapi "cafe-pos/internal/api/http"
	"cafe-pos/internal/service"
	"cafe-pos/internal/storage"
)

func main() {
	config.LoadEnv()

	db := config.MustInitPostgres()
	defer db.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(); err != nil {
		log.Printf("Error initializing database schema: %v", err)
	}
	if err := repo.SeedUsers(); err != nil {
		log.Printf("Error seeding default users: %v", err)
	}

	var cache service.MenuCache
	if os.Getenv("REDIS_HOST") != "" {
		rdb := config.MustInitRedis()
		defer rdb.Close()
		cache = storage.NewMenuCache(rdb, 5*time.Minute)
	}

	var publisher service.OrderPublisher
	if os.Getenv("KAFKA_BROKER") != "" {
		writer := config.NewKafkaWriter("orders")
		defer writer.Close()
		publisher = storage.NewKafkaPublisher(writer)
	}

	authService := service.NewAuthService(repo, config.SecretKey())
	orderService := service.NewOrderService(repo, publisher, service.DefaultQRGenerator{BaseURL: config.ReceiptBaseURL()})
	menuService := service.NewMenuService(repo, cache)
	personService := service.NewPersonService(repo)

	handler := httpapi.NewHandler(authService, orderService, menuService, personService)
	router := httpapi.NewRouter(handler)

	httpapi.StartServer(config.ServerAddr(), router)
}

package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/cafein/api-go/cache"
	"github.com/cafein/api-go/config"
	"github.com/cafein/api-go/metrics"
	"github.com/cafein/api-go/repository"
	"github.com/cafein/api-go/routes"
	"github.com/cafein/api-go/storage"
)

func main() {
	// Set up logging to stdout
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	// Initialize database
	db := config.InitDB()

	m := metrics.Registry("cafein")

	store := cache.New(5*time.Minute, m)
	go store.SweepLoop(time.Minute, nil)

	bucket := storage.NewBucket(config.GetR2Config(), m)
	repos := repository.New(db, store, cache.NewBus(), bucket, m)

	// Create a new Gin router
	r := gin.Default()

	// Add logging middleware
	r.Use(gin.LoggerWithWriter(os.Stdout))

	// Initialize routes
	routes.SetupRoutes(r, db, repos)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting server on port %s", port)
	r.Run(":" + port)
}

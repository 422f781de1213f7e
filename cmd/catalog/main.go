package main

import (
	"MovieCatalog/internal/handler"
	"MovieCatalog/internal/mongodb"
	repoMovie "MovieCatalog/internal/repository/movie"
	"MovieCatalog/internal/router"
	"MovieCatalog/internal/schedule"
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
)

func main() {
	//env
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("No .env file found")
	}
	if ok := testEnvs([]string{
		"PORT",
		"IPV6_ONLY",
		"MONGODB_URI",
		"DB_NAME",
		"JWT_ACCESS_SECRET"}); !ok {
		log.Fatalln("Please add required envs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	client, err := mongodb.NewClient(connectCtx, os.Getenv("MONGODB_URI"), os.Getenv("DB_NAME"))
	cancel()
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Close(closeCtx); err != nil {
			log.Println("Error while closing MongoDB client:", err)
		}
	}()

	scheduler, err := schedule.Start(client, 30*time.Second)
	if err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Shutdown()

	movieHandler := handler.NewMovieHandler(repoMovie.NewMovieRepository(client))

	//Http server
	var app *fiber.App
	if os.Getenv("IPV6_ONLY") == "true" {
		app = fiber.New(fiber.Config{
			Network: "tcp6",
		})
	} else {
		app = fiber.New()
	}

	router.Register(app, movieHandler, os.Getenv("JWT_ACCESS_SECRET"))

	go func() {
		<-ctx.Done()
		_ = app.Shutdown()
	}()

	if err := app.Listen(":" + os.Getenv("PORT")); err != nil {
		log.Println("Server stopped:", err)
	}
}

func testEnvs(enums []string) bool {
	successful := true
	for _, enum := range enums {
		if _, ok := os.LookupEnv(enum); !ok {
			successful = false
			log.Printf("Env \"%s\" not found\n", enum)
		}
	}
	return successful
}

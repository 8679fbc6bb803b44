package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"soldout-pos/internal/config"
	"soldout-pos/internal/db"
	"soldout-pos/internal/seed"
)

func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	if err := seed.EnsureDefaultChannels(ctx, pool); err != nil {
		logger.Fatalf("seed channels: %v", err)
	}

	logger.Println("default payment channels ensured")
}

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"

	"soldout-pos/internal/backup"
	"soldout-pos/internal/config"
	"soldout-pos/internal/db"
	"soldout-pos/internal/export"
	channelrepo "soldout-pos/internal/repository/channel"
	orderrepo "soldout-pos/internal/repository/order"
	productrepo "soldout-pos/internal/repository/product"
)

// Modes:
//
//	csv     write the order history as CSV
//	backup  write the full store as a backup document
//	restore replace the store with a backup document
func main() {
	var (
		mode     string
		filePath string
	)
	flag.StringVar(&mode, "mode", "csv", "csv, backup or restore")
	flag.StringVar(&filePath, "file", "", "Output path for csv/backup (default stdout); input path for restore")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[export] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	orderRepo := orderrepo.NewPostgres(pool, logger)
	channelRepo := channelrepo.NewPostgres(pool)
	productRepo := productrepo.NewPostgres(pool, logger)

	switch mode {
	case "csv":
		out, closeOut, err := openOutput(filePath)
		if err != nil {
			logger.Fatalf("open output: %v", err)
		}
		defer closeOut()

		orders, err := orderRepo.List(ctx)
		if err != nil {
			logger.Fatalf("list orders: %v", err)
		}
		channels, err := channelRepo.List(ctx)
		if err != nil {
			logger.Fatalf("list channels: %v", err)
		}
		if err := export.WriteOrdersCSV(out, orders, channels); err != nil {
			logger.Fatalf("write csv: %v", err)
		}

	case "backup":
		out, closeOut, err := openOutput(filePath)
		if err != nil {
			logger.Fatalf("open output: %v", err)
		}
		defer closeOut()

		doc, err := backup.Export(ctx, backup.Source{
			Products: productRepo,
			Orders:   orderRepo,
			Channels: channelRepo,
		})
		if err != nil {
			logger.Fatalf("export backup: %v", err)
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			logger.Fatalf("encode backup: %v", err)
		}

	case "restore":
		if filePath == "" {
			logger.Fatalf("restore requires -file")
		}
		f, err := os.Open(filePath)
		if err != nil {
			logger.Fatalf("open file: %v", err)
		}
		defer f.Close()

		var doc backup.Backup
		if err := json.NewDecoder(f).Decode(&doc); err != nil {
			logger.Fatalf("decode backup: %v", err)
		}
		if err := backup.Import(ctx, backup.NewPostgresRestorer(pool), &doc); err != nil {
			logger.Fatalf("restore backup: %v", err)
		}
		logger.Printf("restored %d products, %d orders, %d channels",
			len(doc.Products), len(doc.Orders), len(doc.PaymentChannels))

	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", mode)
		flag.Usage()
		os.Exit(2)
	}
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"credit-ledger/internal/config"
	"credit-ledger/internal/db"
	"credit-ledger/internal/importer"
	customerrepo "credit-ledger/internal/repository/customer"
	customersvc "credit-ledger/internal/service/customer"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to customer CSV export")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatalf("open file: %v", err)
	}
	defer f.Close()

	directory := customersvc.New(customerrepo.NewPostgres(pool, logger), cfg.BcryptCost)
	imp := importer.NewCSVImporter(f, directory, logger)

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		logger.Fatalf("import failed: %v", err)
	}

	fmt.Printf("Imported %d customers in %s\n", count, time.Since(start).Truncate(time.Millisecond))
}

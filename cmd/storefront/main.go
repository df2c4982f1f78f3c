// Command storefront browses the catalog and manages the local cart from the
// command line.
//
//	storefront products [-first N] [-pages N] [-filter QUERY]
//	storefront product HANDLE
//	storefront collection [-first N] [-pages N] HANDLE
//	storefront home [-first N] COLLECTION
//	storefront cart [show]
//	storefront cart add HANDLE [VARIANT_ID] [QTY]
//	storefront cart update VARIANT_ID QTY
//	storefront cart remove VARIANT_ID
//	storefront cart clear
package main

import (
	"context"
	"fmt"
	"github.com/nikolayk812/storefront/internal/config"
	"github.com/nikolayk812/storefront/internal/logger"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	log := logger.New(logger.Options{
		Service: "storefront",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
		Output:  os.Stderr,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, log, os.Args[1:], os.Stdout); err != nil {
		log.Error("storefront failed", slog.Any("err", err))
		os.Exit(1)
	}
}

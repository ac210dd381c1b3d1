// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"

	"github.com/dkhasanov/appletd/internal/config"
	handler "github.com/dkhasanov/appletd/internal/handler/http"
	"github.com/dkhasanov/appletd/internal/jsonld"
	"github.com/dkhasanov/appletd/internal/logger"
	"github.com/dkhasanov/appletd/internal/server"
	"github.com/dkhasanov/appletd/internal/service"
	"github.com/dkhasanov/appletd/internal/store"
	"github.com/go-resty/resty/v2"
	"github.com/redis/go-redis/v9"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("appletd-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	ldCfg := jsonld.DefaultConfig()
	ldCfg.DefaultLanguage = cfg.JSONLD.DefaultLanguage
	ldCfg.ImportIterationCap = cfg.JSONLD.ImportIterationCap

	client := resty.New().SetTimeout(cfg.JSONLD.DereferenceTimeout)

	var contextCache jsonld.ContextCache
	if cfg.Storage.Redis.Address != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.Storage.Redis.Address})
		contextCache = jsonld.NewRedisContextCache(redisClient, cfg.Storage.Redis.TTL)
	} else {
		log.Info().Msg("no redis address configured, using in-memory context cache")
		contextCache = jsonld.NewMemoryContextCache()
	}

	loader := jsonld.NewCachingDocumentLoader(client, contextCache, &log.Logger)
	expander := jsonld.NewExpander(ldCfg, loader, &log.Logger)
	importService := service.NewImportService(storages.FolderRepository, client, ldCfg)
	formatter := jsonld.NewFormatter(ldCfg, expander, importService, importService, &log.Logger)

	services := service.NewServices(storages, formatter, cfg.App)
	handlers := handler.NewHandler(services, log)

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}

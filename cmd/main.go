package main

import (
	"context"

	"go.uber.org/zap"

	"linkedinAgent/internal/agent"
	"linkedinAgent/internal/browser"
	"linkedinAgent/internal/cli"
	"linkedinAgent/internal/config"
	"linkedinAgent/internal/database"
	"linkedinAgent/internal/llm"
	"linkedinAgent/internal/locations"
	"linkedinAgent/internal/logger"
	"linkedinAgent/internal/migrations"
	"linkedinAgent/internal/workflow"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Logger.Env, cfg.Logger.Level)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := migrations.Run(cfg, log); err != nil {
		log.Fatal("Ошибка миграций", zap.Error(err))
	}

	db, err := database.New(cfg, log)
	if err != nil {
		log.Fatal("Ошибка подключения к БД", zap.Error(err))
	}
	defer db.Close(log)

	repo := database.NewProfileRepository(db.DB)

	if cfg.OpenAI.KeyAI == "" {
		log.Warn("OPENAI_API_KEY не задан: обогащение и агент будут возвращать ошибки")
	}
	llmClient := llm.NewClient(cfg.OpenAI.KeyAI, cfg.OpenAI.Model, cfg.OpenAI.MaxTokens, log)

	resolver, err := locations.Load(cfg.Scraper.LocationsCSV)
	if err != nil {
		log.Warn("Справочник локаций не загружен, используется локация по умолчанию", zap.Error(err))
	}

	br := browser.New(browser.Config{
		Email:    cfg.LinkedIn.Email,
		Password: cfg.LinkedIn.Password,
		Headless: cfg.Browser.Headless,
		Display:  cfg.Browser.Display,
		DebugDir: cfg.Browser.DebugDir,
		MaxPages: cfg.Scraper.MaxPages,
	}, log)

	flow := workflow.New(
		workflow.PlaywrightBrowser{B: br},
		llmClient,
		repo,
		resolver,
		log,
		workflow.Config{
			JSONOutputFile: cfg.Storage.JSONOutputFile,
			DefaultLimit:   cfg.Scraper.DefaultLimit,
		},
	)

	ag := agent.New(llmClient, repo, log, cfg.Storage.ExportDir)

	console := cli.New(flow, ag, repo, resolver, log)
	console.Run(context.Background())
}

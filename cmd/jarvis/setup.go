package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/jarvis/internal/config"
	"github.com/sandevgo/jarvis/internal/conversation"
	"github.com/sandevgo/jarvis/internal/intent"
	"github.com/sandevgo/jarvis/internal/memory"
	"github.com/sandevgo/jarvis/internal/orchestrator"
	"github.com/sandevgo/jarvis/internal/providers/embed"
	"github.com/sandevgo/jarvis/internal/providers/llm"
	"github.com/sandevgo/jarvis/internal/service/command"
	"github.com/sandevgo/jarvis/internal/skill"
	"github.com/sandevgo/jarvis/internal/storage/sqlite"
	"github.com/sandevgo/jarvis/internal/transport/cli"
	"github.com/sandevgo/jarvis/internal/transport/web"
	"github.com/sandevgo/jarvis/pkg/log"
	"github.com/sandevgo/jarvis/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	providerCfg := config.NewProviderConfig(ctx)
	embeddingCfg := config.NewEmbeddingConfig(ctx)

	// 2. Storage
	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(db.Close))

	memoriesRepo := sqlite.NewMemoriesRepo(db)
	remindersRepo := sqlite.NewRemindersRepo(db)

	convStore, err := conversation.NewFileStore(appCfg.GetConversationsPath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize conversation store")
	}

	// 3. Providers
	llmProvider := llm.NewProvider(providerCfg)
	embedder := embed.NewEmbedder(embeddingCfg)

	// 4. Memory
	memories := memory.NewStore(memoriesRepo, embedder)

	// 5. Skills, registered in dispatch priority order
	registry := skill.NewRegistry(
		skill.NewScheduleSkill(remindersRepo),
		skill.NewMemorySkill(memories),
		skill.NewCalculateSkill(),
		skill.NewDatetimeSkill(),
	)

	// 6. Orchestrator
	orch := orchestrator.New(
		intent.NewDetector(),
		registry,
		llmProvider,
		memories,
		convStore,
		appCfg,
		providerCfg,
	)

	// 7. Slash commands
	router := command.New(command.NewCommands(orch, convStore, memories))

	// 8. Transports
	if appCfg.EnableCLI {
		rl, err := cli.NewReadLine(orch, router, appCfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize CLI")
		}
		services = append(services, rl)
	}
	if appCfg.EnableWeb {
		webCfg := config.NewWebConfig(ctx)
		services = append(services, web.NewServer(orch, webCfg))
	}

	return services
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}

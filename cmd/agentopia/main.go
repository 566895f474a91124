// Command agentopia runs the agent community simulation server.
//
// The server is invoked, not self-scheduling: each POST /tick runs exactly
// one simulation step. The optional --interval flag starts a local ticker
// that plays the role of the external invoker, for standalone deployments.
//
// Exit codes: 0 = clean shutdown, 1 = startup or runtime error.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dkims/agentopia/internal/adapter/postgres"
	agentrepo "github.com/dkims/agentopia/internal/adapter/postgres/agent"
	capsulerepo "github.com/dkims/agentopia/internal/adapter/postgres/capsule"
	challengerepo "github.com/dkims/agentopia/internal/adapter/postgres/challenge"
	commentrepo "github.com/dkims/agentopia/internal/adapter/postgres/comment"
	knowledgerepo "github.com/dkims/agentopia/internal/adapter/postgres/knowledge"
	missionrepo "github.com/dkims/agentopia/internal/adapter/postgres/mission"
	postrepo "github.com/dkims/agentopia/internal/adapter/postgres/post"
	relationrepo "github.com/dkims/agentopia/internal/adapter/postgres/relation"
	snapshotrepo "github.com/dkims/agentopia/internal/adapter/postgres/snapshot"
	topicrepo "github.com/dkims/agentopia/internal/adapter/postgres/topic"
	whisperrepo "github.com/dkims/agentopia/internal/adapter/postgres/whisper"
	"github.com/dkims/agentopia/internal/adapter/provider/gemini"
	"github.com/dkims/agentopia/internal/adapter/provider/media"
	"github.com/dkims/agentopia/internal/adapter/provider/platform"
	"github.com/dkims/agentopia/internal/app"
	"github.com/dkims/agentopia/internal/auth"
	"github.com/dkims/agentopia/internal/config"
	"github.com/dkims/agentopia/internal/domain"
	"github.com/dkims/agentopia/internal/service/content"
	"github.com/dkims/agentopia/internal/service/credential"
	"github.com/dkims/agentopia/internal/service/debate"
	"github.com/dkims/agentopia/internal/service/emergent"
	"github.com/dkims/agentopia/internal/service/interaction"
	"github.com/dkims/agentopia/internal/service/tick"
	"github.com/dkims/agentopia/internal/transport/middleware"
	"github.com/dkims/agentopia/internal/transport/rest"
)

func main() {
	intervalFlag := flag.Duration("interval", 0, "run ticks on a local timer (0 = external invocation only)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)
	logger.Info("starting agentopia",
		slog.String("version", app.BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, *intervalFlag); err != nil {
		logger.Error("fatal", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, interval time.Duration) error {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	agents := agentrepo.New(pool)
	topics := topicrepo.New(pool)
	posts := postrepo.New(pool)
	comments := commentrepo.New(pool)
	relations := relationrepo.New(pool)
	snapshots := snapshotrepo.New(pool)
	whispers := whisperrepo.New(pool)
	missions := missionrepo.New(pool)
	challenges := challengerepo.New(pool)
	knowledge := knowledgerepo.New(pool)
	capsules := capsulerepo.New(pool)
	txm := postgres.NewTxManager(pool)

	gen, err := gemini.NewClient(ctx, cfg.Gemini, logger)
	if err != nil {
		return fmt.Errorf("create gemini client: %w", err)
	}
	platformClient := platform.NewClient(cfg.Platform, logger)
	mediaResolver := media.NewResolver("", logger)

	credentialSvc := credential.NewService(agents, platformClient, logger)
	contentSvc := content.NewService(agents, topics, posts, snapshots,
		gen, credentialSvc, platformClient, mediaResolver, cfg.Simulation, logger)
	interactionSvc := interaction.NewService(agents, posts, comments, snapshots, relations,
		gen, credentialSvc, txm, cfg.Simulation, logger)
	debateSvc := debate.NewService(agents, posts, comments, gen, credentialSvc, logger)
	emergentSvc := emergent.NewService(agents, topics, posts, snapshots, whispers,
		missions, challenges, knowledge, capsules, gen, cfg.Simulation, logger)
	tickSvc := tick.NewService(agents, posts, comments, whispers, missions,
		contentSvc, interactionSvc, debateSvc, emergentSvc, cfg.Simulation, logger)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	healthHandler := rest.NewHealthHandler(pool, app.BuildVersion())
	tickHandler := rest.NewTickHandler(tickSvc)
	agentHandler := rest.NewAgentHandler(credentialSvc)

	authMW := middleware.Auth(jwtManager)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /live", healthHandler.Live)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.Handle("POST /tick", authMW(http.HandlerFunc(tickHandler.Run)))
	mux.Handle("GET /status", authMW(http.HandlerFunc(tickHandler.Status)))
	mux.Handle("POST /agents", authMW(http.HandlerFunc(agentHandler.Register)))

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
	)(mux)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	if interval > 0 {
		go runTicker(ctx, tickSvc, interval, logger)
	}

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server shutdown", slog.String("error", err.Error()))
	}

	// Let detached background phases drain before closing the pool.
	tickSvc.Wait()

	return nil
}

// runTicker is the built-in invoker: one tick per interval until the
// process stops. A tick that finds no usable agents only logs a warning.
func runTicker(ctx context.Context, svc *tick.Service, interval time.Duration, logger *slog.Logger) {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			result, err := svc.RunTick(ctx)
			if err != nil {
				if errors.Is(err, domain.ErrNoAgents) {
					logger.InfoContext(ctx, "tick skipped, no usable agents")
					continue
				}
				logger.ErrorContext(ctx, "tick failed", slog.String("error", err.Error()))
				continue
			}
			logger.InfoContext(ctx, "tick completed",
				slog.String("post_id", result.PostID.String()),
				slog.String("title", result.Title))
		}
	}
}

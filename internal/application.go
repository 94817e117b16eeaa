package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-client/internal/config"
	"github.com/rocketscienceinc/tictactoe-client/internal/console"
	"github.com/rocketscienceinc/tictactoe-client/internal/repository"
	"github.com/rocketscienceinc/tictactoe-client/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-client/internal/service"
	"github.com/rocketscienceinc/tictactoe-client/internal/session"
	"github.com/rocketscienceinc/tictactoe-client/internal/transport/websocket"
)

// RunApp - runs the client until the user quits or a signal arrives.
func RunApp(logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	profileRepo := repository.NewMemoryProfileRepository()
	historyRepo := repository.NewMemoryHistoryRepository()

	if conf.Redis.Enabled() {
		redisClient, err := storage.New(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisClient.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		profileRepo = repository.NewProfileRepository(redisClient)
		historyRepo = repository.NewHistoryRepository(redisClient)
	} else {
		log.Info("Redis not configured, keeping profile in memory")
	}

	profileService := service.NewProfileService(conf.Profile.ID, profileRepo)
	statsService := service.NewStatsService(logger, conf.Profile.ID, historyRepo)

	client := session.NewClient(logger, session.Options{
		Dialer:      websocket.NewDialer(conf.Server.DialTimeout),
		Endpoint:    conf.Server.Endpoint,
		DialTimeout: conf.Server.DialTimeout,
		TurnSeconds: conf.Game.TurnSeconds,
		ShareBase:   conf.Server.ShareBase,
		Profile:     profileService,
		Stats:       statsService,
	})

	frontend := console.New(logger, client, statsService, out)
	client.Subscribe(frontend.Show)

	sessionDone := make(chan error, 1)
	go func() {
		sessionDone <- client.Run(ctx)
	}()

	client.Start(ctx)

	log.Info("Client started", "endpoint", conf.Server.Endpoint)

	if err := frontend.Run(ctx, in); err != nil {
		log.Error("console error", "error", err)
	}

	cancel()
	<-sessionDone

	log.Info("Client stopped")

	return nil
}

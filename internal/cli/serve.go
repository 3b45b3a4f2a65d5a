package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rileyhilliard/botstat/internal/config"
	"github.com/rileyhilliard/botstat/internal/logger"
	"github.com/rileyhilliard/botstat/internal/server"
)

// serveCommand relays the polled session until interrupted.
func serveCommand(flags PollFlags, addr string) error {
	cfg, err := loadConfig(flags.Apply, func(c *config.Config) error {
		if addr != "" {
			c.Serve.Addr = addr
		}
		return nil
	})
	if err != nil {
		return err
	}

	if os.Getenv(logger.DebugEnv) == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.NewEnvLogger("[serve]")
	srv := server.New(newPoller(cfg, logger.NewEnvLogger("[poll]")), log)
	return srv.Run(ctx, cfg.Serve.Addr, cfg.Interval)
}

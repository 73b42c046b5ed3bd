package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"iate-log/internal/logger"
	"iate-log/internal/server"
)

type ServeCmd struct {
	ShutdownTimeout time.Duration `default:"10s" help:"How long to wait for in-flight requests on shutdown."`
}

func (c *ServeCmd) Run(ctx *Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	srv := server.NewMealLogServer(ctx.Config.HTTP, svc, ctx.Hub())

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(runCtx)
	}()

	select {
	case <-sigCh:
		logger.Info("server.signal", "msg", "received shutdown signal")
	case err := <-errCh:
		if err != nil {
			logger.Error("server.failed", "err", err)
			return err
		}
		return nil
	}

	logger.Info("server.stopping")
	cancel()
	stopCtx, stop := context.WithTimeout(context.Background(), c.ShutdownTimeout)
	defer stop()
	if err := srv.Stop(stopCtx); err != nil {
		logger.Error("server.shutdown_failed", "err", err)
		return err
	}
	return nil
}

type VersionCmd struct{}

func (c *VersionCmd) Run(ctx *Context) error {
	ctx.printf("iate-log version %s\n", server.Version)
	return nil
}

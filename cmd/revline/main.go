package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/revline/revline/config"
	"github.com/revline/revline/internal/adminapi"
	"github.com/revline/revline/internal/app"
	"github.com/revline/revline/internal/webserver"
)

var (
	cfile    = flag.String("c", "/etc/revline.yml", "config file")
	initdb   = flag.Bool("initdb", false, "drop and recreate the database schema")
	showVer  = flag.Bool("v", false, "show version")
	gitHash  = "unknown"
	buildVer = "dev"
)

func main() {
	flag.Parse()
	if *showVer {
		fmt.Printf("revline %s (%s)\n", buildVer, gitHash)
		return
	}

	cfg := config.LoadConfig(*cfile)
	cfg.InitDirs()

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.S().Info("database schema recreated")
		return
	}

	server := webserver.Init(cfg, application.DB())
	adminapi.Init()

	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		return server.Listen()
	})
	g.Go(func() error {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		select {
		case s := <-sig:
			zap.S().Infof("received signal %s, shutting down", s)
			server.Shutdown()
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	if err := g.Wait(); err != nil {
		zap.S().Errorf("server exited: %v", err)
	}
}

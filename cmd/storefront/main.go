package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shoplane/storefront/config"
	"github.com/shoplane/storefront/internal/app"
	"go.uber.org/zap"
)

var (
	h        = flag.Bool("h", false, "help usage")
	showVer  = flag.Bool("v", false, "show version")
	conffile = flag.String("c", "", "config yaml file")
)

var gitCommit = "unknown"

func main() {
	flag.Parse()
	if *h {
		flag.Usage()
		os.Exit(0)
	}
	if *showVer {
		fmt.Printf("storefront commit=%s\n", gitCommit)
		os.Exit(0)
	}

	cfg := config.LoadConfig(*conffile)
	application := app.NewApplication(cfg)
	if err := application.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "init error: %s\n", err)
		os.Exit(1)
	}
	defer application.Release()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	s := <-sig
	zap.L().Info("shutting down", zap.String("signal", s.String()))
}

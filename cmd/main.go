package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"embedproxy/internal/config"
	"embedproxy/internal/embedding/provider"
	"embedproxy/internal/gateway"
	"embedproxy/internal/server"
	"embedproxy/internal/tokenizer"
	"embedproxy/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	configDir := flag.String("config", ".", "directory holding config.yaml and .env")
	flag.Parse()

	conf, err := config.NewConfig(*configDir)
	if err != nil {
		panic(err)
	}

	zlog, err := logger.New(conf.Log)
	if err != nil {
		panic(err)
	}
	defer zlog.Sync()
	log := zlog.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := provider.New(ctx, conf.Backend, log)
	if err != nil {
		log.Fatalw("failed to create embedding backend", "type", conf.Backend.Type, "error", err)
	}

	tok, err := tokenizer.NewTiktoken(conf.Gateway.Encoding)
	if err != nil {
		log.Fatalw("failed to load tokenizer", "encoding", conf.Gateway.Encoding, "error", err)
	}

	gin.SetMode(conf.Server.Mode)
	gw := gateway.New(backend, tok, conf.Gateway.Model, log)
	srv := server.New(gw, log)

	log.Infow("starting the OpenAI to embedding backend proxy",
		"backend", conf.Backend.Type,
		"backend_url", conf.Backend.URL,
		"backend_model", conf.Backend.Model,
		"advertised_model", conf.Gateway.Model,
	)
	if err := srv.Run(ctx, conf.Addr()); err != nil {
		log.Fatalw("server stopped", "error", err)
	}
}

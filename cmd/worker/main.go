package main

import (
	"context"
	"encoding/json"
	"flag"

	_ "github.com/lib/pq"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/joripage/multimatch/config"
	postgres_wrapper "github.com/joripage/multimatch/pkg/infra/postgres"
	"github.com/joripage/multimatch/pkg/journal"
)

func main() {
	var configFile string
	flag.StringVar(&configFile, "config-file", "", "Specify config file path")
	flag.Parse()

	cfg, err := config.Load(configFile)
	if err != nil {
		panic(err)
	}

	configBytes, err := json.MarshalIndent(cfg, "", "   ")
	if err != nil {
		zap.S().Warnf("could not convert config to JSON: %v", err)
	} else {
		zap.S().Debugf("load config %s", string(configBytes))
	}

	ctx := context.Background()

	nc, err := nats.Connect(cfg.TradeStream.URL)
	if err != nil {
		zap.S().Errorf("connect nats fail with err: %v", err)
		panic(err)
	}
	js, err := nc.JetStream()
	if err != nil {
		panic(err)
	}

	// Ensure stream
	_, _ = js.AddStream(&nats.StreamConfig{
		Name:     cfg.TradeStream.Stream,
		Subjects: []string{cfg.TradeStream.Subject},
	})

	db, err := postgres_wrapper.InitPostgres(cfg.JournalDB)
	if err != nil {
		zap.S().Errorf("init db fail with err: %v", err)
		panic(err)
	}

	sqlRepo := journal.NewRepo(db)

	w := journal.NewWorker(sqlRepo)
	go w.StartConsumer(ctx, js, cfg.TradeStream.Subject, cfg.TradeStream.Durable) // nolint

	select {}
}

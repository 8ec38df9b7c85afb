package main

import (
	"context"
	"encoding/json"
	"flag"

	"github.com/futuresdesk/matching-engine/config"
	"github.com/futuresdesk/matching-engine/pkg/exchange/repo"
	"github.com/futuresdesk/matching-engine/pkg/exchange/worker"
	postgres_wrapper "github.com/futuresdesk/matching-engine/pkg/infra/postgres"
	"github.com/futuresdesk/matching-engine/pkg/kafkafeed"
	"github.com/futuresdesk/matching-engine/pkg/logging"
	_ "github.com/lib/pq"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

func main() {
	var configFile string
	flag.StringVar(&configFile, "config-file", "", "Specify config file path")
	flag.Parse()

	logging.InitGlobal(logging.INFO)

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

	nc, err := nats.Connect(cfg.Nats.URL)
	if err != nil {
		zap.S().Fatalf("connect nats: %v", err)
	}
	js, err := nc.JetStream()
	if err != nil {
		zap.S().Fatalf("jetstream: %v", err)
	}

	_, _ = js.AddStream(&nats.StreamConfig{
		Name:     cfg.Nats.Stream,
		Subjects: []string{cfg.Nats.Stream + ".*"},
	})

	db, err := postgres_wrapper.InitPostgres(cfg.ExchangeDB)
	if err != nil {
		zap.S().Errorf("init db fail with err: %v", err)
		panic(err)
	}

	sqlRepo := repo.NewRepo(db)

	w := worker.NewWorker(sqlRepo)
	go w.StartConsumer(ctx, js, cfg.Nats.Subject, cfg.Nats.Durable) // nolint

	if cfg.Kafka != nil {
		cg, err := kafkafeed.NewConsumerGroup(kafkafeed.ConsumerConfig{
			Brokers:    cfg.Kafka.Brokers,
			GroupID:    cfg.Kafka.GroupID,
			Topic:      cfg.Kafka.TradeTopic,
			AutoCommit: true,
		})
		if err != nil {
			zap.S().Fatalf("consumer group: %v", err)
		}
		defer cg.Close() // nolint

		go func() {
			err := cg.Run(ctx, func(ctx context.Context, msgs []kafkafeed.Message) error {
				payloads := make([][]byte, len(msgs))
				for i, m := range msgs {
					payloads[i] = m.Value
				}
				return w.HandleTradeBatch(ctx, payloads)
			})
			if err != nil {
				zap.S().Errorf("trade consumer stopped: %v", err)
			}
		}()
	}

	select {}
}

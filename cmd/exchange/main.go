package main

import (
	"context"
	"flag"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/futuresdesk/matching-engine/config"
	"github.com/futuresdesk/matching-engine/pkg/exchange"
	"github.com/futuresdesk/matching-engine/pkg/exchange/depthcache"
	"github.com/futuresdesk/matching-engine/pkg/exchange/eventstore"
	fixgateway "github.com/futuresdesk/matching-engine/pkg/exchange/fix"
	"github.com/futuresdesk/matching-engine/pkg/exchange/validation"
	redis_wrapper "github.com/futuresdesk/matching-engine/pkg/infra/redis"
	"github.com/futuresdesk/matching-engine/pkg/instrument"
	"github.com/futuresdesk/matching-engine/pkg/kafkafeed"
	"github.com/futuresdesk/matching-engine/pkg/logging"
	"github.com/futuresdesk/matching-engine/pkg/orderbook"
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

	go func() {
		http.ListenAndServe("localhost:6060", nil) // nolint
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	catalog := buildCatalog(cfg.Instruments)
	engine := orderbook.NewMatchingEngine(catalog)

	rules := []validation.Rule{validation.NewMinOrderSizeRule(catalog)}
	if len(cfg.PriceBands) > 0 {
		bands := make(map[string]validation.Band, len(cfg.PriceBands))
		for symbol, b := range cfg.PriceBands {
			bands[symbol] = validation.Band{Floor: b.Floor, Ceil: b.Ceil}
		}
		rules = append(rules, &validation.PriceBandRule{Bands: bands})
	}
	if cfg.TickSizeFile != "" {
		tickRule, err := validation.NewTickSizeRuleFromFile(cfg.TickSizeFile)
		if err != nil {
			zap.S().Fatalf("load tick size config: %v", err)
		}
		rules = append(rules, tickRule)
	}

	opts := []exchange.ServiceOption{
		exchange.WithRules(rules...),
	}

	if cfg.Nats != nil {
		nc, err := nats.Connect(cfg.Nats.URL)
		if err != nil {
			zap.S().Fatalf("connect nats: %v", err)
		}
		defer nc.Close()

		js, err := nc.JetStream()
		if err != nil {
			zap.S().Fatalf("jetstream: %v", err)
		}

		es, err := eventstore.NewJetStreamEventStore(js, cfg.Nats.Stream, cfg.Nats.Subject)
		if err != nil {
			zap.S().Fatalf("event store: %v", err)
		}
		opts = append(opts, exchange.WithEventStore(es))
	}

	if cfg.Kafka != nil {
		producer := kafkafeed.NewProducer(kafkafeed.ProducerConfig{Brokers: cfg.Kafka.Brokers})
		feed := kafkafeed.NewTradeFeed(producer, cfg.Kafka.TradeTopic)
		defer feed.Close(context.Background()) // nolint
		engine.RegisterTradeCallback(feed.PublishTrades)
	}

	if cfg.Redis != nil && cfg.DepthCache != nil {
		client, err := redis_wrapper.InitRedis(cfg.Redis)
		if err != nil {
			zap.S().Fatalf("connect redis: %v", err)
		}
		writer := depthcache.NewWriter(client, engine, catalog,
			time.Duration(cfg.DepthCache.TTLSeconds)*time.Second)
		go writer.Run(ctx, time.Duration(cfg.DepthCache.IntervalMilliseconds)*time.Millisecond) // nolint
	}

	gateway := fixgateway.NewGateway(&fixgateway.Config{
		ConfigFilepath: cfg.Fix.ConfigFilepath,
	})
	service := exchange.NewService(gateway, engine, opts...)
	gateway.AddServiceInstance(service)
	service.StartCleaner(time.Minute)

	if err := service.Start(ctx); err != nil {
		zap.S().Fatalf("start service: %v", err)
	}
	zap.S().Infof("%s started", cfg.ServiceName)

	<-sigs
	zap.S().Info("shutting down...")

	gateway.Stop()
	service.Stop()
	cancel()

	zap.S().Info("exited cleanly")
}

func buildCatalog(cfgs []config.InstrumentConfig) *instrument.Catalog {
	catalog := instrument.NewCatalog()
	for _, c := range cfgs {
		key := instrument.Key{Symbol: c.Symbol, Settlement: c.Settlement}
		switch c.Kind {
		case "commodity":
			catalog.Register(key, instrument.CommodityFuture{
				Name:     c.Symbol,
				Delivery: c.Settlement,
				Unit:     c.Unit,
				Spot:     c.Spot,
				Premium:  c.Premium,
				MinSize:  c.MinSize,
			})
		default:
			catalog.Register(key, instrument.CurrencyFuture{
				Pair:       c.Symbol,
				Settlement: c.Settlement,
				Spot:       c.Spot,
				Premium:    c.Premium,
				MinSize:    c.MinSize,
			})
		}
	}
	return catalog
}

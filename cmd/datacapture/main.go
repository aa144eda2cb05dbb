/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Command datacapture subscribes to an unbounded list of instruments and
// records every book level and trade print to SQLite, without ever placing
// an order (supplemented feature, SPEC_FULL.md §SUPPLEMENTED FEATURES).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bdasgupta02/phoenix-sub000/config"
	"github.com/bdasgupta02/phoenix-sub000/logging"
	"github.com/bdasgupta02/phoenix-sub000/persistence"
	"github.com/bdasgupta02/phoenix-sub000/risk"
	"github.com/bdasgupta02/phoenix-sub000/session"
	"github.com/bdasgupta02/phoenix-sub000/strategy/datacapture"
)

// throttleLimit/throttleInterval is the data-capture throttle variant named
// in spec §4.4: 5 messages per second, wider than the trading binaries'
// 200ms convergence window since this session never sends orders.
const throttleLimit, throttleInterval = 5, time.Second

func main() {
	cfg, level, err := config.ParseDataCapture(os.Args[1:])
	if err != nil {
		config.Fail(err)
	}
	if cfg.TradeDB == "" {
		config.Fail(fmt.Errorf("config: --trade-db is required for datacapture"))
	}

	lat := &risk.Latch{}
	logger, err := logging.New(logging.Options{
		LogFolder:  cfg.LogFolder,
		Instrument: "datacapture",
		Level:      level,
		PrintLogs:  cfg.LogPrint,
		Risk:       lat,
	})
	if err != nil {
		config.Fail(err)
	}

	store, err := persistence.Open(cfg.TradeDB)
	if err != nil {
		logger.Fatal("datacapture: opening trade database:", err)
	}
	defer store.Close()
	feed := persistence.NewMarketDataFeed(store)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return feed.Run(ctx) })

	engine := session.New(session.Config{
		Host:             cfg.Host,
		Port:             cfg.Port,
		Colo:             cfg.Colo,
		Client:           cfg.Client,
		Username:         cfg.AuthUsername,
		Secret:           cfg.AuthSecret,
		ThrottleLimit:    throttleLimit,
		ThrottleInterval: throttleInterval,
	}, logger, lat)

	engine.SetStrategy(datacapture.New(logger, feed))

	if err := engine.Connect(); err != nil {
		logger.Fatal("datacapture: connect failed:", err)
	}
	if err := engine.Authenticate(); err != nil {
		logger.Fatal("datacapture: authenticate failed:", err)
	}
	for _, instrument := range cfg.Instruments {
		if err := engine.Subscribe(instrument); err != nil {
			logger.Fatal("datacapture: subscribe failed for", instrument, ":", err)
		}
	}

	g.Go(func() error { return engine.Run(ctx) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "datacapture:", err)
		os.Exit(1)
	}
}

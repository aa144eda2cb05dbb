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

// Command triangular runs the three-leg ETH/STETH/cross arbitrageur (spec
// §4.6.3) across exactly three subscribed instruments.
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
	"github.com/bdasgupta02/phoenix-sub000/decimal"
	"github.com/bdasgupta02/phoenix-sub000/logging"
	"github.com/bdasgupta02/phoenix-sub000/persistence"
	"github.com/bdasgupta02/phoenix-sub000/risk"
	"github.com/bdasgupta02/phoenix-sub000/session"
	"github.com/bdasgupta02/phoenix-sub000/strategy/triangular"
)

const throttleLimit, throttleInterval = 5, time.Second

func main() {
	cfg, level, err := config.ParseTriangular(os.Args[1:])
	if err != nil {
		config.Fail(err)
	}

	lat := &risk.Latch{}
	logger, err := logging.New(logging.Options{
		LogFolder:  cfg.LogFolder,
		Instrument: cfg.Instruments[1],
		Level:      level,
		PrintLogs:  cfg.LogPrint,
		Risk:       lat,
	})
	if err != nil {
		config.Fail(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	var recorder *persistence.FillFeed
	if cfg.TradeDB != "" {
		store, err := persistence.Open(cfg.TradeDB)
		if err != nil {
			logger.Fatal("triangular: opening trade database:", err)
		}
		defer store.Close()
		recorder = persistence.NewFillFeed(store, "triangular")
		g.Go(func() error { return recorder.Run(ctx) })
	}

	volumeSize := decimal.FromFloat(cfg.VolumeSize, triangular.VolumeScale)
	tcfg := triangular.NewConfig(cfg.Instruments, volumeSize, cfg.ContractSize, cfg.TriggerThreshold)

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

	hitter := triangular.New(tcfg, engine, logger, lat)
	if recorder != nil {
		hitter.SetFillRecorder(recorder)
	}
	engine.SetStrategy(hitter)

	if err := engine.Connect(); err != nil {
		logger.Fatal("triangular: connect failed:", err)
	}
	if err := engine.Authenticate(); err != nil {
		logger.Fatal("triangular: authenticate failed:", err)
	}
	if err := engine.SubscribeTriple(cfg.Instruments); err != nil {
		logger.Fatal("triangular: subscribe failed:", err)
	}

	g.Go(func() error { return engine.Run(ctx) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "triangular:", err)
		os.Exit(1)
	}
}

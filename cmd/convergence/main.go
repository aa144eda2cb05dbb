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

// Command convergence runs the two-sided convergence market maker against a
// single instrument (spec §4.6.1).
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
	"github.com/bdasgupta02/phoenix-sub000/strategy/convergence"
)

const throttleLimit, throttleInterval = 5, 200 * time.Millisecond

func main() {
	cfg, level, err := config.ParseConvergence(os.Args[1:])
	if err != nil {
		config.Fail(err)
	}

	lat := &risk.Latch{}
	logger, err := logging.New(logging.Options{
		LogFolder:  cfg.LogFolder,
		Instrument: cfg.Instrument,
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
			logger.Fatal("convergence: opening trade database:", err)
		}
		defer store.Close()
		recorder = persistence.NewFillFeed(store, "convergence")
		g.Go(func() error { return recorder.Run(ctx) })
	}

	qcfg := convergence.DefaultConfig(cfg.Instrument)
	qcfg.TickSize = decimal.Parse(cfg.TickSize, convergence.PriceScale)
	qcfg.LotSize = decimal.Parse(cfg.Lots, convergence.VolumeScale)
	qcfg.QuoteResetThreshold = qcfg.TickSize
	qcfg.Aggressive = cfg.Aggressive

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

	quoter := convergence.New(qcfg, engine, logger, lat)
	if recorder != nil {
		quoter.SetFillRecorder(recorder)
	}
	engine.SetStrategy(quoter)

	if err := engine.Connect(); err != nil {
		logger.Fatal("convergence: connect failed:", err)
	}
	if err := engine.Authenticate(); err != nil {
		logger.Fatal("convergence: authenticate failed:", err)
	}
	if err := engine.Subscribe(cfg.Instrument); err != nil {
		logger.Fatal("convergence: subscribe failed:", err)
	}

	g.Go(func() error { return engine.Run(ctx) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "convergence:", err)
		os.Exit(1)
	}
}

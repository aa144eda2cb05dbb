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

package config

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bdasgupta02/phoenix-sub000/decimal"
	"github.com/bdasgupta02/phoenix-sub000/logging"
)

// Convergence holds flags for cmd/convergence (and, unmodified, sniper —
// both strategies quote a single instrument).
type Convergence struct {
	Common
	Instrument string
	TickSize   string
	Lots       string
	Aggressive bool
}

// ParseConvergence parses os.Args[1:]-style args for the convergence and
// sniper binaries.
func ParseConvergence(args []string) (Convergence, logging.Level, error) {
	var c Convergence
	var logLevelStr string
	fs := pflag.NewFlagSet("convergence", pflag.ContinueOnError)
	bindCommon(fs, &c.Common, &logLevelStr)
	fs.StringVar(&c.Instrument, "instrument", "", "symbol to quote (required)")
	fs.StringVar(&c.TickSize, "tick-size", "", "decimal tick size (required)")
	fs.StringVar(&c.Lots, "lots", "", "decimal lot size (required)")
	fs.BoolVar(&c.Aggressive, "aggressive", false, "also place a tick-inside aggressive quote when unquoted")

	if err := fs.Parse(args); err != nil {
		return c, 0, err
	}

	level, ok := logging.ParseLevel(logLevelStr)
	if !ok {
		return c, 0, fmt.Errorf("config: invalid --log-level %q", logLevelStr)
	}

	if err := c.Common.validate(); err != nil {
		return c, 0, err
	}
	if c.Instrument == "" {
		return c, 0, fmt.Errorf("config: --instrument is required")
	}
	if c.TickSize == "" || decimal.Parse(c.TickSize, 8).Error {
		return c, 0, fmt.Errorf("config: --tick-size %q is not a valid decimal", c.TickSize)
	}
	if c.Lots == "" || decimal.Parse(c.Lots, 8).Error {
		return c, 0, fmt.Errorf("config: --lots %q is not a valid decimal", c.Lots)
	}

	c.LogLevel = level
	return c, level, nil
}

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

	"github.com/bdasgupta02/phoenix-sub000/logging"
)

// Triangular holds flags for cmd/triangular: exactly three --instrument
// repetitions (leg0, leg1, leg2) in ETH/STETH/cross order.
type Triangular struct {
	Common
	Instruments      [3]string
	VolumeSize       float64
	ContractSize     float64
	TriggerThreshold float64
}

func ParseTriangular(args []string) (Triangular, logging.Level, error) {
	var t Triangular
	var logLevelStr string
	var instruments []string
	fs := pflag.NewFlagSet("triangular", pflag.ContinueOnError)
	bindCommon(fs, &t.Common, &logLevelStr)
	fs.StringArrayVar(&instruments, "instrument", nil, "symbol, repeated exactly 3 times in leg0/leg1/leg2 order")
	fs.Float64Var(&t.VolumeSize, "volume-size", 0, "base order size (required)")
	fs.Float64Var(&t.ContractSize, "contract-size", 0, "contract multiplier (required)")
	fs.Float64Var(&t.TriggerThreshold, "trigger-threshold", 0, "no-arbitrage trigger threshold")

	if err := fs.Parse(args); err != nil {
		return t, 0, err
	}

	level, ok := logging.ParseLevel(logLevelStr)
	if !ok {
		return t, 0, fmt.Errorf("config: invalid --log-level %q", logLevelStr)
	}
	if err := t.Common.validate(); err != nil {
		return t, 0, err
	}
	if len(instruments) != 3 {
		return t, 0, fmt.Errorf("config: --instrument must be repeated exactly 3 times, got %d", len(instruments))
	}
	t.Instruments = [3]string{instruments[0], instruments[1], instruments[2]}
	if t.VolumeSize <= 0 {
		return t, 0, fmt.Errorf("config: --volume-size must be positive")
	}
	if t.ContractSize <= 0 {
		return t, 0, fmt.Errorf("config: --contract-size must be positive")
	}

	t.LogLevel = level
	return t, level, nil
}

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

// DataCapture holds flags for cmd/datacapture: an unbounded repeated
// --instrument list and none of the order-placement flags, since it never
// places orders (§6).
type DataCapture struct {
	Common
	Instruments []string
}

func ParseDataCapture(args []string) (DataCapture, logging.Level, error) {
	var d DataCapture
	var logLevelStr string
	fs := pflag.NewFlagSet("datacapture", pflag.ContinueOnError)
	bindCommon(fs, &d.Common, &logLevelStr)
	fs.StringArrayVar(&d.Instruments, "instrument", nil, "symbol to subscribe to (repeatable, unbounded)")

	if err := fs.Parse(args); err != nil {
		return d, 0, err
	}

	level, ok := logging.ParseLevel(logLevelStr)
	if !ok {
		return d, 0, fmt.Errorf("config: invalid --log-level %q", logLevelStr)
	}
	if err := d.Common.validate(); err != nil {
		return d, 0, err
	}
	if len(d.Instruments) == 0 {
		return d, 0, fmt.Errorf("config: at least one --instrument is required")
	}

	d.LogLevel = level
	return d, level, nil
}

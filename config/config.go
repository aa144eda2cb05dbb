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

// Package config parses the per-binary CLI flags in spec §6 with
// github.com/spf13/pflag, and validates them the way a ConfigurationError
// does in §7: failures print to stderr and the caller exits 1, never
// log.Fatal.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/bdasgupta02/phoenix-sub000/logging"
)

// Common holds the flags every trading binary shares.
type Common struct {
	AuthUsername string
	AuthSecret   string
	Host         string
	Port         int
	Client       string
	Colo         bool
	LogLevel     logging.Level
	LogFolder    string
	LogPrefix    string
	LogPrint     bool
	Profiled     bool
	TradeDB      string
}

func bindCommon(fs *pflag.FlagSet, c *Common, logLevel *string) {
	fs.StringVar(&c.AuthUsername, "auth-username", "", "venue auth username (required)")
	fs.StringVar(&c.AuthSecret, "auth-secret", "", "venue auth secret (required)")
	fs.StringVar(&c.Host, "host", "www.deribit.com", "venue host")
	fs.IntVar(&c.Port, "port", 9881, "venue port")
	fs.StringVar(&c.Client, "client", "", "SenderCompID (required)")
	fs.BoolVar(&c.Colo, "colo", false, "treat host as a literal IP, skip DNS resolution")
	fs.StringVar(logLevel, "log-level", "INFO", "one of DEBUG/INFO/WARN/ERROR/FATAL")
	fs.StringVar(&c.LogFolder, "log-folder", "./logs", "log sink directory")
	fs.StringVar(&c.LogPrefix, "log-prefix", "", "log file name prefix")
	fs.BoolVar(&c.LogPrint, "log-print", false, "also print log lines to stdout")
	fs.BoolVar(&c.Profiled, "profiled", false, "enable per-pipeline timing logs")
	fs.StringVar(&c.TradeDB, "trade-db", "", "path to the optional SQLite trade-capture sink; empty disables persistence")
}

func (c *Common) validate() error {
	if c.AuthUsername == "" || c.AuthSecret == "" {
		return fmt.Errorf("config: --auth-username and --auth-secret are required")
	}
	if c.Client == "" {
		return fmt.Errorf("config: --client is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: --port %d out of range", c.Port)
	}
	return nil
}

// Fail prints err to stderr and exits 1, matching §7's ConfigurationError
// handling (never a logged FATAL, since the logger isn't constructed yet).
func Fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

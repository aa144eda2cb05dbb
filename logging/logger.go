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

package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bdasgupta02/phoenix-sub000/risk"
)

// Options configures a Logger the way tag::Logger::Start did in the source.
type Options struct {
	LogFolder      string
	Instrument     string
	Level          Level
	PrintLogs      bool
	SingleThreaded bool
	Risk           *risk.Latch
}

// Logger is the Go stand-in for the source's Logger node: it formats and
// writes both the human log and the CSV log for one strategy process.
// Exactly one Logger is constructed per binary and threaded explicitly
// through the dispatch graph (the source's process-wide LOGGERS counter is
// dropped, see DESIGN.md).
type Logger struct {
	human  *zap.SugaredLogger
	csv    *zap.SugaredLogger
	writer *asyncWriter
	csvW   *asyncWriter
	risk   *risk.Latch
}

// New opens the log files and starts the drain goroutine(s) (skipped in
// single-threaded mode, where every call writes synchronously).
func New(opts Options) (*Logger, error) {
	if err := os.MkdirAll(opts.LogFolder, 0o755); err != nil {
		return nil, fmt.Errorf("logging: creating log folder: %w", err)
	}

	stamp := time.Now().UTC().Format("2006-01-02T15:04:05Z")

	humanFile, err := openLogFile(opts.LogFolder, opts.Instrument, stamp, false)
	if err != nil {
		return nil, err
	}
	csvFile, err := openLogFile(opts.LogFolder, opts.Instrument, stamp, true)
	if err != nil {
		return nil, err
	}

	l := &Logger{risk: opts.Risk}

	humanWS, csvWS := zapcore.WriteSyncer(zapcore.AddSync(humanFile)), zapcore.WriteSyncer(zapcore.AddSync(csvFile))
	if !opts.SingleThreaded {
		l.writer = newAsyncWriter(humanFile)
		l.csvW = newAsyncWriter(csvFile)
		humanWS, csvWS = l.writer, l.csvW
	}
	if opts.PrintLogs {
		humanWS = zapcore.NewMultiWriteSyncer(humanWS, zapcore.AddSync(os.Stdout))
	}

	humanCore := zapcore.NewCore(newLineEncoder(false), humanWS, opts.Level.zapLevel())
	csvCore := zapcore.NewCore(newLineEncoder(true), csvWS, zapcore.DebugLevel)

	l.human = zap.New(humanCore, zap.AddCaller(), zap.AddCallerSkip(2), zap.WithFatalHook(noopFatalHook{})).Sugar()
	l.csv = zap.New(csvCore).Sugar()
	return l, nil
}

// noopFatalHook lets a FATAL entry be written without zap ending the
// process; zap swaps a nil or WriteThenNoop hook for os.Exit, so a hook of
// this package's own type is needed.
type noopFatalHook struct{}

func (noopFatalHook) OnWrite(*zapcore.CheckedEntry, []zapcore.Field) {}

func openLogFile(folder, instrument, stamp string, isCSV bool) (*os.File, error) {
	name := instrument + "-" + stamp
	if isCSV {
		name = "CSV-" + name + ".csv"
	} else {
		name += ".log"
	}
	path := filepath.Join(folder, name)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: opening %s: %w", path, err)
	}
	return f, nil
}

func (l *Logger) Debug(args ...any) { l.human.Debugln(args...) }
func (l *Logger) Info(args ...any)  { l.human.Infoln(args...) }
func (l *Logger) Warn(args ...any)  { l.human.Warnln(args...) }
func (l *Logger) Error(args ...any) { l.human.Errorln(args...) }

// Fatal logs at FATAL (without the zap-default os.Exit, per AMBIENT STACK)
// and trips the shared abort latch, exactly mirroring PHOENIX_LOG_FATAL's
// invoke of tag::Risk::Abort.
func (l *Logger) Fatal(args ...any) {
	l.human.Fatalln(args...)
	if l.risk != nil {
		l.risk.Abort()
	}
	l.Sync()
}

// Verify logs FATAL (and aborts) when condition is false, mirroring
// PHOENIX_LOG_VERIFY.
func (l *Logger) Verify(condition bool, args ...any) {
	if !condition {
		l.Fatal(args...)
	}
}

// CSV writes one comma-joined row, mirroring PHOENIX_LOG_CSV.
func (l *Logger) CSV(fields ...any) {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprint(f)
	}
	l.csv.Info(strings.Join(parts, ","))
}

// Sync flushes both underlying writers. Called on Fatal and should be
// called once more during orderly shutdown.
func (l *Logger) Sync() {
	l.human.Sync()
	l.csv.Sync()
}

// Stop drains and closes the async writers, mirroring tag::Logger::Stop.
// A no-op in single-threaded mode, where there is no drain goroutine.
func (l *Logger) Stop() {
	l.Sync()
	if l.writer != nil {
		l.writer.Close()
	}
	if l.csvW != nil {
		l.csvW.Close()
	}
}

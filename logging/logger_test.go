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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdasgupta02/phoenix-sub000/risk"
)

func newTestLogger(t *testing.T, singleThreaded bool) (*Logger, string) {
	t.Helper()
	dir := t.TempDir()
	l, err := New(Options{
		LogFolder:      dir,
		Instrument:     "TEST-INSTR",
		Level:          LevelDebug,
		SingleThreaded: singleThreaded,
		Risk:           &risk.Latch{},
	})
	require.NoError(t, err)
	return l, dir
}

func readAllLogFiles(t *testing.T, dir string, csv bool) string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var out string
	for _, e := range entries {
		isCSV := filepath.Ext(e.Name()) == ".csv"
		if isCSV != csv {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		out += string(data)
	}
	return out
}

func TestFatalAbortsRiskLatch(t *testing.T) {
	lat := &risk.Latch{}
	dir := t.TempDir()
	l, err := New(Options{LogFolder: dir, Instrument: "X", Level: LevelDebug, SingleThreaded: true, Risk: lat})
	require.NoError(t, err)

	require.False(t, lat.Aborted())
	l.Fatal("unrecoverable", "condition")
	assert.True(t, lat.Aborted())
}

func TestVerifyAbortsOnlyWhenFalse(t *testing.T) {
	lat := &risk.Latch{}
	dir := t.TempDir()
	l, err := New(Options{LogFolder: dir, Instrument: "X", Level: LevelDebug, SingleThreaded: true, Risk: lat})
	require.NoError(t, err)

	l.Verify(true, "should not abort")
	assert.False(t, lat.Aborted())

	l.Verify(false, "should abort")
	assert.True(t, lat.Aborted())
}

func TestCSVWritesCommaJoinedRow(t *testing.T) {
	l, dir := newTestLogger(t, true)
	l.CSV("BTCUSD", 100, "filled")
	l.Sync()

	time.Sleep(10 * time.Millisecond)
	content := readAllLogFiles(t, dir, true)
	assert.Contains(t, content, "BTCUSD,100,filled")
}

func TestAsyncLoggerDrains(t *testing.T) {
	l, dir := newTestLogger(t, false)
	l.Info("hello", "world")
	l.Stop()

	content := readAllLogFiles(t, dir, false)
	assert.Contains(t, content, "hello world")
	assert.Contains(t, content, "[INFO]")
}

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

// Package logging formats and drains log entries the way the source's
// dedicated logger thread does: a human-readable mode and a CSV mode, async
// by default, synchronous in single-threaded-logger mode, per spec §6/§9.
package logging

import (
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// lineEncoder renders the source's two wire formats:
//
//	human: YYYY-MM-DDTHH:MM:SSZ [LEVEL] file:line - message
//	csv:   message (already comma-joined by the caller via CSV())
//
// Every call in this package passes a pre-formatted message and no
// structured fields, so the ObjectEncoder half of zapcore.Encoder is
// satisfied by embedding a stock encoder rather than reimplementing every
// Add* method by hand.
type lineEncoder struct {
	zapcore.Encoder // embedded for the unused ObjectEncoder methods
	csv             bool
}

func newLineEncoder(csv bool) zapcore.Encoder {
	cfg := zapcore.EncoderConfig{}
	return &lineEncoder{Encoder: zapcore.NewJSONEncoder(cfg), csv: csv}
}

func (e *lineEncoder) Clone() zapcore.Encoder {
	return &lineEncoder{Encoder: e.Encoder.Clone(), csv: e.csv}
}

func (e *lineEncoder) EncodeEntry(ent zapcore.Entry, _ []zapcore.Field) (*buffer.Buffer, error) {
	buf := buffer.NewPool().Get()

	if e.csv {
		buf.AppendString(ent.Message)
		buf.AppendByte('\n')
		return buf, nil
	}

	buf.AppendString(ent.Time.UTC().Format("2006-01-02T15:04:05Z"))
	buf.AppendByte(' ')
	buf.AppendByte('[')
	buf.AppendString(levelName(ent.Level))
	buf.AppendByte(']')
	buf.AppendByte(' ')
	if ent.Caller.Defined {
		buf.AppendString(filepath.Base(ent.Caller.File))
		buf.AppendByte(':')
		buf.AppendString(strconv.Itoa(ent.Caller.Line))
		buf.AppendString(" - ")
	}
	buf.AppendString(ent.Message)
	buf.AppendByte('\n')
	return buf, nil
}

func levelName(l zapcore.Level) string {
	return strings.ToUpper(l.String())
}

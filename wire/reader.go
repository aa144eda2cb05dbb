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

package wire

import (
	"strconv"

	"github.com/bdasgupta02/phoenix-sub000/decimal"
)

// unknown is the sentinel string returned for a missing tag or an
// out-of-range repeating-group index.
const unknown = "UNKNOWN"

// Reader parses one framed wire message into a tag -> ordered values map.
// Missing tags and out-of-range indices return zero-value sentinels rather
// than an error, matching the source parser's best-effort contract.
type Reader struct {
	fields  map[Tag][]string
	msgType string
}

// NewReader scans data (expected to end just after the final delimiter of
// the 10=NNN trailer) into tag/value pairs.
//
// TODO: fold checksum verification into this same scan once a caller needs
// stricter venue integrity checks than the reject-message fatal path in
// session.Engine.handle.
func NewReader(data []byte) *Reader {
	r := &Reader{fields: make(map[Tag][]string, 16)}

	pos := 0
	for pos < len(data) {
		eq := indexByteFrom(data, pos, '=')
		if eq < 0 {
			break
		}
		delim := indexByteFrom(data, eq+1, fieldDelimiter)
		if delim < 0 {
			break
		}

		tagNum, err := strconv.Atoi(string(data[pos:eq]))
		if err == nil {
			t := Tag(tagNum)
			r.fields[t] = append(r.fields[t], string(data[eq+1:delim]))
		}

		pos = delim + 1
	}

	r.msgType = r.GetString(TagMsgType, 0)
	return r
}

func indexByteFrom(data []byte, from int, c byte) int {
	for i := from; i < len(data); i++ {
		if data[i] == c {
			return i
		}
	}
	return -1
}

// MsgType returns the cached value of tag 35.
func (r *Reader) MsgType() string {
	return r.msgType
}

// IsMessageType reports whether tag 35 equals t.
func (r *Reader) IsMessageType(t string) bool {
	return r.msgType == t
}

// FieldCount returns the number of repeating-group entries for tag.
func (r *Reader) FieldCount(tag Tag) int {
	return len(r.fields[tag])
}

// Contains reports whether tag has a value at index.
func (r *Reader) Contains(tag Tag, index int) bool {
	return index < len(r.fields[tag])
}

// GetString returns the raw value, or the UNKNOWN sentinel.
func (r *Reader) GetString(tag Tag, index int) string {
	vals := r.fields[tag]
	if index < 0 || index >= len(vals) {
		return unknown
	}
	return vals[index]
}

// GetUint64 parses the value as an unsigned integer, locale-independent.
// A missing tag or a parse failure returns 0.
func (r *Reader) GetUint64(tag Tag, index int) uint64 {
	v := r.GetString(tag, index)
	if v == unknown {
		return 0
	}
	n, _ := strconv.ParseUint(v, 10, 64)
	return n
}

// GetInt parses the value as a signed integer. A missing tag or a parse
// failure returns 0.
func (r *Reader) GetInt(tag Tag, index int) int {
	v := r.GetString(tag, index)
	if v == unknown {
		return 0
	}
	n, _ := strconv.Atoi(v)
	return n
}

// GetFloat parses the value as a float64. A missing tag or a parse failure
// returns 0.
func (r *Reader) GetFloat(tag Tag, index int) float64 {
	v := r.GetString(tag, index)
	if v == unknown {
		return 0
	}
	f, _ := strconv.ParseFloat(v, 64)
	return f
}

// GetDecimal parses the value at the given fixed-point scale. A missing tag
// returns the zero Decimal at that scale; an unparseable value returns a
// Decimal with Error set, matching decimal.Parse's best-effort contract.
func (r *Reader) GetDecimal(tag Tag, index int, scale uint8) decimal.Decimal {
	v := r.GetString(tag, index)
	if v == unknown {
		return decimal.New(scale)
	}
	return decimal.Parse(v, scale)
}

// GetBool reports whether the value is "Y" or "y".
func (r *Reader) GetBool(tag Tag, index int) bool {
	v := r.GetString(tag, index)
	return v == "Y" || v == "y"
}

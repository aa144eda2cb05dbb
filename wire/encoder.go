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

// Encoder builds one outgoing wire message at a time. It is stateful and
// reused across the whole session: Reset clears the body and writes the
// mandatory header fields, Append* accumulates the rest, and Serialize
// stitches on the 8=/9=/10= framing in place.
//
// buf always has headerBufSize bytes reserved at the front. The body is
// appended starting at that offset; Serialize writes the begin-string and
// body-length header backward into the unused prefix bytes immediately
// before it, so the body itself is never copied.
type Encoder struct {
	buf           []byte
	headerScratch [headerBufSize]byte
	client        string
}

// NewEncoder builds an Encoder for a session identified by client
// (SenderCompID, tag 49).
func NewEncoder(client string) *Encoder {
	e := &Encoder{client: client}
	e.buf = make([]byte, headerBufSize, 4096+headerBufSize)
	return e
}

// Reset clears the body and writes MsgType (35), SenderCompID (49),
// TargetCompID (56, fixed to the venue's well-known value), and MsgSeqNum
// (34), in that order, per spec §4.2.
func (e *Encoder) Reset(seqNum uint64, msgType string) {
	e.buf = e.buf[:headerBufSize]
	e.AppendString(TagMsgType, msgType)
	e.AppendString(TagSenderCompID, e.client)
	e.AppendString(TagTargetCompID, targetCompID)
	e.AppendUint(TagMsgSeqNum, seqNum)
}

func (e *Encoder) appendTag(tag Tag) {
	e.buf = strconv.AppendUint(e.buf, uint64(tag), 10)
	e.buf = append(e.buf, '=')
}

// AppendString appends tag=value\x01.
func (e *Encoder) AppendString(tag Tag, v string) {
	e.appendTag(tag)
	e.buf = append(e.buf, v...)
	e.buf = append(e.buf, fieldDelimiter)
}

// AppendUint appends tag=value\x01 for an unsigned integer field.
func (e *Encoder) AppendUint(tag Tag, v uint64) {
	e.appendTag(tag)
	e.buf = strconv.AppendUint(e.buf, v, 10)
	e.buf = append(e.buf, fieldDelimiter)
}

// AppendInt appends tag=value\x01 for a signed integer field.
func (e *Encoder) AppendInt(tag Tag, v int64) {
	e.appendTag(tag)
	e.buf = strconv.AppendInt(e.buf, v, 10)
	e.buf = append(e.buf, fieldDelimiter)
}

// AppendChar appends tag=c\x01 for a single-character field.
func (e *Encoder) AppendChar(tag Tag, c byte) {
	e.appendTag(tag)
	e.buf = append(e.buf, c, fieldDelimiter)
}

// AppendBool appends tag=Y\x01 or tag=N\x01.
func (e *Encoder) AppendBool(tag Tag, v bool) {
	if v {
		e.AppendChar(tag, 'Y')
	} else {
		e.AppendChar(tag, 'N')
	}
}

// AppendDecimal appends tag=<rendered decimal>\x01.
func (e *Encoder) AppendDecimal(tag Tag, d decimal.Decimal) {
	e.appendTag(tag)
	e.buf = append(e.buf, d.String()...)
	e.buf = append(e.buf, fieldDelimiter)
}

func (e *Encoder) writeBeginAndLength(bodyLen int) int {
	n := 0
	n += copy(e.headerScratch[n:], "8=")
	n += copy(e.headerScratch[n:], beginString)
	e.headerScratch[n] = fieldDelimiter
	n++
	n += copy(e.headerScratch[n:], "9=")
	tmp := strconv.AppendInt(e.headerScratch[n:n], int64(bodyLen), 10)
	n += len(tmp)
	e.headerScratch[n] = fieldDelimiter
	n++
	return n
}

func appendChecksumDigits(buf []byte, sum byte) []byte {
	return append(buf, byte('0'+sum/100), byte('0'+(sum/10)%10), byte('0'+sum%10))
}

// Serialize finishes the current message: computes the mod-256 checksum over
// the body, writes the 8=/9= header into the reserved prefix region, appends
// the 10=<checksum> trailer, and returns the full framed message. The
// returned slice aliases the Encoder's internal buffer and is only valid
// until the next Reset.
func (e *Encoder) Serialize() []byte {
	body := e.buf[headerBufSize:]
	bodyLen := len(body)

	var sum byte
	for _, b := range body {
		sum += b
	}

	headerLen := e.writeBeginAndLength(bodyLen)
	prefixStart := headerBufSize - headerLen
	copy(e.buf[prefixStart:headerBufSize], e.headerScratch[:headerLen])

	e.buf = append(e.buf, "10="...)
	e.buf = appendChecksumDigits(e.buf, sum)
	e.buf = append(e.buf, fieldDelimiter)

	return e.buf[prefixStart:]
}

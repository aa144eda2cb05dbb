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
	"strings"
	"testing"

	"github.com/bdasgupta02/phoenix-sub000/decimal"
	"github.com/bdasgupta02/phoenix-sub000/orders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checksumOf(t *testing.T, msg []byte) byte {
	t.Helper()
	s := string(msg)
	idx := strings.LastIndex(s, "10=")
	require.Greater(t, idx, 0)
	lenIdx := strings.Index(s, "\x019=")
	require.Greater(t, lenIdx, 0)
	bodyStart := lenIdx + 1 + strings.IndexByte(s[lenIdx+1:], 0x01) + 1
	var sum byte
	for _, b := range msg[bodyStart:idx] {
		sum += b
	}
	return sum
}

// Invariant 1: decode(encode(m)) yields an equal field set and a valid
// checksum.
func TestEncodeDecodeRoundTrip(t *testing.T) {
	enc := NewEncoder("CLIENT1")
	order := orders.Order{Symbol: "BTC-PERP", Price: decimal.Parse("50000.5", 4), Volume: decimal.Parse("10", 4), Side: orders.SideBid}
	msg := BuildNewOrderSingle(enc, 7, order)

	r := NewReader(msg)
	assert.Equal(t, MsgTypeNewOrderSingle, r.MsgType())
	assert.Equal(t, "CLIENT1", r.GetString(TagSenderCompID, 0))
	assert.Equal(t, "DERIBITSERVER", r.GetString(TagTargetCompID, 0))
	assert.Equal(t, uint64(7), r.GetUint64(TagMsgSeqNum, 0))
	assert.Equal(t, "BTC-PERP", r.GetString(TagSymbol, 0))
	assert.Equal(t, "50000.5", r.GetString(TagPrice, 0))
	assert.Equal(t, "7", r.GetString(TagClOrdID, 0))

	wantSum := checksumOf(t, msg)
	gotSum, err := strconv.Atoi(r.GetString(TagCheckSum, 0))
	require.NoError(t, err)
	assert.Equal(t, int(wantSum), gotSum)
}

func TestBodyLengthMatchesByteCount(t *testing.T) {
	enc := NewEncoder("CLIENT1")
	msg := BuildHeartbeat(enc, 1, "")

	s := string(msg)
	bodyLenIdx := strings.Index(s, "9=")
	require.GreaterOrEqual(t, bodyLenIdx, 0)
	delim := strings.IndexByte(s[bodyLenIdx:], 0x01)
	require.Greater(t, delim, 0)
	bodyLen, err := strconv.Atoi(s[bodyLenIdx+2 : bodyLenIdx+delim])
	require.NoError(t, err)

	bodyStart := bodyLenIdx + delim + 1
	checksumIdx := strings.LastIndex(s, "10=")
	require.Equal(t, bodyLen, checksumIdx-bodyStart)
}

func TestBuildLogon(t *testing.T) {
	enc := NewEncoder("CLIENT1")
	msg, err := BuildLogon(enc, 1, "user1", "secret1", 30, 1700000000000)
	require.NoError(t, err)

	r := NewReader(msg)
	assert.Equal(t, MsgTypeLogon, r.MsgType())
	assert.True(t, strings.HasPrefix(r.GetString(TagRawData, 0), "1700000000000."))
	assert.Equal(t, "Y", r.GetString(TagCancelOnDisconnect, 0))
	assert.NotEmpty(t, r.GetString(TagPassword, 0))
}

func TestReaderSentinelsOnMissingTag(t *testing.T) {
	r := NewReader([]byte("35=0\x0149=X\x0156=Y\x01"))
	assert.Equal(t, "UNKNOWN", r.GetString(999, 0))
	assert.Equal(t, uint64(0), r.GetUint64(999, 0))
	assert.False(t, r.GetBool(999, 0))
	assert.False(t, r.Contains(999, 0))
}

func TestReaderRepeatingGroup(t *testing.T) {
	r := NewReader([]byte("268=2\x01269=0\x01270=0.9990\x01269=1\x01270=1.0010\x01"))
	require.Equal(t, 2, r.FieldCount(TagMDEntryType))
	assert.Equal(t, "0", r.GetString(TagMDEntryType, 0))
	assert.Equal(t, "1", r.GetString(TagMDEntryType, 1))
	assert.Equal(t, "0.999", r.GetDecimal(TagMDEntryPx, 0, 4).String())
	assert.Equal(t, "1.001", r.GetDecimal(TagMDEntryPx, 1, 4).String())
}

func TestClOrdIDTakeProfitPrefix(t *testing.T) {
	enc := NewEncoder("CLIENT1")
	order := orders.Order{Symbol: "X", Price: decimal.Parse("1", 4), Volume: decimal.Parse("1", 4), Side: orders.SideAsk, TakeProfit: true}
	msg := BuildNewOrderSingle(enc, 42, order)
	r := NewReader(msg)
	assert.Equal(t, "t42", r.GetString(TagClOrdID, 0))
}

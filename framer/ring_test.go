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

package framer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInto(t *testing.T, r *Ring, data []byte) int {
	t.Helper()
	region := r.WritableRegion()
	require.GreaterOrEqual(t, len(region), len(data))
	n := copy(region, data)
	return n
}

func TestTakeMessageSingleWholeMessage(t *testing.T) {
	var r Ring
	msg := []byte("35=0\x0149=A\x0110=123\x01")
	n := writeInto(t, &r, msg)

	got, ok := r.TakeMessage(n)
	require.True(t, ok)
	assert.Equal(t, msg, got)
}

func TestTakeMessageNoneOnPartial(t *testing.T) {
	var r Ring
	partial := []byte("35=0\x0149=A\x0110=")
	n := writeInto(t, &r, partial)

	_, ok := r.TakeMessage(n)
	assert.False(t, ok)
}

// Invariant 5: messages appended in arbitrary chunks are produced in order,
// with no duplication or loss.
func TestTakeMessageArbitraryChunking(t *testing.T) {
	var r Ring
	full := []byte("35=0\x0149=A\x0110=001\x0135=1\x0149=B\x0110=002\x01")

	// split the stream into several small writes landing mid-message
	chunks := [][]byte{full[:3], full[3:10], full[10:19], full[19:]}

	var framed [][]byte
	for _, c := range chunks {
		n := writeInto(t, &r, c)
		for {
			msg, ok := r.TakeMessage(n)
			n = 0 // subsequent TakeMessage calls on this chunk see 0 new bytes
			if !ok {
				break
			}
			framed = append(framed, msg)
		}
	}

	require.Len(t, framed, 2)
	assert.Equal(t, "35=0\x0149=A\x0110=001\x01", string(framed[0]))
	assert.Equal(t, "35=1\x0149=B\x0110=002\x01", string(framed[1]))
}

func TestWritableRegionShrinksAsDataAccumulates(t *testing.T) {
	var r Ring
	n := writeInto(t, &r, []byte("12345"))
	_, _ = r.TakeMessage(n)
	assert.Equal(t, Capacity-5, len(r.WritableRegion()))
}

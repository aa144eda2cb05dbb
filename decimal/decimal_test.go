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

package decimal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAndString(t *testing.T) {
	cases := []struct {
		in    string
		scale uint8
		want  string
	}{
		{"0.9990", 4, "0.999"},
		{"1", 4, "1"},
		{"1.00000", 4, "1"},
		{"123.456789", 4, "123.4567"}, // truncated beyond scale
		{"5.1", 4, "5.1"},
		{"0", 4, "0"},
	}

	for _, c := range cases {
		d := Parse(c.in, c.scale)
		require.False(t, d.Error, "unexpected parse error for %q", c.in)
		assert.Equal(t, c.want, d.String(), "round-trip for %q", c.in)
	}
}

func TestParseSetsErrorOnInvalidChars(t *testing.T) {
	d := Parse("12x.34", 2)
	assert.True(t, d.Error)
}

func TestParseDoubleDecimalPointSetsError(t *testing.T) {
	d := Parse("1.2.3", 2)
	assert.True(t, d.Error)
}

func TestRoundTripInvariant(t *testing.T) {
	// Decimal(t).data() == d.data() for t = d.str()
	inputs := []string{"0.9990", "1.0010", "123.4500", "0.0001", "999999.9999"}
	for _, in := range inputs {
		d := Parse(in, 4)
		rendered := d.String()
		reparsed := Parse(rendered, 4)
		assert.Equal(t, d.Value, reparsed.Value, "round trip for %q via %q", in, rendered)
	}
}

func TestAddSub(t *testing.T) {
	a := Parse("1.0000", 4)
	b := Parse("0.0010", 4)
	assert.Equal(t, "1.001", a.Add(b).String())
	assert.Equal(t, "0.999", a.Sub(b).String())
}

func TestSubSaturatesAtZero(t *testing.T) {
	a := Parse("0.0001", 4)
	b := Parse("1.0000", 4)
	assert.True(t, a.Sub(b).IsZero())
}

func TestAddSubPanicsOnScaleMismatch(t *testing.T) {
	a := Parse("1.00", 2)
	b := Parse("1.0000", 4)
	assert.Panics(t, func() { a.Add(b) })
}

func TestCompareFloat(t *testing.T) {
	d := Parse("0.9990", 4)
	assert.True(t, d.LessFloat(1.0))
	assert.False(t, d.GreaterFloat(1.0))
}

func TestCompareInt(t *testing.T) {
	d := FromRaw(12345, 4)
	assert.True(t, d.LessInt(20000))
	assert.True(t, d.GreaterInt(10000))
}

func TestMinOrZeroBidSentinel(t *testing.T) {
	bid := New(4) // zero sentinel
	real := Parse("0.9990", 4)
	bid.MinOrZero(real)
	assert.Equal(t, real.Value, bid.Value, "first real update must take effect from zero sentinel")

	worse := Parse("0.9995", 4)
	bid.MinOrZero(worse)
	assert.Equal(t, real.Value, bid.Value, "larger value must not overwrite once initialized")

	better := Parse("0.9980", 4)
	bid.MinOrZero(better)
	assert.Equal(t, better.Value, bid.Value, "smaller value must overwrite")
}

func TestMinOrZeroAskSentinel(t *testing.T) {
	ask := Max(4)
	real := Parse("1.0010", 4)
	ask.MinOrZero(real)
	assert.Equal(t, real.Value, ask.Value)
}

func TestMinOrZeroIgnoresZeroUpdate(t *testing.T) {
	bid := New(4)
	zero := Parse("0", 4)
	bid.MinOrZero(zero)
	assert.True(t, bid.IsZero())
}

func TestFromFloat(t *testing.T) {
	d := FromFloat(1.2345, 4)
	assert.Equal(t, "1.2345", d.String())
}

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

// Package decimal implements a fixed-point decimal type scaled by a
// runtime-configured power of ten. It exists so price and volume math on the
// trading hot path never touches float64, which drifts under repeated
// add/subtract at a fixed tick grid.
//
// Go generics cannot parametrize over a non-type value the way
// Decimal<Precision> does in the source this was ported from, so the scale
// lives as a runtime field instead of a compile-time parameter. Callers are
// responsible for constructing every Decimal in a given computation with the
// same scale; Add/Sub panic on mismatch.
package decimal

import (
	"math"
	"strconv"
	"strings"
)

// Decimal is an unsigned fixed-point number: Value / 10^Scale.
type Decimal struct {
	Value uint64
	Scale uint8
	// Error is set when Parse encountered a non-digit, non-'.' character.
	// The value is still best-effort populated up to that point.
	Error bool
}

// New constructs a zero-value Decimal at the given scale.
func New(scale uint8) Decimal {
	return Decimal{Scale: scale}
}

// FromRaw wraps an already-scaled integer value.
func FromRaw(value uint64, scale uint8) Decimal {
	return Decimal{Value: value, Scale: scale}
}

func pow10(n uint8) uint64 {
	p := uint64(1)
	for i := uint8(0); i < n; i++ {
		p *= 10
	}
	return p
}

// Parse builds a Decimal at the given scale from a textual [int][.frac]
// representation. Extra fractional digits beyond scale are truncated; fewer
// digits are zero-padded. Any character other than a digit or a single '.'
// sets Error, and parsing continues best-effort rather than aborting.
func Parse(s string, scale uint8) Decimal {
	d := Decimal{Scale: scale}

	var integerPart uint64
	var fractionalPart uint64
	var fracDigits uint8
	seenDecimal := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '.':
			if seenDecimal {
				d.Error = true
				continue
			}
			seenDecimal = true
		case c >= '0' && c <= '9':
			digit := uint64(c - '0')
			if !seenDecimal {
				integerPart = integerPart*10 + digit
			} else if fracDigits < scale {
				fractionalPart = fractionalPart*10 + digit
				fracDigits++
			}
			// extra fractional digits beyond scale are silently truncated
		default:
			d.Error = true
		}
	}

	for fracDigits < scale {
		fractionalPart *= 10
		fracDigits++
	}

	d.Value = integerPart*pow10(scale) + fractionalPart
	return d
}

// FromFloat rounds a float64 to the nearest representable value at scale.
func FromFloat(v float64, scale uint8) Decimal {
	scaled := v * float64(pow10(scale))
	if scaled < 0 {
		scaled = 0
	}
	return Decimal{Value: uint64(math.Round(scaled)), Scale: scale}
}

// String renders the value, trimming trailing fractional zeros and the
// decimal point itself if the fraction is all zero.
func (d Decimal) String() string {
	mult := pow10(d.Scale)
	integerPart := d.Value / mult
	fractionalPart := d.Value % mult

	if d.Scale == 0 {
		return strconv.FormatUint(integerPart, 10)
	}

	frac := strconv.FormatUint(fractionalPart, 10)
	for len(frac) < int(d.Scale) {
		frac = "0" + frac
	}
	frac = strings.TrimRight(frac, "0")

	if frac == "" {
		return strconv.FormatUint(integerPart, 10)
	}
	return strconv.FormatUint(integerPart, 10) + "." + frac
}

// AsDouble converts to float64.
func (d Decimal) AsDouble() float64 {
	return float64(d.Value) / float64(pow10(d.Scale))
}

// IsZero reports whether the underlying scaled value is zero.
func (d Decimal) IsZero() bool {
	return d.Value == 0
}

func (d Decimal) requireSameScale(other Decimal) {
	if d.Scale != other.Scale {
		panic("decimal: mismatched scale in arithmetic")
	}
}

// Add returns d + other. Panics if the scales differ.
func (d Decimal) Add(other Decimal) Decimal {
	d.requireSameScale(other)
	return Decimal{Value: d.Value + other.Value, Scale: d.Scale}
}

// Sub returns d - other, saturating at zero (the Value field is unsigned).
// Panics if the scales differ.
func (d Decimal) Sub(other Decimal) Decimal {
	d.requireSameScale(other)
	if other.Value > d.Value {
		return Decimal{Scale: d.Scale}
	}
	return Decimal{Value: d.Value - other.Value, Scale: d.Scale}
}

// AddTicks returns d + n*tick, where tick is a Decimal of the same scale.
func (d Decimal) AddTicks(tick Decimal, n int64) Decimal {
	d.requireSameScale(tick)
	if n >= 0 {
		return Decimal{Value: d.Value + tick.Value*uint64(n), Scale: d.Scale}
	}
	delta := tick.Value * uint64(-n)
	if delta > d.Value {
		return Decimal{Scale: d.Scale}
	}
	return Decimal{Value: d.Value - delta, Scale: d.Scale}
}

// Less reports d < other by raw integer comparison. Panics if scales differ.
func (d Decimal) Less(other Decimal) bool {
	d.requireSameScale(other)
	return d.Value < other.Value
}

// LessFloat compares against a float by converting d to float64 first.
func (d Decimal) LessFloat(v float64) bool {
	return d.AsDouble() < v
}

// GreaterFloat compares against a float by converting d to float64 first.
func (d Decimal) GreaterFloat(v float64) bool {
	return d.AsDouble() > v
}

// LessInt compares against a raw integer by comparing the raw scaled value.
func (d Decimal) LessInt(n uint64) bool {
	return d.Value < n
}

// GreaterInt compares against a raw integer by comparing the raw scaled value.
func (d Decimal) GreaterInt(n uint64) bool {
	return d.Value > n
}

// Equal reports raw-value equality at matching scale.
func (d Decimal) Equal(other Decimal) bool {
	return d.Scale == other.Scale && d.Value == other.Value
}

// MinOrZero assigns v to *d if v is non-zero and (*d is still at its zero
// sentinel, or v is less than the current value of *d). The zero-sentinel
// case is what lets InstrumentTopLevel's bid side — initialized to zero —
// pick up its first real update; the ask side's max-value sentinel makes
// that branch a no-op since any real v is already less than max. Used on the
// market-data hot path to mean "update only if we got a real quote" without
// a branch at every call site.
func (d *Decimal) MinOrZero(v Decimal) {
	if v.IsZero() {
		return
	}
	if d.IsZero() || v.Less(*d) {
		*d = v
	}
}

// Max returns a Decimal holding the maximum representable value at scale,
// used as the sentinel initial "ask" side of InstrumentTopLevel so the first
// MinOrZero update always takes effect.
func Max(scale uint8) Decimal {
	return Decimal{Value: math.MaxUint64, Scale: scale}
}

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

package config

import (
	"testing"

	"github.com/bdasgupta02/phoenix-sub000/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConvergenceRequiresCredentials(t *testing.T) {
	_, _, err := ParseConvergence([]string{"--instrument", "BTC-PERP", "--tick-size", "0.5", "--lots", "10"})
	assert.Error(t, err)
}

func TestParseConvergenceHappyPath(t *testing.T) {
	c, level, err := ParseConvergence([]string{
		"--auth-username", "u", "--auth-secret", "s", "--client", "CLIENT1",
		"--instrument", "BTC-PERP", "--tick-size", "0.5", "--lots", "10",
	})
	require.NoError(t, err)
	assert.Equal(t, "BTC-PERP", c.Instrument)
	assert.Equal(t, logging.LevelInfo, level) // default log level
}

func TestParseTriangularRequiresExactlyThreeInstruments(t *testing.T) {
	_, _, err := ParseTriangular([]string{
		"--auth-username", "u", "--auth-secret", "s", "--client", "CLIENT1",
		"--instrument", "ETH-PERP", "--instrument", "STETH-PERP",
		"--volume-size", "1", "--contract-size", "1",
	})
	assert.Error(t, err)
}

func TestParseTriangularHappyPath(t *testing.T) {
	tr, _, err := ParseTriangular([]string{
		"--auth-username", "u", "--auth-secret", "s", "--client", "CLIENT1",
		"--instrument", "ETH-PERP", "--instrument", "STETH-PERP", "--instrument", "ETH-STETH",
		"--volume-size", "1.5", "--contract-size", "1",
	})
	require.NoError(t, err)
	assert.Equal(t, [3]string{"ETH-PERP", "STETH-PERP", "ETH-STETH"}, tr.Instruments)
}

func TestParseDataCaptureRequiresAtLeastOneInstrument(t *testing.T) {
	_, _, err := ParseDataCapture([]string{
		"--auth-username", "u", "--auth-secret", "s", "--client", "CLIENT1",
	})
	assert.Error(t, err)
}

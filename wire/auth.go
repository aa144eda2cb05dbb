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
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// nonceSize matches the source's 64 random bytes per logon attempt.
const nonceSize = 64

// LogonAuth holds the RawData (tag 96) and Password (tag 554) for one Logon
// attempt. Nonces are security-critical: they are always drawn from
// crypto/rand, never a deterministic fallback, per spec §9.
type LogonAuth struct {
	RawData  string
	Password string
}

// NewLogonAuth builds the Logon auth fields for the given secret at the
// given millisecond epoch timestamp. RawData is "<ms-epoch>.<base64(64
// random bytes)>"; Password is Base64(SHA-256(RawData ++ secret)).
func NewLogonAuth(secret string, nowMs int64) (LogonAuth, error) {
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return LogonAuth{}, fmt.Errorf("wire: generating logon nonce: %w", err)
	}

	rawData := fmt.Sprintf("%d.%s", nowMs, base64.StdEncoding.EncodeToString(nonce))

	sum := sha256.Sum256([]byte(rawData + secret))
	password := base64.StdEncoding.EncodeToString(sum[:])

	return LogonAuth{RawData: rawData, Password: password}, nil
}

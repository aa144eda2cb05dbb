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

package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestThrottleAllowsUpToLimitWithinWindow(t *testing.T) {
	th := NewThrottle(5, time.Hour)
	for i := 0; i < 5; i++ {
		assert.True(t, th.TrySend(1))
	}
	assert.False(t, th.TrySend(1))
}

func TestThrottleResetsAfterIntervalElapses(t *testing.T) {
	th := NewThrottle(1, 10*time.Millisecond)
	assert.True(t, th.TrySend(1))
	assert.False(t, th.TrySend(1))

	time.Sleep(15 * time.Millisecond)
	assert.True(t, th.TrySend(1))
}

func TestThrottleRejectsBurstLargerThanLimit(t *testing.T) {
	th := NewThrottle(3, time.Hour)
	assert.False(t, th.TrySend(4))
	assert.True(t, th.TrySend(3))
}

func TestForceSendEventuallySucceedsAfterWindowReset(t *testing.T) {
	th := NewThrottle(1, 10*time.Millisecond)
	assert.True(t, th.TrySend(1))

	done := make(chan struct{})
	go func() {
		th.ForceSend(1)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("ForceSend did not return after the window reset")
	}
}

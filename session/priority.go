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
	"runtime"

	"golang.org/x/sys/unix"
)

// raiseThreadPriority locks the calling goroutine to its OS thread and
// best-effort raises its scheduling priority, mirroring the source's
// setMaxThreadPriority(). Go cannot request SCHED_FIFO without
// CAP_SYS_NICE, and most production deployments don't run with it, so a
// failure here is reported to the caller to log at WARN rather than treated
// as fatal (§5 CONCURRENCY & RESOURCE MODEL).
func raiseThreadPriority() error {
	runtime.LockOSThread()
	return unix.Setpriority(unix.PRIO_PROCESS, 0, -20)
}

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
	"fmt"
	"net"
	"strconv"
	"time"

	"golang.org/x/sys/unix"
)

const (
	socketBufSize = 256 * 1024
	socketPrio    = 6
)

// dial opens the TCP connection to host:port. In colo mode host is treated
// as a literal IP and no DNS resolution is performed, matching the source's
// colo-mode connect path.
func dial(host string, port int, colo bool) (*net.TCPConn, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(port))

	var tcpAddr *net.TCPAddr
	var err error
	if colo {
		ip := net.ParseIP(host)
		if ip == nil {
			return nil, fmt.Errorf("session: --colo set but %q is not a literal IP", host)
		}
		tcpAddr = &net.TCPAddr{IP: ip, Port: port}
	} else {
		tcpAddr, err = net.ResolveTCPAddr("tcp", addr)
		if err != nil {
			return nil, fmt.Errorf("session: resolving %s: %w", addr, err)
		}
	}

	conn, err := net.DialTCP("tcp", nil, tcpAddr)
	if err != nil {
		return nil, fmt.Errorf("session: connecting to %s: %w", addr, err)
	}
	return conn, nil
}

// tuneSocket applies the option set spec §4.4 requires beyond what
// net.TCPConn exposes directly: TCP_NODELAY is reachable through SetNoDelay,
// but SO_PRIORITY, TCP_QUICKACK, SO_BUSY_POLL and the exact send/receive
// buffer sizes need golang.org/x/sys/unix against the raw file descriptor
// (see DESIGN.md / DOMAIN STACK).
func tuneSocket(conn *net.TCPConn) error {
	if err := conn.SetNoDelay(true); err != nil {
		return fmt.Errorf("session: SetNoDelay: %w", err)
	}

	raw, err := conn.SyscallConn()
	if err != nil {
		return fmt.Errorf("session: SyscallConn: %w", err)
	}

	var setErr error
	ctrlErr := raw.Control(func(fd uintptr) {
		sockfd := int(fd)
		if e := unix.SetsockoptInt(sockfd, unix.SOL_SOCKET, unix.SO_SNDBUF, socketBufSize); e != nil {
			setErr = fmt.Errorf("SO_SNDBUF: %w", e)
			return
		}
		if e := unix.SetsockoptInt(sockfd, unix.SOL_SOCKET, unix.SO_RCVBUF, socketBufSize); e != nil {
			setErr = fmt.Errorf("SO_RCVBUF: %w", e)
			return
		}
		if e := unix.SetsockoptInt(sockfd, unix.SOL_SOCKET, unix.SO_PRIORITY, socketPrio); e != nil {
			setErr = fmt.Errorf("SO_PRIORITY: %w", e)
			return
		}
		if e := unix.SetsockoptInt(sockfd, unix.IPPROTO_TCP, unix.TCP_QUICKACK, 1); e != nil {
			setErr = fmt.Errorf("TCP_QUICKACK: %w", e)
			return
		}
		if e := unix.SetsockoptInt(sockfd, unix.SOL_SOCKET, unix.SO_BUSY_POLL, 1); e != nil {
			setErr = fmt.Errorf("SO_BUSY_POLL: %w", e)
			return
		}
	})
	if ctrlErr != nil {
		return fmt.Errorf("session: socket option control: %w", ctrlErr)
	}
	if setErr != nil {
		return fmt.Errorf("session: tuning socket: %w", setErr)
	}
	return nil
}

// deadlineRead reads one chunk from conn into buf with a short deadline so
// the session loop can periodically check the heartbeat timer and the risk
// latch between reads, rather than blocking forever on Read.
func deadlineRead(conn *net.TCPConn, buf []byte, timeout time.Duration) (int, error) {
	if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return 0, fmt.Errorf("session: SetReadDeadline: %w", err)
	}
	return conn.Read(buf)
}

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
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/bdasgupta02/phoenix-sub000/dispatch"
	"github.com/bdasgupta02/phoenix-sub000/framer"
	"github.com/bdasgupta02/phoenix-sub000/orders"
	"github.com/bdasgupta02/phoenix-sub000/risk"
	"github.com/bdasgupta02/phoenix-sub000/wire"
)

// State is the session lifecycle state (§4.4).
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateAuthenticating
	StateRunning
	StateStopping
	StateTerminated
)

const (
	heartbeatInterval = 25 * time.Second
	readTimeout       = 100 * time.Millisecond
	authReadTimeout   = 5 * time.Second
)

// Config bundles the connection and identity parameters every strategy
// binary supplies to build an Engine.
type Config struct {
	Host     string
	Port     int
	Colo     bool
	Client   string
	Username string
	Secret   string

	// ThrottleLimit/ThrottleInterval size the SendQuotes sliding window
	// (§4.4 Throttle: 200ms/5 for convergence, 1s/5 for sniper & triangular).
	ThrottleLimit    int
	ThrottleInterval time.Duration
}

// Engine owns the socket, the wire encoder, the receive framer, and the
// send throttle, and drives the session lifecycle loop. It implements
// dispatch.Sender so strategy cores can place/take/cancel orders without
// importing this package.
type Engine struct {
	cfg Config

	conn *net.TCPConn
	enc  *wire.Encoder
	ring framer.Ring

	seqNum   uint64
	throttle *Throttle

	logger   dispatch.Logger
	risk     *risk.Latch
	strategy dispatch.Strategy

	state         State
	lastHeartbeat time.Time
}

// New builds an Engine. strategy is nil until SetStrategy is called, which
// resolves the construction-order cycle (the strategy core needs a Sender,
// and the Sender is this Engine).
func New(cfg Config, logger dispatch.Logger, lat *risk.Latch) *Engine {
	return &Engine{
		cfg:      cfg,
		enc:      wire.NewEncoder(cfg.Client),
		throttle: NewThrottle(cfg.ThrottleLimit, cfg.ThrottleInterval),
		logger:   logger,
		risk:     lat,
		state:    StateDisconnected,
	}
}

// SetStrategy wires the strategy core invoked on every MDUpdate/ExecutionReport.
func (e *Engine) SetStrategy(s dispatch.Strategy) { e.strategy = s }

// Connect dials and tunes the socket. Connection failure is fatal (§4.4).
func (e *Engine) Connect() error {
	e.state = StateConnecting
	conn, err := dial(e.cfg.Host, e.cfg.Port, e.cfg.Colo)
	if err != nil {
		return err
	}
	if err := tuneSocket(conn); err != nil {
		conn.Close()
		return err
	}
	e.conn = conn
	return nil
}

func (e *Engine) nextSeqNum() uint64 {
	e.seqNum++
	return e.seqNum
}

func (e *Engine) write(msg []byte) error {
	_, err := e.conn.Write(msg)
	return err
}

// Authenticate sends Logon, reads exactly one reply, and verifies it is a
// Logon ack. It then immediately issues the supplemented RequestForPositions
// (SPEC_FULL.md §SUPPLEMENTED FEATURES) before the caller subscribes to
// market data.
func (e *Engine) Authenticate() error {
	e.state = StateAuthenticating

	msg, err := wire.BuildLogon(e.enc, e.nextSeqNum(), e.cfg.Username, e.cfg.Secret, int(heartbeatInterval/time.Second), time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("session: building logon: %w", err)
	}
	if err := e.write(msg); err != nil {
		return fmt.Errorf("session: sending logon: %w", err)
	}

	reply, err := e.readOneBlocking(authReadTimeout)
	if err != nil {
		return fmt.Errorf("session: reading logon ack: %w", err)
	}
	r := wire.NewReader(reply)
	if !r.IsMessageType(wire.MsgTypeLogon) {
		return fmt.Errorf("session: expected Logon ack, got MsgType=%s", r.MsgType())
	}

	if err := e.write(wire.BuildRequestForPositions(e.enc, e.nextSeqNum())); err != nil {
		return fmt.Errorf("session: sending RequestForPositions: %w", err)
	}
	return nil
}

// readOneBlocking reads framed messages off the socket until one fully
// frames, retrying short deadline-exceeded reads up to the given overall
// timeout budget.
func (e *Engine) readOneBlocking(timeout time.Duration) ([]byte, error) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		n, err := deadlineRead(e.conn, e.ring.WritableRegion(), readTimeout)
		if err != nil {
			if isTimeout(err) {
				continue
			}
			return nil, err
		}
		if msg, ok := e.ring.TakeMessage(n); ok {
			return msg, nil
		}
	}
	return nil, errors.New("session: timed out waiting for a framed reply")
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// Subscribe sends a single-symbol incremental MarketDataRequest.
func (e *Engine) Subscribe(symbol string) error {
	return e.write(wire.BuildMarketDataRequestIncremental(e.enc, e.nextSeqNum(), symbol))
}

// SubscribeTriple sends the triangular arbitrageur's three-symbol request.
func (e *Engine) SubscribeTriple(symbols [3]string) error {
	return e.write(wire.BuildMarketDataRequestTriple(e.enc, e.nextSeqNum(), symbols))
}

// SendQuotes implements dispatch.Sender: submits limit orders through the
// throttle. Returns false (and sends nothing) if the window has no room.
func (e *Engine) SendQuotes(os ...orders.Order) bool {
	if !e.throttle.TrySend(len(os)) {
		return false
	}
	for _, o := range os {
		if err := e.write(wire.BuildNewOrderSingle(e.enc, e.nextSeqNum(), o)); err != nil {
			e.logger.Error("session: SendQuotes write failed:", err)
			return false
		}
	}
	return true
}

// TakeMarketOrder implements dispatch.Sender: force-sends a FOK market
// order, busy-waiting on the throttle rather than dropping it.
func (e *Engine) TakeMarketOrder(o orders.Order) {
	e.throttle.ForceSend(1)
	if err := e.write(wire.BuildMarketOrderSingle(e.enc, e.nextSeqNum(), o)); err != nil {
		e.logger.Error("session: TakeMarketOrder write failed:", err)
	}
}

// TakeMarketOrders implements dispatch.Sender: submits one or more FOK
// market orders through the throttle as a single atomic submission, used by
// the triangular arbitrageur for its 3-leg entry and single-leg cancel-retry.
func (e *Engine) TakeMarketOrders(os ...orders.Order) bool {
	if !e.throttle.TrySend(len(os)) {
		return false
	}
	for _, o := range os {
		if err := e.write(wire.BuildMarketOrderSingle(e.enc, e.nextSeqNum(), o)); err != nil {
			e.logger.Error("session: TakeMarketOrders write failed:", err)
			return false
		}
	}
	return true
}

// CancelQuote implements dispatch.Sender: force-sends an OrderCancelRequest.
func (e *Engine) CancelQuote(symbol, orderId string) {
	e.throttle.ForceSend(1)
	if err := e.write(wire.BuildOrderCancelRequest(e.enc, e.nextSeqNum(), symbol, orderId)); err != nil {
		e.logger.Error("session: CancelQuote write failed:", err)
	}
}

// Run drives the Running-state main loop until ctx is cancelled, the risk
// latch trips, or a fatal protocol error occurs.
func (e *Engine) Run(ctx context.Context) error {
	e.state = StateRunning
	e.lastHeartbeat = time.Now()

	if err := raiseThreadPriority(); err != nil {
		e.logger.Warn("session: raising thread priority failed:", err)
	}

	for {
		select {
		case <-ctx.Done():
			e.Stop()
			return ctx.Err()
		default:
		}

		if e.risk.Aborted() {
			e.Stop()
			return errors.New("session: risk latch aborted the session")
		}

		if time.Since(e.lastHeartbeat) >= heartbeatInterval {
			if err := e.write(wire.BuildHeartbeat(e.enc, e.nextSeqNum(), "")); err != nil {
				e.logger.Fatal("session: heartbeat write failed:", err)
				e.Stop()
				return err
			}
			e.lastHeartbeat = time.Now()
		}

		n, err := deadlineRead(e.conn, e.ring.WritableRegion(), readTimeout)
		if err != nil {
			if isTimeout(err) {
				continue
			}
			e.logger.Fatal("session: read failed:", err)
			e.Stop()
			return err
		}

		for {
			msg, ok := e.ring.TakeMessage(n)
			n = 0
			if !ok {
				break
			}
			if fatal := e.handle(msg); fatal != nil {
				e.logger.Fatal("session: fatal protocol event:", fatal)
				e.Stop()
				return fatal
			}
			if e.risk.Aborted() {
				e.Stop()
				return errors.New("session: risk latch aborted the session")
			}
		}
	}
}

// handle classifies one framed message by MsgType and dispatches it,
// returning a non-nil error only for the fatal cases in §4.2's incoming
// message table (Reject, MarketDataRequestReject, or anything unrecognized),
// for a venue Logout, and for a failed TestRequest heartbeat reply. The
// RequestForPositions reply (AO/AP) is logged at INFO.
func (e *Engine) handle(msg []byte) error {
	r := wire.NewReader(msg)
	switch r.MsgType() {
	case wire.MsgTypeHeartbeat:
		e.logger.Debug("session: heartbeat received")
	case wire.MsgTypeTestRequest:
		testReqID := r.GetString(wire.TagTestReqID, 0)
		return e.write(wire.BuildHeartbeat(e.enc, e.nextSeqNum(), testReqID))
	case wire.MsgTypeExecutionReport:
		e.strategy.ExecutionReport(r)
	case wire.MsgTypeMarketDataSnapshot:
		e.strategy.MDUpdate(r, false)
	case wire.MsgTypeMarketDataIncremental:
		e.strategy.MDUpdate(r, true)
	case wire.MsgTypeReject:
		return fmt.Errorf("session: venue sent Reject: %s", r.GetString(wire.TagText, 0))
	case wire.MsgTypeMarketDataReject:
		return fmt.Errorf("session: venue sent MarketDataRequestReject: %s", r.GetString(wire.TagText, 0))
	case wire.MsgTypeLogout:
		return fmt.Errorf("session: venue sent Logout")
	case "AO", "AP":
		e.logger.Info("session: position response received, MsgType", r.MsgType())
	default:
		return fmt.Errorf("session: unrecognized MsgType %q", r.MsgType())
	}
	return nil
}

// Stop issues a best-effort Logout and closes the socket (§4.4 Stopping).
func (e *Engine) Stop() {
	if e.state == StateTerminated {
		return
	}
	e.state = StateStopping
	if e.conn != nil {
		e.write(wire.BuildLogout(e.enc, e.nextSeqNum()))
		e.conn.Close()
	}
	e.state = StateTerminated
}

// State reports the current lifecycle state.
func (e *Engine) State() State { return e.state }

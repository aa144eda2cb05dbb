// Package dispatch declares the small set of interfaces that stand in for
// the source's compile-time dispatch graph (spec §4.5, §9).
//
// The source's Router is a tuple of node types wired together at compile
// time with zero runtime indirection: invoke() fans out to every node
// implementing a handler, retrieve() requires exactly one implementor, and
// every call is a direct, non-virtual method call. Go has no equivalent
// zero-cost compile-time polymorphism (generics are type-only, and a
// generic type parameter constrained by an interface still dispatches
// through an interface table in the general case), so this package instead
// defines narrow, single-purpose interfaces — one method set per concern —
// rather than one large node type. Each binary under cmd/ wires exactly one
// concrete implementation to each interface, which is the closest Go gets to
// "exactly one retrieve implementor": the compiler can and does devirtualize
// an interface call with a single concrete type in its call graph in common
// cases, and there is never more than one live implementation per binary.
//
// Fan-out ("invoke", side-effectful, every implementor called) has no
// multi-node case in this system — every invoke site in the source notifies
// exactly the logger, the risk latch, and one strategy core, so it is
// written out as a fixed, hand-ordered sequence of direct calls in
// session.Engine.handle rather than a generic loop over a node slice.
package dispatch

import (
	"github.com/bdasgupta02/phoenix-sub000/orders"
	"github.com/bdasgupta02/phoenix-sub000/wire"
)

// Logger is the subset of logging.Logger every hot-path component depends
// on. A Fatal call sets the shared risk latch (source: PHOENIX_LOG_FATAL ->
// tag::Risk::Abort).
type Logger interface {
	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)
	Fatal(args ...any)
	Verify(condition bool, args ...any)
	CSV(fields ...any)
}

// RiskChecker exposes the one-shot abort latch to hot-path handlers.
type RiskChecker interface {
	Aborted() bool
}

// Sender is implemented by the session engine and used by a strategy core to
// place, take, and cancel orders without importing the session package.
type Sender interface {
	// SendQuotes submits one or more limit orders through the throttle.
	// Returns false if the throttle window has no capacity (source:
	// tag::Stream::SendQuotes).
	SendQuotes(orders ...orders.Order) bool
	// TakeMarketOrder force-sends a single FOK market order, busy-waiting on
	// the throttle until it has room, and does not report submission failure back to the caller
	// (source: sniper's fire-and-forget `invoke(tag::Stream::TakeMarketOrders{}, order)`).
	TakeMarketOrder(order orders.Order)
	// TakeMarketOrders submits one or more FOK market orders as a single
	// atomic submission and reports whether the throttle accepted them; a
	// refused submission sends nothing
	// (source: triangular's `retrieve(tag::Stream::TakeMarketOrders{}, ...)`,
	// used both for the initial 3-leg submission and, with a single order,
	// the busy-retry loop on a cancelled leg).
	TakeMarketOrders(orders ...orders.Order) bool
	// CancelQuote force-sends an OrderCancelRequest for orderId on symbol
	// (source: tag::Stream::CancelQuote).
	CancelQuote(symbol, orderId string)
}

// Strategy is implemented by each strategy core and invoked by the session
// engine on every classified market-data update and execution report.
type Strategy interface {
	MDUpdate(r *wire.Reader, update bool)
	ExecutionReport(r *wire.Reader)
}

// FillRecorder is the optional hot-path hook a strategy core calls on fill
// execution reports (every core on Filled; the convergence quoter also on
// PartiallyFilled). It is satisfied by
// persistence.FillFeed; a cmd/* binary wires it in only when --trade-db is
// set, so every strategy core must treat a nil FillRecorder as "don't record"
// rather than assuming one is always present (supplemented feature: the
// retrieved source has no trade-capture database at all).
type FillRecorder interface {
	RecordFill(symbol, orderId, clOrdId string, side uint, price, volume float64)
}

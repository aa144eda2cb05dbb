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

// Package wire implements the tag-value wire codec: encoder, parser, and
// the Logon nonce/SHA-256/Base64 authentication scheme.
package wire

// Tag is a FIX-style numeric field tag. Declared as a distinct type (rather
// than reusing the quickfixgo Tag type the teacher depends on) so this
// package has no session/transport dependency of its own.
type Tag uint

// Field tags used by the message catalogue in SPEC_FULL.md §4.2.
const (
	TagAccount          Tag = 1
	TagBeginString      Tag = 8
	TagBodyLength       Tag = 9
	TagCheckSum         Tag = 10
	TagClOrdID          Tag = 11
	TagOrigClOrdID      Tag = 41
	TagMsgSeqNum        Tag = 34
	TagMsgType          Tag = 35
	TagOrderQty         Tag = 38
	TagOrdType          Tag = 40
	TagPrice            Tag = 44
	TagSenderCompID     Tag = 49
	TagSide             Tag = 54
	TagSymbol           Tag = 55
	TagTargetCompID     Tag = 56
	TagTimeInForce      Tag = 59
	TagHeartBtInt       Tag = 108
	TagTestReqID        Tag = 112
	TagRawData          Tag = 96
	TagUsername         Tag = 553
	TagPassword         Tag = 554
	TagNoMDEntryTypes   Tag = 267
	TagNoRelatedSym     Tag = 146
	TagMDReqID          Tag = 262
	TagSubscriptionType Tag = 263
	TagMarketDepth      Tag = 264
	TagMDUpdateType     Tag = 265
	TagNoMDEntries      Tag = 268
	TagMDEntryType      Tag = 269
	TagMDEntryPx        Tag = 270
	TagMDEntrySize      Tag = 271
	TagOrdStatus        Tag = 39
	TagExecID           Tag = 17
	TagLeavesQty        Tag = 151
	TagCumQty           Tag = 14
	TagText             Tag = 103
	TagNoFills          Tag = 1362
	TagFillPx           Tag = 1364
	TagFillQty          Tag = 1365
	TagPosReqID         Tag = 710
	TagPosReqType       Tag = 724
	TagCancelOnDisconnect Tag = 9001
	TagIndexPrice       Tag = 100090

)

// MsgType values, matching spec §4.2's message catalogue.
const (
	MsgTypeLogon                 = "A"
	MsgTypeLogout                = "5"
	MsgTypeHeartbeat             = "0"
	MsgTypeTestRequest           = "1"
	MsgTypeReject                = "3"
	MsgTypeNewOrderSingle        = "D"
	MsgTypeOrderCancelRequest    = "F"
	MsgTypeExecutionReport       = "8"
	MsgTypeMarketDataRequest     = "V"
	MsgTypeMarketDataSnapshot    = "W"
	MsgTypeMarketDataIncremental = "X"
	MsgTypeMarketDataReject      = "Y"
	MsgTypeRequestForPositions   = "AN"
)

// OrdStatus values (tag 39), used by every strategy core's execution report
// branch.
const (
	OrdStatusNew             = 0
	OrdStatusPartiallyFilled = 1
	OrdStatusFilled          = 2
	OrdStatusCancelled       = 4
	OrdStatusRejected        = 8
)

const (
	beginString    = "FIX.4.4"
	targetCompID   = "DERIBITSERVER"
	headerBufSize  = 32
	fieldDelimiter = byte(0x01)
)

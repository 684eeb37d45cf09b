// Package fsapi implements the HTTP control protocol spoken by Frontier
// Silicon network receivers.
//
// # Overview
//
// This package is the real Transport behind the radio service. It opens a
// PIN-authenticated session against a device base URL and exposes the small
// set of control operations fsradio needs: friendly name, power, volume,
// mode list and selection, and preset list and recall.
//
// # Protocol Shape
//
// Every operation is an HTTP GET whose response is a small XML document:
//
//	GET {base}/CREATE_SESSION?pin=1234
//	GET {base}/GET/netRemote.sys.power?pin=1234&sid=927383
//	GET {base}/SET/netRemote.sys.audio.volume?pin=1234&sid=927383&value=7
//	GET {base}/LIST_GET_NEXT/netRemote.sys.caps.validModes/-1?pin=1234&sid=927383&maxItems=65536
//
// and the envelope always carries a status code:
//
//	<fsapiResponse>
//	  <status>FS_OK</status>
//	  <value><u8>1</u8></value>
//	</fsapiResponse>
//
// Scalar values arrive as c8_array (text), u8, or u32 members. List rows
// arrive as item elements keyed by the token that SET operations expect.
// Any status other than FS_OK (or FS_LIST_END on list reads) is surfaced as
// an error naming the node and the status.
//
// # Sessions
//
// Dial performs CREATE_SESSION and keeps the returned session id; every
// later request carries it alongside the PIN. Devices in this family answer
// nav tree reads with FS_NODE_BLOCKED until netRemote.nav.state is raised,
// so the preset operations raise it first.
//
// # Base URLs
//
// The client takes whatever base it is given: with a /device or /fsapi
// control path or without one. It never second-guesses the candidate; a
// wrong base simply fails CREATE_SESSION and the connect loop in the radio
// package moves on.
//
// # Design Rationale
//
// The client holds no retry or reconnect logic and serializes nothing.
// Serialization lives in the radio service, which owns the only goroutine
// that ever calls into a Client, and retry policy belongs to whoever drives
// the service.
package fsapi

// Package radio implements connection handling and command dispatch for a
// Frontier Silicon network receiver.
//
// # Overview
//
// This package is the device-facing core of fsradio. It turns a user-supplied
// address into candidate control URLs, establishes a probed session against
// the first candidate that answers, and then serializes every device command
// through a single worker so the receiver only ever sees one request at a
// time.
//
// # Architecture
//
// The package is split into five files:
//
//   - resolver.go: Candidate URL derivation from free-form input
//   - transport.go: The Transport interface and the Dialer function type
//   - session.go: Connect configuration and the candidate trial walk
//   - service.go: The serialized command service and its worker loop
//   - errors.go: Sentinel errors and structured error types
//
// # Candidate Resolution
//
// Users identify a receiver loosely: a bare IP, a host:port pair, or a full
// URL. Candidates expands that into an ordered trial list:
//
//	radio.Candidates("192.168.0.153")
//	// → http://192.168.0.153:80/device
//	//   http://192.168.0.153:80/fsapi
//	//   http://192.168.0.153
//
//	radio.Candidates("10.0.0.5:8080/fsapi")
//	// → http://10.0.0.5:8080/fsapi
//
// The scheme defaults to http:// and an explicit /device or /fsapi path is
// trusted as the only candidate. Resolution is pure string work: no DNS, no
// I/O, no reachability checks.
//
// # Connection Lifecycle
//
// Connect walks the candidate list in order. Each candidate is dialed and
// then probed by fetching the device's friendly name; the first candidate
// that survives both steps becomes the active session and later candidates
// are never attempted. A session carries a generated identifier, the winning
// URL, and the probed name:
//
//	svc := radio.NewService(fsapi.Dial, radio.WithLogger(logger))
//	defer svc.Close()
//
//	info, err := svc.Connect(ctx, radio.ConnectConfig{
//		Address: "192.168.0.153",
//		PIN:     1234,
//		Timeout: 2 * time.Second,
//	})
//	if err != nil {
//		log.Fatalf("connect: %v", err)
//	}
//	fmt.Println(info.Name, info.URL)
//
// If every candidate fails, Connect returns a *ConnectError listing the full
// attempted sequence plus the last underlying cause. A failed connect or
// reconnect always leaves the service cleanly disconnected.
//
// # Command Serialization
//
// Receivers in this family mishandle overlapping control requests, so the
// Service owns one worker goroutine and a FIFO queue. Every operation,
// connects and disconnects included, runs on that worker in submission
// order. Callers block until their operation completes; concurrent callers
// are safe and simply queue behind one another.
//
// A cancelled caller context abandons only the wait. An operation that has
// already been queued still runs to completion in its original position, so
// cancellation can never reorder or interleave device traffic.
//
// # Guarded Commands
//
// Commands issued while no session is active fail immediately with
// ErrNotConnected and never enter the queue. The guard is re-checked on the
// worker before the transport is touched, because a disconnect queued ahead
// of a command may have cleared the session in the meantime.
//
// # Error Handling
//
// The package distinguishes four failure shapes:
//
//   - ErrEmptyAddress: the address resolved to no candidates
//   - *ConnectError: every candidate failed (carries the attempted list)
//   - ErrNotConnected: a command was issued without an active session
//   - *CallError: the transport failed during a command
//
// A *CallError does not demote the connection. The session survives
// transient device hiccups and callers decide whether to reconnect.
// ErrServiceClosed is reported for any operation after Close.
//
// # Thread Safety
//
// All Service methods are safe for concurrent use. Connection state is a
// single atomic word written only by the worker, and the session record is
// owned exclusively by the worker goroutine.
//
// # Design Rationale
//
// The Transport interface keeps this package free of HTTP and XML concerns:
// fsapi provides the real implementation and tests substitute fakes. The
// Dialer indirection means candidate trial logic can be exercised without a
// device on the network.
package radio

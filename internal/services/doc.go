// Package services defines the [Catalog] interface for the Monster Siren API and implements it with [SirenService].
//
// # Requests
//
// Every operation goes through one send primitive: join the relative path onto the base URL, append the query
// parameters in their declared order, send a GET, require a 2xx status and decode the body into a
// [models.Envelope]. Parameters with an empty value are left out of the URL entirely, so an absent lastCid
// cursor is never sent as an empty string. The upstream reads a missing cursor as "start from the beginning".
//
// The base URL is normalized once at construction by stripping trailing slashes.
//
// # Error Handling
//
// Failures are classified where they happen:
//   - [RemoteError] : transport failure, body read failure or non-2xx status.
//     Matches [shared.ErrRemoteTimeout] when the call ran out of time, [shared.ErrRemoteUnavailable] otherwise.
//   - [DecodeError] : a body that is not the expected JSON shape. Matches [shared.ErrDecodeFailure].
//
// Nothing is retried. A timeout comes from the client's per-call deadline (30s unless configured) or from the
// caller's context.
//
// # Concurrency
//
// [SirenService] holds no mutable state. One instance, and its connection pool, is shared by every request.
package services

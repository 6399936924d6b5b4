// Package docstore talks to the remote document store over REST.
//
// The client never writes economy fields. It publishes the public projection
// of a player, records command intents for the backend to resolve, and reads
// the authoritative user document back for reconciliation. Every write is
// checked against contract.Authorize before it leaves the process.
//
// Transport: resty over a retryablehttp round tripper, a token-bucket rate
// limiter and a circuit breaker.
package docstore

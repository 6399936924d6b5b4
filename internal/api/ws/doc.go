// Package ws streams one desktop session over a WebSocket.
//
// The connection is bound to a session at upgrade time. The server sends a
// snapshot on connect and answers every client message with exactly one
// reply: "snapshot", "pong" or "error". Replies are written from the read
// loop, so a connection never has concurrent writers.
package ws

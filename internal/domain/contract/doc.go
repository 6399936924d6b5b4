// Package contract describes the remote document store the game writes to.
//
// It holds the document shapes (private user doc, public projection, static
// command/quest/match/admin-log docs) and a local evaluator of the store's
// write-authority rules. Economy fields (balance, xp, trace, level,
// cooldowns) are server-authoritative: clients submit intents, never
// economy writes.
package contract

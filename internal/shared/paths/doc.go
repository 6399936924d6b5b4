// Package paths provides standardized document store paths.
//
// All document reads and writes go through these constants so the local
// write-authority policy and the remote store agree on the layout.
//
// # Layout
//
//	users/{uid}
//	  ├── commandIntents/{intentId}
//	  ├── cooldowns/{commandId}   (admin only)
//	  └── questClaims/{questId}
//	userPublic/{uid}
//	commands/{commandId}          (admin only)
//	quests/{questId}              (admin only)
//	adminLogs/{logId}             (admin create, append-only)
//	marketRotations, seasonConfigs, globalState, pvpMatches, economySnapshots
package paths

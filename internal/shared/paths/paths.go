package paths

import (
	"fmt"
	"strings"
)

// Top-level collections
const (
	Users            = "users"
	UserPublic       = "userPublic"
	Commands         = "commands"
	Quests           = "quests"
	MarketRotations  = "marketRotations"
	SeasonConfigs    = "seasonConfigs"
	GlobalState      = "globalState"
	PvPMatches       = "pvpMatches"
	AdminLogs        = "adminLogs"
	EconomySnapshots = "economySnapshots"
)

// User subcollections
const (
	CommandIntents = "commandIntents"
	Cooldowns      = "cooldowns"
	QuestClaims    = "questClaims"
)

// Query budgets
const (
	LeaderboardTop     = 100
	PvPQueueWindow     = 50
	GlobalEventsWindow = 30
)

// User returns the path of a private user document
func User(uid string) string {
	return Users + "/" + uid
}

// Public returns the path of a public projection document
func Public(uid string) string {
	return UserPublic + "/" + uid
}

// UserSub returns the path of a document in a user subcollection
func UserSub(uid, sub, docID string) string {
	return fmt.Sprintf("%s/%s/%s/%s", Users, uid, sub, docID)
}

// UserSubCollection returns the path of a user subcollection
func UserSubCollection(uid, sub string) string {
	return fmt.Sprintf("%s/%s/%s", Users, uid, sub)
}

// Doc returns the path of a document in a top-level collection
func Doc(collection, docID string) string {
	return collection + "/" + docID
}

// Split breaks a document path into its segments, ignoring empty ones
func Split(path string) []string {
	raw := strings.Split(strings.Trim(path, "/"), "/")
	segments := raw[:0]
	for _, s := range raw {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

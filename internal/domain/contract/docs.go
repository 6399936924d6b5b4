package contract

import "time"

// QuestProgress tracks one quest for one user
type QuestProgress struct {
	QuestID   string    `json:"questId"`
	Progress  int       `json:"progress"`
	Completed bool      `json:"completed"`
	Claimed   bool      `json:"claimed"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BlockAsset is a blockchain asset owned by a user
type BlockAsset struct {
	BlockID              string     `json:"blockId"`
	Tier                 int        `json:"tier"`
	PassiveIncomePerHour int        `json:"passiveIncomePerHour"`
	VulnerableUntil      *time.Time `json:"vulnerableUntil"`
}

// PvPRecord is a user's arena record
type PvPRecord struct {
	Wins          int `json:"wins"`
	Losses        int `json:"losses"`
	CurrentStreak int `json:"currentStreak"`
	HighestStreak int `json:"highestStreak"`
	Rating        int `json:"rating"`
}

// UserPrivateDoc is stored at users/{uid}
type UserPrivateDoc struct {
	UID              string                   `json:"uid"`
	DisplayName      string                   `json:"displayName"`
	PhotoURL         *string                  `json:"photoURL"`
	Balance          int                      `json:"balance"`
	Trace            int                      `json:"trace"`
	XP               int                      `json:"xp"`
	Level            int                      `json:"level"`
	RankScore        int                      `json:"rankScore"`
	OwnedCommands    []string                 `json:"ownedCommands"`
	InstalledModules []string                 `json:"installedModules"`
	Traits           []string                 `json:"traits"`
	Cooldowns        map[string]time.Time     `json:"cooldowns"`
	QuestProgress    map[string]QuestProgress `json:"questProgress"`
	BlockchainAssets map[string]BlockAsset    `json:"blockchainAssets"`
	PvP              PvPRecord                `json:"pvp"`
	IsAdmin          bool                     `json:"isAdmin"`
	CreatedAt        time.Time                `json:"createdAt"`
	UpdatedAt        time.Time                `json:"updatedAt"`
	LastSeenAt       time.Time                `json:"lastSeenAt"`
}

// UserPublicProjectionDoc is stored at userPublic/{uid} and is readable by
// anyone
type UserPublicProjectionDoc struct {
	UID             string    `json:"uid"`
	DisplayName     string    `json:"displayName"`
	AvatarFrame     string    `json:"avatarFrame"`
	Level           int       `json:"level"`
	RankScore       int       `json:"rankScore"`
	FactionTag      string    `json:"factionTag"`
	BadgeHighlights []string  `json:"badgeHighlights"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// CommandTier groups commands by progression stage
type CommandTier string

const (
	TierEarly CommandTier = "early"
	TierMid   CommandTier = "mid"
	TierLate  CommandTier = "late"
)

// CommandDoc is stored at commands/{commandId}
type CommandDoc struct {
	CommandID      string      `json:"commandId"`
	Name           string      `json:"name"`
	Tier           CommandTier `json:"tier"`
	CooldownMs     int64       `json:"cooldownMs"`
	BaseReward     int         `json:"baseReward"`
	TraceImpact    int         `json:"traceImpact"`
	RequiredLevel  int         `json:"requiredLevel"`
	RequiredTraits []string    `json:"requiredTraits"`
	IsActive       bool        `json:"isActive"`
}

// QuestType is the quest rotation cadence
type QuestType string

const (
	QuestDaily    QuestType = "daily"
	QuestWeekly   QuestType = "weekly"
	QuestSeasonal QuestType = "seasonal"
)

// QuestDoc is stored at quests/{questId}
type QuestDoc struct {
	QuestID       string    `json:"questId"`
	Type          QuestType `json:"type"`
	ObjectiveKey  string    `json:"objectiveKey"`
	Target        int       `json:"target"`
	RewardCredits int       `json:"rewardCredits"`
	RewardXP      int       `json:"rewardXp"`
	ExpiresAt     time.Time `json:"expiresAt"`
	IsActive      bool      `json:"isActive"`
}

// MatchStatus is the lifecycle of a PvP match
type MatchStatus string

const (
	MatchQueued    MatchStatus = "queued"
	MatchActive    MatchStatus = "active"
	MatchCompleted MatchStatus = "completed"
	MatchAborted   MatchStatus = "aborted"
)

// PvpMatchDoc is stored at pvpMatches/{matchId}
type PvpMatchDoc struct {
	MatchID        string      `json:"matchId"`
	PlayerAUID     string      `json:"playerAUid"`
	PlayerBUID     string      `json:"playerBUid"`
	Status         MatchStatus `json:"status"`
	WinnerUID      *string     `json:"winnerUid"`
	StartedAt      *time.Time  `json:"startedAt"`
	EndedAt        *time.Time  `json:"endedAt"`
	ResolutionHash *string     `json:"resolutionHash"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// AdminLogDoc is stored at adminLogs/{logId} and is append-only
type AdminLogDoc struct {
	LogID       string    `json:"logId"`
	ActorUID    string    `json:"actorUid"`
	Action      string    `json:"action"`
	TargetPath  string    `json:"targetPath"`
	PayloadHash string    `json:"payloadHash"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CommandIntentDoc is stored at users/{uid}/commandIntents/{intentId}. The
// backend resolves it into economy changes.
type CommandIntentDoc struct {
	IntentID    string    `json:"intentId"`
	UID         string    `json:"uid"`
	CommandID   string    `json:"commandId"`
	RequestedAt time.Time `json:"requestedAt"`
}

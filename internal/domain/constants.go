package domain

const (
	StyleCasual       = "casual"
	StyleFormal       = "formal"
	StyleFriendly     = "friendly"
	StyleProfessional = "professional"
)

const (
	GoalFriendship = "friendship"
	GoalRomance    = "romance"
	GoalNetworking = "networking"
	GoalCasual     = "casual"
)

const (
	MatchStatusPending  = "pending"
	MatchStatusAccepted = "accepted"
	MatchStatusRejected = "rejected"
)

const (
	MessageTypeText   = "text"
	MessageTypeAI     = "ai"
	MessageTypeSystem = "system"
)

const (
	ToneHappy   = "happy"
	ToneSad     = "sad"
	ToneExcited = "excited"
	ToneCalm    = "calm"
	ToneNeutral = "neutral"
)

// Match discovery policy defaults (see config.MatchConfig).
const (
	DefaultMatchLimit  = 10
	MinCompatibility   = 50
	CandidateOverfetch = 2
)

// Height bounds in centimeters for a valid profile.
const (
	MinHeightCm = 100
	MaxHeightCm = 250
)

package pet

// Game constants
const (
	MaxStat = 100
	MinStat = 0

	SadMuscleThreshold = 30 // muscle below this makes the creature sad

	// Status emojis
	StatusEmojiNormal  = "😸"
	StatusEmojiSad     = "😿"
	StatusEmojiIdle    = "😺"
	StatusEmojiNirvana = "🪷"
)

// Stat names
const (
	Hygiene      Stat = "hygiene"
	Fun          Stat = "fun"
	Muscle       Stat = "muscle"
	Intelligence Stat = "intelligence"
)

// AllStats lists every stat in declaration order.
var AllStats = []Stat{Hygiene, Fun, Muscle, Intelligence}

// Mood values
const (
	MoodNormal Mood = "normal"
	MoodSad    Mood = "sad"
)

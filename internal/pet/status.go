package pet

// Mood is derived from stats on every evaluation and never stored on its own.
type Mood string

// EvaluateMood returns sad while muscle is below SadMuscleThreshold.
func EvaluateMood(s Stats) Mood {
	if s.Muscle < SadMuscleThreshold {
		return MoodSad
	}
	return MoodNormal
}

// GetStatus returns the status emoji for a creature in the given state.
func GetStatus(mood Mood, idle, nirvana bool) string {
	switch {
	case nirvana:
		return StatusEmojiNirvana
	case mood == MoodSad:
		return StatusEmojiSad
	case idle:
		return StatusEmojiIdle
	default:
		return StatusEmojiNormal
	}
}

// GetStatusWithLabel returns status with a text label for the UI
func GetStatusWithLabel(mood Mood, idle, nirvana bool) string {
	status := GetStatus(mood, idle, nirvana)
	switch {
	case nirvana:
		return status + " Nirvana"
	case mood == MoodSad && idle:
		return status + " Sulking"
	case mood == MoodSad:
		return status + " Sad"
	case idle:
		return status + " Daydreaming"
	default:
		return status + " Happy"
	}
}

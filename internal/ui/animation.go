package ui

import (
	"math"
	"time"
)

// AnimationType represents the type of full-screen animation
type AnimationType int

const (
	AnimNone AnimationType = iota
	AnimRebirth
	AnimNirvana
)

// Animation holds the current animation state
type Animation struct {
	Type      AnimationType
	Frame     int
	StartTime time.Time
}

// AnimationFrames contains ASCII art frames for each animation type
var AnimationFrames = map[AnimationType][]string{
	AnimRebirth: {
		`
        .
`,
		`
      . * .
     *  ✨  *
      . * .
`,
		`
   *  .  ✨  .  *
  .  ✨  ☀️  ✨  .
   *  .  ✨  .  *
`,
		`
      . * .
     *  🥚  *
      . * .
`,
		`

        🐣

`,
	},
	AnimNirvana: {
		`
        .
`,
		`
       ✨🪷✨
`,
		`
     ✨  🪷  ✨
    *    ॐ    *
`,
		`
   ✨    🪷    ✨
  *   ~  ॐ  ~   *
   ✨    ☯️    ✨
`,
	},
}

// AnimationFrameDuration is how long each frame displays
const AnimationFrameDuration = 120 * time.Millisecond

// IdleBobPeriod is one full up-and-down cycle of the idle animation.
const IdleBobPeriod = 2 * time.Second

// GetAnimationFrame returns the current frame for an animation
func GetAnimationFrame(anim Animation) string {
	total := AnimationTotalFrames(anim.Type)
	if total == 0 {
		return ""
	}
	frames := AnimationFrames[anim.Type]
	return frames[min(anim.Frame, total-1)]
}

// IsAnimationComplete returns true if the animation has finished
func IsAnimationComplete(anim Animation) bool {
	return anim.Frame >= AnimationTotalFrames(anim.Type)
}

// AnimationTotalFrames returns the number of frames for an animation type
func AnimationTotalFrames(animType AnimationType) int {
	return len(AnimationFrames[animType])
}

// IdleOffset returns how many rows the creature is lifted after idling for
// elapsed: 0 at rest, 1 at the top of the bob.
func IdleOffset(elapsed time.Duration) int {
	if elapsed <= 0 {
		return 0
	}
	phase := 2 * math.Pi * float64(elapsed) / float64(IdleBobPeriod)
	if math.Sin(phase) > 0.5 {
		return 1
	}
	return 0
}

// IdleTilt returns the sway of the idle animation in degrees, in [-5, 5].
func IdleTilt(elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	phase := 2 * math.Pi * float64(elapsed) / float64(IdleBobPeriod)
	return 5 * math.Sin(phase)
}

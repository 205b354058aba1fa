package tween

import (
	"fmt"
	"time"
)

// DefaultDuration is used when Info.Duration is zero.
const DefaultDuration = time.Second

// Info configures how a tween plays. The zero value is a one second Quad Out
// tween with no delay.
type Info struct {
	Duration        time.Duration
	EasingStyle     Style
	EasingDirection Direction
	// RepeatCount and Reverses are validated and kept but playback is a
	// single forward pass.
	RepeatCount int
	Reverses    bool
	DelayTime   time.Duration
}

func (i Info) withDefaults() Info {
	if i.Duration == 0 {
		i.Duration = DefaultDuration
	}
	return i
}

// Validate reports why i cannot be played, if it cannot.
func (i Info) Validate() error {
	i = i.withDefaults()
	if i.Duration < 0 {
		return fmt.Errorf("%w: duration %v must be positive", ErrInvalidConfig, i.Duration)
	}
	if i.DelayTime < 0 {
		return fmt.Errorf("%w: delay %v must not be negative", ErrInvalidConfig, i.DelayTime)
	}
	if i.RepeatCount < -1 {
		return fmt.Errorf("%w: repeat count %d below -1", ErrInvalidConfig, i.RepeatCount)
	}
	if _, err := Lookup(i.EasingStyle, i.EasingDirection); err != nil {
		return err
	}
	return nil
}

package tween

import (
	"log"
	"math"
	"time"
)

// State is the playback state of a Tween.
type State int

const (
	Begin State = iota
	Playing
	Paused
	Completed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Begin:
		return "Begin"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	case Completed:
		return "Completed"
	case Cancelled:
		return "Cancelled"
	}
	return "Unknown"
}

// A Tween animates the goal properties of one target from the values they
// had when the tween was created. Tweens are created by a Scheduler and must
// only be used from the goroutine that drives it.
type Tween struct {
	sched    *Scheduler
	target   Target
	info     Info
	easing   EasingFunc
	bindings []binding

	state    State
	startAt  time.Duration
	pausedAt time.Duration

	// Completed fires with the final state when playback reaches the goal.
	Completed Signal[State]
	// Paused fires when Pause stops a playing tween.
	Paused Signal[State]
	// Resumed fires when a paused tween starts playing again.
	Resumed Signal[State]
	// Stepped fires with the eased progress after every applied frame.
	Stepped Signal[float64]
}

// Info returns the tween's configuration with defaults applied.
func (t *Tween) Info() Info {
	return t.info
}

// Target returns the animated object.
func (t *Tween) Target() Target {
	return t.target
}

// State returns the current playback state.
func (t *Tween) State() State {
	return t.state
}

// IsPlaying reports whether the tween is Playing, including during its delay.
func (t *Tween) IsPlaying() bool {
	return t.state == Playing
}

// IsPaused reports whether the tween is Paused.
func (t *Tween) IsPaused() bool {
	return t.state == Paused
}

// Properties returns the goal properties that will be written, in write
// order. Properties whose start value could not be read are absent.
func (t *Tween) Properties() []string {
	out := make([]string, len(t.bindings))
	for i, b := range t.bindings {
		out[i] = b.property
	}
	return out
}

// Play starts the tween, restarts it after completion or cancellation, or
// resumes it when paused. It does nothing while already playing.
func (t *Tween) Play() {
	switch t.state {
	case Playing:
		return
	case Paused:
		t.startAt += t.sched.clock.Now() - t.pausedAt
		t.pausedAt = 0
		t.state = Playing
		t.sched.Add(t)
		t.Resumed.Fire(t.state)
		return
	}
	t.state = Playing
	t.startAt = t.sched.clock.Now() + t.info.DelayTime
	t.sched.Add(t)
}

// Pause freezes a playing tween at its current progress.
func (t *Tween) Pause() {
	if t.state != Playing {
		return
	}
	t.state = Paused
	t.pausedAt = t.sched.clock.Now()
	t.Paused.Fire(t.state)
}

// Resume continues a paused tween. It does nothing in any other state.
func (t *Tween) Resume() {
	if t.state != Paused {
		return
	}
	t.Play()
}

// Cancel stops the tween without firing any event. The last written values
// stay on the target and the scheduler drops the tween on its next tick.
func (t *Tween) Cancel() {
	t.state = Cancelled
}

// update advances the tween to now and reports whether the scheduler should
// keep it.
func (t *Tween) update(now time.Duration) bool {
	if t.state != Playing {
		return t.state != Cancelled
	}
	if now < t.startAt {
		return true
	}

	elapsed := now - t.startAt
	progress := t.easing(math.Min(float64(elapsed)/float64(t.info.Duration), 1))
	t.apply(progress)
	t.Stepped.Fire(progress)

	// A Stepped handler may have paused or cancelled us.
	if t.state != Playing {
		return t.state != Cancelled
	}
	if elapsed < t.info.Duration {
		return true
	}

	t.state = Completed
	t.Completed.Fire(t.state)
	return t.state == Playing
}

func (t *Tween) apply(progress float64) {
	dirty := false
	for i := range t.bindings {
		b := &t.bindings[i]
		touched, err := b.write(t.target, Interpolate(b.start, b.goal, progress))
		if err != nil {
			log.Printf("tween: write %s: %v", b.property, err)
			continue
		}
		dirty = dirty || touched
	}
	if dirty {
		if err := flushTransform(t.target); err != nil {
			log.Printf("tween: write %s: %v", TransformProperty, err)
		}
	}
}

package tween

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"time"
)

// Scheduler drives every playing tween once per frame. It requests frames
// only while it has tweens to update and goes idle as soon as its active set
// drains. A Scheduler is not safe for concurrent use.
type Scheduler struct {
	clock   Clock
	frames  FrameSource
	active  []*Tween
	members map[*Tween]struct{}
	running bool
	gen     uint64
}

// NewScheduler creates an idle Scheduler.
func NewScheduler(clock Clock, frames FrameSource) *Scheduler {
	s := new(Scheduler)
	s.clock = clock
	s.frames = frames
	s.members = make(map[*Tween]struct{})
	return s
}

// Clock returns the clock tweens are timed against.
func (s *Scheduler) Clock() Clock {
	return s.clock
}

// Create builds a tween that moves target's goal properties to the values
// in goals. Start values are read from target now. Properties whose start
// value cannot be read are skipped.
func (s *Scheduler) Create(target Target, info Info, goals map[string]Value) (*Tween, error) {
	if target == nil {
		return nil, fmt.Errorf("%w: nil target", ErrInvalidConfig)
	}
	info = info.withDefaults()
	if err := info.Validate(); err != nil {
		return nil, err
	}
	easing, err := Lookup(info.EasingStyle, info.EasingDirection)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(goals))
	for name := range goals {
		names = append(names, name)
	}
	sort.Strings(names)

	t := new(Tween)
	t.sched = s
	t.target = target
	t.info = info
	t.easing = easing
	t.state = Begin
	for _, name := range names {
		if name == "" {
			return nil, fmt.Errorf("%w: empty property name", ErrInvalidConfig)
		}
		goal := goals[name]
		kind := kindOf(name)
		if kind == bindTransform && !goal.IsNumber() {
			return nil, fmt.Errorf("%w: %s needs a number, got %q", ErrInvalidConfig, name, goal.String())
		}
		start, err := readStart(target, name, kind)
		if errors.Is(err, ErrMissingStartValue) {
			log.Printf("tween: skipping property: %v", err)
			continue
		}
		t.bindings = append(t.bindings, binding{property: name, kind: kind, start: start, goal: goal})
	}
	return t, nil
}

// To creates a tween with the default easing and the given duration.
func (s *Scheduler) To(target Target, goals map[string]Value, duration time.Duration) (*Tween, error) {
	return s.Create(target, Info{Duration: duration}, goals)
}

// Add puts t in the active set and starts requesting frames if the
// scheduler was idle. Adding a tween twice has no effect.
func (s *Scheduler) Add(t *Tween) {
	if _, ok := s.members[t]; ok {
		return
	}
	s.members[t] = struct{}{}
	s.active = append(s.active, t)
	if !s.running {
		s.running = true
		s.request()
	}
}

// Running reports whether a frame has been requested for pending tweens.
func (s *Scheduler) Running() bool {
	return s.running
}

// Len returns the size of the active set.
func (s *Scheduler) Len() int {
	return len(s.active)
}

// Stop empties the active set and goes idle. Frames already requested are
// ignored when they arrive. Tweens keep their state; cancel them first if
// they are to be replayed.
func (s *Scheduler) Stop() {
	s.gen++
	s.active = nil
	s.members = make(map[*Tween]struct{})
	s.running = false
}

func (s *Scheduler) request() {
	gen := s.gen
	s.frames.RequestFrame(func(now time.Duration) {
		if gen != s.gen {
			return
		}
		s.tick(now)
	})
}

func (s *Scheduler) tick(now time.Duration) {
	gen := s.gen
	batch := s.active
	s.active = nil

	kept := make([]*Tween, 0, len(batch))
	for _, t := range batch {
		keep := t.update(now)
		if gen != s.gen {
			// Stopped by a handler; the rest of the batch is abandoned.
			return
		}
		if keep {
			kept = append(kept, t)
		} else {
			delete(s.members, t)
		}
	}

	// Tweens added by handlers during the tick run from the next one.
	s.active = append(kept, s.active...)
	if len(s.active) > 0 {
		s.request()
		return
	}
	s.running = false
}

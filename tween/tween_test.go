package tween

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

type fakeClock struct {
	now time.Duration
}

func (c *fakeClock) Now() time.Duration { return c.now }

type styleWrite struct {
	property string
	value    string
}

// fakeTarget records every style write and serves computed values from a map.
type fakeTarget struct {
	computed  map[string]Value
	styles    map[string]string
	writes    []styleWrite
	failOn    map[string]bool
	transform Transform
}

func newFakeTarget(computed map[string]Value) *fakeTarget {
	return &fakeTarget{
		computed: computed,
		styles:   make(map[string]string),
		failOn:   make(map[string]bool),
	}
}

func (f *fakeTarget) ComputedValue(property string) (Value, error) {
	v, ok := f.computed[property]
	if !ok {
		return Value{}, fmt.Errorf("no value for %s", property)
	}
	return v, nil
}

func (f *fakeTarget) SetStyle(property, value string) error {
	if f.failOn[property] {
		return errors.New("write refused")
	}
	f.styles[property] = value
	f.writes = append(f.writes, styleWrite{property, value})
	return nil
}

func (f *fakeTarget) Transform() *Transform { return &f.transform }

func (f *fakeTarget) countWrites(property string) int {
	n := 0
	for _, w := range f.writes {
		if w.property == property {
			n++
		}
	}
	return n
}

type harness struct {
	clock  *fakeClock
	frames *ManualFrames
	sched  *Scheduler
}

func newHarness() *harness {
	h := &harness{clock: &fakeClock{}, frames: &ManualFrames{}}
	h.sched = NewScheduler(h.clock, h.frames)
	return h
}

// step moves the clock to now and delivers the pending frame.
func (h *harness) step(now time.Duration) {
	h.clock.now = now
	h.frames.Advance(now)
}

func linear(d time.Duration) Info {
	return Info{Duration: d, EasingStyle: Linear}
}

func TestTween_OpacityTimeline(t *testing.T) {
	h := newHarness()
	target := newFakeTarget(map[string]Value{"opacity": Number(1)})
	tw, err := h.sched.Create(target, linear(time.Second), map[string]Value{"opacity": Number(0.5)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	completed := 0
	tw.Completed.Connect(func(s State) {
		completed++
		if s != Completed {
			t.Errorf("Completed fired with %v", s)
		}
	})

	tw.Play()
	steps := []struct {
		at   time.Duration
		want string
	}{
		{0, "1"},
		{500 * time.Millisecond, "0.75"},
		{time.Second, "0.5"},
	}
	for _, s := range steps {
		h.step(s.at)
		if got := target.styles["opacity"]; got != s.want {
			t.Errorf("at %v: opacity = %q, want %q", s.at, got, s.want)
		}
	}

	if tw.State() != Completed {
		t.Errorf("state = %v, want Completed", tw.State())
	}
	if completed != 1 {
		t.Errorf("Completed fired %d times, want 1", completed)
	}

	h.step(2 * time.Second)
	if completed != 1 {
		t.Errorf("Completed fired again after removal: %d", completed)
	}
	if target.countWrites("opacity") != 3 {
		t.Errorf("opacity written %d times, want 3", target.countWrites("opacity"))
	}
}

func TestTween_PauseResumeIsContinuous(t *testing.T) {
	h := newHarness()
	target := newFakeTarget(map[string]Value{"opacity": Number(0)})
	tw, _ := h.sched.Create(target, linear(time.Second), map[string]Value{"opacity": Number(1)})

	var progress []float64
	tw.Stepped.Connect(func(p float64) { progress = append(progress, p) })
	paused, resumed := 0, 0
	tw.Paused.Connect(func(State) { paused++ })
	tw.Resumed.Connect(func(State) { resumed++ })

	tw.Play()
	h.step(0)
	h.step(400 * time.Millisecond)
	tw.Pause()
	if !tw.IsPaused() {
		t.Fatalf("state = %v, want Paused", tw.State())
	}

	// Paused tweens stay scheduled but write nothing.
	h.step(5 * time.Second)
	if len(progress) != 2 {
		t.Fatalf("stepped %d times while paused, want 2", len(progress))
	}
	if !h.sched.Running() || h.sched.Len() != 1 {
		t.Errorf("paused tween left the active set")
	}

	h.clock.now = 10 * time.Second
	tw.Resume()
	h.step(10 * time.Second)
	if got := progress[len(progress)-1]; got != 0.4 {
		t.Errorf("progress after resume = %v, want 0.4", got)
	}
	h.step(10*time.Second + 600*time.Millisecond)
	if tw.State() != Completed {
		t.Errorf("state = %v, want Completed", tw.State())
	}
	if paused != 1 || resumed != 1 {
		t.Errorf("paused=%d resumed=%d, want 1 and 1", paused, resumed)
	}
}

func TestTween_PlayWhilePausedResumes(t *testing.T) {
	h := newHarness()
	target := newFakeTarget(map[string]Value{"opacity": Number(0)})
	tw, _ := h.sched.Create(target, linear(time.Second), map[string]Value{"opacity": Number(1)})

	tw.Play()
	h.step(250 * time.Millisecond)
	h.clock.now = 300 * time.Millisecond
	tw.Pause()
	h.clock.now = 2 * time.Second
	resumed := 0
	tw.Resumed.Connect(func(State) { resumed++ })
	tw.Play()
	h.step(2 * time.Second)

	if resumed != 1 {
		t.Errorf("Resumed fired %d times, want 1", resumed)
	}
	if got := target.styles["opacity"]; got != "0.3" {
		t.Errorf("opacity = %q, want 0.3", got)
	}
}

func TestTween_CancelStopsWrites(t *testing.T) {
	h := newHarness()
	target := newFakeTarget(map[string]Value{"opacity": Number(0)})
	tw, _ := h.sched.Create(target, linear(time.Second), map[string]Value{"opacity": Number(1)})

	tw.Play()
	h.step(100 * time.Millisecond)
	writes := len(target.writes)

	tw.Cancel()
	tw.Cancel()
	h.step(200 * time.Millisecond)

	if len(target.writes) != writes {
		t.Errorf("writes after cancel: got %d, want %d", len(target.writes), writes)
	}
	if target.styles["opacity"] != "0.1" {
		t.Errorf("last value = %q, want 0.1 left in place", target.styles["opacity"])
	}
	if tw.State() != Cancelled {
		t.Errorf("state = %v, want Cancelled", tw.State())
	}
	if h.sched.Running() || h.sched.Len() != 0 {
		t.Errorf("scheduler running=%v len=%d after cancel, want idle", h.sched.Running(), h.sched.Len())
	}
}

func TestTween_ReplayAfterCancel(t *testing.T) {
	h := newHarness()
	target := newFakeTarget(map[string]Value{"opacity": Number(0)})
	tw, _ := h.sched.Create(target, linear(time.Second), map[string]Value{"opacity": Number(1)})

	tw.Play()
	h.step(500 * time.Millisecond)
	tw.Cancel()
	h.step(600 * time.Millisecond)

	h.clock.now = time.Second
	tw.Play()
	h.step(time.Second)
	// Start values are captured once, so the replay starts from 0 again.
	if got := target.styles["opacity"]; got != "0" {
		t.Errorf("opacity on replay = %q, want 0", got)
	}
}

func TestTween_Delay(t *testing.T) {
	h := newHarness()
	target := newFakeTarget(map[string]Value{"opacity": Number(0)})
	info := linear(time.Second)
	info.DelayTime = 200 * time.Millisecond
	tw, _ := h.sched.Create(target, info, map[string]Value{"opacity": Number(1)})

	tw.Play()
	h.step(100 * time.Millisecond)
	if len(target.writes) != 0 {
		t.Fatalf("wrote during delay: %v", target.writes)
	}
	if !tw.IsPlaying() {
		t.Errorf("state during delay = %v, want Playing", tw.State())
	}
	h.step(700 * time.Millisecond)
	if got := target.styles["opacity"]; got != "0.5" {
		t.Errorf("opacity = %q, want 0.5", got)
	}
}

func TestTween_NonNumericSnaps(t *testing.T) {
	h := newHarness()
	target := newFakeTarget(map[string]Value{"color": Text("red")})
	tw, _ := h.sched.Create(target, linear(time.Second), map[string]Value{"color": Text("blue")})

	tw.Play()
	for _, at := range []time.Duration{0, 300 * time.Millisecond, 999 * time.Millisecond} {
		h.step(at)
		if got := target.styles["color"]; got != "red" {
			t.Errorf("at %v: color = %q, want red", at, got)
		}
	}
	h.step(time.Second)
	if got := target.styles["color"]; got != "blue" {
		t.Errorf("color at end = %q, want blue", got)
	}
}

func TestTween_TransformWrittenOncePerTick(t *testing.T) {
	h := newHarness()
	target := newFakeTarget(nil)
	goals := map[string]Value{
		"x":        Number(100),
		"rotation": Number(90),
		"scale":    Number(2),
		"scaleX":   Number(3),
	}
	tw, err := h.sched.Create(target, linear(time.Second), goals)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	tw.Play()
	h.step(0)
	h.step(time.Second)

	if n := target.countWrites(TransformProperty); n != 2 {
		t.Errorf("transform written %d times over 2 ticks, want 2", n)
	}
	want := "translate(100px, 0px) rotate(90deg) scale(2)"
	if got := target.styles[TransformProperty]; got != want {
		t.Errorf("transform = %q, want %q", got, want)
	}
	for _, p := range []string{"x", "rotation", "scale", "scaleX"} {
		if _, ok := target.styles[p]; ok {
			t.Errorf("spatial property %s written directly", p)
		}
	}
}

func TestTween_LengthAndPassthrough(t *testing.T) {
	h := newHarness()
	target := newFakeTarget(map[string]Value{
		"width":  Number(10),
		"filter": Text("none"),
	})
	goals := map[string]Value{
		"width":  Number(50),
		"filter": Text("blur(2px)"),
	}
	tw, _ := h.sched.Create(target, linear(time.Second), goals)

	tw.Play()
	h.step(time.Second)
	if got := target.styles["width"]; got != "50px" {
		t.Errorf("width = %q, want 50px", got)
	}
	if got := target.styles["filter"]; got != "blur(2px)" {
		t.Errorf("filter = %q, want blur(2px)", got)
	}
}

func TestTween_MissingStartValueSkipsProperty(t *testing.T) {
	h := newHarness()
	target := newFakeTarget(map[string]Value{"opacity": Number(1)})
	goals := map[string]Value{
		"opacity": Number(0),
		"glow":    Number(5),
	}
	tw, err := h.sched.Create(target, linear(time.Second), goals)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if props := tw.Properties(); len(props) != 1 || props[0] != "opacity" {
		t.Errorf("Properties() = %v, want [opacity]", props)
	}

	tw.Play()
	h.step(time.Second)
	if _, ok := target.styles["glow"]; ok {
		t.Error("skipped property was written")
	}
	if got := target.styles["opacity"]; got != "0" {
		t.Errorf("opacity = %q, want 0", got)
	}
}

func TestTween_WriteFailureDoesNotStopOthers(t *testing.T) {
	h := newHarness()
	failing := newFakeTarget(map[string]Value{"opacity": Number(1), "width": Number(0)})
	failing.failOn["opacity"] = true
	healthy := newFakeTarget(map[string]Value{"opacity": Number(1)})

	a, _ := h.sched.Create(failing, linear(time.Second), map[string]Value{"opacity": Number(0), "width": Number(8)})
	b, _ := h.sched.Create(healthy, linear(time.Second), map[string]Value{"opacity": Number(0)})
	a.Play()
	b.Play()
	h.step(time.Second)

	if got := failing.styles["width"]; got != "8px" {
		t.Errorf("width on failing target = %q, want 8px", got)
	}
	if got := healthy.styles["opacity"]; got != "0" {
		t.Errorf("opacity on healthy target = %q, want 0", got)
	}
	if a.State() != Completed || b.State() != Completed {
		t.Errorf("states = %v, %v, want both Completed", a.State(), b.State())
	}
}

func TestTween_ReplayFromCompletedHandler(t *testing.T) {
	h := newHarness()
	target := newFakeTarget(map[string]Value{"opacity": Number(0)})
	tw, _ := h.sched.Create(target, linear(time.Second), map[string]Value{"opacity": Number(1)})

	loops := 0
	tw.Completed.Connect(func(State) {
		loops++
		if loops < 2 {
			tw.Play()
		}
	})

	tw.Play()
	h.step(time.Second)
	if !tw.IsPlaying() || h.sched.Len() != 1 {
		t.Fatalf("replayed tween not scheduled: state=%v len=%d", tw.State(), h.sched.Len())
	}
	h.step(2 * time.Second)
	if loops != 2 || tw.State() != Completed {
		t.Errorf("loops=%d state=%v, want 2 and Completed", loops, tw.State())
	}
}

func TestCreate_InvalidConfig(t *testing.T) {
	h := newHarness()
	target := newFakeTarget(map[string]Value{"opacity": Number(1)})

	tests := []struct {
		name  string
		info  Info
		goals map[string]Value
		want  error
	}{
		{"negative duration", Info{Duration: -time.Second}, map[string]Value{"opacity": Number(0)}, ErrInvalidConfig},
		{"negative delay", Info{DelayTime: -1}, map[string]Value{"opacity": Number(0)}, ErrInvalidConfig},
		{"repeat below -1", Info{RepeatCount: -2}, map[string]Value{"opacity": Number(0)}, ErrInvalidConfig},
		{"unknown style", Info{EasingStyle: Style(42)}, map[string]Value{"opacity": Number(0)}, ErrUnknownEasing},
		{"text spatial goal", Info{}, map[string]Value{"x": Text("left")}, ErrInvalidConfig},
		{"empty property", Info{}, map[string]Value{"": Number(1)}, ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.sched.Create(target, tt.info, tt.goals)
			if !errors.Is(err, tt.want) {
				t.Errorf("Create error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := h.sched.Create(nil, Info{}, nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("nil target error = %v, want ErrInvalidConfig", err)
	}
}

func TestCreate_Defaults(t *testing.T) {
	h := newHarness()
	tw, err := h.sched.To(newFakeTarget(nil), map[string]Value{"x": Number(1)}, 0)
	if err != nil {
		t.Fatalf("To: %v", err)
	}
	info := tw.Info()
	if info.Duration != DefaultDuration {
		t.Errorf("Duration = %v, want %v", info.Duration, DefaultDuration)
	}
	if info.EasingStyle != Quad || info.EasingDirection != Out {
		t.Errorf("easing = %v/%v, want Quad/Out", info.EasingStyle, info.EasingDirection)
	}
	if tw.State() != Begin {
		t.Errorf("state = %v, want Begin", tw.State())
	}
}

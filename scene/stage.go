package scene

import (
	"fmt"
	"time"

	"github.com/matt-g-everett/ledtween/stream"
	"github.com/matt-g-everett/ledtween/tween"
)

// Entry is a named tween on a stage.
type Entry struct {
	Name     string
	Fixture  string
	Autoplay bool
	Tween    *tween.Tween
}

// Stage is a scene bound to a scheduler: live fixtures and their tweens.
type Stage struct {
	fixtures []*stream.Fixture
	entries  []*Entry
	byName   map[string]*Entry
}

// Build creates the fixtures and tweens of sc. Start values are captured
// from the fixtures' initial styles.
func Build(sc *Scene, sched *tween.Scheduler) (*Stage, error) {
	st := &Stage{byName: make(map[string]*Entry)}

	fixtures := make(map[string]*stream.Fixture)
	for i, decl := range sc.Fixtures {
		if decl.Name == "" {
			return nil, fmt.Errorf("fixture %d: %w: name", i, ErrMissingField)
		}
		if _, ok := fixtures[decl.Name]; ok {
			return nil, fmt.Errorf("fixture %s: %w", decl.Name, ErrDuplicateName)
		}
		if decl.Length <= 0 {
			return nil, fmt.Errorf("fixture %s: %w: length", decl.Name, ErrMissingField)
		}
		fx := stream.NewFixture(decl.Name, decl.Offset, decl.Length)
		for property, raw := range decl.Style {
			v, err := toValue(raw)
			if err != nil {
				return nil, fmt.Errorf("fixture %s: style %s: %w", decl.Name, property, err)
			}
			if err := tween.Apply(fx, property, v); err != nil {
				return nil, fmt.Errorf("fixture %s: %w", decl.Name, err)
			}
		}
		fixtures[decl.Name] = fx
		st.fixtures = append(st.fixtures, fx)
	}

	for i, decl := range sc.Tweens {
		if decl.Name == "" {
			return nil, fmt.Errorf("tween %d: %w: name", i, ErrMissingField)
		}
		if _, ok := st.byName[decl.Name]; ok {
			return nil, fmt.Errorf("tween %s: %w", decl.Name, ErrDuplicateName)
		}
		fx, ok := fixtures[decl.Fixture]
		if !ok {
			return nil, fmt.Errorf("tween %s: %w %q", decl.Name, ErrUnknownFixture, decl.Fixture)
		}
		info, err := decl.info()
		if err != nil {
			return nil, fmt.Errorf("tween %s: %w", decl.Name, err)
		}
		goals := make(map[string]tween.Value, len(decl.Goals))
		for property, raw := range decl.Goals {
			v, err := toValue(raw)
			if err != nil {
				return nil, fmt.Errorf("tween %s: goal %s: %w", decl.Name, property, err)
			}
			if err := fx.Check(property, v.String()); err != nil {
				return nil, fmt.Errorf("tween %s: goal %s: %w: %v", decl.Name, property, ErrBadValue, err)
			}
			goals[property] = v
		}
		tw, err := sched.Create(fx, info, goals)
		if err != nil {
			return nil, fmt.Errorf("tween %s: %w", decl.Name, err)
		}
		e := &Entry{Name: decl.Name, Fixture: decl.Fixture, Autoplay: decl.Autoplay, Tween: tw}
		st.entries = append(st.entries, e)
		st.byName[e.Name] = e
	}
	return st, nil
}

func (t Tween) info() (tween.Info, error) {
	info := tween.Info{
		DelayTime:   seconds(t.Delay),
		RepeatCount: t.Repeat,
		Reverses:    t.Reverses,
	}
	if t.Duration != nil {
		d := seconds(*t.Duration)
		if d <= 0 {
			return info, fmt.Errorf("%w: duration %vs must be positive", tween.ErrInvalidConfig, *t.Duration)
		}
		info.Duration = d
	}
	if t.Style != "" {
		s, err := tween.ParseStyle(t.Style)
		if err != nil {
			return info, err
		}
		info.EasingStyle = s
	}
	if t.Direction != "" {
		d, err := tween.ParseDirection(t.Direction)
		if err != nil {
			return info, err
		}
		info.EasingDirection = d
	}
	return info, nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func toValue(raw interface{}) (tween.Value, error) {
	switch v := raw.(type) {
	case int:
		return tween.Number(float64(v)), nil
	case int64:
		return tween.Number(float64(v)), nil
	case float64:
		return tween.Number(v), nil
	case string:
		return tween.Text(v), nil
	}
	return tween.Value{}, fmt.Errorf("%w: %v (%T)", ErrBadValue, raw, raw)
}

// Fixtures returns the fixtures in declaration order.
func (s *Stage) Fixtures() []*stream.Fixture {
	return s.fixtures
}

// Entries returns the tweens in declaration order.
func (s *Stage) Entries() []*Entry {
	return s.entries
}

// Tween looks up a tween by name.
func (s *Stage) Tween(name string) (*tween.Tween, bool) {
	e, ok := s.byName[name]
	if !ok {
		return nil, false
	}
	return e.Tween, true
}

// PlayAll plays every autoplay tween.
func (s *Stage) PlayAll() {
	for _, e := range s.entries {
		if e.Autoplay {
			e.Tween.Play()
		}
	}
}

// CancelAll cancels every tween on the stage.
func (s *Stage) CancelAll() {
	for _, e := range s.entries {
		e.Tween.Cancel()
	}
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/matt-g-everett/ledtween/scene"
	"github.com/matt-g-everett/ledtween/tween"
)

// A Runner executes fn on the goroutine that owns the tweens.
type Runner interface {
	Do(ctx context.Context, fn func()) error
}

// TweenStatus is the JSON view of one tween.
type TweenStatus struct {
	Name       string   `json:"name"`
	Fixture    string   `json:"fixture"`
	State      string   `json:"state"`
	Properties []string `json:"properties"`
}

var actions = map[string]func(*tween.Tween){
	"play":   (*tween.Tween).Play,
	"pause":  (*tween.Tween).Pause,
	"resume": (*tween.Tween).Resume,
	"cancel": (*tween.Tween).Cancel,
}

// Api exposes the running stage over HTTP.
type Api struct {
	runner Runner
	stage  func() *scene.Stage
}

// NewApi creates an Api. stage is called on the runner's goroutine and
// returns the stage currently playing.
func NewApi(runner Runner, stage func() *scene.Stage) *Api {
	a := new(Api)
	a.runner = runner
	a.stage = stage
	return a
}

// Handler returns the HTTP routes.
func (a *Api) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /tweens", a.listTweens)
	mux.HandleFunc("POST /tweens/{name}/{action}", a.controlTween)
	return mux
}

func (a *Api) listTweens(w http.ResponseWriter, r *http.Request) {
	var out []TweenStatus
	err := a.runner.Do(r.Context(), func() {
		out = make([]TweenStatus, 0)
		st := a.stage()
		if st == nil {
			return
		}
		for _, e := range st.Entries() {
			out = append(out, TweenStatus{
				Name:       e.Name,
				Fixture:    e.Fixture,
				State:      e.Tween.State().String(),
				Properties: e.Tween.Properties(),
			})
		}
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		log.Printf("api: encode tweens: %v", err)
	}
}

func (a *Api) controlTween(w http.ResponseWriter, r *http.Request) {
	action, ok := actions[r.PathValue("action")]
	if !ok {
		http.Error(w, "unknown action", http.StatusBadRequest)
		return
	}
	name := r.PathValue("name")
	found := false
	err := a.runner.Do(r.Context(), func() {
		st := a.stage()
		if st == nil {
			return
		}
		var tw *tween.Tween
		if tw, found = st.Tween(name); found {
			action(tw)
		}
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if !found {
		http.Error(w, "unknown tween", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Serve listens on addr until ctx is cancelled.
func (a *Api) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: a.Handler()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("Listening on %s...", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

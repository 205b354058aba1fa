package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/fsnotify/fsnotify"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/matt-g-everett/ledtween/api"
	"github.com/matt-g-everett/ledtween/scene"
	"github.com/matt-g-everett/ledtween/stream"
	"github.com/matt-g-everett/ledtween/tween"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a scene on the LED strip",
	RunE:  runPlay,
}

func init() {
	playCmd.Flags().String("scene", "", "scene file (.yaml or .toml)")
	_ = playCmd.MarkFlagRequired("scene")
	playCmd.Flags().Bool("preview", false, "render frames in the terminal instead of publishing them")
	playCmd.Flags().Bool("watch", false, "reload the scene when the file changes")
	playCmd.Flags().String("listen", "", "address for the control API, e.g. :3000")
	_ = viper.BindPFlag("listen", playCmd.Flags().Lookup("listen"))
	rootCmd.AddCommand(playCmd)
}

// player owns the frame loop and the stage currently on it. stage is only
// touched from the loop goroutine once the loop is running.
type player struct {
	path     string
	loop     *stream.Loop
	sched    *tween.Scheduler
	streamer *stream.Streamer
	stage    *scene.Stage
}

func newPlayer(path string, clock tween.Clock, fps float64, streamer *stream.Streamer) *player {
	p := new(player)
	p.path = path
	p.loop = stream.NewLoop(clock, fps)
	p.sched = tween.NewScheduler(clock, p.loop)
	p.streamer = streamer
	p.loop.OnFrame(func(time.Duration) {
		p.streamer.SendFrame()
	})
	return p
}

// load builds the scene file onto the scheduler and swaps it in for the
// current stage. On error the current stage keeps playing.
func (p *player) load() error {
	sc, err := scene.Load(p.path)
	if err != nil {
		return err
	}
	st, err := scene.Build(sc, p.sched)
	if err != nil {
		return err
	}
	if p.stage != nil {
		p.stage.CancelAll()
	}
	p.stage = st
	p.streamer.Replace(st.Fixtures())
	st.PlayAll()
	return nil
}

func (p *player) currentStage() *scene.Stage {
	return p.stage
}

// watch reloads the scene whenever its file is written. The directory is
// watched so editors that replace the file are still seen.
func (p *player) watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("play: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(p.path)); err != nil {
		return fmt.Errorf("play: watch %s: %w", p.path, err)
	}

	target := filepath.Clean(p.path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			var loadErr error
			if err := p.loop.Do(ctx, func() { loadErr = p.load() }); err != nil {
				if ctx.Err() != nil || errors.Is(err, stream.ErrLoopStopped) {
					return nil
				}
				return err
			}
			if loadErr != nil {
				log.Printf("Reload of %s failed: %v", p.path, loadErr)
			} else {
				log.Printf("Reloaded %s", p.path)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

func connect(cfg stream.MqttConfig) (mqtt.Client, error) {
	options := mqtt.NewClientOptions().
		AddBroker(cfg.URL).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(func(mqtt.Client) {
			log.Println("Connected")
		})
	client := mqtt.NewClient(options)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.URL, token.Error())
	}
	return client, nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	mqtt.ERROR = log.New(os.Stdout, "", 0)

	cfg, err := stream.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	background, err := colorful.Hex(cfg.Strip.Background)
	if err != nil {
		return fmt.Errorf("strip.background: %w", err)
	}

	var publisher stream.Publisher
	if preview, _ := cmd.Flags().GetBool("preview"); preview {
		publisher = stream.NewTerminalPublisher(cmd.OutOrStdout())
	} else {
		client, err := connect(cfg.Mqtt)
		if err != nil {
			return err
		}
		defer client.Disconnect(250)
		publisher = stream.NewMQTTPublisher(client, cfg.Mqtt.Topics.Stream)
	}

	path, _ := cmd.Flags().GetString("scene")
	p := newPlayer(path, tween.NewSystemClock(), cfg.Strip.FPS, stream.NewStreamer(cfg.Strip.Pixels, background, publisher))
	if err := p.load(); err != nil {
		return err
	}
	defer p.sched.Stop()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return p.loop.Run(ctx)
	})
	if cfg.Listen != "" {
		a := api.NewApi(p.loop, p.currentStage)
		g.Go(func() error {
			return a.Serve(ctx, cfg.Listen)
		})
	}
	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		g.Go(func() error {
			return p.watch(ctx)
		})
	}
	return g.Wait()
}

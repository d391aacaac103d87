package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/kestrelui/core/driver"
	_ "github.com/kestrelui/core/driver/null"
	"github.com/kestrelui/core/gpu"
	"github.com/kestrelui/core/gpu/trace/promtrace"
	"github.com/kestrelui/core/runloop"
	"github.com/kestrelui/core/view"
)

func newRunCmd() *cobra.Command {
	var (
		frames    int
		buffering int
		trace     bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the sample view tree for a fixed number of frames",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(frames, buffering, trace)
		},
	}

	cmd.Flags().IntVar(&frames, "frames", 60, "number of frames to run before exiting")
	cmd.Flags().IntVar(&buffering, "buffering", gpu.MaxBuffering-2, "GPU frame ring buffering depth")
	cmd.Flags().BoolVar(&trace, "trace", false, "export GPU timespans and pipeline counters to Prometheus")

	return cmd
}

func openNullDriver() (driver.GPU, error) {
	for _, d := range driver.Drivers() {
		if d.Name() == "null" {
			return d.Open()
		}
	}
	return nil, fmt.Errorf("uidemo: null driver not registered")
}

func runDemo(frames, buffering int, trace bool) error {
	g, err := openNullDriver()
	if err != nil {
		return err
	}

	cfg := gpu.DefaultConfig()
	cfg.Buffering = buffering
	if trace {
		cfg.Tracer = promtrace.New(nil)
	}

	coord, err := gpu.New(g, cfg)
	if err != nil {
		return fmt.Errorf("uidemo: gpu.New: %w", err)
	}
	defer coord.Shutdown()

	root := &panelView{}
	theme := view.DefaultTheme()

	remaining := frames
	rlCfg := runloop.Config{
		Coordinator: coord,
		Theme:       &theme,
		Canvas:      noopCanvas{},
		PollInput: func() *view.Input {
			remaining--
			return &view.Input{
				Extent:  view.Vec2{X: 1280, Y: 720},
				Closing: remaining <= 0,
			}
		},
	}

	slog.Info("uidemo starting", "frames", frames, "buffering", cfg.Buffering, "trace", trace)

	err = runloop.Run(root, rlCfg, func(*view.Input) {
		slog.Debug("frame ticked", "ticks", root.ticks)
	})
	if err != nil {
		return fmt.Errorf("uidemo: runloop.Run: %w", err)
	}

	slog.Info("uidemo finished", "ticks", root.ticks)
	return nil
}

// noopCanvas discards every primitive; uidemo runs offscreen and has
// nothing to present the rasterized output to.
type noopCanvas struct{}

func (noopCanvas) RRect(view.RRectParams)       {}
func (noopCanvas) BRect(view.RectParams)        {}
func (noopCanvas) Squircle(view.SquircleParams) {}
func (noopCanvas) Circle(view.CircleParams)     {}
func (noopCanvas) Image(view.ImageParams)       {}

// Package runloop implements the Run loop external interface:
// poll input, tick the view tree, bracket a GPU frame around it,
// present, repeat until the window should close.
package runloop

import (
	"github.com/kestrelui/core/driver"
	"github.com/kestrelui/core/gpu"
	"github.com/kestrelui/core/view"
)

// Config configures a Run call. Swapchain may be nil to run
// fully offscreen (no image is acquired, blitted into, or
// presented; the Coordinator's frame bracket and the view
// tree's tick still run every iteration).
type Config struct {
	// Coordinator sequences each frame's GPU work. Required.
	Coordinator *gpu.Coordinator

	// Swapchain, if non-nil, receives the main framebuffer
	// target's resolved color image once per frame.
	Swapchain driver.Swapchain

	// Theme is passed to ViewTree.Tick unchanged.
	Theme *view.Theme

	// Canvas is passed to ViewTree.Tick unchanged.
	Canvas view.Canvas

	// PollInput is called once per iteration to produce the
	// frame's input snapshot. Required.
	PollInput func() *view.Input
}

// Run drives the loop described by Config until either
// PollInput reports the window closing (ViewTree.Tick returns
// false) or a GPU error occurs. perFrame, if non-nil, is called
// once per iteration after Tick, with that iteration's Input,
// mirroring the Run loop's per_frame_callback collaborator.
func Run(root view.View, cfg Config, perFrame func(*view.Input)) error {
	tree := view.New()
	for {
		input := cfg.PollInput()

		if err := cfg.Coordinator.BeginFrame(cfg.Swapchain); err != nil {
			return err
		}

		keepGoing := tree.Tick(input, cfg.Theme, root, cfg.Canvas)

		if perFrame != nil {
			perFrame(input)
		}

		if err := cfg.Coordinator.SubmitFrame(cfg.Swapchain); err != nil {
			return err
		}

		if !keepGoing {
			return nil
		}
	}
}

package commands

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/agiangrant/flowlayout"
	"github.com/agiangrant/flowlayout/scroll"
)

// FlingParams describe a simulated drag gesture.
type FlingParams struct {
	Content  int           // content height
	Viewport int           // viewport height
	Offset   int           // starting scroll offset
	From     float32       // pointer y at press
	To       float32       // pointer y at release
	Duration time.Duration // press to release
	FPS      int
}

// Frame is one animation step after release.
type Frame struct {
	At     time.Duration // since release
	Offset int
	State  scroll.State
}

// FlingResult is the outcome of SimulateFling.
type FlingResult struct {
	DragOffset int // offset at release
	Flung      bool
	Predicted  int           // rest offset predicted at release
	Span       time.Duration // unclamped fling length predicted at release
	Frames     []Frame
	Final      int
}

const maxFrames = 10000

// SimulateFling drives a scroll controller through a straight drag from
// p.From to p.To and steps the resulting fling frame by frame.
func SimulateFling(cfg scroll.Config, p FlingParams) FlingResult {
	fps := p.FPS
	if fps <= 0 {
		fps = 60
	}
	frame := time.Second / time.Duration(fps)

	c := scroll.NewController(cfg)
	c.SetMaxOffset(p.Content - p.Viewport)
	c.SetOffset(p.Offset)

	start := time.Unix(0, 0)
	c.HandlePointer(scroll.PointerEvent{Action: scroll.ActionDown, Y: p.From, Time: start})
	for at := frame; at < p.Duration; at += frame {
		y := p.From + (p.To-p.From)*float32(at)/float32(p.Duration)
		c.HandlePointer(scroll.PointerEvent{Action: scroll.ActionMove, Y: y, Time: start.Add(at)})
	}
	release := start.Add(p.Duration)
	c.HandlePointer(scroll.PointerEvent{Action: scroll.ActionMove, Y: p.To, Time: release})
	c.HandlePointer(scroll.PointerEvent{Action: scroll.ActionUp, Y: p.To, Time: release})

	res := FlingResult{
		DragOffset: c.Offset(),
		Flung:      c.State() == scroll.StateFlinging,
		Predicted:  c.Target(),
		Span:       c.AnimationDuration(),
	}
	for i := 1; c.IsAnimating() && i <= maxFrames; i++ {
		at := time.Duration(i) * frame
		c.Tick(release.Add(at))
		res.Frames = append(res.Frames, Frame{At: at, Offset: c.Offset(), State: c.State()})
	}
	res.Final = c.Offset()
	return res
}

// NewFlingCommand returns the `fling` command.
func NewFlingCommand(logger *slog.Logger) *cobra.Command {
	var (
		configPath string
		p          = FlingParams{Content: 2000, Viewport: 600, From: 500, To: 200, Duration: 100 * time.Millisecond, FPS: 60}
	)
	cmd := &cobra.Command{
		Use:   "fling",
		Short: "simulate a drag and print the fling frame by frame",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := flowlayout.DefaultConfig()
			if configPath != "" {
				var err error
				if cfg, err = flowlayout.LoadConfig(configPath); err != nil {
					return err
				}
			}
			if p.Viewport <= 0 || p.Content < 0 {
				return fmt.Errorf("content and viewport must be positive")
			}
			if p.Duration <= 0 {
				return fmt.Errorf("duration must be positive, got %s", p.Duration)
			}
			res := SimulateFling(cfg.ScrollSettings(logger), p)
			RenderFling(termenv.NewOutput(cmd.OutOrStdout()), res)
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a TOML or YAML container config")
	cmd.Flags().IntVar(&p.Content, "content", p.Content, "content height in px")
	cmd.Flags().IntVar(&p.Viewport, "viewport", p.Viewport, "viewport height in px")
	cmd.Flags().IntVar(&p.Offset, "offset", p.Offset, "starting scroll offset")
	cmd.Flags().Float32Var(&p.From, "from", p.From, "pointer y at press")
	cmd.Flags().Float32Var(&p.To, "to", p.To, "pointer y at release")
	cmd.Flags().DurationVar(&p.Duration, "duration", p.Duration, "drag duration")
	cmd.Flags().IntVar(&p.FPS, "fps", p.FPS, "frames per second")
	return cmd
}

// RenderFling prints a simulation.
func RenderFling(out *termenv.Output, res FlingResult) {
	fmt.Fprintf(out, "offset after drag: %d\n", res.DragOffset)
	if !res.Flung {
		fmt.Fprintln(out, out.String("released below fling threshold").Foreground(out.Color("3")))
		return
	}
	fmt.Fprintf(out, "predicted rest: %d (fling %dms)\n", res.Predicted, res.Span.Milliseconds())
	for _, f := range res.Frames {
		fmt.Fprintf(out, "%6dms %6d %s\n", f.At.Milliseconds(), f.Offset, f.State)
	}
	fmt.Fprintln(out, out.String(fmt.Sprintf("settled at %d after %d frames", res.Final, len(res.Frames))).Bold())
}

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/agiangrant/flowlayout"
	"github.com/agiangrant/flowlayout/layout"
)

// LayoutOptions are the layout command's flags.
type LayoutOptions struct {
	ConfigPath string
	MaxRows    int
	Gravity    string
	Watch      bool
}

// NewLayoutCommand returns the `layout` command.
func NewLayoutCommand(logger *slog.Logger) *cobra.Command {
	var opts LayoutOptions
	cmd := &cobra.Command{
		Use:   "layout ITEMS_FILE",
		Short: "pack an item file and print rows and rectangles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := termenv.NewOutput(cmd.OutOrStdout())
			render := func() error {
				cfg, err := loadLayoutConfig(opts, cmd.Flags().Changed("max-rows"))
				if err != nil {
					return err
				}
				return RunLayout(out, args[0], cfg, logger)
			}
			err := render()
			if !opts.Watch {
				return err
			}
			if err != nil {
				logger.Error("layout failed", "error", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			paths := []string{args[0]}
			if opts.ConfigPath != "" {
				paths = append(paths, opts.ConfigPath)
			}
			return Watch(ctx, paths, render, logger)
		},
	}
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "path to a TOML or YAML container config")
	cmd.Flags().IntVar(&opts.MaxRows, "max-rows", layout.Unbounded, "row bound, negative for unbounded (overrides config)")
	cmd.Flags().StringVar(&opts.Gravity, "gravity", "", "left, right, left-right or center (overrides config)")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "re-run whenever the item or config file changes")
	return cmd
}

func loadLayoutConfig(opts LayoutOptions, maxRowsSet bool) (flowlayout.Config, error) {
	cfg := flowlayout.DefaultConfig()
	if opts.ConfigPath != "" {
		var err error
		if cfg, err = flowlayout.LoadConfig(opts.ConfigPath); err != nil {
			return cfg, err
		}
	}
	if maxRowsSet {
		cfg.MaxRowCount = opts.MaxRows
	}
	if opts.Gravity != "" {
		if _, err := layout.ParseGravity(opts.Gravity); err != nil {
			return cfg, err
		}
		cfg.Gravity = opts.Gravity
	}
	return cfg, nil
}

// RunLayout lays out the item file under cfg and prints the result.
func RunLayout(out *termenv.Output, itemsPath string, cfg flowlayout.Config, logger *slog.Logger) error {
	items, err := LoadItems(itemsPath)
	if err != nil {
		return err
	}
	spec, err := items.Spec()
	if err != nil {
		return err
	}

	f := flowlayout.New(measureItem, cfg, flowlayout.WithLogger(logger))
	f.SetAdapter(flowlayout.NewSliceAdapter(items.Expand()))
	res := f.Layout(spec)
	Render(out, f, res)
	return nil
}

// Render prints a layout result, one line per row and per child.
func Render(out *termenv.Output, f *flowlayout.FlowLayout, res flowlayout.LayoutResult) {
	heading := out.String(fmt.Sprintf("%dx%d", res.Width, res.Height)).Bold()
	fmt.Fprintf(out, "%s gravity=%s rows=%d visible=%d/%d content=%d max_scroll=%d\n",
		heading, f.Gravity(), res.RowCount(), res.VisibleChildCount, res.TotalChildCount,
		res.ContentHeight, res.MaxScrollOffset)

	for _, row := range res.Rows {
		label := out.String(fmt.Sprintf("row %d", row.Number)).Foreground(out.Color("6"))
		fmt.Fprintf(out, "%s top=%d height=%d used=%d\n", label, row.Top, row.Height, row.UsedWidth)
		for _, p := range row.Children {
			name := fmt.Sprintf("#%d", p.Child.Index)
			if c, ok := f.ChildAt(p.Child.Index); ok {
				name = c.(child).label
			}
			fmt.Fprintf(out, "  [%d] %-12s x=%d y=%d %dx%d\n",
				p.Child.Index, name, p.Rect.X, p.Rect.Y, p.Rect.Width, p.Rect.Height)
		}
	}

	if res.Truncated {
		hidden := res.TotalChildCount - res.VisibleChildCount
		msg := fmt.Sprintf("truncated: %d of %d children not shown", hidden, res.TotalChildCount)
		fmt.Fprintln(out, out.String(msg).Foreground(out.Color("3")))
	}
}

// Watch calls render whenever one of paths is written or replaced, until
// ctx is done. Events that arrive while a render runs collapse into one.
func Watch(ctx context.Context, paths []string, render func() error, logger *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace files, so watch the directories
	targets := make(map[string]bool, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		targets[abs] = true
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
	}

	changed := make(chan struct{}, 1)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				abs, err := filepath.Abs(ev.Name)
				if err != nil || !targets[abs] {
					continue
				}
				select {
				case changed <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				return fmt.Errorf("watch: %w", err)
			}
		}
	})

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-changed:
				logger.Info("file changed, re-running layout")
				if err := render(); err != nil {
					logger.Error("layout failed", "error", err)
				}
			}
		}
	})

	return g.Wait()
}

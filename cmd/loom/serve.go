package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/loomui/loom/pkg/el"
	"github.com/loomui/loom/pkg/server"
	"github.com/loomui/loom/pkg/vdom"
)

func serveCmd() *cobra.Command {
	var (
		addr     string
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo application",
		Long: `Serve a small demo application: a counter plus a reorderable
keyed task list, exercising in-place updates, keyed moves, and
event-handle dispatch end to end.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := parseLevel(logLevel)
			if err != nil {
				return err
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			cfg := server.DefaultConfig()
			cfg.Address = addr
			cfg.Title = "Loom demo"
			cfg.Logger = logger

			app := newDemoApp()
			srv := server.New(app.View, cfg)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				srv.Shutdown(context.Background())
			}()

			return srv.ListenAndServe()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	return cmd
}

func parseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

// demoApp is the state behind the demo view. Handlers run on the session
// goroutine, one event at a time, followed by a render cycle.
type demoApp struct {
	count int
	tasks []string
}

func newDemoApp() *demoApp {
	return &demoApp{
		tasks: []string{"learn the edit script", "reorder me", "delete me"},
	}
}

func (a *demoApp) View() *vdom.VNode {
	return el.Div(el.Attrs{"class": "demo"},
		el.H1("Loom demo"),
		el.P(
			el.Button(
				el.On("click", func(vdom.Event) { a.count++ }),
				"clicks",
			),
			el.Textf(" %d", a.count),
		),
		el.If(len(a.tasks) == 0, el.P(el.Em("all done"))),
		el.Ul(a.taskList()),
	)
}

func (a *demoApp) taskList() *vdom.VNode {
	return el.KeyedRange(a.tasks, func(task string, _ int) (string, *vdom.VNode) {
		return task, el.Li(
			el.Button(
				el.On("click", func(vdom.Event) { a.promote(task) }),
				"^",
			),
			el.Button(
				el.On("click", func(vdom.Event) { a.remove(task) }),
				"x",
			),
			el.Text(" "+task),
		)
	})
}

// promote moves a task to the front, producing keyed Move edits.
func (a *demoApp) promote(task string) {
	for i, t := range a.tasks {
		if t == task && i > 0 {
			a.tasks = append(a.tasks[:i], a.tasks[i+1:]...)
			a.tasks = append([]string{task}, a.tasks...)
			return
		}
	}
}

func (a *demoApp) remove(task string) {
	for i, t := range a.tasks {
		if t == task {
			a.tasks = append(a.tasks[:i], a.tasks[i+1:]...)
			return
		}
	}
}

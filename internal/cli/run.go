package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/skipgrid/api/v1beta1/layouts"
	"github.com/macropower/skipgrid/pkg/log"
	"github.com/macropower/skipgrid/pkg/mcp"
	"github.com/macropower/skipgrid/pkg/report"
	"github.com/macropower/skipgrid/pkg/ui"
	"github.com/macropower/skipgrid/pkg/watch"
)

const (
	cmdExamples = `  # Preview the layout found in the current directory (or the defaults):
  skipgrid

  # Preview a layout file:
  skipgrid ./layout.yaml

  # Reload when the file changes:
  skipgrid ./layout.yaml --watch

  # Serve the MCP tools while previewing:
  skipgrid ./layout.yaml --serve-mcp :8080

  # Print the snapshot instead of starting the TUI:
  skipgrid ./layout.yaml > snapshot.yaml`

	logBacklogSize = 100
)

type RunArgs struct {
	*RootArgs

	Path       string
	ServeMCP   string
	Watch      bool
	ShowLayout bool
}

func NewRunArgs(rootArgs *RootArgs) *RunArgs {
	return &RunArgs{
		RootArgs: rootArgs,
	}
}

func (ra *RunArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ra.ServeMCP, "serve-mcp", "", "Serve the MCP server at the specified address")
	cmd.Flags().BoolVarP(&ra.Watch, "watch", "w", false, "Watch the layout file and reload on change")
	cmd.Flags().BoolVar(&ra.ShowLayout, "show-layout", false, "Print the active layout and exit")
}

func NewRunCmd(ra *RunArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "run [layout.yaml]",
		Short:             "Default command, preview a layout",
		Example:           cmdExamples,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: layoutFileCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				ra.Path = args[0]
			}

			return run(cmd, ra)
		},
	}
	ra.AddFlags(cmd)

	return cmd
}

func layoutFileCompletion(_ *cobra.Command, args []string, _ string) ([]cobra.Completion, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return []cobra.Completion{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
	}

	return nil, cobra.ShellCompDirectiveNoFileComp
}

func run(cmd *cobra.Command, ra *RunArgs) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	tty := isTerminal(out)

	l, path, err := loadLayout(ra.Path, tty)
	if err != nil {
		return err
	}

	if ra.ShowLayout {
		slog.Info("active layout", slog.String("path", path))

		b, err := l.MarshalYAML()
		if err != nil {
			return err
		}

		return writeHighlighted(out, string(b), "yaml", l.UI.Theme)
	}

	// If stdout is not a terminal, print the snapshot.
	if !tty {
		doc, err := document(ctx, l, nil)
		if err != nil {
			return err
		}

		b, err := doc.Marshal(report.FormatYAML)
		if err != nil {
			return err
		}

		_, err = out.Write(b)
		if err != nil {
			return fmt.Errorf("write to stdout: %w", err)
		}

		return nil
	}

	backlog := log.NewBacklog(logBacklogSize)

	logHandler, err := log.CreateHandlerWithStrings(backlog, ra.LogLevel, ra.LogFormat)
	if err != nil {
		return fmt.Errorf("create log handler: %w", err)
	}

	slog.SetDefault(slog.New(logHandler))
	defer flushLogs(cmd.ErrOrStderr(), backlog)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var mcpServer *mcp.Server

	if ra.ServeMCP != "" {
		mcpServer, err = mcp.NewServer(ra.ServeMCP, mcp.WithLayout(l))
		if err != nil {
			return fmt.Errorf("create MCP server: %w", err)
		}

		go func() {
			err := mcpServer.Serve(ctx)
			if err != nil {
				slog.Error("MCP server failed", slog.Any("err", err))
			}
		}()
	}

	err = runUI(ctx, l, path, ra.Watch, mcpServer)
	if err != nil {
		slog.Error("run UI", slog.Any("err", err))

		return fmt.Errorf("ui program failure: %w", err)
	}

	return nil
}

// runUI starts the preview program, feeding it reloads from the watcher when
// watching is enabled.
func runUI(ctx context.Context, l *layouts.Layout, path string, watching bool, mcpServer *mcp.Server) error {
	var opts []ui.ModelOpt

	if path != "" {
		opts = append(opts,
			ui.WithPath(path),
			ui.WithReloader(func(context.Context) (*layouts.Layout, error) {
				return layouts.Load(path)
			}),
		)
	}

	m, err := ui.NewModel(ctx, l, opts...)
	if err != nil {
		return fmt.Errorf("create model: %w", err)
	}

	p := ui.NewProgram(m, tea.WithContext(ctx))

	if watching {
		if path == "" {
			return fmt.Errorf("watch: %w", errNoLayoutFile)
		}

		w, err := watch.New(path)
		if err != nil {
			return fmt.Errorf("watch layout: %w", err)
		}

		defer func() {
			if err := w.Close(); err != nil {
				slog.Warn("close watcher", slog.Any("err", err))
			}
		}()

		ch := make(chan watch.Event)
		w.Subscribe(ch)

		go forwardEvents(ch, p, mcpServer)

		go func() {
			err := w.Run(ctx)
			if err != nil && !errors.Is(err, watch.ErrClosed) {
				slog.Error("layout watcher failed", slog.Any("err", err))
			}
		}()
	}

	_, err = p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tea: %w", err)
	}

	return nil
}

func forwardEvents(ch <-chan watch.Event, p *tea.Program, mcpServer *mcp.Server) {
	for event := range ch {
		e, ok := event.(watch.EventEnd)
		if !ok {
			continue
		}

		if e.Err == nil && mcpServer != nil {
			mcpServer.SetLayout(e.Layout)
		}

		p.Send(ui.LayoutMsg{Layout: e.Layout, Err: e.Err})
	}
}

func flushLogs(w io.Writer, buf *log.Backlog) {
	slog.Debug("flush logs to console",
		slog.Int("count", buf.Len()),
		slog.Int("max", buf.Cap()),
		slog.Int("dropped", buf.Dropped()),
	)

	_, err := buf.WriteTo(w)
	if err != nil {
		panic(err)
	}
}

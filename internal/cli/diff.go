package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/macropower/skipgrid/pkg/grid"
	"github.com/macropower/skipgrid/pkg/report"
)

const diffExamples = `  # Show how leaving slots 2 and 3 vacant changes a layout:
  skipgrid diff ./layout.yaml --skip 2,3

  # Show what the layout's own skip set changes:
  skipgrid diff ./layout.yaml

  # Compare two layout files:
  skipgrid diff ./old.yaml ./new.yaml`

type DiffArgs struct {
	*RootArgs

	From string
	To   string
	Skip []int
}

func NewDiffArgs(rootArgs *RootArgs) *DiffArgs {
	return &DiffArgs{
		RootArgs: rootArgs,
	}
}

func (da *DiffArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().IntSliceVar(&da.Skip, "skip", nil, "Slot indices to compare against no skipped slots")
}

func NewDiffCmd(da *DiffArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "diff <layout.yaml> [other.yaml]",
		Short:   "Show a unified diff of two snapshots",
		Example: diffExamples,
		Args:    cobra.RangeArgs(1, 2),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]cobra.Completion, cobra.ShellCompDirective) {
			if len(args) < 2 {
				return []cobra.Completion{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
			}

			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			da.From = args[0]
			if len(args) > 1 {
				da.To = args[1]
			}

			return diff(cmd, da)
		},
	}
	da.AddFlags(cmd)

	return cmd
}

func diff(cmd *cobra.Command, da *DiffArgs) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	tty := isTerminal(out)

	from, _, err := loadLayout(da.From, tty)
	if err != nil {
		return err
	}

	var (
		fromName = filepath.Base(da.From)
		toName   string
		fromSkip *grid.SkipSet
		toSkip   *grid.SkipSet
		to       = from
	)

	switch {
	case da.To != "":
		to, _, err = loadLayout(da.To, tty)
		if err != nil {
			return err
		}

		toName = filepath.Base(da.To)

	case cmd.Flags().Changed("skip"):
		none, with := grid.NewSkipSet(), grid.NewSkipSet(da.Skip...)
		fromSkip, toSkip = &none, &with
		fromName, toName = "without skip", "skip "+with.String()

	default:
		none := grid.NewSkipSet()
		fromSkip = &none
		fromName, toName = "without skip", fromName
	}

	fromDoc, err := document(ctx, from, fromSkip)
	if err != nil {
		return fmt.Errorf("%s: %w", fromName, err)
	}

	toDoc, err := document(ctx, to, toSkip)
	if err != nil {
		return fmt.Errorf("%s: %w", toName, err)
	}

	d, err := report.DiffDocuments(fromName, toName, fromDoc, toDoc)
	if err != nil {
		return err
	}

	if d == "" {
		slog.Info("snapshots are identical")

		return nil
	}

	return writeHighlighted(out, d, "diff", to.UI.Theme)
}

package cli

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/macropower/skipgrid/pkg/grid"
	"github.com/macropower/skipgrid/pkg/render"
	"github.com/macropower/skipgrid/pkg/report"
	"github.com/macropower/skipgrid/pkg/ui/theme"
)

const (
	outputGrid = "grid"

	computeExamples = `  # Print the snapshot of a layout as YAML:
  skipgrid compute ./layout.yaml

  # Print JSON, leaving slots 2 and 7 vacant:
  skipgrid compute ./layout.yaml -o json --skip 2,7

  # Draw the grid in the terminal with skipped items displaced:
  skipgrid compute ./layout.yaml -o grid --policy displace`
)

var allOutputs = append(slices.Clone(report.AllFormats), outputGrid)

type ComputeArgs struct {
	*RootArgs

	Path   string
	Output string
	Policy string
	Skip   []int
	Count  int
}

func NewComputeArgs(rootArgs *RootArgs) *ComputeArgs {
	return &ComputeArgs{
		RootArgs: rootArgs,
	}
}

func (ca *ComputeArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&ca.Output, "output", "o", string(report.FormatYAML),
		fmt.Sprintf("Output format, one of: %s", allOutputs))
	cmd.Flags().IntSliceVar(&ca.Skip, "skip", nil, "Slot indices to leave vacant, replacing the layout's skip set")
	cmd.Flags().StringVar(&ca.Policy, "policy", "", "Skip policy override, one of: omit, displace")
	cmd.Flags().IntVar(&ca.Count, "count", -1, "Item count override")

	must(cmd.RegisterFlagCompletionFunc("output",
		cobra.FixedCompletions(allOutputs, cobra.ShellCompDirectiveNoFileComp),
	))
	must(cmd.RegisterFlagCompletionFunc("policy",
		cobra.FixedCompletions([]string{string(grid.SkipOmit), string(grid.SkipDisplace)}, cobra.ShellCompDirectiveNoFileComp),
	))
}

func NewComputeCmd(ca *ComputeArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "compute [layout.yaml]",
		Short:             "Compute a layout and print the snapshot",
		Example:           computeExamples,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: layoutFileCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				ca.Path = args[0]
			}

			return compute(cmd, ca)
		},
	}
	ca.AddFlags(cmd)

	return cmd
}

func compute(cmd *cobra.Command, ca *ComputeArgs) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	tty := isTerminal(out)

	l, _, err := loadLayout(ca.Path, tty)
	if err != nil {
		return err
	}

	if ca.Count >= 0 {
		l.Items.Count = ca.Count
	}

	var opts []grid.EngineOpt

	if ca.Policy != "" {
		p, err := grid.ParseSkipPolicy(ca.Policy)
		if err != nil {
			return err
		}

		opts = append(opts, grid.WithSkipPolicy(p))
	}

	var skip *grid.SkipSet
	if cmd.Flags().Changed("skip") {
		s := grid.NewSkipSet(ca.Skip...)
		skip = &s
	}

	doc, err := document(ctx, l, skip, opts...)
	if err != nil {
		return err
	}

	if ca.Output == outputGrid {
		rOpts := []render.RendererOpt{
			render.WithCellSize(l.UI.CellWidth, l.UI.CellHeight),
			render.WithLabels(l.Items.Labels),
		}
		if tty {
			rOpts = append(rOpts, render.WithTheme(theme.New(l.UI.Theme)))
		}

		_, err = io.WriteString(out, render.NewRenderer(rOpts...).Render(doc.Snapshot)+"\n")
		if err != nil {
			return fmt.Errorf("write output: %w", err)
		}

		return nil
	}

	format, err := report.ParseFormat(ca.Output)
	if err != nil {
		return err
	}

	b, err := doc.Marshal(format)
	if err != nil {
		return err
	}

	return writeHighlighted(out, string(b), string(format), l.UI.Theme)
}

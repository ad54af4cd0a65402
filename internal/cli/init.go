package cli

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/macropower/skipgrid/api/v1beta1/layouts"
	"github.com/macropower/skipgrid/pkg/grid"
	"github.com/macropower/skipgrid/pkg/ui/theme"
	"github.com/macropower/skipgrid/pkg/yaml"
)

const initExamples = `  # Write the default layout to the user config directory:
  skipgrid init

  # Write a layout to the current directory, answering a few questions:
  skipgrid init ./layout.yaml --interactive

  # Replace an existing layout (the old file is kept as a backup):
  skipgrid init ./layout.yaml --force`

type InitArgs struct {
	*RootArgs

	Path        string
	Force       bool
	Interactive bool
}

func NewInitArgs(rootArgs *RootArgs) *InitArgs {
	return &InitArgs{
		RootArgs: rootArgs,
	}
}

func (ia *InitArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&ia.Force, "force", "f", false, "Replace an existing layout file")
	cmd.Flags().BoolVarP(&ia.Interactive, "interactive", "i", false, "Prompt for the main layout settings")
}

func NewInitCmd(ia *InitArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "init [path]",
		Short:             "Write a layout file",
		Example:           initExamples,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: layoutFileCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			ia.Path = layouts.GetPath()
			if len(args) > 0 {
				ia.Path = args[0]
			}

			return initLayout(ia)
		},
	}
	ia.AddFlags(cmd)

	return cmd
}

func initLayout(ia *InitArgs) error {
	data := layouts.DefaultYAML()

	if ia.Interactive {
		answers := defaultAnswers()

		err := answers.form().Run()
		if err != nil {
			return fmt.Errorf("prompt: %w", err)
		}

		data, err = answers.apply(data)
		if err != nil {
			return err
		}
	}

	wrote, err := layouts.Write(ia.Path, data, ia.Force)
	if err != nil {
		return err
	}

	if !wrote {
		slog.Warn("layout file already exists, use --force to replace it", slog.String("path", ia.Path))

		return nil
	}

	slog.Info("wrote layout", slog.String("path", ia.Path))

	return nil
}

// initAnswers holds the values prompted for by init --interactive, as typed.
type initAnswers struct {
	Width      string
	Count      string
	ItemWidth  string
	ItemHeight string
	Skip       string
	Policy     string
}

func defaultAnswers() *initAnswers {
	l := layouts.New()

	return &initAnswers{
		Width:      strconv.FormatFloat(l.Container.Width, 'f', -1, 64),
		Count:      strconv.Itoa(l.Items.Count),
		ItemWidth:  strconv.FormatFloat(l.Items.Size.Width, 'f', -1, 64),
		ItemHeight: strconv.FormatFloat(l.Items.Size.Height, 'f', -1, 64),
		Skip:       joinInts(l.Skip.Indices),
		Policy:     string(l.Skip.Policy),
	}
}

func (a *initAnswers) form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Container width").
				Description("Points available to the grid.").
				Value(&a.Width).
				Validate(positiveFloat),
			huh.NewInput().
				Title("Item count").
				Value(&a.Count).
				Validate(nonNegativeInt),
			huh.NewInput().
				Title("Item width").
				Value(&a.ItemWidth).
				Validate(positiveFloat),
			huh.NewInput().
				Title("Item height").
				Value(&a.ItemHeight).
				Validate(positiveFloat),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Skipped slots").
				Description("Comma separated slot indices.").
				Value(&a.Skip).
				Validate(func(s string) error {
					_, err := parseInts(s)
					return err
				}),
			huh.NewSelect[string]().
				Title("Skip policy").
				Options(
					huh.NewOption("omit: skipped items are not placed", string(grid.SkipOmit)),
					huh.NewOption("displace: skipped items move to the next slot", string(grid.SkipDisplace)),
				).
				Value(&a.Policy),
		),
	).WithTheme(theme.HuhTheme(theme.New("auto")))
}

// apply merges the answers into the layout document data and validates the
// result.
func (a *initAnswers) apply(data []byte) ([]byte, error) {
	width, err := strconv.ParseFloat(a.Width, 64)
	if err != nil {
		return nil, fmt.Errorf("container width: %w", err)
	}

	count, err := strconv.Atoi(a.Count)
	if err != nil {
		return nil, fmt.Errorf("item count: %w", err)
	}

	itemWidth, err := strconv.ParseFloat(a.ItemWidth, 64)
	if err != nil {
		return nil, fmt.Errorf("item width: %w", err)
	}

	itemHeight, err := strconv.ParseFloat(a.ItemHeight, 64)
	if err != nil {
		return nil, fmt.Errorf("item height: %w", err)
	}

	skip, err := parseInts(a.Skip)
	if err != nil {
		return nil, fmt.Errorf("skipped slots: %w", err)
	}

	policy, err := grid.ParseSkipPolicy(a.Policy)
	if err != nil {
		return nil, err
	}

	// Root keys are replaced whole, so every subtree is complete.
	def := layouts.New()

	out, err := yaml.MergeRoot(data, map[string]any{
		"container": map[string]any{"width": width},
		"items": map[string]any{
			"count":  count,
			"size":   map[string]any{"width": itemWidth, "height": itemHeight},
			"labels": []string{},
		},
		"header": map[string]any{"width": width, "height": def.Header.Height},
		"footer": map[string]any{"width": width, "height": def.Footer.Height},
		"skip":   map[string]any{"indices": skip, "expr": "", "policy": string(policy)},
	})
	if err != nil {
		return nil, fmt.Errorf("merge answers: %w", err)
	}

	if _, err := layouts.Parse(out); err != nil {
		return nil, err
	}

	return out, nil
}

func positiveFloat(s string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("not a number: %q", s)
	}

	if f <= 0 {
		return fmt.Errorf("must be greater than zero: %q", s)
	}

	return nil
}

func nonNegativeInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("not an integer: %q", s)
	}

	if n < 0 {
		return fmt.Errorf("must not be negative: %q", s)
	}

	return nil
}

func parseInts(s string) ([]int, error) {
	ints := []int{}

	for field := range strings.SplitSeq(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("not an integer: %q", field)
		}

		ints = append(ints, n)
	}

	return ints, nil
}

func joinInts(ints []int) string {
	parts := make([]string, len(ints))
	for i, n := range ints {
		parts[i] = strconv.Itoa(n)
	}

	return strings.Join(parts, ",")
}

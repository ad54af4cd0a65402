package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macropower/skipgrid/api/v1beta1/layouts"
)

func NewSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of layout documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := layouts.Schema()
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
			if err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			return nil
		},
	}
}

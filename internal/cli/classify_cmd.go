package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/waypoint/internal/cli/formatter"
	"github.com/alexanderramin/waypoint/internal/taxonomy"
)

func newClassifyCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "classify TEXT...",
		Short: "Show which domain a piece of text classifies to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, ok := taxonomy.ByName(name)
			if !ok {
				return fmt.Errorf("unknown taxonomy %q (want %s or %s)", name, taxonomy.Learning.Name, taxonomy.Discipline.Name)
			}
			text := strings.Join(args, " ")
			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatClassification(t, taxonomy.Explain(text, t)))
			if t == taxonomy.Discipline {
				fmt.Fprintf(out, "%s %s\n", formatter.Dim("Career:  "), formatter.Bold(taxonomy.InferCareerPath(text)))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "taxonomy", taxonomy.Learning.Name, "Vocabulary to classify against (learning or discipline)")
	return cmd
}

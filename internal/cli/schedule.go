package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/covertower/pkg/covers"
	"github.com/matzehuels/covertower/pkg/group/transform"
)

// scheduleCommand creates the schedule command, a debug tool that prints
// the relation schedule the search evaluates.
func (c *CLI) scheduleCommand() *cobra.Command {
	var file string
	var keepOrder bool

	cmd := &cobra.Command{
		Use:   "schedule [presentation]",
		Short: "Show the relation schedule used by the search (debug tool)",
		Long: `Show the generator order and the formulas the search evaluates at each
depth. Formulas marked with * are relations; the others are shared
subexpressions.

By default the presentation is reordered the way the search reorders it.
With --keep-order the relations must already end in their largest
generator.`,
		Example: `  covertower schedule "<a, b, c | a^2, b^3, (a b)^2, c a c^-1 b>"`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadPresentation(args, file)
			if err != nil {
				return err
			}
			if !keepOrder {
				var mapping []int
				orig := p
				p, mapping = transform.Minimax(p)
				order := make([]string, len(mapping))
				for now, old := range transform.Invert(mapping) {
					order[now] = orig.Name(old)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "order: %s\n", strings.Join(order, " "))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "relations: %d, total length %d\n", len(p.Relations), p.TotalLength())
			sched, err := covers.NewSchedule(p)
			if err != nil {
				return err
			}
			return sched.Dump(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "presentation file (.txt, .json, .toml, .yaml)")
	cmd.Flags().BoolVar(&keepOrder, "keep-order", false, "do not reorder generators and relations")

	return cmd
}

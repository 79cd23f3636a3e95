package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/covertower/pkg/errors"
	"github.com/matzehuels/covertower/pkg/perm"
)

// tablesCommand creates the tables command, which prints the permutation
// tables the search uses for one degree.
func (c *CLI) tablesCommand() *cobra.Command {
	var degree int
	var raw bool
	var class string

	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Print the conjugacy-minimal permutations of a degree (debug tool)",
		Long: `Print one permutation per conjugacy class of S_n, the smallest in rank
order, with its cycle type and the size of its automorphism group (its
centraliser). The search only tries these as the first non-identity
generator image.

With --raw the table is printed as rows of automorphism ranks, each row
terminated by -1; the identity's row is just -1.

With --class the images of one permutation are read instead, and the
minimal permutation of its conjugacy class is printed.`,
		Example: `  covertower tables -n 4
  covertower tables -n 5 --raw
  covertower tables -n 4 --class 2,3,0,1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := perm.Sym(degree)
			if err != nil {
				return err
			}
			if class != "" {
				return writeClass(cmd.OutOrStdout(), g, class)
			}
			if raw {
				return writeRawTable(cmd.OutOrStdout(), g)
			}
			fmt.Fprintln(cmd.OutOrStdout(), StyleTitle.Render(fmt.Sprintf("S%d: %d permutations, %d classes", degree, g.Size(), len(g.Minimal()))))
			fmt.Fprintln(cmd.OutOrStdout(), minimalTable(g).Render())
			return nil
		},
	}

	cmd.Flags().IntVarP(&degree, "degree", "n", 4, "degree")
	cmd.Flags().BoolVar(&raw, "raw", false, "print automorphism ranks instead of a table")
	cmd.Flags().StringVar(&class, "class", "", "comma-separated images of a permutation to look up")

	return cmd
}

// minimalRows returns one row per conjugacy-minimal permutation: rank,
// images, cycles, cycle type and automorphism group size.
func minimalRows(g *perm.Group) [][]string {
	var rows [][]string
	for _, p := range g.Minimal() {
		aut := len(g.Aut(p))
		if p.IsIdentity() {
			aut = g.Size()
		}
		rows = append(rows, []string{
			fmt.Sprint(p.Rank()),
			fmt.Sprint(g.Images(p)),
			g.Format(p),
			fmt.Sprint(g.CycleType(p)),
			fmt.Sprint(aut),
		})
	}
	return rows
}

func minimalTable(g *perm.Group) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Rank", "Images", "Cycles", "Type", "|Aut|").
		Rows(minimalRows(g)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return listHeaderStyle
			}
			if col == 0 || col == 4 {
				return StyleNumber
			}
			return StyleValue
		})
}

// writeRawTable prints the minimal table as "rank: aut... -1" lines in rank
// order.
func writeRawTable(w io.Writer, g *perm.Group) error {
	t := g.MinimalTable()
	for _, rank := range slices.Sorted(maps.Keys(t)) {
		parts := make([]string, len(t[rank]))
		for i, q := range t[rank] {
			parts[i] = fmt.Sprint(q)
		}
		if _, err := fmt.Fprintf(w, "%d: %s\n", rank, strings.Join(parts, " ")); err != nil {
			return err
		}
	}
	return nil
}

// writeClass parses comma-separated images and prints the permutation next
// to the minimal member of its conjugacy class.
func writeClass(w io.Writer, g *perm.Group, images string) error {
	var im []int
	for _, f := range strings.FieldsFunc(images, func(r rune) bool { return r == ',' || r == ' ' }) {
		v, err := strconv.Atoi(f)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidPermutation, "image %q is not an integer", f)
		}
		im = append(im, v)
	}
	p, err := g.FromImages(im)
	if err != nil {
		return err
	}
	m := g.MinimalRepresentative(p)
	_, err = fmt.Fprintf(w, "%s rank %d type %v ~ %s rank %d\n",
		g.Format(p), p.Rank(), g.CycleType(p), g.Format(m), m.Rank())
	return err
}

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	cio "github.com/matzehuels/covertower/pkg/io"
	"github.com/matzehuels/covertower/pkg/pipeline"
)

// enumerateOpts holds the command-line flags for the enumerate command.
type enumerateOpts struct {
	file    string // presentation file instead of an inline presentation
	degree  int    // first (or only) degree
	to      int    // last degree of a range (0 = only degree)
	limit   int    // stop after this many covers per degree
	output  string // export file, one per degree for a range
	brief   bool   // omit subgroup presentations
	count   bool   // print counts only
	refresh bool   // ignore cached results
	noCache bool   // disable the cache entirely
}

// enumerateCommand creates the enumerate command.
func (c *CLI) enumerateCommand() *cobra.Command {
	var opts enumerateOpts

	cmd := &cobra.Command{
		Use:     "enumerate [presentation]",
		Aliases: []string{"enum"},
		Short:   "List the covers of a presentation up to conjugacy",
		Long: `List the transitive permutation representations of a finitely presented
group on n points, one per conjugacy class, together with a presentation of
the index-n subgroup each of them defines.`,
		Example: `  # Index-3 subgroups of S3
  covertower enumerate "<a, b | a^2, b^3, (a b)^2>" -n 3

  # Counts for the free group of rank 2, degrees 1 to 5
  covertower enumerate "<a, b |>" -n 1 --to 5 --count

  # From a file, exporting JSON
  covertower enumerate --file trefoil.toml -n 4 -o trefoil.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("degree") {
				opts.degree = c.Config.Degree
			}
			return c.runEnumerate(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "presentation file (.txt, .json, .toml, .yaml)")
	cmd.Flags().IntVarP(&opts.degree, "degree", "n", pipeline.DefaultDegree, "degree (number of sheets)")
	cmd.Flags().IntVar(&opts.to, "to", 0, "enumerate every degree from --degree up to this one")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "stop after this many covers per degree (0 = all)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the covers as JSON to this file")
	cmd.Flags().BoolVar(&opts.brief, "brief", false, "omit subgroup presentations")
	cmd.Flags().BoolVar(&opts.count, "count", false, "print only the number of covers")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")

	return cmd
}

// degreeRange returns the degrees from..to, or just from when to is zero.
func degreeRange(from, to int) ([]int, error) {
	if to == 0 {
		return []int{from}, nil
	}
	if to < from {
		return nil, errUsage(fmt.Sprintf("--to %d is below --degree %d", to, from))
	}
	degrees := make([]int, 0, to-from+1)
	for d := from; d <= to; d++ {
		degrees = append(degrees, d)
	}
	return degrees, nil
}

// exportPath returns the file the export for degree is written to. With
// several degrees the degree is added before the extension.
func exportPath(output string, degree int, multi bool) string {
	if !multi {
		return output
	}
	ext := filepath.Ext(output)
	return fmt.Sprintf("%s_n%d%s", strings.TrimSuffix(output, ext), degree, ext)
}

func (c *CLI) runEnumerate(ctx context.Context, args []string, opts enumerateOpts) error {
	base, err := inputOptions(args, opts.file)
	if err != nil {
		return err
	}
	base.Limit = opts.limit
	base.Refresh = opts.refresh

	degrees, err := degreeRange(opts.degree, opts.to)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, os.Stderr, fmt.Sprintf("Enumerating degree %s", joinInts(degrees)))
	spinner.Start()
	results, err := runner.EnumerateRange(ctx, base, degrees)
	spinner.Stop()
	if err != nil {
		return err
	}

	total := 0
	for _, res := range results {
		e := res.Export
		total += len(res.Covers)
		parts := []string{
			fmt.Sprintf("degree %d", e.Degree),
			fmt.Sprintf("%d covers", len(res.Covers)),
		}
		if e.Truncated {
			parts = append(parts, "truncated")
		}
		fmt.Println(StyleTitle.Render(e.Presentation))
		fmt.Println(statsLine(parts, res.CacheHit))
		if !opts.count {
			for i, cv := range res.Covers {
				writeCover(os.Stdout, i, cv, opts.brief)
			}
		}

		if opts.output != "" {
			path := exportPath(opts.output, e.Degree, len(results) > 1)
			if err := cio.ExportCovers(e, path); err != nil {
				return err
			}
			printFile(path)
		}
	}

	prog.done(fmt.Sprintf("Found %d covers", total))
	return nil
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprint(x)
	}
	return strings.Join(parts, ", ")
}

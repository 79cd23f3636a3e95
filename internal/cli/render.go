package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/covertower/pkg/pipeline"
	"github.com/matzehuels/covertower/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	file      string
	degree    int
	cover     int    // index of the cover in enumeration order
	format    string // dot, svg, pdf or png
	output    string // output file (stdout if empty)
	tree      bool
	labels    bool
	hideFixed bool
	noCache   bool
}

// renderCommand creates the render command for drawing Schreier graphs.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [presentation]",
		Short: "Draw the Schreier graph of a cover",
		Long: `Draw the Schreier graph of one cover: one node per sheet and one coloured
edge per generator. Sheet 0 is drawn with a double outline.

PDF and PNG output need rsvg-convert (librsvg).`,
		Example: `  # The index-3 cover of S3 as SVG
  covertower render "<a, b | a^2, b^3, (a b)^2>" -n 3 -o s3.svg

  # Third cover of the free group at degree 4, with the spanning tree bold
  covertower render "<a, b |>" -n 4 --cover 2 --tree -t png -o f2.png`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("degree") {
				opts.degree = c.Config.Degree
			}
			if !cmd.Flags().Changed("type") {
				opts.format = c.Config.Format
			}
			return c.runRender(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "presentation file (.txt, .json, .toml, .yaml)")
	cmd.Flags().IntVarP(&opts.degree, "degree", "n", pipeline.DefaultDegree, "degree (number of sheets)")
	cmd.Flags().IntVarP(&opts.cover, "cover", "c", 0, "index of the cover to draw")
	cmd.Flags().StringVarP(&opts.format, "type", "t", pipeline.DefaultFormat, "output format: dot, svg, pdf, png")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.tree, "tree", false, "draw the spanning tree bold")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "label edges with generator names")
	cmd.Flags().BoolVar(&opts.hideFixed, "hide-fixed", false, "omit loops at fixed points")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, args []string, opts renderOpts) error {
	if err := render.ValidateFormat(opts.format); err != nil {
		return err
	}
	popts, err := inputOptions(args, opts.file)
	if err != nil {
		return err
	}
	popts.Degree = opts.degree
	popts.Cover = opts.cover
	popts.Format = opts.format
	popts.Tree = opts.tree
	popts.Labels = opts.labels
	popts.HideFixed = opts.hideFixed

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinner(ctx, os.Stderr, fmt.Sprintf("Enumerating degree %d", opts.degree))
	spinner.Start()
	defer spinner.Stop()

	res, err := runner.Enumerate(ctx, popts)
	if err != nil {
		return err
	}
	if len(res.Covers) == 0 {
		spinner.Stop()
		printWarning("No covers at degree %d", opts.degree)
		return nil
	}
	spinner.SetMessage(fmt.Sprintf("Rendering cover %d", opts.cover))
	data, hit, err := runner.RenderWithCacheInfo(ctx, res, popts)
	spinner.Stop()
	if err != nil {
		return err
	}
	if err := writeOutput(os.Stdout, data, opts.output); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if opts.output != "" {
		printSuccess("Rendered cover %d of %d", opts.cover, len(res.Covers))
		printKeyValue("reps", formatReps(res.Covers[opts.cover]))
		fmt.Println(statsLine([]string{opts.format, fmt.Sprintf("%d bytes", len(data))}, hit))
		printFile(opts.output)
	}
	return nil
}

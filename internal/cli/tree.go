package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vischart/pkg/errors"
	"github.com/matzehuels/vischart/pkg/pipeline"
	"github.com/matzehuels/vischart/pkg/render/scenetree"
	"github.com/matzehuels/vischart/pkg/spec"
)

// treeOpts holds the flags of the tree command.
type treeOpts struct {
	output   string
	format   string
	detailed bool
	noCache  bool
}

// treeCommand creates the tree command, which draws the scene graph
// structure with Graphviz.
func (c *CLI) treeCommand() *cobra.Command {
	var opts treeOpts

	cmd := &cobra.Command{
		Use:   "tree <spec>",
		Short: "Draw the scene graph structure",
		Long: `Compile a chart spec and draw its group and mark hierarchy as a Graphviz
diagram. Output is DOT source or SVG rendered in-process.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != "dot" && opts.format != "svg" {
				return errors.New(errors.ErrCodeInvalidFormat, "invalid tree format: %s (must be dot or svg)", opts.format)
			}
			return c.runTree(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "svg", "output format: dot or svg")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "list the data rows behind each mark")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runTree(ctx context.Context, input string, opts treeOpts) error {
	logger := loggerFromContext(ctx)

	chart, err := spec.ParseFile(input)
	if err != nil {
		return err
	}

	runner, closeRunner, err := c.newRunner(ctx, input, opts.noCache)
	if err != nil {
		return err
	}
	defer closeRunner()

	res, err := runner.Execute(ctx, chart, pipeline.Options{Formats: []string{pipeline.FormatJSON}})
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	out := []byte(scenetree.ToDOT(res.Scene, scenetree.Options{Detailed: opts.detailed}))
	if opts.format == "svg" {
		if out, err = scenetree.RenderSVG(ctx, string(out)); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "render tree")
		}
	}
	prog.done(fmt.Sprintf("Drew scene tree for %s", input))

	if opts.output == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := writeFile(opts.output, out); err != nil {
		return err
	}
	printSuccess("Drew scene tree for %s", input)
	printFile(opts.output)
	return nil
}

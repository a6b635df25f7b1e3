package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vischart/pkg/pipeline"
	"github.com/matzehuels/vischart/pkg/spec"
)

// compileOpts holds the flags of the compile command.
type compileOpts struct {
	output  string
	noCache bool
	refresh bool
}

// compileCommand creates the compile command, which writes the scene graph
// as JSON.
func (c *CLI) compileCommand() *cobra.Command {
	var opts compileOpts

	cmd := &cobra.Command{
		Use:   "compile <spec>",
		Short: "Compile a chart spec into scene graph JSON",
		Long: `Compile a chart spec (JSON, YAML or TOML) into the scene graph intermediate
representation. The scene is written to stdout unless --output is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCompile(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")

	return cmd
}

func (c *CLI) runCompile(ctx context.Context, input string, opts compileOpts) error {
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

	prog := newProgress(logger)
	res, err := runner.Execute(ctx, chart, pipeline.Options{
		Formats: []string{pipeline.FormatJSON},
		Refresh: opts.refresh,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Compiled %s", input))

	scene := res.Artifacts[pipeline.FormatJSON]
	if opts.output == "" {
		_, err = os.Stdout.Write(scene)
		return err
	}
	if err := writeFile(opts.output, scene); err != nil {
		return err
	}
	printSuccess("Compiled %s", input)
	printStats(res)
	printFile(opts.output)
	printNextStep("Browse it", "vischart inspect "+input)
	return nil
}

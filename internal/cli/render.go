package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/vischart/pkg/errors"
	"github.com/matzehuels/vischart/pkg/pipeline"
	"github.com/matzehuels/vischart/pkg/spec"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output file (single format), base path, or directory (several specs)
	formats []string // svg, json, pdf, png
	width   float64  // overrides the spec width when > 0
	height  float64  // overrides the spec height when > 0
	scale   float64  // PNG scale factor
	noCache bool
	refresh bool
	watch   bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <spec>...",
		Short: "Render a chart spec to SVG, PNG, PDF or JSON",
		Long: `Render a chart spec to one or more output formats.

With a single format, --output names the file. With several formats it is
used as a base path and each format gets its own extension. Without --output
files are written next to the spec.

Several specs are rendered concurrently. --output then names a directory
and each spec keeps its base name.

PNG and PDF output requires rsvg-convert (librsvg).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = c.parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if opts.scale == 0 {
				opts.scale = c.Config.PNGScale
			}
			if len(args) > 1 {
				if opts.watch {
					return errors.New(errors.ErrCodeInvalidInput, "--watch takes a single spec")
				}
				return c.runRenderBatch(cmd.Context(), args, opts)
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format), base path (multiple formats) or directory (multiple specs)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, pdf, png (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "override the chart width")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "override the chart height")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG scale factor (default 2)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-render whenever the spec or its data changes")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	if err := checkOutputs(input, outputPaths(input, opts.output, opts.formats)); err != nil {
		return err
	}
	runner, closeRunner, err := c.newRunner(ctx, input, opts.noCache)
	if err != nil {
		return err
	}
	defer closeRunner()

	if opts.watch {
		return c.watchRender(ctx, runner, input, opts)
	}
	_, err = renderOnce(ctx, runner, input, opts)
	return err
}

// renderOnce parses input, runs the pipeline and writes every artifact.
func renderOnce(ctx context.Context, runner *pipeline.Runner, input string, opts renderOpts) ([]string, error) {
	logger := loggerFromContext(ctx)

	chart, err := spec.ParseFile(input)
	if err != nil {
		return nil, err
	}

	var spinner *Spinner
	if needsConverter(opts.formats) {
		spinner = newSpinnerWithContext(ctx, "Rendering "+input)
		spinner.Start()
	}
	prog := newProgress(logger)
	res, err := runner.Execute(ctx, chart, pipeline.Options{
		Formats:  opts.formats,
		PNGScale: opts.scale,
		Width:    opts.width,
		Height:   opts.height,
		Refresh:  opts.refresh,
	})
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Rendered %s", input))

	written, err := writeArtifacts(logger, res, outputPaths(input, opts.output, opts.formats), opts.formats)
	if err != nil {
		return written, err
	}
	reportRender(input, res, written)
	return written, nil
}

// runRenderBatch renders several specs. Specs sharing a directory share a
// runner, so named data resolves next to each spec, and run concurrently
// through ExecuteAll.
func (c *CLI) runRenderBatch(ctx context.Context, inputs []string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	paths, err := batchOutputPaths(inputs, opts.output, opts.formats)
	if err != nil {
		return err
	}
	charts := make(map[string]*spec.ChartSpec, len(inputs))
	for _, input := range inputs {
		chart, err := spec.ParseFile(input)
		if err != nil {
			return fmt.Errorf("%s: %w", input, err)
		}
		charts[input] = chart
	}

	var spinner *Spinner
	if needsConverter(opts.formats) {
		spinner = newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d charts", len(inputs)))
		spinner.Start()
	}
	prog := newProgress(logger)
	results := make(map[string]*pipeline.Result, len(inputs))
	for _, group := range groupByDir(inputs) {
		if err := c.executeGroup(ctx, group, charts, opts, results); err != nil {
			if spinner != nil {
				spinner.Stop()
			}
			return err
		}
	}
	if spinner != nil {
		spinner.Stop()
	}
	prog.done(fmt.Sprintf("Rendered %d charts", len(inputs)))

	for _, input := range inputs {
		res := results[input]
		written, err := writeArtifacts(logger, res, paths[input], opts.formats)
		if err != nil {
			return err
		}
		reportRender(input, res, written)
	}
	return nil
}

// executeGroup runs the specs of one directory and stores their results by input.
func (c *CLI) executeGroup(ctx context.Context, group []string, charts map[string]*spec.ChartSpec, opts renderOpts, results map[string]*pipeline.Result) error {
	runner, closeRunner, err := c.newRunner(ctx, group[0], opts.noCache)
	if err != nil {
		return err
	}
	defer closeRunner()

	batch := make([]*spec.ChartSpec, len(group))
	for i, input := range group {
		batch[i] = charts[input]
	}
	res, err := runner.ExecuteAll(ctx, batch, pipeline.Options{
		Formats:  opts.formats,
		PNGScale: opts.scale,
		Width:    opts.width,
		Height:   opts.height,
		Refresh:  opts.refresh,
	})
	if err != nil {
		return err
	}
	for i, input := range group {
		results[input] = res[i]
	}
	return nil
}

// groupByDir partitions inputs by parent directory, keeping first-seen order.
func groupByDir(inputs []string) [][]string {
	var (
		order  []string
		groups = map[string][]string{}
	)
	for _, input := range inputs {
		dir := filepath.Dir(input)
		if _, ok := groups[dir]; !ok {
			order = append(order, dir)
		}
		groups[dir] = append(groups[dir], input)
	}
	out := make([][]string, len(order))
	for i, dir := range order {
		out[i] = groups[dir]
	}
	return out
}

// batchOutputPaths maps every input to its output files. With an output
// directory, two inputs with the same base name would overwrite each other
// and are rejected.
func batchOutputPaths(inputs []string, dir string, formats []string) (map[string]map[string]string, error) {
	out := make(map[string]map[string]string, len(inputs))
	owner := make(map[string]string)
	for _, input := range inputs {
		target := input
		if dir != "" {
			target = filepath.Join(dir, filepath.Base(input))
		}
		paths := outputPaths(target, "", formats)
		if err := checkOutputs(input, paths); err != nil {
			return nil, err
		}
		for _, p := range paths {
			if prev, ok := owner[p]; ok {
				return nil, errors.New(errors.ErrCodeInvalidInput, "%s and %s both write %s", prev, input, p)
			}
			owner[p] = input
		}
		out[input] = paths
	}
	return out, nil
}

// checkOutputs rejects output paths that would overwrite the spec itself,
// as `render chart.json -f json` would.
func checkOutputs(input string, paths map[string]string) error {
	for format, p := range paths {
		if filepath.Clean(p) == filepath.Clean(input) {
			return errors.New(errors.ErrCodeInvalidInput, "%s output would overwrite %s; pass --output", format, input)
		}
	}
	return nil
}

// writeArtifacts writes every format of res to its path.
func writeArtifacts(logger *log.Logger, res *pipeline.Result, paths map[string]string, formats []string) ([]string, error) {
	written := make([]string, 0, len(formats))
	for _, format := range formats {
		path := paths[format]
		if err := writeFile(path, res.Artifacts[format]); err != nil {
			return written, err
		}
		logger.Debugf("Generated %s: %d bytes", path, len(res.Artifacts[format]))
		written = append(written, path)
	}
	return written, nil
}

func reportRender(input string, res *pipeline.Result, written []string) {
	printSuccess("Rendered %s", input)
	printStats(res)
	for _, p := range written {
		printFile(p)
	}
}

// needsConverter reports whether any format goes through rsvg-convert.
func needsConverter(formats []string) bool {
	return slices.Contains(formats, pipeline.FormatPNG) || slices.Contains(formats, pipeline.FormatPDF)
}

// outputPaths maps each format to its output file.
func outputPaths(input, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeFile writes data to path, creating parent directories.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

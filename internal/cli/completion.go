package cli

import (
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vischart/pkg/pipeline"
)

// specExtensions are the file extensions offered when completing a spec argument.
var specExtensions = []string{"json", "vischart", "yaml", "yml", "toml"}

// completionGenerators writes the completion script of each supported shell.
var completionGenerators = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash":       func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":        func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish":       func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
}

// completionCommand creates the completion command.
func (c *CLI) completionCommand() *cobra.Command {
	shells := slices.Sorted(maps.Keys(completionGenerators))

	return &cobra.Command{
		Use:   "completion <" + strings.Join(shells, "|") + ">",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for vischart. Spec arguments complete
to .json, .yaml and .toml files and --format completes output formats.

  $ source <(vischart completion bash)
  $ vischart completion zsh > "${fpath[1]}/_vischart"
  $ vischart completion fish > ~/.config/fish/completions/vischart.fish
  PS> vischart completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             shells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionGenerators[args[0]](cmd.Root(), cmd.OutOrStdout())
		},
	}
}

// registerCompletions attaches argument and flag completion to the commands
// that take chart specs.
func registerCompletions(root *cobra.Command) {
	for _, cmd := range root.Commands() {
		if strings.Contains(cmd.Use, "<spec>") {
			cmd.ValidArgsFunction = completeSpecFiles
		}
	}
	if render, _, err := root.Find([]string{"render"}); err == nil && render != root {
		_ = render.RegisterFlagCompletionFunc("format", completeFormats)
	}
}

func completeSpecFiles(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return specExtensions, cobra.ShellCompDirectiveFilterFileExt
}

// completeFormats completes the last entry of a comma-separated format list.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	done, _ := splitLast(toComplete)
	var out []string
	for _, f := range []string{pipeline.FormatSVG, pipeline.FormatJSON, pipeline.FormatPDF, pipeline.FormatPNG} {
		if !slices.Contains(strings.Split(done, ","), f) {
			out = append(out, joinNonEmpty(done, f))
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

// splitLast splits "svg,pn" into ("svg", "pn").
func splitLast(s string) (string, string) {
	i := strings.LastIndexByte(s, ',')
	if i < 0 {
		return "", s
	}
	return s[:i], s[i+1:]
}

func joinNonEmpty(prefix, s string) string {
	if prefix == "" {
		return s
	}
	return prefix + "," + s
}

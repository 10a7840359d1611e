package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/parentevalerio/infovis-trees/pkg/config"
	"github.com/parentevalerio/infovis-trees/pkg/pipeline"
)

// renderCommand creates the render command for generating visualizations.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		src        sourceFlags
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [dataset.json]",
		Short: "Render a trait dataset as a tree infographic",
		Long: `Render a trait dataset as a tree infographic.

The dataset is a JSON array of records with treeNumber, trait, and score
fields. Each tree is drawn with roots below the ground line, a trunk, a
crown, and (with a fourth trait) fruit, all sized by their scores.

The dataset can come from a local file, an HTTP(S) URL (--url), or a
MongoDB collection (--mongo-uri). Results are cached locally for faster
subsequent runs.

With --reorder-script, the SVG embeds a script so clicking any shape
reorders the trees ascending by that shape's trait. With --sort-links,
shapes become links back to a server that re-renders in the new order.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			src.apply(&opts, args)
			return c.runRender(cmd.Context(), opts, output, noCache)
		},
	}

	src.register(cmd)

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the dataset cache")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, pdf, png (comma-separated)")

	// Chart flags
	cmd.Flags().StringVarP(&opts.VizType, "type", "t", "", "visualization type: chart (default), nodelink")
	cmd.Flags().StringVar(&opts.Style, "style", "", "visual style: flat (default), mono")
	cmd.Flags().StringVar(&opts.SortTrait, "sort", "", "order trees ascending by this trait (default: total descending)")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "frame width")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "frame height")
	cmd.Flags().Float64Var(&opts.Padding, "padding", 0, "band padding between trees (0..1)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "chart title")
	cmd.Flags().BoolVar(&opts.ReorderScript, "reorder-script", true, "embed click-to-reorder script in the SVG")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "show totals and edge scores (nodelink)")

	_ = cmd.RegisterFlagCompletionFunc("format", completeValues(pipeline.ValidFormats))
	_ = cmd.RegisterFlagCompletionFunc("style", completeValues(pipeline.ValidStyles))
	_ = cmd.RegisterFlagCompletionFunc("type", completeValues(pipeline.ValidVizTypes))

	return cmd
}

// completeValues builds a shell completion function over a set of valid
// flag values.
func completeValues(valid map[string]bool) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	values := make([]string, 0, len(valid))
	for v := range valid {
		values = append(values, v)
	}
	sort.Strings(values)
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

// runRender executes the pipeline and writes artifacts.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	cfg, err := config.Discover()
	if err != nil {
		return err
	}
	applyConfig(&opts, cfg)

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = loggerFromContext(ctx)

	prog := newProgress(opts.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", opts.Source()))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(opts.Formats)))

	if err := writeArtifacts(result.Artifacts, opts.Formats, opts.Input, output); err != nil {
		return err
	}

	printSuccess("Render complete")
	printStats(result.Stats.TreeCount, result.Stats.TraitCount, result.CacheInfo.RenderHit)
	if opts.Input != "" {
		printNewline()
		printNextStep("Serve it", appName+" serve "+opts.Input)
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
// This is used when generating multiple files (e.g., trees.svg, trees.json).
func basePath(output, input string) string {
	if output == "" {
		if input == "" {
			return "chart"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifacts writes each rendered format to its own file. A single format
// with an explicit output path goes exactly there; otherwise paths derive from
// the base path plus the format extension.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) error {
	if len(formats) == 1 && output != "" {
		return writeFile(output, artifacts[formats[0]])
	}

	base := basePath(output, input)
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		if err := writeFile(base+"."+format, data); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return err
	}
	if path != "" {
		printFile(path)
	}
	return nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

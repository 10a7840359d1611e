package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/parentevalerio/infovis-trees/pkg/dataset"
	"github.com/parentevalerio/infovis-trees/pkg/pipeline"
	"github.com/parentevalerio/infovis-trees/pkg/scale"
)

// inspectCommand creates the inspect command for printing dataset tables.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		noCache   bool
		sortTrait string
		src       sourceFlags
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "inspect [dataset.json]",
		Short: "Print dataset scores and totals as a table",
		Long: `Print dataset scores and totals as a table.

Rows are trees, columns are traits, ordered the way the chart would draw
them: descending by total score, or ascending by --sort trait.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src.apply(&opts, args)
			opts.SortTrait = sortTrait
			return c.runInspect(cmd.Context(), opts, noCache)
		},
	}

	src.register(cmd)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&sortTrait, "sort", "", "order trees ascending by this trait")

	return cmd
}

// runInspect loads the dataset and prints the score table.
func (c *CLI) runInspect(ctx context.Context, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	ds, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}

	order, err := treeOrder(ds, opts.SortTrait)
	if err != nil {
		return err
	}

	fmt.Println(renderScoreTable(ds, order, opts.SortTrait))
	printStats(len(ds.Trees()), len(ds.Traits()), false)
	return nil
}

// treeOrder resolves the display order: ascending by trait when given,
// descending by total otherwise.
func treeOrder(ds *dataset.Dataset, sortTrait string) ([]dataset.TreeID, error) {
	if sortTrait == "" {
		return scale.ByTotalDesc(ds), nil
	}
	return scale.ByTraitAsc(ds, dataset.Trait(sortTrait))
}

// renderScoreTable builds the trees-by-traits table with a totals column.
func renderScoreTable(ds *dataset.Dataset, order []dataset.TreeID, sortTrait string) string {
	traits := ds.Traits()

	headers := make([]string, 0, len(traits)+2)
	headers = append(headers, "Tree")
	for _, trait := range traits {
		label := string(trait)
		if label == sortTrait {
			label += " ↑"
		}
		headers = append(headers, label)
	}
	headers = append(headers, "Total")

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, len(order))
	for _, tree := range order {
		row := make([]string, 0, len(traits)+2)
		row = append(row, string(tree))
		for _, trait := range traits {
			score, ok := ds.Score(tree, trait)
			if !ok {
				row = append(row, "—")
				continue
			}
			row = append(row, formatScore(score))
		}
		row = append(row, formatScore(ds.Total(tree)))
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleHighlight
			}
			if col == len(headers)-1 {
				return StyleValue.Bold(true)
			}
			return StyleValue
		})

	return t.Render()
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/parentevalerio/infovis-trees/pkg/dataset"
	"github.com/parentevalerio/infovis-trees/pkg/pipeline"
	"github.com/parentevalerio/infovis-trees/pkg/scale"
)

// exploreCommand creates the explore command for the interactive dataset view.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		noCache bool
		src     sourceFlags
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "explore [dataset.json]",
		Short: "Explore a dataset interactively in the terminal",
		Long: `Explore a dataset interactively in the terminal.

The view mirrors the chart's interaction model: pressing a trait's number
key reorders the trees ascending by that trait, the same way clicking that
trait's shape reorders the SVG. Press t to return to the default order
(total descending).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src.apply(&opts, args)
			return c.runExplore(cmd.Context(), opts, noCache)
		},
	}

	src.register(cmd)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runExplore loads the dataset and runs the bubbletea program.
func (c *CLI) runExplore(ctx context.Context, opts pipeline.Options, noCache bool) error {
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

	model := newExploreModel(ds)
	_, err = tea.NewProgram(model, tea.WithContext(ctx)).Run()
	return err
}

// =============================================================================
// ExploreModel - Interactive trait reordering
// =============================================================================

// ExploreModel is the bubbletea model for the dataset explorer.
type ExploreModel struct {
	Dataset   *dataset.Dataset
	Traits    []dataset.Trait
	Order     []dataset.TreeID
	SortTrait dataset.Trait // empty for total-descending order
	Cursor    int
}

// newExploreModel creates the explorer in its default order.
func newExploreModel(ds *dataset.Dataset) ExploreModel {
	return ExploreModel{
		Dataset: ds,
		Traits:  ds.Traits(),
		Order:   scale.ByTotalDesc(ds),
	}
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Order)-1 {
				m.Cursor++
			}
		case "t":
			m.SortTrait = ""
			m.Order = scale.ByTotalDesc(m.Dataset)
		default:
			if i := traitIndex(key, len(m.Traits)); i >= 0 {
				if order, err := scale.ByTraitAsc(m.Dataset, m.Traits[i]); err == nil {
					m.SortTrait = m.Traits[i]
					m.Order = order
				}
			}
		}
	}
	return m, nil
}

// traitIndex maps a digit key ("1".."9") to a trait index, or -1.
func traitIndex(key string, traitCount int) int {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return -1
	}
	i := int(key[0] - '1')
	if i >= traitCount {
		return -1
	}
	return i
}

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Explore Dataset"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  1-" +
		string(rune('0'+len(m.Traits))) + " sort by trait  t total order  q quit"))
	b.WriteString("\n\n")

	headers := make([]string, 0, len(m.Traits)+3)
	headers = append(headers, "", "Tree")
	for i, trait := range m.Traits {
		label := fmt.Sprintf("%d:%s", i+1, trait)
		if trait == m.SortTrait {
			label += " ↑"
		}
		headers = append(headers, label)
	}
	headers = append(headers, "Total")

	maxTotal := 0.0
	for _, tree := range m.Order {
		if t := m.Dataset.Total(tree); t > maxTotal {
			maxTotal = t
		}
	}

	rows := [][]string{}
	for i, tree := range m.Order {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		row := []string{cursor, string(tree)}
		for _, trait := range m.Traits {
			score, ok := m.Dataset.Score(tree, trait)
			if !ok {
				row = append(row, "—")
				continue
			}
			row = append(row, formatScore(score))
		}
		total := m.Dataset.Total(tree)
		row = append(row, formatScore(total)+" "+scoreBar(total, maxTotal, 8))
		rows = append(rows, row)
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			return StyleValue
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")

	orderLabel := "total descending"
	if m.SortTrait != "" {
		orderLabel = string(m.SortTrait) + " ascending"
	}
	b.WriteString(StyleDim.Render(fmt.Sprintf("  order: %s  [%d/%d]",
		orderLabel, m.Cursor+1, len(m.Order))))
	b.WriteString("\n")

	return b.String()
}

package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/covertower/pkg/covers"
	"github.com/matzehuels/covertower/pkg/pipeline"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	listCursorStyle = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
)

// =============================================================================
// CoverListModel - Interactive cover browser
// =============================================================================

// CoverListModel is the bubbletea model for paging through covers.
type CoverListModel struct {
	Title   string
	Covers  []*covers.Cover
	Cursor  int
	Height  int
	Offset  int
	Details bool
}

// NewCoverListModel creates a new cover list model.
func NewCoverListModel(title string, found []*covers.Cover) CoverListModel {
	return CoverListModel{
		Title:   title,
		Covers:  found,
		Height:  10,
		Details: true,
	}
}

func (m CoverListModel) Init() tea.Cmd {
	return nil
}

func (m CoverListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Covers)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			m.Cursor = max(len(m.Covers)-1, 0)
			m.Offset = max(m.Cursor-m.Height+1, 0)
		case "enter", "tab":
			m.Details = !m.Details
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height/2-4, 3)
		if m.Cursor >= m.Offset+m.Height {
			m.Offset = m.Cursor - m.Height + 1
		}
	}
	return m, nil
}

func (m CoverListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	if len(m.Covers) == 0 {
		b.WriteString(StyleWarning.Render("No covers"))
		b.WriteString("\n")
		return b.String()
	}

	p := m.Covers[0].Presentation()
	headers := []string{"", "#"}
	for g := range p.NumGenerators {
		headers = append(headers, p.Name(g))
	}
	headers = append(headers, "Rank", "Relations")

	end := min(m.Offset+m.Height, len(m.Covers))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		c := m.Covers[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		row := []string{cursor, fmt.Sprint(i)}
		for g := range c.Reps {
			row = append(row, c.FormatRep(g))
		}
		row = append(row, fmt.Sprint(c.Subgroup.NumGenerators), fmt.Sprint(len(c.Subgroup.Relations)))
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return listHeaderStyle
			}
			if m.Offset+row == m.Cursor {
				return listCursorStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Covers))))
	b.WriteString("\n")

	if m.Details {
		b.WriteString("\n")
		b.WriteString(coverDetails(m.Covers[m.Cursor]))
	}
	return b.String()
}

// coverDetails lists the subgroup generators with the words they stand for,
// followed by the subgroup relations.
func coverDetails(c *covers.Cover) string {
	var b strings.Builder
	names := c.Presentation().GeneratorNames()
	b.WriteString(listHeaderStyle.Render("Generators"))
	b.WriteString("\n")
	for k := range c.Generators {
		fmt.Fprintf(&b, "  %s = %s\n", StyleNumber.Render(c.Subgroup.Name(k)), c.Schreier(k).Format(names))
	}
	b.WriteString(listHeaderStyle.Render("Relations"))
	b.WriteString("\n")
	if len(c.Subgroup.Relations) == 0 {
		b.WriteString(listDimStyle.Render("  none (free)"))
		b.WriteString("\n")
	}
	for _, r := range c.Subgroup.Relations {
		fmt.Fprintf(&b, "  %s\n", r.Format(c.Subgroup.Names))
	}
	return b.String()
}

// =============================================================================
// Command
// =============================================================================

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var file string
	var degree int
	var noCache bool

	cmd := &cobra.Command{
		Use:     "browse [presentation]",
		Short:   "Page through the covers of a presentation interactively",
		Example: `  covertower browse "<a, b | a^3, b^3, (a b)^3>" -n 4`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("degree") {
				degree = c.Config.Degree
			}
			opts, err := inputOptions(args, file)
			if err != nil {
				return err
			}
			opts.Degree = degree

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()
			res, err := runner.Enumerate(ctx, opts)
			if err != nil {
				return err
			}

			title := fmt.Sprintf("%s  degree %d", res.Export.Presentation, res.Export.Degree)
			_, err = tea.NewProgram(NewCoverListModel(title, res.Covers), tea.WithContext(ctx)).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "presentation file (.txt, .json, .toml, .yaml)")
	cmd.Flags().IntVarP(&degree, "degree", "n", pipeline.DefaultDegree, "degree (number of sheets)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")

	return cmd
}

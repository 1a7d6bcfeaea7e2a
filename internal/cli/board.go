package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/allaithw/taskboard/pkg/models"
)

// Board column indices.
const (
	columnTodo = iota
	columnInProgress
	columnDone
	columnCount
)

type boardModel struct {
	activeColumn int
	width        int
	height       int

	filters models.TaskFilters
	board   models.Board

	loading bool
	err     error
}

// boardLoadedMsg carries the derived board back to the model.
type boardLoadedMsg struct {
	board models.Board
	err   error
}

// Style definitions.
var (
	boardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	columnStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	activeColumnStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(1, 2)

	columnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("62")).
				MarginBottom(1)

	priorityHigh   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	priorityMedium = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	priorityLow    = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))

	assigneeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	boardHelpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newBoardModel(filters models.TaskFilters) boardModel {
	return boardModel{
		activeColumn: columnTodo,
		filters:      filters,
		loading:      true,
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadBoard
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab", "right", "l":
			m.activeColumn = (m.activeColumn + 1) % columnCount
			return m, nil
		case "shift+tab", "left", "h":
			m.activeColumn = (m.activeColumn - 1 + columnCount) % columnCount
			return m, nil
		case "r":
			m.loading = true
			return m, m.loadBoard
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case boardLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.board = msg.board
		m.err = nil
		return m, nil
	}

	return m, nil
}

func (m boardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	title := boardTitleStyle.Render(" Task Board ")
	help := boardHelpStyle.Render("tab/arrows: switch column | r: refresh | q: quit")

	if m.loading {
		return fmt.Sprintf("%s\n\n  Loading board...\n\n%s", title, help)
	}

	if m.err != nil {
		return fmt.Sprintf("%s\n\n  Error: %s\n\n%s", title, m.err, help)
	}

	todoCol := m.renderColumn("To Do", m.board.Todo)
	progressCol := m.renderColumn("In Progress", m.board.InProgress)
	doneCol := m.renderColumn("Done", m.board.Done)

	availableWidth := m.width - 2

	var body string
	if availableWidth > 90 {
		colWidth := availableWidth / 3
		todoCol = m.applyColumnStyle(columnTodo, todoCol, colWidth-4)
		progressCol = m.applyColumnStyle(columnInProgress, progressCol, colWidth-4)
		doneCol = m.applyColumnStyle(columnDone, doneCol, colWidth-4)
		body = lipgloss.JoinHorizontal(lipgloss.Top, todoCol, progressCol, doneCol)
	} else {
		colWidth := availableWidth - 4
		if colWidth < 20 {
			colWidth = 20
		}
		todoCol = m.applyColumnStyle(columnTodo, todoCol, colWidth)
		progressCol = m.applyColumnStyle(columnInProgress, progressCol, colWidth)
		doneCol = m.applyColumnStyle(columnDone, doneCol, colWidth)
		body = lipgloss.JoinVertical(lipgloss.Left, todoCol, progressCol, doneCol)
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s", title, body, help)
}

func (m boardModel) applyColumnStyle(column int, content string, width int) string {
	style := columnStyle
	if m.activeColumn == column {
		style = activeColumnStyle
	}
	return style.Width(width).Render(content)
}

func (m boardModel) renderColumn(header string, tasks []models.Task) string {
	var b strings.Builder
	b.WriteString(columnHeaderStyle.Render(fmt.Sprintf("%s (%d)", header, len(tasks))))
	b.WriteString("\n")

	if len(tasks) == 0 {
		b.WriteString("  No tasks.")
		return b.String()
	}

	for _, t := range tasks {
		badge := styleForPriority(t.Priority).Render(fmt.Sprintf("[%s]", t.Priority))
		b.WriteString(fmt.Sprintf("  %s %s\n", badge, t.Title))
		if t.AssignedUser != "" {
			b.WriteString(assigneeStyle.Render(fmt.Sprintf("        %s", t.AssignedUser)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func styleForPriority(p models.TaskPriority) lipgloss.Style {
	switch p {
	case models.PriorityHigh:
		return priorityHigh
	case models.PriorityMedium:
		return priorityMedium
	case models.PriorityLow:
		return priorityLow
	default:
		return lipgloss.NewStyle()
	}
}

func (m boardModel) loadBoard() tea.Msg {
	if Board == nil {
		return boardLoadedMsg{err: fmt.Errorf("board manager not initialized")}
	}
	board, err := Board.DeriveBoard(m.filters)
	if err != nil {
		return boardLoadedMsg{err: fmt.Errorf("loading board: %w", err)}
	}
	return boardLoadedMsg{board: *board}
}

var (
	boardPriority string
	boardAssignee string
	boardSearch   string
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Interactive kanban board",
	Long: `Launch an interactive three-column kanban view of the board,
grouped into To Do, In Progress, and Done.

Filter flags narrow the view the same way the list command does.
Navigate between columns with Tab or arrow keys, refresh with r,
quit with q.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Board == nil {
			return fmt.Errorf("board manager not initialized")
		}
		filters := models.TaskFilters{
			Priority:     models.TaskPriority(boardPriority),
			AssignedUser: boardAssignee,
			SearchTerm:   boardSearch,
		}
		p := tea.NewProgram(newBoardModel(filters), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	boardCmd.Flags().StringVar(&boardPriority, "priority", "", "filter by priority (low, medium, high)")
	boardCmd.Flags().StringVar(&boardAssignee, "assignee", "", "filter by assigned user")
	boardCmd.Flags().StringVar(&boardSearch, "search", "", "case-insensitive search over title, description, assignee")
	rootCmd.AddCommand(boardCmd)
}

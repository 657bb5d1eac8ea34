// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Thermoquad/vmc96/pkg/vmc96"
)

//////////////////////////////////////////////////////////////
// Types
//////////////////////////////////////////////////////////////

// motorBoard is the part of a session the grid drives
type motorBoard interface {
	MotorRun(row, col int) error
	MotorPairRun(row, col1, col2 int) error
	MotorStopAll() error
	MotorStatus() (vmc96.MotorStatus, error)
	MotorOptoLineStatus() (uint32, error)
	Statistics() vmc96.Statistics
}

// logEntry is one line of the event log
type logEntry struct {
	timestamp time.Time
	message   string
	isError   bool
}

type gridKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Run   key.Binding
	Pair  key.Binding
	Stop  key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func (k gridKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Run, k.Pair, k.Stop, k.Help, k.Quit}
}

func (k gridKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Run, k.Pair, k.Stop},
		{k.Help, k.Quit},
	}
}

var gridKeys = gridKeyMap{
	Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
	Run:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
	Pair:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pair run")),
	Stop:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop all")),
	Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// gridModel is the Bubble Tea model for the motor grid TUI
type gridModel struct {
	board    motorBoard
	connInfo string
	interval time.Duration

	cursor  vmc96.Coord
	status  vmc96.MotorStatus
	active  map[vmc96.Coord]bool
	opto    uint32
	polled  bool
	polling bool

	stats         vmc96.Statistics
	log           []logEntry
	maxLogEntries int

	keys     gridKeyMap
	help     help.Model
	width    int
	height   int
	quitting bool
}

// Messages
type gridTickMsg time.Time

type pollMsg struct {
	status vmc96.MotorStatus
	opto   uint32
	err    error
}

type actionMsg struct {
	action string
	err    error
}

//////////////////////////////////////////////////////////////
// Bubble Tea
//////////////////////////////////////////////////////////////

func newGridModel(board motorBoard, connInfo string, interval time.Duration) gridModel {
	return gridModel{
		board:         board,
		connInfo:      connInfo,
		interval:      interval,
		active:        make(map[vmc96.Coord]bool),
		maxLogEntries: 100,
		keys:          gridKeys,
		help:          help.New(),
		width:         80,
		height:        24,
	}
}

func (m gridModel) Init() tea.Cmd {
	return tea.Batch(pollCmd(m.board), gridTickCmd(m.interval))
}

func gridTickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return gridTickMsg(t)
	})
}

// pollCmd reads the motor status and opto lines off the UI goroutine
func pollCmd(board motorBoard) tea.Cmd {
	return func() tea.Msg {
		st, err := board.MotorStatus()
		if err != nil {
			return pollMsg{err: err}
		}
		opto, err := board.MotorOptoLineStatus()
		return pollMsg{status: st, opto: opto, err: err}
	}
}

func actionCmd(action string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		return actionMsg{action: action, err: fn()}
	}
}

func (m gridModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case gridTickMsg:
		m.stats = m.board.Statistics()
		cmds := []tea.Cmd{gridTickCmd(m.interval)}
		if !m.polling {
			m.polling = true
			cmds = append(cmds, pollCmd(m.board))
		}
		return m, tea.Batch(cmds...)

	case pollMsg:
		m.polling = false
		if msg.err != nil {
			m.addLogEntry(fmt.Sprintf("Poll failed: %v", msg.err), true)
			return m, nil
		}
		m.applyStatus(msg.status)
		m.opto = msg.opto
		m.polled = true

	case actionMsg:
		if msg.err != nil {
			m.addLogEntry(fmt.Sprintf("%s: %v", msg.action, msg.err), true)
		} else {
			m.addLogEntry(msg.action, false)
		}
		m.stats = m.board.Statistics()
	}

	return m, nil
}

func (m gridModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		if m.cursor.Row > 0 {
			m.cursor.Row--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor.Row < vmc96.MotorRows-1 {
			m.cursor.Row++
		}
	case key.Matches(msg, m.keys.Left):
		if m.cursor.Col > 0 {
			m.cursor.Col--
		}
	case key.Matches(msg, m.keys.Right):
		if m.cursor.Col < vmc96.MotorColumns-1 {
			m.cursor.Col++
		}

	case key.Matches(msg, m.keys.Run):
		c := m.cursor
		return m, actionCmd(fmt.Sprintf("Run motor %s", c), func() error {
			return m.board.MotorRun(c.Row, c.Col)
		})

	case key.Matches(msg, m.keys.Pair):
		c := m.cursor
		return m, actionCmd(fmt.Sprintf("Pair run %s + %s", c, vmc96.Coord{Row: c.Row, Col: c.Col + 1}), func() error {
			return m.board.MotorPairRun(c.Row, c.Col, c.Col+1)
		})

	case key.Matches(msg, m.keys.Stop):
		return m, actionCmd("Stop all motors", m.board.MotorStopAll)
	}

	return m, nil
}

func (m *gridModel) applyStatus(st vmc96.MotorStatus) {
	m.status = st
	m.active = make(map[vmc96.Coord]bool, len(st.Active))
	for _, c := range st.Active {
		m.active[c] = true
	}
}

func (m *gridModel) addLogEntry(message string, isError bool) {
	m.log = append(m.log, logEntry{
		timestamp: time.Now(),
		message:   message,
		isError:   isError,
	})

	// Keep only last N entries
	if len(m.log) > m.maxLogEntries {
		m.log = m.log[len(m.log)-m.maxLogEntries:]
	}
}

//////////////////////////////////////////////////////////////
// View
//////////////////////////////////////////////////////////////

var (
	gridTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	gridHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	gridLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true)

	gridValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	gridErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	gridInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	gridCursorStyle = lipgloss.NewStyle().
			Reverse(true)

	gridBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

func (m gridModel) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	var s strings.Builder
	s.WriteString(gridTitleStyle.Render("VMC96 - MOTOR ARRAY"))
	s.WriteString("\n")
	s.WriteString(gridHeaderStyle.Render(m.connInfo))
	s.WriteString("\n\n")

	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		gridBoxStyle.Render(m.renderGrid()),
		" ",
		gridBoxStyle.Render(m.renderStatus()),
	))
	s.WriteString("\n")
	s.WriteString(gridBoxStyle.Width(m.boxWidth()).Render(m.renderStats()))
	s.WriteString("\n")
	s.WriteString(gridBoxStyle.Width(m.boxWidth()).Render(m.renderEventLog()))
	s.WriteString("\n")
	s.WriteString(m.help.View(m.keys))

	return s.String()
}

func (m gridModel) boxWidth() int {
	if m.width > 8 {
		return m.width - 4
	}
	return 76
}

func (m gridModel) renderGrid() string {
	var s strings.Builder
	s.WriteString("    ")
	for col := 0; col < vmc96.MotorColumns; col++ {
		s.WriteString(gridHeaderStyle.Render(fmt.Sprintf("%3d", col)))
	}
	s.WriteString("\n")

	for row := 0; row < vmc96.MotorRows; row++ {
		s.WriteString(gridHeaderStyle.Render(fmt.Sprintf("%3d ", row)))
		for col := 0; col < vmc96.MotorColumns; col++ {
			c := vmc96.Coord{Row: row, Col: col}
			cell := " · "
			if m.active[c] {
				cell = gridValueStyle.Render(" ● ")
			}
			if c == m.cursor {
				cell = gridCursorStyle.Render(cell)
			}
			s.WriteString(cell)
		}
		if row < vmc96.MotorRows-1 {
			s.WriteString("\n")
		}
	}
	return s.String()
}

func (m gridModel) renderStatus() string {
	var s strings.Builder
	s.WriteString(gridLabelStyle.Render("STATUS"))
	s.WriteString("\n")

	if !m.polled {
		s.WriteString(gridInfoStyle.Render("Waiting for status..."))
		return s.String()
	}

	s.WriteString(fmt.Sprintf("%s %s\n", gridLabelStyle.Render("Cursor:"),
		gridValueStyle.Render(fmt.Sprintf("%s id 0x%02X", m.cursor, vmc96.EncodeMotor(m.cursor.Row, m.cursor.Col)))))
	s.WriteString(fmt.Sprintf("%s %s\n", gridLabelStyle.Render("Current:"),
		gridValueStyle.Render(fmt.Sprintf("%d mA", m.status.CurrentMA))))
	s.WriteString(fmt.Sprintf("%s %s\n", gridLabelStyle.Render("Active:"),
		gridValueStyle.Render(fmt.Sprintf("%d", len(m.status.Active)))))
	s.WriteString(fmt.Sprintf("%s %s", gridLabelStyle.Render("Opto:"),
		gridValueStyle.Render(fmt.Sprintf("0x%08X", m.opto))))
	return s.String()
}

func (m gridModel) renderStats() string {
	st := m.stats
	st.CalculateRates()

	errors := st.Errors()
	errStyle := gridValueStyle
	if errors > 0 {
		errStyle = gridErrorStyle
	}

	return fmt.Sprintf("%s %s   %s %s   %s %s   %s %s",
		gridLabelStyle.Render("Exchanges:"), gridValueStyle.Render(fmt.Sprintf("%d", st.TotalExchanges)),
		gridLabelStyle.Render("Errors:"), errStyle.Render(fmt.Sprintf("%d", errors)),
		gridLabelStyle.Render("Rate:"), gridValueStyle.Render(fmt.Sprintf("%.1f/s", st.ExchangeRate)),
		gridLabelStyle.Render("Bytes:"), gridValueStyle.Render(fmt.Sprintf("%d / %d", st.BytesSent, st.BytesReceived)),
	)
}

func (m gridModel) renderEventLog() string {
	var s strings.Builder
	s.WriteString(gridLabelStyle.Render("EVENTS"))

	if len(m.log) == 0 {
		s.WriteString("\n")
		s.WriteString(gridHeaderStyle.Render("  (no events yet)"))
		return s.String()
	}

	// Rows left after the title, grid, stats and help
	logHeight := m.height - 22
	if logHeight < 3 {
		logHeight = 3
	}
	start := len(m.log) - logHeight
	if start < 0 {
		start = 0
	}

	for _, entry := range m.log[start:] {
		icon, style := "i", gridInfoStyle
		if entry.isError {
			icon, style = "x", gridErrorStyle
		}
		s.WriteString(fmt.Sprintf("\n%s %s %s",
			gridHeaderStyle.Render(entry.timestamp.Format("15:04:05.000")),
			style.Render(icon),
			entry.message))
	}
	return s.String()
}

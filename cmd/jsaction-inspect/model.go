package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/coder/websocket"
	"github.com/mattn/go-isatty"

	"github.com/jsaction-go/contract/internal/inspector"
)

const maxRows = 200

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	globalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	matchStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// recordMsg carries one decoded batch from the inspector WebSocket into
// the bubbletea update loop.
type recordMsg inspector.Batch

type errMsg error

// model is the jsaction-inspect TUI's bubbletea model: a scrolling log of
// Event Records streamed from a Contract's inspector.Server.
type model struct {
	conn     *websocket.Conn
	rows     []string
	width    int
	height   int
	colorful bool
}

func newModel(conn *websocket.Conn) model {
	return model{conn: conn, colorful: isatty.IsTerminal(os.Stdout.Fd())}
}

func (m model) Init() tea.Cmd {
	return listenCmd(m.conn)
}

// listenCmd reads one WebSocket message and decodes it, looping via the
// recordMsg it returns triggering another listenCmd from Update.
func listenCmd(conn *websocket.Conn) tea.Cmd {
	return func() tea.Msg {
		_, payload, err := conn.Read(context.Background())
		if err != nil {
			return errMsg(err)
		}
		batch, err := inspector.Decode(payload)
		if err != nil {
			return errMsg(err)
		}
		return recordMsg(batch)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case recordMsg:
		for _, r := range msg.Records {
			m.rows = append(m.rows, formatRow(r, m.colorful))
		}
		if len(m.rows) > maxRows {
			m.rows = m.rows[len(m.rows)-maxRows:]
		}
		return m, listenCmd(m.conn)
	case errMsg:
		return m, tea.Quit
	}
	return m, nil
}

func formatRow(r inspector.WireRecord, colorful bool) string {
	ts := time.UnixMilli(int64(r.TimeStamp)).Format("15:04:05.000")
	line := fmt.Sprintf("%s  %-12s %-8s -> %-8s action=%s", ts, r.EventType, r.TargetTag, r.ActionTag, r.Action)
	if !colorful {
		return line
	}
	if r.Global {
		return globalStyle.Render(line)
	}
	return matchStyle.Render(line)
}

func (m model) View() string {
	header := headerStyle.Render(fmt.Sprintf("jsaction-inspect  (%d events, q to quit)", len(m.rows)))
	visible := m.rows
	if m.height > 2 && len(visible) > m.height-2 {
		visible = visible[len(visible)-(m.height-2):]
	}
	body := ""
	for _, row := range visible {
		body += row + "\n"
	}
	return header + "\n" + body
}

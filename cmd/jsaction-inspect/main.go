// Command jsaction-inspect is a terminal dashboard that connects to a
// running Contract's inspector WebSocket (internal/inspector) and renders
// its Event Record stream live.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/coder/websocket"
)

func main() {
	url := flag.String("url", "ws://localhost:8008/inspector", "inspector WebSocket URL")
	flag.Parse()

	conn, _, err := websocket.Dial(context.Background(), *url, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jsaction-inspect: dial %s: %v\n", *url, err)
		os.Exit(1)
	}
	defer conn.CloseNow()

	if _, err := tea.NewProgram(newModel(conn), tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "jsaction-inspect: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jdmarlow86/sdalocal/internal/store"
	"github.com/jdmarlow86/sdalocal/internal/tui"
)

func main() {
	dataPath, err := store.DefaultDataPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	s, err := store.New(dataPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening data file: %v\n", err)
		os.Exit(1)
	}

	app := tui.NewApp(s)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"flag"
	"fmt"
	"os"

	"fruitlens/backend/app/services"
	"fruitlens/backend/initialize"
	"fruitlens/cmd/fruitlens/ui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	cfgPath := flag.String("config", "config/config.yaml", "Path to configuration file")
	flag.Parse()

	app, err := initialize.Build(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "startup failed:", err)
		os.Exit(1)
	}

	deps := &ui.Deps{
		Accounts:   app.Accounts,
		Images:     app.Images,
		Classifier: app.Classifier,
		Session:    services.NewSession(app.Images),
		WatchPaths: app.Cfg.WatchPaths,
	}

	p := tea.NewProgram(ui.NewRootModel(deps), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "ui error:", err)
		os.Exit(1)
	}
}

package app

const (
	Name    = "panelctl"
	License = "MIT"
)

var Version = "0.2.0"

type App struct {
	Name    string
	Version string
	License string
}

func New() *App {
	return &App{
		Name:    Name,
		Version: Version,
		License: License,
	}
}

func (a *App) GetFullVersion() string {
	return a.Name + " version " + a.Version
}

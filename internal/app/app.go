package app

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wahlandcase/attuned.prwatch/internal/config"
	"github.com/wahlandcase/attuned.prwatch/internal/models"
	"github.com/wahlandcase/attuned.prwatch/internal/snapshot"
	"github.com/wahlandcase/attuned.prwatch/internal/ui"
	"github.com/wahlandcase/attuned.prwatch/internal/update"
	"github.com/wahlandcase/attuned.prwatch/internal/watch"
)

// Model is the main application state
type Model struct {
	// Configuration
	appCfg   *config.Config
	cfgStore *watch.ConfigStore
	watchCfg *watch.Config

	// Refresh core
	sched   *watch.Scheduler
	builder *watch.Builder
	snap    *snapshot.Store

	// Navigation
	screen Screen
	cursor int
	rows   []models.PullRequest

	// UI state
	input         textinput.Model
	spin          spinner.Model
	statusMessage string
	errorMessage  string
	authError     error

	// Update state
	version         string
	updateAvailable *update.Release
	updating        bool

	// Window size
	width  int
	height int
}

// New creates a new application model. The scheduler starts with a forced
// fetch so the first tick kicks off a cycle immediately.
func New(appCfg *config.Config, cfgStore *watch.ConfigStore, watchCfg *watch.Config, builder *watch.Builder, snap *snapshot.Store, version string) Model {
	input := textinput.New()
	input.Placeholder = "https://github.com/org/repo/pull/123"
	input.CharLimit = 200
	input.Width = 60

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(ui.ColorCyan)

	return Model{
		appCfg:   appCfg,
		cfgStore: cfgStore,
		watchCfg: watchCfg,
		sched:    watch.NewScheduler(watchCfg.RefreshInterval()),
		builder:  builder,
		snap:     snap,
		screen:   ScreenList,
		input:    input,
		spin:     spin,
		version:  version,
		width:    80,
		height:   24,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(),
		m.spin.Tick,
		authCheckCmd(),
	}
	if m.appCfg.ShouldCheckForUpdate() {
		cmds = append(cmds, checkUpdateCmd(m.version, m.appCfg.Update.Repo))
	}
	return tea.Batch(cmds...)
}

// tickMsg drives the foreground control loop once per second
type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

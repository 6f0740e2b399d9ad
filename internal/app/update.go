package app

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wahlandcase/attuned.prwatch/internal/logging"
	"github.com/wahlandcase/attuned.prwatch/internal/models"
)

// Update handles all messages and updates state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		return m.handleTick(time.Time(msg))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case fetchResult:
		return m.handleFetchResult(msg)

	case authCheckResult:
		m.authError = msg.err
		return m, nil

	case updateCheckResult:
		if msg.err == nil && msg.release != nil {
			m.updateAvailable = msg.release
		}
		m.appCfg.RecordUpdateCheck()
		_ = m.appCfg.Save()
		return m, nil

	case updateDownloadResult:
		m.updating = false
		if msg.err != nil {
			m.statusMessage = "Update failed: " + msg.err.Error()
		} else {
			m.statusMessage = "Updated to " + msg.version + " — restart to apply"
			m.updateAvailable = nil
		}
		return m, nil
	}

	return m, nil
}

// handleTick is the foreground control loop: expose newly published
// results and decide whether to launch the next background fetch.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd()}

	if m.sched.TakePublish() {
		m.syncRows()
	}

	if m.sched.ShouldFetch(now) {
		m.sched.BeginFetch(now)
		cmds = append(cmds, fetchCmd(m.builder, m.cfgStore))
	}

	return m, tea.Batch(cmds...)
}

// handleFetchResult completes the cycle: hand the result to the scheduler
// and persist the snapshot. A failed cycle leaves the previous snapshot
// and result set untouched.
func (m Model) handleFetchResult(msg fetchResult) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.sched.CompleteFetch(nil, msg.err)
		return m, nil
	}

	m.watchCfg = msg.cfg
	m.sched.SetInterval(msg.cfg.RefreshInterval())

	rs := msg.rs
	m.sched.CompleteFetch(&rs, nil)

	if err := m.snap.Write(&rs); err != nil {
		logging.Logger.Warn("snapshot write failed", "error", err)
		m.statusMessage = "Snapshot write failed: " + err.Error()
	}
	return m, nil
}

// syncRows rebuilds the flat navigation list from the latest result set
func (m *Model) syncRows() {
	latest := m.sched.Latest()
	if latest == nil {
		m.rows = nil
		return
	}
	m.rows = latest.All()
	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}
}

// handleKey processes keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusMessage = ""

	// Global quit
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.screen {
	case ScreenList:
		return m.handleListKey(msg)
	case ScreenAddPR:
		return m.handleAddKey(msg)
	case ScreenError:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case "enter":
		if m.cursor < len(m.rows) {
			if err := openURL(m.rows[m.cursor].URL); err != nil {
				m.statusMessage = "Failed to open browser: " + err.Error()
			}
		}

	case "a":
		m.screen = ScreenAddPR
		m.input.SetValue("")
		m.input.Focus()
		return m, nil

	case "d":
		return m.dismissSelected()

	case "r":
		m.sched.ForceRefresh()

	case "u":
		if m.updateAvailable != nil && !m.updating {
			m.updating = true
			return m, downloadUpdateCmd(m.updateAvailable, m.appCfg.Update.Repo)
		}
	}
	return m, nil
}

// dismissSelected hides the PR under the cursor. The mutation is a full
// read-modify-write against the config store; the forced refresh bounds
// staleness to one tick.
func (m Model) dismissSelected() (tea.Model, tea.Cmd) {
	if m.cursor >= len(m.rows) {
		return m, nil
	}
	pr := m.rows[m.cursor]
	if err := m.cfgStore.Dismiss(pr.URL, pr.Source); err != nil {
		m.statusMessage = "Dismiss failed: " + err.Error()
		return m, nil
	}
	m.statusMessage = "Dismissed " + pr.RepoShort + "#" + strconv.Itoa(pr.Number)
	m.sched.ForceRefresh()
	return m, nil
}

func (m Model) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.screen = ScreenList
		m.input.Blur()
		return m, nil

	case tea.KeyEnter:
		url := m.input.Value()
		if _, ok := models.ParsePRURL(url); !ok {
			m.statusMessage = "Paste a URL like: https://github.com/org/repo/pull/123"
			return m, nil
		}
		if err := m.cfgStore.AddWatched(url); err != nil {
			m.statusMessage = "Add failed: " + err.Error()
			return m, nil
		}
		m.screen = ScreenList
		m.input.Blur()
		m.statusMessage = "Watching " + url
		m.sched.ForceRefresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

package app

import (
	"context"
	"os/exec"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wahlandcase/attuned.prwatch/internal/github"
	"github.com/wahlandcase/attuned.prwatch/internal/models"
	"github.com/wahlandcase/attuned.prwatch/internal/update"
	"github.com/wahlandcase/attuned.prwatch/internal/watch"
)

// Message types for async operations

type fetchResult struct {
	cfg *watch.Config
	rs  models.ResultSet
	err error
}

type authCheckResult struct {
	err error
}

type updateCheckResult struct {
	release *update.Release
	err     error
}

type updateDownloadResult struct {
	success bool
	version string
	err     error
}

// fetchCmd runs one full fetch cycle on a background goroutine: reload the
// watch config from disk so mutations take effect on this cycle, then
// build the result set. All network I/O happens here, never on the UI loop.
func fetchCmd(builder *watch.Builder, store *watch.ConfigStore) tea.Cmd {
	return func() tea.Msg {
		cfg, err := store.Load()
		if err != nil {
			return fetchResult{err: err}
		}
		rs := builder.Build(context.Background(), cfg)
		return fetchResult{cfg: cfg, rs: rs}
	}
}

// authCheckCmd runs gh auth check in the background
func authCheckCmd() tea.Cmd {
	return func() tea.Msg {
		err := github.CheckAuth()
		return authCheckResult{err: err}
	}
}

// checkUpdateCmd checks for available updates
func checkUpdateCmd(currentVersion, repo string) tea.Cmd {
	return func() tea.Msg {
		release, err := update.CheckForUpdate(currentVersion, repo)
		return updateCheckResult{release: release, err: err}
	}
}

// downloadUpdateCmd downloads and installs an update
func downloadUpdateCmd(release *update.Release, repo string) tea.Cmd {
	return func() tea.Msg {
		err := update.DownloadAndInstall(release, repo)
		if err != nil {
			return updateDownloadResult{success: false, err: err}
		}
		return updateDownloadResult{success: true, version: update.VersionDisplay(release.TagName)}
	}
}

// openURL opens a URL in the default browser
func openURL(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default: // Linux and others
		cmd = exec.Command("xdg-open", url)
	}

	return cmd.Start()
}

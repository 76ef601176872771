package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"chanlist/internal/collector"
	"chanlist/internal/models"
	"chanlist/internal/report"
	"chanlist/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	FetchView ViewState = iota
	ListView
	DetailView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	engine       collector.Engine
	channelURL   string
	options      collector.Options
	outputPath   string
	width        int
	height       int
	playlistList list.Model
	records      []models.PlaylistRecord
	selected     *models.PlaylistRecord
	progressChan chan collector.ProgressUpdate
	progress     collector.ProgressUpdate
	result       *collector.Result
	status       string
	statusErr    error
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, engine collector.Engine, channelURL string, options collector.Options, outputPath string) *Model {
	return &Model{
		ctx:        ctx,
		view:       FetchView,
		engine:     engine,
		channelURL: channelURL,
		options:    options,
		outputPath: outputPath,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init starts the collector run for the configured channel.
func (m *Model) Init() tea.Cmd {
	return m.startFetch()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.playlistList.Width() == 0 {
			m.playlistList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case FetchView:
			return m.handleFetchKeys(msg)
		case ListView:
			return m.handleListKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		}

	case fetchProgressMsg:
		m.progress = collector.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case fetchCompleteMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.result = msg.result
		m.records = msg.result.Records
		items := make([]list.Item, len(m.records))
		for i, record := range m.records {
			items[i] = playlistItem{record: record}
		}
		m.playlistList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.playlistList.Title = fmt.Sprintf("Playlists (%d)", len(m.records))
		m.playlistList.SetSize(m.width-4, m.height-8)
		m.view = ListView
		return m, nil

	case reportSavedMsg:
		if msg.err != nil {
			m.statusErr = msg.err
		} else {
			m.status = fmt.Sprintf("✓ Report saved to %s", msg.path)
			m.statusErr = nil
		}
		return m, nil

	case browserOpenedMsg:
		if msg.err != nil {
			m.statusErr = msg.err
		} else {
			m.status = "✓ Opened in browser"
			m.statusErr = nil
		}
		return m, nil
	}

	return m.updateList(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case FetchView:
		return m.renderFetch()
	case ListView:
		return m.renderList()
	case DetailView:
		return m.renderDetail()
	default:
		return ""
	}
}

func (m *Model) handleFetchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		selected := m.playlistList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(playlistItem); ok {
				record := item.record
				m.selected = &record
				m.view = DetailView
			}
		}
		return m, nil
	case "o":
		if item, ok := m.playlistList.SelectedItem().(playlistItem); ok {
			return m, m.openBrowser(item.record.URL)
		}
		return m, nil
	case "s":
		return m, m.saveReport()
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = ListView
		m.selected = nil
		return m, nil
	case "o":
		if m.selected != nil {
			return m, m.openBrowser(m.selected.URL)
		}
	case "s":
		return m, m.saveReport()
	}
	return m, nil
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.view == ListView {
		m.playlistList, cmd = m.playlistList.Update(msg)
	}
	return m, cmd
}

func (m *Model) startFetch() tea.Cmd {
	m.progressChan = make(chan collector.ProgressUpdate, 50)

	go func() {
		result, err := m.engine.Run(m.ctx, m.channelURL, m.options, m.progressChan)
		m.result = result
		m.err = err
		close(m.progressChan)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return fetchCompleteMsg{result: m.result, err: m.err}
		}

		update, ok := <-m.progressChan
		if !ok {
			return fetchCompleteMsg{result: m.result, err: m.err}
		}
		return fetchProgressMsg(update)
	}
}

func (m *Model) saveReport() tea.Cmd {
	records := m.records
	fetchedAt := time.Now()
	if m.result != nil {
		fetchedAt = m.result.Session.StartedAt
	}
	path := m.outputPath

	return func() tea.Msg {
		written, err := report.Write(path, report.Render(records, fetchedAt))
		return reportSavedMsg{path: written, err: err}
	}
}

func (m *Model) openBrowser(url string) tea.Cmd {
	return func() tea.Msg {
		return browserOpenedMsg{err: shared.OpenBrowser(url)}
	}
}

func (m *Model) renderFetch() string {
	title := styles.title.Render("Fetching Playlists")

	var phase string
	switch m.progress.Phase {
	case collector.ProbeExtractor:
		phase = "Checking yt-dlp..."
	case collector.TryStrategy:
		phase = "Trying extraction strategies..."
	case collector.CollectRecords:
		phase = "Collecting playlists..."
	case collector.DetailLookup:
		phase = fmt.Sprintf("Fetching details (%d/%d)", m.progress.Step, m.progress.Total)
	default:
		phase = "Starting..."
	}

	return fmt.Sprintf("%s\n%s\n\n%s\n%s", title, styles.help.Render(m.channelURL), phase, m.progress.Message)
}

func (m *Model) renderList() string {
	var status string
	if m.statusErr != nil {
		status = styles.err.Render(fmt.Sprintf("✗ %v", m.statusErr))
	} else if m.status != "" {
		status = styles.ok.Render(m.status)
	} else if len(m.records) == 0 {
		status = styles.warn.Render("No playlists found for this channel")
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.open, m.keys.save, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", m.playlistList.View(), status, helpView)
}

func (m *Model) renderDetail() string {
	if m.selected == nil {
		m.view = ListView
		return m.renderList()
	}

	title := styles.title.Render(m.selected.Title)
	info := fmt.Sprintf(
		"\nURL: %s\nID: %s\nVideos: %d\nUploader: %s\n",
		m.selected.URL,
		m.selected.ID,
		m.selected.VideoCount,
		m.selected.Uploader,
	)

	var status string
	if m.statusErr != nil {
		status = styles.err.Render(fmt.Sprintf("✗ %v", m.statusErr))
	} else if m.status != "" {
		status = styles.ok.Render(m.status)
	}

	helpKeys := []key.Binding{m.keys.back, m.keys.open, m.keys.save, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s\n%s", title, info, status, helpView)
}

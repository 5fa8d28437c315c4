package tui

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmorneau/fizzlab/internal/config"
	apperrors "github.com/jmorneau/fizzlab/internal/errors"
	"github.com/jmorneau/fizzlab/internal/fizzbuzz"
	"github.com/jmorneau/fizzlab/internal/metrics"
	"github.com/jmorneau/fizzlab/internal/orchestration"
	"github.com/jmorneau/fizzlab/internal/sysmon"
	"github.com/jmorneau/fizzlab/internal/ui"
	"github.com/jmorneau/fizzlab/internal/workspace"
)

// Layout constants.
const (
	headerHeight  = 1
	footerHeight  = 1
	statusHeight  = 2
	minBodyHeight = 4

	// BlocksPanelWidthPercent is the share of the width given to the
	// rule editor column.
	BlocksPanelWidthPercent = 40
	// HeatmapPanelHeightPercent is the share of the body height given
	// to the heatmap below the results.
	HeatmapPanelHeightPercent = 40

	// minHeatmapHeight keeps the grid legible on short terminals.
	minHeatmapHeight = 5

	tickInterval = 500 * time.Millisecond
)

// Section identifies the focusable panels.
type Section int

const (
	SectionBlocks Section = iota
	SectionResults
)

// themeCycle is the order the theme key steps through.
var themeCycle = []string{"dark", "light", "studio", "none"}

// runtimeCollector feeds the status bar memory line.
var runtimeCollector = metrics.NewRuntimeCollector()

// LayoutManager computes panel dimensions from the terminal size.
type LayoutManager struct {
	width  int
	height int
}

func (l LayoutManager) bodyHeight() int {
	h := l.height - headerHeight - statusHeight - footerHeight
	if h < minBodyHeight {
		h = minBodyHeight
	}
	return h
}

func (l LayoutManager) blocksWidth() int {
	return l.width * BlocksPanelWidthPercent / 100
}

func (l LayoutManager) rightWidth() int {
	return l.width - l.blocksWidth()
}

func (l LayoutManager) heatmapHeight() int {
	h := l.bodyHeight() * HeatmapPanelHeightPercent / 100
	if h < minHeatmapHeight {
		h = minHeatmapHeight
	}
	return h
}

func (l LayoutManager) resultsHeight() int {
	return l.bodyHeight() - l.heatmapHeight()
}

// Model is the root bubbletea model of the studio.
type Model struct {
	parentCtx  context.Context
	runCtx     context.Context
	runCancel  context.CancelFunc
	generation uint64
	running    bool
	paused     bool

	ws     *workspace.Workspace
	cfg    config.AppConfig
	keys   KeyMap
	layout LayoutManager
	focus  Section

	header   HeaderModel
	blocks   BlocksModel
	results  ResultsModel
	heatmap  HeatmapModel
	status   StatusModel
	helpView help.Model

	form     *FormModel
	showHelp bool

	themeName string

	ref      *programRef
	exitCode int
}

// NewModel creates the studio model over the given workspace. The
// parent context bounds the whole session; each batch run derives its
// own timeout context from it.
func NewModel(parentCtx context.Context, ws *workspace.Workspace, cfg config.AppConfig, version string) Model {
	m := Model{
		parentCtx: parentCtx,
		ws:        ws,
		cfg:       cfg,
		keys:      DefaultKeyMap(),
		header:    NewHeaderModel(version),
		blocks:    NewBlocksModel(),
		results:   NewResultsModel(),
		heatmap:   NewHeatmapModel(),
		status:    NewStatusModel(),
		helpView:  help.New(),
		themeName: ui.GetCurrentTheme().Name,
		ref:       &programRef{},
	}
	m.blocks.SetFocused(true)
	m.blocks.Refresh(ws.Blocks(), ws.Colors())
	return m
}

// Init starts the refresh ticker and the parent context watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), watchContextCmd(m.parentCtx))
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.form != nil {
			return m.updateForm(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.layout.width = msg.Width
		m.layout.height = msg.Height
		m.layoutPanels()
		return m, nil

	case TickMsg:
		if m.paused {
			return m, tickCmd()
		}
		return m, tea.Batch(sampleMemStatsCmd, sampleSysStatsCmd, tickCmd())

	case ProgressMsg:
		if m.paused {
			return m, nil
		}
		m.status.UpdateProgress(msg)
		return m, nil

	case ProgressDoneMsg:
		m.status.FinishProgress()
		return m, nil

	case BatchDoneMsg:
		if msg.Generation != m.generation {
			return m, nil // stale result from a superseded run
		}
		return m.finishRun(msg.Result), nil

	case MemStatsMsg:
		m.status.UpdateMemStats(msg.Stats)
		return m, nil

	case SysStatsMsg:
		m.status.UpdateSysStats(msg.Stats)
		return m, nil

	case ContextCancelledMsg:
		m.cancelRun()
		m.exitCode = apperrors.ExitErrorCanceled
		return m, tea.Quit
	}

	// Everything else (cursor blinks and the like) belongs to an open form.
	if m.form != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

// handleKey processes key presses outside the form overlay.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Quit) || msg.String() == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancelRun()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Run):
		return m.startRun()

	case key.Matches(msg, m.keys.Pause):
		// The ticker keeps running while paused, it just stops sampling,
		// so resuming must not start a second one.
		m.paused = !m.paused
		m.status.SetPaused(m.paused)

	case key.Matches(msg, m.keys.Reset):
		m.cancelRun()
		m.generation++ // any in-flight result is now stale
		m.running = false
		m.results.Reset()
		m.heatmap.Reset()
		m.status.Reset()

	case key.Matches(msg, m.keys.Tab):
		m.toggleFocus()

	case key.Matches(msg, m.keys.Add):
		form, cmd := newAddForm()
		m.form = &form
		return m, cmd

	case key.Matches(msg, m.keys.Edit):
		if b, ok := m.blocks.Selected(); ok {
			form, cmd := newEditForm(b)
			m.form = &form
			return m, cmd
		}

	case key.Matches(msg, m.keys.Delete):
		if b, ok := m.blocks.Selected(); ok {
			if err := m.ws.Remove(b.ID); err == nil {
				m.refreshBlocks()
			}
		}

	case key.Matches(msg, m.keys.MoveUp):
		if b, ok := m.blocks.Selected(); ok {
			if err := m.ws.MoveUp(b.ID); err == nil {
				m.refreshBlocks()
				m.blocks.CursorUp()
			}
		}

	case key.Matches(msg, m.keys.MoveDown):
		if b, ok := m.blocks.Selected(); ok {
			if err := m.ws.MoveDown(b.ID); err == nil {
				m.refreshBlocks()
				m.blocks.CursorDown()
			}
		}

	case key.Matches(msg, m.keys.Clear):
		m.ws.Clear()
		m.refreshBlocks()

	case key.Matches(msg, m.keys.Theme):
		m.cycleTheme()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.Up):
		if m.focus == SectionBlocks {
			m.blocks.CursorUp()
		} else {
			m.results.ScrollUp()
		}

	case key.Matches(msg, m.keys.Down):
		if m.focus == SectionBlocks {
			m.blocks.CursorDown()
		} else {
			m.results.ScrollDown()
		}

	case key.Matches(msg, m.keys.PageUp):
		m.results.PageUp()

	case key.Matches(msg, m.keys.PageDown):
		m.results.PageDown()
	}
	return m, nil
}

// updateForm routes a message to the open form and applies its outcome.
func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	m.form = &form
	if form.cancelled {
		m.form = nil
		return m, nil
	}
	if form.done {
		m.applyForm(form)
		m.form = nil
		return m, nil
	}
	return m, cmd
}

// applyForm commits a submitted form to the workspace.
func (m *Model) applyForm(f FormModel) {
	var err error
	if f.editID == "" {
		_, err = m.ws.Append(f.block)
	} else {
		_, err = m.ws.Replace(f.editID, f.block)
	}
	if err != nil {
		m.status.SetError(err.Error())
		return
	}
	m.refreshBlocks()
}

// startRun launches a batch over the current rule set. A still-running
// batch is cancelled first and its result discarded via the generation
// counter.
func (m Model) startRun() (tea.Model, tea.Cmd) {
	blocks := m.ws.Blocks()
	if len(blocks) == 0 {
		m.status.SetError("at least one rule is required")
		return m, nil
	}

	m.cancelRun()
	m.generation++

	timeout := m.cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(m.parentCtx, timeout)
	m.runCtx = ctx
	m.runCancel = cancel
	m.running = true
	m.paused = false
	m.status.SetPaused(false)
	m.status.StartRun(m.cfg.Span())

	return m, runBatchCmd(ctx, m.cfg.Start, m.cfg.End, blocks, m.ref, m.generation)
}

// finishRun folds a completed batch into the panels.
func (m Model) finishRun(res orchestration.BatchResult) Model {
	m.cancelRun()
	m.running = false
	if res.Err != nil {
		m.status.SetError(res.Err.Error())
		return m
	}
	blocks := m.ws.Blocks()
	colors := m.ws.Colors()
	m.results.SetResults(res.Results, blocks, colors)
	m.heatmap.SetData(res.Results, blocks, colors)
	m.status.SetDone(orchestration.Summarize(res.Results, res.Duration))
	return m
}

// cancelRun releases the current run context, if any.
func (m *Model) cancelRun() {
	if m.runCancel != nil {
		m.runCancel()
		m.runCancel = nil
	}
}

// toggleFocus moves the keyboard focus between the panels.
func (m *Model) toggleFocus() {
	if m.focus == SectionBlocks {
		m.focus = SectionResults
	} else {
		m.focus = SectionBlocks
	}
	m.blocks.SetFocused(m.focus == SectionBlocks)
	m.results.SetFocused(m.focus == SectionResults)
}

// cycleTheme steps to the next theme and rebuilds the styles.
func (m *Model) cycleTheme() {
	next := 0
	for i, name := range themeCycle {
		if name == m.themeName {
			next = (i + 1) % len(themeCycle)
		}
	}
	m.themeName = themeCycle[next]
	ui.SetTheme(m.themeName)
	initTUIStyles()
}

// refreshBlocks reloads the blocks panel from the workspace.
func (m *Model) refreshBlocks() {
	m.blocks.Refresh(m.ws.Blocks(), m.ws.Colors())
}

// layoutPanels propagates the terminal size to every panel.
func (m *Model) layoutPanels() {
	l := m.layout
	m.header.SetWidth(l.width)
	m.blocks.SetSize(l.blocksWidth(), l.bodyHeight())
	m.results.SetSize(l.rightWidth(), l.resultsHeight())
	m.heatmap.SetSize(l.rightWidth(), l.heatmapHeight())
	m.status.SetWidth(l.width)
	m.helpView.Width = l.width
}

// View renders the studio.
func (m Model) View() string {
	if m.layout.width == 0 || m.layout.height == 0 {
		return "Initializing..."
	}
	if m.form != nil {
		return m.form.View(m.layout.width, m.layout.height)
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}

	right := lipgloss.JoinVertical(lipgloss.Left, m.results.View(), m.heatmap.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.blocks.View(), right)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		body,
		m.status.View(),
		m.renderFooter(),
	)
}

// tickCmd schedules the next periodic refresh.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleMemStatsCmd reads the Go runtime stats for the status bar.
func sampleMemStatsCmd() tea.Msg {
	return MemStatsMsg{Stats: runtimeCollector.Snapshot()}
}

// sampleSysStatsCmd reads a system-wide CPU and memory sample.
func sampleSysStatsCmd() tea.Msg {
	return SysStatsMsg{Stats: sysmon.Sample()}
}

// watchContextCmd blocks until the parent context is cancelled.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}

// runBatchCmd executes one batch in a command goroutine. Progress flows
// through the bridge; the final outcome returns as a BatchDoneMsg tagged
// with the launching generation.
func runBatchCmd(ctx context.Context, start, end int, blocks []fizzbuzz.Block, ref *programRef, generation uint64) tea.Cmd {
	return func() tea.Msg {
		res := orchestration.ExecuteBatch(ctx, start, end, blocks, &TUIProgressReporter{ref: ref}, io.Discard)
		return BatchDoneMsg{Generation: generation, Result: res}
	}
}

// Run starts the studio over the given workspace and blocks until it
// exits. The returned value is the process exit code.
func Run(ctx context.Context, ws *workspace.Workspace, cfg config.AppConfig, version string) int {
	// Rebuild styles after InitTheme has run, and prime the CPU
	// baseline so the first sparkline sample is meaningful.
	initTUIStyles()
	sysmon.Warm()

	m := NewModel(ctx, ws, cfg, version)

	p := tea.NewProgram(m, tea.WithAltScreen())
	// The bridge needs the program reference before any batch starts.
	m.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}
	if fm, ok := finalModel.(Model); ok {
		return fm.exitCode
	}
	return apperrors.ExitSuccess
}

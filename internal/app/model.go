// Package app implements the bubbletea model for the annotation TUI.
package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jwulff/audiolabel/internal/annotation"
	"github.com/jwulff/audiolabel/internal/audio"
	"github.com/jwulff/audiolabel/internal/category"
	"github.com/jwulff/audiolabel/internal/db"
	"github.com/jwulff/audiolabel/internal/log"
	"github.com/jwulff/audiolabel/internal/playback"
	"github.com/jwulff/audiolabel/internal/selection"
	"github.com/jwulff/audiolabel/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// Focus tracks which panel has keyboard focus.
type Focus int

const (
	FocusFiles Focus = iota
	FocusWaveform
	FocusEditor
)

const (
	defaultStepSeconds = 0.1
	minStepSeconds     = 0.001
	maxStepSeconds     = 60.0
	waveformRows       = 8
)

var errUnparsed = errors.New("annotation text has errors")

// fileItem implements list.Item for one audio file.
type fileItem struct {
	path  string
	saved bool
}

func (i fileItem) Title() string {
	name := filepath.Base(i.path)
	if i.saved {
		return ui.SavedMarkStyle.Render("✓") + " " + name
	}
	return "  " + name
}

func (i fileItem) Description() string { return filepath.Dir(i.path) }

func (i fileItem) FilterValue() string { return filepath.Base(i.path) }

// Options wires the model to its collaborators.
type Options struct {
	Files          []string
	Categories     *category.Set
	Decoder        audio.Decoder
	Player         *playback.Controller
	Logger         *log.Logger // optional
	History        *db.Store   // optional
	AnnotationsDir string
	StepSeconds    float64
	Resume         bool
	SessionID      string
}

// Model is the root bubbletea model for the annotation TUI.
type Model struct {
	// Collaborators
	categories     *category.Set
	decoder        audio.Decoder
	player         *playback.Controller
	logger         *log.Logger
	history        *db.Store
	annotationsDir string
	resume         bool
	sessionID      string

	// Current file. Decode results for any other path are dropped.
	current  string
	loading  bool
	buf      *audio.Buffer
	sel      selection.State
	session  *annotation.Session
	catIndex int
	step     float64

	// Widgets
	files      list.Model
	editor     textarea.Model
	editorText string // text last rendered from the session
	help       help.Model
	keys       keyMap

	// UI state
	focus      Focus
	width      int
	height     int
	statusText string
	tickID     int

	// Errors
	errorMessage   string
	errorTransient bool
	notice         string // blocks input until dismissed
	parseErrs      []*annotation.LineError
}

// New creates a Model over the given files. A single file is opened
// immediately by Init.
func New(opts Options) Model {
	items := make([]list.Item, len(opts.Files))
	for i, p := range opts.Files {
		items[i] = fileItem{path: p}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(ui.ColorCyan).
		BorderForeground(ui.ColorCyan)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(ui.ColorGray).
		BorderForeground(ui.ColorCyan)

	files := list.New(items, delegate, 30, 20)
	files.Title = "FILES"
	files.SetShowStatusBar(false)
	files.SetShowHelp(false)
	files.DisableQuitKeybindings()

	ta := textarea.New()
	ta.Placeholder = "start-end, category"
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetHeight(6)

	step := opts.StepSeconds
	if step <= 0 {
		step = defaultStepSeconds
	}
	sessionID := opts.SessionID
	if sessionID == "" {
		sessionID = db.NewSessionID()
	}

	m := Model{
		categories:     opts.Categories,
		decoder:        opts.Decoder,
		player:         opts.Player,
		logger:         opts.Logger,
		history:        opts.History,
		annotationsDir: opts.AnnotationsDir,
		resume:         opts.Resume,
		sessionID:      sessionID,
		step:           step,
		files:          files,
		editor:         ta,
		help:           help.New(),
		keys:           defaultKeyMap,
		focus:          FocusFiles,
		statusText:     "Select a file and press Enter",
	}

	if len(opts.Files) == 1 {
		m.current = opts.Files[0]
		m.loading = true
		m.session = annotation.NewSession(m.current)
		m.focus = FocusWaveform
		m.statusText = "Decoding " + filepath.Base(m.current)
	}
	return m
}

// Init decodes the initial file, if there is one.
func (m Model) Init() tea.Cmd {
	if m.current == "" {
		return nil
	}
	return decodeCmd(m.decoder, m.current, m.resume, m.annotationsDir)
}

// decodeCmd decodes path off the UI loop. When resume is set it also reads
// the label set previously saved for path.
func decodeCmd(dec audio.Decoder, path string, resume bool, dir string) tea.Cmd {
	return func() tea.Msg {
		began := time.Now()
		buf, err := dec.Decode(context.Background(), path)
		msg := AudioLoadedMsg{Path: path, Buffer: buf, Err: err, Elapsed: time.Since(began)}
		if err != nil || !resume {
			return msg
		}
		records, err := annotation.LoadExisting(annotation.OutputPath(dir, path))
		switch {
		case err == nil:
			msg.Existing = records
		case !errors.Is(err, os.ErrNotExist):
			msg.ResumeErr = err
		}
		return msg
	}
}

// recordSaveCmd writes a save to the history store.
func recordSaveCmd(store *db.Store, entry db.SaveEntry) tea.Cmd {
	return func() tea.Msg {
		saved, err := store.RecordSave(entry)
		return HistoryRecordedMsg{Entry: saved, Err: err}
	}
}

// playbackTickCmd refreshes the transport indicator while audio plays.
func playbackTickCmd(id int) tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(time.Time) tea.Msg {
		return PlaybackTickMsg{ID: id}
	})
}

// clearTransientErrorCmd fires after a delay to clear transient errors.
func clearTransientErrorCmd() tea.Cmd {
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg {
		return ClearTransientErrorMsg{}
	})
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case AudioLoadedMsg:
		cmd := m.handleAudioLoaded(msg)
		return m, cmd

	case HistoryRecordedMsg:
		if msg.Err != nil {
			m.logEvent(log.Event{
				Event: log.EventUnhandledError,
				File:  msg.Entry.AudioPath,
				Error: msg.Err.Error(),
			})
		}
		return m, nil

	case PlaybackTickMsg:
		if msg.ID == m.tickID && m.player.State() != playback.Stopped {
			return m, playbackTickCmd(m.tickID)
		}
		return m, nil

	case ClearTransientErrorMsg:
		if m.errorTransient {
			m.errorMessage = ""
			m.errorTransient = false
		}
		return m, nil
	}

	// Widget internals: cursor blink, list filtering.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.files, cmd = m.files.Update(msg)
	cmds = append(cmds, cmd)
	m.editor, cmd = m.editor.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) handleAudioLoaded(msg AudioLoadedMsg) tea.Cmd {
	if msg.Path != m.current {
		return nil
	}
	m.loading = false
	name := filepath.Base(msg.Path)

	if msg.Err != nil {
		m.buf = nil
		m.logEvent(log.Event{Event: log.EventDecodeFailed, File: msg.Path, Error: msg.Err.Error()})
		m.statusText = "Could not decode " + name
		return m.showError(msg.Err.Error())
	}

	typed := m.editor.Value()
	edited := typed != m.editorText

	m.buf = msg.Buffer
	m.sel = selection.New(m.buf.Len())
	if len(msg.Existing) > 0 {
		m.session.Adopt(msg.Existing)
	}
	m.syncEditor()

	// Text typed while decoding is kept as a pending edit against the new
	// buffer, after any resumed labels.
	if edited {
		text := typed
		if m.editorText != "" {
			text = m.editorText + "\n" + typed
		}
		m.editor.SetValue(text)
	}

	m.logEvent(log.Event{
		Event:      log.EventFileLoaded,
		File:       msg.Path,
		Records:    m.session.Len(),
		SampleRate: m.buf.SampleRate(),
		DurationMs: m.buf.Duration().Milliseconds(),
		DecodeMs:   msg.Elapsed.Milliseconds(),
	})
	m.statusText = fmt.Sprintf("Loaded %s (%.2fs @ %d Hz)", name, m.buf.Seconds(), m.buf.SampleRate())
	if len(msg.Existing) > 0 {
		m.statusText += fmt.Sprintf(", resumed %d label(s)", len(msg.Existing))
	}

	if msg.ResumeErr != nil {
		return m.showError(msg.ResumeErr.Error())
	}
	return nil
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m.quit()
	}

	// A blocking notification swallows everything until dismissed.
	if m.notice != "" {
		if key.Matches(msg, m.keys.Dismiss) {
			m.notice = ""
		}
		return m, nil
	}

	if m.focus == FocusEditor {
		return m.handleEditorKey(msg)
	}

	if m.focus == FocusFiles {
		switch m.files.FilterState() {
		case list.Filtering:
			var cmd tea.Cmd
			m.files, cmd = m.files.Update(msg)
			return m, cmd
		case list.FilterApplied:
			if key.Matches(msg, m.keys.Dismiss) {
				var cmd tea.Cmd
				m.files, cmd = m.files.Update(msg)
				return m, cmd
			}
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Focus):
		return m.cycleFocus()

	case key.Matches(msg, m.keys.Dismiss):
		m.errorMessage = ""
		m.errorTransient = false
		m.parseErrs = nil
		return m, nil

	case key.Matches(msg, m.keys.Save):
		return m.save()

	case key.Matches(msg, m.keys.PlayAll):
		return m.togglePlayback()

	case key.Matches(msg, m.keys.PlaySel):
		return m.playSelection()
	}

	if m.focus == FocusFiles {
		if key.Matches(msg, m.keys.Open) {
			return m.openSelected()
		}
		var cmd tea.Cmd
		m.files, cmd = m.files.Update(msg)
		return m, cmd
	}

	return m.handleWaveformKey(msg)
}

func (m Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Focus):
		return m.cycleFocus()
	case key.Matches(msg, m.keys.Dismiss):
		cmd := m.leaveEditor()
		m.focus = FocusWaveform
		return m, cmd
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m Model) handleWaveformKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	step := m.stepSamples()

	switch {
	case key.Matches(msg, m.keys.StartDown):
		m.sel.MoveStart(-step)
	case key.Matches(msg, m.keys.StartUp):
		m.sel.MoveStart(step)
	case key.Matches(msg, m.keys.EndDown):
		m.sel.MoveEnd(-step)
	case key.Matches(msg, m.keys.EndUp):
		m.sel.MoveEnd(step)
	case key.Matches(msg, m.keys.StepDown):
		m.step = math.Max(minStepSeconds, m.step/2)
	case key.Matches(msg, m.keys.StepUp):
		m.step = math.Min(maxStepSeconds, m.step*2)
	case key.Matches(msg, m.keys.CatNext):
		m.cycleCategory(1)
	case key.Matches(msg, m.keys.CatPrev):
		m.cycleCategory(-1)
	case key.Matches(msg, m.keys.Add):
		return m.addAnnotation()
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.player.Stop()
	return m, tea.Quit
}

func (m Model) cycleFocus() (tea.Model, tea.Cmd) {
	switch m.focus {
	case FocusFiles:
		m.focus = FocusWaveform
		return m, nil
	case FocusWaveform:
		m.focus = FocusEditor
		return m, m.editor.Focus()
	default:
		cmd := m.leaveEditor()
		m.focus = FocusFiles
		return m, cmd
	}
}

// leaveEditor blurs the text box and applies any edits to the session.
func (m *Model) leaveEditor() tea.Cmd {
	m.editor.Blur()
	if err := m.applyEditor(); err != nil {
		return m.showError(err.Error())
	}
	return nil
}

// applyEditor replaces the session's records with the edited text when it
// differs from what was last rendered. Parse failures leave the session
// unchanged and are kept for display.
func (m *Model) applyEditor() error {
	text := m.editor.Value()
	if text == m.editorText {
		m.parseErrs = nil
		return nil
	}
	if m.session == nil {
		return annotation.ErrEmptySelection
	}

	lineErrs, err := m.session.ReplaceFromText(text, m.buf, m.categories)
	if err != nil {
		return err
	}
	if len(lineErrs) > 0 {
		m.parseErrs = lineErrs
		for _, le := range lineErrs {
			m.logEvent(log.Event{Event: log.EventParseFailed, File: m.current, Error: le.Error()})
		}
		return fmt.Errorf("%w: %d line(s)", errUnparsed, len(lineErrs))
	}

	m.parseErrs = nil
	m.syncEditor()
	return nil
}

// syncEditor renders the session's records into the text box.
func (m *Model) syncEditor() {
	var text string
	if m.session != nil {
		text = m.session.Text(m.buf)
	}
	m.editor.SetValue(text)
	m.editorText = text
}

func (m Model) openSelected() (tea.Model, tea.Cmd) {
	item, ok := m.files.SelectedItem().(fileItem)
	if !ok {
		return m, nil
	}

	m.player.Stop()
	m.current = item.path
	m.loading = true
	m.buf = nil
	m.session = annotation.NewSession(item.path)
	m.parseErrs = nil
	m.syncEditor()
	m.focus = FocusWaveform
	m.statusText = "Decoding " + filepath.Base(item.path)
	return m, decodeCmd(m.decoder, item.path, m.resume, m.annotationsDir)
}

func (m Model) addAnnotation() (tea.Model, tea.Cmd) {
	if err := m.applyEditor(); err != nil {
		return m, m.showError(err.Error())
	}
	if m.session == nil {
		return m, m.showError(annotation.ErrEmptySelection.Error())
	}

	rec, err := m.session.Commit(m.sel, m.categoryName(), m.buf)
	if err != nil {
		return m, m.showError(err.Error())
	}
	m.syncEditor()

	m.logEvent(log.Event{
		Event:    log.EventAnnotationCommitted,
		File:     m.current,
		Category: rec.Category,
		Start:    log.Float(rec.Start),
		End:      log.Float(rec.End),
	})
	d := m.buf.Seconds()
	m.statusText = "Added " + annotation.FormatLine(rec.Start*d, rec.End*d, rec.Category)
	return m, nil
}

func (m Model) save() (tea.Model, tea.Cmd) {
	if m.session == nil || m.buf == nil {
		return m, m.showError(annotation.ErrEmptySelection.Error())
	}
	if err := m.applyEditor(); err != nil {
		if errors.Is(err, errUnparsed) {
			m.statusText = "Fix the listed lines before saving"
		}
		return m, m.showError(err.Error())
	}

	out, err := m.session.Save(m.annotationsDir)
	if err != nil {
		m.notice = err.Error()
		m.logEvent(log.Event{Event: log.EventSaveFailed, File: m.current, Error: err.Error()})
		return m, nil
	}

	n := m.session.Len()
	m.logEvent(log.Event{Event: log.EventAnnotationsSaved, File: m.current, Output: out, Records: n})
	m.statusText = fmt.Sprintf("Saved %d annotation(s) to %s", n, out)

	cmds := []tea.Cmd{m.markSaved(m.current)}
	if m.history != nil {
		cmds = append(cmds, recordSaveCmd(m.history, db.SaveEntry{
			SessionID:  m.sessionID,
			AudioPath:  m.current,
			OutputPath: out,
			Records:    n,
		}))
	}
	return m, tea.Batch(cmds...)
}

// markSaved flags path in the file list.
func (m *Model) markSaved(path string) tea.Cmd {
	for i, it := range m.files.Items() {
		if fi, ok := it.(fileItem); ok && fi.path == path {
			fi.saved = true
			return m.files.SetItem(i, fi)
		}
	}
	return nil
}

func (m Model) togglePlayback() (tea.Model, tea.Cmd) {
	if m.buf == nil {
		return m, nil
	}
	if m.player.State() == playback.Stopped {
		if err := m.player.PlayAll(m.buf); err != nil {
			return m, m.showError(err.Error())
		}
	} else {
		m.player.Toggle()
	}
	m.tickID++
	return m, playbackTickCmd(m.tickID)
}

func (m Model) playSelection() (tea.Model, tea.Cmd) {
	if m.buf == nil {
		return m, nil
	}
	start, end := m.sel.Bounds()
	if err := m.player.PlayRange(m.buf, start, end); err != nil {
		return m, m.showError(err.Error())
	}
	m.tickID++
	return m, playbackTickCmd(m.tickID)
}

func (m *Model) cycleCategory(delta int) {
	if m.categories == nil || m.categories.Len() == 0 {
		return
	}
	n := m.categories.Len()
	m.catIndex = ((m.catIndex+delta)%n + n) % n
}

func (m Model) categoryName() string {
	if m.categories == nil || m.categories.Len() == 0 {
		return ""
	}
	return m.categories.At(m.catIndex)
}

// stepSamples converts the step size to samples of the current buffer.
func (m Model) stepSamples() int {
	if m.buf == nil {
		return 0
	}
	return max(1, int(math.Round(m.step*float64(m.buf.SampleRate()))))
}

func (m *Model) showError(text string) tea.Cmd {
	m.errorMessage = text
	m.errorTransient = true
	return clearTransientErrorCmd()
}

func (m Model) logEvent(e log.Event) {
	if m.logger == nil {
		return
	}
	e.SessionID = m.sessionID
	_ = m.logger.Append(e)
}

func (m *Model) resize() {
	contentH := m.contentHeight()
	m.files.SetSize(m.filesPanelWidth(), contentH)
	m.editor.SetWidth(max(10, m.rightPanelWidth()-2))
	m.editor.SetHeight(max(3, contentH-waveformRows-8))
	m.help.Width = m.width
}

func (m Model) contentHeight() int {
	if m.height == 0 {
		return 20
	}
	// Reserve: header(1) + status(1) + divider(1) + divider(1) + error(1) + footer(1) + padding
	return max(10, m.height-7)
}

func (m Model) filesPanelWidth() int {
	if m.width == 0 {
		return 30
	}
	return max(20, m.width*30/100)
}

func (m Model) rightPanelWidth() int {
	if m.width == 0 {
		return 60
	}
	return max(30, m.width-m.filesPanelWidth()-3)
}

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var sections []string

	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderStatusBar())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))
	sections = append(sections, m.renderMainContent())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))

	switch {
	case m.notice != "":
		sections = append(sections, m.renderNotice())
	case m.errorMessage != "":
		sections = append(sections, m.renderErrorBar())
	}

	sections = append(sections, m.help.View(focusHelp{keys: m.keys, focus: m.focus}))

	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	title := ui.TitleStyle.Render("AUDIOLABEL")
	if m.current == "" {
		return title
	}
	info := ui.DimStyle.Render(" · " + filepath.Base(m.current))
	if m.session != nil && m.session.Dirty() {
		info += ui.DimStyle.Render(" (modified)")
	}
	return title + info
}

func (m Model) renderStatusBar() string {
	var transport string
	switch m.player.State() {
	case playback.Playing:
		transport = ui.PlayingStyle.Render("▶ PLAYING")
	case playback.Paused:
		transport = ui.PausedStyle.Render("❚❚ PAUSED")
	default:
		transport = ui.StoppedStyle.Render("■ STOPPED")
	}

	cat := ui.DimStyle.Render("none")
	if name := m.categoryName(); name != "" {
		cat = ui.CategoryStyle.Render(name) +
			ui.DimStyle.Render(fmt.Sprintf(" (%d/%d)", m.catIndex+1, m.categories.Len()))
	}

	return transport +
		"  " + ui.DimStyle.Render("category ") + cat +
		"  " + ui.DimStyle.Render(fmt.Sprintf("step %gs", m.step)) +
		"  " + ui.DimStyle.Render(m.statusText)
}

func (m Model) renderMainContent() string {
	filesW := m.filesPanelWidth()
	contentH := m.contentHeight()

	fileLines := strings.Split(m.renderFilesPanel(), "\n")
	rightLines := strings.Split(m.renderLabelPanel(m.rightPanelWidth(), contentH), "\n")

	divider := ui.DividerStyle.Render("│")

	var rows []string
	for i := 0; i < contentH; i++ {
		fl := ""
		if i < len(fileLines) {
			fl = fileLines[i]
		}
		rl := ""
		if i < len(rightLines) {
			rl = rightLines[i]
		}
		rows = append(rows, padRight(fl, filesW)+divider+" "+rl)
	}

	return strings.Join(rows, "\n")
}

func (m Model) renderFilesPanel() string {
	files := m.files
	if m.focus == FocusFiles {
		files.Styles.Title = files.Styles.Title.Background(ui.ColorCyan)
	} else {
		files.Styles.Title = files.Styles.Title.Background(ui.ColorDimGray)
	}
	if len(files.Items()) == 0 {
		return ui.PanelTitleStyle.Render("FILES") + "\n" +
			ui.DimStyle.Render("  No audio files.") + "\n" +
			ui.DimStyle.Render("  Pass files or folders on the command line")
	}
	return files.View()
}

func (m Model) renderLabelPanel(width, height int) string {
	var lines []string

	title := "WAVEFORM"
	if m.focus == FocusWaveform {
		lines = append(lines, ui.PanelTitleActiveStyle.Render(title))
	} else {
		lines = append(lines, ui.PanelTitleStyle.Render(title))
	}

	switch {
	case m.buf != nil:
		lines = append(lines, m.renderWaveform(width)...)
		lines = append(lines, m.renderSelectionInfo(width))
	case m.loading:
		lines = append(lines, ui.DimStyle.Render("  Decoding..."))
	case m.current != "":
		lines = append(lines, ui.ErrorTextStyle.Render("  No audio: the file could not be decoded"))
	default:
		lines = append(lines, ui.DimStyle.Render("  Select a file and press Enter"))
	}
	lines = append(lines, "")

	header := fmt.Sprintf("ANNOTATIONS (%d)", m.recordCount())
	if m.focus == FocusEditor {
		lines = append(lines, ui.PanelTitleActiveStyle.Render(header))
	} else {
		lines = append(lines, ui.PanelTitleStyle.Render(header))
	}
	lines = append(lines, strings.Split(m.editor.View(), "\n")...)

	for _, le := range m.parseErrs {
		lines = append(lines, truncateToWidth(ui.ErrorTextStyle.Render("  "+le.Error()), width))
	}

	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderWaveform(width int) []string {
	cols := max(1, width-2)
	peaks := m.buf.Peaks(cols)
	start, end := m.sel.Bounds()
	lo := m.buf.BucketOf(start, len(peaks))
	hi := m.buf.BucketOf(end, len(peaks))
	return strings.Split(ui.RenderWaveform(peaks, lo, hi, waveformRows), "\n")
}

func (m Model) renderSelectionInfo(width int) string {
	start, end := m.sel.Bounds()
	s := m.buf.IndexSeconds(start)
	e := m.buf.IndexSeconds(end)
	info := fmt.Sprintf("start %d (%.3fs)  end %d (%.3fs)  length %.3fs",
		start, s, end, e, e-s)
	return truncateToWidth(info, width)
}

func (m Model) recordCount() int {
	if m.session == nil {
		return 0
	}
	return m.session.Len()
}

func (m Model) renderErrorBar() string {
	return ui.ErrorStyle.Render("Error: ") + ui.ErrorTextStyle.Render(m.errorMessage)
}

func (m Model) renderNotice() string {
	width := max(20, m.width-4)
	body := strings.Join(wrapText(m.notice, width), "\n")
	return ui.NoticeStyle.Render(
		ui.ErrorStyle.Render("Save failed") + "\n" +
			ui.ErrorTextStyle.Render(body) + "\n" +
			ui.DimStyle.Render("press esc to dismiss"))
}

// Helpers

func padRight(s string, width int) string {
	// Get visible length (ignoring ANSI codes)
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func truncateToWidth(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible <= width {
		return s
	}
	// Simple truncation for non-styled strings
	runes := []rune(s)
	if len(runes) > width-1 {
		return string(runes[:width-1]) + "…"
	}
	return s
}

func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		var current string
		for _, word := range strings.Fields(paragraph) {
			if current == "" {
				current = word
			} else if len(current)+1+len(word) <= width {
				current += " " + word
			} else {
				lines = append(lines, current)
				current = word
			}
		}
		if current != "" {
			lines = append(lines, current)
		} else {
			lines = append(lines, "")
		}
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

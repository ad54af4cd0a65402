// Package ui implements the interactive drag-reorder preview.
//
// The preview draws the grid in the terminal and lets the user pick up an
// item, move it across slots and drop it. While an item is held, the engine
// lays out the remaining items with the target slot skipped, so the gap shows
// where the item will land.
package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"go.opentelemetry.io/otel/trace"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/skipgrid/api/v1beta1/layouts"
	"github.com/macropower/skipgrid/pkg/geom"
	"github.com/macropower/skipgrid/pkg/grid"
	"github.com/macropower/skipgrid/pkg/log"
	"github.com/macropower/skipgrid/pkg/render"
	"github.com/macropower/skipgrid/pkg/report"
	"github.com/macropower/skipgrid/pkg/ui/statusbar"
	"github.com/macropower/skipgrid/pkg/ui/theme"
)

var ErrNoReloader = errors.New("no layout file to reload")

type (
	// LayoutMsg delivers a reloaded layout, or the error that prevented
	// loading it.
	LayoutMsg struct {
		Layout *layouts.Layout
		Err    error
	}

	copiedMsg struct {
		err error
	}
)

// ReloadFunc loads the layout again from its source.
type ReloadFunc func(ctx context.Context) (*layouts.Layout, error)

// drag is an item being moved.
type drag struct {
	from   int
	target int
}

// Model is the preview's bubbletea model.
type Model struct {
	ctx       context.Context //nolint:containedctx // Passed to layout passes.
	err       error
	theme     *theme.Theme
	layout    *layouts.Layout
	engine    *grid.Engine
	host      *host
	drag      *drag
	reload    ReloadFunc
	clipboard func(string) error
	tp        trace.TracerProvider
	path      string
	message   string
	labels    []string
	skip      grid.SkipSet
	keys      KeyMap
	help      help.Model
	policy    grid.SkipPolicy
	cursor    int
	width     int
	height    int
}

// ModelOpt configures a [Model].
type ModelOpt func(*Model)

// WithPath sets the layout file path shown in the status bar.
func WithPath(path string) ModelOpt {
	return func(m *Model) {
		m.path = path
	}
}

// WithReloader sets the function used by the reload key.
func WithReloader(fn ReloadFunc) ModelOpt {
	return func(m *Model) {
		m.reload = fn
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(fn func(string) error) ModelOpt {
	return func(m *Model) {
		m.clipboard = fn
	}
}

// WithTheme overrides the theme selected by the layout.
func WithTheme(t *theme.Theme) ModelOpt {
	return func(m *Model) {
		m.theme = t
	}
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap(k KeyMap) ModelOpt {
	return func(m *Model) {
		m.keys = k
	}
}

// WithTracerProvider sets the provider for the engine's recompute spans.
func WithTracerProvider(tp trace.TracerProvider) ModelOpt {
	return func(m *Model) {
		m.tp = tp
	}
}

// NewModel creates a preview of l.
func NewModel(ctx context.Context, l *layouts.Layout, opts ...ModelOpt) (*Model, error) {
	m := &Model{
		ctx:       ctx,
		clipboard: clipboard.WriteAll,
		keys:      DefaultKeyMap(),
		help:      help.New(),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.theme == nil {
		m.theme = theme.New(l.UI.Theme)
	}

	m.host = &host{}

	var engineOpts []grid.EngineOpt
	if m.tp != nil {
		engineOpts = append(engineOpts, grid.WithTracerProvider(m.tp))
	}

	engine, err := l.NewEngine(ctx, m.host, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}

	m.engine = engine

	if err := m.setLayout(l); err != nil {
		return nil, err
	}

	return m, nil
}

// NewProgram creates a full-screen program running m.
func NewProgram(m *Model, opts ...tea.ProgramOption) *tea.Program {
	slog.Debug("starting skipgrid ui")

	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)

	return tea.NewProgram(m, opts...)
}

// Init implements [tea.Model].
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements [tea.Model].
//
//nolint:ireturn // Must satisfy [tea.Model].
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case LayoutMsg:
		m.clearStatus()

		if msg.Err != nil {
			m.err = msg.Err
			break
		}

		if err := m.setLayout(msg.Layout); err != nil {
			m.err = err
			break
		}

		m.message = "reloaded layout"

	case copiedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("copy snapshot: %w", msg.err)
		} else {
			m.message = "copied snapshot to clipboard"
		}

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.clearStatus()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Cancel):
		m.cancelDrag()

	case key.Matches(msg, m.keys.Pick):
		if m.drag != nil {
			m.drop()
		} else {
			m.pick()
		}

	case key.Matches(msg, m.keys.Left):
		m.move(-1)

	case key.Matches(msg, m.keys.Right):
		m.move(1)

	case key.Matches(msg, m.keys.Up):
		m.moveRow(-1)

	case key.Matches(msg, m.keys.Down):
		m.moveRow(1)

	case key.Matches(msg, m.keys.Add):
		m.addItem()

	case key.Matches(msg, m.keys.Remove):
		m.removeItem()

	case key.Matches(msg, m.keys.Wider):
		m.resize(m.layout.UI.CellWidth)

	case key.Matches(msg, m.keys.Narrower):
		m.resize(-m.layout.UI.CellWidth)

	case key.Matches(msg, m.keys.Policy):
		m.togglePolicy()

	case key.Matches(msg, m.keys.Copy):
		return m.copySnapshot()

	case key.Matches(msg, m.keys.Reload):
		return m.reloadLayout()
	}

	return nil
}

// Snapshot returns the layout currently shown.
func (m *Model) Snapshot() *grid.Snapshot {
	return m.engine.Snapshot()
}

// Labels returns the item labels in their current order.
func (m *Model) Labels() []string {
	return slices.Clone(m.labels)
}

// Cursor returns the index of the selected item.
func (m *Model) Cursor() int {
	return m.cursor
}

// Dragging reports whether an item is held, and its target slot.
func (m *Model) Dragging() (target int, ok bool) {
	if m.drag == nil {
		return 0, false
	}

	return m.drag.target, true
}

// Err returns the error shown in the status bar, if any.
func (m *Model) Err() error {
	return m.err
}

func (m *Model) clearStatus() {
	m.err = nil
	m.message = ""
}

// setLayout replaces the layout and resets every edit made in the preview.
func (m *Model) setLayout(l *layouts.Layout) error {
	if l == nil {
		return errors.New("layout is nil")
	}

	skip, err := l.SkipSet(m.ctx)
	if err != nil {
		return fmt.Errorf("resolve skip set: %w", err)
	}

	m.drag = nil
	m.layout = l
	m.skip = skip
	m.policy = l.Skip.Policy

	m.labels = make([]string, l.Items.Count)
	for i := range m.labels {
		m.labels[i] = l.Label(i)
	}

	m.host.count = l.Items.Count
	m.host.setWidth(l.Container.Width)
	m.engine.SetDefaults(l.Configuration())
	m.engine.SetSkipSet(m.skip)
	m.engine.SetSkipPolicy(m.policy)
	m.cursor = min(m.cursor, max(0, l.Items.Count-1))

	return m.layoutPass()
}

// layoutPass runs the engine's layout pass. On failure the previous snapshot
// stays on screen.
func (m *Model) layoutPass() error {
	if err := m.engine.Prepare(m.ctx); err != nil {
		m.err = err
		log.WithContext(m.ctx).Debug("layout pass failed", slog.Any("err", err))

		return err
	}

	return nil
}

func (m *Model) pick() {
	if _, ok := m.engine.AttributesForItem(m.cursor); !ok {
		return
	}

	m.drag = &drag{from: m.cursor, target: m.cursor}
	m.host.count = len(m.labels) - 1
	m.engine.SetSkipSet(grid.NewSkipSet(m.drag.target))
	m.engine.SetSkipPolicy(grid.SkipDisplace)
	_ = m.layoutPass()

	log.WithContext(m.ctx).Debug("picked item",
		slog.Int("index", m.drag.from),
		slog.String("label", m.labels[m.drag.from]),
	)
}

func (m *Model) drop() {
	d := m.drag
	label := m.labels[d.from]

	m.labels = slices.Delete(m.labels, d.from, d.from+1)
	m.labels = slices.Insert(m.labels, d.target, label)
	m.cursor = d.target
	m.endDrag()

	m.message = fmt.Sprintf("moved %s from %d to %d", label, d.from, d.target)
	log.WithContext(m.ctx).Debug("dropped item",
		slog.String("label", label),
		slog.Int("from", d.from),
		slog.Int("to", d.target),
	)
}

func (m *Model) cancelDrag() {
	if m.drag == nil {
		return
	}

	m.cursor = m.drag.from
	m.endDrag()
}

func (m *Model) endDrag() {
	m.drag = nil
	m.host.count = len(m.labels)
	m.engine.SetSkipSet(m.skip)
	m.engine.SetSkipPolicy(m.policy)
	_ = m.layoutPass()
}

// move steps the cursor, or the drag target, by delta slots.
func (m *Model) move(delta int) {
	if m.drag != nil {
		m.retarget(m.drag.target + delta)
		return
	}

	for i := m.cursor + delta; i >= 0 && i < len(m.labels); i += delta {
		if _, ok := m.engine.AttributesForItem(i); ok {
			m.cursor = i
			return
		}
	}
}

// moveRow moves the cursor, or the drag target, by rows.
func (m *Model) moveRow(rows int) {
	snap := m.engine.Snapshot()

	if m.drag != nil {
		m.retarget(m.drag.target + rows*max(1, snap.Capacity))
		return
	}

	cur, ok := snap.Item(m.cursor)
	if !ok {
		return
	}

	stride := cur.Frame.Height + m.layout.Spacing.Line
	center := cur.Frame.Center()

	if a, ok := snap.ItemAt(geom.Point{X: center.X, Y: center.Y + float64(rows)*stride}); ok {
		m.cursor = a.Index
	}
}

func (m *Model) retarget(slot int) {
	slot = max(0, min(slot, len(m.labels)-1))
	if slot == m.drag.target {
		return
	}

	m.drag.target = slot
	m.engine.SetSkipSet(grid.NewSkipSet(slot))
	_ = m.layoutPass()
}

func (m *Model) addItem() {
	if m.drag != nil {
		return
	}

	m.labels = append(m.labels, strconv.Itoa(len(m.labels)))
	m.host.count = len(m.labels)
	_ = m.layoutPass()
}

func (m *Model) removeItem() {
	if m.drag != nil || len(m.labels) == 0 {
		return
	}

	m.labels = m.labels[:len(m.labels)-1]
	m.host.count = len(m.labels)
	m.cursor = max(0, min(m.cursor, len(m.labels)-1))
	_ = m.layoutPass()
}

// resize changes the container width. Each bounds change invalidates the
// layout.
func (m *Model) resize(delta float64) {
	width := max(m.layout.UI.CellWidth, m.host.width+delta)
	bounds := geom.NewRect(0, 0, width, m.engine.ContentSize().Height)

	if m.engine.ShouldInvalidateForBoundsChange(bounds) {
		m.host.setWidth(width)
		_ = m.layoutPass()
	}
}

func (m *Model) togglePolicy() {
	if m.policy == grid.SkipDisplace {
		m.policy = grid.SkipOmit
	} else {
		m.policy = grid.SkipDisplace
	}

	if m.drag == nil {
		m.engine.SetSkipPolicy(m.policy)
		_ = m.layoutPass()
	}

	m.message = "skip policy: " + string(m.policy)
}

func (m *Model) copySnapshot() tea.Cmd {
	doc := report.NewDocument(m.engine.Snapshot(), m.skip).WithLabels(m.labels)

	data, err := doc.Marshal(report.FormatYAML)
	if err != nil {
		m.err = err
		return nil
	}

	write := m.clipboard

	return func() tea.Msg {
		return copiedMsg{err: write(string(data))}
	}
}

func (m *Model) reloadLayout() tea.Cmd {
	if m.reload == nil {
		m.err = ErrNoReloader
		return nil
	}

	ctx, reload := m.ctx, m.reload

	return func() tea.Msg {
		l, err := reload(ctx)
		return LayoutMsg{Layout: l, Err: err}
	}
}

// View implements [tea.Model].
func (m *Model) View() string {
	snap := m.engine.Snapshot()

	opts := []render.RendererOpt{
		render.WithTheme(m.theme),
		render.WithCellSize(m.layout.UI.CellWidth, m.layout.UI.CellHeight),
	}

	focus, hasFocus := snap.Item(m.cursor)

	if m.drag != nil {
		overlay := render.Overlay{
			Label: m.labels[m.drag.from],
			Frame: m.slotFrame(snap, m.drag.target),
		}
		opts = append(opts,
			render.WithLabels(slices.Delete(slices.Clone(m.labels), m.drag.from, m.drag.from+1)),
			render.WithOverlay(overlay),
		)
		focus, hasFocus = grid.Attributes{Frame: overlay.Frame}, true
	} else {
		opts = append(opts, render.WithLabels(m.labels), render.WithSelected(m.cursor))
	}

	r := render.NewRenderer(opts...)
	helpView := m.help.View(m.keys)
	bar := m.statusBar(snap)

	body := r.Render(snap)
	if m.height > 0 {
		rows := max(1, m.height-lipgloss.Height(bar)-lipgloss.Height(helpView))

		var focusBottom int
		if hasFocus {
			_, y, _, h := r.Scale(focus.Frame)
			focusBottom = y + h
		}

		body = crop(body, rows, focusBottom)
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, bar, helpView)
}

func (m *Model) statusBar(snap *grid.Snapshot) string {
	var opts []statusbar.RendererOpt

	switch {
	case m.err != nil:
		opts = append(opts, statusbar.WithError(m.err.Error()))
	case m.message != "":
		opts = append(opts, statusbar.WithMessage(m.message))
	}

	name := "layout"
	if m.path != "" {
		name = filepath.Base(m.path)
	}

	note := fmt.Sprintf("%s · %s placed · %d columns · %s · %s",
		name,
		humanize.Comma(int64(len(snap.Items))),
		snap.Capacity,
		m.policy,
		snap.ContentSize,
	)

	var position string

	switch {
	case m.drag != nil:
		position = fmt.Sprintf("slot %s/%s", humanize.Comma(int64(m.drag.target)), humanize.Comma(int64(len(m.labels)-1)))
	case len(m.labels) > 0:
		position = fmt.Sprintf("item %s/%s", humanize.Comma(int64(m.cursor)), humanize.Comma(int64(len(m.labels)-1)))
	}

	return statusbar.NewRenderer(m.theme, m.width, opts...).Render(note, position)
}

// slotFrame returns the frame of a slot in snap, including slots past the
// last item.
func (m *Model) slotFrame(snap *grid.Snapshot, slot int) geom.Rect {
	cfg := m.layout.Configuration()
	cfg.ContainerWidth = m.host.width

	top := cfg.SectionInset.Top
	if snap.Header != nil {
		top = snap.Header.Frame.Bottom()
	}

	return grid.PositionForIndex(slot, snap.Capacity, 0, cfg, snap.Spacing, top)
}

// crop keeps at most rows lines of s, scrolled so that line focusBottom-1 is
// visible.
func crop(s string, rows, focusBottom int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= rows {
		return s
	}

	offset := max(0, min(focusBottom-rows, len(lines)-rows))

	return strings.Join(lines[offset:offset+rows], "\n")
}

package ui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Aman-CERP/feedlens/internal/dashboard"
	"github.com/Aman-CERP/feedlens/internal/feedback"
)

// Source serves the feedback shown by the browser.
type Source interface {
	List(ctx context.Context) ([]feedback.Feedback, error)
	Get(ctx context.Context, id string) (feedback.Detailed, error)
}

// invalidator is implemented by caching sources; try again drops the cache.
type invalidator interface {
	Invalidate()
}

// BrowseOptions configures the interactive browser.
type BrowseOptions struct {
	Source   Source
	Criteria dashboard.Criteria
	Filter   dashboard.Options
}

// Browse runs the interactive browser until the user quits or ctx ends.
func Browse(ctx context.Context, cfg Config, opts BrowseOptions) error {
	if !IsTTY(cfg.Output) {
		return fmt.Errorf("output is not a TTY")
	}

	m := newBrowseModel(ctx, cfg, opts)
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithOutput(cfg.Output),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

type page int

const (
	pageLoading page = iota
	pageList
	pageDetails
	pageFailure
)

// Message types for bubbletea
type listLoadedMsg struct {
	items []feedback.Feedback
	err   error
}

type detailLoadedMsg struct {
	id     string
	detail feedback.Detailed
	err    error
}

// browseModel is the bubbletea model for the feedback browser.
type browseModel struct {
	ctx    context.Context
	source Source
	cfg    Config
	styles Styles
	filter dashboard.Options

	page     page
	criteria dashboard.Criteria
	items    []feedback.Feedback
	shown    []dashboard.Item
	cursor   int
	offset   int

	search    textinput.Model
	searching bool
	spinner   spinner.Model
	details   viewport.Model
	detailID  string

	err      error
	errFrom  page
	retry    func() tea.Cmd
	quitting bool

	width  int
	height int
}

// Size assumed until the first tea.WindowSizeMsg.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

func newBrowseModel(ctx context.Context, cfg Config, opts BrowseOptions) *browseModel {
	s := spinner.New()
	s.Spinner = spinner.Dot

	in := textinput.New()
	in.Prompt = "Search: "
	in.Placeholder = "Search here!"
	in.SetValue(opts.Criteria.Search)
	in.Width = searchWidth(in, defaultWidth)

	styles := cfg.Styles()
	s.Style = styles.Title

	return &browseModel{
		ctx:      ctx,
		source:   opts.Source,
		cfg:      cfg,
		styles:   styles,
		filter:   opts.Filter,
		page:     pageLoading,
		criteria: opts.Criteria,
		search:   in,
		spinner:  s,
		details:  viewport.New(defaultWidth, defaultHeight-4),
		width:    defaultWidth,
		height:   defaultHeight,
	}
}

// Init implements tea.Model.
func (m *browseModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadList())
}

func (m *browseModel) loadList() tea.Cmd {
	ctx, src := m.ctx, m.source
	return func() tea.Msg {
		items, err := src.List(ctx)
		return listLoadedMsg{items: items, err: err}
	}
}

func (m *browseModel) loadDetail(id string) tea.Cmd {
	ctx, src := m.ctx, m.source
	return func() tea.Msg {
		d, err := src.Get(ctx, id)
		return detailLoadedMsg{id: id, detail: d, err: err}
	}
}

// Update implements tea.Model.
func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.details.Width = msg.Width
		m.details.Height = max(msg.Height-4, 5)
		m.search.Width = searchWidth(m.search, msg.Width)
		return m, nil

	case spinner.TickMsg:
		if m.page != pageLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case listLoadedMsg:
		if msg.err != nil {
			m.fail(msg.err, pageList, m.loadList)
			return m, nil
		}
		m.items = msg.items
		m.refilter()
		m.page = pageList
		return m, nil

	case detailLoadedMsg:
		if msg.id != m.detailID {
			return m, nil
		}
		if msg.err != nil {
			id := msg.id
			m.fail(msg.err, pageDetails, func() tea.Cmd { return m.loadDetail(id) })
			return m, nil
		}
		m.showDetails(msg.detail)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *browseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.searching {
		switch msg.String() {
		case "esc", "enter", "up", "down":
			m.searching = false
			m.search.Blur()
			return m, nil
		}
		before := m.search.Value()
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if m.search.Value() != before {
			m.criteria.Search = m.search.Value()
			m.refilter()
		}
		return m, cmd
	}

	if msg.String() == "q" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.page {
	case pageList:
		return m.handleListKey(msg)
	case pageDetails:
		return m.handleDetailsKey(msg)
	case pageFailure:
		return m.handleFailureKey(msg)
	}
	return m, nil
}

func (m *browseModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "/":
		m.searching = true
		return m, m.search.Focus()
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "pgup":
		m.moveCursor(-m.listHeight())
	case "pgdown":
		m.moveCursor(m.listHeight())
	case "home", "g":
		m.moveCursor(-len(m.shown))
	case "end", "G":
		m.moveCursor(len(m.shown))
	case "1", "2", "3", "4", "5":
		r := feedback.Rating(key[0] - '0')
		m.criteria.Exclude = m.criteria.Exclude.Toggle(r)
		m.refilter()
	case "enter":
		if len(m.shown) == 0 {
			return m, nil
		}
		m.detailID = m.shown[m.cursor].ID
		m.page = pageLoading
		return m, tea.Batch(m.spinner.Tick, m.loadDetail(m.detailID))
	case "r":
		return m, m.reload(m.loadList)
	}
	return m, nil
}

func (m *browseModel) handleDetailsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace", "left", "h":
		m.page = pageList
		m.detailID = ""
		return m, nil
	case "r":
		id := m.detailID
		return m, m.reload(func() tea.Cmd { return m.loadDetail(id) })
	}
	var cmd tea.Cmd
	m.details, cmd = m.details.Update(msg)
	return m, cmd
}

func (m *browseModel) handleFailureKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		if m.retry != nil {
			return m, m.reload(m.retry)
		}
	case "esc", "backspace":
		if m.errFrom == pageDetails && m.items != nil {
			m.page = pageList
			m.detailID = ""
			m.err = nil
		}
	}
	return m, nil
}

// reload drops cached data and runs load behind the spinner.
func (m *browseModel) reload(load func() tea.Cmd) tea.Cmd {
	if inv, ok := m.source.(invalidator); ok {
		inv.Invalidate()
	}
	m.page = pageLoading
	m.err = nil
	return tea.Batch(m.spinner.Tick, load())
}

func (m *browseModel) fail(err error, from page, retry func() tea.Cmd) {
	slog.Debug("browse_fetch_failed", slog.String("error", err.Error()))
	m.err = err
	m.errFrom = from
	m.retry = retry
	m.page = pageFailure
}

func (m *browseModel) showDetails(d feedback.Detailed) {
	var buf bytes.Buffer
	_ = RenderDetails(&buf, d, DetailOptions{
		Styles:        m.styles,
		ViewportWidth: m.cfg.ViewportWidth,
		Search:        m.criteria.Search,
	})
	m.details.SetContent(buf.String())
	m.details.GotoTop()
	m.page = pageDetails
}

func (m *browseModel) refilter() {
	shown, err := dashboard.Apply(m.ctx, m.criteria, m.items, m.filter)
	if err != nil {
		slog.Debug("filter_failed",
			slog.String("search", m.criteria.Search),
			slog.String("error", err.Error()))
		return
	}
	m.shown = shown
	m.moveCursor(0)
}

func searchWidth(in textinput.Model, total int) int {
	return max(total-len(in.Prompt)-2, 10)
}

func (m *browseModel) listHeight() int {
	// header, search, exclude line, blank, footer
	return max(m.height-6, 3)
}

func (m *browseModel) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor >= len(m.shown) {
		m.cursor = len(m.shown) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
}

// View implements tea.Model.
func (m *browseModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.page {
	case pageLoading:
		return fmt.Sprintf("\n %s Loading feedback...\n", m.spinner.View())
	case pageDetails:
		header := m.styles.Header.Render("Feedback " + m.detailID)
		return header + "\n" + m.details.View() + "\n" + m.help("esc back", "↑/↓ scroll", "r reload", "q quit")
	case pageFailure:
		return m.viewFailure()
	default:
		return m.viewList()
	}
}

func (m *browseModel) viewList() string {
	var sb strings.Builder

	summary := dashboard.Summarize(m.shown)
	_ = RenderSummary(&sb, summary, len(m.items), m.styles)
	sb.WriteString(m.search.View())
	sb.WriteByte('\n')
	sb.WriteString(m.viewExclude())
	sb.WriteString("\n\n")

	if len(m.shown) == 0 {
		sb.WriteString(m.styles.Dim.Render(NoData))
		sb.WriteByte('\n')
	}

	width := m.cfg.CommentWidth
	if width <= 0 || width > m.width-20 {
		width = max(m.width-20, 10)
	}
	end := min(m.offset+m.listHeight(), len(m.shown))
	for i := m.offset; i < end; i++ {
		it := m.shown[i]
		marker := "  "
		if i == m.cursor {
			marker = m.styles.Selected.Render("› ")
		}
		sb.WriteString(marker)
		sb.WriteString(RatingMark(it.Rating, m.styles))
		sb.WriteString("  ")
		sb.WriteString(Highlight(Truncate(it.Fragments, width), m.styles))
		sb.WriteString("  ")
		sb.WriteString(m.styles.Dim.Render(browserLabel(it.Browser)))
		sb.WriteByte('\n')
	}

	sb.WriteString(m.help("/ search", "1-5 toggle rating", "enter details", "r reload", "q quit"))
	return sb.String()
}

func (m *browseModel) viewExclude() string {
	parts := make([]string, 0, len(feedback.Ratings))
	for _, r := range feedback.Ratings {
		if m.criteria.Exclude.Has(r) {
			parts = append(parts, m.styles.Dim.Render("["+r.String()+" hidden]"))
		} else {
			parts = append(parts, m.styles.Rating(r).Render("["+r.String()+"]"))
		}
	}
	return m.styles.Label.Render("Ratings: ") + strings.Join(parts, " ")
}

func (m *browseModel) viewFailure() string {
	var buf bytes.Buffer
	_ = RenderFailure(&buf, m.err, m.styles)
	f := DescribeFailure(m.err)

	keys := []string{}
	if m.retry != nil && !f.NotFound {
		keys = append(keys, "r try again")
	}
	if m.errFrom == pageDetails && m.items != nil {
		keys = append(keys, "esc back")
	}
	keys = append(keys, "q quit")

	return "\n" + buf.String() + "\n" + m.help(keys...)
}

func (m *browseModel) help(keys ...string) string {
	return m.styles.Dim.Render(strings.Join(keys, " • "))
}

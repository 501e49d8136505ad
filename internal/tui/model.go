// Package tui implements the interactive board: task cards in a terminal,
// reordered with the mouse.
package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/reorder"
	"taskboard/internal/store"
	"taskboard/internal/task"
	"taskboard/internal/view"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeSearch
	modeConfirmDelete
)

// filterKeys maps the number keys to status filters.
var filterKeys = map[string]store.Filter{
	"1": store.All,
	"2": store.StatusFilter(task.Pending),
	"3": store.StatusFilter(task.InProgress),
	"4": store.StatusFilter(task.Completed),
}

type (
	fetchedMsg  view.FetchComplete
	greetingMsg string

	// effectMsg reports the outcome of a dispatched event.
	effectMsg struct {
		origin view.Event
		effect view.Effect
	}
)

// Model is the bubbletea model of the board.
type Model struct {
	ctx context.Context
	ctl *view.Controller
	now func() time.Time

	mode     mode
	input    textinput.Model
	cursor   int
	top      int
	width    int
	height   int
	greeting string
	notice   string
	status   string
	alert    string

	pendingDel int64

	drag    *reorder.Drag
	dragged bool
	dropped []int64 // order shown between a drop and its effect

	err error
}

// New returns a board driven by ctl.
func New(ctx context.Context, ctl *view.Controller) Model {
	ti := textinput.New()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Cursor.SetMode(cursor.CursorStatic)

	return Model{
		ctx:    ctx,
		ctl:    ctl,
		now:    time.Now,
		input:  ti,
		height: 24,
		status: "Loading…",
	}
}

// Err returns the failure that ended the session, if any.
func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetch(), m.greet())
}

func (m Model) fetch() tea.Cmd {
	ctl, ctx := m.ctl, m.ctx
	return func() tea.Msg {
		return fetchedMsg(ctl.Fetch(ctx))
	}
}

func (m Model) greet() tea.Cmd {
	ctl, ctx := m.ctl, m.ctx
	return func() tea.Msg {
		return greetingMsg(ctl.Greeting(ctx))
	}
}

func (m Model) dispatch(ev view.Event) tea.Cmd {
	ctl, ctx := m.ctl, m.ctx
	return func() tea.Msg {
		return effectMsg{origin: ev, effect: ctl.Dispatch(ctx, ev)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = max(10, msg.Width-20)
		return m.clamp(), nil

	case fetchedMsg:
		eff := m.ctl.Dispatch(m.ctx, view.FetchComplete(msg))
		if eff.Err == nil && !eff.NeedsLogin {
			m.status = ""
		}
		m, cmd := m.apply(eff)
		return m.clamp(), cmd

	case effectMsg:
		return m.effect(msg)

	case greetingMsg:
		m.greeting = string(msg)
		return m, nil

	case tea.KeyMsg:
		if m.alert != "" {
			m.alert = ""
			return m, nil
		}
		switch m.mode {
		case modeAdd:
			return m.updateAdd(msg)
		case modeSearch:
			return m.updateSearch(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg.String())
		}
		return m.updateList(msg.String())

	case tea.MouseMsg:
		return m.updateMouse(msg)
	}
	return m, nil
}

// apply carries an effect into the model.
func (m Model) apply(eff view.Effect) (Model, tea.Cmd) {
	if eff.NeedsLogin {
		m.err = eff.Err
		return m, tea.Quit
	}
	switch {
	case eff.Alert != "":
		m.alert = eff.Alert
	case eff.Notice != "":
		m.notice = eff.Notice
	case eff.Err != nil:
		m.status = "error: " + eff.Err.Error()
	}
	if eff.Refresh {
		return m, m.fetch()
	}
	return m, nil
}

func (m Model) effect(msg effectMsg) (tea.Model, tea.Cmd) {
	switch msg.origin.(type) {
	case view.CreateRequested:
		if msg.effect.Err == nil {
			m.input.Reset()
			m.input.Blur()
			m.mode = modeList
			m.notice = ""
			m.status = "Added task"
		}
	case view.UpdateRequested:
		if msg.effect.Err == nil {
			m.status = "Saved"
		}
	case view.DeleteRequested:
		if msg.effect.Err == nil {
			m.status = "Deleted task"
		}
	case view.DragComplete:
		m.dropped = nil
		if msg.effect.Err == nil {
			m.status = "Order saved"
		}
	}
	m, cmd := m.apply(msg.effect)
	return m.clamp(), cmd
}

func (m Model) updateList(key string) (tea.Model, tea.Cmd) {
	cards := m.cards()

	if f, ok := filterKeys[key]; ok {
		m.ctl.Dispatch(m.ctx, view.FilterChanged{Filter: f})
		m.cursor, m.top = 0, 0
		return m, nil
	}

	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		m.cursor--
	case "down", "j":
		m.cursor++
	case "K", "shift+up":
		return m.moveSelected(cards, -1)
	case "J", "shift+down":
		return m.moveSelected(cards, 1)
	case "n":
		m.mode = modeAdd
		m.input.Prompt = "New: "
		m.input.Placeholder = "Task title"
		m.input.SetValue("")
		cmd := m.input.Focus()
		return m, cmd
	case "/":
		m.mode = modeSearch
		m.input.Prompt = "Search: "
		m.input.Placeholder = ""
		m.input.SetValue(m.ctl.State().Search)
		cmd := m.input.Focus()
		return m, cmd
	case "e":
		if len(cards) == 0 {
			return m, nil
		}
		t, ok := m.ctl.Lookup(cards[m.cursor].ID)
		if !ok {
			return m, nil
		}
		in := t.Input()
		in.Status = in.Status.Next()
		return m, m.dispatch(view.UpdateRequested{ID: t.ID, Input: in})
	case "d":
		if len(cards) == 0 {
			return m, nil
		}
		c := cards[m.cursor]
		m.mode = modeConfirmDelete
		m.pendingDel = c.ID
		m.status = fmt.Sprintf("Delete %q? y/n", c.Title)
		return m, nil
	case "r":
		m.status = "Loading…"
		return m, m.fetch()
	}
	return m.clamp(), nil
}

// moveSelected moves the selected card by delta and saves the whole order,
// the keyboard form of a drag.
func (m Model) moveSelected(cards []view.Card, delta int) (tea.Model, tea.Cmd) {
	target := m.cursor + delta
	if len(cards) == 0 || target < 0 || target >= len(cards) {
		return m, nil
	}
	order, err := reorder.Move(view.CardIDs(cards), cards[m.cursor].ID, target)
	if err != nil {
		return m, nil
	}
	m.cursor = target
	m.dropped = order
	return m.clamp(), m.dispatch(view.DragComplete{Order: order})
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.notice = ""
		m.input.Blur()
		return m, nil
	case "enter":
		return m, m.dispatch(view.CreateRequested{Input: task.Input{Title: m.input.Value()}})
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input.SetValue("")
		m.ctl.Dispatch(m.ctx, view.SearchChanged{Term: ""})
		fallthrough
	case "enter":
		m.mode = modeList
		m.input.Blur()
		return m.clamp(), nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctl.Dispatch(m.ctx, view.SearchChanged{Term: m.input.Value()})
	m.cursor, m.top = 0, 0
	return m, cmd
}

func (m Model) updateConfirmDelete(key string) (tea.Model, tea.Cmd) {
	id := m.pendingDel
	m.mode = modeList
	m.pendingDel = 0
	if key != "y" && key != "Y" {
		m.status = "Delete cancelled"
		return m, nil
	}
	m.status = ""
	return m, m.dispatch(view.DeleteRequested{ID: id})
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != modeList {
		return m, nil
	}
	cards := m.cards()
	lay := newLayout(m.height, m.top)

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.cursor--
		return m.clamp(), nil
	case msg.Button == tea.MouseButtonWheelDown:
		m.cursor++
		return m.clamp(), nil

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		i := lay.cardAt(msg.Y, len(cards))
		if i < 0 {
			return m, nil
		}
		d, err := reorder.Start(view.CardIDs(cards), cards[i].ID)
		if err != nil {
			return m, nil
		}
		m.cursor = i
		m.drag, m.dragged = d, false
		return m, nil

	case msg.Action == tea.MouseActionMotion && m.drag != nil:
		order := m.drag.Over(lay.slots(m.drag.Order(), m.drag.ID()), float64(msg.Y))
		m.dragged = true
		m.cursor = slices.Index(order, m.drag.ID())
		return m, nil

	case msg.Action == tea.MouseActionRelease && m.drag != nil:
		d, moved := m.drag, m.dragged
		m.drag, m.dragged = nil, false
		if !moved {
			return m, nil
		}
		order := d.Drop()
		m.dropped = order
		m.cursor = slices.Index(order, d.ID())
		return m.clamp(), m.dispatch(view.DragComplete{Order: order})
	}
	return m, nil
}

// cards returns the cards in the order they are shown: the projected order
// while dragging, the dropped order until its effect arrives, otherwise the
// controller's view.
func (m Model) cards() []view.Card {
	cards := m.ctl.Cards(m.now())
	switch {
	case m.drag != nil:
		return ordered(cards, m.drag.Order())
	case m.dropped != nil:
		return ordered(cards, m.dropped)
	}
	return cards
}

// ordered arranges cards by ids. Cards not named in ids follow in their
// current order.
func ordered(cards []view.Card, ids []int64) []view.Card {
	out := make([]view.Card, 0, len(cards))
	byID := make(map[int64]view.Card, len(cards))
	for _, c := range cards {
		byID[c.ID] = c
	}
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			out = append(out, c)
			delete(byID, id)
		}
	}
	for _, c := range cards {
		if _, ok := byID[c.ID]; ok {
			out = append(out, c)
		}
	}
	return out
}

// clamp keeps the cursor on a card and the cursor on screen.
func (m Model) clamp() Model {
	n := len(m.cards())
	m.cursor = max(0, min(m.cursor, n-1))
	m.top = newLayout(m.height, m.top).scrollTo(m.cursor, n)
	return m
}

func (m Model) View() string {
	var b strings.Builder
	cards := m.cards()
	state := m.ctl.State()
	lay := newLayout(m.height, m.top)

	// Header: exactly headerLines lines.
	title := titleStyle.Render("Taskboard")
	if m.greeting != "" {
		title += "  " + dimStyle.Render("Hello, "+m.greeting)
	}
	b.WriteString(title + "\n")
	b.WriteString(m.renderFilterBar(state.Filter) + "\n")
	b.WriteString(m.renderInputLine(state) + "\n")
	b.WriteString("\n")

	if len(cards) == 0 {
		b.WriteString(dimStyle.Render("  No tasks found.") + "\n")
	}
	for i := lay.top; i < len(cards) && i < lay.top+lay.visible; i++ {
		b.WriteString(m.renderCard(cards[i], i == m.cursor))
	}

	b.WriteString("\n")
	switch {
	case m.alert != "":
		b.WriteString(alertStyle.Render(m.alert+" (press any key)") + "\n")
	case state.Err != nil && m.status == "":
		b.WriteString(errorStyle.Render("error: "+state.Err.Error()) + "\n")
	default:
		b.WriteString(m.status + "\n")
	}
	b.WriteString(dimStyle.Render(helpText))
	return b.String()
}

func (m Model) renderFilterBar(current store.Filter) string {
	stats := m.ctl.Stats()
	entries := []struct {
		key    string
		label  string
		count  int
		filter store.Filter
	}{
		{"1", "All", stats.Total(), store.All},
		{"2", task.Pending.Label(), stats.Pending, filterKeys["2"]},
		{"3", task.InProgress.Label(), stats.InProgress, filterKeys["3"]},
		{"4", task.Completed.Label(), stats.Completed, filterKeys["4"]},
	}

	parts := make([]string, len(entries))
	for i, e := range entries {
		s := fmt.Sprintf("[%s] %s %d", e.key, e.label, e.count)
		if e.filter == current {
			s = activeFilterStyle.Render(s)
		}
		parts[i] = s
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderInputLine(state view.State) string {
	switch m.mode {
	case modeAdd, modeSearch:
		line := m.input.View()
		if m.mode == modeAdd && m.notice != "" {
			line += "  " + errorStyle.Render(m.notice)
		}
		return line
	}
	if state.Search != "" {
		return dimStyle.Render("Search: " + state.Search)
	}
	return ""
}

func (m Model) renderCard(c view.Card, selected bool) string {
	marker := "  "
	style := cardTitleStyle
	if selected {
		marker = selectedMarker
		if m.drag != nil {
			style = draggingStyle
		}
	}

	titleLine := marker + style.Render(m.truncate(normalize(c.Title))) + "  " + badgeStyle(c.Status).Render(c.Badge)

	meta := []string{fmt.Sprintf("#%d", c.ID)}
	if c.Due != "" {
		due := "due " + c.Due
		if c.Overdue {
			due = overdueStyle.Render(due + " (overdue)")
		}
		meta = append(meta, due)
	}
	if c.Created != "" {
		meta = append(meta, "created "+c.Created)
	}
	metaLine := "    " + dimStyle.Render(strings.Join(meta, " · "))

	return titleLine + "\n" + metaLine + "\n\n"
}

// truncate keeps a title on one terminal row.
func (m Model) truncate(s string) string {
	limit := m.width - 20
	if m.width == 0 || limit <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}

func normalize(title string) string {
	title = strings.NewReplacer("\r", " ", "\n", " ").Replace(title)
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

const helpText = "↑/↓ select • drag or J/K move • n new • e status • d delete • / search • 1-4 filter • r refresh • q quit"

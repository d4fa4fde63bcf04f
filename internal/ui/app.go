package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/conciergeelvirad/ELVIRA-sub003/internal/crud"
	"github.com/conciergeelvirad/ELVIRA-sub003/internal/hotel"
	"github.com/conciergeelvirad/ELVIRA-sub003/internal/ui/components"
)

// --- Messages ---

type clearToastMsg struct{}

type appToast struct {
	level string
	text  string
}

// --- App Model ---

// App is the root TUI model that routes between tabs.
type App struct {
	ctx  context.Context
	env  Env
	feed *changeFeed

	tabs   []tab
	active int
	width  int
	height int

	helpOpen    bool
	quitConfirm bool
	toast       *appToast
}

// NewApp creates the root model with one tab per table plus the guest
// portal preview. ctx bounds the change feed.
func NewApp(ctx context.Context, env Env) App {
	if ctx == nil {
		ctx = context.Background()
	}
	guests := NewResourceModel(hotel.Guests, env)
	staff := NewResourceModel(hotel.StaffMembers, env)
	amenities := NewResourceModel(hotel.Amenities, env)
	orders := NewResourceModel(hotel.RestaurantOrders, env)
	contacts := NewResourceModel(hotel.EmergencyContacts, env)
	places := NewResourceModel(hotel.Places, env)
	portal := NewPortalModel(amenities.Manager().Store, places.Manager().Store, contacts.Manager().Store)

	return App{
		ctx:  ctx,
		env:  env,
		tabs: []tab{guests, staff, amenities, orders, contacts, places, portal},
	}
}

func (a App) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(a.tabs)+1)
	for _, t := range a.tabs {
		cmds = append(cmds, t.Init())
	}
	if a.env.Client != nil {
		cmds = append(cmds, func() tea.Msg { return feedStartMsg{} })
	}
	return tea.Batch(cmds...)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		for i, t := range a.tabs {
			a.tabs[i] = t.SetSize(msg.Width, msg.Height)
		}
		return a, nil

	case clearToastMsg:
		a.toast = nil
		return a, nil

	case changeMsg:
		var cmd tea.Cmd
		if msg.change.HotelID == "" || a.env.HotelID == "" || msg.change.HotelID == a.env.HotelID {
			cmd = a.routeTo(msg.change.Table, msg)
		}
		return a, tea.Batch(cmd, a.rearmFeed())

	case feedClosedMsg:
		a.feed = nil
		if msg.err == nil || a.ctx.Err() != nil {
			return a, nil
		}
		a.env.logger().Warn("change feed closed", "error", msg.err)
		return a, tea.Batch(a.setToast("warning", "Live updates paused, retrying"), restartFeed())

	case feedStartMsg:
		if a.env.Client == nil || a.ctx.Err() != nil {
			return a, nil
		}
		a.feed = startFeed(a.ctx, a.env.Client)
		return a, a.feed.wait()

	case routed:
		cmd := a.routeTo(msg.route(), msg)
		if toast := a.toastCmdForMsg(msg); toast != nil {
			return a, tea.Batch(cmd, toast)
		}
		return a, cmd

	case tea.KeyMsg:
		if a.quitConfirm {
			switch {
			case isKey(msg, "y"), isKey(msg, "ctrl+c"):
				return a, tea.Quit
			case isKey(msg, "n"), isBack(msg):
				a.quitConfirm = false
			}
			return a, nil
		}
		if a.helpOpen {
			if isBack(msg) || isKey(msg, "?") {
				a.helpOpen = false
			}
			return a, nil
		}
		if isKey(msg, "ctrl+c") {
			return a.quit()
		}
		if !a.tabs[a.active].Capturing() {
			switch {
			case isQuit(msg):
				return a.quit()
			case isKey(msg, "?"):
				a.helpOpen = true
				return a, nil
			case isKey(msg, "right", "tab"):
				return a.switchTab((a.active + 1) % len(a.tabs))
			case isKey(msg, "left", "shift+tab"):
				return a.switchTab((a.active - 1 + len(a.tabs)) % len(a.tabs))
			}
			if idx, ok := tabIndexForKey(msg.String(), len(a.tabs)); ok {
				return a.switchTab(idx)
			}
		}
	}

	var cmd tea.Cmd
	a.tabs[a.active], cmd = a.tabs[a.active].Update(msg)
	return a, cmd
}

// routeTo hands msg to the tab showing table. Every tab owns a distinct
// table, so at most one receives it.
func (a *App) routeTo(table string, msg tea.Msg) tea.Cmd {
	for i, t := range a.tabs {
		if t.Table() == table {
			var cmd tea.Cmd
			a.tabs[i], cmd = t.Update(msg)
			return cmd
		}
	}
	return nil
}

func (a App) rearmFeed() tea.Cmd {
	if a.feed == nil {
		return nil
	}
	return a.feed.wait()
}

func (a App) quit() (tea.Model, tea.Cmd) {
	for _, t := range a.tabs {
		if t.Dirty() {
			a.quitConfirm = true
			return a, nil
		}
	}
	return a, tea.Quit
}

func (a App) switchTab(idx int) (tea.Model, tea.Cmd) {
	a.active = idx
	return a, nil
}

func tabIndexForKey(key string, n int) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	idx, err := strconv.Atoi(key)
	if err != nil || idx < 1 || idx > n {
		return 0, false
	}
	return idx - 1, true
}

// --- View ---

func (a App) View() string {
	banner := centerBlockUniform(RenderBanner(a.env.HotelID), a.width)
	tabs := centerBlockUniform(a.renderTabs(), a.width)

	var content string
	switch {
	case a.quitConfirm:
		content = a.renderQuitConfirm()
	case a.helpOpen:
		content = a.renderHelp()
	default:
		content = a.tabs[a.active].View()
	}
	content = centerBlockUniform(content, a.width)

	hints := components.StatusBar(a.statusHints(), a.width)

	feedback := ""
	if a.toast != nil {
		feedback = "\n\n" + centerBlockUniform(a.renderToast(), a.width)
	}
	return fmt.Sprintf("%s\n%s\n\n%s\n\n\n%s%s", banner, tabs, content, hints, feedback)
}

func (a App) renderTabs() string {
	segments := make([]string, 0, len(a.tabs))
	for i, t := range a.tabs {
		label := fmt.Sprintf("%d %s", i+1, t.Title())
		if i == a.active {
			segments = append(segments, TabActiveStyle.Render(label))
		} else {
			segments = append(segments, TabInactiveStyle.Render(label))
		}
	}
	mode := BadgeStyle.Render("live")
	if a.env.Client == nil {
		mode = BadgeStyle.Render("local")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, append(segments, " ", mode)...)
}

func (a App) statusHints() []string {
	if a.quitConfirm {
		return []string{components.Hint("y", "Quit"), components.Hint("n", "Stay")}
	}
	if a.helpOpen {
		return []string{components.Hint("esc", "Close")}
	}
	hints := a.tabs[a.active].Hints()
	if a.tabs[a.active].Capturing() {
		return hints
	}
	return append(hints,
		components.Hint("1-7", "Tabs"),
		components.Hint("?", "Help"),
		components.Hint("q", "Quit"),
	)
}

func (a App) renderHelp() string {
	lines := []string{MutedStyle.Render("esc to close"), ""}
	for _, hint := range a.tabs[a.active].Hints() {
		lines = append(lines, "  "+hint)
	}
	lines = append(lines, "",
		"  "+components.Hint("←/→", "Previous / next tab"),
		"  "+components.Hint("1-7", "Jump to tab"),
		"  "+components.Hint("q", "Quit"),
	)
	return components.Indent(components.TitledBox("Help · "+a.tabs[a.active].Title(), strings.Join(lines, "\n"), a.width), 1)
}

func (a App) renderQuitConfirm() string {
	return components.Indent(components.ConfirmDialog("Quit", "You have unsaved changes. Quit anyway?", false), 1)
}

// --- Toasts ---

func (a *App) setToast(level, text string) tea.Cmd {
	a.toast = &appToast{
		level: level,
		text:  components.SanitizeOneLine(text),
	}
	return tea.Tick(2500*time.Millisecond, func(time.Time) tea.Msg {
		return clearToastMsg{}
	})
}

func (a App) renderToast() string {
	if a.toast == nil {
		return ""
	}
	title := "Info"
	switch a.toast.level {
	case "success":
		title = "Success"
	case "warning":
		title = "Warning"
	case "error":
		return components.ErrorBox("Error", a.toast.text, a.width)
	}
	return components.TitledBox(title, a.toast.text, a.width)
}

func (a *App) toastCmdForMsg(msg tea.Msg) tea.Cmd {
	var level, text string
	switch msg := msg.(type) {
	case submitDoneMsg:
		if msg.err != nil {
			return nil
		}
		level, text = "success", fmt.Sprintf("%s %sd.", singularFor(msg.table), msg.op)
	case deleteDoneMsg:
		if msg.err != nil {
			return nil
		}
		level, text = "success", fmt.Sprintf("Deleted %s.", msg.label)
	case toggleDoneMsg:
		if msg.err == nil {
			return nil
		}
		level, text = "error", "Change reverted: "+crud.Message(msg.err)
	}
	if text == "" {
		return nil
	}
	return a.setToast(level, text)
}

func singularFor(table string) string {
	var s string
	switch table {
	case hotel.TableGuests:
		s = hotel.Guests.Singular
	case hotel.TableStaff:
		s = hotel.StaffMembers.Singular
	case hotel.TableAmenities:
		s = hotel.Amenities.Singular
	case hotel.TableRestaurantOrders:
		s = hotel.RestaurantOrders.Singular
	case hotel.TableEmergencyContacts:
		s = hotel.EmergencyContacts.Singular
	case hotel.TablePlaces:
		s = hotel.Places.Singular
	default:
		s = "record"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// --- Layout ---

func centerBlockUniform(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	maxWidth := 0
	for _, line := range lines {
		maxWidth = max(maxWidth, lipgloss.Width(line))
	}
	if maxWidth <= 0 || maxWidth >= width {
		return s
	}
	pad := (width - maxWidth) / 2
	if pad <= 0 {
		return s
	}
	prefix := strings.Repeat(" ", pad)
	for i := range lines {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

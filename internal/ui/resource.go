package ui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/conciergeelvirad/ELVIRA-sub003/internal/api"
	"github.com/conciergeelvirad/ELVIRA-sub003/internal/crud"
	"github.com/conciergeelvirad/ELVIRA-sub003/internal/hotel"
	"github.com/conciergeelvirad/ELVIRA-sub003/internal/media"
	"github.com/conciergeelvirad/ELVIRA-sub003/internal/ui/components"
)

const defaultTimeout = 10 * time.Second

// --- Messages ---

// routed messages belong to the tab showing the named table.
type routed interface{ route() string }

type loadedMsg[T crud.Entity] struct {
	table string
	items []T
}

type loadFailedMsg struct {
	table string
	err   error
}

type toggleDoneMsg struct {
	table   string
	pending *crud.Pending
	err     error
}

type submitDoneMsg struct {
	table string
	op    string
	err   error
}

type deleteDoneMsg struct {
	table string
	label string
	err   error
}

func (m loadedMsg[T]) route() string { return m.table }
func (m loadFailedMsg) route() string { return m.table }
func (m toggleDoneMsg) route() string { return m.table }
func (m submitDoneMsg) route() string { return m.table }
func (m deleteDoneMsg) route() string { return m.table }

// Env is what every tab needs from the outside world. A nil Client runs
// the dashboard against in-memory stores.
type Env struct {
	Client   *api.Client
	HotelID  string
	Sync     crud.SyncPolicy
	Uploader media.Uploader
	VimKeys  bool
	Logger   *slog.Logger
	Timeout  time.Duration
}

func (e Env) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}

type lister[T crud.Entity] interface {
	List(ctx context.Context, search string) ([]T, error)
}

// tab is one dashboard page.
type tab interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (tab, tea.Cmd)
	View() string
	Title() string
	Table() string
	SetSize(width, height int) tab
	// Capturing reports whether the tab wants every key, so global
	// shortcuts must not fire.
	Capturing() bool
	Hints() []string
	// Dirty reports an open form with a draft that would be lost.
	Dirty() bool
}

// --- Resource Model ---

// ResourceModel is the list, form and dialogs of one hotel table.
type ResourceModel[T crud.Entity] struct {
	res      hotel.Resource[T]
	mgr      *crud.Manager[T]
	remote   lister[T]
	uploader media.Uploader
	hotelID  string
	log      *slog.Logger
	nav      navKeys
	timeout  time.Duration
	cursor   *components.Cursor

	loading   bool
	stale     bool
	errText   string
	searching bool
	searchBuf string
	toggleIdx int
	focus     int
	width     int
	height    int
}

// NewResourceModel builds the tab for res. With a client, mutations go
// through the REST table and the list loads from the backend.
func NewResourceModel[T crud.Entity](res hotel.Resource[T], env Env) ResourceModel[T] {
	adapter := crud.AdapterConfig[T]{Sync: env.Sync, Logger: env.logger().With("table", res.Table)}
	var remote lister[T]
	if env.Client != nil {
		table := api.NewTable[T](env.Client, res.Table, env.HotelID)
		adapter.Ops = crud.Remote[T](table)
		remote = table
	}
	timeout := env.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return ResourceModel[T]{
		res:      res,
		mgr:      res.NewManager(crud.Scope{TenantID: env.HotelID}, adapter),
		remote:   remote,
		uploader: env.Uploader,
		hotelID:  env.HotelID,
		log:      env.logger().With("tab", res.Table),
		nav:      navKeys{vim: env.VimKeys},
		timeout:  timeout,
		cursor:   components.NewCursor(12),
	}
}

// Manager exposes the underlying CRUD state.
func (m ResourceModel[T]) Manager() *crud.Manager[T] { return m.mgr }

func (m ResourceModel[T]) Title() string { return m.res.Title }
func (m ResourceModel[T]) Table() string { return m.res.Table }

func (m ResourceModel[T]) SetSize(width, height int) tab {
	m.width = width
	m.height = height
	if height > 0 {
		m.cursor.PageSize = max(height-24, 5)
		m.cursor.SetLen(m.cursor.Len())
	}
	return m
}

func (m ResourceModel[T]) Capturing() bool {
	return m.searching || m.mgr.Modals.IsOpen()
}

func (m ResourceModel[T]) Dirty() bool {
	fields := m.mgr.Form.Fields()
	var base crud.Draft
	switch m.mgr.Modals.Kind() {
	case crud.ModalCreating:
		base = crud.EmptyDraft(fields)
	case crud.ModalEditing:
		target, _ := m.mgr.Modals.EditTarget()
		keys := make([]string, len(fields))
		for i, f := range fields {
			keys[i] = f.Key
		}
		base = crud.ExtractDraft(target, keys)
	default:
		return false
	}
	for key, v := range m.mgr.Form.Values() {
		if crud.Stringify(v) != crud.Stringify(base[key]) {
			return true
		}
	}
	return false
}

func (m ResourceModel[T]) Init() tea.Cmd {
	if m.remote == nil {
		m.syncCursor()
		return nil
	}
	return m.load()
}

// load fetches the table. loading is tracked by the caller.
func (m ResourceModel[T]) load() tea.Cmd {
	remote, table, timeout := m.remote, m.res.Table, m.timeout
	if remote == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		items, err := remote.List(ctx, "")
		if err != nil {
			return loadFailedMsg{table: table, err: err}
		}
		return loadedMsg[T]{table: table, items: items}
	}
}

func (m ResourceModel[T]) reload() (ResourceModel[T], tea.Cmd) {
	if m.remote == nil {
		m.syncCursor()
		return m, nil
	}
	m.loading = true
	return m, m.load()
}

// --- Update ---

func (m ResourceModel[T]) Update(msg tea.Msg) (tab, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg[T]:
		m.loading = false
		applied, err := m.mgr.Store.ReplaceAll(msg.items)
		if err != nil {
			m.errText = crud.Message(err)
			return m, nil
		}
		m.stale = !applied
		m.syncCursor()
		return m, nil

	case loadFailedMsg:
		m.loading = false
		m.errText = crud.Message(msg.err)
		m.log.Warn("load failed", "error", msg.err)
		return m, nil

	case toggleDoneMsg:
		if err := m.mgr.Store.Settle(msg.pending, msg.err); err != nil {
			m.errText = crud.Message(err)
		}
		if m.stale && m.mgr.Store.Pending() == 0 {
			m.stale = false
			return m.reload()
		}
		m.syncCursor()
		return m, nil

	case submitDoneMsg:
		m.mgr.FinishSubmit(msg.err)
		if msg.err != nil {
			m.errText = crud.Message(msg.err)
			return m, nil
		}
		m.errText = ""
		m.focus = 0
		return m.afterMutation()

	case deleteDoneMsg:
		if msg.err != nil {
			m.errText = crud.Message(msg.err)
			return m, nil
		}
		m.errText = ""
		m.mgr.Close()
		return m.afterMutation()

	case changeMsg:
		if m.mgr.Store.Pending() > 0 {
			m.stale = true
			return m, nil
		}
		return m.reload()

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}
	return m, nil
}

func (m ResourceModel[T]) afterMutation() (tab, tea.Cmd) {
	if m.remote != nil && m.mgr.Store.Adapter().Sync() == crud.SyncRefetch {
		return m.reload()
	}
	m.syncCursor()
	return m, nil
}

func (m *ResourceModel[T]) syncCursor() {
	m.cursor.SetLen(len(m.mgr.Projection()))
}

func (m ResourceModel[T]) selected() (T, bool) {
	items := m.mgr.Projection()
	if m.cursor.Index < 0 || m.cursor.Index >= len(items) {
		var zero T
		return zero, false
	}
	return items[m.cursor.Index], true
}

func (m ResourceModel[T]) handleKeys(msg tea.KeyMsg) (tab, tea.Cmd) {
	if m.searching {
		return m.handleSearchKeys(msg)
	}
	switch m.mgr.Modals.Kind() {
	case crud.ModalCreating, crud.ModalEditing:
		return m.handleFormKeys(msg)
	case crud.ModalConfirmingDelete:
		return m.handleDeleteKeys(msg)
	case crud.ModalViewing:
		return m.handleDetailKeys(msg)
	}
	return m.handleListKeys(msg)
}

func (m ResourceModel[T]) handleListKeys(msg tea.KeyMsg) (tab, tea.Cmd) {
	m.errText = ""
	switch {
	case m.nav.up(msg):
		m.cursor.Up()
	case m.nav.down(msg):
		m.cursor.Down()
	case m.nav.top(msg):
		m.cursor.Top()
	case m.nav.bottom(msg):
		m.cursor.Bottom()
	case isEnter(msg):
		if item, ok := m.selected(); ok {
			m.mgr.OpenDetail(item)
		}
	case isKey(msg, "n"):
		m.focus = 0
		m.mgr.OpenCreate()
	case isKey(msg, "e"):
		return m.openEdit()
	case isKey(msg, "d"):
		return m.openDelete()
	case isSpace(msg):
		return m.toggleSelected()
	case isKey(msg, "t"):
		if len(m.res.Toggles) > 0 {
			m.toggleIdx = (m.toggleIdx + 1) % len(m.res.Toggles)
		}
	case isKey(msg, "/"):
		m.searching = true
		m.searchBuf = m.mgr.View.SearchTerm()
	case isKey(msg, "f"):
		m.cycleFilter()
	case isKey(msg, "s"):
		m.cycleSort()
	case isKey(msg, "S"):
		if key := m.mgr.View.SortKey(); key != "" {
			m.mgr.View.ToggleSort(key)
		}
	case isKey(msg, "v"):
		m.mgr.View.ToggleMode()
	case isKey(msg, "c"):
		m.mgr.View.ClearAll()
		m.syncCursor()
	case isKey(msg, "r"):
		return m.reload()
	}
	return m, nil
}

func (m ResourceModel[T]) openEdit() (tab, tea.Cmd) {
	item, ok := m.selected()
	if !ok {
		m.errText = crud.Message(crud.ErrNoSubject)
		return m, nil
	}
	m.focus = 0
	m.mgr.OpenEdit(item)
	return m, nil
}

func (m ResourceModel[T]) openDelete() (tab, tea.Cmd) {
	item, ok := m.selected()
	if !ok {
		m.errText = crud.Message(crud.ErrNoSubject)
		return m, nil
	}
	m.mgr.OpenDelete(item)
	return m, nil
}

func (m ResourceModel[T]) toggleSelected() (tab, tea.Cmd) {
	if len(m.res.Toggles) == 0 {
		return m, nil
	}
	item, ok := m.selected()
	if !ok {
		m.errText = crud.Message(crud.ErrNoSubject)
		return m, nil
	}
	field := m.res.Toggles[m.toggleIdx%len(m.res.Toggles)]
	current, _ := crud.FieldValue(item, field).(bool)
	p, err := m.mgr.Store.BeginToggle(item.EntityID(), field, !current)
	if err != nil {
		m.errText = crud.Message(err)
		return m, nil
	}
	m.syncCursor()

	adapter, table, timeout := m.mgr.Store.Adapter(), m.res.Table, m.timeout
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		_, err := adapter.Update(ctx, p.ID, crud.Patch{p.Field: p.Next})
		return toggleDoneMsg{table: table, pending: p, err: err}
	}
}

func (m *ResourceModel[T]) cycleFilter() {
	if m.res.FilterField == "" {
		return
	}
	values := make([]string, 0, len(m.res.FilterOptions)+1)
	values = append(values, "")
	for _, opt := range m.res.FilterOptions {
		values = append(values, opt.Value)
	}
	m.mgr.View.SetFilterValue(nextValue(values, m.mgr.View.FilterValue()))
	m.syncCursor()
}

func (m *ResourceModel[T]) cycleSort() {
	if len(m.res.SortKeys) == 0 {
		return
	}
	m.mgr.View.SetSort(nextValue(m.res.SortKeys, m.mgr.View.SortKey()), crud.Ascending)
}

// nextValue returns the entry after current, wrapping around. An unknown
// current yields the first entry.
func nextValue(values []string, current string) string {
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}

func (m ResourceModel[T]) handleSearchKeys(msg tea.KeyMsg) (tab, tea.Cmd) {
	switch {
	case isEnter(msg):
		m.searching = false
	case isBack(msg):
		m.searching = false
		m.searchBuf = ""
		m.mgr.View.SetSearchTerm("")
	case isBackspace(msg):
		if r := []rune(m.searchBuf); len(r) > 0 {
			m.searchBuf = string(r[:len(r)-1])
		}
		m.mgr.View.SetSearchTerm(m.searchBuf)
	default:
		if text := typed(msg); text != "" {
			m.searchBuf += text
			m.mgr.View.SetSearchTerm(m.searchBuf)
		}
	}
	m.syncCursor()
	return m, nil
}

func (m ResourceModel[T]) handleDeleteKeys(msg tea.KeyMsg) (tab, tea.Cmd) {
	switch {
	case isKey(msg, "y"):
		target, ok := m.mgr.Modals.DeleteTarget()
		if !ok {
			return m, nil
		}
		store, table, timeout := m.mgr.Store, m.res.Table, m.timeout
		label := m.label(target)
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			return deleteDoneMsg{table: table, label: label, err: store.Delete(ctx, target.EntityID())}
		}
	case isKey(msg, "n"), isBack(msg):
		m.errText = ""
		m.mgr.Close()
	}
	return m, nil
}

func (m ResourceModel[T]) handleDetailKeys(msg tea.KeyMsg) (tab, tea.Cmd) {
	target, _ := m.mgr.Modals.ViewTarget()
	switch {
	case isKey(msg, "e"):
		m.focus = 0
		m.mgr.OpenEdit(target)
	case isKey(msg, "d"):
		m.mgr.OpenDelete(target)
	case isBack(msg), isEnter(msg):
		m.mgr.Close()
	}
	return m, nil
}

func (m ResourceModel[T]) label(item T) string {
	if m.res.Label != nil {
		if l := strings.TrimSpace(m.res.Label(item)); l != "" {
			return l
		}
	}
	return item.EntityID()
}

// uploadFiles replaces local file paths in fields with uploaded URLs.
// Values that are not existing files pass through unchanged.
func uploadFiles(ctx context.Context, up media.Uploader, hotelID, table string, form []crud.Field, fields crud.Patch) error {
	if up == nil {
		return nil
	}
	for _, f := range form {
		if f.Kind != crud.KindFile {
			continue
		}
		path := strings.TrimSpace(crud.Stringify(fields[f.Key]))
		if path == "" {
			continue
		}
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		url, err := media.UploadFile(ctx, up, hotelID, table, path)
		if err != nil {
			return fmt.Errorf("upload %s: %w", f.Label, err)
		}
		fields[f.Key] = url
	}
	return nil
}

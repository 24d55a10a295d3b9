package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nathanbeddoewebdev/pokeshop/internal/activity"
	"nathanbeddoewebdev/pokeshop/internal/cart"
	"nathanbeddoewebdev/pokeshop/internal/config"
	"nathanbeddoewebdev/pokeshop/internal/domain"
	"nathanbeddoewebdev/pokeshop/internal/favorites"
	"nathanbeddoewebdev/pokeshop/internal/shop"
	"nathanbeddoewebdev/pokeshop/internal/tui/components"
	"nathanbeddoewebdev/pokeshop/internal/tui/styles"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// --- Messages ---

// pageLoadedMsg carries the outcome of one catalog page fetch back to
// Update, where it is handed to the session together with its ticket.
type pageLoadedMsg struct {
	ticket shop.Ticket
	page   *domain.Page
	err    error
}

type favoritesLoadedMsg struct {
	items []favorites.Favorite
	err   error
}

type cartLoadedMsg struct {
	lines []cart.Line
	err   error
}

type favoriteToggledMsg struct {
	item  domain.CatalogItem
	added bool
	err   error
}

type cartToggledMsg struct {
	item  domain.CatalogItem
	added bool
	err   error
}

type cartChangedMsg struct {
	err error
}

// --- Views ---

type shopView int

const (
	viewCatalog shopView = iota
	viewFavorites
	viewCart
	viewDetail
)

func (v shopView) breadcrumb() string {
	switch v {
	case viewFavorites:
		return "favorites"
	case viewCart:
		return "cart"
	case viewDetail:
		return "detail"
	default:
		return "catalog"
	}
}

// refresher is implemented by sources that cache pages and can drop them.
type refresher interface {
	Refresh() error
}

// ShopOptions configures RunShop.
type ShopOptions struct {
	// Context bounds page fetches. Quitting the shop cancels it.
	Context context.Context

	Source     domain.CatalogSource
	SourceName string
	Session    *shop.Session
	Favorites  favorites.Repository
	Cart       cart.Repository

	// Activity, when set, records favorites and cart changes.
	Activity activity.Repository

	// Layout is config.ViewGrid or config.ViewList.
	Layout string
	Logger *zap.Logger
}

type shopModel struct {
	source     domain.CatalogSource
	sourceName string
	session    *shop.Session
	favs       favorites.Repository
	cart       cart.Repository
	history    activity.Repository
	log        *zap.Logger

	// ctx is cancelled on quit so an outstanding page fetch stops early.
	ctx    context.Context
	cancel context.CancelFunc

	view   shopView
	back   shopView
	layout string

	// items is the normalized view of the session, refreshed after every
	// page or sort change.
	items  []domain.CatalogItem
	cursor int

	favList    []favorites.Favorite
	favCursor  int
	cartLines  []cart.Line
	cartCursor int
	favorite   map[int]bool
	inCart     map[int]bool

	detail domain.CatalogItem

	spinner spinner.Model

	width  int
	height int

	status        string
	statusIsError bool
}

// RunShop starts the full-window storefront TUI.
func RunShop(opts ShopOptions) error {
	m := newShopModel(opts)
	defer m.cancel()

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run shop: %w", err)
	}
	return nil
}

func newShopModel(opts ShopOptions) shopModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Gold)

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	session := opts.Session
	if session == nil {
		session = shop.New(shop.WithLogger(log))
	}
	layout := opts.Layout
	if layout != config.ViewList {
		layout = config.ViewGrid
	}
	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	m := shopModel{
		source:     opts.Source,
		sourceName: opts.SourceName,
		session:    session,
		history:    opts.Activity,
		favs:       opts.Favorites,
		cart:       opts.Cart,
		log:        log,
		ctx:        ctx,
		cancel:     cancel,
		layout:     layout,
		favorite:   map[int]bool{},
		inCart:     map[int]bool{},
		spinner:    s,
	}
	m.items = session.View()
	return m
}

func (m shopModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadFavorites(), m.loadCart()}
	if !m.session.Loaded() {
		if cmd := m.loadMore(); cmd != nil {
			cmds = append(cmds, m.spinner.Tick, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// --- Commands ---

// loadMore reserves the next page on the session and returns the command
// that fetches it, or nil when the session is busy or exhausted.
func (m shopModel) loadMore() tea.Cmd {
	t, err := m.session.BeginFetch()
	if err != nil {
		return nil
	}
	ctx, source := m.ctx, m.source
	return func() tea.Msg {
		page, err := source.FetchPage(ctx, t.URL)
		return pageLoadedMsg{ticket: t, page: page, err: err}
	}
}

// reload restarts the catalog from the first page. Sources with a page
// cache drop it first so the reload reaches upstream.
func (m shopModel) reload() tea.Cmd {
	m.session.Reset()
	fetch := m.loadMore()
	r, ok := m.source.(refresher)
	if !ok || fetch == nil {
		return fetch
	}
	log := m.log
	return func() tea.Msg {
		if err := r.Refresh(); err != nil {
			log.Warn("failed to drop cached pages", zap.Error(err))
		}
		return fetch()
	}
}

func (m shopModel) loadFavorites() tea.Cmd {
	if m.favs == nil {
		return nil
	}
	repo := m.favs
	return func() tea.Msg {
		items, err := repo.List()
		return favoritesLoadedMsg{items: items, err: err}
	}
}

func (m shopModel) loadCart() tea.Cmd {
	if m.cart == nil {
		return nil
	}
	repo := m.cart
	return func() tea.Msg {
		lines, err := repo.List()
		return cartLoadedMsg{lines: lines, err: err}
	}
}

func (m shopModel) toggleFavorite(item domain.CatalogItem) tea.Cmd {
	if m.favs == nil {
		return nil
	}
	repo := m.favs
	record := m.recorder()
	return func() tea.Msg {
		start := time.Now()
		added, err := repo.Toggle(item)
		record("favorites toggle", item.ID, item.Name, 0, start, err)
		return favoriteToggledMsg{item: item, added: added, err: err}
	}
}

// toggleCart adds one unit of item when it has no cart line and removes
// the line otherwise.
func (m shopModel) toggleCart(item domain.CatalogItem) tea.Cmd {
	if m.cart == nil {
		return nil
	}
	repo := m.cart
	present := m.inCart[item.ID]
	record := m.recorder()
	return func() tea.Msg {
		start := time.Now()
		if present {
			err := repo.Remove(item.ID)
			if errors.Is(err, domain.ErrNotFound) {
				err = nil
			}
			record("cart remove", item.ID, item.Name, 0, start, err)
			return cartToggledMsg{item: item, added: false, err: err}
		}
		err := repo.Add(item, 1)
		record("cart add", item.ID, item.Name, 1, start, err)
		return cartToggledMsg{item: item, added: true, err: err}
	}
}

func (m shopModel) setQty(id, qty int) tea.Cmd {
	repo := m.cart
	record := m.recorder()
	return func() tea.Msg {
		start := time.Now()
		err := repo.SetQty(id, qty)
		record("cart set-qty", id, "", qty, start, err)
		return cartChangedMsg{err: err}
	}
}

// recorder returns a function that saves an activity entry, or a no-op
// when no repository is configured. Save failures are only logged.
func (m shopModel) recorder() func(action string, id int, name string, qty int, start time.Time, err error) {
	repo, log := m.history, m.log
	return func(action string, id int, name string, qty int, start time.Time, err error) {
		if repo == nil {
			return
		}
		entry := &activity.Entry{Action: action, Origin: activity.OriginShop, ItemID: id, ItemName: name, Qty: qty}
		entry.Finish(start, err)
		if saveErr := repo.Save(entry); saveErr != nil {
			log.Warn("failed to record activity", zap.String("action", action), zap.Error(saveErr))
		}
	}
}

// --- Update ---

func (m shopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case pageLoadedMsg:
		return m.handlePage(msg)

	case favoritesLoadedMsg:
		if msg.err != nil {
			return m.fail("load favorites", msg.err), nil
		}
		m.favList = msg.items
		m.favorite = make(map[int]bool, len(msg.items))
		for _, f := range msg.items {
			m.favorite[f.Item.ID] = true
		}
		m.favCursor = clampCursor(m.favCursor, len(m.favList))
		return m, nil

	case cartLoadedMsg:
		if msg.err != nil {
			return m.fail("load cart", msg.err), nil
		}
		m.cartLines = msg.lines
		m.inCart = make(map[int]bool, len(msg.lines))
		for _, l := range msg.lines {
			m.inCart[l.Item.ID] = true
		}
		m.cartCursor = clampCursor(m.cartCursor, len(m.cartLines))
		return m, nil

	case favoriteToggledMsg:
		if msg.err != nil {
			return m.fail("update favorites", msg.err), nil
		}
		if msg.added {
			m = m.notify(fmt.Sprintf("%s added to favorites", msg.item.DisplayName()))
		} else {
			m = m.notify(fmt.Sprintf("%s removed from favorites", msg.item.DisplayName()))
		}
		return m, m.loadFavorites()

	case cartToggledMsg:
		if msg.err != nil {
			return m.fail("update cart", msg.err), nil
		}
		if msg.added {
			m = m.notify(fmt.Sprintf("%s added to cart", msg.item.DisplayName()))
		} else {
			m = m.notify(fmt.Sprintf("%s removed from cart", msg.item.DisplayName()))
		}
		return m, m.loadCart()

	case cartChangedMsg:
		if msg.err != nil {
			return m.fail("update cart", msg.err), nil
		}
		return m, m.loadCart()

	case spinner.TickMsg:
		if m.session.Busy() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

func (m shopModel) handlePage(msg pageLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.session.Current(msg.ticket) {
		m.session.Complete(msg.ticket, msg.page, msg.err)
		return m, nil
	}
	if !m.session.Complete(msg.ticket, msg.page, msg.err) {
		return m.fail("load catalog", msg.err), nil
	}

	m = m.refreshItems()
	if m.session.HasMore() {
		m = m.notify(fmt.Sprintf("Loaded page %d", m.session.Pages()))
	} else {
		m = m.notify("End of catalog")
	}
	return m, nil
}

func (m shopModel) refreshItems() shopModel {
	m.items = m.session.View()
	m.cursor = clampCursor(m.cursor, len(m.items))
	return m
}

func (m shopModel) notify(status string) shopModel {
	m.status = status
	m.statusIsError = false
	return m
}

func (m shopModel) fail(action string, err error) shopModel {
	m.log.Warn("shop action failed", zap.String("action", action), zap.Error(err))
	m.status = fmt.Sprintf("Failed to %s: %v", action, err)
	m.statusIsError = true
	return m
}

// --- Key handling ---

func (m shopModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.cancel()
		return m, tea.Quit
	case "tab":
		m.view = nextView(m.view)
		m.status = ""
		return m, nil
	}

	switch m.view {
	case viewFavorites:
		return m.handleFavoritesKey(msg)
	case viewCart:
		return m.handleCartKey(msg)
	case viewDetail:
		return m.handleDetailKey(msg)
	default:
		return m.handleCatalogKey(msg)
	}
}

func nextView(v shopView) shopView {
	switch v {
	case viewCatalog:
		return viewFavorites
	case viewFavorites:
		return viewCart
	default:
		return viewCatalog
	}
}

func (m shopModel) showDetail(item domain.CatalogItem) shopModel {
	m.back = m.view
	m.view = viewDetail
	m.detail = item
	return m
}

func (m shopModel) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace", "enter":
		m.view = m.back
	case "f":
		return m, m.toggleFavorite(m.detail)
	case "c":
		return m, m.toggleCart(m.detail)
	}
	return m, nil
}

// --- View ---

func (m shopModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	right := m.sourceName
	if m.view == viewCatalog {
		right = fmt.Sprintf("%d available", len(m.items))
	}
	header := components.Header(m.width, m.view.breadcrumb(), right)
	footer := components.Footer(m.width, m.bindings())

	statusBar := ""
	if m.status != "" {
		statusBar = components.StatusBar(m.width, m.status, m.statusIsError)
	}

	contentH := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer)-lipgloss.Height(statusBar), 1)

	var content string
	switch m.view {
	case viewFavorites:
		content = m.renderFavorites(contentH)
	case viewCart:
		content = m.renderCart(contentH)
	case viewDetail:
		content = m.renderDetail(contentH)
	default:
		content = m.renderCatalog(contentH)
	}

	sections := []string{header, content}
	if statusBar != "" {
		sections = append(sections, statusBar)
	}
	sections = append(sections, footer)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m shopModel) bindings() []components.KeyBinding {
	switch m.view {
	case viewFavorites:
		return []components.KeyBinding{
			{Key: "j/k", Desc: "navigate"},
			{Key: "enter", Desc: "details"},
			{Key: "f", Desc: "unfavorite"},
			{Key: "c", Desc: "cart"},
			{Key: "tab", Desc: "cart view"},
			{Key: "q", Desc: "quit"},
		}
	case viewCart:
		return []components.KeyBinding{
			{Key: "j/k", Desc: "navigate"},
			{Key: "+/-", Desc: "quantity"},
			{Key: "x", Desc: "remove"},
			{Key: "tab", Desc: "catalog"},
			{Key: "q", Desc: "quit"},
		}
	case viewDetail:
		return []components.KeyBinding{
			{Key: "esc", Desc: "back"},
			{Key: "f", Desc: "favorite"},
			{Key: "c", Desc: "cart"},
			{Key: "q", Desc: "quit"},
		}
	}

	return []components.KeyBinding{
		{Key: "j/k", Desc: "navigate"},
		{Key: "s", Desc: "sort"},
		{Key: "v", Desc: "layout"},
		{Key: "m", Desc: "more"},
		{Key: "f", Desc: "favorite"},
		{Key: "c", Desc: "cart"},
		{Key: "tab", Desc: "favorites"},
		{Key: "q", Desc: "quit"},
	}
}

// clampCursor keeps a cursor inside [0, n).
func clampCursor(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}

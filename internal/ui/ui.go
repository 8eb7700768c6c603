package ui

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/rossw/tvrx/internal/models"
	"github.com/rossw/tvrx/internal/recstate"
	"github.com/rossw/tvrx/internal/services"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	BrowseView ViewState = iota
	DetailView
)

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	gateway  services.Gateway
	session  *services.SessionManager
	logger   *log.Logger
	orch     *recstate.Orchestrator
	store    *recstate.WatchlistStore
	notifier *recstate.Notifier

	view      ViewState
	token     string
	threshold float64
	profiles  []models.Profile

	width   int
	height  int
	recList list.Model
	detail  *models.ShowDetail
	err     error
	help    help.Model
	keys    keyMap
}

type sessionReadyMsg struct {
	token     string
	threshold float64
	profiles  []models.Profile
	err       error
}

type recsResolvedMsg struct {
	ticket recstate.FetchTicket
	items  []models.RecommendationItem
	err    error
}

type watchlistLoadedMsg struct {
	err error
}

type watchlistToggledMsg struct {
	showID string
	added  bool
	err    error
}

type ratedMsg struct {
	title string
	label string
	err   error
}

type detailFetchedMsg struct {
	detail *models.ShowDetail
	err    error
}

type notifyFadeMsg struct{ seq int }
type notifyClearMsg struct{ seq int }

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, gateway services.Gateway, session *services.SessionManager, logger *log.Logger) *Model {
	return &Model{
		ctx:       ctx,
		gateway:   gateway,
		session:   session,
		logger:    logger,
		orch:      recstate.NewOrchestrator(recstate.DefaultQuery()),
		store:     recstate.NewWatchlistStore(gateway),
		notifier:  recstate.NewNotifier(),
		threshold: recstate.DefaultCoverageThreshold,
		view:      BrowseView,
		recList:   list.New(nil, list.NewDefaultDelegate(), 0, 0),
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init acquires the session and discovers server settings.
func (m *Model) Init() tea.Cmd {
	return m.acquireSession()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recList.SetSize(msg.Width-4, msg.Height-10)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case BrowseView:
			return m.handleBrowseKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		}

	case sessionReadyMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.token = msg.token
		m.threshold = msg.threshold
		m.profiles = msg.profiles
		ticket := m.orch.Start()
		return m, tea.Batch(m.fetchRecs(ticket), m.loadWatchlist())

	case recsResolvedMsg:
		if !m.orch.Resolve(msg.ticket, msg.items, msg.err) {
			return m, nil
		}
		if msg.err != nil {
			m.logger.Error("fetch failed", "error", msg.err)
			return m, m.notify("Couldn't refresh recommendations")
		}
		m.syncList()
		return m, nil

	case watchlistLoadedMsg:
		if msg.err != nil {
			m.logger.Error("watchlist load failed", "error", msg.err)
			return m, m.notify("Couldn't load watchlist")
		}
		m.syncList()
		return m, nil

	case watchlistToggledMsg:
		if msg.err != nil {
			return m, m.notify("Watchlist update failed")
		}
		m.syncList()
		// A committed watchlist change may alter server-side eligibility,
		// so the current query context is re-fetched like any other mutation.
		ticket := m.orch.Invalidate()
		message := "Removed from watchlist"
		if msg.added {
			message = "Added to watchlist"
		}
		return m, tea.Batch(m.notify(message), m.fetchRecs(ticket))

	case ratedMsg:
		if msg.err != nil {
			return m, m.notify("Rating failed")
		}
		ticket := m.orch.Invalidate()
		return m, tea.Batch(
			m.notify(fmt.Sprintf("Rated %s: %s", msg.title, strings.ToLower(msg.label))),
			m.fetchRecs(ticket),
		)

	case detailFetchedMsg:
		if msg.err != nil {
			return m, m.notify("Couldn't load show details")
		}
		m.detail = msg.detail
		m.view = DetailView
		return m, nil

	case notifyFadeMsg:
		m.notifier.Fade(msg.seq)
		return m, nil

	case notifyClearMsg:
		m.notifier.Clear(msg.seq)
		return m, nil
	}

	var cmd tea.Cmd
	m.recList, cmd = m.recList.Update(msg)
	return m, cmd
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case BrowseView:
		return m.renderBrowse()
	case DetailView:
		return m.renderDetail()
	default:
		return ""
	}
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.profile):
		next := nextProfile(m.orch.Query().Profile)
		if ticket, ok := m.orch.SetProfile(next); ok {
			return m, tea.Batch(m.fetchRecs(ticket), m.loadWatchlist())
		}
		return m, nil

	case key.Matches(msg, m.keys.intent):
		next := nextIntent(m.orch.Query().Intent)
		if ticket, ok := m.orch.SetIntent(next); ok {
			return m, m.fetchRecs(ticket)
		}
		return m, nil

	case key.Matches(msg, m.keys.anchor):
		if item, ok := m.selectedItem(); ok {
			if ticket, changed := m.orch.SetAnchor(item.ID); changed {
				return m, m.fetchRecs(ticket)
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.back):
		if ticket, ok := m.orch.ClearAnchor(); ok {
			return m, m.fetchRecs(ticket)
		}
		return m, nil

	case key.Matches(msg, m.keys.shuffle):
		seed := rand.Intn(10000)
		if ticket, ok := m.orch.SetSeed(&seed); ok {
			return m, m.fetchRecs(ticket)
		}
		return m, nil

	case key.Matches(msg, m.keys.refresh):
		return m, m.fetchRecs(m.orch.Invalidate())

	case key.Matches(msg, m.keys.watchlist):
		if item, ok := m.selectedItem(); ok {
			return m, m.toggleWatchlist(item.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.detail):
		if item, ok := m.selectedItem(); ok {
			return m, m.fetchDetail(item.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.rateBad):
		return m, m.rateSelected(models.RatingBad, models.PredictionBad)
	case key.Matches(msg, m.keys.rateOK):
		return m, m.rateSelected(models.RatingAcceptable, models.PredictionAcceptable)
	case key.Matches(msg, m.keys.rateGood):
		return m, m.rateSelected(models.RatingVeryGood, models.PredictionVeryGood)
	}

	var cmd tea.Cmd
	m.recList, cmd = m.recList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.detail = nil
		m.view = BrowseView
		return m, nil
	}
	return m, nil
}

func (m *Model) selectedItem() (models.RecommendationItem, bool) {
	selected := m.recList.SelectedItem()
	if selected == nil {
		return models.RecommendationItem{}, false
	}
	item, ok := selected.(recItem)
	if !ok {
		return models.RecommendationItem{}, false
	}
	return item.item, true
}

// syncList rebuilds list items from the committed batch and current
// watchlist membership.
func (m *Model) syncList() {
	batch := m.orch.Batch()
	items := make([]list.Item, len(batch))
	for i, rec := range batch {
		items[i] = recItem{item: rec, onWatchlist: m.store.Has(rec.ID)}
	}
	m.recList.SetItems(items)
	m.recList.Title = m.listTitle()
}

func (m *Model) listTitle() string {
	q := m.orch.Query()
	title := fmt.Sprintf("Tonight's picks • %s • %s", q.Profile, q.Intent)
	if q.AnchorID != "" {
		title += fmt.Sprintf(" • like %s", q.AnchorID)
	}
	return title
}

func (m *Model) acquireSession() tea.Cmd {
	return func() tea.Msg {
		token, err := m.session.Acquire(m.ctx)
		if err != nil {
			return sessionReadyMsg{err: err}
		}

		threshold := recstate.DefaultCoverageThreshold
		if health, err := m.gateway.Health(m.ctx); err == nil && health.FamilyCoverageMinFit != nil {
			threshold = *health.FamilyCoverageMinFit
		}

		profiles, err := m.gateway.Profiles(m.ctx, token)
		if err != nil {
			m.logger.Warn("profile listing failed", "error", err)
		}

		return sessionReadyMsg{token: token, threshold: threshold, profiles: profiles}
	}
}

func (m *Model) fetchRecs(ticket recstate.FetchTicket) tea.Cmd {
	return func() tea.Msg {
		items, err := m.gateway.Recommendations(m.ctx, ticket.Query.Query(), m.token)
		return recsResolvedMsg{ticket: ticket, items: items, err: err}
	}
}

func (m *Model) loadWatchlist() tea.Cmd {
	profileID := recstate.ResolveProfileID(m.profiles, m.orch.Query().Profile)
	return func() tea.Msg {
		return watchlistLoadedMsg{err: m.store.Load(m.ctx, profileID, m.token)}
	}
}

func (m *Model) toggleWatchlist(showID string) tea.Cmd {
	onList := m.store.Has(showID)
	return func() tea.Msg {
		if onList {
			return watchlistToggledMsg{showID: showID, added: false, err: m.store.Remove(m.ctx, showID, m.token)}
		}
		return watchlistToggledMsg{showID: showID, added: true, err: m.store.Add(m.ctx, showID, m.token)}
	}
}

func (m *Model) rateSelected(value int, label string) tea.Cmd {
	item, ok := m.selectedItem()
	if !ok {
		return nil
	}
	profileID := recstate.ResolveProfileID(m.profiles, m.orch.Query().Profile)
	return func() tea.Msg {
		rating := models.Rating{ProfileID: profileID, ShowID: item.ID, Primary: value}
		err := m.gateway.PostRating(m.ctx, rating, m.token)
		return ratedMsg{title: item.Title, label: label, err: err}
	}
}

func (m *Model) fetchDetail(showID string) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.gateway.Show(m.ctx, showID)
		return detailFetchedMsg{detail: detail, err: err}
	}
}

// notify shows a message and schedules its fade and clear transitions. The
// sequence number rides on the tick messages so a superseded message's
// timers land as no-ops.
func (m *Model) notify(message string) tea.Cmd {
	seq := m.notifier.Show(message)
	return tea.Batch(
		tea.Tick(recstate.NotifyFadeDelay, func(time.Time) tea.Msg { return notifyFadeMsg{seq: seq} }),
		tea.Tick(recstate.NotifyClearDelay, func(time.Time) tea.Msg { return notifyClearMsg{seq: seq} }),
	)
}

func (m *Model) renderBrowse() string {
	var b strings.Builder

	b.WriteString(m.recList.View())

	if banner := m.coverageBanner(); banner != "" {
		b.WriteString("\n" + banner)
	}

	switch m.orch.State() {
	case recstate.StateLoading:
		b.WriteString("\n" + styles.help.Render("Loading..."))
	case recstate.StateError:
		b.WriteString("\n" + styles.err.Render("Last refresh failed; showing previous results"))
	}

	if note, ok := m.notifier.Current(); ok {
		line := note.Message
		if m.notifier.Fading() {
			b.WriteString("\n" + styles.help.Render(line))
		} else {
			b.WriteString("\n" + styles.ok.Render(line))
		}
	}

	helpKeys := []key.Binding{m.keys.anchor, m.keys.profile, m.keys.intent, m.keys.watchlist, m.keys.quit}
	b.WriteString("\n\n" + m.help.ShortHelpView(helpKeys))
	return b.String()
}

// coverageBanner summarizes family fit when browsing the aggregate profile.
// The strong-pick line reflects the server's per-item signal and renders
// independently of the threshold coverage summary.
func (m *Model) coverageBanner() string {
	if m.orch.Query().Profile != recstate.ProfileFamily || len(m.orch.Batch()) == 0 {
		return ""
	}

	var lines []string
	if recstate.HasStrongPick(m.orch.Batch()) {
		lines = append(lines, styles.ok.Render("Strong family pick available"))
	} else {
		lines = append(lines, styles.warn.Render("No standout family pick"))
	}

	cov := recstate.ComputeCoverage(m.orch.Batch(), m.threshold)
	if cov.Covered() {
		lines = append(lines, styles.ok.Render("Something for everyone tonight"))
	} else {
		var missing []string
		for _, member := range recstate.FamilyMembers {
			if !cov.PerMember[member] {
				missing = append(missing, member)
			}
		}
		lines = append(lines, styles.warn.Render(fmt.Sprintf("Not much here for %s", strings.Join(missing, ", "))))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderDetail() string {
	if m.detail == nil {
		return styles.err.Render("No show selected\n\nPress esc to go back")
	}

	title := m.detail.Title
	if m.detail.YearStart != nil {
		title = fmt.Sprintf("%s (%d)", title, *m.detail.YearStart)
	}

	var b strings.Builder
	b.WriteString(styles.title.Render(title) + "\n")

	if len(m.detail.Warnings) > 0 {
		b.WriteString(styles.warn.Render("Warnings: "+strings.Join(m.detail.Warnings, ", ")) + "\n")
	}
	if len(m.detail.Flags) > 0 {
		b.WriteString(fmt.Sprintf("Flags: %s\n", strings.Join(m.detail.Flags, ", ")))
	}

	b.WriteString("\nAvailability:\n")
	if len(m.detail.Availability) == 0 {
		b.WriteString(styles.help.Render("  not currently streaming") + "\n")
	}
	for _, offer := range m.detail.Availability {
		line := fmt.Sprintf("  %s (%s)", offer.Platform, offer.OfferType)
		if offer.LeavingAt != nil {
			line += styles.warn.Render(fmt.Sprintf(" leaving %s", *offer.LeavingAt))
		}
		b.WriteString(line + "\n")
	}

	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	b.WriteString("\n" + m.help.ShortHelpView(helpKeys))
	return b.String()
}

func nextProfile(current recstate.Profile) recstate.Profile {
	for i, p := range recstate.Profiles {
		if p == current {
			return recstate.Profiles[(i+1)%len(recstate.Profiles)]
		}
	}
	return recstate.Profiles[0]
}

func nextIntent(current recstate.Intent) recstate.Intent {
	for i, in := range recstate.Intents {
		if in == current {
			return recstate.Intents[(i+1)%len(recstate.Intents)]
		}
	}
	return recstate.Intents[0]
}

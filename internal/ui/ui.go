package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tix/internal/cart"
	"github.com/desertthunder/tix/internal/formatter"
	"github.com/desertthunder/tix/internal/services"
	"github.com/desertthunder/tix/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	MovieListView ViewState = iota
	SessionListView
	SeatSelectionView
	ConfirmView
	BookingView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx           context.Context
	view          ViewState
	api           tasks.BookingAPI
	engine        *tasks.BookingEngine
	authenticated func() bool
	width         int
	height        int
	movieList     list.Model
	movies        []services.Movie
	sessionList   list.Model
	selectedMovie *services.MovieDetail
	seatList      list.Model
	seatPlan      *services.SessionDetail
	selectedSeats map[string]services.SessionSlot
	progressChan  chan tasks.ProgressUpdate
	progress      tasks.ProgressUpdate
	result        *tasks.CheckoutResult
	err           error
	help          help.Model
	keys          keyMap
}

type moviesFetchedMsg struct {
	movies []services.Movie
	err    error
}

type showtimesFetchedMsg struct {
	movie *services.MovieDetail
	err   error
}

type seatPlanFetchedMsg struct {
	session *services.SessionDetail
	err     error
}

type progressUpdateMsg tasks.ProgressUpdate

type bookingCompleteMsg struct {
	result *tasks.CheckoutResult
	err    error
}

// NewModel creates a new TUI model with the provided dependencies.
//
// The authenticated callback gates checkout: anonymous users can browse
// and build a cart but not commit it.
func NewModel(ctx context.Context, api tasks.BookingAPI, engine *tasks.BookingEngine, authenticated func() bool) *Model {
	if authenticated == nil {
		authenticated = func() bool { return false }
	}
	return &Model{
		ctx:           ctx,
		view:          MovieListView,
		api:           api,
		engine:        engine,
		authenticated: authenticated,
		selectedSeats: map[string]services.SessionSlot{},
		help:          help.New(),
		keys:          newKeyMap(),
	}
}

// Init initializes the TUI by fetching the movie catalog.
func (m *Model) Init() tea.Cmd {
	return m.fetchMovies()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.movieList.Width() == 0 {
			m.movieList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.sessionList.Width() == 0 {
			m.sessionList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.seatList.Width() == 0 {
			m.seatList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case MovieListView:
			return m.handleMovieListKeys(msg)
		case SessionListView:
			return m.handleSessionListKeys(msg)
		case SeatSelectionView:
			return m.handleSeatSelectionKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case moviesFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.movies = msg.movies
		items := make([]list.Item, len(msg.movies))
		for i, movie := range msg.movies {
			items[i] = movieItem{movie: movie}
		}
		m.movieList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.movieList.Title = "Now Showing"
		m.movieList.SetSize(m.width-4, m.height-8)
		return m, nil

	case showtimesFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = MovieListView
			return m, nil
		}
		m.selectedMovie = msg.movie
		items := make([]list.Item, len(msg.movie.Sessions))
		for i, session := range msg.movie.Sessions {
			items[i] = showtimeItem{showtime: session}
		}
		m.sessionList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.sessionList.Title = fmt.Sprintf("Showtimes for '%s'", msg.movie.Title)
		m.sessionList.SetSize(m.width-4, m.height-8)
		m.view = SessionListView
		return m, nil

	case seatPlanFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = SessionListView
			return m, nil
		}
		m.seatPlan = msg.session
		m.selectedSeats = map[string]services.SessionSlot{}
		items := make([]list.Item, 0, len(msg.session.Slots))
		for _, slot := range msg.session.Slots {
			if slot.Status != services.SlotFree {
				continue
			}
			items = append(items, seatItem{slot: slot})
		}
		m.seatList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.seatList.Title = fmt.Sprintf("Seats - hall %s", msg.session.Hall)
		m.seatList.SetSize(m.width-4, m.height-8)
		m.view = SeatSelectionView
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case bookingCompleteMsg:
		m.result = msg.result
		m.err = msg.err
		m.view = ResultView
		if m.progressChan != nil {
			m.progressChan = nil
		}
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case MovieListView:
		return m.renderMovieList()
	case SessionListView:
		return m.renderSessionList()
	case SeatSelectionView:
		return m.renderSeatSelection()
	case ConfirmView:
		return m.renderConfirm()
	case BookingView:
		return m.renderBooking()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleMovieListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		selected := m.movieList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(movieItem); ok {
				return m, m.fetchShowtimes(item.movie.ID)
			}
		}
	}

	var cmd tea.Cmd
	m.movieList, cmd = m.movieList.Update(msg)
	return m, cmd
}

func (m *Model) handleSessionListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = MovieListView
		return m, nil
	case "enter":
		selected := m.sessionList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(showtimeItem); ok {
				return m, m.fetchSeatPlan(item.showtime.ID)
			}
		}
	}

	var cmd tea.Cmd
	m.sessionList, cmd = m.sessionList.Update(msg)
	return m, cmd
}

func (m *Model) handleSeatSelectionKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = SessionListView
		return m, nil
	case "enter":
		idx := m.seatList.Index()
		selected := m.seatList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(seatItem); ok {
				if item.selected {
					delete(m.selectedSeats, item.slot.ID)
				} else {
					m.selectedSeats[item.slot.ID] = item.slot
				}
				item.selected = !item.selected
				m.syncCart()
				return m, m.seatList.SetItem(idx, item)
			}
		}
	case "c":
		if len(m.selectedSeats) == 0 {
			return m, nil
		}
		m.syncCart()
		m.view = ConfirmView
		return m, nil
	}

	var cmd tea.Cmd
	m.seatList, cmd = m.seatList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n":
		m.view = SeatSelectionView
		return m, nil
	case "y":
		if !m.authenticated() {
			m.err = fmt.Errorf("sign in required: run `tix auth login` and try again")
			return m, nil
		}
		m.view = BookingView
		return m, m.startBooking()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.view = MovieListView
		m.selectedMovie = nil
		m.seatPlan = nil
		m.selectedSeats = map[string]services.SessionSlot{}
		m.result = nil
		m.err = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case MovieListView:
		m.movieList, cmd = m.movieList.Update(msg)
	case SessionListView:
		m.sessionList, cmd = m.sessionList.Update(msg)
	case SeatSelectionView:
		m.seatList, cmd = m.seatList.Update(msg)
	}
	return m, cmd
}

// syncCart replaces the cart's seat selection with the current toggles.
func (m *Model) syncCart() {
	seats := make([]cart.SeatSelection, 0, len(m.selectedSeats))
	for _, slot := range m.selectedSeats {
		seats = append(seats, cart.SeatSelection{SeatID: slot.ID, Price: slot.Price})
	}
	m.engine.Cart().SetSelectedSeats(seats)
}

func (m *Model) fetchMovies() tea.Cmd {
	return func() tea.Msg {
		movies, err := m.api.Movies(m.ctx)
		return moviesFetchedMsg{movies: movies, err: err}
	}
}

func (m *Model) fetchShowtimes(movieID string) tea.Cmd {
	return func() tea.Msg {
		movie, err := m.api.Movie(m.ctx, movieID)
		return showtimesFetchedMsg{movie: movie, err: err}
	}
}

func (m *Model) fetchSeatPlan(sessionID string) tea.Cmd {
	return func() tea.Msg {
		session, err := m.engine.LoadSeatPlan(m.ctx, sessionID)
		return seatPlanFetchedMsg{session: session, err: err}
	}
}

func (m *Model) startBooking() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)

	go func() {
		result, err := m.engine.Checkout(m.ctx, m.progressChan)
		m.result = result
		m.err = err
		close(m.progressChan)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return bookingCompleteMsg{result: m.result, err: m.err}
		}

		update, ok := <-m.progressChan
		if !ok {
			return bookingCompleteMsg{result: m.result, err: m.err}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderMovieList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.movieList.View(), helpView)
}

func (m *Model) renderSessionList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.sessionList.View(), helpView)
}

func (m *Model) renderSeatSelection() string {
	toggleKey := key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "toggle"),
	)
	helpKeys := []key.Binding{toggleKey, m.keys.checkout, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	var status string
	if len(m.selectedSeats) == 0 {
		status = styles.warn.Render("no seats selected")
	} else {
		total := m.engine.Cart().TotalAmount()
		status = styles.help.Render(fmt.Sprintf("%d seat(s) selected • running total %s", len(m.selectedSeats), total))
	}
	return fmt.Sprintf("%s\n%s\n\n%s", m.seatList.View(), status, helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render("Confirm reservation?")
	summary := formatter.FormatCart(m.engine.Cart())

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, summary, helpView)
}

func (m *Model) renderBooking() string {
	title := styles.title.Render("Booking Seats")

	var phase string
	switch m.progress.Phase {
	case tasks.ValidateCart:
		phase = "Validating cart..."
	case tasks.CommitSeats:
		phase = fmt.Sprintf("Reserving seats (%d/%d)", m.progress.Step, m.progress.Total)
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Booking failed: %v\n\nPress r to start over, q to quit", m.err))
	}

	if m.result == nil {
		return styles.err.Render("No result available\n\nPress r to start over, q to quit")
	}

	title := styles.ok.Render("✓ Reservation Confirmed!")
	info := fmt.Sprintf(
		"\nSession: %s\nSeats: %d\nTotal: %s",
		m.result.SessionID,
		len(m.result.Seats),
		m.result.TotalAmount,
	)

	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s", title, info, helpView)
}

package tui

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/catalog-browser/internal/catalog"
	appErrors "github.com/aaravmahajanofficial/catalog-browser/internal/errors"
	"github.com/aaravmahajanofficial/catalog-browser/internal/models"
	repository "github.com/aaravmahajanofficial/catalog-browser/internal/repositories"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const helpText = "/ search • c category • p price • r rating • s in stock • ←/→ page • x reset • q quit"

var (
	priceCycle  = []catalog.SortOrder{catalog.SortNone, catalog.SortPriceAsc, catalog.SortPriceDesc}
	ratingCycle = []catalog.RatingSort{catalog.RatingNone, catalog.RatingDesc, catalog.RatingAsc}
)

type productsLoadedMsg struct{ products []models.Product }

type fetchFailedMsg struct{ err error }

type searchSettledMsg struct{ term string }

// Options tune a Model.
type Options struct {
	PerPage int
	// Debounce delays search recomputation; zero recomputes on every keystroke.
	Debounce time.Duration
	Logger   *slog.Logger
}

// Model is the bubbletea model of one catalog view. It fetches the batch once on Init and
// then only runs the pure pipeline.
type Model struct {
	repo   repository.ProductRepository
	ctx    context.Context
	cancel context.CancelFunc
	logger *slog.Logger

	products   []models.Product
	categories []string
	state      catalog.State
	result     catalog.Result

	loading bool
	err     string

	search    textinput.Model
	debouncer *Debouncer

	width  int
	height int
	styles Styles
}

// New returns a model whose fetch is bound to a child of ctx. Call Close when the program exits.
func New(ctx context.Context, repo repository.ProductRepository, opts Options) Model {
	ctx, cancel := context.WithCancel(ctx)

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	search := textinput.New()
	search.Placeholder = "Search by Name"
	search.Prompt = "Search: "
	search.CharLimit = 200

	m := Model{
		repo:    repo,
		ctx:     ctx,
		cancel:  cancel,
		logger:  logger,
		state:   catalog.NewState(opts.PerPage),
		loading: true,
		search:  search,
		styles:  DefaultStyles(),
	}

	if opts.Debounce > 0 {
		m.debouncer = NewDebouncer(opts.Debounce)
	}

	return m
}

func (m Model) Init() tea.Cmd {
	return m.fetch()
}

func (m Model) fetch() tea.Cmd {
	repo, ctx, logger := m.repo, m.ctx, m.logger

	return func() tea.Msg {
		start := time.Now()

		products, err := repo.ListProducts(ctx)
		if err != nil {
			logger.Error("Failed to fetch products", slog.String("error", err.Error()))
			return fetchFailedMsg{err: err}
		}

		logger.Info("Fetched products", slog.Int("count", len(products)), slog.Duration("duration", time.Since(start)))
		return productsLoadedMsg{products: products}
	}
}

// Close cancels an in-flight fetch and releases pending debounced searches.
func (m Model) Close() {
	m.cancel()
	if m.debouncer != nil {
		m.debouncer.Stop()
	}
}

// State is the current control state.
func (m Model) State() catalog.State { return m.state }

// Result is the pipeline output for the current state.
func (m Model) Result() catalog.Result { return m.result }

// Err is the fetch failure message, or "".
func (m Model) Err() string { return m.err }

func (m Model) Loading() bool { return m.loading }

func (m Model) Searching() bool { return m.search.Focused() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case productsLoadedMsg:
		m.loading = false
		m.products = catalog.Normalize(msg.products)
		m.categories = catalog.Categories(m.products)
		m.result = catalog.Apply(m.products, m.state)
		return m, nil

	case fetchFailedMsg:
		m.loading = false
		if appErr, ok := appErrors.IsAppError(msg.err); ok {
			m.err = appErr.Message
		} else {
			m.err = msg.err.Error()
		}
		return m, nil

	case searchSettledMsg:
		if msg.term == m.search.Value() {
			m = m.dispatch(catalog.SetSearch{Term: msg.term})
		}
		return m, nil

	case tea.KeyMsg:
		if m.search.Focused() {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.Close()
		return m, tea.Quit
	}

	// controls stay inert until the batch is in, and forever after a failed fetch
	if m.loading || m.err != "" {
		return m, nil
	}

	switch msg.String() {
	case "/":
		cmd := m.search.Focus()
		return m, cmd
	case "c":
		m = m.dispatch(catalog.SetCategory{Category: next(append([]string{""}, m.categories...), m.state.Category)})
	case "p":
		m = m.dispatch(catalog.SetPriceSort{Order: next(priceCycle, m.state.PriceSort)})
	case "r":
		m = m.dispatch(catalog.SetRatingSort{Order: next(ratingCycle, m.state.RatingSort)})
	case "s":
		m = m.dispatch(catalog.SetInStockOnly{Enabled: !m.state.InStockOnly})
	case "right", "l":
		m = m.dispatch(catalog.NextPage{TotalPages: m.result.TotalPages})
	case "left", "h":
		m = m.dispatch(catalog.PrevPage{})
	case "x":
		m.search.SetValue("")
		m = m.dispatch(catalog.Reset{})
	}

	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.Close()
		return m, tea.Quit
	case tea.KeyEsc, tea.KeyEnter:
		m.search.Blur()
		if m.debouncer != nil {
			m.debouncer.Cancel()
		}
		m = m.dispatch(catalog.SetSearch{Term: m.search.Value()})
		return m, nil
	}

	before := m.search.Value()

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	term := m.search.Value()
	if term == before {
		return m, cmd
	}

	if m.debouncer == nil {
		m = m.dispatch(catalog.SetSearch{Term: term})
		return m, cmd
	}

	return m, tea.Batch(cmd, m.debouncer.Debounce(searchSettledMsg{term: term}))
}

func (m Model) dispatch(ev catalog.Event) Model {
	m.state = catalog.Reduce(m.state, ev)
	m.result = catalog.Apply(m.products, m.state)
	m.logger.Debug("Applied catalog event", slog.String("event", catalog.EventType(ev)), slog.Int("matches", m.result.Total))

	return m
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render("Our Product"))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Subtitle.Render("Explore Our Product"))
	sb.WriteString("\n\n")

	// a failed fetch replaces the product view, the header stays
	if m.err != "" {
		msg := m.styles.Error.Render(m.err)
		if m.width > 0 {
			msg = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, msg)
		}
		sb.WriteString(msg)
		sb.WriteString("\n")
		return sb.String()
	}

	if m.loading {
		sb.WriteString(m.styles.Muted.Render("Loading products..."))
		sb.WriteString("\n")
		return sb.String()
	}

	sb.WriteString(m.controls())
	sb.WriteString("\n")
	sb.WriteString(m.search.View())
	sb.WriteString("\n\n")
	sb.WriteString(RenderPage(m.result, m.styles))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render(helpText))
	sb.WriteString("\n")

	return sb.String()
}

func (m Model) controls() string {
	category := "All Categories"
	if m.state.Category != "" {
		category = m.state.Category
	}

	price := "Default"
	switch m.state.PriceSort {
	case catalog.SortPriceAsc:
		price = "Low to High"
	case catalog.SortPriceDesc:
		price = "High to Low"
	}

	rating := "Default"
	switch m.state.RatingSort {
	case catalog.RatingDesc:
		rating = "High to Low"
	case catalog.RatingAsc:
		rating = "Low to High"
	}

	stock := "[ ]"
	if m.state.InStockOnly {
		stock = "[x]"
	}

	parts := []string{
		m.styles.Bold.Render("Category: ") + category,
		m.styles.Bold.Render("Price: ") + price,
		m.styles.Bold.Render("Rating: ") + rating,
		stock + " In stock only",
	}

	return strings.Join(parts, m.styles.Muted.Render("  |  "))
}

// next returns the element after cur in options, wrapping around.
func next[T comparable](options []T, cur T) T {
	i := slices.Index(options, cur)
	return options[(i+1)%len(options)]
}

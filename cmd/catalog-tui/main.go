package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaravmahajanofficial/catalog-browser/internal/catalog"
	"github.com/aaravmahajanofficial/catalog-browser/internal/config"
	appErrors "github.com/aaravmahajanofficial/catalog-browser/internal/errors"
	repository "github.com/aaravmahajanofficial/catalog-browser/internal/repositories"
	"github.com/aaravmahajanofficial/catalog-browser/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/spf13/cobra"
)

// settings holds the environment defaults; flags override them.
type settings struct {
	Source  config.Source
	Catalog config.Catalog
}

var (
	cfg     settings
	logFile string
	logger  *slog.Logger
	logSink io.Closer

	// list filters
	category   string
	search     string
	inStock    bool
	priceSort  string
	ratingSort string
	page       int
)

var rootCmd = &cobra.Command{
	Use:   "catalog-tui",
	Short: "Browse the product catalog from the terminal",
	Long: `catalog-tui fetches one batch of products and lets you filter, sort and page
through it locally.

Run without arguments to start the interactive browser.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Source.Limit <= 0 {
			return fmt.Errorf("--limit must be positive, got %d", cfg.Source.Limit)
		}
		if cfg.Catalog.ItemsPerPage <= 0 {
			return fmt.Errorf("--per-page must be positive, got %d", cfg.Catalog.ItemsPerPage)
		}

		// the terminal belongs to the UI, so logs go to a file or nowhere
		var w io.Writer = io.Discard
		if logFile != "" {
			f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("failed to open log file: %w", err)
			}
			w, logSink = f, f
		}

		logger = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
		slog.SetDefault(logger)

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logSink == nil {
			return nil
		}
		return logSink.Close()
	},
	RunE: runBrowse,
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Start the interactive catalog browser",
	RunE:  runBrowse,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print one page of the catalog and exit",
	Example: `  catalog-tui list --category beauty --price-sort asc
  catalog-tui list --search lip --in-stock --page 2`,
	RunE: runList,
}

func init() {
	// environment first, so flag defaults reflect SOURCE_* and ITEMS_PER_PAGE
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "invalid environment: %v\n", err)
		os.Exit(1)
	}

	rootCmd.PersistentFlags().StringVar(&cfg.Source.BaseURL, "base-url", cfg.Source.BaseURL, "Products API base URL")
	rootCmd.PersistentFlags().IntVar(&cfg.Source.Limit, "limit", cfg.Source.Limit, "Number of products to fetch")
	rootCmd.PersistentFlags().DurationVar(&cfg.Source.Timeout, "timeout", cfg.Source.Timeout, "Fetch timeout (0 uses the 10s default)")
	rootCmd.PersistentFlags().IntVar(&cfg.Catalog.ItemsPerPage, "per-page", cfg.Catalog.ItemsPerPage, "Products per page")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file")

	for _, cmd := range []*cobra.Command{rootCmd, browseCmd} {
		cmd.Flags().DurationVar(&cfg.Catalog.SearchDebounce, "debounce", cfg.Catalog.SearchDebounce, "Delay search recomputation while typing (0 disables)")
	}

	listCmd.Flags().StringVar(&category, "category", "", "Only show this category")
	listCmd.Flags().StringVar(&search, "search", "", "Case-insensitive title search")
	listCmd.Flags().BoolVar(&inStock, "in-stock", false, "Only show products in stock")
	listCmd.Flags().StringVar(&priceSort, "price-sort", "", "Sort by price: asc or desc")
	listCmd.Flags().StringVar(&ratingSort, "rating-sort", "", "Sort by rating: sortRatingAsc or sortRatingDesc")
	listCmd.Flags().IntVar(&page, "page", 1, "Page to print")

	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(listCmd)
}

func newRepo() repository.ProductRepository {
	return repository.NewProductRepo(repository.NewHTTPClient(), cfg.Source.ProductsURL(), cfg.Source.Timeout)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	model := tui.New(ctx, newRepo(), tui.Options{
		PerPage:  cfg.Catalog.ItemsPerPage,
		Debounce: cfg.Catalog.SearchDebounce,
		Logger:   logger,
	})
	defer model.Close()

	logger.Info("Starting catalog browser", slog.String("url", cfg.Source.ProductsURL()))

	_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("catalog browser failed: %w", err)
	}

	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	events, err := listEvents()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	products, err := newRepo().ListProducts(ctx)
	if err != nil {
		logger.Error("Failed to fetch products", slog.String("error", err.Error()))
		if appErr, ok := appErrors.IsAppError(err); ok {
			return fmt.Errorf("%s", appErr.Message)
		}
		return err
	}
	logger.Info("Fetched products", slog.Int("count", len(products)), slog.Duration("duration", time.Since(start)))

	state := catalog.NewState(cfg.Catalog.ItemsPerPage)
	for _, ev := range events {
		state = catalog.Reduce(state, ev)
	}

	res := catalog.Apply(catalog.Normalize(products), state)
	_, err = fmt.Fprint(cmd.OutOrStdout(), tui.RenderPage(res, tui.DefaultStyles()))

	return err
}

// listEvents turns the list flags into reducer events, in the order the controls apply.
func listEvents() ([]catalog.Event, error) {
	price, ok := catalog.ParseSortOrder(priceSort)
	if !ok {
		return nil, fmt.Errorf("--price-sort must be asc or desc, got %q", priceSort)
	}

	rating, ok := catalog.ParseRatingSort(ratingSort)
	if !ok {
		return nil, fmt.Errorf("--rating-sort must be sortRatingAsc or sortRatingDesc, got %q", ratingSort)
	}

	if page < 1 {
		return nil, fmt.Errorf("--page must be at least 1, got %d", page)
	}

	return []catalog.Event{
		catalog.SetCategory{Category: category},
		catalog.SetSearch{Term: search},
		catalog.SetInStockOnly{Enabled: inStock},
		catalog.SetPriceSort{Order: price},
		catalog.SetRatingSort{Order: rating},
		catalog.GoToPage{Page: page},
	}, nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

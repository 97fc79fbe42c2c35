package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/companyintel"
	"github.com/fwojciec/companyintel/anthropic"
	"github.com/fwojciec/companyintel/crawl"
	"github.com/fwojciec/companyintel/fs"
	"github.com/fwojciec/companyintel/gemini"
	"github.com/fwojciec/companyintel/goquery"
	"github.com/fwojciec/companyintel/htmltomarkdown"
	cihttp "github.com/fwojciec/companyintel/http"
	"github.com/fwojciec/companyintel/inmem"
	"github.com/fwojciec/companyintel/readability"
	"github.com/fwojciec/companyintel/report"
	"github.com/fwojciec/companyintel/rod"
	cislog "github.com/fwojciec/companyintel/slog"
	"github.com/fwojciec/companyintel/sqlite"
	"github.com/fwojciec/companyintel/trafilatura"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
	"gopkg.in/yaml.v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := LoadDotEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used for report history and the sqlite cache.
	DB *sqlite.DB

	// Getenv looks up API keys. Defaults to os.Getenv.
	Getenv func(string) string

	// Collaborators for end-to-end testing. When nil, Run builds them
	// from flags and environment.
	Fetcher   companyintel.Fetcher
	Completer companyintel.Completer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Getenv: os.Getenv}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("companyintel"),
		kong.Description("Generate company intelligence reports from company websites."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fail(stderr, fmt.Errorf("no command specified. Run 'companyintel --help' to see available commands"))
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return fail(stderr, err)
	}
	command := kongCtx.Command()

	logger := newLogger(stderr, cli.Verbose)
	defer m.Close()

	needsDB := cli.Cache == "sqlite" || command != "links <url>"
	if needsDB {
		path := cli.DB
		if path == "" {
			path = defaultDBPath()
		}
		m.DB = sqlite.NewDB(path)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintln(stderr, "Hint: Set COMPANYINTEL_DB to use a different database path")
			return fail(stderr, fmt.Errorf("failed to open database at %q: %w", path, err))
		}
		deps.History = cislog.NewLoggingReportStore(sqlite.NewReportStore(m.DB), logger)
	}

	if command == "history" {
		return kongCtx.Run(deps)
	}

	cache, err := m.openCache(&cli.Globals, logger)
	if err != nil {
		return fail(stderr, err)
	}

	extractor, err := newExtractor(cli.Extractor)
	if err != nil {
		return fail(stderr, err)
	}

	targetURL := cli.Links.URL
	if command == "report <name> <url>" {
		targetURL = cli.Report.URL
	}
	fetcher, closeFetchers, err := m.fetcher(ctx, &cli.Globals, targetURL, extractor, logger)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --browser and --probe")
		return fail(stderr, fmt.Errorf("failed to start browser: %w", err))
	}
	defer closeFetchers()

	scraper := &crawl.Scraper{
		Fetcher:       cislog.NewLoggingFetcher(fetcher, logger),
		Extractor:     extractor,
		LinkExtractor: goquery.NewLinkExtractor(),
		MaxChars:      cli.MaxChars,
		RetryDelays:   crawl.BackoffDelays(cli.Retries, crawl.DefaultBaseDelay),
		Logger:        logger,
	}
	pages := cislog.NewLoggingPageFetcher(&crawl.CachedFetcher{
		Next:     scraper,
		Cache:    cache,
		Settings: cli.PageCacheSettings(),
	}, logger)

	fanOut := &crawl.FanOut{
		Fetcher: pages,
		Workers: cli.Workers,
		Logger:  logger,
	}
	if cli.RPS > 0 {
		fanOut.RateLimiter = crawl.NewDomainLimiter(cli.RPS)
	}

	assembler := &report.Assembler{
		PageFetcher: pages,
		FanOut:      fanOut,
		Classifier:  companyintel.NewLinkClassifier(nil),
		ReportCache: cache,
		LinksCache:  cache,
		Reports:     deps.History,
		MaxLinks:    maxLinks(cli.MaxLinks),
		Logger:      logger,
	}
	deps.Links = assembler

	if command == "report <name> <url>" {
		pricing, err := LoadPricing(cli.Pricing)
		if err != nil {
			return fail(stderr, err)
		}

		completer, model, err := m.completer(ctx, &cli.Globals, stderr)
		if err != nil {
			return err
		}

		assembler.Completer = cislog.NewLoggingCompleter(completer, logger)
		assembler.Model = model
		assembler.CacheSettings = cli.ReportCacheSettings(model)
		assembler.Pricing = pricing
		if cli.Verbose {
			if counter, err := gemini.NewTokenCounter(""); err == nil {
				assembler.TokenCounter = counter
			} else {
				logger.Debug("token counter unavailable, estimating", "err", err)
				assembler.TokenCounter = gemini.Estimator{}
			}
		}
		deps.Reports = cislog.NewLoggingReportService(assembler, logger)
	}

	return kongCtx.Run(deps)
}

// openCache returns the cache backend selected by g.Cache.
func (m *Main) openCache(g *Globals, logger *slog.Logger) (companyintel.Cache, error) {
	var cache companyintel.Cache
	switch g.Cache {
	case "memory":
		c := inmem.NewCache()
		c.TTL = g.CacheTTL
		cache = c
	case "file":
		dir := g.CacheDir
		if dir == "" {
			dir = defaultCacheDir()
		}
		c := fs.NewCache(dir)
		c.TTL = g.CacheTTL
		cache = c
	case "sqlite":
		c := sqlite.NewCache(m.DB)
		c.TTL = g.CacheTTL
		cache = c
	default:
		return nil, companyintel.Errorf(companyintel.EINVALID, "unknown cache backend %q", g.Cache)
	}
	return cislog.NewLoggingCache(cache, logger), nil
}

// fetcher returns the raw page fetcher and a function closing every fetcher
// it started: the injected one, headless Chrome with --browser, the better
// of HTTP and Chrome for targetURL with --probe, or plain HTTP.
func (m *Main) fetcher(ctx context.Context, g *Globals, targetURL string, extractor companyintel.Extractor, logger *slog.Logger) (companyintel.Fetcher, func(), error) {
	if m.Fetcher != nil {
		return m.Fetcher, func() { _ = m.Fetcher.Close() }, nil
	}

	httpFetcher := cihttp.NewFetcher(cihttp.WithTimeout(g.Timeout))
	if !g.Browser && !g.Probe {
		return httpFetcher, func() { _ = httpFetcher.Close() }, nil
	}

	browserFetcher, err := rod.NewFetcher(
		rod.WithFetchTimeout(g.Timeout),
		rod.WithTabs(g.Workers),
		rod.WithBin(g.Chrome),
	)
	if err != nil {
		return nil, nil, err
	}
	closeAll := func() {
		_ = browserFetcher.Close()
		_ = httpFetcher.Close()
	}
	if g.Browser {
		return browserFetcher, closeAll, nil
	}

	chosen := crawl.ProbeFetcher(ctx, targetURL, httpFetcher, browserFetcher, extractor)
	logger.Info("probed fetcher", "url", targetURL, "browser", chosen == companyintel.Fetcher(browserFetcher))
	return chosen, closeAll, nil
}

// completer returns the model collaborator for g.Provider and the model
// name it uses.
func (m *Main) completer(ctx context.Context, g *Globals, stderr io.Writer) (companyintel.Completer, string, error) {
	if m.Completer != nil {
		return m.Completer, g.Model, nil
	}

	switch g.Provider {
	case "anthropic":
		apiKey := m.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "error: ANTHROPIC_API_KEY environment variable not set. Get an API key at https://console.anthropic.com/")
			return nil, "", companyintel.Errorf(companyintel.EINVALID, "ANTHROPIC_API_KEY not set")
		}
		c := anthropic.NewCompleter(apiKey, g.Model)
		return c, c.Model(), nil
	default:
		apiKey := m.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "error: GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return nil, "", companyintel.Errorf(companyintel.EINVALID, "GEMINI_API_KEY not set")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, "", fail(stderr, fmt.Errorf("failed to connect to Gemini API: %w", err))
		}
		c := gemini.NewCompleter(client, g.Model)
		return c, c.Model(), nil
	}
}

// fail prints err the way commands do and returns it.
func fail(stderr io.Writer, err error) error {
	msg := err.Error()
	if companyintel.ErrorCode(err) != companyintel.EINTERNAL {
		msg = companyintel.ErrorMessage(err)
	}
	fmt.Fprintf(stderr, "error: %s\n", msg)
	return err
}

// newExtractor returns the text extractor named by name.
func newExtractor(name string) (companyintel.Extractor, error) {
	switch name {
	case "", "text":
		return goquery.NewTextExtractor(), nil
	case "article":
		return trafilatura.NewExtractor(), nil
	case "readable":
		return readability.NewExtractor(), nil
	case "markdown":
		return htmltomarkdown.NewExtractor(), nil
	default:
		return nil, companyintel.Errorf(companyintel.EINVALID, "unknown extractor %q", name)
	}
}

// LoadPricing returns the default price table with the entries of the YAML
// file at path merged over it. An empty path returns the defaults.
//
// The file maps model names to input and output prices:
//
//	gpt-4o-mini:
//	  input: 0.15
//	  output: 0.60
func LoadPricing(path string) (companyintel.Pricing, error) {
	pricing := companyintel.DefaultPricing()
	if path == "" {
		return pricing, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, companyintel.Errorf(companyintel.EINVALID, "read pricing file: %v", err)
	}

	var custom companyintel.Pricing
	if err := yaml.Unmarshal(data, &custom); err != nil {
		return nil, companyintel.Errorf(companyintel.EINVALID, "parse pricing file %s: %v", path, err)
	}
	return pricing.Merge(custom), nil
}

// LoadDotEnv loads environment variables from the file at path. Variables
// already set are kept. A missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// maxLinks maps the flag value to the assembler's: zero fetches no related
// pages.
func maxLinks(n int) int {
	if n == 0 {
		return -1
	}
	return n
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	dir := defaultDir()
	if dir == "" {
		return "companyintel.db"
	}
	return filepath.Join(dir, "companyintel.db")
}

func defaultCacheDir() string {
	dir := defaultDir()
	if dir == "" {
		return ".companyintel-cache"
	}
	return filepath.Join(dir, "cache")
}

func defaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	dir := filepath.Join(home, ".companyintel")
	_ = os.MkdirAll(dir, 0755)
	return dir
}

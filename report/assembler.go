// Package report assembles company reports from scraped pages and a single
// language model call.
package report

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/companyintel"
	"github.com/fwojciec/companyintel/crawl"
)

// Ensure Assembler implements companyintel.ReportService.
var _ companyintel.ReportService = (*Assembler)(nil)

// Assembler generates company reports. It fetches the landing page, fetches
// the classified related pages concurrently, builds one prompt and calls the
// model exactly once. Successful reports are cached; failures cache nothing.
type Assembler struct {
	// PageFetcher fetches the landing page. It is usually the same cached
	// fetcher FanOut uses.
	PageFetcher companyintel.PageFetcher
	FanOut      *crawl.FanOut
	Classifier  *companyintel.LinkClassifier
	Completer   companyintel.Completer

	// Model names the completer's model in errors and in results whose
	// completion does not report one.
	Model string

	// Pricing prices completions. Nil selects companyintel.DefaultPricing.
	Pricing companyintel.Pricing

	ReportCache  companyintel.Cache        // optional
	LinksCache   companyintel.Cache        // optional
	Reports      companyintel.ReportStore  // optional
	TokenCounter companyintel.TokenCounter // optional

	// CacheSettings are the settings that shape a report, such as provider,
	// model and extractor. They are part of the report cache key, so a
	// report made under other settings is not served.
	CacheSettings []string

	// SystemPrompt overrides DefaultSystemPrompt when set.
	SystemPrompt string

	// MaxLinks caps related pages per report. Zero selects
	// companyintel.DefaultMaxLinks; negative fetches none.
	MaxLinks int

	Logger *slog.Logger
	Now    func() time.Time
}

// Generate returns the report for company at url.
func (a *Assembler) Generate(ctx context.Context, company, url string) (*companyintel.ReportResult, error) {
	start := a.now()
	company = strings.TrimSpace(company)
	url = strings.TrimSpace(url)

	if company == "" {
		return nil, companyintel.Errorf(companyintel.EINVALID, "company name required")
	}
	if err := companyintel.ValidateURL(url); err != nil {
		return nil, err
	}

	reportKey := companyintel.ReportCacheKey(company, url, a.CacheSettings...)
	if result, ok := a.cachedReport(ctx, reportKey); ok {
		result.Cached = true
		result.Cost = 0
		result.Elapsed = a.now().Sub(start)
		return result, nil
	}

	main, err := a.PageFetcher.FetchPage(ctx, url)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(main.Text) == "" {
		return nil, &companyintel.FetchError{URL: url, Attempts: 1, Err: errors.New("no readable text on page")}
	}

	candidates := a.candidates(ctx, main)
	fetched := a.FanOut.FetchAll(ctx, candidates)

	// The prompt is built once; the logged string is the one sent.
	prompt := BuildUserPrompt(company, main, fetched.Pages)
	a.logPrompt(ctx, company, prompt, 1+len(fetched.Pages))

	completion, err := a.Completer.Complete(ctx, a.systemPrompt(), prompt)
	if err != nil {
		return nil, &companyintel.GenerationError{Model: a.Model, Err: err}
	}
	if completion == nil || strings.TrimSpace(completion.Text) == "" {
		return nil, &companyintel.GenerationError{Model: a.Model, Err: errors.New("empty response")}
	}

	model := completion.Model
	if model == "" {
		model = a.Model
	}
	now := a.now()
	result := &companyintel.ReportResult{
		Company:      company,
		URL:          url,
		Markdown:     completion.Text,
		Model:        model,
		InputTokens:  completion.InputTokens,
		OutputTokens: completion.OutputTokens,
		Cost:         a.pricing().Cost(model, completion.InputTokens, completion.OutputTokens),
		Elapsed:      now.Sub(start),
		Pages:        1 + len(fetched.Pages),
		CreatedAt:    now,
	}

	a.storeReport(ctx, reportKey, result)
	a.recordHistory(ctx, result)

	return result, nil
}

// Candidates returns the related pages that Generate would fetch for the
// landing page at url, without fetching them or calling the model.
func (a *Assembler) Candidates(ctx context.Context, url string) ([]companyintel.LinkCandidate, error) {
	url = strings.TrimSpace(url)
	if err := companyintel.ValidateURL(url); err != nil {
		return nil, err
	}
	main, err := a.PageFetcher.FetchPage(ctx, url)
	if err != nil {
		return nil, err
	}
	return a.candidates(ctx, main), nil
}

// candidates classifies the landing page's links, reusing the links cache,
// and applies the selection cap.
func (a *Assembler) candidates(ctx context.Context, main *companyintel.PageContent) []companyintel.LinkCandidate {
	key := companyintel.CacheKey(companyintel.CacheKindLinks, main.URL)

	classified, ok := a.cachedLinks(ctx, key)
	if !ok {
		classified = a.classifier().Classify(main.Links)
		if a.LinksCache != nil {
			if data, err := json.Marshal(classified); err == nil {
				_ = a.LinksCache.Put(ctx, key, data)
			}
		}
	}

	return crawl.SelectCandidates(classified, main.URL, a.maxLinks())
}

func (a *Assembler) cachedLinks(ctx context.Context, key string) ([]companyintel.LinkCandidate, bool) {
	if a.LinksCache == nil {
		return nil, false
	}
	data, err := a.LinksCache.Get(ctx, key)
	if err != nil {
		return nil, false
	}
	var candidates []companyintel.LinkCandidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		a.logger().Warn("discarding corrupt links cache entry", "key", key, "err", err)
		return nil, false
	}
	return candidates, true
}

func (a *Assembler) cachedReport(ctx context.Context, key string) (*companyintel.ReportResult, bool) {
	if a.ReportCache == nil {
		return nil, false
	}
	data, err := a.ReportCache.Get(ctx, key)
	if err != nil {
		return nil, false
	}
	var result companyintel.ReportResult
	if err := json.Unmarshal(data, &result); err != nil {
		a.logger().Warn("discarding corrupt report cache entry", "key", key, "err", err)
		return nil, false
	}
	return &result, true
}

func (a *Assembler) storeReport(ctx context.Context, key string, result *companyintel.ReportResult) {
	if a.ReportCache == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		a.logger().Warn("encode report for cache", "err", err)
		return
	}
	_ = a.ReportCache.Put(ctx, key, data)
}

func (a *Assembler) recordHistory(ctx context.Context, result *companyintel.ReportResult) {
	if a.Reports == nil {
		return
	}
	err := a.Reports.CreateReport(ctx, &companyintel.Report{
		Company:      result.Company,
		URL:          result.URL,
		Model:        result.Model,
		InputTokens:  result.InputTokens,
		OutputTokens: result.OutputTokens,
		Cost:         result.Cost,
		Elapsed:      result.Elapsed,
		Pages:        result.Pages,
	})
	if err != nil {
		a.logger().Warn("record report history", "company", result.Company, "err", err)
	}
}

func (a *Assembler) logPrompt(ctx context.Context, company, prompt string, pages int) {
	logger := a.logger()
	if !logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	attrs := []any{
		"company", company,
		"pages", pages,
		"chars", utf8.RuneCountInString(prompt),
	}
	if a.TokenCounter != nil {
		if tokens, err := a.TokenCounter.CountTokens(ctx, prompt); err == nil {
			attrs = append(attrs, "tokens", tokens)
		}
	}
	logger.Debug("prompt", attrs...)
}

func (a *Assembler) systemPrompt() string {
	if a.SystemPrompt != "" {
		return a.SystemPrompt
	}
	return DefaultSystemPrompt
}

func (a *Assembler) classifier() *companyintel.LinkClassifier {
	if a.Classifier != nil {
		return a.Classifier
	}
	return companyintel.NewLinkClassifier(nil)
}

func (a *Assembler) pricing() companyintel.Pricing {
	if a.Pricing != nil {
		return a.Pricing
	}
	return companyintel.DefaultPricing()
}

func (a *Assembler) maxLinks() int {
	if a.MaxLinks == 0 {
		return companyintel.DefaultMaxLinks
	}
	return a.MaxLinks
}

func (a *Assembler) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (a *Assembler) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

package payroll

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"contribution-engine/internal/model"
)

// Source tells where a summary came from.
type Source string

const (
	SourceRemote  Source = "remote"
	SourceCached  Source = "cached"
	SourceDefault Source = "default"
)

// Client serves the year-to-date summary. Without a base URL it always
// serves the fallback summary.
type Client struct {
	baseURL  string
	fallback model.YtdSummary
	http     *http.Client
	logger   *slog.Logger

	mu     sync.RWMutex
	cached *model.YtdSummary
}

// NewClient creates a payroll client. An empty baseURL disables remote fetches.
func NewClient(baseURL string, timeout time.Duration, fallback model.YtdSummary, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		fallback: fallback,
		logger:   logger,
	}
	if c.baseURL != "" {
		c.http = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	return c
}

// summaryResponse accepts both spellings used by payroll backends.
type summaryResponse struct {
	SalaryAnnual     *float64 `json:"salaryAnnual"`
	YtdContribution  *float64 `json:"ytdContribution"`
	YtdContributions *float64 `json:"ytdContributions"`
	PaychecksPerYear *int     `json:"paychecksPerYear"`
	Age              *int     `json:"age"`
	CurrentAge       *int     `json:"currentAge"`
	RetirementAge    *int     `json:"retirementAge"`
}

// merge fills fields missing from the response with the fallback values.
func (r summaryResponse) merge(fallback model.YtdSummary) model.YtdSummary {
	s := fallback
	if r.SalaryAnnual != nil {
		s.SalaryAnnual = *r.SalaryAnnual
	}
	if r.YtdContribution != nil {
		s.YtdContribution = *r.YtdContribution
	} else if r.YtdContributions != nil {
		s.YtdContribution = *r.YtdContributions
	}
	if r.PaychecksPerYear != nil {
		s.PaychecksPerYear = *r.PaychecksPerYear
	}
	if r.Age != nil {
		s.Age = *r.Age
	} else if r.CurrentAge != nil {
		s.Age = *r.CurrentAge
	}
	if r.RetirementAge != nil {
		s.RetirementAge = *r.RetirementAge
	}
	return s
}

// Summary returns the current summary. Remote failures are not errors: the
// last good summary is served, then the fallback. An error is returned only
// when ctx is done.
func (c *Client) Summary(ctx context.Context) (model.YtdSummary, Source, error) {
	if c.baseURL == "" {
		return c.fallback, SourceDefault, nil
	}

	summary, err := c.fetch(ctx)
	if err == nil {
		c.mu.Lock()
		c.cached = &summary
		c.mu.Unlock()
		return summary, SourceRemote, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return model.YtdSummary{}, "", ctxErr
	}

	c.logger.Warn("payroll summary unavailable", "url", c.baseURL, "error", err)

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.cached != nil {
		return *c.cached, SourceCached, nil
	}
	return c.fallback, SourceDefault, nil
}

func (c *Client) fetch(ctx context.Context) (model.YtdSummary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ytd_summary", nil)
	if err != nil {
		return model.YtdSummary{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return model.YtdSummary{}, fmt.Errorf("request summary: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return model.YtdSummary{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var sr summaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return model.YtdSummary{}, fmt.Errorf("decode summary: %w", err)
	}
	summary := sr.merge(c.fallback)
	if err := summary.Validate(); err != nil {
		return model.YtdSummary{}, err
	}
	return summary, nil
}

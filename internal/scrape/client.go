package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"golang.org/x/time/rate"

	apierrors "almanac/internal/errors"
	"almanac/internal/infrastructure"
)

const (
	defaultBaseURL = "https://www.baseball-almanac.com"

	defaultPageTimeout = 45 * time.Second
	// One page every two seconds keeps the crawl polite to the archive.
	defaultPagesPerSecond = 0.5
)

// yearLinksJS collects the American League year links. The year menu
// lays out one table per league; the American League is the second.
const yearLinksJS = `Array.from(
	(document.querySelectorAll('table')[1] || document.createElement('table'))
		.querySelectorAll('a')
).map(a => a.href).filter(href => href.includes('yr'))`

// pageTablesJS extracts every stats table on a year page as a raw cell
// grid. Cell classes and rowspans ride along so AssembleTable can
// resolve banners and merged cells outside the browser.
const pageTablesJS = `Array.from(
	document.querySelectorAll('div.container div.ba-table table.boxed')
).map(table => {
	const body = table.querySelector('tbody') || table;
	return Array.from(body.querySelectorAll('tr')).map(tr =>
		Array.from(tr.querySelectorAll('td, th')).map(cell => {
			const h2 = cell.querySelector('h2');
			const p = cell.querySelector('p');
			return {
				text: cell.innerText.trim(),
				class: cell.getAttribute('class') || '',
				rowspan: parseInt(cell.getAttribute('rowspan') || '1', 10) || 1,
				h2: h2 ? h2.innerText.trim() : '',
				p: p ? p.innerText.trim() : ''
			};
		})
	);
})`

// YearLink is one season page discovered on the year menu.
type YearLink struct {
	Year int
	URL  string
}

// Options configures a scrape Client. Zero values pick the defaults.
type Options struct {
	// BaseURL is the archive root. Overridable for tests and mirrors.
	BaseURL string
	// Headless hides the browser window. Turn it off to watch a crawl.
	Headless bool
	// PageTimeout bounds a single page navigation plus extraction.
	PageTimeout time.Duration
	// PagesPerSecond throttles page fetches across the whole crawl.
	PagesPerSecond float64
}

// Client drives a headless browser over the season archive. It owns the
// crawl pacing and metrics; browser contexts come from Browse.
type Client struct {
	menuURL  string
	headless bool
	timeout  time.Duration
	limiter  *rate.Limiter
	logger   *slog.Logger
	metrics  *infrastructure.BusinessMetrics
}

// NewClient builds a Client. logger may be nil (the default logger is
// used) and metrics may be nil (crawl counters are skipped, as in
// tests).
func NewClient(opts Options, logger *slog.Logger, metrics *infrastructure.BusinessMetrics) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.PageTimeout <= 0 {
		opts.PageTimeout = defaultPageTimeout
	}
	if opts.PagesPerSecond <= 0 {
		opts.PagesPerSecond = defaultPagesPerSecond
	}
	return &Client{
		menuURL:  strings.TrimSuffix(opts.BaseURL, "/") + "/yearmenu.shtml",
		headless: opts.Headless,
		timeout:  opts.PageTimeout,
		limiter:  rate.NewLimiter(rate.Limit(opts.PagesPerSecond), 1),
		logger:   logger.With(slog.String("component", "scrape")),
		metrics:  metrics,
	}
}

// Browse allocates a browser and returns the context every page fetch
// runs in. The caller must invoke cancel to shut the browser down.
func (c *Client) Browse(ctx context.Context) (context.Context, context.CancelFunc) {
	opts := chromedp.DefaultExecAllocatorOptions[:]
	opts = append(opts, chromedp.Flag("headless", c.headless))

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	cancel := func() {
		cancelBrowser()
		cancelAlloc()
	}
	return browserCtx, cancel
}

// YearLinks fetches the year menu and returns the American League
// season links in page order, newest seasons first the way the archive
// lists them.
func (c *Client) YearLinks(ctx context.Context) ([]YearLink, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var hrefs []string
	err := c.runPage(ctx, chromedp.Tasks{
		chromedp.Navigate(c.menuURL),
		chromedp.WaitVisible(`table`, chromedp.ByQuery),
		chromedp.Evaluate(yearLinksJS, &hrefs),
	})
	if err != nil {
		return nil, apierrors.NewNetworkError("fetching year menu", err).
			WithContext("url", c.menuURL)
	}

	links := make([]YearLink, 0, len(hrefs))
	for _, href := range hrefs {
		year, ok := YearFromURL(href)
		if !ok {
			c.logger.Debug("skipping unparseable year link", slog.String("href", href))
			continue
		}
		links = append(links, YearLink{Year: year, URL: href})
	}
	if len(links) == 0 {
		return nil, apierrors.NewScrapeError(
			fmt.Sprintf("no season links found at %s", c.menuURL), nil)
	}

	c.logger.Info("collected season links",
		slog.Int("count", len(links)),
		slog.Int("newest", links[0].Year),
		slog.Int("oldest", links[len(links)-1].Year))
	return links, nil
}

// ScrapeYear fetches one season page and assembles its batting,
// pitching and standings tables. Tables the page lacks come back nil
// inside the YearData; a navigation or extraction failure is an error.
func (c *Client) ScrapeYear(ctx context.Context, link YearLink) (*YearData, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	var grids [][][]Cell
	err := c.runPage(ctx, chromedp.Tasks{
		chromedp.Navigate(link.URL),
		chromedp.WaitVisible(`div.container`, chromedp.ByQuery),
		chromedp.Evaluate(pageTablesJS, &grids),
	})
	if err != nil {
		infrastructure.RecordScrapePage(ctx, c.metrics, link.Year, false)
		return nil, apierrors.NewScrapeError(
			fmt.Sprintf("scraping season %d", link.Year), err).
			WithContext("url", link.URL)
	}

	tables := make([]*Table, 0, len(grids))
	for _, grid := range grids {
		if t := AssembleTable(grid); t != nil {
			tables = append(tables, t)
		}
	}
	data := ClassifyTables(link.Year, tables)
	infrastructure.RecordScrapePage(ctx, c.metrics, link.Year, true)

	c.logger.Info("scraped season",
		slog.Int("year", link.Year),
		slog.Int("tables", len(tables)),
		slog.Int("batting_rows", tableRows(data.Batting)),
		slog.Int("pitching_rows", tableRows(data.Pitching)),
		slog.Int("standings_rows", tableRows(data.Standings)),
		slog.Duration("duration", time.Since(start)))
	return data, nil
}

// runPage executes one page's actions under the per-page timeout.
func (c *Client) runPage(ctx context.Context, tasks chromedp.Tasks) error {
	pageCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return chromedp.Run(pageCtx, tasks)
}

func tableRows(t *Table) int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

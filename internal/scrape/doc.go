// Package scrape crawls the season archive and writes the raw CSV files
// the cleaner consumes.
//
// # Architecture
//
// The package splits browser work from parsing work:
//
// 1. Client: owns a chromedp browser, the per-page timeout and the
// crawl rate limit. YearLinks discovers the American League season
// pages; ScrapeYear pulls one page's tables out as raw cell grids
//
// 2. AssembleTable: pure Go that turns a cell grid into an aligned
// table. Division banner rows become a Division column, rowspan
// merges repeat down the rows they span, and ragged rows borrow
// missing cells from the previous row. It never touches the browser,
// which is what makes it testable
//
// 3. RawWriter: appends assembled tables to the per-table raw CSVs
// with id and year columns prepended, one continuous id sequence per
// table per crawl
//
// # Data Flow
//
//	year menu → YearLinks → ScrapeYear (per year) → AssembleTable
//	  → ClassifyTables → RawWriter.Append → data/raw/*.csv
//
// # Fidelity
//
// Headers are written exactly as the page spells them (W, Team |
// Roster, Name(s), ...). Normalizing them here would hide scrape
// breakage behind the cleaner's aliases; keeping the raw spellings
// means the raw CSVs are a faithful record of what the site served.
//
// # Testing
//
// Everything below the browser boundary is covered directly:
// AssembleTable against hand-built grids reproducing the archive's
// banner and rowspan layouts, and RawWriter against temp directories.
// The chromedp paths follow the extraction scripts verbatim and are
// exercised by running the scraper binary.
package scrape

package scrape

import (
	"strconv"
	"strings"
)

// DivisionColumn is the synthetic header emitted for division banner
// cells. Standings pages label each division group with a merged banner
// cell instead of a per-row column, so the assembler materializes one.
const DivisionColumn = "Division"

// Cell is one <td>/<th> as extracted by the in-page JavaScript.
// Heading and Caption carry nested <h2>/<p> text from title cells.
type Cell struct {
	Text    string `json:"text"`
	Class   string `json:"class"`
	RowSpan int    `json:"rowspan"`
	Heading string `json:"h2"`
	Caption string `json:"p"`
}

// Table is one assembled page table. Rows are aligned to Headers, with
// banner divisions, rowspan merges, and ragged rows already resolved.
type Table struct {
	Title    string
	Subtitle string
	Headers  []string
	Rows     [][]string
}

// YearData groups the three per-season tables scraped from one year
// page. Any field may be nil when the page lacks that table.
type YearData struct {
	Year      int
	Standings *Table
	Batting   *Table
	Pitching  *Table
}

// spanFill repeats a merged cell's value down the rows it spans.
type spanFill struct {
	value     string
	remaining int
}

// AssembleTable turns a raw cell grid into an aligned Table. It returns
// nil for grids too small to carry data (title row, header banner and
// at least one data row are required; the last two rows are footer
// navigation and are never data).
//
// The archive's tables interleave three quirks that all resolve here:
//
//   - banner rows restate the column headers mid-table. A "banner
//     middle" cell spanning multiple rows names a division (East/West);
//     it becomes a Division column whose value repeats for every row of
//     the group.
//   - cells with rowspan > 1 (a traded player's name spanning his
//     per-team rows) repeat down the rows they cover.
//   - trailing cells occasionally fall off short rows; the previous
//     row's value fills the gap.
func AssembleTable(grid [][]Cell) *Table {
	if len(grid) < 3 {
		return nil
	}

	t := &Table{}
	t.Title, t.Subtitle = tableTitle(grid[0])

	var (
		headers  []string
		division string
		spans    map[int]*spanFill
		prev     []string
	)

	for _, row := range grid[1 : len(grid)-2] {
		if isBanner(row) {
			headers = bannerHeaders(row, &division)
			spans = make(map[int]*spanFill)
			prev = nil
			continue
		}
		if len(headers) == 0 {
			continue
		}

		values := make([]string, len(headers))
		cellIdx := 0
		for i, header := range headers {
			if header == DivisionColumn {
				values[i] = division
				continue
			}
			if fill, ok := spans[i]; ok && fill.remaining > 0 {
				values[i] = fill.value
				fill.remaining--
				continue
			}
			if cellIdx >= len(row) {
				if i < len(prev) {
					values[i] = prev[i]
				}
				continue
			}
			cell := row[cellIdx]
			if cell.RowSpan > 1 {
				spans[i] = &spanFill{value: cell.Text, remaining: cell.RowSpan - 1}
			}
			values[i] = cell.Text
			cellIdx++
		}

		t.Rows = append(t.Rows, values)
		prev = values
	}

	t.Headers = headers
	return t
}

// bannerHeaders reads one banner row into a fresh header list. A
// multi-row "banner middle" cell naming a division sets the current
// division and claims a Division column; every other banner cell
// contributes its text verbatim. Header spellings stay exactly as
// scraped; the cleaner's schema aliases own normalization.
func bannerHeaders(row []Cell, division *string) []string {
	headers := make([]string, 0, len(row))
	*division = ""
	for _, cell := range row {
		switch {
		case strings.Contains(cell.Class, "banner middle") && cell.RowSpan > 1:
			lower := strings.ToLower(cell.Text)
			if strings.Contains(lower, "east") || strings.Contains(lower, "west") {
				*division = cell.Text
				headers = append(headers, DivisionColumn)
			}
		case strings.Contains(cell.Class, "banner"):
			headers = append(headers, cell.Text)
		}
	}
	return headers
}

func isBanner(row []Cell) bool {
	for _, cell := range row {
		if strings.Contains(cell.Class, "banner") {
			return true
		}
	}
	return false
}

// tableTitle extracts the table's title and subtitle from its first
// row. Title cells nest an <h2> with an optional <p> caption; plain
// text is the fallback.
func tableTitle(row []Cell) (title, subtitle string) {
	if len(row) == 0 {
		return "", ""
	}
	first := row[0]
	title = first.Heading
	if title == "" {
		title = first.Text
	}
	return title, first.Caption
}

// ClassifyTables maps the assembled tables of one year page onto the
// season tables the pipeline keeps. Page order is fixed: player hitting
// first, player pitching second, then team standings (confirmed by its
// title). "Team Review" top-25 boards restate season leaders already
// present in the player tables, so they are recognized and skipped
// without consuming a position.
func ClassifyTables(year int, tables []*Table) *YearData {
	data := &YearData{Year: year}
	index := 0
	for _, t := range tables {
		if t == nil {
			continue
		}
		if isReviewBoard(t.Title, t.Subtitle) {
			continue
		}
		switch {
		case index == 0:
			data.Batting = t
		case index == 1:
			data.Pitching = t
		case index == 2 && containsFold(t.Title+" "+t.Subtitle, "team standings"):
			data.Standings = t
		}
		index++
	}
	return data
}

func isReviewBoard(title, subtitle string) bool {
	if !containsFold(title, "team review") {
		return false
	}
	return containsFold(subtitle, "hitting") || containsFold(subtitle, "pitching")
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}

// YearFromURL extracts the four-digit season year from an archive page
// URL such as ".../yearly/yr1998a.shtml". The reported year is the four
// characters after the last "yr" marker.
func YearFromURL(url string) (int, bool) {
	idx := strings.LastIndex(url, "yr")
	if idx < 0 || idx+6 > len(url) {
		return 0, false
	}
	year, err := strconv.Atoi(url[idx+2 : idx+6])
	if err != nil || year < 1800 || year > 2200 {
		return 0, false
	}
	return year, true
}

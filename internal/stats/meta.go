package stats

import (
	"fmt"

	"almanac/internal/dataset"
	"almanac/pkg/contracts/domain"
)

// Years returns the seasons available for querying, latest first. The
// dashboard defaults to the first entry.
func Years(ds *dataset.Dataset) []int {
	years := ds.Years()
	for i, j := 0, len(years)-1; i < j; i, j = i+1, j-1 {
		years[i], years[j] = years[j], years[i]
	}
	return years
}

// Meta describes one table: row count, year span and queryable metrics
func Meta(ds *dataset.Dataset, table domain.Table) (domain.TableMeta, error) {
	metrics, err := Metrics(table)
	if err != nil {
		return domain.TableMeta{}, err
	}

	meta := domain.TableMeta{
		Name:    table,
		Metrics: metrics,
	}
	switch table {
	case domain.TableTeams:
		for _, row := range ds.Teams() {
			meta.Rows++
			considerYear(&meta, row.Year)
		}
	case domain.TableBatting:
		for _, row := range ds.Batting() {
			meta.Rows++
			considerYear(&meta, row.Year)
		}
	case domain.TablePitching:
		for _, row := range ds.Pitching() {
			meta.Rows++
			considerYear(&meta, row.Year)
		}
	}
	return meta, nil
}

func considerYear(meta *domain.TableMeta, year int) {
	if meta.MinYear == 0 || year < meta.MinYear {
		meta.MinYear = year
	}
	if year > meta.MaxYear {
		meta.MaxYear = year
	}
}

// AllMeta returns metadata for every table in canonical order
func AllMeta(ds *dataset.Dataset) ([]domain.TableMeta, error) {
	tables := []domain.Table{domain.TableTeams, domain.TableBatting, domain.TablePitching}
	metas := make([]domain.TableMeta, 0, len(tables))
	for _, table := range tables {
		meta, err := Meta(ds, table)
		if err != nil {
			return nil, fmt.Errorf("meta for %s: %w", table, err)
		}
		metas = append(metas, meta)
	}
	return metas, nil
}

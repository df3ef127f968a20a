package archive

import "context"

// Stats holds aggregated statistics for the archive.
type Stats struct {
	Stories    int // The number of archived stories
	TotalWords int // The sum of word counts over all stories
	Sources    int // The number of distinct corpus documents referenced
}

// GetStats returns a snapshot of archive statistics.
func (s *Store) GetStats(ctx context.Context) (Stats, error) {
	var stats Stats
	if err := s.stmtStoryCount.QueryRowContext(ctx).Scan(&stats.Stories, &stats.TotalWords); err != nil {
		return Stats{}, err
	}
	if err := s.stmtSourceCount.QueryRowContext(ctx).Scan(&stats.Sources); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

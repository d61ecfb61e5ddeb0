package universidad

import (
	"database/sql"
	"fmt"
	"strings"
)

const (
	// AggregateSeparator joins aggregated values. It is a printable symbol
	// that does not occur in names, titles or links.
	AggregateSeparator = "␟"

	// YouTubeWatchURL prefixes the video ids stored in video.recurso
	YouTubeWatchURL = "https://www.youtube.com/watch?v="
)

// splitAggregate un-flattens an aggregated column. NULL means no rows were
// aggregated; an empty string is a single empty value.
func splitAggregate(col sql.NullString) []string {
	if !col.Valid {
		return nil
	}
	return strings.Split(col.String, AggregateSeparator)
}

// zipAggregates pairs two parallel aggregated columns
func zipAggregates(names, resources sql.NullString) ([][2]string, error) {
	left := splitAggregate(names)
	right := splitAggregate(resources)
	if len(left) != len(right) {
		return nil, fmt.Errorf("aggregated lists disagree: %d names, %d resources", len(left), len(right))
	}

	pairs := make([][2]string, len(left))
	for i := range left {
		pairs[i] = [2]string{left[i], right[i]}
	}
	return pairs, nil
}

// dedupe drops repeated names, keeping the first occurrence
func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// videoURL expands a stored video id into its watch URL. Values that are
// already absolute URLs are returned unchanged.
func videoURL(id string) string {
	if strings.HasPrefix(id, "http://") || strings.HasPrefix(id, "https://") {
		return id
	}
	return YouTubeWatchURL + id
}

// joinAddress joins address parts with single spaces, skipping blank parts
func joinAddress(parts ...sql.NullString) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if !p.Valid {
			continue
		}
		if s := strings.TrimSpace(p.String); s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, " ")
}

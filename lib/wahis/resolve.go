package wahis

import (
	"context"
	"log/slog"
	"strings"

	"github.com/antzucaro/matchr"
)

// similarity below this is considered a non-match rather than a typo
const fuzzyMatchThreshold = 0.92

// matchName picks the candidate matching `name`: exact (case-insensitive)
// first, then substring, then the most similar candidate by Jaro-Winkler.
// Returns -1 when nothing clears the bar.
func matchName(name string, candidates []string) int {
	lower := strings.ToLower(strings.TrimSpace(name))

	for i, c := range candidates {
		if strings.ToLower(c) == lower {
			return i
		}
	}
	for i, c := range candidates {
		if strings.Contains(strings.ToLower(c), lower) {
			return i
		}
	}

	best := -1
	bestSimilarity := 0.0
	for i, c := range candidates {
		similarity := matchr.JaroWinkler(lower, strings.ToLower(c), false)
		if similarity > bestSimilarity {
			bestSimilarity = similarity
			best = i
		}
	}
	if bestSimilarity < fuzzyMatchThreshold {
		return -1
	}
	return best
}

// ResolveCountries maps country names to the area ids used by the filter
// endpoints. Unresolvable names are logged and skipped.
func (c *Client) ResolveCountries(ctx context.Context, names []string) ([]int64, error) {
	if len(names) == 0 {
		return nil, nil
	}
	countries, err := c.Countries(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]string, len(countries))
	for i, country := range countries {
		candidates[i] = country.Name
	}

	var ids []int64
	for _, name := range names {
		i := matchName(name, candidates)
		if i < 0 {
			slog.Warn("country not found in WAHIS", "name", name)
			continue
		}
		if candidates[i] != name {
			slog.Info("matched country", "query", name, "matched", candidates[i])
		}
		ids = append(ids, countries[i].AreaID)
	}
	return ids, nil
}

// ResolveDiseases maps first-level disease names to filter id lists.
func (c *Client) ResolveDiseases(ctx context.Context, names []string) ([]int64, error) {
	if len(names) == 0 {
		return nil, nil
	}
	diseases, err := c.FirstLevelDiseases(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]string, len(diseases))
	for i, d := range diseases {
		candidates[i] = d.Name
	}

	var ids []int64
	for _, name := range names {
		i := matchName(name, candidates)
		if i < 0 {
			slog.Warn("disease not found in WAHIS", "name", name)
			continue
		}
		if candidates[i] != name {
			slog.Info("matched disease", "query", name, "matched", candidates[i])
		}
		ids = append(ids, diseases[i].IDs...)
	}
	return ids, nil
}

// ResolveRegions maps geographic region names to their member country ids.
func (c *Client) ResolveRegions(ctx context.Context, names []string) ([]int64, error) {
	if len(names) == 0 {
		return nil, nil
	}
	regions, err := c.GeoRegions(ctx)
	if err != nil {
		return nil, err
	}

	var ids []int64
	for _, name := range names {
		found := false
		for _, region := range regions {
			if strings.EqualFold(region.Name, strings.TrimSpace(name)) {
				ids = append(ids, region.CountryIDs...)
				found = true
				break
			}
		}
		if !found {
			slog.Warn("region not found in WAHIS", "name", name)
		}
	}
	return ids, nil
}

// UnionIDs merges id lists, deduplicating while preserving first-seen order.
func UnionIDs(lists ...[]int64) []int64 {
	seen := map[int64]bool{}
	var out []int64
	for _, list := range lists {
		for _, id := range list {
			if seen[id] {
				continue
			}
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

package tui

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/smby/sunny-demo/internal/api"
)

// filterLeads returns the indexes of leads matching query, substring hits
// first in rank order, then near misses by similarity. An empty query keeps
// every lead.
func filterLeads(leads []api.Lead, query string) []int {
	out := make([]int, 0, len(leads))
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		for i := range leads {
			out = append(out, i)
		}
		return out
	}

	type scored struct {
		index int
		score float64
	}
	var fuzzy []scored
	for i, lead := range leads {
		name := strings.ToLower(lead.CompanyName)
		if strings.Contains(name, query) {
			out = append(out, i)
			continue
		}
		if s := similarity(name, query); s >= 0.5 {
			fuzzy = append(fuzzy, scored{index: i, score: s})
		}
	}
	sort.SliceStable(fuzzy, func(i, j int) bool { return fuzzy[i].score > fuzzy[j].score })
	for _, f := range fuzzy {
		out = append(out, f.index)
	}
	return out
}

func similarity(a, b string) float64 {
	longest := len([]rune(a))
	if n := len([]rune(b)); n > longest {
		longest = n
	}
	if longest == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}

package units

import (
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// FuzzyCutoff is the minimum similarity ratio for a fuzzy alias match.
const FuzzyCutoff = 0.75

// Suggestion is one entry in an autocomplete list.
type Suggestion struct {
	Key   string
	Label string
}

var curated = []string{"p", "V", "n", "T", "R", "m", "c", "ΔT", "ρ", "c_m"}

// Normalize maps free text to a canonical key. It never fails: text that
// resolves to nothing comes back trimmed but otherwise unchanged.
func (r *Registry) Normalize(name string) string {
	key, _ := r.Resolve(name)
	return key
}

// Resolve is Normalize with an explicit signal. ok is false when the input
// matched no key, name or alias, in which case key is the trimmed input.
//
// Resolution order: exact canonical key, case-insensitive key/name/alias,
// prefix of a name or alias (smallest key wins), fuzzy close match.
func (r *Registry) Resolve(name string) (key string, ok bool) {
	s := strings.TrimSpace(name)
	if s == "" {
		return s, false
	}
	if r.Has(s) {
		return s, true
	}

	q := lower(s)
	if k, found := r.aliases[q]; found {
		return k, true
	}

	best := ""
	for _, v := range r.vars {
		if !r.hasPrefix(v, q) {
			continue
		}
		if best == "" || v.Key < best {
			best = v.Key
		}
	}
	if best != "" {
		return best, true
	}

	if m := closeMatches(q, r.corpus, 1, FuzzyCutoff); len(m) > 0 {
		return r.aliases[m[0]], true
	}
	return s, false
}

func (r *Registry) hasPrefix(v Variable, q string) bool {
	if strings.HasPrefix(lower(v.Name), q) {
		return true
	}
	for _, a := range v.Aliases {
		if strings.HasPrefix(lower(a), q) {
			return true
		}
	}
	return false
}

func (r *Registry) contains(v Variable, q string) bool {
	if strings.Contains(lower(v.Name), q) {
		return true
	}
	for _, a := range v.Aliases {
		if strings.Contains(lower(a), q) {
			return true
		}
	}
	return false
}

// Suggestions returns up to limit variables matching query, best first:
// prefix matches, then substring matches, then fuzzy matches. An empty query
// returns a short list of the most common variables.
func (r *Registry) Suggestions(query string, limit int) []Suggestion {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	q := lower(strings.TrimSpace(query))
	if q == "" {
		var out []Suggestion
		for _, k := range curated {
			if r.Has(k) {
				out = append(out, Suggestion{Key: k, Label: r.Label(k)})
			}
		}
		return capSuggestions(out, limit)
	}

	var starts, within []string
	for _, v := range r.vars {
		switch {
		case r.hasPrefix(v, q):
			starts = append(starts, v.Key)
		case r.contains(v, q):
			within = append(within, v.Key)
		}
	}

	var fuzzy []string
	if len(starts)+len(within) < limit {
		var space []string
		owner := make(map[string]string)
		for _, v := range r.vars {
			for _, tok := range append([]string{v.Key, v.Name}, v.Aliases...) {
				t := lower(tok)
				space = append(space, t)
				owner[t] = v.Key
			}
		}
		for _, m := range closeMatches(q, space, limit, FuzzyCutoff) {
			fuzzy = append(fuzzy, owner[m])
		}
	}

	seen := make(map[string]bool)
	var out []Suggestion
	for _, group := range [][]string{starts, within, fuzzy} {
		for _, k := range group {
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, Suggestion{Key: k, Label: r.Label(k)})
		}
	}
	return capSuggestions(out, limit)
}

func capSuggestions(s []Suggestion, limit int) []Suggestion {
	if len(s) > limit {
		return s[:limit]
	}
	return s
}

// closeMatches returns at most n of the possibilities whose similarity to
// word is at least cutoff, highest score first. Equal scores are ordered by
// descending string, matching the usual difflib behaviour.
func closeMatches(word string, possibilities []string, n int, cutoff float64) []string {
	type hit struct {
		score float64
		text  string
	}

	m := difflib.NewMatcher(nil, runes(word))
	var hits []hit
	for _, p := range possibilities {
		m.SetSeq1(runes(p))
		if m.RealQuickRatio() < cutoff || m.QuickRatio() < cutoff {
			continue
		}
		if score := m.Ratio(); score >= cutoff {
			hits = append(hits, hit{score: score, text: p})
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].text > hits[j].text
	})
	if len(hits) > n {
		hits = hits[:n]
	}

	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.text
	}
	return out
}

// runes splits s into one element per code point for the sequence matcher.
func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

func lower(s string) string { return strings.ToLower(s) }

// Package search implements query sanitization and the two-phase
// filename-substring plus full-text BM25 lookup.
package search

import (
	"context"
	"strings"

	"github.com/mneves75/ffts-grep-sub001/internal/store"
)

// ftsMetaChars are stripped during sanitization so a user's query can never
// be interpreted as FTS5 query syntax.
const ftsMetaChars = `*"():^@~-`

// Sanitize strips FTS5 meta-characters, collapses whitespace runs to a
// single space, and trims the result. It is idempotent: Sanitize(Sanitize(q))
// == Sanitize(q) for every q (property P7).
func Sanitize(q string) string {
	var b strings.Builder
	b.Grow(len(q))
	for _, r := range q {
		if strings.ContainsRune(ftsMetaChars, r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// AutoPrefix applies the auto-prefix rule to the sanitized query: if the
// original (unsanitized) query ends in '-' or '_', the last token of the
// sanitized query becomes a full-text prefix query ("test_" -> "test*").
func AutoPrefix(original, sanitized string) string {
	if sanitized == "" {
		return sanitized
	}
	if !strings.HasSuffix(original, "-") && !strings.HasSuffix(original, "_") {
		return sanitized
	}
	tokens := strings.Split(sanitized, " ")
	last := len(tokens) - 1
	stem := strings.TrimRight(tokens[last], "_")
	if stem == "" {
		return sanitized
	}
	tokens[last] = stem + "*"
	return strings.Join(tokens, " ")
}

// EscapeLike escapes '%' and '_' with '\' so a substring search treats them
// literally under `LIKE ... ESCAPE '\'`.
func EscapeLike(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(q)
}

// Result is one ranked hit in the public search API.
type Result struct {
	Path  string  `json:"path"`
	Score float64 `json:"score"`
}

// Options configures a single search call.
type Options struct {
	Limit     int
	PathsOnly bool
}

// Search sanitizes query, runs the two-phase lookup, and merges the
// results: phase A (filename substring) first in its own order, then phase
// B (BM25) in score order, skipping any path phase A already emitted,
// truncated to opts.Limit.
func Search(ctx context.Context, s *store.Store, query string, opts Options) ([]Result, error) {
	sanitized := Sanitize(query)
	if sanitized == "" {
		return nil, nil
	}
	ftsQuery := AutoPrefix(query, sanitized)

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}

	phaseA, err := s.SearchFilenameLike(ctx, sanitized, EscapeLike(sanitized), limit)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(phaseA))
	results := make([]Result, 0, limit)
	for _, r := range phaseA {
		if len(results) >= limit {
			break
		}
		if _, ok := seen[r.Path]; ok {
			continue
		}
		seen[r.Path] = struct{}{}
		results = append(results, Result{Path: r.Path, Score: r.Score})
	}

	if len(results) >= limit {
		return results, nil
	}

	phaseB, err := s.SearchFTS(ctx, ftsQuery, limit, opts.PathsOnly)
	if err != nil {
		// FTS5 raises a syntax error for a handful of still-adversarial
		// queries. When phase A already has hits, those are returned and the
		// phase B error is dropped; with no phase A hits the error is returned.
		if len(results) > 0 {
			return results, nil
		}
		return nil, err
	}
	for _, r := range phaseB {
		if len(results) >= limit {
			break
		}
		if _, ok := seen[r.Path]; ok {
			continue
		}
		seen[r.Path] = struct{}{}
		results = append(results, Result{Path: r.Path, Score: r.Score})
	}
	return results, nil
}

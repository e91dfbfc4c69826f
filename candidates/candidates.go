package candidates

import (
	"math"
	"sort"
	"strings"

	"github.com/patternforge/patternforge/core"
)

// Row is a single tokenized input to the generator: the normalized
// (already lower-cased) original string and its tokens in ascending
// original-index order, as produced by tokenizer.Tokenize.
type Row struct {
	Text   string
	Tokens []core.Token
}

// Generate enumerates and scores the candidate pool for one field's
// rows (field is "" in single-field mode), gated and scored per spec
// §4.3, then reduced to the top core.Config.MaxCandidates by a stable
// sort: descending score, then the tie-break chain (lower wildcard
// count, greater length, lexicographic text).
func Generate(rows []Row, field string, cfg *core.Config, gcfg Config) []core.Pattern {
	retained, _ := GenerateWithStats(rows, field, cfg, gcfg)
	return retained
}

// GenerateWithStats is Generate plus the pre-truncation pool size, for
// callers that need to report candidate-pool truncation (spec §7.3) in
// core.Diagnostics.
func GenerateWithStats(rows []Row, field string, cfg *core.Config, gcfg Config) (retained []core.Pattern, generated int) {
	allowed := cfg.AllowedKinds
	_, minTokenLen := cfg.TokenizerFor(field)
	fieldWeight := cfg.FieldWeights.Resolve(field)

	pool := newPool()

	useIDF := gcfg.UseIDF || cfg.UseIDF
	var df map[string]int
	var nRows int
	if useIDF {
		df, nRows = documentFrequency(rows)
	}

	idfMultiplier := func(text string) float64 {
		if !useIDF {
			return 1
		}
		count := df[strings.Trim(text, "*")]
		return 1 + math.Log(1+float64(nRows)/float64(count+1))
	}

	for _, row := range rows {
		generateRow(pool, row, allowed, minTokenLen, cfg.PerWordSubstrings, cfg.MaxMultiSegments, fieldWeight, idfMultiplier, field)
	}

	if allowed[core.KindPrefix] && len(rows) >= 2 {
		if p, ok := globalPrefix(rows); ok {
			text := p + "*"
			score := float64(utf8Len(p)) * 2.0 * fieldWeight * idfMultiplier(text)
			pool.push(text, core.KindPrefix, score, field)
		}
	}

	return pool.topK(cfg.MaxCandidates), len(pool.order)
}

func generateRow(
	pool *candidatePool,
	row Row,
	allowed map[core.Kind]bool,
	minTokenLen, perWordSubstrings, maxMultiSegments int,
	fieldWeight float64,
	idf func(string) float64,
	field string,
) {
	orig := row.Text
	tokens := row.Tokens

	if allowed[core.KindExact] {
		joined := joinTokens(tokens)
		if joined == orig && orig != "" {
			score := float64(utf8Len(orig)) * 2.0 * fieldWeight * idf(orig)
			pool.push(orig, core.KindExact, score, field)
		}
	}

	if allowed[core.KindPrefix] && len(tokens) > 0 {
		first := tokens[0].Text
		if strings.HasPrefix(orig, first) {
			text := first + "*"
			score := float64(utf8Len(first)) * 1.5 * fieldWeight * idf(text)
			pool.push(text, core.KindPrefix, score, field)
		}
	}

	if allowed[core.KindSuffix] && len(tokens) > 0 {
		last := tokens[len(tokens)-1].Text
		if strings.HasSuffix(orig, last) {
			text := "*" + last
			score := float64(utf8Len(last)) * 1.5 * fieldWeight * idf(text)
			pool.push(text, core.KindSuffix, score, field)
		}
	}

	if allowed[core.KindSubstring] {
		limit := len(tokens)
		if perWordSubstrings < limit {
			limit = perWordSubstrings
		}
		for _, tok := range tokens[:limit] {
			if utf8Len(tok.Text) >= minTokenLen {
				text := "*" + tok.Text + "*"
				score := float64(utf8Len(tok.Text)) * fieldWeight * idf(text)
				pool.push(text, core.KindSubstring, score, field)
			}
		}
	}

	if allowed[core.KindMulti] && len(tokens) >= 2 {
		for start := 0; start < len(tokens); start++ {
			maxEnd := start + maxMultiSegments
			if maxEnd > len(tokens) {
				maxEnd = len(tokens)
			}
			for end := start + 2; end <= maxEnd; end++ {
				segment := tokens[start:end]
				text := "*" + joinSegments(segment) + "*"
				sumLen := 0
				for _, t := range segment {
					sumLen += utf8Len(t.Text)
				}
				score := float64(sumLen-(len(segment)-1)) * fieldWeight * idf(text)
				pool.push(text, core.KindMulti, score, field)
			}
		}
	}
}

func joinTokens(tokens []core.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}

func joinSegments(tokens []core.Token) string {
	texts := make([]string, len(tokens))
	for i, t := range tokens {
		texts[i] = t.Text
	}
	return strings.Join(texts, "*")
}

// globalPrefix finds the longest common prefix across every row's
// text, then trims it back to the last delimiter (non-alnum rune)
// boundary before the point of divergence, so the emitted pattern
// never splits mid-token (SPEC_FULL.md §4).
func globalPrefix(rows []Row) (string, bool) {
	common := rows[0].Text
	for _, row := range rows[1:] {
		common = commonPrefix(common, row.Text)
		if common == "" {
			return "", false
		}
	}

	lastDelim := 0
	for i, r := range common {
		if !isAlnum(r) {
			lastDelim = i + len(string(r))
		}
	}
	if lastDelim == 0 {
		return "", false
	}
	return common[:lastDelim], true
}

func commonPrefix(a, b string) string {
	i := 0
	for i < len(a) && i < len(b) && a[i] == b[i] {
		i++
	}
	return a[:i]
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func utf8Len(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

// documentFrequency counts, for every distinct token text, how many
// rows contain it at least once — the df term of the IDF multiplier.
func documentFrequency(rows []Row) (map[string]int, int) {
	df := make(map[string]int)
	for _, row := range rows {
		seen := make(map[string]bool, len(row.Tokens))
		for _, t := range row.Tokens {
			if !seen[t.Text] {
				seen[t.Text] = true
				df[t.Text]++
			}
		}
	}
	return df, len(rows)
}

// candidatePool deduplicates by pattern text, keeping the
// highest-scoring kind on a collision (mirrors the teacher-adjacent
// original_source CandidatePool.push semantics).
type candidatePool struct {
	order []string
	best  map[string]core.Pattern
}

func newPool() *candidatePool {
	return &candidatePool{best: make(map[string]core.Pattern)}
}

func (p *candidatePool) push(text string, kind core.Kind, score float64, field string) {
	existing, ok := p.best[text]
	if ok && existing.Score >= score {
		return
	}
	pat := core.NewPattern(text, kind)
	pat.Field = field
	pat.Score = score
	if !ok {
		p.order = append(p.order, text)
	}
	p.best[text] = pat
}

// topK returns the n highest-scoring patterns (n<=0 means unbounded),
// broken by the spec §4.3 tie-break chain: lower wildcard count,
// greater length, lexicographic text. Iteration over p.order keeps the
// sort's input in deterministic insertion order before sort.Slice
// imposes the final, fully deterministic order.
func (p *candidatePool) topK(n int) []core.Pattern {
	all := make([]core.Pattern, len(p.order))
	for i, text := range p.order {
		all[i] = p.best[text]
	}
	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Wildcards != b.Wildcards {
			return a.Wildcards < b.Wildcards
		}
		if a.Length != b.Length {
			return a.Length > b.Length
		}
		return a.Text < b.Text
	})
	if n > 0 && len(all) > n {
		all = all[:n]
	}
	return all
}

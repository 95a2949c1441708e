package detect

import (
	"unicode/utf8"

	"github.com/ccjmqdzj/sensitive-info-scanner/internal/types"
)

// Candidate is a raw, unvalidated pattern match. It lives only for the trip
// through its validator; accepted candidates are rewritten into Findings and
// the rest are dropped.
type Candidate struct {
	Category types.Category
	Match    string // full pattern match
	Value    string // capture group if the spec names one, else Match
	Start    int    // byte offsets of Value within the source text
	End      int
	Context  string // fixed-width rune window around the match, clipped
}

// match scans text with the spec's pattern and returns every non-overlapping
// candidate, leftmost-first. Validation is not applied here.
func (s PatternSpec) match(text string, opts Options) []Candidate {
	idx := s.re.FindAllStringSubmatchIndex(text, -1)
	if len(idx) == 0 {
		return nil
	}
	out := make([]Candidate, 0, len(idx))
	for _, m := range idx {
		start, end := m[0], m[1]
		if s.digitBounded && !digitBoundaryOK(text, start, end) {
			continue
		}
		vStart, vEnd := start, end
		if s.group > 0 && 2*s.group+1 < len(m) && m[2*s.group] >= 0 {
			vStart, vEnd = m[2*s.group], m[2*s.group+1]
		}
		out = append(out, Candidate{
			Category: s.Category,
			Match:    text[start:end],
			Value:    text[vStart:vEnd],
			Start:    vStart,
			End:      vEnd,
			Context:  contextWindow(text, start, end, opts.ContextWindow),
		})
	}
	return out
}

// digitBoundaryOK rejects spans embedded in longer digit runs, standing in
// for the lookarounds RE2 does not support.
func digitBoundaryOK(text string, start, end int) bool {
	if start > 0 && isDigit(text[start-1]) {
		return false
	}
	if end < len(text) && isDigit(text[end]) {
		return false
	}
	return true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// contextWindow extracts n runes either side of [start,end), clipped to the
// text bounds. The match itself is included: labels like "电话" often sit
// flush against the value and OCR frequently merges them.
func contextWindow(text string, start, end, n int) string {
	lo := start
	for i := 0; i < n && lo > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(text[:lo])
		lo -= size
	}
	hi := end
	for i := 0; i < n && hi < len(text); i++ {
		_, size := utf8.DecodeRuneInString(text[hi:])
		hi += size
	}
	return text[lo:hi]
}

// bracketContext renders the display context with the match marked, the way
// reports present it: 前缀【match】后缀.
func bracketContext(text string, start, end, n int) string {
	lo := start
	for i := 0; i < n && lo > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(text[:lo])
		lo -= size
	}
	hi := end
	for i := 0; i < n && hi < len(text); i++ {
		_, size := utf8.DecodeRuneInString(text[hi:])
		hi += size
	}
	return text[lo:start] + "【" + text[start:end] + "】" + text[end:hi]
}

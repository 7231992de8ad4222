// Package text holds the pure text helpers shared by the store writer and the
// search engine: normalization, trigram similarity, the fuzzy LIKE pattern and
// the relevance score.
package text

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxNormalizedLength is the rune cap applied by Normalize.
const MaxNormalizedLength = 220

// Score weights. ExactWeight > FuzzyWeight keeps every exact hit above every
// fuzzy-only hit.
const (
	ExactWeight = 0.75
	FuzzyWeight = 0.25
)

// likeEscape is the ESCAPE character the store pairs with FuzzyLikeValue.
const likeEscape = '\\'

// Normalize decomposes s, strips combining marks, lowercases, trims and caps
// the result at MaxNormalizedLength runes.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	out := strings.TrimSpace(strings.ToLower(stripped))
	if utf8.RuneCountInString(out) > MaxNormalizedLength {
		out = string([]rune(out)[:MaxNormalizedLength])
	}
	return out
}

// Join normalizes the non-empty parts joined by a single space.
func Join(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return Normalize(strings.Join(kept, " "))
}

// trigrams returns the set of 3-rune windows of "  "+s+" ".
func trigrams(s string) map[string]struct{} {
	if s == "" {
		return nil
	}
	padded := []rune("  " + s + " ")
	set := make(map[string]struct{}, len(padded))
	for i := 0; i+3 <= len(padded); i++ {
		set[string(padded[i:i+3])] = struct{}{}
	}
	return set
}

// TrigramSimilarity is the Dice coefficient of the trigram sets of a and b.
// Inputs are expected to be normalized already. Repeated trigrams count once.
func TrigramSimilarity(a, b string) float64 {
	ta, tb := trigrams(a), trigrams(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	shared := 0
	for g := range ta {
		if _, ok := tb[g]; ok {
			shared++
		}
	}
	return 2 * float64(shared) / float64(len(ta)+len(tb))
}

// FuzzyLikeValue turns a normalized query into an over-inclusive LIKE pattern:
// "%tok1%tok2%". LIKE metacharacters inside tokens are escaped with '\'.
// An empty query yields "%".
func FuzzyLikeValue(query string) string {
	tokens := strings.Fields(query)
	var b strings.Builder
	b.WriteByte('%')
	for _, tok := range tokens {
		for _, r := range tok {
			if r == '%' || r == '_' || r == likeEscape {
				b.WriteRune(likeEscape)
			}
			b.WriteRune(r)
		}
		b.WriteByte('%')
	}
	return b.String()
}

// ScoreInput carries what Score needs from a hit.
type ScoreInput struct {
	MatchedExact    bool
	QueryNormalized string
	SearchableText  string
}

// Score combines the exact flag and trigram similarity, rounded to 6 places.
func Score(in ScoreInput) float64 {
	exact := 0.0
	if in.MatchedExact {
		exact = 1
	}
	s := ExactWeight*exact + FuzzyWeight*TrigramSimilarity(in.SearchableText, in.QueryNormalized)
	return math.Round(s*1e6) / 1e6
}

package nlg

import "strings"

// MorphophonologyRules rewrites adjacent realised tokens (contraction,
// elision, de-duplication). Nulled tokens are left in place and dropped
// by Join.
type MorphophonologyRules interface {
	Apply(tokens []*StringElement)
}

// Join assembles the surviving tokens with single spaces. No space
// follows a token ending in an apostrophe.
func Join(tokens []*StringElement) string {
	var b strings.Builder
	glue := false
	for _, t := range tokens {
		if t == nil || t.IsNull() {
			continue
		}
		if b.Len() > 0 && !glue {
			b.WriteByte(' ')
		}
		b.WriteString(t.Realisation)
		glue = strings.HasSuffix(t.Realisation, "'")
	}
	return b.String()
}

package summarize

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"
)

const minSentenceRunes = 10

var errNoText = errors.New("no text to summarize")

// Extractive picks the leading sentences of the text. It needs no network.
type Extractive struct{}

func (Extractive) Name() string { return "extractive" }

func (Extractive) Summarize(_ context.Context, text string, maxSentences int) (string, error) {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return "", errNoText
	}
	if maxSentences < 1 {
		maxSentences = 1
	}

	var picked []string
	for _, s := range splitSentences(text) {
		if utf8.RuneCountInString(s) < minSentenceRunes {
			continue
		}
		picked = append(picked, s)
		if len(picked) >= maxSentences {
			break
		}
	}
	if len(picked) == 0 {
		if utf8.RuneCountInString(text) > 160 {
			return string([]rune(text)[:160]) + "...", nil
		}
		return text, nil
	}
	return strings.Join(picked, " "), nil
}

// splitSentences cuts after '.', '?' or '!' followed by a space, keeping the
// terminator. Decimal points stay inside their sentence.
func splitSentences(text string) []string {
	var out []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '.', '?', '!':
			if i+1 == len(text) || text[i+1] == ' ' {
				if s := strings.TrimSpace(text[start : i+1]); s != "" {
					out = append(out, s)
				}
				start = i + 1
			}
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, s)
	}
	return out
}

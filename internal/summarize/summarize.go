// Package summarize condenses article text with remote models, falling back
// to sentence extraction and finally to a fixed placeholder.
package summarize

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Placeholder replaces a summary when every summarizer failed.
const Placeholder = "요약 정보 없음"

// maxInputRunes bounds prompt size.
const maxInputRunes = 6000

// Summarizer condenses text into at most maxSentences sentences.
type Summarizer interface {
	Name() string
	Summarize(ctx context.Context, text string, maxSentences int) (string, error)
}

func buildPrompt(text string, maxSentences int) string {
	return fmt.Sprintf(`다음 대학 관련 뉴스 기사를 한국어 %d문장 이내로 요약하세요.
사실만 전달하고 "이 기사는" 같은 도입구는 쓰지 마세요.

기사:
%s`, maxSentences, text)
}

// prepareInput collapses whitespace and cuts overly long text on a rune boundary.
func prepareInput(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) > maxInputRunes {
		text = string([]rune(text)[:maxInputRunes])
	}
	return text
}

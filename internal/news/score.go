package news

import "strings"

// ImportanceScore counts the distinct importance keywords found in the
// article's title and summary.
func ImportanceScore(a Article, keywords KeywordSet) int {
	text := strings.ToLower(a.Title + " " + a.Summary)

	score := 0
	for _, k := range keywords.words {
		if strings.Contains(text, k) {
			score++
		}
	}
	return score
}

// Corroboration is the number of distinct sources that reported the article.
func Corroboration(a Article) int { return a.SourceCount }

// ScoreAll sets ImportanceScore on every article in place.
func ScoreAll(articles []Article, keywords KeywordSet) {
	for i := range articles {
		articles[i].ImportanceScore = ImportanceScore(articles[i], keywords)
	}
}

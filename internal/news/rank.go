package news

import "sort"

// Rank orders a copy of articles. Without TopN it sorts newest first; with
// TopN it sorts by importance, breaks ties by recency and truncates. Unknown
// dates sort last and equal keys keep their input order.
func Rank(articles []Article, q QuerySpec) []Article {
	out := append([]Article(nil), articles...)

	if q.TopN <= 0 {
		sort.SliceStable(out, func(i, j int) bool {
			return newer(out[i], out[j])
		})
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ImportanceScore != out[j].ImportanceScore {
			return out[i].ImportanceScore > out[j].ImportanceScore
		}
		return newer(out[i], out[j])
	})
	if len(out) > q.TopN {
		out = out[:q.TopN]
	}
	return out
}

// newer reports whether a sorts strictly before b by publish time.
func newer(a, b Article) bool {
	switch {
	case a.PublishedAt == nil:
		return false
	case b.PublishedAt == nil:
		return true
	default:
		return a.PublishedAt.After(*b.PublishedAt)
	}
}

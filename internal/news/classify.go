package news

import "strings"

// Classify returns every category whose keywords occur in title, in taxonomy
// order. Matching is case-insensitive substring containment on the title only.
func Classify(title string, taxonomy Taxonomy) []string {
	text := strings.ToLower(title)

	var labels []string
	for _, c := range taxonomy.categories {
		if containsAny(text, c.Keywords) {
			labels = append(labels, c.Label)
		}
	}
	if len(labels) == 0 {
		return []string{OtherCategory}
	}
	return labels
}

// containsAny expects text and keywords already lower-cased.
func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// mergeCategories unions two label sets in taxonomy order. OtherCategory
// survives only when nothing else matched.
func mergeCategories(a, b []string, taxonomy Taxonomy) []string {
	set := make(map[string]struct{}, len(a)+len(b))
	for _, l := range a {
		set[l] = struct{}{}
	}
	for _, l := range b {
		set[l] = struct{}{}
	}
	if len(set) > 1 {
		delete(set, OtherCategory)
	}

	out := make([]string, 0, len(set))
	for _, c := range taxonomy.categories {
		if _, ok := set[c.Label]; ok {
			out = append(out, c.Label)
		}
	}
	if _, ok := set[OtherCategory]; ok {
		out = append(out, OtherCategory)
	}
	return out
}

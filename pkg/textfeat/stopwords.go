package textfeat

// stopwordLists maps a language name to its stopword set. The english list
// is the usual short list of function words; review-domain words like
// "film" or "movie" are deliberately not in it, the models are expected to
// learn those weights themselves.
var stopwordLists = map[string]map[string]struct{}{
	"english": makeSet([]string{
		"a", "about", "above", "after", "again", "against", "all", "am",
		"an", "and", "any", "are", "as", "at", "be", "because", "been",
		"before", "being", "below", "between", "both", "but", "by", "could",
		"did", "do", "does", "doing", "down", "during", "each", "few",
		"for", "from", "further", "had", "has", "have", "having", "he",
		"her", "here", "hers", "herself", "him", "himself", "his", "how",
		"i", "if", "in", "into", "is", "it", "its", "itself", "just", "me",
		"more", "most", "my", "myself", "no", "nor", "not", "now", "of",
		"off", "on", "once", "only", "or", "other", "our", "ours",
		"ourselves", "out", "over", "own", "s", "same", "she", "should",
		"so", "some", "such", "t", "than", "that", "the", "their",
		"theirs", "them", "themselves", "then", "there", "these", "they",
		"this", "those", "through", "to", "too", "under", "until", "up",
		"very", "was", "we", "were", "what", "when", "where", "which",
		"while", "who", "whom", "why", "will", "with", "would", "you",
		"your", "yours", "yourself", "yourselves",
	}),
}

func makeSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// IsStopword reports whether word is in the stopword list for language.
// Unknown languages have no stopwords.
func IsStopword(word, language string) bool {
	set, ok := stopwordLists[language]
	if !ok {
		return false
	}
	_, ok = set[word]
	return ok
}

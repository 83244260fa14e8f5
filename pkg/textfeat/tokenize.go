package textfeat

import (
	"strings"
	"unicode"
)

// htmlBreaks are the markup fragments that survive in the raw IMDB dumps.
var htmlBreaks = strings.NewReplacer("<br />", " ", "<br/>", " ", "<br>", " ")

// Tokenize splits raw review text into tokens according to the spec.
// Letter runs, digit runs and punctuation runs each form separate tokens;
// digit and punctuation tokens are then dropped or kept per the spec.
func Tokenize(text string, spec Spec) []string {
	text = htmlBreaks.Replace(text)
	if spec.Lowercase {
		text = strings.ToLower(text)
	}

	var tokens []string
	var current strings.Builder
	var kind rune // 'l' letters, 'd' digits, 'p' punctuation

	flush := func() {
		if current.Len() == 0 {
			return
		}
		tok := current.String()
		current.Reset()
		switch kind {
		case 'd':
			if !spec.KeepNumbers {
				return
			}
		case 'p':
			if !spec.KeepPunctuation {
				return
			}
		case 'l':
			if spec.RemoveStopwords && IsStopword(tok, spec.Language) {
				return
			}
		}
		tokens = append(tokens, tok)
	}

	for _, r := range text {
		var k rune
		switch {
		case unicode.IsLetter(r) || r == '\'':
			// Apostrophes stay inside tokens so "don't" survives as one word.
			k = 'l'
		case unicode.IsDigit(r):
			k = 'd'
		case unicode.IsSpace(r):
			flush()
			continue
		default:
			k = 'p'
		}
		if k != kind {
			flush()
			kind = k
		}
		current.WriteRune(r)
	}
	flush()
	return tokens
}

// NGrams expands tokens into all n-grams from order 1 up to maxLength,
// joining the words of each gram with a single space.
func NGrams(tokens []string, maxLength int) []string {
	if maxLength <= 1 {
		return tokens
	}
	grams := make([]string, 0, len(tokens)*maxLength)
	for n := 1; n <= maxLength; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			grams = append(grams, strings.Join(tokens[i:i+n], " "))
		}
	}
	return grams
}

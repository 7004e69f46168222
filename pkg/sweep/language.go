package sweep

import (
	"sync"

	"github.com/pemistahl/lingua-go"
)

// minLanguageLength guards against classifying fragments; short strings
// are assumed English rather than penalized.
const minLanguageLength = 40

var detectorOnce = sync.OnceValue(func() lingua.LanguageDetector {
	return lingua.NewLanguageDetectorBuilder().
		FromLanguages(
			lingua.English,
			lingua.Spanish,
			lingua.French,
			lingua.German,
			lingua.Portuguese,
			lingua.Italian,
			lingua.Dutch,
		).
		Build()
})

// isLikelyEnglish reports whether a response reads as English. Unknown
// stays true: an inconclusive detection must not degrade a row on its own.
func isLikelyEnglish(text string) bool {
	if len(text) < minLanguageLength {
		return true
	}
	language, ok := detectorOnce().DetectLanguageOf(text)
	if !ok {
		return true
	}
	return language == lingua.English
}

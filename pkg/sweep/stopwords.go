package sweep

// stopwords filters sentence-leading capitalized words out of the
// proper-noun fallback. Capitalization is the only cue that path has, so
// common English function words and response boilerplate must be excluded
// explicitly.
var stopwords = map[string]struct{}{
	"a": {}, "about": {}, "after": {}, "all": {}, "also": {}, "although": {},
	"among": {}, "an": {}, "and": {}, "another": {}, "any": {}, "are": {},
	"as": {}, "at": {}, "based": {}, "because": {}, "before": {}, "best": {},
	"both": {}, "but": {}, "by": {}, "can": {}, "choose": {}, "consider": {},
	"depending": {}, "each": {}, "either": {}, "finally": {}, "first": {},
	"for": {}, "from": {}, "generally": {}, "here": {}, "how": {},
	"however": {}, "if": {}, "in": {}, "it": {}, "its": {}, "keep": {},
	"lastly": {}, "like": {}, "many": {}, "most": {}, "my": {}, "next": {},
	"note": {}, "of": {}, "on": {}, "once": {}, "one": {}, "only": {},
	"option": {}, "options": {}, "or": {}, "other": {}, "others": {},
	"overall": {}, "percent": {}, "popular": {}, "pricing": {}, "second": {},
	"see": {}, "several": {}, "since": {}, "some": {}, "that": {}, "the": {},
	"their": {}, "then": {}, "there": {}, "these": {}, "they": {},
	"third": {}, "this": {}, "those": {}, "though": {}, "tools": {},
	"top": {}, "try": {}, "ultimately": {}, "use": {}, "when": {},
	"where": {}, "which": {}, "while": {}, "with": {}, "you": {},
	"your": {},
}

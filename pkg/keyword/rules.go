package keyword

import "strings"

// RuleContext carries the per-run data rules need.
type RuleContext struct {
	ServiceTerms map[string]bool
}

// Rule rejects malformed or off-topic candidates. Rules see the lowercased
// base text and its words.
type Rule interface {
	Reject(text string, words []string, ctx *RuleContext) bool
	Name() string
}

// ValidModifiers keep a candidate on-topic even without a seed term.
var ValidModifiers = []string{
	"near me", "24/7", "same day", "open now", "available", "emergency",
	"cost", "price", "cheap", "affordable", "free", "best", "top", "local", "online",
}

// QuestionStarters open a query that needs at least four words to be
// meaningful.
var QuestionStarters = []string{"how to", "what is", "where to", "when to", "why is", "does", "can"}

// SpamTokens are rejected when they make up the whole candidate.
var SpamTokens = []string{"cheap", "discount", "free", "job", "apply", "brand", "information", "near", "price"}

// DefaultRules returns the standard rule chain in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		NewWordCountRule(1, 6),
		RepeatedWordRule{},
		NewRelevanceRule(ValidModifiers),
		NewIncompleteQuestionRule(QuestionStarters, 4),
		NewSpamTokenRule(SpamTokens),
		PhoneNumberRule{},
	}
}

// WordCountRule rejects phrases outside [min, max] words.
type WordCountRule struct {
	min, max int
}

func NewWordCountRule(min, max int) WordCountRule {
	return WordCountRule{min: min, max: max}
}

func (r WordCountRule) Reject(_ string, words []string, _ *RuleContext) bool {
	return len(words) < r.min || len(words) > r.max
}

func (r WordCountRule) Name() string { return "word_count" }

// RepeatedWordRule rejects any phrase that uses a word twice, adjacent or
// not.
type RepeatedWordRule struct{}

func (RepeatedWordRule) Reject(_ string, words []string, _ *RuleContext) bool {
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		if seen[w] {
			return true
		}
		seen[w] = true
	}
	return false
}

func (RepeatedWordRule) Name() string { return "repeated_word" }

// RelevanceRule requires a seed service term or a valid modifier phrase.
type RelevanceRule struct {
	modifiers []string
}

func NewRelevanceRule(modifiers []string) RelevanceRule {
	return RelevanceRule{modifiers: modifiers}
}

func (r RelevanceRule) Reject(text string, words []string, ctx *RuleContext) bool {
	if ctx != nil {
		for _, w := range words {
			if ctx.ServiceTerms[w] {
				return false
			}
		}
	}
	padded := " " + text + " "
	for _, m := range r.modifiers {
		if strings.Contains(padded, " "+m+" ") {
			return false
		}
	}
	return true
}

func (RelevanceRule) Name() string { return "relevance" }

// IncompleteQuestionRule rejects question openers followed by too few
// words, e.g. "how to plumber".
type IncompleteQuestionRule struct {
	starters []string
	minWords int
}

func NewIncompleteQuestionRule(starters []string, minWords int) IncompleteQuestionRule {
	return IncompleteQuestionRule{starters: starters, minWords: minWords}
}

func (r IncompleteQuestionRule) Reject(text string, words []string, _ *RuleContext) bool {
	if len(words) >= r.minWords {
		return false
	}
	for _, s := range r.starters {
		if text == s || strings.HasPrefix(text, s+" ") {
			return true
		}
	}
	return false
}

func (IncompleteQuestionRule) Name() string { return "incomplete_question" }

// SpamTokenRule rejects candidates that are exactly one spam token.
type SpamTokenRule struct {
	tokens map[string]bool
}

func NewSpamTokenRule(tokens []string) SpamTokenRule {
	m := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		m[strings.ToLower(t)] = true
	}
	return SpamTokenRule{tokens: m}
}

func (r SpamTokenRule) Reject(text string, _ []string, _ *RuleContext) bool {
	return r.tokens[text]
}

func (SpamTokenRule) Name() string { return "spam_token" }

// PhoneNumberRule rejects "number" unless "phone" is also present.
type PhoneNumberRule struct{}

func (PhoneNumberRule) Reject(_ string, words []string, _ *RuleContext) bool {
	hasNumber, hasPhone := false, false
	for _, w := range words {
		switch w {
		case "number", "numbers":
			hasNumber = true
		case "phone":
			hasPhone = true
		}
	}
	return hasNumber && !hasPhone
}

func (PhoneNumberRule) Name() string { return "number_without_phone" }

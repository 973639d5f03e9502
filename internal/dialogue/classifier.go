package dialogue

import (
	"strings"

	"github.com/stayassist/concierge/internal/facility"
)

// Kind is the classification of one utterance relative to the current
// collection state.
type Kind string

const (
	// KindAnswer pertains to the slot currently being collected.
	KindAnswer Kind = "answer"
	// KindFacilityQuestion matched the facility knowledge base.
	KindFacilityQuestion Kind = "facility_question"
	// KindGenericQuestion looks like a question but matched no
	// facility topic.
	KindGenericQuestion Kind = "generic_question"
	// KindResume confirms the user wants to continue the booking.
	KindResume Kind = "resume"
	// KindMoreInfo means the user still has questions.
	KindMoreInfo Kind = "more_info"
	// KindHeld is an utterance that cannot be resolved while awaiting
	// a resumption answer; it is neither accepted nor rejected.
	KindHeld Kind = "held"
)

// Multi-word affirmatives are matched as substrings, single words as
// whole tokens. "no more" and "don't need anymore" count as
// affirmative: they close the question loop.
var affirmativePhrases = []string{
	"go ahead",
	"let's go",
	"lets go",
	"i dont need anymore",
	"i don't need anymore",
	"no more questions",
	"no more",
}

var affirmativeTokens = map[string]struct{}{
	"yes": {}, "yeah": {}, "yep": {}, "sure": {}, "ok": {}, "okay": {},
	"continue": {}, "proceed": {},
	"ja": {}, "jep": {}, "oké": {}, "doorgaan": {},
}

var moreInfoTokens = map[string]struct{}{
	"no": {}, "nope": {}, "nee": {},
	"more": {}, "else": {}, "other": {}, "another": {},
}

// Question leads count anywhere in the utterance, not just at the
// start, so "hmm, what does that mean" still routes as a question.
var questionLeads = []string{
	"what", "which", "how", "when", "where", "why", "who",
	"tell me", "can you", "do you", "is there", "are there",
}

// An "I don't know" is treated as a question: the guest needs help, not
// a validation error.
var dontKnowPhrases = []string{"i don't know", "i dont know"}

// Classify decides what one utterance is. The second return value is
// the facility answer text for KindFacilityQuestion and empty
// otherwise. awaiting is true while the conversation is parked at an
// interruption checkpoint; in that mode only resume/more-info answers
// and further facility questions are recognized, everything else is
// held.
func Classify(utterance string, awaiting bool) (Kind, string) {
	text := strings.ToLower(strings.TrimSpace(utterance))
	if text == ContinueMarker {
		return KindResume, ""
	}

	if awaiting {
		if isAffirmative(text) {
			return KindResume, ""
		}
		if answer, ok := facility.Match(text); ok {
			return KindFacilityQuestion, answer
		}
		if hasToken(text, moreInfoTokens) {
			return KindMoreInfo, ""
		}
		return KindHeld, ""
	}

	if answer, ok := facility.Match(text); ok {
		return KindFacilityQuestion, answer
	}
	if isQuestion(text) {
		return KindGenericQuestion, ""
	}
	return KindAnswer, ""
}

func isAffirmative(text string) bool {
	for _, phrase := range affirmativePhrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return hasToken(text, affirmativeTokens)
}

func hasToken(text string, set map[string]struct{}) bool {
	for _, tok := range strings.Fields(text) {
		tok = strings.Trim(tok, ".,!?")
		if _, ok := set[tok]; ok {
			return true
		}
	}
	return false
}

func isQuestion(text string) bool {
	if strings.HasSuffix(text, "?") {
		return true
	}
	for _, phrase := range dontKnowPhrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	for _, lead := range questionLeads {
		if strings.Contains(lead, " ") {
			if strings.Contains(text, lead) {
				return true
			}
		} else if hasWord(text, lead) {
			return true
		}
	}
	return false
}

func hasWord(text, word string) bool {
	for _, tok := range strings.Fields(text) {
		if strings.Trim(tok, ".,!?") == word {
			return true
		}
	}
	return false
}

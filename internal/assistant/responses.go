package assistant

import (
	"strings"
	"time"
	"unicode"
)

// Fallback is the answer when no keyword matches.
const Fallback = "I'm here to help! Try asking about your schedule, the weather, or say 'tell me a joke'."

// Intent is an action the dashboard should take in response to an utterance.
type Intent int

const (
	IntentNone Intent = iota
	IntentFocus
)

func (i Intent) String() string {
	switch i {
	case IntentFocus:
		return "focus"
	default:
		return "none"
	}
}

type rule struct {
	substrings []string
	words      []string // matched as whole words only
	answer     func(now time.Time) string
}

func fixed(s string) func(time.Time) string {
	return func(time.Time) string { return s }
}

// rules are checked in order; the first match wins.
var rules = []rule{
	{substrings: []string{"schedule"}, answer: fixed("Here's your schedule: 10am Standup, 1pm Design Review, 3pm 1:1 with Alex.")},
	{substrings: []string{"online"}, answer: fixed("Alex, Sarah, and Mike are currently online.")},
	{substrings: []string{"focus"}, answer: fixed("Activating Focus Mode... Stay productive!")},
	{substrings: []string{"hello"}, words: []string{"hi"}, answer: fixed("Good morning! How can I help you today?")},
	{substrings: []string{"unread"}, answer: fixed("You have 5 unread emails. Would you like a summary?")},
	{substrings: []string{"marketing"}, answer: fixed("The latest marketing presentation is in your shared drive.")},
	{substrings: []string{"thank"}, answer: fixed("You're welcome! Let me know if you need anything else.")},
	{substrings: []string{"weather"}, answer: fixed("Today's weather is sunny, 72°F. Perfect for a walk!")},
	{substrings: []string{"lunch"}, answer: fixed("Lunch is scheduled for 12:30pm. Today's menu: pasta and salad.")},
	{substrings: []string{"coffee"}, answer: fixed("The coffee machine is working and freshly stocked!")},
	{substrings: []string{"meeting"}, answer: fixed("Your next meeting is at 2pm with the product team.")},
	{substrings: []string{"joke"}, answer: fixed("Why did the developer go broke? Because he used up all his cache!")},
	{substrings: []string{"time"}, answer: func(now time.Time) string { return "It's " + now.Format("03:04 PM") + "." }},
	{substrings: []string{"date"}, answer: func(now time.Time) string { return "Today is " + now.Format("1/2/2006") + "." }},
	{substrings: []string{"help"}, answer: fixed("You can ask about your schedule, who's online, the weather, or say 'tell me a joke'.")},
}

// Respond returns the canned answer for query. Matching is case-insensitive.
// now is used by the time and date answers.
func Respond(query string, now time.Time) string {
	lower := strings.ToLower(query)
	var words map[string]bool

	for _, r := range rules {
		for _, s := range r.substrings {
			if strings.Contains(lower, s) {
				return r.answer(now)
			}
		}
		if len(r.words) == 0 {
			continue
		}
		if words == nil {
			words = wordSet(lower)
		}
		for _, w := range r.words {
			if words[w] {
				return r.answer(now)
			}
		}
	}
	return Fallback
}

// DetectIntent maps an utterance to a dashboard action.
func DetectIntent(query string) Intent {
	if strings.Contains(strings.ToLower(query), "focus mode") {
		return IntentFocus
	}
	return IntentNone
}

func wordSet(s string) map[string]bool {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}

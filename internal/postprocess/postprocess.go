// Package postprocess strips model artifacts from completion text.
//
// It is opt-in: the web page shows the model's answer exactly as returned
// unless completion.clean_output is enabled.
package postprocess

import (
	"regexp"
	"strings"
)

// Clean removes model artifacts in two phases and returns the trimmed result:
//  1. Thinking / reasoning block removal
//  2. Lead-in echo removal ("Here is the translated text:")
//
// Quotes are left alone: an enhanced text may legitimately be a quotation.
func Clean(text string) string {
	text = removeThinkingBlocks(text)
	text = removeLeadIn(text)
	return strings.TrimSpace(text)
}

// RE2 has no backreferences, so each tag pair is spelled out.
var thinkingBlockRe = regexp.MustCompile(
	`(?is)<thinking>.*?</thinking>|<think>.*?</think>|<reasoning>.*?</reasoning>`,
)

// An opened tag with no close means the model ran out of output tokens
// mid-thought.
var truncatedThinkingRe = regexp.MustCompile(
	`(?is)(?:<thinking>|<think>|<reasoning>).*$`,
)

func removeThinkingBlocks(text string) string {
	text = thinkingBlockRe.ReplaceAllString(text, "")
	text = truncatedThinkingRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// leadInPatterns are anchored at the start and require a trailing colon.
var leadInPatterns = []*regexp.Regexp{
	// "Here is / Here's [the] [translated|enhanced|improved|revised] (text|translation|version):"
	regexp.MustCompile(`(?i)^(?:certainly|sure|of course)?[,.!]?\s*here(?:'s| is)(?: the| an?| your)? (?:translated |enhanced |improved |revised |more \w+ )?(?:translation|text|version)(?: in \w+)?\s*:`),
	// "[The] (translation|enhanced text) [in Spanish]:"
	regexp.MustCompile(`(?i)^(?:the )?(?:translation|translated text|enhanced text|enhanced version)(?: in \w+)?\s*:`),
}

func removeLeadIn(text string) string {
	for _, re := range leadInPatterns {
		if loc := re.FindStringIndex(text); loc != nil {
			text = strings.TrimSpace(text[loc[1]:])
		}
	}
	return text
}

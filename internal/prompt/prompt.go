// Package prompt builds the natural-language instructions sent to the model
// for each task mode.
package prompt

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	ErrUnknownMode   = errors.New("unknown task mode")
	ErrUnknownOption = errors.New("unknown option for mode")
)

// Mode selects which instruction template and option set apply.
type Mode string

const (
	Translation Mode = "translation"
	Enhancement Mode = "enhancement"
)

// ParseMode accepts the canonical name or the radio label ("Text Translation").
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "translation", "translate", "text translation":
		return Translation, nil
	case "enhancement", "enhance", "text enhancement":
		return Enhancement, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Label is the text shown on the mode radio control.
func (m Mode) Label() string {
	switch m {
	case Translation:
		return "Text Translation"
	case Enhancement:
		return "Text Enhancement"
	}
	return string(m)
}

// Options lists the selectable values for the mode, in display order.
func (m Mode) Options() []string {
	switch m {
	case Translation:
		out := make([]string, len(Languages))
		for i, l := range Languages {
			out[i] = string(l)
		}
		return out
	case Enhancement:
		out := make([]string, len(Styles))
		for i, s := range Styles {
			out[i] = string(s)
		}
		return out
	}
	return nil
}

// Language is a translation target.
type Language string

const (
	Spanish Language = "Spanish"
	French  Language = "French"
	English Language = "English"
	Arabic  Language = "Arabic"
)

var Languages = []Language{Spanish, French, English, Arabic}

var languageTags = map[Language]language.Tag{
	Spanish: language.Spanish,
	French:  language.French,
	English: language.English,
	Arabic:  language.Arabic,
}

// ParseLanguage maps s onto one of Languages, ignoring case.
func ParseLanguage(s string) (Language, error) {
	for _, l := range Languages {
		if strings.EqualFold(strings.TrimSpace(s), string(l)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w %s: %q", ErrUnknownOption, Translation, s)
}

// Tag returns the BCP 47 tag for the language.
func (l Language) Tag() language.Tag {
	if t, ok := languageTags[l]; ok {
		return t
	}
	return language.Und
}

// RTL reports whether the language is written right-to-left.
func (l Language) RTL() bool {
	return l == Arabic
}

// Style is an enhancement register.
type Style string

const (
	Formal   Style = "Formal"
	Friendly Style = "Friendly"
	Concise  Style = "Concise"
	Detailed Style = "Detailed"
)

var Styles = []Style{Formal, Friendly, Concise, Detailed}

// ParseStyle maps s onto one of Styles, ignoring case.
func ParseStyle(s string) (Style, error) {
	for _, st := range Styles {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w %s: %q", ErrUnknownOption, Enhancement, s)
}

var lower = cases.Lower(language.English)

// Build returns the instruction for mode with text appended verbatim.
// The caller is responsible for rejecting empty text.
func Build(mode Mode, text, option string) (string, error) {
	switch mode {
	case Translation:
		lang, err := ParseLanguage(option)
		if err != nil {
			return "", err
		}
		return TranslatePrompt(lang, text), nil
	case Enhancement:
		style, err := ParseStyle(option)
		if err != nil {
			return "", err
		}
		return EnhancePrompt(style, text), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, mode)
}

func TranslatePrompt(lang Language, text string) string {
	return fmt.Sprintf("Translate the following text into %s:\n\n%s", lang, text)
}

func EnhancePrompt(style Style, text string) string {
	return fmt.Sprintf("Enhance the following text to make it more %s:\n\n%s", lower.String(string(style)), text)
}

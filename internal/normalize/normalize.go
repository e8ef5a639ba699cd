// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize cleans up text extracted from PDF pages. All functions are
// pure: they take a string and return a string with no I/O.
//
// Two cleanup levels exist. Light cleanup only rejoins words hyphenated across
// a line break. Full cleanup additionally joins wrapped lines and collapses
// whitespace, with a ParagraphMode deciding whether blank-line paragraph
// breaks survive.
package normalize

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// ErrUnknownLevel is returned by ParseLevel for an unrecognised level name.
var ErrUnknownLevel = errors.New("unknown cleanup level")

// ErrUnknownParagraphMode is returned by ParseParagraphMode for an
// unrecognised mode name.
var ErrUnknownParagraphMode = errors.New("unknown paragraph mode")

// Level selects how much cleanup Clean applies.
type Level string

const (
	// LevelNone writes the joined page text unchanged.
	LevelNone Level = "none"
	// LevelLight applies de-hyphenation only.
	LevelLight Level = "light"
	// LevelFull applies de-hyphenation, line joining and whitespace collapsing.
	LevelFull Level = "full"
)

// ParagraphMode controls what CollapseWhitespace does with blank-line
// paragraph breaks under LevelFull.
type ParagraphMode string

const (
	// ParagraphsCollapse folds every whitespace run, paragraph breaks
	// included, into one space. Output is a single line of prose.
	ParagraphsCollapse ParagraphMode = "collapse"
	// ParagraphsPreserve folds horizontal whitespace but keeps each
	// paragraph break as exactly one blank line.
	ParagraphsPreserve ParagraphMode = "preserve"
)

// ParseLevel converts a configuration string into a Level.
func ParseLevel(s string) (Level, error) {
	switch l := Level(strings.ToLower(strings.TrimSpace(s))); l {
	case LevelNone, LevelLight, LevelFull:
		return l, nil
	}
	return "", fmt.Errorf("%w %q (want none, light, or full)", ErrUnknownLevel, s)
}

// ParseParagraphMode converts a configuration string into a ParagraphMode.
func ParseParagraphMode(s string) (ParagraphMode, error) {
	switch m := ParagraphMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ParagraphsCollapse, ParagraphsPreserve:
		return m, nil
	}
	return "", fmt.Errorf("%w %q (want collapse or preserve)", ErrUnknownParagraphMode, s)
}

// hyphenBreakRe matches a word split by a hyphen at the end of a line. Word
// characters are Unicode letters, digits and underscore so that accented
// text rejoins too.
var hyphenBreakRe = regexp.MustCompile(`([\p{L}\p{N}_]+)-\n([\p{L}\p{N}_]+)`)

// Dehyphenate rejoins words split across lines: "exam-\nple" becomes
// "example". Only a hyphen followed by exactly one newline and a word
// character is removed.
func Dehyphenate(s string) string {
	return hyphenBreakRe.ReplaceAllString(s, "${1}${2}")
}

// JoinLines replaces every isolated newline, one with no newline directly
// before or after it, with a space. Runs of two or more newlines are left as
// they are.
func JoinLines(s string) string {
	if !strings.Contains(s, "\n") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\n' {
			b.WriteByte(c)
			continue
		}
		prevNL := i > 0 && s[i-1] == '\n'
		nextNL := i+1 < len(s) && s[i+1] == '\n'
		if prevNL || nextNL {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// CollapseWhitespace folds whitespace runs according to mode. With
// ParagraphsCollapse every run becomes a single space. With
// ParagraphsPreserve runs without a newline become a single space and runs
// containing a newline become "\n\n". Whitespace is anything isSpace
// accepts. Nothing is trimmed from either end.
func CollapseWhitespace(s string, mode ParagraphMode) string {
	var b strings.Builder
	b.Grow(len(s))
	inRun, runHasNL := false, false
	flush := func() {
		if runHasNL && mode == ParagraphsPreserve {
			b.WriteString("\n\n")
		} else {
			b.WriteByte(' ')
		}
		inRun, runHasNL = false, false
	}
	for _, r := range s {
		if isSpace(r) {
			inRun = true
			if r == '\n' {
				runHasNL = true
			}
			continue
		}
		if inRun {
			flush()
		}
		b.WriteRune(r)
	}
	if inRun {
		flush()
	}
	return b.String()
}

// isSpace is unicode.IsSpace plus the information separators U+001C to
// U+001F, which Unicode-aware regexp \s classes also match.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// Full runs the whole pipeline: Dehyphenate, JoinLines, CollapseWhitespace.
func Full(s string, mode ParagraphMode) string {
	return CollapseWhitespace(JoinLines(Dehyphenate(s)), mode)
}

// Clean applies the cleanup level to s. mode only matters for LevelFull.
func Clean(s string, level Level, mode ParagraphMode) string {
	switch level {
	case LevelNone:
		return s
	case LevelFull:
		return Full(s, mode)
	default:
		return Dehyphenate(s)
	}
}

package services

import (
	"strings"
	"unicode"
)

type PhraseExtractor interface {
	// Phrases splits text into short candidate phrases for semantic skill
	// matching, skipping any phrase equal to one of the known skills.
	Phrases(text string, known []string) []string
}

type phraseExtractor struct {
	maxWords   int
	maxPhrases int
}

func NewPhraseExtractor(maxWords, maxPhrases int) PhraseExtractor {
	if maxWords <= 0 {
		maxWords = 2
	}
	if maxPhrases <= 0 {
		maxPhrases = 200
	}

	return &phraseExtractor{
		maxWords:   maxWords,
		maxPhrases: maxPhrases,
	}
}

// Phrases implements PhraseExtractor.
func (pe *phraseExtractor) Phrases(text string, known []string) []string {
	seen := make(map[string]bool, len(known))
	for _, k := range known {
		seen[strings.ToLower(k)] = true
	}

	var phrases []string
	for _, segment := range splitSegments(text) {
		segment = strings.Trim(segment, " \t-*•.:()'\"")
		words := strings.Fields(segment)
		if len(words) == 0 || len(words) > pe.maxWords {
			continue
		}

		phrase := strings.Join(words, " ")
		if !hasLetter(phrase) {
			continue
		}

		key := strings.ToLower(phrase)
		if seen[key] {
			continue
		}
		seen[key] = true

		phrases = append(phrases, phrase)
		if len(phrases) == pe.maxPhrases {
			break
		}
	}

	return phrases
}

func splitSegments(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		switch r {
		case '\n', ',', ';', '|', '•', '·':
			return true
		}
		return false
	})
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

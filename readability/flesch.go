// Package readability scores plain text for reading ease.
package readability

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrEmptyText is returned when the input contains no scorable words.
	ErrEmptyText = errors.New("readability: no words in text")

	sentenceSplit = regexp.MustCompile(`[.!?]+`)
	nonLetter     = regexp.MustCompile(`[^a-z]`)
)

// FleschReadingEase computes the standard Flesch score for English text:
// 206.835 - 1.015*(words/sentences) - 84.6*(syllables/words). Higher means
// easier to read. Syllables are estimated heuristically, which matches how
// the common readability tools behave on web copy.
func FleschReadingEase(text string) (float64, error) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0, ErrEmptyText
	}

	sentences := countSentences(text)
	syllables := 0
	for _, w := range words {
		syllables += countSyllables(w)
	}

	wordsPerSentence := float64(len(words)) / float64(sentences)
	syllablesPerWord := float64(syllables) / float64(len(words))

	return 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord, nil
}

func countSentences(text string) int {
	count := 0
	for _, chunk := range sentenceSplit.Split(text, -1) {
		if strings.TrimSpace(chunk) != "" {
			count++
		}
	}
	if count == 0 {
		return 1
	}
	return count
}

// countSyllables estimates syllables as vowel groups, discounting a silent
// trailing "e". Every word counts at least one.
func countSyllables(word string) int {
	word = nonLetter.ReplaceAllString(strings.ToLower(word), "")
	if word == "" {
		return 1
	}

	count := 0
	prevVowel := false
	for _, r := range word {
		vowel := strings.ContainsRune("aeiouy", r)
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}

	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") && count > 1 {
		count--
	}
	if count == 0 {
		count = 1
	}
	return count
}

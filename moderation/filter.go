// Package moderation masks and detects disallowed words in chat text.
package moderation

import "strings"

// MaxMessageLen bounds the length of any chat message shown to players.
const MaxMessageLen = 160

var badWords = []string{
	"fuck",
	"motherfucker",
	"shit",
	"bitch",
	"asshole",
	"puta",
	"mierda",
	"pendejo",
	"cabron",
}

// Mask truncates text to MaxMessageLen runes and replaces every occurrence of
// a listed word with asterisks of equal length. Matching is case-insensitive
// and treats each listed word as a literal substring, applied independently,
// so a word embedded in a longer word is still masked where it occurs.
func Mask(text string) string {
	masked := []byte(truncate(text, MaxMessageLen))
	for _, word := range badWords {
		maskWord(masked, word)
	}
	return string(masked)
}

// ContainsViolation reports whether the original, untruncated text contains a
// listed word in any casing. It is intentionally decoupled from Mask so that
// warnings are issued on what the player actually typed.
func ContainsViolation(text string) bool {
	lower := strings.ToLower(text)
	for _, word := range badWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// maskWord overwrites matches in place. The word list is ASCII, so byte-window
// scanning with ASCII case folding never shifts offsets in the masked text.
func maskWord(text []byte, word string) {
	n := len(word)
	if n == 0 {
		return
	}
	for i := 0; i+n <= len(text); {
		if equalFoldASCII(text[i:i+n], word) {
			for j := i; j < i+n; j++ {
				text[j] = '*'
			}
			i += n
		} else {
			i++
		}
	}
}

func equalFoldASCII(b []byte, word string) bool {
	for i := 0; i < len(word); i++ {
		c := b[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != word[i] {
			return false
		}
	}
	return true
}

package domain

import (
	"regexp"
	"strings"
	"sync"
)

// DefaultIgnoreWords are the status codes a task key may start with.
var DefaultIgnoreWords = []string{"TODO", "DOING", "DONE", "BLOCKED"}

var (
	statusRegexMu sync.Mutex
	statusRegexes = map[string]*regexp.Regexp{}
)

// StatusCode returns the ignore word key starts with, or "".
func StatusCode(key string, ignoreWords []string) string {
	key = strings.TrimSpace(key)
	for _, w := range ignoreWords {
		if w == "" || !strings.HasPrefix(key, w) {
			continue
		}
		rest := key[len(w):]
		if rest == "" || rest[0] == ' ' || rest[0] == '.' || rest[0] == '\t' {
			return w
		}
	}
	return ""
}

// StripStatus removes a leading status code and the whitespace after it.
func StripStatus(key string, ignoreWords []string) string {
	key = strings.TrimSpace(key)
	if code := StatusCode(key, ignoreWords); code != "" {
		return strings.TrimLeft(key[len(code):], " \t")
	}
	return key
}

// TaskPortion returns the text a summary segment is compared against: what
// follows the first " ." when present, otherwise the key without status.
func TaskPortion(key string, ignoreWords []string) string {
	if i := strings.Index(key, " ."); i >= 0 {
		return strings.TrimSpace(key[i+2:])
	}
	return StripStatus(key, ignoreWords)
}

// MatchesStatus reports whether any ignore word, read as a case-insensitive
// regular expression, matches somewhere in key.
func MatchesStatus(key string, ignoreWords []string) bool {
	for _, w := range ignoreWords {
		if w == "" {
			continue
		}
		if statusRegex(w).MatchString(key) {
			return true
		}
	}
	return false
}

func statusRegex(word string) *regexp.Regexp {
	statusRegexMu.Lock()
	defer statusRegexMu.Unlock()

	if re, ok := statusRegexes[word]; ok {
		return re
	}
	re, err := regexp.Compile("(?i)" + word)
	if err != nil {
		re = regexp.MustCompile("(?i)" + regexp.QuoteMeta(word))
	}
	statusRegexes[word] = re
	return re
}

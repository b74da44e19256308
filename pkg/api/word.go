package api

import "strings"

// Attribute builds an attribute word: =key=value.
func Attribute(key, value string) string {
	return "=" + key + "=" + value
}

// ParseAttributes turns attribute words (=key=value) and API-attribute words
// (.tag=value) into a map. Values may themselves contain '='; only the
// separator after the key splits.
func ParseAttributes(words []string) map[string]string {
	attrs := make(map[string]string, len(words))
	for _, w := range words {
		key, value := splitWord(w)
		attrs[key] = value
	}
	return attrs
}

func splitWord(w string) (string, string) {
	w = strings.TrimPrefix(w, "=")
	if i := strings.Index(w, "="); i >= 0 {
		return w[:i], w[i+1:]
	}
	return w, ""
}

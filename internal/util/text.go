package util

import "strings"

// TitleCase capitalizes every whitespace-separated word. Words carrying an
// interior apostrophe keep the possessive lowercase: "servant's hood"
// becomes "Servant's Hood", never "Servant'S Hood". Pure and total; empty
// input comes back unchanged.
func TitleCase(text string) string {
	if text == "" {
		return text
	}

	words := strings.Fields(text)
	cased := make([]string, 0, len(words))
	for _, word := range words {
		cased = append(cased, titleCaseWord(word))
	}
	return strings.Join(cased, " ")
}

func titleCaseWord(word string) string {
	if word == "" {
		return word
	}

	runes := []rune(word)
	pos := apostrophePos(runes)
	if pos > 0 && pos < len(runes)-1 {
		// Capitalize the head, lowercase only what follows the apostrophe.
		head := string(runes[:1])
		mid := string(runes[1 : pos+1])
		tail := strings.ToLower(string(runes[pos+1:]))
		return strings.ToUpper(head) + mid + tail
	}
	return strings.ToUpper(string(runes[:1])) + strings.ToLower(string(runes[1:]))
}

func apostrophePos(runes []rune) int {
	for i, r := range runes {
		if r == '\'' {
			return i
		}
	}
	return -1
}

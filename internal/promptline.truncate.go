package internal

import "github.com/rivo/uniseg"

// truncateGraphemes shortens text to at most length grapheme clusters,
// appending symbol only when something was cut. length <= 0 disables
// truncation. Counting graphemes rather than bytes keeps combined emoji
// and accented branch names intact.
func truncateGraphemes(text string, length int, symbol string) string {
	if length <= 0 {
		return text
	}
	gr := uniseg.NewGraphemes(text)
	var taken string
	count := 0
	for gr.Next() {
		if count < length {
			taken += gr.Str()
		}
		count++
	}
	if count <= length {
		return text
	}
	if symbol != "" {
		symbolGr := uniseg.NewGraphemes(symbol)
		if symbolGr.Next() {
			return taken + symbolGr.Str()
		}
	}
	return taken
}

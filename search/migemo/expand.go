package migemo

import "strings"

// expandCandidates turns a romaji query into the literal forms migemo
// should search for: the query exactly as typed (so an already-kana or
// already-kanji query still works), its hiragana transliteration, and the
// matching katakana transliteration. A single trailing consonant left
// over from an incompletely-typed syllable (e.g. "ky" while the user is
// still typing "kyo") is dropped from the transliterated forms but kept
// in the literal form, so the search never blocks on a partial keystroke.
func expandCandidates(query string) []string {
	candidates := map[string]bool{query: true}

	hira, ok := transliterate(query)
	if ok {
		candidates[hira] = true
		candidates[toKatakana(hira)] = true
	}

	out := make([]string, 0, len(candidates))
	for c := range candidates {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}

// transliterate greedily tokenizes query into romaji syllables using the
// longest match from romajiToHiragana, returning the hiragana string and
// whether every byte of query was consumed by a known syllable. A trailing
// remainder that is the start of a longer syllable is dropped and does not
// count against completeness.
func transliterate(query string) (string, bool) {
	lower := strings.ToLower(query)
	var out strings.Builder
	complete := true
	for i := 0; i < len(lower); {
		matched := false
		maxLen := maxRomajiKeyLen
		if i+maxLen > len(lower) {
			maxLen = len(lower) - i
		}
		for l := maxLen; l >= 1; l-- {
			key := lower[i : i+l]
			if kana, ok := romajiToHiragana[key]; ok {
				out.WriteString(kana)
				i += l
				matched = true
				break
			}
		}
		if !matched {
			pending := false
			for key := range romajiToHiragana {
				if len(key) > len(lower)-i && strings.HasPrefix(key, lower[i:]) {
					pending = true
					break
				}
			}
			if pending {
				break
			}
			// A doubled consonant (e.g. "kko") signals the small tsu; since
			// this table does not special-case gemination, fall back to
			// passing the unrecognized byte through literally and mark the
			// transliteration incomplete.
			out.WriteByte(lower[i])
			i++
			complete = false
		}
	}
	return out.String(), out.Len() > 0 && complete
}

func toKatakana(hiragana string) string {
	var out strings.Builder
	for _, r := range hiragana {
		out.WriteRune(hiraganaToKatakana(r))
	}
	return out.String()
}

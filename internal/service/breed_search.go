package service

import (
	"strings"
	"unicode/utf8"

	"petmate/internal/models"
)

const (
	hangulBase     = 0xAC00
	syllablesPerCV = 588 // 21 medials x 28 finals
)

// chosungIndex maps the 14 basic initial consonants onto their position in
// the Unicode syllable block ordering.
var chosungIndex = map[string]int{
	"ㄱ": 0, "ㄴ": 2, "ㄷ": 3, "ㄹ": 5, "ㅁ": 6, "ㅂ": 7, "ㅅ": 9,
	"ㅇ": 11, "ㅈ": 12, "ㅊ": 14, "ㅋ": 15, "ㅌ": 16, "ㅍ": 17, "ㅎ": 18,
}

// SearchBreeds filters the catalog for the breed input box. An empty query
// returns the whole catalog; a single initial consonant matches names whose
// first syllable starts with it; anything else is a case-insensitive
// substring match.
func SearchBreeds(catalog []models.Breed, input string) []models.Breed {
	query := strings.TrimSpace(input)
	if query == "" {
		return append([]models.Breed{}, catalog...)
	}

	out := []models.Breed{}
	if idx, ok := chosungIndex[query]; ok {
		lo := rune(hangulBase + idx*syllablesPerCV)
		hi := lo + syllablesPerCV - 1
		for _, b := range catalog {
			first, _ := utf8.DecodeRuneInString(b.Name)
			if first >= lo && first <= hi {
				out = append(out, b)
			}
		}
		return out
	}

	needle := strings.ToLower(query)
	for _, b := range catalog {
		if strings.Contains(strings.ToLower(b.Name), needle) {
			out = append(out, b)
		}
	}
	return out
}

// ResolveBreedID finds the catalog entry whose name equals name after
// trimming and case folding. Zero means no match.
func ResolveBreedID(name string, catalog []models.Breed) int64 {
	n := normalizeBreedName(name)
	if n == "" {
		return 0
	}
	for _, b := range catalog {
		if normalizeBreedName(b.Name) == n {
			return int64(b.ID)
		}
	}
	return 0
}

func normalizeBreedName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

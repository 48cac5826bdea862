package key

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
)

// FromKeyword derives a key from a keyword: the unique characters of the
// keyword in order of appearance, followed by the remaining characters of the
// alphabet.
//
// Example:
//
//	"Zebrasber" => "zebrascdfghijklmnopqtuvwxy"
func FromKeyword(keyword, alpha string) (string, error) {
	alpha, err := CheckAlphabet(alpha)
	if err != nil {
		return "", err
	}
	rest := []rune(alpha)
	var kw []rune
	for _, r := range strings.ToLower(keyword) {
		if slices.Contains(kw, r) {
			continue
		}
		i := slices.Index(rest, r)
		if i < 0 {
			return "", fmt.Errorf("%w: keyword character %q is not part of the alphabet",
				ErrKeyInvalid, r)
		}
		kw = append(kw, r)
		rest = slices.Delete(rest, i, i+1)
	}
	return string(append(kw, rest...)), nil
}

// Random creates a random key for an alphabet, using a Fisher–Yates shuffle
// driven by rng.
func Random(alpha string, rng *rand.Rand) (string, error) {
	alpha, err := CheckAlphabet(alpha)
	if err != nil {
		return "", err
	}
	k := []rune(alpha)
	rng.Shuffle(len(k), func(i, j int) { k[i], k[j] = k[j], k[i] })
	return string(k), nil
}

/*
Package key transcodes texts with the key of a substitution cipher.

The first character of the alphabet corresponds to the first character of the
key, the second character of the alphabet to the second character of the key,
and so on. With

	alphabet: abcdefghijklmnopqrstuvwxyz
	key:      zebrascdfghijklmnopqtuvwxy

the plaintext "flee at once. we are discovered!" is enciphered as
"siaa zq lkba. va zoa rfpbluaoar!".

Characters not in the alphabet are left untouched, the case of characters is
preserved.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer@com>

All rights reserved.

License information is available in the LICENSE file.
*/
package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/npillmayer/subbreaker/alphabet"
)

// ErrAlphabetInvalid is wrapped by all errors concerning an invalid alphabet.
var ErrAlphabetInvalid = errors.New("alphabet invalid")

// ErrKeyInvalid is wrapped by all errors concerning an invalid key.
var ErrKeyInvalid = errors.New("key invalid")

// Key uses a key and an alphabet for transcoding substitution ciphers.
type Key struct {
	alphabet string
	key      string
	encode   map[rune]rune
	decode   map[rune]rune
}

// New creates a key for an alphabet. Both are case insensitive.
func New(key, alpha string) (*Key, error) {
	alpha, err := CheckAlphabet(alpha)
	if err != nil {
		return nil, err
	}
	if key, err = CheckKey(key, alpha); err != nil {
		return nil, err
	}
	k := &Key{
		alphabet: alpha,
		key:      key,
		encode:   make(map[rune]rune, 2*len(alpha)),
		decode:   make(map[rune]rune, 2*len(alpha)),
	}
	a, c := []rune(alpha), []rune(key)
	// upper case pairs first, lower case pairs win for caseless characters
	for i := range a {
		k.encode[unicode.ToUpper(a[i])] = unicode.ToUpper(c[i])
		k.decode[unicode.ToUpper(c[i])] = unicode.ToUpper(a[i])
	}
	for i := range a {
		k.encode[a[i]] = c[i]
		k.decode[c[i]] = a[i]
	}
	return k, nil
}

// CheckAlphabet checks that all characters of an alphabet are unique.
// It returns the alphabet in lower case.
func CheckAlphabet(alpha string) (string, error) {
	a, err := alphabet.New(alpha)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAlphabetInvalid, err)
	}
	return a.String(), nil
}

// CheckKey checks a key against an already checked alphabet:
//   - the characters of the key must be unique
//   - the key must be as long as the alphabet
//   - key and alphabet must consist of the same set of characters
//
// It returns the key in lower case.
func CheckKey(key, alpha string) (string, error) {
	key = strings.ToLower(key)
	runes := []rune(key)
	set := make(map[rune]bool, len(runes))
	for _, r := range runes {
		if set[r] {
			return "", fmt.Errorf("%w: key characters must be unique", ErrKeyInvalid)
		}
		set[r] = true
	}
	a := []rune(strings.ToLower(alpha))
	if len(runes) != len(a) {
		return "", fmt.Errorf("%w: key must be as long as the alphabet", ErrKeyInvalid)
	}
	for _, r := range a {
		if !set[r] {
			return "", fmt.Errorf("%w: key must use the same set of characters as the alphabet",
				ErrKeyInvalid)
		}
	}
	return key, nil
}

// Alphabet returns the (lower case) alphabet of the key.
func (k *Key) Alphabet() string {
	return k.alphabet
}

// String returns the key in lower case.
func (k *Key) String() string {
	return k.key
}

// Encode enciphers a plaintext.
func (k *Key) Encode(plaintext string) string {
	return translate(plaintext, k.encode)
}

// Decode deciphers a ciphertext.
func (k *Key) Decode(ciphertext string) string {
	return translate(ciphertext, k.decode)
}

func translate(text string, table map[rune]rune) string {
	return strings.Map(func(r rune) rune {
		if t, ok := table[r]; ok {
			return t
		}
		return r
	}, text)
}

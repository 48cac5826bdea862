/*
Package subbreaker breaks monoalphabetic substitution ciphers.

It does not need a known plaintext. The breaker relies on a statistical
language model: a table of quadgram scores (sequences of four characters)
compiled from a text corpus of the target language. A candidate key is judged
by the "fitness" of the plaintext it produces, i.e. the average quadgram score
of the text. Fitness values are normalized in a way that typical text of the
model's language scores around 100. Random text scores much lower, nonsense
packed with frequent quadgrams (e.g., "tioningatheling") scores higher.

Breaking a cipher is a randomized local search: starting from a random key,
pairs of key characters are swapped as long as the fitness improves (hill
climbing). Once a local maximum is reached, the search restarts with a new
random key. The search stops when the same maximum has been found a given
number of times (consolidation), or when the round budget is exhausted.

Quadgram models are built with BuildModel and serialized by package quadjson.
Package key performs the actual transcoding of texts.

Further Reading

	http://practicalcryptography.com/cryptanalysis/text-characterisation/quadgrams/
	https://en.wikipedia.org/wiki/Substitution_cipher

----------------------------------------------------------------------

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer@com>

All rights reserved.

License information is available in the LICENSE file.
*/
package subbreaker

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'subbreaker'
func tracer() tracing.Trace {
	return tracing.Select("subbreaker")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}

package subbreaker

import "sync/atomic"

// climber performs hill climbing for one restart round at a time. The
// ciphertext, its character positions and the score table are shared
// read-only between climbers; the plaintext buffer is owned by the climber.
type climber struct {
	scores    scoreTable
	cipher    []int   // ciphertext as alphabet indices
	positions [][]int // positions of each alphabet index within cipher
	plain     []int
	inverse   []int
	stop      *atomic.Bool
}

func newClimber(scores scoreTable, cipher []int, positions [][]int, stop *atomic.Bool) *climber {
	return &climber{
		scores:    scores,
		cipher:    cipher,
		positions: positions,
		plain:     make([]int, len(cipher)),
		inverse:   make([]int, len(positions)),
		stop:      stop,
	}
}

// climb swaps pairs of key characters as long as this improves the score,
// modifying key in place. key[p] is the cipher symbol for plaintext symbol p.
//
// For every pair only the plaintext positions affected by the swap are
// updated, then the whole plaintext is rescored. A swap is kept if it
// strictly improves the best score of this climb, otherwise it is reverted.
// The climb ends after a full pass over all pairs without improvement.
//
// climb returns the score of the local maximum and the number of keys
// evaluated. If the stop flag is raised, climb returns early with ok=false.
func (c *climber) climb(key []int) (best int64, keys int64, ok bool) {
	for p, ch := range key {
		c.inverse[ch] = p
	}
	for pos, ch := range c.cipher {
		c.plain[pos] = c.inverse[ch]
	}
	n := len(key)
	for better := true; better; {
		better = false
		for i := 0; i < n-1; i++ {
			for j := i + 1; j < n; j++ {
				if c.stop != nil && c.stop.Load() {
					return best, keys, false
				}
				ch1, ch2 := key[i], key[j]
				c.assign(ch1, j)
				c.assign(ch2, i)
				keys++
				if score := c.scores.sum(c.plain); score > best {
					best = score
					better = true
					key[i], key[j] = ch2, ch1
				} else {
					c.assign(ch1, i)
					c.assign(ch2, j)
				}
			}
		}
	}
	return best, keys, true
}

// assign lets every occurrence of cipher symbol ch decode to plaintext symbol p.
func (c *climber) assign(ch, p int) {
	for _, pos := range c.positions[ch] {
		c.plain[pos] = p
	}
}

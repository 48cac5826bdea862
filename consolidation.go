package subbreaker

// consolidation reduces the results of hill climbing rounds in round order,
// no matter in which order they arrive, and decides when to stop.
//
// A strictly better local maximum replaces the best one and resets the hit
// counter to 1; reaching the best maximum again increments it; worse maxima
// are ignored. Once the hit counter reaches limit, the search is done.
type consolidation struct {
	limit   int
	best    int64
	hits    int
	bestKey []int
	keys    int64 // keys evaluated by all reduced rounds
	rounds  int   // number of reduced rounds; index of the next round to reduce
	done    bool
	pending map[int]round
}

func newConsolidation(limit, keyLen int) *consolidation {
	return &consolidation{
		limit:   limit,
		hits:    1,
		bestKey: identityKey(keyLen),
		pending: make(map[int]round),
	}
}

// add buffers r and reduces all rounds which are due. It returns true when
// this consolidates the search. Rounds added after that are ignored.
func (c *consolidation) add(r round) bool {
	if c.done {
		return false
	}
	c.pending[r.index] = r
	for {
		next, ok := c.pending[c.rounds]
		if !ok {
			return false
		}
		delete(c.pending, c.rounds)
		c.rounds++
		c.keys += next.keys
		switch {
		case next.score > c.best:
			c.best, c.hits, c.bestKey = next.score, 1, next.key
			tracer().Debugf("round %d: new local maximum %d", next.index, next.score)
		case next.score == c.best:
			c.hits++
			tracer().Debugf("round %d: local maximum %d reached %d times", next.index, next.score, c.hits)
		default:
			continue
		}
		if c.hits >= c.limit {
			c.done = true
			c.pending = nil
			return true
		}
	}
}

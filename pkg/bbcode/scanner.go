// scanner.go finds the next tag match in a span of input.
package bbcode

import "regexp"

// rawMatch is one located open token.
type rawMatch struct {
	def      *TagDefinition
	start    int // relative to the scanned span
	end      int
	captures map[string]string
}

// scanner walks one span of input. It remembers the next match of every
// candidate so that a definition is searched again only once the cursor
// has moved past its cached match.
type scanner struct {
	input      string
	candidates []*TagDefinition
	cache      []cachedMatch
}

type cachedMatch struct {
	valid bool
	none  bool  // no match at or after from
	from  int   // cursor the cache entry was computed for
	loc   []int // submatch indices, absolute
}

func newScanner(input string, candidates []*TagDefinition) *scanner {
	return &scanner{
		input:      input,
		candidates: candidates,
		cache:      make([]cachedMatch, len(candidates)),
	}
}

// next returns the earliest match at or after pos. Among matches starting at
// the same offset the candidate listed first wins; candidates arrive in
// registration order with fallback definitions last. ok is false when no
// candidate matches anywhere in the rest of the span.
func (s *scanner) next(pos int) (m rawMatch, ok bool) {
	best := -1
	var bestLoc []int

	for i, def := range s.candidates {
		loc := s.find(i, def, pos)
		if loc == nil {
			continue
		}
		// Strictly earlier only: ties keep the earlier candidate.
		if best == -1 || loc[0] < bestLoc[0] {
			best = i
			bestLoc = loc
		}
	}

	if best == -1 {
		return rawMatch{}, false
	}

	def := s.candidates[best]
	return rawMatch{
		def:      def,
		start:    bestLoc[0],
		end:      bestLoc[1],
		captures: captures(def, s.input, bestLoc),
	}, true
}

func (s *scanner) find(i int, def *TagDefinition, pos int) []int {
	c := &s.cache[i]
	if c.valid && c.from <= pos {
		if c.none {
			return nil
		}
		if c.loc[0] >= pos {
			return c.loc
		}
	}

	*c = cachedMatch{valid: true, from: pos}
	loc := def.open.FindStringSubmatchIndex(s.input[pos:])
	if loc == nil {
		c.none = true
		return nil
	}
	for j := range loc {
		if loc[j] >= 0 {
			loc[j] += pos
		}
	}
	c.loc = loc
	return loc
}

// captures extracts the named groups of a match.
func captures(def *TagDefinition, input string, loc []int) map[string]string {
	names := def.open.SubexpNames()
	out := make(map[string]string)
	for i, name := range names {
		if name == "" || 2*i+1 >= len(loc) || loc[2*i] < 0 {
			continue
		}
		out[name] = input[loc[2*i]:loc[2*i+1]]
	}
	return out
}

// closeFinder locates close tokens for one definition within one span.
// Walking from a cursor over family opens and closes is deterministic, so
// every walk is recorded as a chain of tokens and later opens that land on a
// known cursor are answered from it. Each token is searched for once.
type closeFinder struct {
	input    string
	def      *TagDefinition
	sameName []*TagDefinition
	chains   []*closeChain
	noClose  int // no close token starts at or after this offset
}

type closeToken struct {
	start, end int
	close      bool
}

type closeChain struct {
	tokens []closeToken
	at     map[int]int // cursor -> index of the token starting the walk from it
	match  []int       // per cursor index, the balancing close token or -1
}

func newCloseFinder(input string, def *TagDefinition, sameName []*TagDefinition) *closeFinder {
	return &closeFinder{input: input, def: def, sameName: sameName, noClose: len(input) + 1}
}

// find returns the start and end of the close token balancing an open token
// of the definition that ended at pos. Opens of any definition sharing its
// name raise the depth; closes lower it.
func (f *closeFinder) find(pos int) (int, int, bool) {
	if pos >= f.noClose {
		return 0, 0, false
	}
	for _, c := range f.chains {
		if i, ok := c.at[pos]; ok {
			return c.result(i)
		}
	}
	c := f.walk(pos)
	f.chains = append(f.chains, c)
	return c.result(c.at[pos])
}

func (c *closeChain) result(i int) (int, int, bool) {
	j := c.match[i]
	if j < 0 {
		return 0, 0, false
	}
	return c.tokens[j].start, c.tokens[j].end, true
}

// walk records every token from pos until no close token remains.
func (f *closeFinder) walk(pos int) *closeChain {
	c := &closeChain{at: map[int]int{pos: 0}}
	cursor := pos

	closeLoc := nextIndex(f.def.close, f.input, cursor)
	opens := make([][]int, len(f.sameName))
	for i, d := range f.sameName {
		opens[i] = nextIndex(d.open, f.input, cursor)
	}

	for closeLoc != nil {
		openIdx := -1
		for i, loc := range opens {
			if loc != nil && loc[0] < closeLoc[0] && (openIdx == -1 || loc[0] < opens[openIdx][0]) {
				openIdx = i
			}
		}

		if openIdx >= 0 {
			c.tokens = append(c.tokens, closeToken{start: opens[openIdx][0], end: opens[openIdx][1]})
			cursor = opens[openIdx][1]
		} else {
			c.tokens = append(c.tokens, closeToken{start: closeLoc[0], end: closeLoc[1], close: true})
			cursor = closeLoc[1]
		}
		c.at[cursor] = len(c.tokens)

		// Only searches the cursor has moved past need to run again.
		if closeLoc[0] < cursor {
			closeLoc = nextIndex(f.def.close, f.input, cursor)
		}
		for i, loc := range opens {
			if loc != nil && loc[0] < cursor {
				opens[i] = nextIndex(f.sameName[i].open, f.input, cursor)
			}
		}
	}
	if cursor < f.noClose {
		f.noClose = cursor
	}

	// The walk from cursor i ends at the first token j >= i where the running
	// depth, starting at one, drops to zero.
	n := len(c.tokens)
	depth := make([]int, n+1)
	for k, t := range c.tokens {
		if t.close {
			depth[k+1] = depth[k] - 1
		} else {
			depth[k+1] = depth[k] + 1
		}
	}
	c.match = make([]int, n+1)
	next := make(map[int]int)
	for i := n; i >= 0; i-- {
		c.match[i] = -1
		if k, ok := next[depth[i]-1]; ok {
			c.match[i] = k - 1
		}
		next[depth[i]] = i
	}
	return c
}

// nextIndex returns the absolute location of the first match at or after pos.
func nextIndex(re *regexp.Regexp, input string, pos int) []int {
	if pos > len(input) {
		return nil
	}
	loc := re.FindStringIndex(input[pos:])
	if loc == nil {
		return nil
	}
	return []int{loc[0] + pos, loc[1] + pos}
}

package rowstore

import (
	"math/rand/v2"
	"strings"
)

var adjectives = []string{
	"pretty", "large", "big", "small", "tall", "short", "long", "handsome",
	"plain", "quaint", "clean", "elegant", "easy", "angry", "crazy", "helpful",
	"mushy", "odd", "unsightly", "adorable", "important", "inexpensive", "cheap",
	"expensive", "fancy",
}

// "brown" appears twice; other implementations sample from the same list.
var colours = []string{
	"red", "yellow", "blue", "green", "pink", "brown", "purple", "brown",
	"white", "black", "orange",
}

var nouns = []string{
	"table", "chair", "house", "bbq", "desk", "car", "pony", "cookie",
	"sandwich", "burger", "pizza", "mouse", "keyboard",
}

// Labeler draws "<adjective> <colour> <noun>" labels.
type Labeler struct {
	rng *rand.Rand
}

// NewLabeler returns a Labeler drawing from rng. A nil rng uses a randomly
// seeded source.
func NewLabeler(rng *rand.Rand) *Labeler {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Labeler{rng: rng}
}

// Label returns one label, sampling each lexicon independently and uniformly.
func (l *Labeler) Label() string {
	var b strings.Builder
	b.WriteString(pick(l.rng, adjectives))
	b.WriteByte(' ')
	b.WriteString(pick(l.rng, colours))
	b.WriteByte(' ')
	b.WriteString(pick(l.rng, nouns))
	return b.String()
}

func pick(rng *rand.Rand, words []string) string {
	return words[rng.IntN(len(words))]
}

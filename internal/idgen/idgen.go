// Package idgen produces process-unique string identifiers of the form
// <prefix><unix millis>-<random 0..99999>.
//
// Identifiers are not cryptographically unique: two ids generated in the same
// millisecond collide with probability 1/100000, which is acceptable for a
// single-user ledger.
package idgen

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// InvoicePrefix is prepended to invoice identifiers.
const InvoicePrefix = "FACT-"

const randomSpace = 100000

// Generator builds identifiers from a clock and a random source.
type Generator struct {
	Now    func() time.Time
	Random func() uint32
}

// New returns a Generator using the wall clock and uuid-backed randomness.
func New() *Generator {
	return &Generator{Now: time.Now, Random: randomUint32}
}

// Generate returns prefix + timestamp + "-" + random component.
func (g *Generator) Generate(prefix string) string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	rnd := randomUint32
	if g.Random != nil {
		rnd = g.Random
	}
	return prefix + strconv.FormatInt(now().UnixMilli(), 10) + "-" + strconv.FormatUint(uint64(rnd()%randomSpace), 10)
}

var defaultGenerator = New()

// Generate returns an identifier from the default generator.
func Generate(prefix string) string {
	return defaultGenerator.Generate(prefix)
}

func randomUint32() uint32 {
	return uuid.New().ID()
}

package order

import (
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Kind tells which flow issued a ticket.
type Kind string

const (
	KindOrder  Kind = "order"
	KindServer Kind = "server"
)

// Default reference prefixes per kind.
const (
	DefaultOrderPrefix  = "TKY"
	DefaultServerPrefix = "SRV"
)

const (
	randomLen = 6
	base36    = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// ReferencePattern matches every reference a Generator produces.
var ReferencePattern = regexp.MustCompile(`^[A-Z]+-[A-Z0-9]+-[A-Z0-9]{6}$`)

// Ticket is the reference handed to a customer once a flow completes.
// References are display artifacts: they are never registered anywhere, so
// two tickets may collide and nothing can tell.
type Ticket struct {
	Reference string `json:"reference"`
	Kind      Kind   `json:"kind"`
}

// Generator builds references of the form PREFIX-TIME-RANDOM where TIME is
// the Unix time in milliseconds and both parts are uppercase base 36.
type Generator struct {
	prefixes map[Kind]string
	now      func() time.Time
	intN     func(n int) int
}

// GeneratorOption customizes a Generator.
type GeneratorOption func(*Generator)

// WithPrefix overrides the prefix used for a kind. Empty prefixes are ignored.
func WithPrefix(kind Kind, prefix string) GeneratorOption {
	return func(g *Generator) {
		prefix = strings.ToUpper(strings.TrimSpace(prefix))
		if prefix != "" {
			g.prefixes[kind] = prefix
		}
	}
}

// WithClock sets the time source.
func WithClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) {
		g.now = now
	}
}

// WithRand sets the random source.
func WithRand(r *rand.Rand) GeneratorOption {
	return func(g *Generator) {
		g.intN = r.IntN
	}
}

// NewGenerator creates a generator with the default prefixes.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		prefixes: map[Kind]string{
			KindOrder:  DefaultOrderPrefix,
			KindServer: DefaultServerPrefix,
		},
		now:  time.Now,
		intN: rand.IntN,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Prefix returns the prefix used for a kind.
func (g *Generator) Prefix(kind Kind) string {
	if p, ok := g.prefixes[kind]; ok {
		return p
	}
	return DefaultOrderPrefix
}

// New issues a ticket for the given kind.
func (g *Generator) New(kind Kind) Ticket {
	stamp := strings.ToUpper(strconv.FormatInt(g.now().UnixMilli(), 36))

	var random strings.Builder
	random.Grow(randomLen)
	for i := 0; i < randomLen; i++ {
		random.WriteByte(base36[g.intN(len(base36))])
	}

	return Ticket{
		Reference: g.Prefix(kind) + "-" + stamp + "-" + random.String(),
		Kind:      kind,
	}
}

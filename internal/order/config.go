// Package order holds the server-configuration wizard: the selections a
// customer makes, the step machine that gates them, the price derived from
// them and the ticket reference issued at the end.
package order

import (
	"fmt"
	"strings"
)

// ServerType is the kind of server being configured.
// The zero value is Unselected.
type ServerType int

const (
	Unselected ServerType = iota
	Community
	Gaming
	Other
)

var serverTypeNames = [...]string{"", "community", "gaming", "other"}

// ServerTypes lists the selectable types in display order.
var ServerTypes = []ServerType{Community, Gaming, Other}

func (t ServerType) String() string {
	if t < Unselected || t > Other {
		return ""
	}
	return serverTypeNames[t]
}

// Label returns the customer-facing name of the type.
func (t ServerType) Label() string {
	switch t {
	case Community:
		return "Communauté"
	case Gaming:
		return "Jeux"
	case Other:
		return "Autre"
	default:
		return "Non sélectionné"
	}
}

// Selected reports whether t is one of the selectable types.
func (t ServerType) Selected() bool {
	return t == Community || t == Gaming || t == Other
}

// ParseServerType parses "community", "gaming", "other" or "" (Unselected).
func ParseServerType(s string) (ServerType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, name := range serverTypeNames {
		if name == key {
			return ServerType(i), nil
		}
	}
	return Unselected, fmt.Errorf("unknown server type %q", s)
}

func (t ServerType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *ServerType) UnmarshalText(text []byte) error {
	parsed, err := ParseServerType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Field names one of the boolean options of a configuration.
type Field int

const (
	WithBot Field = iota
	BotManaged
	BoostHelp
	Promo
)

// Fields lists every option in pricing order.
var Fields = []Field{WithBot, BotManaged, BoostHelp, Promo}

func (f Field) String() string {
	switch f {
	case WithBot:
		return "withBot"
	case BotManaged:
		return "botManaged"
	case BoostHelp:
		return "boostHelp"
	case Promo:
		return "promo"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// Label returns the customer-facing description of the option.
func (f Field) Label() string {
	switch f {
	case WithBot:
		return "Avec bot"
	case BotManaged:
		return "Bot logé par Takayama"
	case BoostHelp:
		return "Aide au boost du serveur"
	case Promo:
		return "Pub / Promotion"
	default:
		return f.String()
	}
}

// Step returns the wizard step on which the option is edited.
func (f Field) Step() Step {
	switch f {
	case WithBot, BotManaged:
		return StepBot
	default:
		return StepServices
	}
}

// ParseField accepts the camelCase names as well as snake_case variants.
func ParseField(s string) (Field, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", ""))
	for _, f := range Fields {
		if strings.ToLower(f.String()) == key {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown option %q", s)
}

// Config is one order's selections. The zero value is the default
// configuration a wizard opens with.
//
// BotManaged is only ever true together with WithBot; Set and Toggle keep
// that invariant.
type Config struct {
	ServerType ServerType `json:"type"`
	WithBot    bool       `json:"with_bot"`
	BotManaged bool       `json:"bot_managed"`
	BoostHelp  bool       `json:"boost_help"`
	Promo      bool       `json:"promo"`
}

// Get returns the value of an option.
func (c Config) Get(f Field) bool {
	switch f {
	case WithBot:
		return c.WithBot
	case BotManaged:
		return c.BotManaged
	case BoostHelp:
		return c.BoostHelp
	case Promo:
		return c.Promo
	}
	return false
}

// Set assigns an option and reports whether the configuration changed.
// Clearing WithBot clears BotManaged; enabling BotManaged without a bot is
// absorbed.
func (c *Config) Set(f Field, v bool) bool {
	before := *c
	switch f {
	case WithBot:
		c.WithBot = v
		if !v {
			c.BotManaged = false
		}
	case BotManaged:
		c.BotManaged = v && c.WithBot
	case BoostHelp:
		c.BoostHelp = v
	case Promo:
		c.Promo = v
	}
	return *c != before
}

// Toggle flips an option under the same rules as Set.
func (c *Config) Toggle(f Field) bool {
	return c.Set(f, !c.Get(f))
}

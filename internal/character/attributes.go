package character

import (
	"strconv"
	"strings"

	"github.com/mhtoin/initbot/internal/errors"
	"github.com/mhtoin/initbot/internal/match"
)

// unset is the value that unsets a nullable attribute.
const unset = "none"

// MaxInt bounds the magnitude of every whole-number attribute.
const MaxInt = 1_000_000

type attribute struct {
	name string
	get  func(c *Character) string
	set  func(c *Character, v string) error
}

func intField(name string, field func(c *Character) **int) attribute {
	return attribute{
		name: name,
		get:  func(c *Character) string { return formatInt(*field(c)) },
		set: func(c *Character, v string) error {
			if strings.EqualFold(v, unset) {
				*field(c) = nil
				return nil
			}
			n, err := parseInt(name, v)
			if err != nil {
				return err
			}
			*field(c) = Int(n)
			return nil
		},
	}
}

func stringField(name string, field func(c *Character) **string) attribute {
	return attribute{
		name: name,
		get: func(c *Character) string {
			if s := *field(c); s != nil {
				return *s
			}
			return unset
		},
		set: func(c *Character, v string) error {
			if strings.EqualFold(v, unset) {
				*field(c) = nil
				return nil
			}
			*field(c) = String(v)
			return nil
		},
	}
}

var attributes = []attribute{
	{
		name: "name",
		get:  func(c *Character) string { return c.Name },
		set: func(c *Character, v string) error {
			if strings.TrimSpace(v) == "" {
				return errors.InvalidArgument("a character needs a name")
			}
			c.Name = v
			return nil
		},
	},
	{
		name: "user",
		get:  func(c *Character) string { return c.User },
		set:  func(c *Character, v string) error { c.User = v; return nil },
	},
	{
		name: "active",
		get:  func(c *Character) string { return strconv.FormatBool(c.Active) },
		set: func(c *Character, v string) error {
			b, err := parseBool(v)
			if err != nil {
				return err
			}
			c.Active = b
			return nil
		},
	},
	{
		name: "level",
		get:  func(c *Character) string { return strconv.Itoa(c.Level) },
		set: func(c *Character, v string) error {
			n, err := parseInt("level", v)
			if err != nil {
				return err
			}
			c.Level = n
			return nil
		},
	},
	intField("strength", func(c *Character) **int { return &c.Strength }),
	intField("agility", func(c *Character) **int { return &c.Agility }),
	intField("stamina", func(c *Character) **int { return &c.Stamina }),
	intField("personality", func(c *Character) **int { return &c.Personality }),
	intField("intelligence", func(c *Character) **int { return &c.Intelligence }),
	intField("luck", func(c *Character) **int { return &c.Luck }),
	intField("initial_luck", func(c *Character) **int { return &c.InitialLuck }),
	intField("hit_points", func(c *Character) **int { return &c.HitPoints }),
	{
		name: "equipment",
		get: func(c *Character) string {
			if c.Equipment == nil {
				return unset
			}
			return strings.Join(c.Equipment, ", ")
		},
		set: func(c *Character, v string) error {
			if strings.EqualFold(v, unset) {
				c.Equipment = nil
				return nil
			}
			var items []string
			for _, item := range strings.Split(v, ",") {
				if item = strings.TrimSpace(item); item != "" {
					items = append(items, item)
				}
			}
			c.Equipment = items
			return nil
		},
	},
	intField("occupation", func(c *Character) **int { return &c.Occupation }),
	intField("exp", func(c *Character) **int { return &c.Exp }),
	stringField("alignment", func(c *Character) **string { return &c.Alignment }),
	intField("initiative", func(c *Character) **int { return &c.Initiative }),
	{
		name: "initiative_time",
		get: func(c *Character) string {
			if c.InitiativeTime == nil {
				return unset
			}
			return strconv.FormatInt(*c.InitiativeTime, 10)
		},
		set: func(c *Character, v string) error {
			if strings.EqualFold(v, unset) {
				c.InitiativeTime = nil
				return nil
			}
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return errors.InvalidArgumentf("initiative_time must be a unix timestamp, not '%s'", v)
			}
			c.InitiativeTime = &n
			return nil
		},
	},
	intField("initiative_modifier", func(c *Character) **int { return &c.InitiativeModifier }),
	intField("hit_die", func(c *Character) **int { return &c.HitDie }),
	intField("augur", func(c *Character) **int { return &c.Augur }),
	stringField("cls", func(c *Character) **string { return &c.Cls }),
}

// Attributes lists the names accepted by Set, in record order.
func Attributes() []string {
	names := make([]string, len(attributes))
	for i, a := range attributes {
		names[i] = a.name
	}
	return names
}

// ResolveAttribute maps an exact name or unique prefix such as "int" to
// the attribute name.
func ResolveAttribute(query string) (string, error) {
	a, err := match.ExactOrUniquePrefix(query, attributes, func(a attribute) string { return a.name })
	if err != nil {
		return "", err
	}
	return a.name, nil
}

// Set assigns value to the attribute named by query and returns the
// resolved attribute name. Numeric attributes take integers, "active"
// takes a boolean, "equipment" a comma separated list and "none" clears
// nullable attributes.
func (c *Character) Set(query, value string) (string, error) {
	a, err := match.ExactOrUniquePrefix(query, attributes, func(a attribute) string { return a.name })
	if err != nil {
		return "", err
	}
	if err := a.set(c, value); err != nil {
		return "", err
	}
	return a.name, nil
}

// Get renders the current value of the named attribute.
func (c *Character) Get(name string) (string, error) {
	for _, a := range attributes {
		if a.name == name {
			return a.get(c), nil
		}
	}
	return "", errors.NoMatch(name, Attributes())
}

func formatInt(v *int) string {
	if v == nil {
		return unset
	}
	return strconv.Itoa(*v)
}

func parseInt(name, v string) (int, error) {
	if !match.IsInt(v) {
		return 0, errors.InvalidArgumentf("%s must be a whole number, not '%s'", name, v)
	}
	n, err := strconv.Atoi(v)
	if err != nil || n > MaxInt || n < -MaxInt {
		return 0, errors.InvalidArgumentf("%s is out of range: %s", name, v)
	}
	return n, nil
}

func parseBool(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	}
	return false, errors.InvalidArgumentf("active must be true or false, not '%s'", v)
}

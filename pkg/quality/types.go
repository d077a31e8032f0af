package quality

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
)

// Type is the declared type tag of a column or field.
type Type uint8

const (
	// TypeNull marks a column whose entries are all missing.
	TypeNull Type = iota
	TypeString
	TypeInteger
	TypeFloat
	TypeBoolean
	TypeDateTime
	// TypeMixed marks a column holding values of more than one kind.
	TypeMixed
)

var typeNames = [...]string{
	TypeNull:     "null",
	TypeString:   "string",
	TypeInteger:  "integer",
	TypeFloat:    "float",
	TypeBoolean:  "boolean",
	TypeDateTime: "datetime",
	TypeMixed:    "mixed",
}

// String returns the lower-case tag name.
func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

// MarshalText encodes the tag by name so reports and schemas read well as JSON or YAML.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText accepts the names produced by String.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseType resolves a type tag from its name.
func ParseType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range typeNames {
		if n == name {
			return Type(i), nil
		}
	}
	return TypeNull, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

// TypeOf reports the tag of a single runtime value.
// Missing values (nil, NaN) are TypeNull; unsupported kinds are TypeMixed.
func TypeOf(v any) Type {
	switch val := v.(type) {
	case nil:
		return TypeNull
	case string:
		return TypeString
	case bool:
		return TypeBoolean
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return TypeInteger
	case float32:
		if math.IsNaN(float64(val)) {
			return TypeNull
		}
		return TypeFloat
	case float64:
		if math.IsNaN(val) {
			return TypeNull
		}
		return TypeFloat
	case json.Number:
		if _, err := val.Int64(); err == nil {
			return TypeInteger
		}
		return TypeFloat
	case time.Time:
		return TypeDateTime
	case *time.Time:
		if val == nil {
			return TypeNull
		}
		return TypeDateTime
	default:
		return TypeMixed
	}
}

// IsMissing reports whether v counts as a missing entry.
func IsMissing(v any) bool {
	return TypeOf(v) == TypeNull
}

// TypeSet is the set of tags a column or field accepts.
type TypeSet []Type

// Is accepts exactly one tag.
func Is(t Type) TypeSet {
	return TypeSet{t}
}

// OneOf accepts any of the given tags.
func OneOf(ts ...Type) TypeSet {
	return TypeSet(ts)
}

// Accepts reports whether t is a member of the set.
func (s TypeSet) Accepts(t Type) bool {
	return slices.Contains(s, t)
}

// String names a single type alone and a larger set as "one of [...]".
func (s TypeSet) String() string {
	if len(s) == 1 {
		return s[0].String()
	}
	names := make([]string, len(s))
	for i, t := range s {
		names[i] = t.String()
	}
	return "one of [" + strings.Join(names, ", ") + "]"
}

// Schema maps column or field names to their accepted tags.
type Schema map[string]TypeSet

// Fields returns the schema keys in sorted order.
func (s Schema) Fields() []string {
	fields := make([]string, 0, len(s))
	for f := range s {
		fields = append(fields, f)
	}
	slices.Sort(fields)
	return fields
}

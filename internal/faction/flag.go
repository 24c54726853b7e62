package faction

import (
	"fmt"
	"strings"
)

// List is a flag.Value collecting repeated name=#rrggbb entries.
type List []Faction

func (l *List) String() string {
	if l == nil {
		return ""
	}
	parts := make([]string, len(*l))
	for i, f := range *l {
		parts[i] = f.Name + "=" + f.Hex()
	}
	return strings.Join(parts, ",")
}

// Set parses one entry. A bare colour without a name is accepted.
func (l *List) Set(value string) error {
	name, hex, ok := strings.Cut(value, "=")
	if !ok {
		name, hex = "", value
	}
	f, err := Parse(name, hex)
	if err != nil {
		return err
	}
	*l = append(*l, f)
	return nil
}

// ParseList parses a comma separated list of entries as accepted by Set.
func ParseList(s string) ([]Faction, error) {
	var l List
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if err := l.Set(item); err != nil {
			return nil, fmt.Errorf("parsing faction list: %w", err)
		}
	}
	return l, nil
}

package funding

import (
	"fmt"
	"sort"
	"strings"
)

// SortOrder is how the city list is ordered.
type SortOrder int

const (
	SortDefault SortOrder = iota
	SortByName
	SortByFunding
)

var sortOrderNames = []string{"default", "name", "funding"}

func (s SortOrder) String() string {
	if int(s) < len(sortOrderNames) {
		return sortOrderNames[s]
	}
	return fmt.Sprintf("SortOrder(%d)", int(s))
}

// Next cycles to the following order.
func (s SortOrder) Next() SortOrder {
	return (s + 1) % SortOrder(len(sortOrderNames))
}

// ParseSortOrder accepts default, name or funding.
func ParseSortOrder(s string) (SortOrder, error) {
	for i, name := range sortOrderNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return SortOrder(i), nil
		}
	}
	if strings.TrimSpace(s) == "" {
		return SortDefault, nil
	}
	return SortDefault, fmt.Errorf("unknown sort order %q (valid: %s)", s, strings.Join(sortOrderNames, ", "))
}

// SortCities returns a sorted copy. Default restores row order, name sorts
// A-Z and funding sorts largest first; ties keep row order.
func SortCities(cities []City, order SortOrder) []City {
	out := append([]City(nil), cities...)
	switch order {
	case SortByName:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	case SortByFunding:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Funding > out[j].Funding
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Index < out[j].Index
		})
	}
	return out
}

package planet

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"accrete-server/internal/accrete"

	"github.com/google/uuid"
)

// Classify gives a coarse type for display and filtering.
func Classify(b accrete.Body) PlanetType {
	switch {
	case b.GasGiant:
		return PlanetTypeGasGiant
	case b.GreenhouseEffect:
		return PlanetTypeHothouse
	case b.IceCover > 0.5:
		return PlanetTypeIce
	case b.Hydrosphere > 0.05:
		return PlanetTypeTerrestrial
	default:
		return PlanetTypeBarren
	}
}

var romanNumerals = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

func roman(n int) string {
	var sb strings.Builder
	for _, r := range romanNumerals {
		for n >= r.value {
			sb.WriteString(r.symbol)
			n -= r.value
		}
	}
	return sb.String()
}

// moonSuffix maps 0, 1, ... 25, 26 to a, b, ... z, aa.
func moonSuffix(i int) string {
	s := ""
	for i++; i > 0; i = (i - 1) / 26 {
		s = string(rune('a'+(i-1)%26)) + s
	}
	return s
}

// PlanetName names the planet at zero-based index in the usual catalogue
// style, "Sol III".
func PlanetName(systemName string, index int) string {
	return fmt.Sprintf("%s %s", systemName, roman(index+1))
}

// MoonName appends a letter to the host's name, "Sol III a".
func MoonName(systemName string, hostIndex, index int) string {
	return fmt.Sprintf("%s %s", PlanetName(systemName, hostIndex), moonSuffix(index))
}

// Flatten turns a system's body tree into insert rows, planets first in
// orbital order, each followed by its moons.
func Flatten(systemID uuid.UUID, systemName string, bodies []accrete.Body) []BatchInsertRequest {
	var rows []BatchInsertRequest
	for i, b := range bodies {
		rows = append(rows, newRow(systemID, PlanetName(systemName, i), nil, i, b))
		for j, m := range b.Moons {
			host := i
			rows = append(rows, newRow(systemID, MoonName(systemName, i, j), &host, j, m))
		}
	}
	return rows
}

func newRow(systemID uuid.UUID, name string, parent *int, index int, b accrete.Body) BatchInsertRequest {
	b.Moons = nil
	return BatchInsertRequest{
		SystemID:    systemID,
		ParentIndex: parent,
		BodyIndex:   index,
		Name:        name,
		Type:        Classify(b),
		RetainedGas: b.RetainedGas(),
		Body:        b,
	}
}

// Nest rebuilds the body tree from stored rows. Rows may come in any order;
// moons whose host is missing are dropped.
func Nest(rows []Body) []accrete.Body {
	planets := make(map[int]int)
	var bodies []accrete.Body
	for _, r := range sortedRows(rows, true) {
		planets[r.BodyIndex] = len(bodies)
		b := r.Body
		b.Moons = nil
		bodies = append(bodies, b)
	}
	for _, r := range sortedRows(rows, false) {
		host, ok := planets[*r.ParentIndex]
		if !ok {
			continue
		}
		bodies[host].Moons = append(bodies[host].Moons, r.Body)
	}
	if bodies == nil {
		bodies = []accrete.Body{}
	}
	return bodies
}

func sortedRows(rows []Body, planets bool) []Body {
	var out []Body
	for _, r := range rows {
		if (r.ParentIndex == nil) == planets {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b Body) int {
		if a.ParentIndex != nil && b.ParentIndex != nil {
			if c := cmp.Compare(*a.ParentIndex, *b.ParentIndex); c != 0 {
				return c
			}
		}
		return cmp.Compare(a.BodyIndex, b.BodyIndex)
	})
	return out
}

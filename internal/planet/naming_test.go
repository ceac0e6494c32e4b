package planet

import (
	"testing"

	"accrete-server/internal/accrete"

	"github.com/google/uuid"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		body accrete.Body
		want PlanetType
	}{
		{"gas giant", accrete.Body{GasGiant: true, GreenhouseEffect: true}, PlanetTypeGasGiant},
		{"runaway greenhouse", accrete.Body{GreenhouseEffect: true, Hydrosphere: 0.9}, PlanetTypeHothouse},
		{"frozen", accrete.Body{IceCover: 0.8, Hydrosphere: 0.2}, PlanetTypeIce},
		{"oceans", accrete.Body{Hydrosphere: 0.7, IceCover: 0.02}, PlanetTypeTerrestrial},
		{"dry rock", accrete.Body{}, PlanetTypeBarren},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.body); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNames(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{PlanetName("Sol", 0), "Sol I"},
		{PlanetName("Sol", 3), "Sol IV"},
		{PlanetName("Sol", 8), "Sol IX"},
		{PlanetName("Vega", 13), "Vega XIV"},
		{MoonName("Sol", 2, 0), "Sol III a"},
		{MoonName("Sol", 4, 25), "Sol V z"},
		{MoonName("Sol", 4, 26), "Sol V aa"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

func TestFlattenNest(t *testing.T) {
	id := uuid.New()
	bodies := []accrete.Body{
		{A: 0.4, Mass: 1e-7},
		{A: 1.0, Mass: 3e-6, Hydrosphere: 0.7, Moons: []accrete.Body{{A: 0.002, Mass: 3e-8}, {A: 0.004, Mass: 1e-8}}},
		{A: 5.2, Mass: 1e-3, GasGiant: true, Moons: []accrete.Body{{A: 0.01, Mass: 2e-8}}},
	}

	rows := Flatten(id, "Sol", bodies)
	if len(rows) != 6 {
		t.Fatalf("got %d rows, want 6", len(rows))
	}

	want := []struct {
		name   string
		parent int
		index  int
	}{
		{"Sol I", -1, 0},
		{"Sol II", -1, 1},
		{"Sol II a", 1, 0},
		{"Sol II b", 1, 1},
		{"Sol III", -1, 2},
		{"Sol III a", 2, 0},
	}
	for i, w := range want {
		r := rows[i]
		parent := -1
		if r.ParentIndex != nil {
			parent = *r.ParentIndex
		}
		if r.Name != w.name || parent != w.parent || r.BodyIndex != w.index || r.SystemID != id {
			t.Errorf("row %d = (%q, %d, %d), want (%q, %d, %d)", i, r.Name, parent, r.BodyIndex, w.name, w.parent, w.index)
		}
		if r.Moons != nil {
			t.Errorf("row %d carries nested moons", i)
		}
	}
	if rows[4].Type != PlanetTypeGasGiant || rows[1].Type != PlanetTypeTerrestrial {
		t.Errorf("types = %q, %q", rows[4].Type, rows[1].Type)
	}

	// Stored rows come back in any order.
	stored := make([]Body, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		stored = append(stored, Body{ParentIndex: rows[i].ParentIndex, BodyIndex: rows[i].BodyIndex, Body: rows[i].Body})
	}
	tree := Nest(stored)
	if len(tree) != 3 {
		t.Fatalf("nested %d planets, want 3", len(tree))
	}
	for i := range bodies {
		if tree[i].A != bodies[i].A || len(tree[i].Moons) != len(bodies[i].Moons) {
			t.Fatalf("planet %d: a %v with %d moons, want a %v with %d", i, tree[i].A, len(tree[i].Moons), bodies[i].A, len(bodies[i].Moons))
		}
		for j := range bodies[i].Moons {
			if tree[i].Moons[j].A != bodies[i].Moons[j].A {
				t.Errorf("planet %d moon %d: a = %v, want %v", i, j, tree[i].Moons[j].A, bodies[i].Moons[j].A)
			}
		}
	}
}

func TestNest_Empty(t *testing.T) {
	got := Nest(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("Nest(nil) = %#v, want empty slice", got)
	}
}

func TestNest_OrphanMoonDropped(t *testing.T) {
	host := 7
	got := Nest([]Body{
		{BodyIndex: 0, Body: accrete.Body{A: 1}},
		{ParentIndex: &host, BodyIndex: 0, Body: accrete.Body{A: 0.001}},
	})
	if len(got) != 1 || len(got[0].Moons) != 0 {
		t.Errorf("Nest() = %+v", got)
	}
}

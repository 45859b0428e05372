package meadow

import (
	"testing"
)

func TestQuery_Map(t *testing.T) {
	type Comp1 struct{ a int }
	type Comp2 struct{ b float32 }
	type Comp3 struct{}

	ecs := MakeEcs()
	ecs.addEntity(Comp1{a: 1})                                 // comp1 only                       -- shouldn't match
	id2 := ecs.addEntity(Comp1{a: 2}, Comp2{b: 1.37})          // comp1 & comp2                    -- should match
	id3 := ecs.addEntity(Comp1{a: 3}, Comp2{b: 4.20}, Comp3{}) // comp1 & comp2 + something extra  -- should match
	ecs.addEntity(Comp1{a: 4}, Comp3{})                        // comp1 + something extra          -- shouldn't match
	ecs.addEntity(Comp2{b: 3.14})                              // comp2 only                       -- shouldn't match

	query := Query2[Comp1, Comp2]{ecs: &ecs}

	// Archetype iteration order is not defined, so collect and compare.
	gotA := map[EntityId]Comp1{}
	gotB := map[EntityId]Comp2{}
	query.Map(func(entityId EntityId, comp1 *Comp1, comp2 *Comp2) bool {
		gotA[entityId] = *comp1
		gotB[entityId] = *comp2
		return true
	})

	if 2 != len(gotA) {
		t.Errorf("Unexpected number of results, got %v", len(gotA))
	}
	if gotA[id2].a != 2 || gotB[id2].b != 1.37 {
		t.Errorf("Unexpected components for entity %v: %v %v", id2, gotA[id2], gotB[id2])
	}
	if gotA[id3].a != 3 || gotB[id3].b != 4.20 {
		t.Errorf("Unexpected components for entity %v: %v %v", id3, gotA[id3], gotB[id3])
	}
}

func TestQuery_MapEarlyExit(t *testing.T) {
	type Comp1 struct{ a int }

	ecs := MakeEcs()
	ecs.addEntity(Comp1{a: 1})
	ecs.addEntity(Comp1{a: 2})
	ecs.addEntity(Comp1{a: 3})

	query := Query1[Comp1]{ecs: &ecs}

	visits := 0
	query.Map(func(entityId EntityId, c *Comp1) bool {
		visits++
		return false
	})

	if 1 != visits {
		t.Errorf("Returning false should stop the iteration, got %v visits", visits)
	}
}

func TestQuery_MapOptionals(t *testing.T) {
	type Comp1 struct{ a int }
	type Extra struct{ tag string }

	ecs := MakeEcs()
	plain := ecs.addEntity(Comp1{a: 1})
	tagged := ecs.addEntity(Comp1{a: 2}, Extra{tag: "x"})

	query := Query2[Comp1, Extra]{ecs: &ecs}

	got := map[EntityId]*Extra{}
	query.Map(func(entityId EntityId, c *Comp1, e *Extra) bool {
		got[entityId] = e
		return true
	}, Extra{})

	if 2 != len(got) {
		t.Fatalf("Optional component should not filter archetypes, got %v results", len(got))
	}
	if got[plain] != nil {
		t.Errorf("Entity without the optional component should see a nil pointer")
	}
	if got[tagged] == nil || got[tagged].tag != "x" {
		t.Errorf("Entity with the optional component should see its data")
	}
}

func TestQuery_MapWritesThrough(t *testing.T) {
	type Counter struct{ n int }

	ecs := MakeEcs()
	ecs.addEntity(Counter{n: 1})

	query := Query1[Counter]{ecs: &ecs}
	query.Map(func(entityId EntityId, c *Counter) bool {
		c.n += 10
		return true
	})

	var got int
	query.Map(func(entityId EntityId, c *Counter) bool {
		got = c.n
		return true
	})

	if 11 != got {
		t.Errorf("Writes through the query pointer should stick, got %v", got)
	}
}

package meadow

import (
	"reflect"
)

// Queries iterate every archetype that carries the requested component
// set. Component types listed in optionals may be missing from an
// archetype; their pointers come back nil for its entities.
type Query1[A any] struct{ ecs *Ecs }
type Query2[A, B any] struct{ ecs *Ecs }
type Query3[A, B, C any] struct{ ecs *Ecs }

func MakeQuery1[A any](cmd *Commands) Query1[A]             { return Query1[A]{ecs: cmd.app.ecs} }
func MakeQuery2[A, B any](cmd *Commands) Query2[A, B]       { return Query2[A, B]{ecs: cmd.app.ecs} }
func MakeQuery3[A, B, C any](cmd *Commands) Query3[A, B, C] { return Query3[A, B, C]{ecs: cmd.app.ecs} }

// Map calls m once per matching entity. Returning false stops the
// iteration.
func (q Query1[A]) Map(m func(EntityId, *A) bool, optionals ...any) {
	id1 := identifyComponents1[A](q.ecs)
	opt := identifyOptionals(q.ecs, optionals...)

	for _, arch := range q.ecs.archetypes {
		var comps1 []A
		noA := false
		if data, ok := arch.componentData[id1]; ok {
			comps1 = data.([]A)
		} else if _, ok := opt[id1]; ok {
			noA = true
		} else {
			continue
		}

		for entityId, row := range arch.entities {
			var a *A
			if !noA {
				a = &comps1[row]
			}

			if !m(entityId, a) {
				return
			}
		}
	}
}

func (q Query2[A, B]) Map(m func(EntityId, *A, *B) bool, optionals ...any) {
	id1, id2 := identifyComponents2[A, B](q.ecs)
	opt := identifyOptionals(q.ecs, optionals...)

	for _, arch := range q.ecs.archetypes {
		var comps1 []A
		noA := false
		if data, ok := arch.componentData[id1]; ok {
			comps1 = data.([]A)
		} else if _, ok := opt[id1]; ok {
			noA = true
		} else {
			continue
		}

		var comps2 []B
		noB := false
		if data, ok := arch.componentData[id2]; ok {
			comps2 = data.([]B)
		} else if _, ok := opt[id2]; ok {
			noB = true
		} else {
			continue
		}

		for entityId, row := range arch.entities {
			var a *A
			if !noA {
				a = &comps1[row]
			}

			var b *B
			if !noB {
				b = &comps2[row]
			}

			if !m(entityId, a, b) {
				return
			}
		}
	}
}

func (q Query3[A, B, C]) Map(m func(EntityId, *A, *B, *C) bool, optionals ...any) {
	id1, id2, id3 := identifyComponents3[A, B, C](q.ecs)
	opt := identifyOptionals(q.ecs, optionals...)

	for _, arch := range q.ecs.archetypes {
		var comps1 []A
		noA := false
		if data, ok := arch.componentData[id1]; ok {
			comps1 = data.([]A)
		} else if _, ok := opt[id1]; ok {
			noA = true
		} else {
			continue
		}

		var comps2 []B
		noB := false
		if data, ok := arch.componentData[id2]; ok {
			comps2 = data.([]B)
		} else if _, ok := opt[id2]; ok {
			noB = true
		} else {
			continue
		}

		var comps3 []C
		noC := false
		if data, ok := arch.componentData[id3]; ok {
			comps3 = data.([]C)
		} else if _, ok := opt[id3]; ok {
			noC = true
		} else {
			continue
		}

		for entityId, row := range arch.entities {
			var a *A
			if !noA {
				a = &comps1[row]
			}

			var b *B
			if !noB {
				b = &comps2[row]
			}

			var c *C
			if !noC {
				c = &comps3[row]
			}

			if !m(entityId, a, b, c) {
				return
			}
		}
	}
}

func identifyOptionals(ecs *Ecs, components ...any) map[componentId]struct{} {
	res := make(map[componentId]struct{})
	for _, c := range components {
		res[ecs.getComponentId(componentStructType(c))] = struct{}{}
	}

	return res
}

func identifyComponents1[A any](ecs *Ecs) componentId {
	var a A
	return ecs.getComponentId(reflect.TypeOf(a))
}

func identifyComponents2[A, B any](ecs *Ecs) (componentId, componentId) {
	var a A
	var b B
	return ecs.getComponentId(reflect.TypeOf(a)), ecs.getComponentId(reflect.TypeOf(b))
}

func identifyComponents3[A, B, C any](ecs *Ecs) (componentId, componentId, componentId) {
	var a A
	var b B
	var c C
	return ecs.getComponentId(reflect.TypeOf(a)), ecs.getComponentId(reflect.TypeOf(b)), ecs.getComponentId(reflect.TypeOf(c))
}

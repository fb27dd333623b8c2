package main

import (
	"fmt"
	"sort"

	"github.com/wippyai/objective/class"
)

type schema struct {
	build func() (class.Class, error)
	name  string
	desc  string
}

var schemas = map[string]schema{
	"foo": {
		name:  "foo",
		desc:  "a: uint64, b: int32, c: int32",
		build: func() (class.Class, error) { return buildFoo() },
	},
	"foo-array": {
		name: "foo-array",
		desc: "Foo[3]",
		build: func() (class.Class, error) {
			foo, err := buildFoo()
			if err != nil {
				return nil, err
			}
			return class.NewArray(foo, 3)
		},
	},
	"particle": {
		name:  "particle",
		desc:  "position and velocity vectors, mass, liveness and tags",
		build: func() (class.Class, error) { return buildParticle() },
	},
	"named-particle": {
		name: "named-particle",
		desc: "particle extended with a name and a spawn counter",
		build: func() (class.Class, error) {
			p, err := buildParticle()
			if err != nil {
				return nil, err
			}
			return class.NewObject(class.NewInheritBuilder("NamedParticle", p).
				Add("name", class.NewValue(class.WithDefault("unnamed"))).
				Add("spawned", class.NewValue[uint32]()))
		},
	},
}

func schemaNames() []string {
	names := make([]string, 0, len(schemas))
	for name := range schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupSchema(name string) (class.Class, error) {
	s, ok := schemas[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema %q (have %v)", name, schemaNames())
	}
	return s.build()
}

func buildFoo() (*class.Object, error) {
	return class.NewObject(class.NewBuilder("Foo").
		Add("a", class.NewValue[uint64]()).
		Add("b", class.NewValue[int32]()).
		Add("c", class.NewValue[int32]()))
}

func buildParticle() (*class.Object, error) {
	vec3, err := class.NewObject(class.NewBuilder("Vec3").
		Add("x", class.NewValue[float32]()).
		Add("y", class.NewValue[float32]()).
		Add("z", class.NewValue[float32]()))
	if err != nil {
		return nil, err
	}
	tags, err := class.NewArray(class.NewValue[uint16](), 4)
	if err != nil {
		return nil, err
	}
	return class.NewObject(class.NewBuilder("Particle").
		Add("position", vec3).
		Add("velocity", vec3).
		Add("mass", class.NewValue(class.WithDefault(1.0))).
		Add("alive", class.NewValue(class.WithDefault(true))).
		Add("tags", tags))
}

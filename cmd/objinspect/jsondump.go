package main

import (
	"reflect"

	"github.com/go-faster/jx"

	"github.com/wippyai/objective/class"
	"github.com/wippyai/objective/instance"
)

// encodeClass writes the layout of c. When g is non-nil, leaves carry their
// current value.
func encodeClass(e *jx.Encoder, c class.Class, g *instance.ReadGuard) {
	encodeLens(e, class.LensOf(c), g)
}

func encodeLens(e *jx.Encoder, l class.Lens, g *instance.ReadGuard) {
	c := l.Class()
	e.ObjStart()
	e.FieldStart("class")
	e.Str(c.String())
	e.FieldStart("id")
	e.UInt64(uint64(c.ID()))
	e.FieldStart("offset")
	e.UInt64(uint64(l.Offset()))
	e.FieldStart("size")
	e.UInt64(uint64(c.Size()))
	e.FieldStart("align")
	e.UInt64(uint64(c.Align()))

	switch v := c.(type) {
	case *class.Object:
		e.FieldStart("kind")
		e.Str("object")
		if base := v.Base(); base != nil {
			e.FieldStart("base")
			e.Str(base.Name())
		}
		e.FieldStart("members")
		e.ArrStart()
		for _, m := range v.Members() {
			live, _ := v.Member(m.Name)
			e.ObjStart()
			e.FieldStart("name")
			e.Str(m.Name)
			if live.Offset != m.Offset {
				e.FieldStart("shadowed")
				e.Bool(true)
				e.FieldStart("offset")
				e.UInt64(uint64(l.Offset() + m.Offset))
				e.FieldStart("class")
				e.Str(m.Class.String())
			} else if child, err := l.Attr(m.Name); err == nil {
				e.FieldStart("layout")
				encodeLens(e, child, g)
			}
			e.ObjEnd()
		}
		e.ArrEnd()
	case *class.Array:
		e.FieldStart("kind")
		e.Str("array")
		e.FieldStart("length")
		e.Int(v.Len())
		e.FieldStart("elements")
		e.ArrStart()
		for i := 0; i < v.Len(); i++ {
			if child, err := l.Item(i); err == nil {
				encodeLens(e, child, g)
			}
		}
		e.ArrEnd()
	default:
		e.FieldStart("kind")
		e.Str("value")
		if g != nil {
			e.FieldStart("value")
			encodeLeaf(e, g, l)
		}
	}
	e.ObjEnd()
}

func encodeLeaf(e *jx.Encoder, g *instance.ReadGuard, l class.Lens) {
	ref, err := g.Through(l)
	if err != nil {
		e.Null()
		return
	}
	v, err := ref.Interface()
	if err != nil {
		e.Null()
		return
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		e.Bool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		e.Int64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		e.UInt64(rv.Uint())
	case reflect.Float32:
		e.Float32(float32(rv.Float()))
	case reflect.Float64:
		e.Float64(rv.Float())
	case reflect.String:
		e.Str(rv.String())
	default:
		e.Str(rv.Type().String())
	}
}

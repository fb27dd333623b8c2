package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/objective/class"
	"github.com/wippyai/objective/instance"
)

// row is one location of a class tree, in depth-first declaration order.
// Shadowed members are listed but have no lens: no name reaches them.
type row struct {
	class    class.Class
	lens     class.Lens
	name     string
	offset   uintptr
	depth    int
	shadowed bool
}

func (r row) leaf() bool {
	_, ok := r.class.Type()
	return ok
}

func walk(c class.Class) []row {
	var rows []row
	var visit func(l class.Lens, depth int)
	visit = func(l class.Lens, depth int) {
		switch v := l.Class().(type) {
		case *class.Object:
			for _, m := range v.Members() {
				if live, _ := v.Member(m.Name); live.Offset != m.Offset {
					rows = append(rows, row{
						class:    m.Class,
						name:     l.Path().Append(class.Attr(m.Name)).String(),
						offset:   l.Offset() + m.Offset,
						depth:    depth,
						shadowed: true,
					})
					continue
				}
				child, err := l.Attr(m.Name)
				if err != nil {
					continue
				}
				rows = append(rows, rowOf(child, depth))
				visit(child, depth+1)
			}
		case *class.Array:
			for i := 0; i < v.Len(); i++ {
				child, err := l.Item(i)
				if err != nil {
					continue
				}
				rows = append(rows, rowOf(child, depth))
				visit(child, depth+1)
			}
		}
	}
	visit(class.LensOf(c), 0)
	return rows
}

func rowOf(l class.Lens, depth int) row {
	return row{
		class:  l.Class(),
		lens:   l,
		name:   l.Path().String(),
		offset: l.Offset(),
		depth:  depth,
	}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#7D56F4")).Padding(0, 1)
	pathStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98"))
	typeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

type printer struct {
	styled bool
}

func (p printer) render(s lipgloss.Style, text string) string {
	if !p.styled {
		return text
	}
	return s.Render(text)
}

// table renders the layout of c and, when g is non-nil, the leaf values.
func (p printer) table(c class.Class, g *instance.ReadGuard) string {
	var b strings.Builder
	b.WriteString(p.render(headerStyle, fmt.Sprintf("%s  %s  id %s", c, c.Layout(), c.ID())))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%-24s %-14s %6s %5s %5s  %s\n", "PATH", "CLASS", "OFFSET", "SIZE", "ALIGN", "VALUE")

	for _, r := range walk(c) {
		name := strings.Repeat("  ", r.depth) + r.name
		value := ""
		switch {
		case r.shadowed:
			value = p.render(dimStyle, "(shadowed)")
		case r.leaf() && g != nil:
			value = formatValue(g, r.lens)
		}
		fmt.Fprintf(&b, "%s %s %6d %5d %5d  %s\n",
			p.render(pathStyle, fmt.Sprintf("%-24s", name)),
			p.render(typeStyle, fmt.Sprintf("%-14s", r.class)),
			r.offset, r.class.Size(), r.class.Align(), value)
	}
	return b.String()
}

func formatValue(g *instance.ReadGuard, l class.Lens) string {
	ref, err := g.Through(l)
	if err != nil {
		return "error: " + err.Error()
	}
	v, err := ref.Interface()
	if err != nil {
		return "error: " + err.Error()
	}
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", v)
}

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/go-faster/jx"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/objective/class"
	"github.com/wippyai/objective/handle"
	"github.com/wippyai/objective/instance"
)

type options struct {
	schema  string
	path    string
	set     string
	list    bool
	json    bool
	verbose bool
}

func main() {
	var (
		schemaName  = flag.String("schema", "foo", "Schema to inspect (see -list)")
		list        = flag.Bool("list", false, "List built-in schemas and exit")
		jsonOut     = flag.Bool("json", false, "Dump layout and values as JSON")
		path        = flag.String("path", "", "Resolve a path such as items[2].b and print its location")
		set         = flag.String("set", "", "Assign a leaf on a fresh instance (path=value)")
		interactive = flag.Bool("i", false, "Interactive browser and editor")
		verbose     = flag.Bool("v", false, "Debug logging to stderr")
	)
	flag.Parse()

	opts := options{
		schema:  *schemaName,
		path:    *path,
		set:     *set,
		list:    *list,
		json:    *jsonOut,
		verbose: *verbose,
	}

	if opts.verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer log.Sync()
		class.SetLogger(log)
		instance.SetLogger(log)
		handle.SetLogger(log)
	}

	if *interactive {
		if err := runInteractive(opts.schema); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	styled := term.IsTerminal(int(os.Stdout.Fd()))
	if err := run(os.Stdout, opts, styled); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer, opts options, styled bool) error {
	if opts.list {
		for _, name := range schemaNames() {
			fmt.Fprintf(w, "%-16s %s\n", name, schemas[name].desc)
		}
		return nil
	}

	c, err := lookupSchema(opts.schema)
	if err != nil {
		return err
	}

	table := handle.NewTable()
	defer table.Close()

	h, err := table.Insert(instance.New(c))
	if err != nil {
		return err
	}
	inst, err := table.Lookup(h)
	if err != nil {
		return err
	}

	if opts.set != "" {
		if err := assign(inst, opts.set); err != nil {
			return err
		}
	}

	if opts.path != "" {
		if err := resolve(w, inst, opts.path); err != nil {
			return err
		}
		if !opts.json {
			return nil
		}
	}

	return inst.View(func(g *instance.ReadGuard) error {
		if opts.json {
			var e jx.Encoder
			e.SetIdent(2)
			encodeClass(&e, c, g)
			_, err := fmt.Fprintln(w, e.String())
			return err
		}
		_, err := io.WriteString(w, printer{styled: styled}.table(c, g))
		return err
	})
}

// assign parses "path=value" and stores the value at path.
func assign(inst *instance.Instance, expr string) error {
	p, text, err := splitAssignment(expr)
	if err != nil {
		return err
	}
	path, err := class.ParsePath(p)
	if err != nil {
		return err
	}
	return inst.Update(func(g *instance.WriteGuard) error {
		ref, err := g.Path(path)
		if err != nil {
			return err
		}
		typ, ok := ref.Class().Type()
		if !ok {
			return fmt.Errorf("%s is a %s, not a leaf", p, ref.Class())
		}
		v, err := parseValue(typ, text)
		if err != nil {
			return err
		}
		return ref.Set(v)
	})
}

// resolve prints where path lands and, for leaves, the current value.
func resolve(w io.Writer, inst *instance.Instance, expr string) error {
	path, err := class.ParsePath(expr)
	if err != nil {
		return err
	}
	lens, err := class.Zoom(inst.Class(), path)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s: class %s, offset %d, %s\n", lens, lens.Class(), lens.Offset(), lens.Class().Layout())

	if _, ok := lens.Class().Type(); !ok {
		return nil
	}
	return inst.View(func(g *instance.ReadGuard) error {
		fmt.Fprintf(w, "value: %s\n", formatValue(g, lens))
		return nil
	})
}

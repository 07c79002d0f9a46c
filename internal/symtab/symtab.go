// Package symtab implements the two-scope, four-kind Jack symbol
// table described in spec.md §3 and §4.2.
package symtab

import "sort"

// Kind is the storage kind of a symbol, which determines both its
// scope (class or subroutine) and the VM segment used to access it.
type Kind int

const (
	Static Kind = iota
	Field
	Argument
	Local
)

func (k Kind) String() string {
	switch k {
	case Static:
		return "static"
	case Field:
		return "field"
	case Argument:
		return "argument"
	case Local:
		return "local"
	default:
		return "unknown"
	}
}

// Segment returns the VM memory segment a symbol of this kind lives
// in. The mapping is fixed by spec.md §3: Local→local, Static→static,
// Field→this, Argument→argument.
func (k Kind) Segment() string {
	switch k {
	case Static:
		return "static"
	case Field:
		return "this"
	case Argument:
		return "argument"
	case Local:
		return "local"
	default:
		return ""
	}
}

// entry is one symbol-table binding.
type entry struct {
	typ   string
	kind  Kind
	index int
}

// Table is the compiler's two-scope symbol table: class scope holds
// Static and Field entries for the lifetime of one class compilation;
// subroutine scope holds Argument and Local entries and is reset on
// every StartSubroutine call.
type Table struct {
	class      map[string]entry
	subroutine map[string]entry

	counts [4]int // per-kind running index, by Kind
}

// New creates an empty symbol table, ready for one class compilation.
func New() *Table {
	return &Table{
		class:      make(map[string]entry),
		subroutine: make(map[string]entry),
	}
}

// StartSubroutine clears the subroutine scope and resets the Argument
// and Local counters to 0. Class-scope entries and counters are
// untouched.
func (t *Table) StartSubroutine() {
	t.subroutine = make(map[string]entry)
	t.counts[Argument] = 0
	t.counts[Local] = 0
}

// Define inserts name into the scope implied by kind (Static/Field go
// to class scope, Argument/Local go to subroutine scope), assigning it
// the current per-kind counter as its index and incrementing that
// counter. Redefining a name already bound in the same scope
// overwrites the earlier entry (spec.md §4.2 leaves this as
// implementation-defined; see DESIGN.md).
func (t *Table) Define(name, typ string, kind Kind) {
	idx := t.counts[kind]
	t.counts[kind]++
	e := entry{typ: typ, kind: kind, index: idx}

	switch kind {
	case Static, Field:
		t.class[name] = e
	case Argument, Local:
		t.subroutine[name] = e
	}
}

// VarCount returns the number of variables of the given kind defined
// so far in the current scope.
func (t *Table) VarCount(kind Kind) int {
	return t.counts[kind]
}

func (t *Table) lookup(name string) (entry, bool) {
	if e, ok := t.subroutine[name]; ok {
		return e, true
	}
	if e, ok := t.class[name]; ok {
		return e, true
	}
	return entry{}, false
}

// KindOf returns the kind of name, consulting subroutine scope before
// class scope, and ok=false if the name is unbound in either.
func (t *Table) KindOf(name string) (Kind, bool) {
	e, ok := t.lookup(name)
	return e.kind, ok
}

// TypeOf returns the declared type of name (a primitive name or a
// class name), and ok=false if the name is unbound.
func (t *Table) TypeOf(name string) (string, bool) {
	e, ok := t.lookup(name)
	return e.typ, ok
}

// IndexOf returns the per-kind index assigned to name, and ok=false if
// the name is unbound.
func (t *Table) IndexOf(name string) (int, bool) {
	e, ok := t.lookup(name)
	return e.index, ok
}

// Entry is a read-only snapshot of one symbol-table binding, named and
// exposed for callers (such as jackc's `symbols` command) that need to
// enumerate a scope rather than look up one name at a time.
type Entry struct {
	Name  string
	Type  string
	Kind  Kind
	Index int
}

// ClassScope returns every Static/Field binding currently in class
// scope, ordered by kind then index.
func (t *Table) ClassScope() []Entry {
	return snapshot(t.class)
}

// SubroutineScope returns every Argument/Local binding currently in
// subroutine scope, ordered by kind then index.
func (t *Table) SubroutineScope() []Entry {
	return snapshot(t.subroutine)
}

func snapshot(scope map[string]entry) []Entry {
	out := make([]Entry, 0, len(scope))
	for name, e := range scope {
		out = append(out, Entry{Name: name, Type: e.typ, Kind: e.kind, Index: e.index})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Index < out[j].Index
	})
	return out
}

// Package symtab tracks label-to-address bindings produced by the
// assembler's first pass.
package symtab

// Table maps label names to the memory address they were defined at.
type Table struct {
	addrs map[string]int
}

// New returns an empty Table.
func New() *Table {
	return &Table{addrs: make(map[string]int)}
}

// Add binds label to address, overwriting any previous binding. Rejecting
// a redefinition is the assembler's job (spec §4.2), not the table's.
func (t *Table) Add(label string, address int) {
	t.addrs[label] = address
}

// Lookup reports the address bound to label, if any.
func (t *Table) Lookup(label string) (address int, ok bool) {
	address, ok = t.addrs[label]
	return
}

// Defined reports whether label has already been bound.
func (t *Table) Defined(label string) bool {
	_, ok := t.addrs[label]
	return ok
}

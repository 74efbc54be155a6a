package mukku

import (
	"fmt"
	"maps"
	"slices"
)

// SymbolKind describes what a name refers to. Variables are the only kind.
type SymbolKind string

const SymbolVariable SymbolKind = "variable"

type SymbolInfo struct {
	Name string
	Kind SymbolKind
}

// SymbolTable is the single flat namespace of a program. Symbols are never
// removed.
type SymbolTable struct {
	symbols map[string]*SymbolInfo
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]*SymbolInfo)}
}

// DeclareVariable adds name to the table, failing if it is already there.
func (st *SymbolTable) DeclareVariable(name string) error {
	if _, exists := st.symbols[name]; exists {
		return fmt.Errorf("variable '%s' already declared", name)
	}
	st.symbols[name] = &SymbolInfo{Name: name, Kind: SymbolVariable}
	return nil
}

// LookupVariable returns nil if name was never declared.
func (st *SymbolTable) LookupVariable(name string) *SymbolInfo {
	return st.symbols[name]
}

func (st *SymbolTable) Len() int {
	return len(st.symbols)
}

// Names returns the declared names in sorted order.
func (st *SymbolTable) Names() []string {
	return slices.Sorted(maps.Keys(st.symbols))
}

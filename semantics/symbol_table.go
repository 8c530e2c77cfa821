package semantics

import (
	"bella/internals"
	"fmt"
)

type Type = string

const (
	IntegerType Type = "INTEGER"
	FloatType   Type = "FLOAT"
	BooleanType Type = "BOOLEAN"
	// compatible with every other type, used for parameters, functions and ternaries
	AnyType Type = "ANY"
)

type SymbolInfo struct {
	Name string
	Type Type
	// false for function parameters, they only get a value at a call
	Initialized bool
	Depth       int
}

// scope frames live on a stack and are addressed by index, the innermost is the last one
type frame struct {
	store map[string]*SymbolInfo
}

type SymbolTable struct {
	frames []frame
}

// builtins every program can see
var builtins = map[string]Type{
	"alloc": IntegerType,
}

func NewSymbolTable() *SymbolTable {
	s := &SymbolTable{}
	s.EnterScope()
	for name, tp := range builtins {
		s.frames[0].store[name] = &SymbolInfo{Name: name, Type: tp, Initialized: true}
	}
	return s
}

// Depth of the current scope, the root scope is 0
func (s *SymbolTable) Depth() int {
	return len(s.frames) - 1
}

func (s *SymbolTable) EnterScope() {
	s.frames = append(s.frames, frame{store: make(map[string]*SymbolInfo)})
}

func (s *SymbolTable) ExitScope() error {
	if len(s.frames) <= 1 {
		return internals.NewError(internals.SyntaxError, "", 0, 0, "can't leave the root scope")
	}
	s.frames = s.frames[:len(s.frames)-1]
	return nil
}

func (s *SymbolTable) current() frame {
	return s.frames[len(s.frames)-1]
}

// Add registers name in the current scope. re-adding it with another type fails
// unless one of the two types is ANY, the latest type wins either way.
func (s *SymbolTable) Add(name string, tp Type, initialized bool) error {
	store := s.current().store
	if sym, ok := store[name]; ok {
		if sym.Type != tp && sym.Type != AnyType && tp != AnyType {
			return internals.NewError(
				internals.DeclarationError, "", 0, 0,
				fmt.Sprintf("identifier %q reassigned to different type (%v to %v)", name, sym.Type, tp),
			)
		}
	}

	store[name] = &SymbolInfo{
		Name:        name,
		Type:        tp,
		Initialized: initialized,
		Depth:       s.Depth(),
	}
	return nil
}

func (s *SymbolTable) Resolve(name string) (*SymbolInfo, bool) {
	for idx := len(s.frames) - 1; idx >= 0; idx-- {
		if sym, ok := s.frames[idx].store[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

func (s *SymbolTable) Lookup(name string) (Type, error) {
	sym, ok := s.Resolve(name)
	if !ok {
		return "", notDeclared(name)
	}
	return sym.Type, nil
}

func notDeclared(name string) error {
	return internals.NewError(internals.DeclarationError, "", 0, 0, fmt.Sprintf("identifier %q not declared", name))
}

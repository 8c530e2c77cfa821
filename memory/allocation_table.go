package memory

import (
	"bella/internals"
	"bella/lexer"
	"fmt"
	"sort"
)

type Status int

const (
	// absent from every frame, never allocated
	Unallocated Status = iota
	Allocated
	Freed
)

func (s Status) String() string {
	switch s {
	case Allocated:
		return "allocated"
	case Freed:
		return "freed"
	default:
		return "unallocated"
	}
}

type allocation struct {
	Status Status
	// the let token that allocated it, leaks are reported there
	Token lexer.Token
}

// AllocationTable is a stack of frames mirroring block nesting, the innermost
// frame is the last one. It has nothing to do with the parser's symbol table.
type AllocationTable struct {
	frames []map[string]*allocation
}

func NewAllocationTable() *AllocationTable {
	t := &AllocationTable{}
	t.EnterScope()
	return t
}

func (t *AllocationTable) Depth() int {
	return len(t.frames) - 1
}

func (t *AllocationTable) EnterScope() {
	t.frames = append(t.frames, make(map[string]*allocation))
}

// ExitScope pops the current frame, it doesn't check for leaks, call Leaks first
func (t *AllocationTable) ExitScope() error {
	if len(t.frames) <= 1 {
		return internals.NewError(internals.AllocationError, "", 0, 0, "can't leave the root allocation scope")
	}
	t.frames = t.frames[:len(t.frames)-1]
	return nil
}

func (t *AllocationTable) current() map[string]*allocation {
	return t.frames[len(t.frames)-1]
}

// Allocate only looks at the current frame, so the same name may be
// allocated again in a nested scope while the outer binding is still live.
func (t *AllocationTable) Allocate(name string, tok lexer.Token) error {
	frame := t.current()
	if a, ok := frame[name]; ok && a.Status == Allocated {
		return internals.NewError(
			internals.AllocationError, "", tok.Row, tok.Col,
			fmt.Sprintf("variable %q already allocated in current scope", name),
		)
	}

	frame[name] = &allocation{Status: Allocated, Token: tok}
	return nil
}

// Shadow binds name in the current frame without allocating it, hiding any
// outer binding of the same name. function parameters are bound this way.
func (t *AllocationTable) Shadow(name string) {
	t.current()[name] = &allocation{Status: Unallocated}
}

// IsAllocated reports whether any frame from the current one to the root holds name as Allocated
func (t *AllocationTable) IsAllocated(name string) bool {
	return t.nearestAllocated(name) != nil
}

func (t *AllocationTable) nearestAllocated(name string) *allocation {
	for idx := len(t.frames) - 1; idx >= 0; idx-- {
		if a, ok := t.frames[idx][name]; ok && a.Status == Allocated {
			return a
		}
	}
	return nil
}

// Free flips the nearest Allocated binding of name to Freed, which may live in an ancestor frame
func (t *AllocationTable) Free(name string) error {
	a := t.nearestAllocated(name)
	if a == nil {
		return internals.NewError(internals.AllocationError, "", 0, 0, fmt.Sprintf("variable %q never allocated", name))
	}
	a.Status = Freed
	return nil
}

// Status of the nearest binding of name. a freed binding hides any allocated
// one further out, it's never revived by an outer allocation.
func (t *AllocationTable) Status(name string) Status {
	for idx := len(t.frames) - 1; idx >= 0; idx-- {
		if a, ok := t.frames[idx][name]; ok {
			return a.Status
		}
	}
	return Unallocated
}

func (t *AllocationTable) IsNull(name string) bool {
	return t.Status(name) == Freed
}

// Leak is a name left allocated when its frame closes
type Leak struct {
	Name  string
	Token lexer.Token
}

// Leaks lists the allocated entries of the current frame only, sorted by name
func (t *AllocationTable) Leaks() []Leak {
	leaks := make([]Leak, 0)
	for name, a := range t.current() {
		if a.Status == Allocated {
			leaks = append(leaks, Leak{Name: name, Token: a.Token})
		}
	}

	sort.Slice(leaks, func(i, j int) bool {
		return leaks[i].Name < leaks[j].Name
	})
	return leaks
}

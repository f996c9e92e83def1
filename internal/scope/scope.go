// Package scope implements the nested lexical symbol tables described
// in spec §4.3: one hash-chained table per lexical block/function/
// module, resolved by walking the parent chain.
package scope

import (
	"github.com/spaolacci/murmur3"

	"github.com/vismutlang/vismut/internal/types"
)

// Flag is a bit in Symbol.Flags (spec §3).
type Flag uint8

const (
	Initialized Flag = 1 << iota
	Const
	ConstEval
	Used
	UsedMoreThanOnce
)

// Has reports whether f is set in the receiver.
func (flags Flag) Has(f Flag) bool { return flags&f != 0 }

// Symbol is {name, name_hash, type, flags}. Symbols live in the scope
// that declared them and are never moved between scopes.
type Symbol struct {
	Name     string
	NameHash uint32
	Type     types.VT
	Flags    Flag

	// ConstValue holds the folded value when Flags has ConstEval set.
	// It is an int64 or float64 or string depending on Type; the
	// analyzer/optimizer interpret it according to Type.
	ConstValue interface{}
}

type slot struct {
	sym  *Symbol
	next *slot
}

const initialCapacity = 4
const maxLoadFactor = 0.75

// Scope is {parent?, hash table of slot-chains, depth}. A Scope
// exclusively owns its symbols; parent is a non-owning reference
// (spec §4.3: "parent is a non-owning reference").
type Scope struct {
	parent   *Scope
	depth    int
	buckets  []*slot
	count    int
}

// New creates a module-scope Scope (depth 0, no parent).
func New() *Scope {
	return &Scope{buckets: make([]*slot, initialCapacity)}
}

// NewChild creates a scope nested one level inside parent.
func (s *Scope) NewChild() *Scope {
	return &Scope{parent: s, depth: s.depth + 1, buckets: make([]*slot, initialCapacity)}
}

// Parent returns the enclosing scope, or nil at module scope.
func (s *Scope) Parent() *Scope { return s.parent }

// Depth returns 0 at module scope, one deeper per nested block/function.
func (s *Scope) Depth() int { return s.depth }

func hashName(name string) uint32 {
	return murmur3.Sum32WithSeed([]byte(name), 0)
}

func (s *Scope) bucketIndex(h uint32) int {
	return int(h) % len(s.buckets)
}

func (s *Scope) rehash(newCap int) {
	old := s.buckets
	s.buckets = make([]*slot, newCap)
	for _, head := range old {
		for n := head; n != nil; {
			next := n.next
			idx := s.bucketIndex(n.sym.NameHash)
			n.next = s.buckets[idx]
			s.buckets[idx] = n
			n = next
		}
	}
}

// findLocal returns the slot for name in this scope only, or nil.
func (s *Scope) findLocal(name string, h uint32) *slot {
	for n := s.buckets[s.bucketIndex(h)]; n != nil; n = n.next {
		if n.sym.Name == name {
			return n
		}
	}
	return nil
}

// Declare adds a new symbol to this scope. It fails with ok=false if
// name is already defined in *this scope only* (spec §4.3): shadowing
// an outer scope's symbol is permitted.
func (s *Scope) Declare(name string, typ types.VT, flags Flag) (*Symbol, bool) {
	h := hashName(name)
	if s.findLocal(name, h) != nil {
		return nil, false
	}
	if float64(s.count+1) > maxLoadFactor*float64(len(s.buckets)) {
		s.rehash(len(s.buckets) * 2)
	}
	sym := &Symbol{Name: name, NameHash: h, Type: typ, Flags: flags}
	idx := s.bucketIndex(h)
	s.buckets[idx] = &slot{sym: sym, next: s.buckets[idx]}
	s.count++
	return sym, true
}

// Resolve walks from s upward via parent pointers and returns the
// first matching symbol.
func (s *Scope) Resolve(name string) (*Symbol, bool) {
	h := hashName(name)
	for cur := s; cur != nil; cur = cur.parent {
		if n := cur.findLocal(name, h); n != nil {
			return n.sym, true
		}
	}
	return nil, false
}

// MarkUsed resolves name and sets Used; if already Used, it also sets
// UsedMoreThanOnce.
func (s *Scope) MarkUsed(name string) (*Symbol, bool) {
	sym, ok := s.Resolve(name)
	if !ok {
		return nil, false
	}
	if sym.Flags.Has(Used) {
		sym.Flags |= UsedMoreThanOnce
	}
	sym.Flags |= Used
	return sym, true
}

// MarkInitialized resolves name and sets Initialized.
func (s *Scope) MarkInitialized(name string) (*Symbol, bool) {
	sym, ok := s.Resolve(name)
	if !ok {
		return nil, false
	}
	sym.Flags |= Initialized
	return sym, true
}

// AssignConstantEvaluated resolves name and overwrites its stored
// value, setting Initialized|ConstEval. It fails if the symbol's type
// differs from typ.
func (s *Scope) AssignConstantEvaluated(name string, typ types.VT, value interface{}) (*Symbol, bool) {
	sym, ok := s.Resolve(name)
	if !ok || sym.Type != typ {
		return nil, false
	}
	sym.ConstValue = value
	sym.Flags |= Initialized | ConstEval
	return sym, true
}

// RemoveUnused drops symbols declared in this scope (only) whose Used
// flag is clear. It does not affect resolution of already-analyzed
// code elsewhere, since those references already captured the symbol
// pointer they resolved to.
func (s *Scope) RemoveUnused() {
	for i, head := range s.buckets {
		var kept *slot
		for n := head; n != nil; {
			next := n.next
			if n.sym.Flags.Has(Used) {
				n.next = kept
				kept = n
			} else {
				s.count--
			}
			n = next
		}
		s.buckets[i] = kept
	}
}

// Symbols returns every symbol currently live in this scope (only),
// in unspecified order. Used by tests.
func (s *Scope) Symbols() []*Symbol {
	var out []*Symbol
	for _, head := range s.buckets {
		for n := head; n != nil; n = n.next {
			out = append(out, n.sym)
		}
	}
	return out
}

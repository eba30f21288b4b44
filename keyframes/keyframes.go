/*
Package keyframes implements keyframe animations as sequences of declaration
blocks.

A Keyframe is built by appending blocks, in the order a stylesheet lists
them. Blocks are kept in append order. Consumers wanting to step through an
animation call Sorted, which orders blocks by offset and keeps blocks with
equal offsets in append order.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package keyframes

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/npillmayer/restyle/style"
)

// Block is a single keyframe block: an offset in [0,1] and the declarations
// to be in effect at that offset.
type Block struct {
	Offset float64
	decls  *style.RuleSet
}

// NewBlock creates an empty block at offset.
func NewBlock(offset float64) *Block {
	return &Block{Offset: offset, decls: style.NewRuleSet(nil, 0)}
}

// clone copies b, so that b and its copy share no declarations.
func (b *Block) clone() *Block {
	return &Block{Offset: b.Offset, decls: b.decls.WithOrder(0)}
}

// Add parses a property and appends it to b.
func (b *Block) Add(name string, raw style.Property) *Block {
	b.decls.Add(name, raw, false)
	return b
}

// Declarations returns a copy of the declarations of b.
func (b *Block) Declarations() []style.Declaration {
	return b.decls.Declarations()
}

// RuleSet returns the declarations of b as a rule set, e.g. for applying
// them to a style context.
func (b *Block) RuleSet() *style.RuleSet {
	return b.decls.WithOrder(0)
}

// WriteTo writes b as "0.500000 { name: value; }".
func (b *Block) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w, "%f { ", b.Offset)
	total := int64(n)
	if err != nil {
		return total, err
	}
	m, err := style.WriteDeclarations(w, b.decls.Declarations())
	total += m
	if err != nil {
		return total, err
	}
	n, err = io.WriteString(w, " }")
	return total + int64(n), err
}

// Keyframe is a named sequence of keyframe blocks.
type Keyframe struct {
	name   string
	blocks []*Block
}

// NewKeyframe creates an empty keyframe sequence.
func NewKeyframe(name string) *Keyframe {
	return &Keyframe{name: name}
}

// Name returns the name of k.
func (k *Keyframe) Name() string {
	return k.name
}

// AddBlock appends a copy of b to k. Changing b afterwards does not
// change k.
func (k *Keyframe) AddBlock(b *Block) *Keyframe {
	if b != nil {
		k.blocks = append(k.blocks, b.clone())
	}
	return k
}

// Blocks returns copies of the blocks of k, in append order.
func (k *Keyframe) Blocks() []*Block {
	blocks := make([]*Block, len(k.blocks))
	for i, b := range k.blocks {
		blocks[i] = b.clone()
	}
	return blocks
}

// Len returns the count of blocks.
func (k *Keyframe) Len() int {
	return len(k.blocks)
}

// Sorted returns copies of the blocks of k, ordered by offset. Blocks with
// equal offsets stay in append order.
func (k *Keyframe) Sorted() []*Block {
	blocks := k.Blocks()
	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].Offset < blocks[j].Offset
	})
	return blocks
}

// WriteTo serializes k:
//
//	@keyframes pulse {
//	  0.500000 { opacity: 0.5; }
//	}
func (k *Keyframe) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	b.WriteString("@keyframes ")
	b.WriteString(k.name)
	b.WriteString(" {\n")
	for _, blk := range k.blocks {
		b.WriteString("  ")
		blk.WriteTo(&b)
		b.WriteByte('\n')
	}
	b.WriteString("}\n")
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

func (k *Keyframe) String() string {
	var b strings.Builder
	k.WriteTo(&b)
	return b.String()
}

// ParseOffset parses a keyframe selector: "from", "to", a percentage or a
// number in [0,1].
func ParseOffset(s string) (float64, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "from":
		return 0, nil
	case "to":
		return 1, nil
	}
	scale := 1.0
	if strings.HasSuffix(s, "%") {
		s = strings.TrimSuffix(s, "%")
		scale = 100
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid keyframe offset %q", s)
	}
	x /= scale
	if x < 0 || x > 1 {
		return 0, fmt.Errorf("keyframe offset %g out of range", x)
	}
	return x, nil
}

// --- Registry --------------------------------------------------------------

// Registry maps names to keyframe sequences. A later definition of a name
// replaces an earlier one. A Registry is safe for concurrent use.
type Registry struct {
	mx     sync.RWMutex
	frames map[string]*Keyframe
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{frames: make(map[string]*Keyframe)}
}

// Add registers k under its name.
func (r *Registry) Add(k *Keyframe) {
	if k == nil {
		return
	}
	r.mx.Lock()
	defer r.mx.Unlock()
	if r.frames == nil {
		r.frames = make(map[string]*Keyframe)
	}
	r.frames[k.name] = k
}

// Lookup finds a keyframe sequence by name.
func (r *Registry) Lookup(name string) (*Keyframe, bool) {
	if r == nil {
		return nil, false
	}
	r.mx.RLock()
	defer r.mx.RUnlock()
	k, ok := r.frames[name]
	return k, ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mx.RLock()
	defer r.mx.RUnlock()
	names := make([]string, 0, len(r.frames))
	for n := range r.frames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

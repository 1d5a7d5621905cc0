package chem

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"
)

// CanonicalSMILES re-emits the molecule as a deterministic SMILES string.
// Atoms are ranked with a Morgan-style iterative refinement over local
// invariants, then the graph is walked depth-first in rank order.  The same
// molecular graph always yields the same string, which makes the output safe
// to use for cache keys, history lookups, and idempotence checks.
func CanonicalSMILES(m *Molecule) string {
	comps := m.components()
	parts := make([]string, 0, len(comps))
	for _, comp := range comps {
		parts = append(parts, canonicalComponent(m, comp))
	}
	sort.Strings(parts)
	return strings.Join(parts, ".")
}

// canonicalRanks computes a stable rank per atom via iterative refinement.
func canonicalRanks(m *Molecule) []int {
	n := len(m.Atoms)
	inv := make([]string, n)
	for i, a := range m.Atoms {
		inv[i] = fmt.Sprintf("%s|%t|%+d|%d|%d",
			a.Symbol, a.Aromatic, a.Charge, m.Degree(i), m.ImplicitHydrogens(i))
	}
	ranks := rankStrings(inv)

	for iter := 0; iter < n; iter++ {
		next := make([]string, n)
		for i := range m.Atoms {
			neigh := make([]int, 0, m.Degree(i))
			for _, bi := range m.adjacency[i] {
				neigh = append(neigh, ranks[m.OtherEnd(m.Bonds[bi], i)])
			}
			sort.Ints(neigh)
			next[i] = fmt.Sprintf("%d|%v", ranks[i], neigh)
		}
		newRanks := rankStrings(next)
		if equalInts(newRanks, ranks) {
			break
		}
		ranks = newRanks
	}
	return ranks
}

func rankStrings(keys []string) []int {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)
	pos := map[string]int{}
	for i, k := range sorted {
		if _, ok := pos[k]; !ok {
			pos[k] = i
		}
	}
	out := make([]int, len(keys))
	for i, k := range keys {
		out[i] = pos[k]
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// canonicalComponent emits one connected component.
func canonicalComponent(m *Molecule, comp []int) string {
	ranks := canonicalRanks(m)

	root := comp[0]
	for _, i := range comp {
		if ranks[i] < ranks[root] || (ranks[i] == ranks[root] && i < root) {
			root = i
		}
	}

	e := &emitter{
		m:         m,
		ranks:     ranks,
		visited:   make([]bool, len(m.Atoms)),
		bondUsed:  make([]bool, len(m.Bonds)),
		closures:  map[int][]closure{},
	}
	e.findBackEdges(root)
	var sb strings.Builder
	e.write(&sb, root, -1)
	return sb.String()
}

type closure struct {
	number int
	bond   int
}

type emitter struct {
	m        *Molecule
	ranks    []int
	visited  []bool
	bondUsed []bool

	// closures maps atom index to the ring-closure digits it must emit.
	closures    map[int][]closure
	nextClosure int
}

// orderedBonds returns atom i's incident bonds sorted by the far atom's rank.
func (e *emitter) orderedBonds(i int) []int {
	bonds := append([]int(nil), e.m.adjacency[i]...)
	sort.Slice(bonds, func(a, b int) bool {
		ra := e.ranks[e.m.OtherEnd(e.m.Bonds[bonds[a]], i)]
		rb := e.ranks[e.m.OtherEnd(e.m.Bonds[bonds[b]], i)]
		if ra != rb {
			return ra < rb
		}
		return bonds[a] < bonds[b]
	})
	return bonds
}

// findBackEdges walks the spanning tree and assigns ring-closure numbers to
// every non-tree edge, attaching the number to both endpoints.
func (e *emitter) findBackEdges(root int) {
	visited := make([]bool, len(e.m.Atoms))
	visited[root] = true

	var visit func(i, parentBond int)
	visit = func(i, parentBond int) {
		for _, bi := range e.orderedBonds(i) {
			if bi == parentBond || e.bondUsed[bi] {
				continue
			}
			j := e.m.OtherEnd(e.m.Bonds[bi], i)
			if visited[j] {
				// Back edge: assign next closure number to both ends.
				e.bondUsed[bi] = true
				e.nextClosure++
				e.closures[i] = append(e.closures[i], closure{e.nextClosure, bi})
				e.closures[j] = append(e.closures[j], closure{e.nextClosure, bi})
				continue
			}
			visited[j] = true
			e.bondUsed[bi] = true
			visit(j, bi)
		}
	}
	visit(root, -1)

	// Reset bond markers; write() reuses them for tree traversal.
	for i := range e.bondUsed {
		e.bondUsed[i] = false
	}
	for _, cs := range e.closures {
		sort.Slice(cs, func(a, b int) bool { return cs[a].number < cs[b].number })
	}
}

// write emits atom i and its subtree.
func (e *emitter) write(sb *strings.Builder, i, parentBond int) {
	e.visited[i] = true
	sb.WriteString(e.atomToken(i))

	for _, c := range e.closures[i] {
		b := e.m.Bonds[c.bond]
		sb.WriteString(bondToken(e.m, b))
		if c.number > 9 {
			fmt.Fprintf(sb, "%%%02d", c.number)
		} else {
			fmt.Fprintf(sb, "%d", c.number)
		}
	}

	var children []int
	for _, bi := range e.orderedBonds(i) {
		if bi == parentBond {
			continue
		}
		b := e.m.Bonds[bi]
		j := e.m.OtherEnd(b, i)
		if e.visited[j] || isClosureBond(e.closures[i], bi) {
			continue
		}
		children = append(children, bi)
	}

	for idx, bi := range children {
		b := e.m.Bonds[bi]
		j := e.m.OtherEnd(b, i)
		last := idx == len(children)-1
		if !last {
			sb.WriteByte('(')
		}
		sb.WriteString(bondToken(e.m, b))
		e.write(sb, j, bi)
		if !last {
			sb.WriteByte(')')
		}
	}
}

func isClosureBond(cs []closure, bi int) bool {
	for _, c := range cs {
		if c.bond == bi {
			return true
		}
	}
	return false
}

// bondToken returns the SMILES symbol for a bond, empty for single and
// aromatic-implicit bonds.
func bondToken(m *Molecule, b Bond) string {
	if b.Aromatic {
		return ""
	}
	switch b.Order {
	case BondDouble:
		return "="
	case BondTriple:
		return "#"
	}
	// A plain single bond between two aromatic atoms must be written out,
	// otherwise re-parsing would treat it as aromatic.
	if m.Atoms[b.A].Aromatic && m.Atoms[b.B].Aromatic {
		return "-"
	}
	return ""
}

// atomToken renders atom i, using brackets only when required.
func (e *emitter) atomToken(i int) string {
	a := e.m.Atoms[i]
	plain := organicSubset[a.Symbol] && a.Charge == 0 && a.Isotope == 0 && a.ExplicitH < 0
	sym := a.Symbol
	if a.Aromatic {
		sym = strings.ToLower(sym)
	}
	if plain {
		return sym
	}

	var sb strings.Builder
	sb.WriteByte('[')
	if a.Isotope > 0 {
		fmt.Fprintf(&sb, "%d", a.Isotope)
	}
	sb.WriteString(sym)
	h := a.ExplicitH
	if h < 0 {
		h = e.m.ImplicitHydrogens(i)
	}
	if h == 1 {
		sb.WriteByte('H')
	} else if h > 1 {
		fmt.Fprintf(&sb, "H%d", h)
	}
	switch {
	case a.Charge == 1:
		sb.WriteByte('+')
	case a.Charge == -1:
		sb.WriteByte('-')
	case a.Charge > 1:
		fmt.Fprintf(&sb, "+%d", a.Charge)
	case a.Charge < -1:
		fmt.Fprintf(&sb, "-%d", -a.Charge)
	}
	sb.WriteByte(']')
	return sb.String()
}

// StructureKey derives a stable, InChIKey-shaped identifier from the
// canonical SMILES: a 14-character skeleton block, a 10-character block, and
// a single protonation character, all uppercase letters.  It is a hash that
// shares the InChIKey format, so it can serve as a cache and history key
// wherever one is expected.
func StructureKey(canonical string) string {
	sum := sha256.Sum256([]byte(canonical))
	letters := make([]byte, 25)
	for i := range letters {
		letters[i] = 'A' + sum[i]%26
	}
	return fmt.Sprintf("%s-%sSA-N", letters[:14], letters[14:22])
}

//Personal.AI order the ending

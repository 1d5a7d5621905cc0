// Package chem implements the in-process structure toolkit: a SMILES parser,
// deterministic canonicalisation, molecular formula and weight derivation,
// physicochemical descriptor estimation, and structural pattern detection.
// It is the concrete capability behind the identity resolver and the computed
// property source; nothing outside internal/ imports it directly.
package chem

import "math"

// BondOrder encodes the order of a bond.
type BondOrder int

const (
	BondSingle BondOrder = 1
	BondDouble BondOrder = 2
	BondTriple BondOrder = 3
)

// Atom is a single atom node in the molecular graph.
type Atom struct {
	// Symbol is the element symbol with canonical capitalisation ("Cl", "C").
	Symbol string

	// Aromatic marks atoms written in lowercase SMILES aromatic form.
	Aromatic bool

	// Charge is the formal charge.
	Charge int

	// Isotope is the isotope mass number, 0 when unspecified.
	Isotope int

	// ExplicitH is the hydrogen count given inside a bracket atom.  For
	// organic-subset atoms it is -1 and hydrogens are implied by valence.
	ExplicitH int

	// InRing is set during ring perception.
	InRing bool
}

// Bond is an edge between two atoms, referenced by index into Molecule.Atoms.
type Bond struct {
	A, B     int
	Order    BondOrder
	Aromatic bool
	InRing   bool
}

// Molecule is the parsed molecular graph.  Atom and bond slices are
// append-only after parsing; ring flags are filled in by perceiveRings.
type Molecule struct {
	Atoms []Atom
	Bonds []Bond

	// adjacency[i] lists bond indices incident to atom i.
	adjacency [][]int
}

// Neighbors returns the bond indices incident to atom i.
func (m *Molecule) Neighbors(i int) []int {
	return m.adjacency[i]
}

// OtherEnd returns the atom at the far end of bond b from atom i.
func (m *Molecule) OtherEnd(b Bond, i int) int {
	if b.A == i {
		return b.B
	}
	return b.A
}

// Degree returns the number of explicit (heavy-atom) connections of atom i.
func (m *Molecule) Degree(i int) int {
	return len(m.adjacency[i])
}

// bondOrderSum returns the total bond order at atom i, counting aromatic
// bonds as 1.5.
func (m *Molecule) bondOrderSum(i int) float64 {
	var sum float64
	for _, bi := range m.adjacency[i] {
		b := m.Bonds[bi]
		if b.Aromatic {
			sum += 1.5
		} else {
			sum += float64(b.Order)
		}
	}
	return sum
}

// ImplicitHydrogens returns the implied hydrogen count of atom i.  Bracket
// atoms carry their hydrogen count explicitly; organic-subset atoms fill up
// to the smallest default valence that fits the existing bond order sum.
func (m *Molecule) ImplicitHydrogens(i int) int {
	a := m.Atoms[i]
	if a.ExplicitH >= 0 {
		return a.ExplicitH
	}
	valences, ok := defaultValences[a.Symbol]
	if !ok {
		return 0
	}
	sum := m.bondOrderSum(i)
	for _, v := range valences {
		if float64(v) >= sum {
			h := int(math.Floor(float64(v) - sum))
			if h < 0 {
				return 0
			}
			return h
		}
	}
	return 0
}

// TotalHydrogens returns the hydrogen count over the whole molecule.
func (m *Molecule) TotalHydrogens() int {
	total := 0
	for i, a := range m.Atoms {
		if a.Symbol == "H" {
			continue
		}
		total += m.ImplicitHydrogens(i)
	}
	return total
}

// HeavyAtomCount returns the number of non-hydrogen atoms.
func (m *Molecule) HeavyAtomCount() int {
	n := 0
	for _, a := range m.Atoms {
		if a.Symbol != "H" {
			n++
		}
	}
	return n
}

// components returns the connected components of the graph as slices of atom
// indices, in first-seen order.
func (m *Molecule) components() [][]int {
	seen := make([]bool, len(m.Atoms))
	var comps [][]int
	for start := range m.Atoms {
		if seen[start] {
			continue
		}
		var comp []int
		stack := []int{start}
		seen[start] = true
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp = append(comp, i)
			for _, bi := range m.adjacency[i] {
				j := m.OtherEnd(m.Bonds[bi], i)
				if !seen[j] {
					seen[j] = true
					stack = append(stack, j)
				}
			}
		}
		comps = append(comps, comp)
	}
	return comps
}

// RingCount returns the cyclomatic ring count (bonds - atoms + components).
func (m *Molecule) RingCount() int {
	return len(m.Bonds) - len(m.Atoms) + len(m.components())
}

// perceiveRings marks every atom and bond that participates in a cycle.
// A bond is cyclic iff its endpoints stay connected after removing it.
func (m *Molecule) perceiveRings() {
	for bi := range m.Bonds {
		b := &m.Bonds[bi]
		if m.connectedWithout(b.A, b.B, bi) {
			b.InRing = true
			m.Atoms[b.A].InRing = true
			m.Atoms[b.B].InRing = true
		}
	}
}

// connectedWithout reports whether from can still reach to when bond skip is
// removed from the graph.
func (m *Molecule) connectedWithout(from, to, skip int) bool {
	seen := make([]bool, len(m.Atoms))
	stack := []int{from}
	seen[from] = true
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if i == to {
			return true
		}
		for _, bi := range m.adjacency[i] {
			if bi == skip {
				continue
			}
			j := m.OtherEnd(m.Bonds[bi], i)
			if !seen[j] {
				seen[j] = true
				stack = append(stack, j)
			}
		}
	}
	return false
}

// AromaticRingCount estimates the number of aromatic rings from the aromatic
// subgraph's cyclomatic number.
func (m *Molecule) AromaticRingCount() int {
	aromAtoms := map[int]bool{}
	aromBonds := 0
	for _, b := range m.Bonds {
		if b.Aromatic {
			aromBonds++
			aromAtoms[b.A] = true
			aromAtoms[b.B] = true
		}
	}
	if len(aromAtoms) == 0 {
		return 0
	}
	// Count components of the aromatic subgraph.
	seen := map[int]bool{}
	comps := 0
	for start := range aromAtoms {
		if seen[start] {
			continue
		}
		comps++
		stack := []int{start}
		seen[start] = true
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, bi := range m.adjacency[i] {
				b := m.Bonds[bi]
				if !b.Aromatic {
					continue
				}
				j := m.OtherEnd(b, i)
				if !seen[j] {
					seen[j] = true
					stack = append(stack, j)
				}
			}
		}
	}
	n := aromBonds - len(aromAtoms) + comps
	if n < 0 {
		return 0
	}
	return n
}

//Personal.AI order the ending

package chem

import (
	"fmt"
	"sort"
	"strings"
)

// elementCounts tallies every element in the molecule including implied
// hydrogens.
func elementCounts(m *Molecule) map[string]int {
	counts := map[string]int{}
	for i, a := range m.Atoms {
		counts[a.Symbol]++
		if a.Symbol != "H" {
			counts["H"] += m.ImplicitHydrogens(i)
		}
	}
	if counts["H"] == 0 {
		delete(counts, "H")
	}
	return counts
}

// HillFormula returns the molecular formula in Hill order: carbon first,
// hydrogen second, all remaining elements alphabetically.  When no carbon is
// present every element, hydrogen included, sorts alphabetically.
func HillFormula(m *Molecule) string {
	counts := elementCounts(m)

	symbols := make([]string, 0, len(counts))
	for sym := range counts {
		symbols = append(symbols, sym)
	}

	hasCarbon := counts["C"] > 0
	sort.Slice(symbols, func(i, j int) bool {
		if hasCarbon {
			rank := func(s string) int {
				switch s {
				case "C":
					return 0
				case "H":
					return 1
				default:
					return 2
				}
			}
			ri, rj := rank(symbols[i]), rank(symbols[j])
			if ri != rj {
				return ri < rj
			}
		}
		return symbols[i] < symbols[j]
	})

	var sb strings.Builder
	for _, sym := range symbols {
		sb.WriteString(sym)
		if counts[sym] > 1 {
			fmt.Fprintf(&sb, "%d", counts[sym])
		}
	}
	return sb.String()
}

// MolecularWeight returns the average molecular weight in g/mol, computed
// from standard atomic weights over all atoms and implied hydrogens.
func MolecularWeight(m *Molecule) float64 {
	var w float64
	for sym, n := range elementCounts(m) {
		w += AtomicWeight(sym) * float64(n)
	}
	return w
}

//Personal.AI order the ending

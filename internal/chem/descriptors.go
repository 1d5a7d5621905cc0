package chem

import "math"

// Descriptors bundles every computed physicochemical descriptor the property
// pipeline consumes.  All values are estimates from additive contribution
// models; they trade accuracy for having no external dependencies, which is
// acceptable because every value is provenance-tagged as computed.
type Descriptors struct {
	MolecularWeight float64
	HeavyAtomCount  int
	RingCount       int
	AromaticRings   int
	HBondDonors     int
	HBondAcceptors  int
	RotatableBonds  int
	TPSA            float64
	LogP            float64
	FractionCSP3    float64
}

// ComputeDescriptors derives the full descriptor set for a parsed molecule.
func ComputeDescriptors(m *Molecule) Descriptors {
	return Descriptors{
		MolecularWeight: round2(MolecularWeight(m)),
		HeavyAtomCount:  m.HeavyAtomCount(),
		RingCount:       m.RingCount(),
		AromaticRings:   m.AromaticRingCount(),
		HBondDonors:     HBondDonors(m),
		HBondAcceptors:  HBondAcceptors(m),
		RotatableBonds:  RotatableBonds(m),
		TPSA:            round2(TPSA(m)),
		LogP:            round2(LogP(m)),
		FractionCSP3:    round3(FractionCSP3(m)),
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

// HBondDonors counts N and O atoms carrying at least one hydrogen.
func HBondDonors(m *Molecule) int {
	n := 0
	for i, a := range m.Atoms {
		if (a.Symbol == "N" || a.Symbol == "O") && m.hydrogenCount(i) > 0 {
			n++
		}
	}
	return n
}

// HBondAcceptors counts N and O atoms, excluding positively charged ones.
func HBondAcceptors(m *Molecule) int {
	n := 0
	for _, a := range m.Atoms {
		if (a.Symbol == "N" || a.Symbol == "O") && a.Charge <= 0 {
			n++
		}
	}
	return n
}

func (m *Molecule) hydrogenCount(i int) int {
	h := m.ImplicitHydrogens(i)
	for _, bi := range m.adjacency[i] {
		if m.Atoms[m.OtherEnd(m.Bonds[bi], i)].Symbol == "H" {
			h++
		}
	}
	return h
}

// RotatableBonds counts acyclic single bonds between two heavy atoms that
// each carry at least one further heavy neighbor.  Amide C-N bonds are
// excluded per the usual definition.
func RotatableBonds(m *Molecule) int {
	n := 0
	for _, b := range m.Bonds {
		if b.Order != BondSingle || b.Aromatic || b.InRing {
			continue
		}
		if m.heavyDegree(b.A) < 2 || m.heavyDegree(b.B) < 2 {
			continue
		}
		if m.isAmideBond(b) {
			continue
		}
		n++
	}
	return n
}

func (m *Molecule) heavyDegree(i int) int {
	d := 0
	for _, bi := range m.adjacency[i] {
		if m.Atoms[m.OtherEnd(m.Bonds[bi], i)].Symbol != "H" {
			d++
		}
	}
	return d
}

// isAmideBond reports whether b is the C-N single bond of an amide group.
func (m *Molecule) isAmideBond(b Bond) bool {
	c := -1
	if m.Atoms[b.A].Symbol == "C" && m.Atoms[b.B].Symbol == "N" {
		c = b.A
	} else if m.Atoms[b.B].Symbol == "C" && m.Atoms[b.A].Symbol == "N" {
		c = b.B
	}
	if c < 0 {
		return false
	}
	return m.hasDoubleBondTo(c, "O")
}

func (m *Molecule) hasDoubleBondTo(i int, symbol string) bool {
	for _, bi := range m.adjacency[i] {
		b := m.Bonds[bi]
		if b.Order == BondDouble && m.Atoms[m.OtherEnd(b, i)].Symbol == symbol {
			return true
		}
	}
	return false
}

// TPSA estimates topological polar surface area with per-group Ertl
// contributions for the common N, O, and S environments.
func TPSA(m *Molecule) float64 {
	var area float64
	for i, a := range m.Atoms {
		h := m.hydrogenCount(i)
		switch a.Symbol {
		case "N":
			switch {
			case a.Aromatic && h > 0:
				area += 15.79
			case a.Aromatic:
				area += 12.89
			case m.hasDoubleBond(i) && m.countDoubleBondsTo(i, "O") >= 2:
				area += 11.68 // nitro
			case h >= 2:
				area += 26.02
			case h == 1:
				area += 12.03
			default:
				area += 3.24
			}
		case "O":
			switch {
			case a.Aromatic:
				area += 13.14
			case a.Charge < 0:
				area += 23.06
			case m.hasDoubleBond(i):
				area += 17.07
			case h > 0:
				area += 20.23
			default:
				area += 9.23
			}
		case "S":
			switch {
			case a.Aromatic:
				area += 28.24
			case h > 0:
				area += 38.80
			case m.hasDoubleBond(i):
				area += 32.09
			default:
				area += 25.30
			}
		}
	}
	return area
}

func (m *Molecule) hasDoubleBond(i int) bool {
	for _, bi := range m.adjacency[i] {
		if m.Bonds[bi].Order == BondDouble {
			return true
		}
	}
	return false
}

func (m *Molecule) countDoubleBondsTo(i int, symbol string) int {
	n := 0
	for _, bi := range m.adjacency[i] {
		b := m.Bonds[bi]
		if b.Order == BondDouble && m.Atoms[m.OtherEnd(b, i)].Symbol == symbol {
			n++
		}
	}
	return n
}

// LogP estimates the octanol-water partition coefficient with a coarse
// Crippen-style additive model: hydrophobic contributions from carbons and
// their hydrogens, penalties for heteroatoms and polar hydrogens.
func LogP(m *Molecule) float64 {
	var logp float64
	for i, a := range m.Atoms {
		h := m.hydrogenCount(i)
		switch a.Symbol {
		case "C":
			if a.Aromatic {
				logp += 0.29
			} else {
				logp += 0.14
			}
			logp += 0.12 * float64(h)
		case "N":
			logp -= 0.60
			logp -= 0.20 * float64(h)
		case "O":
			logp -= 0.40
			logp -= 0.25 * float64(h)
		case "S":
			logp += 0.25
		case "F":
			logp += 0.14
		case "Cl":
			logp += 0.65
		case "Br":
			logp += 0.89
		case "I":
			logp += 1.12
		case "P":
			logp -= 0.45
		default:
			if metals[a.Symbol] {
				logp -= 0.50
			}
		}
	}
	return logp
}

// FractionCSP3 returns the fraction of carbons that are sp3 hybridised.
func FractionCSP3(m *Molecule) float64 {
	carbons, sp3 := 0, 0
	for i, a := range m.Atoms {
		if a.Symbol != "C" {
			continue
		}
		carbons++
		if a.Aromatic {
			continue
		}
		multi := false
		for _, bi := range m.adjacency[i] {
			if m.Bonds[bi].Order > BondSingle || m.Bonds[bi].Aromatic {
				multi = true
				break
			}
		}
		if !multi {
			sp3++
		}
	}
	if carbons == 0 {
		return 0
	}
	return float64(sp3) / float64(carbons)
}

//Personal.AI order the ending

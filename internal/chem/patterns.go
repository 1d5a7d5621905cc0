package chem

// Pattern identifies a structural feature relevant to hazard classification.
type Pattern string

const (
	PatternNitrateEster       Pattern = "nitrate_ester"
	PatternNitro              Pattern = "nitro"
	PatternPeroxide           Pattern = "peroxide"
	PatternAlkylHalide        Pattern = "alkyl_halide"
	PatternAcidHalide         Pattern = "acid_halide"
	PatternOrganometallic     Pattern = "organometallic"
	PatternAmine              Pattern = "amine"
	PatternAromaticAmine      Pattern = "aromatic_amine"
	PatternCarboxylicAcid     Pattern = "carboxylic_acid"
	PatternHydrazine          Pattern = "hydrazine"
	PatternSulfonicAcid       Pattern = "sulfonic_acid"
	PatternPhosphonicAcid     Pattern = "phosphonic_acid"
	PatternAlkene             Pattern = "alkene"
	PatternAlkyne             Pattern = "alkyne"
	PatternVicinalDiol        Pattern = "vicinal_diol"
	PatternDisulfide          Pattern = "disulfide"
	PatternHalogenatedAromatic Pattern = "halogenated_aromatic"
	PatternHeavyMetal         Pattern = "heavy_metal"
)

// DetectPatterns scans the molecular graph and returns the set of structural
// features present.  Detection is graph-predicate based: each pattern is a
// hand-written walk over atoms and bonds rather than a general substructure
// matcher, which keeps the whole thing dependency-free and trivially fast
// for drug-sized molecules.
func DetectPatterns(m *Molecule) map[Pattern]bool {
	found := map[Pattern]bool{}
	mark := func(p Pattern, ok bool) {
		if ok {
			found[p] = true
		}
	}

	for i, a := range m.Atoms {
		switch a.Symbol {
		case "N":
			if isNitroNitrogen(m, i) {
				if nitroOnOxygen(m, i) {
					found[PatternNitrateEster] = true
				} else {
					found[PatternNitro] = true
				}
			}
			mark(PatternAmine, isAmineNitrogen(m, i))
			mark(PatternAromaticAmine, isAmineNitrogen(m, i) && hasAromaticNeighbor(m, i))
			mark(PatternHydrazine, isHydrazineNitrogen(m, i))
		case "O":
			mark(PatternPeroxide, isPeroxideOxygen(m, i))
		case "C":
			mark(PatternCarboxylicAcid, isCarboxylCarbon(m, i))
			mark(PatternAcidHalide, isAcidHalideCarbon(m, i))
			mark(PatternAlkylHalide, isAlkylHalideCarbon(m, i))
			mark(PatternVicinalDiol, isVicinalDiolCarbon(m, i))
			if a.Aromatic && hasHalogenNeighbor(m, i) {
				found[PatternHalogenatedAromatic] = true
			}
		case "S":
			mark(PatternSulfonicAcid, isSulfonicSulfur(m, i))
			mark(PatternDisulfide, isDisulfideSulfur(m, i))
		case "P":
			mark(PatternPhosphonicAcid, isPhosphonicPhosphorus(m, i))
		default:
			if metals[a.Symbol] {
				if hasCarbonNeighbor(m, i) {
					found[PatternOrganometallic] = true
				}
			}
			if heavyMetals[a.Symbol] {
				found[PatternHeavyMetal] = true
			}
		}
	}

	for _, b := range m.Bonds {
		if b.Aromatic {
			continue
		}
		aSym, bSym := m.Atoms[b.A].Symbol, m.Atoms[b.B].Symbol
		if aSym == "C" && bSym == "C" {
			if b.Order == BondDouble {
				found[PatternAlkene] = true
			}
			if b.Order == BondTriple {
				found[PatternAlkyne] = true
			}
		}
	}

	return found
}

// isNitroNitrogen matches N bonded to at least two oxygens with one double
// bond, covering both neutral N(=O)=O and charge-separated [N+](=O)[O-].
func isNitroNitrogen(m *Molecule, i int) bool {
	oxygens, doubles := 0, 0
	for _, bi := range m.adjacency[i] {
		b := m.Bonds[bi]
		if m.Atoms[m.OtherEnd(b, i)].Symbol != "O" {
			continue
		}
		oxygens++
		if b.Order == BondDouble {
			doubles++
		}
	}
	return oxygens >= 2 && doubles >= 1
}

// nitroOnOxygen reports whether a nitro nitrogen hangs off an ester oxygen
// (O-NO2), the nitrate-ester arrangement.
func nitroOnOxygen(m *Molecule, i int) bool {
	for _, bi := range m.adjacency[i] {
		b := m.Bonds[bi]
		j := m.OtherEnd(b, i)
		if m.Atoms[j].Symbol != "O" || b.Order != BondSingle {
			continue
		}
		// The bridging oxygen must connect onward to carbon.
		for _, bj := range m.adjacency[j] {
			k := m.OtherEnd(m.Bonds[bj], j)
			if k != i && m.Atoms[k].Symbol == "C" {
				return true
			}
		}
	}
	return false
}

// isAmineNitrogen matches non-aromatic nitrogens bonded only to carbon or
// hydrogen, excluding amides.
func isAmineNitrogen(m *Molecule, i int) bool {
	a := m.Atoms[i]
	if a.Aromatic || a.Charge != 0 {
		return false
	}
	for _, bi := range m.adjacency[i] {
		b := m.Bonds[bi]
		j := m.OtherEnd(b, i)
		if b.Order != BondSingle {
			return false
		}
		sym := m.Atoms[j].Symbol
		if sym != "C" && sym != "H" {
			return false
		}
		if sym == "C" && m.hasDoubleBondTo(j, "O") {
			return false // amide
		}
	}
	return true
}

func hasAromaticNeighbor(m *Molecule, i int) bool {
	for _, bi := range m.adjacency[i] {
		if m.Atoms[m.OtherEnd(m.Bonds[bi], i)].Aromatic {
			return true
		}
	}
	return false
}

func isHydrazineNitrogen(m *Molecule, i int) bool {
	for _, bi := range m.adjacency[i] {
		b := m.Bonds[bi]
		j := m.OtherEnd(b, i)
		if b.Order == BondSingle && m.Atoms[j].Symbol == "N" &&
			!m.Atoms[i].Aromatic && !m.Atoms[j].Aromatic {
			return true
		}
	}
	return false
}

func isPeroxideOxygen(m *Molecule, i int) bool {
	for _, bi := range m.adjacency[i] {
		b := m.Bonds[bi]
		if b.Order == BondSingle && m.Atoms[m.OtherEnd(b, i)].Symbol == "O" {
			return true
		}
	}
	return false
}

// isCarboxylCarbon matches C(=O)OH.
func isCarboxylCarbon(m *Molecule, i int) bool {
	if !m.hasDoubleBondTo(i, "O") {
		return false
	}
	for _, bi := range m.adjacency[i] {
		b := m.Bonds[bi]
		j := m.OtherEnd(b, i)
		if b.Order == BondSingle && m.Atoms[j].Symbol == "O" && m.hydrogenCount(j) > 0 {
			return true
		}
	}
	return false
}

// isAcidHalideCarbon matches C(=O)X.
func isAcidHalideCarbon(m *Molecule, i int) bool {
	if !m.hasDoubleBondTo(i, "O") {
		return false
	}
	return hasHalogenNeighbor(m, i)
}

// isAlkylHalideCarbon matches sp3 carbons with a halogen substituent,
// excluding acyl halides.
func isAlkylHalideCarbon(m *Molecule, i int) bool {
	a := m.Atoms[i]
	if a.Aromatic || m.hasDoubleBond(i) {
		return false
	}
	return hasHalogenNeighbor(m, i)
}

func hasHalogenNeighbor(m *Molecule, i int) bool {
	for _, bi := range m.adjacency[i] {
		if halogens[m.Atoms[m.OtherEnd(m.Bonds[bi], i)].Symbol] {
			return true
		}
	}
	return false
}

func hasCarbonNeighbor(m *Molecule, i int) bool {
	for _, bi := range m.adjacency[i] {
		if m.Atoms[m.OtherEnd(m.Bonds[bi], i)].Symbol == "C" {
			return true
		}
	}
	return false
}

// isVicinalDiolCarbon matches a carbon with a hydroxyl whose carbon neighbor
// also carries a hydroxyl.
func isVicinalDiolCarbon(m *Molecule, i int) bool {
	if !hasHydroxyl(m, i) {
		return false
	}
	for _, bi := range m.adjacency[i] {
		b := m.Bonds[bi]
		j := m.OtherEnd(b, i)
		if b.Order == BondSingle && m.Atoms[j].Symbol == "C" && hasHydroxyl(m, j) {
			return true
		}
	}
	return false
}

func hasHydroxyl(m *Molecule, i int) bool {
	for _, bi := range m.adjacency[i] {
		b := m.Bonds[bi]
		j := m.OtherEnd(b, i)
		if b.Order == BondSingle && m.Atoms[j].Symbol == "O" && m.hydrogenCount(j) > 0 {
			return true
		}
	}
	return false
}

// isSulfonicSulfur matches S(=O)(=O)OH.
func isSulfonicSulfur(m *Molecule, i int) bool {
	return m.countDoubleBondsTo(i, "O") >= 2 && hasHydroxyl(m, i)
}

// isDisulfideSulfur matches S-S single bonds.
func isDisulfideSulfur(m *Molecule, i int) bool {
	for _, bi := range m.adjacency[i] {
		b := m.Bonds[bi]
		if b.Order == BondSingle && m.Atoms[m.OtherEnd(b, i)].Symbol == "S" {
			return true
		}
	}
	return false
}

// isPhosphonicPhosphorus matches P(=O) with at least one hydroxyl.
func isPhosphonicPhosphorus(m *Molecule, i int) bool {
	return m.countDoubleBondsTo(i, "O") >= 1 && hasHydroxyl(m, i)
}

//Personal.AI order the ending

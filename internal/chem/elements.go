package chem

// atomicWeights holds standard atomic weights (IUPAC 2021, rounded to three
// decimals) for every element the parser accepts.  Weights feed directly into
// molecular-weight computation, so precision here is user-visible.
var atomicWeights = map[string]float64{
	"H": 1.008, "He": 4.003,
	"Li": 6.94, "Be": 9.012, "B": 10.811, "C": 12.011, "N": 14.007,
	"O": 15.999, "F": 18.998, "Ne": 20.180,
	"Na": 22.990, "Mg": 24.305, "Al": 26.982, "Si": 28.086, "P": 30.974,
	"S": 32.065, "Cl": 35.453, "Ar": 39.948,
	"K": 39.098, "Ca": 40.078, "Ti": 47.867, "Cr": 51.996, "Mn": 54.938,
	"Fe": 55.845, "Co": 58.933, "Ni": 58.693, "Cu": 63.546, "Zn": 65.38,
	"Ga": 69.723, "Ge": 72.630, "As": 74.922, "Se": 78.971, "Br": 79.904,
	"Kr": 83.798, "Zr": 91.224, "Mo": 95.95, "Ru": 101.07, "Pd": 106.42,
	"Ag": 107.868, "Cd": 112.414, "In": 114.818, "Sn": 118.710,
	"Sb": 121.760, "Te": 127.60, "I": 126.904, "Xe": 131.293,
	"Ba": 137.327, "W": 183.84, "Pt": 195.084, "Au": 196.967,
	"Hg": 200.592, "Tl": 204.38, "Pb": 207.2, "Bi": 208.980,
}

// organicSubset lists elements that may appear in SMILES without brackets.
var organicSubset = map[string]bool{
	"B": true, "C": true, "N": true, "O": true, "P": true, "S": true,
	"F": true, "Cl": true, "Br": true, "I": true,
}

// defaultValences maps an element to its allowed normal valences, ordered
// ascending.  Implicit hydrogen counting picks the smallest valence that
// accommodates the atom's existing bond order sum.
var defaultValences = map[string][]int{
	"B": {3},
	"C": {4},
	"N": {3, 5},
	"O": {2},
	"P": {3, 5},
	"S": {2, 4, 6},
	"F": {1}, "Cl": {1}, "Br": {1}, "I": {1},
}

// halogens is the set of halogen element symbols.
var halogens = map[string]bool{"F": true, "Cl": true, "Br": true, "I": true}

// metals covers the metal symbols relevant to organometallic and heavy-metal
// pattern detection.
var metals = map[string]bool{
	"Li": true, "Na": true, "K": true, "Mg": true, "Ca": true, "Al": true,
	"Zn": true, "Fe": true, "Cu": true, "Ni": true, "Co": true, "Mn": true,
	"Cr": true, "Sn": true, "Pb": true, "Hg": true, "Cd": true, "As": true,
	"Ag": true, "Au": true, "Pt": true, "Pd": true, "Ti": true, "W": true,
	"Mo": true, "Ba": true, "Tl": true, "Bi": true, "Sb": true,
}

// heavyMetals is the subset flagged for toxicity scoring.
var heavyMetals = map[string]bool{
	"Hg": true, "Pb": true, "Cd": true, "As": true, "Cr": true, "Tl": true,
	"Sb": true, "Ba": true,
}

// AtomicWeight returns the standard atomic weight of the element, or 0 when
// the symbol is unknown.
func AtomicWeight(symbol string) float64 {
	return atomicWeights[symbol]
}

// IsKnownElement reports whether the symbol appears in the weight table.
func IsKnownElement(symbol string) bool {
	_, ok := atomicWeights[symbol]
	return ok
}

//Personal.AI order the ending

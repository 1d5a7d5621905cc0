package hazard

import (
	"sort"

	"github.com/turtacn/ChemSDS/internal/chem"
	sdstypes "github.com/turtacn/ChemSDS/pkg/types/sds"
)

// Toxicity is the structure-based acute toxicity prediction.
type Toxicity struct {
	Class          sdstypes.ToxicityClass
	Score          int
	LD50Oral       string
	LC50Inhalation string
	TargetOrgans   []string
	Endpoints      []string
	Confidence     string
}

// Severe reports whether the prediction lands in Class I or II, the bands
// that flip GHS classification and signal word to their acute-toxicity
// variants.
func (t Toxicity) Severe() bool {
	return t.Class == sdstypes.ToxClassIExtreme ||
		t.Class == sdstypes.ToxClassIVery ||
		t.Class == sdstypes.ToxClassII
}

// PredictToxicity scores structural toxicity indicators and maps the total
// into an acute toxicity class with matching LD50/LC50 bands.  Scoring
// weights and band boundaries are fixed model constants.
func PredictToxicity(m *chem.Molecule, d chem.Descriptors, alerts []ReactivityAlert) Toxicity {
	found := chem.DetectPatterns(m)
	hasNitro := found[chem.PatternNitro] || found[chem.PatternNitrateEster]
	hasAromaticAmine := found[chem.PatternAromaticAmine]
	hasHalogen := containsHalogen(m)
	hasHeavyMetal := found[chem.PatternHeavyMetal]

	score := 0
	if hasNitro {
		score += 3
	}
	if hasAromaticAmine {
		score += 2
	}
	if hasHalogen {
		score++
	}
	if hasHeavyMetal {
		score += 4
	}
	if d.LogP > 5 {
		score += 2
	}
	if d.MolecularWeight > 500 {
		score++
	}
	if hasCategory(alerts, sdstypes.HazardExplosive) ||
		hasCategory(alerts, sdstypes.HazardUnstable) ||
		hasCategory(alerts, sdstypes.HazardCorrosive) {
		score += 2
	}

	tox := Toxicity{Score: score}
	switch {
	case score >= 6:
		tox.Class = sdstypes.ToxClassIExtreme
		tox.LD50Oral = "1-5 mg/kg"
		tox.LC50Inhalation = "1-10 mg/m³"
	case score >= 5:
		tox.Class = sdstypes.ToxClassIVery
		tox.LD50Oral = "5-50 mg/kg"
		tox.LC50Inhalation = "10-100 mg/m³"
	case score >= 3:
		tox.Class = sdstypes.ToxClassII
		tox.LD50Oral = "50-500 mg/kg"
		tox.LC50Inhalation = "100-1000 mg/m³"
	case score >= 1:
		tox.Class = sdstypes.ToxClassIII
		tox.LD50Oral = "500-2000 mg/kg"
		tox.LC50Inhalation = "1000-5000 mg/m³"
	default:
		tox.Class = sdstypes.ToxClassIV
		tox.LD50Oral = ">2000 mg/kg"
		tox.LC50Inhalation = ">5000 mg/m³"
	}

	organs := map[string]bool{}
	if hasNitro || hasAromaticAmine {
		organs["Liver"] = true
		organs["Blood"] = true
	}
	if hasHeavyMetal {
		organs["Kidneys"] = true
		organs["CNS"] = true
		organs["Blood"] = true
	}
	if d.LogP > 3 {
		organs["CNS"] = true
	}
	if d.TPSA < 60 {
		organs["Brain"] = true
	}
	if hasCategory(alerts, sdstypes.HazardCorrosive) {
		organs["Skin"] = true
		organs["Eyes"] = true
		organs["Respiratory tract"] = true
	}
	tox.TargetOrgans = sortedOrDefault(organs, "Not specified")

	endpoints := map[string]bool{}
	if hasNitro {
		endpoints["Hepatotoxicity"] = true
		endpoints["Methemoglobinemia"] = true
	}
	if hasAromaticAmine {
		endpoints["Carcinogenicity"] = true
	}
	if hasHalogen {
		endpoints["Nephrotoxicity"] = true
	}
	if hasHeavyMetal {
		endpoints["Neurotoxicity"] = true
		endpoints["Nephrotoxicity"] = true
	}
	if hasCategory(alerts, sdstypes.HazardCorrosive) {
		endpoints["Skin/Eye Corrosion"] = true
	}
	if hasCategory(alerts, sdstypes.HazardExplosive) {
		endpoints["Physical Explosion Hazard"] = true
	}
	tox.Endpoints = sortedOrDefault(endpoints, "None predicted")

	switch {
	case score > 3:
		tox.Confidence = "High"
	case score > 0:
		tox.Confidence = "Medium"
	default:
		tox.Confidence = "Low"
	}

	return tox
}

func containsHalogen(m *chem.Molecule) bool {
	for _, a := range m.Atoms {
		switch a.Symbol {
		case "F", "Cl", "Br", "I":
			return true
		}
	}
	return false
}

// sortedOrDefault turns a set into a sorted slice, substituting a single
// default entry when the set is empty.  Sorting keeps target-organ and
// endpoint lists deterministic.
func sortedOrDefault(set map[string]bool, def string) []string {
	if len(set) == 0 {
		return []string{def}
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

//Personal.AI order the ending

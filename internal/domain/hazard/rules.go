// Package hazard derives rule-based hazard classifications from the
// molecular graph and computed descriptors.  The rule table and every
// threshold are process-wide, read-only data; classification is a pure
// function of its inputs and therefore fully deterministic.
package hazard

import (
	"github.com/turtacn/ChemSDS/internal/chem"
	sdstypes "github.com/turtacn/ChemSDS/pkg/types/sds"
)

// ReactivityAlert is one structural-alert finding: a functional group known
// to make a molecule reactive, unstable, or otherwise hazardous.
type ReactivityAlert struct {
	Code            string
	FunctionalGroup string
	Category        sdstypes.HazardCategory
	Severity        sdstypes.SeverityLevel
	Description     string
	Incompatibility string
}

// reactivityRule binds a structural pattern to its alert.  Rules are
// evaluated in table order so the alert list is stable for a given molecule.
type reactivityRule struct {
	pattern chem.Pattern
	alert   ReactivityAlert
}

// reactivityRules is the fixed structural-alert table.  Codes are stable
// identifiers carried into hazard statements and must never be renumbered.
var reactivityRules = []reactivityRule{
	{chem.PatternNitrateEster, ReactivityAlert{
		Code:            "RX-001",
		FunctionalGroup: "Nitrate ester",
		Category:        sdstypes.HazardExplosive,
		Severity:        sdstypes.SeverityCritical,
		Description:     "Nitrate ester – shock-sensitive, explosive",
		Incompatibility: "Strong acids, bases, reducing agents, heat, shock, friction",
	}},
	{chem.PatternNitro, ReactivityAlert{
		Code:            "RX-002",
		FunctionalGroup: "Nitro group",
		Category:        sdstypes.HazardExplosive,
		Severity:        sdstypes.SeverityCritical,
		Description:     "Nitro group – potential explosive",
		Incompatibility: "Strong acids, bases, reducing agents, heat, shock, friction",
	}},
	{chem.PatternPeroxide, ReactivityAlert{
		Code:            "RX-003",
		FunctionalGroup: "Peroxide",
		Category:        sdstypes.HazardUnstable,
		Severity:        sdstypes.SeverityHigh,
		Description:     "Peroxide – may form explosive crystals on aging",
		Incompatibility: "Heat, light, friction, contaminants, metal ions",
	}},
	{chem.PatternAlkylHalide, ReactivityAlert{
		Code:            "RX-004",
		FunctionalGroup: "Alkyl halide",
		Category:        sdstypes.HazardHydrolysis,
		Severity:        sdstypes.SeverityLow,
		Description:     "Alkyl halide – may hydrolyze to hydrogen halide",
		Incompatibility: "Water, moisture, humid conditions",
	}},
	{chem.PatternAcidHalide, ReactivityAlert{
		Code:            "RX-005",
		FunctionalGroup: "Acid halide",
		Category:        sdstypes.HazardReactive,
		Severity:        sdstypes.SeverityHigh,
		Description:     "Acid halide – reacts violently with water, alcohols, amines",
		Incompatibility: "Water, alcohols, amines, oxidizers",
	}},
	{chem.PatternOrganometallic, ReactivityAlert{
		Code:            "RX-006",
		FunctionalGroup: "Organometallic",
		Category:        sdstypes.HazardPyrophoric,
		Severity:        sdstypes.SeverityCritical,
		Description:     "Organometallic – may ignite in air, reacts violently with water",
		Incompatibility: "Air, moisture, oxidizers",
	}},
	{chem.PatternAmine, ReactivityAlert{
		Code:            "RX-007",
		FunctionalGroup: "Amine",
		Category:        sdstypes.HazardBasic,
		Severity:        sdstypes.SeverityLow,
		Description:     "Amine – may react with acids, oxidizers",
		Incompatibility: "Strong acids, acid chlorides, oxidizing agents",
	}},
	{chem.PatternCarboxylicAcid, ReactivityAlert{
		Code:            "RX-008",
		FunctionalGroup: "Carboxylic acid",
		Category:        sdstypes.HazardCorrosive,
		Severity:        sdstypes.SeverityModerate,
		Description:     "Carboxylic acid – corrosive to metals",
		Incompatibility: "Metals, bases, organic materials",
	}},
	{chem.PatternHydrazine, ReactivityAlert{
		Code:            "RX-009",
		FunctionalGroup: "Hydrazine",
		Category:        sdstypes.HazardUnstable,
		Severity:        sdstypes.SeverityHigh,
		Description:     "Hydrazine – unstable, potentially explosive",
		Incompatibility: "Heat, light, friction, contaminants, metal ions",
	}},
	{chem.PatternSulfonicAcid, ReactivityAlert{
		Code:            "RX-010",
		FunctionalGroup: "Sulfonic acid",
		Category:        sdstypes.HazardCorrosive,
		Severity:        sdstypes.SeverityHigh,
		Description:     "Sulfonic acid – strong acid, corrosive",
		Incompatibility: "Metals, bases, organic materials",
	}},
	{chem.PatternPhosphonicAcid, ReactivityAlert{
		Code:            "RX-011",
		FunctionalGroup: "Phosphonic acid",
		Category:        sdstypes.HazardReactive,
		Severity:        sdstypes.SeverityModerate,
		Description:     "Phosphonic acid – reactive with metals",
		Incompatibility: "Water, alcohols, amines, oxidizers",
	}},
	{chem.PatternAlkene, ReactivityAlert{
		Code:            "RX-012",
		FunctionalGroup: "Alkene",
		Category:        sdstypes.HazardPolymerizable,
		Severity:        sdstypes.SeverityLow,
		Description:     "Alkene – may undergo polymerization",
		Incompatibility: "Heat, light, peroxides, radical initiators",
	}},
	{chem.PatternAlkyne, ReactivityAlert{
		Code:            "RX-013",
		FunctionalGroup: "Alkyne",
		Category:        sdstypes.HazardPolymerizable,
		Severity:        sdstypes.SeverityLow,
		Description:     "Alkyne – may undergo polymerization",
		Incompatibility: "Heat, light, peroxides, radical initiators",
	}},
	{chem.PatternVicinalDiol, ReactivityAlert{
		Code:            "RX-014",
		FunctionalGroup: "Vicinal diol",
		Category:        sdstypes.HazardUnstable,
		Severity:        sdstypes.SeverityLow,
		Description:     "Vicinal diol – prone to oxidation",
		Incompatibility: "Heat, light, friction, contaminants, metal ions",
	}},
	{chem.PatternDisulfide, ReactivityAlert{
		Code:            "RX-015",
		FunctionalGroup: "Disulfide",
		Category:        sdstypes.HazardReactive,
		Severity:        sdstypes.SeverityLow,
		Description:     "Disulfide – may be cleaved by reducing agents",
		Incompatibility: "Water, alcohols, amines, oxidizers",
	}},
}

// EvaluateReactivity returns the structural alerts present in the molecule,
// in rule-table order.
func EvaluateReactivity(m *chem.Molecule) []ReactivityAlert {
	found := chem.DetectPatterns(m)
	var alerts []ReactivityAlert
	for _, rule := range reactivityRules {
		if found[rule.pattern] {
			alerts = append(alerts, rule.alert)
		}
	}
	return alerts
}

// hasCategory reports whether any alert carries the given category.
func hasCategory(alerts []ReactivityAlert, cat sdstypes.HazardCategory) bool {
	for _, a := range alerts {
		if a.Category == cat {
			return true
		}
	}
	return false
}

//Personal.AI order the ending

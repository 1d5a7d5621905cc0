// Package sources provides the property sources backing the gathering
// adapter: a local computed source derived from the molecular graph, and
// network-backed fetched sources under subpackages.
package sources

import (
	"fmt"

	"github.com/turtacn/ChemSDS/internal/chem"
	"github.com/turtacn/ChemSDS/internal/domain/identity"
	"github.com/turtacn/ChemSDS/internal/domain/property"
	sdstypes "github.com/turtacn/ChemSDS/pkg/types/sds"
)

// flammableLogP mirrors the hazard engine's flammability threshold so the
// predicted flash point and the classification never disagree.
const flammableLogP = 1.5

// Computed derives property values directly from the parsed structure.  It
// is pure, never blocks, and always wins over fetched values for the keys
// it can supply.
type Computed struct{}

// NewComputed returns the structure-derived property source.
func NewComputed() *Computed {
	return &Computed{}
}

var _ property.ComputedSource = (*Computed)(nil)

func (c *Computed) Name() string { return "computed" }

// Compute supplies values for descriptor keys and structure-predicted
// physical properties.  Keys it cannot derive return false so the adapter
// forwards them to the fetched source.
func (c *Computed) Compute(id *identity.MoleculeIdentity, key sdstypes.PropertyKey) (sdstypes.TaggedValue, bool) {
	m := id.Molecule()
	if m == nil {
		return sdstypes.TaggedValue{}, false
	}
	d := chem.ComputeDescriptors(m)

	switch key {
	case sdstypes.KeyMolecularWeight:
		return computed(fmt.Sprintf("%.2f", d.MolecularWeight), "g/mol"), true
	case sdstypes.KeyMolecularFormula:
		return computed(id.Formula, ""), true
	case sdstypes.KeyHeavyAtomCount:
		return computed(fmt.Sprintf("%d", d.HeavyAtomCount), ""), true
	case sdstypes.KeyRingCount:
		return computed(fmt.Sprintf("%d", d.RingCount), ""), true
	case sdstypes.KeyAromaticRingCount:
		return computed(fmt.Sprintf("%d", d.AromaticRings), ""), true
	case sdstypes.KeyHBondDonors:
		return computed(fmt.Sprintf("%d", d.HBondDonors), ""), true
	case sdstypes.KeyHBondAcceptors:
		return computed(fmt.Sprintf("%d", d.HBondAcceptors), ""), true
	case sdstypes.KeyRotatableBonds:
		return computed(fmt.Sprintf("%d", d.RotatableBonds), ""), true
	case sdstypes.KeyTPSA:
		return computed(fmt.Sprintf("%.2f", d.TPSA), "Å²"), true
	case sdstypes.KeyLogP:
		return computed(fmt.Sprintf("%.2f", d.LogP), ""), true
	case sdstypes.KeyFractionCSP3:
		return computed(fmt.Sprintf("%.3f", d.FractionCSP3), ""), true
	case sdstypes.KeyPhysicalState:
		return computed(predictPhysicalState(d), ""), true
	case sdstypes.KeySolubilityWater:
		return computed(predictSolubility(d.LogP), ""), true
	case sdstypes.KeyFlashPoint:
		if d.LogP > flammableLogP {
			return computed("< 23°C (predicted)", ""), true
		}
		return sdstypes.TaggedValue{}, false
	default:
		return sdstypes.TaggedValue{}, false
	}
}

func computed(value, unit string) sdstypes.TaggedValue {
	return sdstypes.TaggedValue{
		Value:      value,
		Unit:       unit,
		Source:     sdstypes.SourceComputed,
		Confidence: 1,
	}
}

// predictPhysicalState estimates the room-temperature state from molecular
// weight and lipophilicity.
func predictPhysicalState(d chem.Descriptors) string {
	switch {
	case d.MolecularWeight < 100:
		return "Gas or volatile liquid"
	case d.MolecularWeight < 200 && d.LogP < 2:
		return "Liquid"
	default:
		return "Solid"
	}
}

// predictSolubility maps logP to a qualitative aqueous-solubility band.
func predictSolubility(logP float64) string {
	switch {
	case logP < 0:
		return "Highly soluble"
	case logP < 2:
		return "Soluble"
	case logP < 4:
		return "Moderately soluble"
	default:
		return "Poorly soluble"
	}
}

//Personal.AI order the ending

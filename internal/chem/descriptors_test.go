package chem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, smiles string) *Molecule {
	t.Helper()
	m, err := ParseSMILES(smiles)
	require.NoError(t, err)
	return m
}

func TestComputeDescriptors_Ethanol(t *testing.T) {
	d := ComputeDescriptors(mustParse(t, "CCO"))

	assert.InDelta(t, 46.07, d.MolecularWeight, 0.01)
	assert.Equal(t, 3, d.HeavyAtomCount)
	assert.Equal(t, 0, d.RingCount)
	assert.Equal(t, 0, d.AromaticRings)
	assert.Equal(t, 1, d.HBondDonors)
	assert.Equal(t, 1, d.HBondAcceptors)
	assert.Equal(t, 0, d.RotatableBonds)
	assert.InDelta(t, 20.23, d.TPSA, 0.01)
	assert.InDelta(t, 1.0, d.FractionCSP3, 0.001)
}

func TestComputeDescriptors_Benzene(t *testing.T) {
	d := ComputeDescriptors(mustParse(t, "c1ccccc1"))

	assert.InDelta(t, 78.11, d.MolecularWeight, 0.01)
	assert.Equal(t, 1, d.RingCount)
	assert.Equal(t, 1, d.AromaticRings)
	assert.Equal(t, 0, d.HBondDonors)
	assert.Equal(t, 0, d.HBondAcceptors)
	assert.InDelta(t, 0, d.TPSA, 0.001)
	assert.InDelta(t, 2.46, d.LogP, 0.01)
	assert.InDelta(t, 0, d.FractionCSP3, 0.001)
}

func TestHBondCounts(t *testing.T) {
	tests := []struct {
		name   string
		smiles string
		donors int
		accept int
	}{
		{"dimethylamine", "CNC", 1, 1},
		{"trimethylamine", "CN(C)C", 0, 1},
		{"acetic acid", "CC(=O)O", 1, 2},
		{"ethanolamine", "NCCO", 2, 2},
		{"ammonium cation is no acceptor", "[NH4+]", 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mustParse(t, tt.smiles)
			assert.Equal(t, tt.donors, HBondDonors(m))
			assert.Equal(t, tt.accept, HBondAcceptors(m))
		})
	}
}

func TestRotatableBonds(t *testing.T) {
	tests := []struct {
		name   string
		smiles string
		want   int
	}{
		{"ethanol has none", "CCO", 0},
		{"butane has one", "CCCC", 1},
		{"hexane has three", "CCCCCC", 3},
		{"cyclohexane ring bonds never rotate", "C1CCCCC1", 0},
		{"ethylbenzene has one", "CCc1ccccc1", 1},
		{"amide bond is excluded", "CN(C)C=O", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RotatableBonds(mustParse(t, tt.smiles)))
		})
	}
}

func TestTPSA(t *testing.T) {
	tests := []struct {
		name   string
		smiles string
		want   float64
	}{
		{"hydroxyl", "CCO", 20.23},
		{"ether", "COC", 9.23},
		{"primary amine", "CCN", 26.02},
		{"secondary amine", "CNC", 12.03},
		{"tertiary amine", "CN(C)C", 3.24},
		{"acetone carbonyl", "CC(=O)C", 17.07},
		{"pyridine", "c1ccncc1", 12.89},
		{"pyrrole", "c1cc[nH]c1", 15.79},
		{"furan", "c1ccoc1", 13.14},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, TPSA(mustParse(t, tt.smiles)), 0.01)
		})
	}
}

func TestLogP_OrderingIsSensible(t *testing.T) {
	// Absolute values from an additive model are coarse; what matters for
	// flammability and bioaccumulation cutoffs is the relative ordering.
	hexane := LogP(mustParse(t, "CCCCCC"))
	ethanol := LogP(mustParse(t, "CCO"))
	water := LogP(mustParse(t, "O"))

	assert.Greater(t, hexane, ethanol)
	assert.Greater(t, ethanol, water)
	assert.Greater(t, hexane, 1.5)
	assert.Less(t, water, 0.0)
}

func TestFractionCSP3(t *testing.T) {
	assert.InDelta(t, 1.0, FractionCSP3(mustParse(t, "CCCC")), 0.001)
	assert.InDelta(t, 0.0, FractionCSP3(mustParse(t, "c1ccccc1")), 0.001)
	assert.InDelta(t, 1.0/7.0, FractionCSP3(mustParse(t, "Cc1ccccc1")), 0.001)
	assert.InDelta(t, 0.5, FractionCSP3(mustParse(t, "CC=CC")), 0.001)
}

//Personal.AI order the ending

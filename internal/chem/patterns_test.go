package chem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPatterns(t *testing.T) {
	tests := []struct {
		name    string
		smiles  string
		present []Pattern
		absent  []Pattern
	}{
		{
			name:    "nitrobenzene",
			smiles:  "c1ccccc1[N+](=O)[O-]",
			present: []Pattern{PatternNitro},
			absent:  []Pattern{PatternNitrateEster, PatternAmine},
		},
		{
			name:    "ethyl nitrate",
			smiles:  "CCO[N+](=O)[O-]",
			present: []Pattern{PatternNitrateEster},
			absent:  []Pattern{PatternNitro},
		},
		{
			name:    "hydrogen peroxide",
			smiles:  "OO",
			present: []Pattern{PatternPeroxide},
		},
		{
			name:    "diethyl peroxide",
			smiles:  "CCOOCC",
			present: []Pattern{PatternPeroxide},
			absent:  []Pattern{PatternVicinalDiol},
		},
		{
			name:    "chloroethane",
			smiles:  "CCCl",
			present: []Pattern{PatternAlkylHalide},
			absent:  []Pattern{PatternAcidHalide, PatternHalogenatedAromatic},
		},
		{
			name:    "acetyl chloride",
			smiles:  "CC(=O)Cl",
			present: []Pattern{PatternAcidHalide},
			absent:  []Pattern{PatternAlkylHalide, PatternCarboxylicAcid},
		},
		{
			name:    "chlorobenzene",
			smiles:  "Clc1ccccc1",
			present: []Pattern{PatternHalogenatedAromatic},
			absent:  []Pattern{PatternAlkylHalide},
		},
		{
			name:    "ethylamine",
			smiles:  "CCN",
			present: []Pattern{PatternAmine},
			absent:  []Pattern{PatternAromaticAmine, PatternHydrazine},
		},
		{
			name:    "aniline",
			smiles:  "Nc1ccccc1",
			present: []Pattern{PatternAmine, PatternAromaticAmine},
		},
		{
			name:   "acetamide nitrogen is not an amine",
			smiles: "CC(=O)N",
			absent: []Pattern{PatternAmine},
		},
		{
			name:    "acetic acid",
			smiles:  "CC(=O)O",
			present: []Pattern{PatternCarboxylicAcid},
			absent:  []Pattern{PatternVicinalDiol},
		},
		{
			name:    "methylhydrazine",
			smiles:  "CNN",
			present: []Pattern{PatternHydrazine},
		},
		{
			name:    "methanesulfonic acid",
			smiles:  "CS(=O)(=O)O",
			present: []Pattern{PatternSulfonicAcid},
			absent:  []Pattern{PatternDisulfide},
		},
		{
			name:    "methylphosphonic acid",
			smiles:  "CP(=O)(O)O",
			present: []Pattern{PatternPhosphonicAcid},
		},
		{
			name:    "propene",
			smiles:  "CC=C",
			present: []Pattern{PatternAlkene},
			absent:  []Pattern{PatternAlkyne},
		},
		{
			name:    "propyne",
			smiles:  "CC#C",
			present: []Pattern{PatternAlkyne},
			absent:  []Pattern{PatternAlkene},
		},
		{
			name:   "benzene aromatic bonds are not alkenes",
			smiles: "c1ccccc1",
			absent: []Pattern{PatternAlkene},
		},
		{
			name:    "ethylene glycol",
			smiles:  "OCCO",
			present: []Pattern{PatternVicinalDiol},
		},
		{
			name:    "dimethyl disulfide",
			smiles:  "CSSC",
			present: []Pattern{PatternDisulfide},
			absent:  []Pattern{PatternSulfonicAcid},
		},
		{
			name:    "dimethylmercury",
			smiles:  "C[Hg]C",
			present: []Pattern{PatternOrganometallic, PatternHeavyMetal},
		},
		{
			name:    "lead ion",
			smiles:  "[Pb+2]",
			present: []Pattern{PatternHeavyMetal},
			absent:  []Pattern{PatternOrganometallic},
		},
		{
			name:   "ethanol matches nothing",
			smiles: "CCO",
			absent: []Pattern{
				PatternNitro, PatternPeroxide, PatternAlkylHalide, PatternAmine,
				PatternCarboxylicAcid, PatternVicinalDiol, PatternAlkene,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := DetectPatterns(mustParse(t, tt.smiles))
			for _, p := range tt.present {
				assert.True(t, found[p], "expected %s in %s", p, tt.smiles)
			}
			for _, p := range tt.absent {
				assert.False(t, found[p], "did not expect %s in %s", p, tt.smiles)
			}
		})
	}
}

//Personal.AI order the ending

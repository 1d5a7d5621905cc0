package identity

import (
	"github.com/turtacn/ChemSDS/internal/chem"
	"github.com/turtacn/ChemSDS/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemSDS/pkg/errors"
)

// Resolver turns raw SMILES strings into MoleculeIdentity values.  It holds
// no per-request state and is safe for concurrent use.
type Resolver struct {
	logger logging.Logger
}

// NewResolver constructs a Resolver.  A nil logger falls back to the no-op
// logger.
func NewResolver(logger logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Resolver{logger: logger}
}

// Resolve parses, canonicalises, and derives formula and weight for the
// given input.  Parsing failure is immediate and terminal for the request:
// no retries, since parsing is pure and local.
func (r *Resolver) Resolve(rawSMILES string) (*MoleculeIdentity, error) {
	mol, err := chem.ParseSMILES(rawSMILES)
	if err != nil {
		r.logger.Debug("SMILES rejected", logging.String("smiles", rawSMILES), logging.Err(err))
		return nil, err
	}

	canonical := chem.CanonicalSMILES(mol)
	if canonical == "" {
		return nil, errors.New(errors.ErrCodeIdentityCanonicalize, "canonicalization produced empty output").
			WithDetail(rawSMILES)
	}

	formula := chem.HillFormula(mol)
	if formula == "" {
		return nil, errors.New(errors.ErrCodeIdentityFormulaFailed, "formula derivation failed").
			WithDetail(canonical)
	}

	id := &MoleculeIdentity{
		InputSMILES:     rawSMILES,
		CanonicalSMILES: canonical,
		StructureKey:    chem.StructureKey(canonical),
		Formula:         formula,
		MolecularWeight: round2(chem.MolecularWeight(mol)),
		Name:            canonical,
		molecule:        mol,
	}

	r.logger.Debug("molecule resolved",
		logging.String("canonical", canonical),
		logging.String("formula", formula),
		logging.Float64("weight", id.MolecularWeight))

	return id, nil
}

// DisplayName picks the best human-facing name: common name first, then the
// first synonym, then the IUPAC name, then the canonical SMILES.
func DisplayName(common, iupac string, synonyms []string, canonical string) string {
	switch {
	case common != "" && common != canonical:
		return common
	case len(synonyms) > 0 && synonyms[0] != "":
		return synonyms[0]
	case iupac != "":
		return iupac
	default:
		return canonical
	}
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

//Personal.AI order the ending

// Package identity resolves raw SMILES input into an immutable molecular
// identity: canonical form, formula, weight, and display name.  Resolution is
// pure and deterministic — one input maps to exactly one canonical form, so
// the same request can never resolve differently between calls.
package identity

import (
	"github.com/turtacn/ChemSDS/internal/chem"
)

// MoleculeIdentity is the immutable value produced by the Resolver.  It is
// created once per request and never mutated afterward; every downstream
// component receives it by value or as a read-only pointer.
type MoleculeIdentity struct {
	// InputSMILES is the raw, trimmed input that resolved successfully.
	InputSMILES string

	// CanonicalSMILES is the deterministic canonical re-emission of the
	// parsed structure.  Equivalent inputs share this string.
	CanonicalSMILES string

	// StructureKey is the stable hash-derived identifier used for caching
	// and generation history.
	StructureKey string

	// Formula is the Hill-order molecular formula.
	Formula string

	// MolecularWeight is the standard-atomic-weight sum in g/mol, rounded
	// to two decimals.
	MolecularWeight float64

	// Name is the best available display name, chosen by DisplayName
	// priority.  Defaults to the canonical SMILES when no name is known.
	Name string

	// Synonyms holds alternative names, best first.  May be empty.
	Synonyms []string

	// molecule retains the parsed graph so downstream computed sources do
	// not re-parse.  Never exposed mutably.
	molecule *chem.Molecule
}

// Molecule returns the parsed molecular graph backing this identity.
func (id *MoleculeIdentity) Molecule() *chem.Molecule {
	return id.molecule
}

// WithNames returns a copy enriched with an external preferred name and
// synonym list.  The zero-value rules stand: empty name falls back to the
// existing one, and the synonym slice is copied so callers cannot alias it.
func (id *MoleculeIdentity) WithNames(name string, synonyms []string) *MoleculeIdentity {
	enriched := *id
	if name != "" {
		enriched.Name = name
	}
	if len(synonyms) > 0 {
		enriched.Synonyms = append([]string(nil), synonyms...)
	}
	return &enriched
}

//Personal.AI order the ending

package chem

import (
	"strings"
	"unicode"

	"github.com/turtacn/ChemSDS/pkg/errors"
)

// aromaticSymbols maps lowercase aromatic SMILES atoms to element symbols.
var aromaticSymbols = map[byte]string{
	'b': "B", 'c': "C", 'n': "N", 'o': "O", 'p': "P", 's': "S",
}

// parseState tracks parser position and pending graph edges.
type parseState struct {
	mol *Molecule

	// prev is the atom a new atom bonds to, -1 after a dot or at start.
	prev int

	// pendingOrder is the explicit bond symbol seen since the last atom,
	// 0 when none.
	pendingOrder BondOrder

	// pendingAromatic is set by an explicit ':' bond.
	pendingAromatic bool

	// openRings maps ring-closure numbers to the atom that opened them and
	// the bond order given at the opening site.
	openRings map[int]ringOpen

	// branchStack stores prev indices at '(' so ')' can restore them.
	branchStack []int
}

type ringOpen struct {
	atom     int
	order    BondOrder
	aromatic bool
}

func invalidSMILES(detail string) *errors.AppError {
	return errors.New(errors.ErrCodeInputInvalidSMILES, "Invalid SMILES format").WithDetail(detail)
}

// ParseSMILES parses a SMILES string into a molecular graph.  It accepts the
// organic subset, bracket atoms with isotope/charge/hydrogen counts, ring
// closures (including %nn), branches, aromatic lowercase atoms, and dot
// disconnections.  Stereo markers (@, /, \) are accepted and ignored.
func ParseSMILES(smiles string) (*Molecule, error) {
	s := strings.TrimSpace(smiles)
	if s == "" {
		return nil, errors.New(errors.ErrCodeInputEmptySMILES, "SMILES string is required")
	}

	st := &parseState{
		mol:       &Molecule{},
		prev:      -1,
		openRings: map[int]ringOpen{},
	}

	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == '(':
			if st.prev < 0 {
				return nil, invalidSMILES("branch before any atom")
			}
			st.branchStack = append(st.branchStack, st.prev)
			i++

		case c == ')':
			if len(st.branchStack) == 0 {
				return nil, invalidSMILES("unmatched closing parenthesis")
			}
			st.prev = st.branchStack[len(st.branchStack)-1]
			st.branchStack = st.branchStack[:len(st.branchStack)-1]
			i++

		case c == '-' || c == '=' || c == '#' || c == ':' || c == '/' || c == '\\':
			if st.prev < 0 {
				return nil, invalidSMILES("bond symbol before any atom")
			}
			switch c {
			case '=':
				st.pendingOrder = BondDouble
			case '#':
				st.pendingOrder = BondTriple
			case ':':
				st.pendingOrder = BondSingle
				st.pendingAromatic = true
			default:
				// '-' and the cis/trans markers carry single-bond connectivity.
				st.pendingOrder = BondSingle
			}
			i++

		case c == '.':
			if st.pendingOrder != 0 {
				return nil, invalidSMILES("bond symbol before dot")
			}
			st.prev = -1
			i++

		case c >= '0' && c <= '9':
			if err := st.ringBond(int(c - '0')); err != nil {
				return nil, err
			}
			i++

		case c == '%':
			if i+2 >= len(s) || !isDigit(s[i+1]) || !isDigit(s[i+2]) {
				return nil, invalidSMILES("two digits must follow %")
			}
			n := int(s[i+1]-'0')*10 + int(s[i+2]-'0')
			if err := st.ringBond(n); err != nil {
				return nil, err
			}
			i += 3

		case c == '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return nil, invalidSMILES("unterminated bracket atom")
			}
			atom, err := parseBracketAtom(s[i+1 : i+end])
			if err != nil {
				return nil, err
			}
			st.addAtom(atom)
			i += end + 1

		case aromaticSymbols[c] != "" :
			st.addAtom(Atom{Symbol: aromaticSymbols[c], Aromatic: true, ExplicitH: -1})
			i++

		case unicode.IsUpper(rune(c)):
			sym := string(c)
			if i+1 < len(s) && s[i+1] >= 'a' && s[i+1] <= 'z' {
				two := sym + string(s[i+1])
				// Only accept a two-letter symbol when it is a real organic
				// subset element; otherwise "Cn" must parse as C + aromatic n.
				if organicSubset[two] {
					sym = two
					i++
				}
			}
			if !organicSubset[sym] {
				return nil, invalidSMILES("element " + sym + " requires brackets")
			}
			st.addAtom(Atom{Symbol: sym, ExplicitH: -1})
			i++

		default:
			return nil, invalidSMILES("unexpected character " + string(c))
		}
	}

	if len(st.branchStack) != 0 {
		return nil, invalidSMILES("unclosed branch")
	}
	if len(st.openRings) != 0 {
		return nil, invalidSMILES("unclosed ring bond")
	}
	if st.pendingOrder != 0 {
		return nil, invalidSMILES("dangling bond symbol")
	}
	if len(st.mol.Atoms) == 0 {
		return nil, invalidSMILES("no atoms")
	}

	st.mol.perceiveRings()
	return st.mol, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// addAtom appends an atom and bonds it to the previous one.
func (st *parseState) addAtom(a Atom) {
	idx := len(st.mol.Atoms)
	st.mol.Atoms = append(st.mol.Atoms, a)
	st.mol.adjacency = append(st.mol.adjacency, nil)

	if st.prev >= 0 {
		order := st.pendingOrder
		aromatic := st.pendingAromatic
		if order == 0 {
			order = BondSingle
			if st.mol.Atoms[st.prev].Aromatic && a.Aromatic {
				aromatic = true
			}
		}
		st.addBond(st.prev, idx, order, aromatic)
	}
	st.prev = idx
	st.pendingOrder = 0
	st.pendingAromatic = false
}

func (st *parseState) addBond(a, b int, order BondOrder, aromatic bool) {
	bi := len(st.mol.Bonds)
	st.mol.Bonds = append(st.mol.Bonds, Bond{A: a, B: b, Order: order, Aromatic: aromatic})
	st.mol.adjacency[a] = append(st.mol.adjacency[a], bi)
	st.mol.adjacency[b] = append(st.mol.adjacency[b], bi)
}

// ringBond opens or closes ring-closure number n at the current atom.
func (st *parseState) ringBond(n int) error {
	if st.prev < 0 {
		return invalidSMILES("ring closure before any atom")
	}
	if open, ok := st.openRings[n]; ok {
		if open.atom == st.prev {
			return invalidSMILES("ring bond to the same atom")
		}
		order := st.pendingOrder
		aromatic := st.pendingAromatic || open.aromatic
		if order == 0 {
			order = open.order
		}
		if order == 0 {
			order = BondSingle
			if st.mol.Atoms[open.atom].Aromatic && st.mol.Atoms[st.prev].Aromatic {
				aromatic = true
			}
		}
		st.addBond(open.atom, st.prev, order, aromatic)
		delete(st.openRings, n)
	} else {
		st.openRings[n] = ringOpen{
			atom:     st.prev,
			order:    st.pendingOrder,
			aromatic: st.pendingAromatic,
		}
	}
	st.pendingOrder = 0
	st.pendingAromatic = false
	return nil
}

// parseBracketAtom parses the content between [ and ]:
// isotope? symbol chirality? hcount? charge? class?
func parseBracketAtom(body string) (Atom, error) {
	if body == "" {
		return Atom{}, invalidSMILES("empty bracket atom")
	}
	a := Atom{ExplicitH: 0}
	i := 0

	// Isotope.
	for i < len(body) && isDigit(body[i]) {
		a.Isotope = a.Isotope*10 + int(body[i]-'0')
		i++
	}
	if i >= len(body) {
		return Atom{}, invalidSMILES("bracket atom without element")
	}

	// Element symbol: aromatic lowercase or capitalised one/two letters.
	if sym, ok := aromaticSymbols[body[i]]; ok {
		a.Symbol = sym
		a.Aromatic = true
		i++
	} else if unicode.IsUpper(rune(body[i])) {
		sym := string(body[i])
		i++
		if i < len(body) && body[i] >= 'a' && body[i] <= 'z' {
			if IsKnownElement(sym + string(body[i])) {
				sym += string(body[i])
				i++
			}
		}
		a.Symbol = sym
	} else {
		return Atom{}, invalidSMILES("bad element in bracket atom")
	}
	if !IsKnownElement(a.Symbol) {
		return Atom{}, invalidSMILES("unknown element " + a.Symbol)
	}

	// Chirality markers are connectivity-neutral.
	for i < len(body) && body[i] == '@' {
		i++
	}

	// Explicit hydrogen count.
	if i < len(body) && body[i] == 'H' {
		i++
		if i < len(body) && isDigit(body[i]) {
			a.ExplicitH = 0
			for i < len(body) && isDigit(body[i]) {
				a.ExplicitH = a.ExplicitH*10 + int(body[i]-'0')
				i++
			}
		} else {
			a.ExplicitH = 1
		}
	}

	// Charge: +, -, ++, --, +2, -3.
	for i < len(body) && (body[i] == '+' || body[i] == '-') {
		sign := 1
		if body[i] == '-' {
			sign = -1
		}
		i++
		if i < len(body) && isDigit(body[i]) {
			n := 0
			for i < len(body) && isDigit(body[i]) {
				n = n*10 + int(body[i]-'0')
				i++
			}
			a.Charge += sign * n
		} else {
			a.Charge += sign
		}
	}

	// Atom class.
	if i < len(body) && body[i] == ':' {
		i++
		if i >= len(body) || !isDigit(body[i]) {
			return Atom{}, invalidSMILES("bad atom class")
		}
		for i < len(body) && isDigit(body[i]) {
			i++
		}
	}

	if i != len(body) {
		return Atom{}, invalidSMILES("trailing characters in bracket atom")
	}
	return a, nil
}

//Personal.AI order the ending

// Package constraint implements an incremental simplex solver for linear
// equality and inequality constraints with priorities, in the style of the
// Cassowary algorithm.
//
// Required constraints must all hold; soft constraints are satisfied as
// closely as possible by minimizing the sum of strength-weighted errors.
// Strengths are weights, not strict levels: enough violations of a weak
// constraint can outweigh one violation of a stronger one. StrengthFromPriority
// spreads layout priorities over bands far enough apart that this takes
// hundreds of violations.
package constraint

import (
	"fmt"
	"math"
	"sort"
)

// Operator relates an expression to zero.
type Operator int

const (
	LE Operator = iota // expression <= 0
	GE                 // expression >= 0
	EQ                 // expression == 0
)

func (o Operator) String() string {
	switch o {
	case LE:
		return "<="
	case GE:
		return ">="
	default:
		return "=="
	}
}

// Strength weights a constraint. Strengths at or above Required are hard.
type Strength float64

// Standard strengths.
const (
	Weak     Strength = 1
	Medium   Strength = 1e3
	Strong   Strength = 1e6
	Required Strength = 1001001000
)

// StrengthFromPriority maps a layout priority in (0, 1000] to a strength.
// 1000 is required. Priorities from 750 fall in the Strong band, from 250 in
// the Medium band and below that in the Weak band; within a band strength
// grows linearly with priority.
func StrengthFromPriority(p float64) Strength {
	switch {
	case p >= 1000:
		return Required
	case p >= 750:
		return Strong * Strength(p/750)
	case p >= 250:
		return Medium * Strength(p/250)
	case p > 0:
		return Weak * Strength(p/50)
	default:
		return Weak * Strength(1.0/50)
	}
}

// Variable is an unknown the solver assigns a value to.
type Variable struct {
	Name  string
	value float64
}

// NewVariable creates a named variable.
func NewVariable(name string) *Variable {
	return &Variable{Name: name}
}

// Value returns the value from the last Solve.
func (v *Variable) Value() float64 { return v.value }

func (v *Variable) String() string { return v.Name }

// Term is coefficient * variable.
type Term struct {
	Variable    *Variable
	Coefficient float64
}

// Expression is a linear combination of terms plus a constant.
type Expression struct {
	Terms    []Term
	Constant float64
}

// Expr builds an expression from a constant and terms.
func Expr(constant float64, terms ...Term) Expression {
	return Expression{Terms: terms, Constant: constant}
}

// T is shorthand for a Term.
func T(coefficient float64, v *Variable) Term {
	return Term{Variable: v, Coefficient: coefficient}
}

// Constraint is expression OP 0 at a strength.
type Constraint struct {
	Expression Expression
	Op         Operator
	Strength   Strength
	Label      string
}

func (c *Constraint) String() string {
	s := fmt.Sprintf("%g", c.Expression.Constant)
	for _, t := range c.Expression.Terms {
		s += fmt.Sprintf(" + %g*%s", t.Coefficient, t.Variable.Name)
	}
	return fmt.Sprintf("%s %s 0 (%g)", s, c.Op, float64(c.Strength))
}

// ErrUnsatisfiable is returned when a required constraint conflicts with the
// required constraints already added.
type ErrUnsatisfiable struct {
	Constraint *Constraint
}

func (e *ErrUnsatisfiable) Error() string {
	if e.Constraint.Label != "" {
		return "unsatisfiable required constraint: " + e.Constraint.Label
	}
	return "unsatisfiable required constraint: " + e.Constraint.String()
}

type symbolKind int

const (
	symInvalid symbolKind = iota
	symExternal
	symSlack
	symError
	symDummy
)

type symbol struct {
	id   uint64
	kind symbolKind
}

func (s symbol) valid() bool { return s.kind != symInvalid }

type tag struct {
	marker symbol
	other  symbol
}

const nearZeroEps = 1e-8

func nearZero(v float64) bool { return math.Abs(v) < nearZeroEps }

// row is constant + sum(coefficient * symbol).
type row struct {
	constant float64
	cells    map[symbol]float64
}

func newRow(constant float64) *row {
	return &row{constant: constant, cells: make(map[symbol]float64)}
}

func (r *row) copy() *row {
	c := newRow(r.constant)
	for s, v := range r.cells {
		c.cells[s] = v
	}
	return c
}

func (r *row) insertSymbol(s symbol, coefficient float64) {
	v := r.cells[s] + coefficient
	if nearZero(v) {
		delete(r.cells, s)
	} else {
		r.cells[s] = v
	}
}

func (r *row) insertRow(other *row, coefficient float64) {
	r.constant += other.constant * coefficient
	for s, v := range other.cells {
		r.insertSymbol(s, v*coefficient)
	}
}

func (r *row) remove(s symbol) {
	delete(r.cells, s)
}

func (r *row) reverseSign() {
	r.constant = -r.constant
	for s, v := range r.cells {
		r.cells[s] = -v
	}
}

// solveFor rearranges the row so that s is its subject (s = row).
func (r *row) solveFor(s symbol) {
	coefficient := -1 / r.cells[s]
	delete(r.cells, s)
	r.constant *= coefficient
	for k, v := range r.cells {
		r.cells[k] = v * coefficient
	}
}

func (r *row) solveForEx(lhs, rhs symbol) {
	r.insertSymbol(lhs, -1)
	r.solveFor(rhs)
}

func (r *row) coefficientFor(s symbol) float64 {
	return r.cells[s]
}

func (r *row) substitute(s symbol, other *row) {
	if v, ok := r.cells[s]; ok {
		delete(r.cells, s)
		r.insertRow(other, v)
	}
}

// sortedSymbols returns the row's symbols in creation order so pivoting is
// deterministic.
func (r *row) sortedSymbols() []symbol {
	syms := make([]symbol, 0, len(r.cells))
	for s := range r.cells {
		syms = append(syms, s)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i].id < syms[j].id })
	return syms
}

// Solver holds a set of constraints and computes variable values.
// A Solver is not safe for concurrent use.
type Solver struct {
	nextID     uint64
	cns        map[*Constraint]tag
	rows       map[symbol]*row
	vars       map[*Variable]symbol
	varOrder   []*Variable
	objective  *row
	artificial *row
}

// NewSolver creates an empty solver.
func NewSolver() *Solver {
	return &Solver{
		cns:       make(map[*Constraint]tag),
		rows:      make(map[symbol]*row),
		vars:      make(map[*Variable]symbol),
		objective: newRow(0),
	}
}

func (s *Solver) newSymbol(kind symbolKind) symbol {
	s.nextID++
	return symbol{id: s.nextID, kind: kind}
}

// Add inserts a constraint. A required constraint that conflicts with the
// required constraints already present returns *ErrUnsatisfiable; the solver
// should be discarded after such a failure.
func (s *Solver) Add(c *Constraint) error {
	if _, ok := s.cns[c]; ok {
		return fmt.Errorf("duplicate constraint: %s", c)
	}

	var t tag
	r := s.createRow(c, &t)
	subject := chooseSubject(r, t)

	if !subject.valid() && allDummies(r) {
		if !nearZero(r.constant) {
			s.rollback(t)
			return &ErrUnsatisfiable{Constraint: c}
		}
		subject = t.marker
	}

	if !subject.valid() {
		if !s.addWithArtificialVariable(r) {
			s.rollback(t)
			return &ErrUnsatisfiable{Constraint: c}
		}
	} else {
		r.solveFor(subject)
		s.substitute(subject, r)
		s.rows[subject] = r
	}

	s.cns[c] = t
	return s.optimize(s.objective)
}

// rollback removes the error symbols a rejected constraint left in the
// objective. Rows are untouched because rejection happens before insertion.
func (s *Solver) rollback(t tag) {
	if t.marker.kind == symError {
		s.objective.remove(t.marker)
	}
	if t.other.kind == symError {
		s.objective.remove(t.other)
	}
}

// Solve writes the current solution into every variable.
func (s *Solver) Solve() {
	for _, v := range s.varOrder {
		sym := s.vars[v]
		if r, ok := s.rows[sym]; ok {
			v.value = r.constant
		} else {
			v.value = 0
		}
	}
}

func (s *Solver) varSymbol(v *Variable) symbol {
	if sym, ok := s.vars[v]; ok {
		return sym
	}
	sym := s.newSymbol(symExternal)
	s.vars[v] = sym
	s.varOrder = append(s.varOrder, v)
	return sym
}

func (s *Solver) createRow(c *Constraint, t *tag) *row {
	expr := c.Expression
	r := newRow(expr.Constant)

	for _, term := range expr.Terms {
		if nearZero(term.Coefficient) {
			continue
		}
		sym := s.varSymbol(term.Variable)
		if basic, ok := s.rows[sym]; ok {
			r.insertRow(basic, term.Coefficient)
		} else {
			r.insertSymbol(sym, term.Coefficient)
		}
	}

	switch c.Op {
	case LE, GE:
		coefficient := 1.0
		if c.Op == GE {
			coefficient = -1
		}
		slack := s.newSymbol(symSlack)
		t.marker = slack
		r.insertSymbol(slack, coefficient)
		if c.Strength < Required {
			errSym := s.newSymbol(symError)
			t.other = errSym
			r.insertSymbol(errSym, -coefficient)
			s.objective.insertSymbol(errSym, float64(c.Strength))
		}
	case EQ:
		if c.Strength < Required {
			errPlus := s.newSymbol(symError)
			errMinus := s.newSymbol(symError)
			t.marker = errPlus
			t.other = errMinus
			r.insertSymbol(errPlus, -1)
			r.insertSymbol(errMinus, 1)
			s.objective.insertSymbol(errPlus, float64(c.Strength))
			s.objective.insertSymbol(errMinus, float64(c.Strength))
		} else {
			dummy := s.newSymbol(symDummy)
			t.marker = dummy
			r.insertSymbol(dummy, 1)
		}
	}

	if r.constant < 0 {
		r.reverseSign()
	}
	return r
}

func chooseSubject(r *row, t tag) symbol {
	for _, sym := range r.sortedSymbols() {
		if sym.kind == symExternal {
			return sym
		}
	}
	if t.marker.kind == symSlack || t.marker.kind == symError {
		if r.coefficientFor(t.marker) < 0 {
			return t.marker
		}
	}
	if t.other.kind == symSlack || t.other.kind == symError {
		if r.coefficientFor(t.other) < 0 {
			return t.other
		}
	}
	return symbol{}
}

func allDummies(r *row) bool {
	for sym := range r.cells {
		if sym.kind != symDummy {
			return false
		}
	}
	return true
}

func (s *Solver) addWithArtificialVariable(r *row) bool {
	art := s.newSymbol(symSlack)
	s.rows[art] = r.copy()
	s.artificial = r.copy()

	if err := s.optimize(s.artificial); err != nil {
		s.artificial = nil
		return false
	}
	success := nearZero(s.artificial.constant)
	s.artificial = nil

	if basic, ok := s.rows[art]; ok {
		delete(s.rows, art)
		if len(basic.cells) == 0 {
			return success
		}
		entering := anyPivotableSymbol(basic)
		if !entering.valid() {
			return false
		}
		basic.solveForEx(art, entering)
		s.substitute(entering, basic)
		s.rows[entering] = basic
	}

	for _, basic := range s.rows {
		basic.remove(art)
	}
	s.objective.remove(art)
	return success
}

func anyPivotableSymbol(r *row) symbol {
	for _, sym := range r.sortedSymbols() {
		if sym.kind == symSlack || sym.kind == symError {
			return sym
		}
	}
	return symbol{}
}

func (s *Solver) substitute(sym symbol, r *row) {
	for _, basic := range s.rows {
		basic.substitute(sym, r)
	}
	s.objective.substitute(sym, r)
	if s.artificial != nil {
		s.artificial.substitute(sym, r)
	}
}

func (s *Solver) optimize(objective *row) error {
	for {
		entering := enteringSymbol(objective)
		if !entering.valid() {
			return nil
		}
		leaving, ok := s.leavingRow(entering)
		if !ok {
			return fmt.Errorf("objective function is unbounded")
		}
		r := s.rows[leaving]
		delete(s.rows, leaving)
		r.solveForEx(leaving, entering)
		s.substitute(entering, r)
		s.rows[entering] = r
	}
}

func enteringSymbol(objective *row) symbol {
	for _, sym := range objective.sortedSymbols() {
		if sym.kind != symDummy && objective.cells[sym] < 0 {
			return sym
		}
	}
	return symbol{}
}

func (s *Solver) leavingRow(entering symbol) (symbol, bool) {
	ratio := math.MaxFloat64
	var found symbol
	keys := make([]symbol, 0, len(s.rows))
	for key := range s.rows {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].id < keys[j].id })
	for _, key := range keys {
		if key.kind == symExternal {
			continue
		}
		r := s.rows[key]
		coefficient := r.coefficientFor(entering)
		if coefficient < 0 {
			temp := -r.constant / coefficient
			if temp < ratio {
				ratio = temp
				found = key
			}
		}
	}
	return found, found.valid()
}

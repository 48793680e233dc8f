package term

// Expr is an arithmetic/logic expression tree leaf or binary node, as
// consumed by the two visitors in package eval (spec §4.3). Expression
// trees are kept separate from the general Term algebra because their
// leaves are restricted to numbers and variables — an expression is never
// itself a unification target.
type Expr interface {
	String() string
	isExpr()
}

// NumberLeaf is a literal numeric leaf of an expression tree.
type NumberLeaf struct {
	Value float64
}

func (NumberLeaf) isExpr() {}
func (n NumberLeaf) String() string { return (&Number{Value: n.Value}).String() }

// VarLeaf is a variable leaf; package eval resolves it through the current
// substitution before evaluating the node that contains it.
type VarLeaf struct {
	Name string
}

func (VarLeaf) isExpr()        {}
func (v VarLeaf) String() string { return v.Name }

// BinaryExpr is an operator node shared by both visitors. Arithmetic
// operators are "+", "-", "*", "/"; logic (comparison) operators are "==",
// "=/", "=<", "<", ">=", ">".
type BinaryExpr struct {
	Op    string
	Left  Expr
	Right Expr
}

func (BinaryExpr) isExpr() {}
func (b BinaryExpr) String() string {
	return b.Left.String() + " " + b.Op + " " + b.Right.String()
}

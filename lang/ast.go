package lang

// Expr is an expression node. The set of implementations is closed; every
// consumer switches over all of them.
//
// Nodes are immutable once built by the [Parser].
type Expr interface{ expr() }

// Stmt is a statement node. The set of implementations is closed.
type Stmt interface{ stmt() }

type (
	// Literal is a constant value taken from a literal token or keyword.
	Literal struct {
		Value Value
	}

	// Grouping is a parenthesized expression.
	Grouping struct {
		Expr Expr
	}

	// Unary applies a prefix operator (! or -) to its operand.
	Unary struct {
		Op    Token
		Right Expr
	}

	// Binary applies an infix operator to two operands.
	Binary struct {
		Left  Expr
		Op    Token
		Right Expr
	}

	// Variable reads the binding named by Name.
	Variable struct {
		Name Token
	}

	// Assign stores the result of Value into the existing binding Name.
	Assign struct {
		Name  Token
		Value Expr
	}
)

func (*Literal) expr()  {}
func (*Grouping) expr() {}
func (*Unary) expr()    {}
func (*Binary) expr()   {}
func (*Variable) expr() {}
func (*Assign) expr()   {}

type (
	// ExpressionStmt evaluates Expr and discards the result.
	ExpressionStmt struct {
		Expr Expr
	}

	// PrintStmt evaluates Expr and writes its printed form.
	PrintStmt struct {
		Expr Expr
	}

	// VarStmt declares Name in the current scope. Init is nil when the
	// declaration has no initializer.
	VarStmt struct {
		Name Token
		Init Expr
	}

	// BlockStmt executes Stmts in a new nested scope.
	BlockStmt struct {
		Stmts []Stmt
	}
)

func (*ExpressionStmt) stmt() {}
func (*PrintStmt) stmt()      {}
func (*VarStmt) stmt()        {}
func (*BlockStmt) stmt()      {}

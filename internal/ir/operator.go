package ir

import "sort"

// Associativity decides how operators of equal precedence group.
type Associativity int

const (
	// AssocLeft groups a-b-c as (a-b)-c.
	AssocLeft Associativity = iota
	// AssocRight groups a^b^c as a^(b^c).
	AssocRight
)

// OperatorInfo describes an operator for the shunting-yard parser.
type OperatorInfo struct {
	Symbol     string
	Precedence int
	Assoc      Associativity
	// Postfix is true for unary postfix operators (factorial).
	Postfix bool
	// Prefix is true for the implicit unary minus.
	Prefix bool
}

var operators = map[string]OperatorInfo{
	"+": {Symbol: "+", Precedence: 2, Assoc: AssocLeft},
	"-": {Symbol: "-", Precedence: 2, Assoc: AssocLeft},
	"*": {Symbol: "*", Precedence: 3, Assoc: AssocLeft},
	"/": {Symbol: "/", Precedence: 3, Assoc: AssocLeft},
	"^": {Symbol: "^", Precedence: 4, Assoc: AssocRight},
	"!": {Symbol: "!", Precedence: 5, Assoc: AssocLeft, Postfix: true},
}

// unaryMinus binds like multiplication, below "^". It never pops the stack
// when pushed because it has no left operand of its own.
var unaryMinus = OperatorInfo{Symbol: "-", Precedence: 3, Assoc: AssocRight, Prefix: true}

// LookupOperator returns the precedence table entry for symbol.
func LookupOperator(symbol string) (OperatorInfo, bool) {
	info, ok := operators[symbol]
	return info, ok
}

// OperatorFor returns the table entry for an operator token, honoring the
// token's Prefix flag.
func OperatorFor(t Token) (OperatorInfo, bool) {
	if t.Prefix && t.Text == "-" {
		return unaryMinus, true
	}
	return LookupOperator(t.Text)
}

// YieldsTo reports whether an operator already on the stack (top) must be
// emitted before op is pushed.
func (op OperatorInfo) YieldsTo(top OperatorInfo) bool {
	if op.Prefix {
		return false
	}
	if op.Assoc == AssocLeft {
		return op.Precedence <= top.Precedence
	}
	return op.Precedence < top.Precedence
}

var functionNames = map[string]bool{
	"sin":  true,
	"cos":  true,
	"tan":  true,
	"asin": true,
	"acos": true,
	"atan": true,
	"sqrt": true,
	"log":  true,
	"ln":   true,
	"inv":  true,
}

// IsFunction reports whether name (already lower-cased) is a known function.
func IsFunction(name string) bool {
	return functionNames[name]
}

// FunctionNames returns the known function names in sorted order.
func FunctionNames() []string {
	names := make([]string, 0, len(functionNames))
	for name := range functionNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

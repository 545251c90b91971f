package kestrel

// Filter expression command codes. Server contract; do not renumber.
const (
	expCmdEq        = 1
	expCmdNe        = 2
	expCmdGt        = 3
	expCmdGe        = 4
	expCmdLt        = 5
	expCmdLe        = 6
	expCmdRegex     = 7
	expCmdGeoWithin = 8
	expCmdAnd       = 16
	expCmdOr        = 17
	expCmdNot       = 18
	expCmdExclusive = 19
	expCmdBin       = 81

	expCmdLiteral = -1
)

// ExpType is a bin's expected value type in an expression.
type ExpType int

const (
	ExpTypeInt    ExpType = 1
	ExpTypeString ExpType = 2
	ExpTypeList   ExpType = 3
	ExpTypeMap    ExpType = 4
	ExpTypeBlob   ExpType = 5
	ExpTypeFloat  ExpType = 6
	ExpTypeBool   ExpType = 7
	ExpTypeGeo    ExpType = 8
)

// Expression is one node of a filter expression tree. Leaves carry a literal
// Value; interior nodes carry a command code and child nodes. The tree
// serializes through the same wire format as CDT commands: each interior node
// is an array of the command code followed by its packed children.
type Expression struct {
	cmd  int
	val  Value
	args []*Expression
}

func newLiteral(v Value) *Expression {
	return &Expression{cmd: expCmdLiteral, val: v}
}

func newCmd(cmd int, args ...*Expression) *Expression {
	return &Expression{cmd: cmd, args: args}
}

// ExpIntVal is an integer literal.
func ExpIntVal(v int64) *Expression { return newLiteral(IntegerValue(v)) }

// ExpStringVal is a string literal.
func ExpStringVal(v string) *Expression { return newLiteral(StringValue(v)) }

// ExpFloatVal is a float literal.
func ExpFloatVal(v float64) *Expression { return newLiteral(DoubleValue(v)) }

// ExpBoolVal is a boolean literal.
func ExpBoolVal(v bool) *Expression { return newLiteral(BoolValue(v)) }

// ExpBytesVal is a blob literal.
func ExpBytesVal(v []byte) *Expression { return newLiteral(BytesValue(v)) }

// ExpGeoVal is a geo-JSON literal.
func ExpGeoVal(v string) *Expression { return newLiteral(GeoJSONValue(v)) }

// ExpNilVal is the null literal.
func ExpNilVal() *Expression { return newLiteral(NullValue{}) }

// ExpWildCard matches any value. Valid only inside expression trees.
func ExpWildCard() *Expression { return newLiteral(WildCardValue{}) }

// ExpInfinity is the unbounded end of a range comparison. Valid only inside
// expression trees.
func ExpInfinity() *Expression { return newLiteral(InfinityValue{}) }

// ExpBin references a record bin of the given type.
func ExpBin(name string, t ExpType) *Expression {
	return newCmd(expCmdBin, newLiteral(IntegerValue(t)), newLiteral(StringValue(name)))
}

func ExpIntBin(name string) *Expression    { return ExpBin(name, ExpTypeInt) }
func ExpStringBin(name string) *Expression { return ExpBin(name, ExpTypeString) }
func ExpFloatBin(name string) *Expression  { return ExpBin(name, ExpTypeFloat) }
func ExpBoolBin(name string) *Expression   { return ExpBin(name, ExpTypeBool) }
func ExpBlobBin(name string) *Expression   { return ExpBin(name, ExpTypeBlob) }
func ExpGeoBin(name string) *Expression    { return ExpBin(name, ExpTypeGeo) }

// ExpEq compares two subexpressions for equality.
func ExpEq(l, r *Expression) *Expression { return newCmd(expCmdEq, l, r) }

// ExpNotEq compares two subexpressions for inequality.
func ExpNotEq(l, r *Expression) *Expression { return newCmd(expCmdNe, l, r) }

func ExpGt(l, r *Expression) *Expression { return newCmd(expCmdGt, l, r) }
func ExpGe(l, r *Expression) *Expression { return newCmd(expCmdGe, l, r) }
func ExpLt(l, r *Expression) *Expression { return newCmd(expCmdLt, l, r) }
func ExpLe(l, r *Expression) *Expression { return newCmd(expCmdLe, l, r) }

// ExpRegex matches a string subexpression against a regular expression with
// server-defined match flags.
func ExpRegex(flags int, pattern string, bin *Expression) *Expression {
	return newCmd(expCmdRegex, newLiteral(IntegerValue(flags)), newLiteral(StringValue(pattern)), bin)
}

// ExpGeoWithin tests whether a geo bin lies within a geo-JSON region.
func ExpGeoWithin(region string, bin *Expression) *Expression {
	return newCmd(expCmdGeoWithin, newLiteral(GeoJSONValue(region)), bin)
}

// ExpAnd is true when all subexpressions are true.
func ExpAnd(exps ...*Expression) *Expression { return newCmd(expCmdAnd, exps...) }

// ExpOr is true when any subexpression is true.
func ExpOr(exps ...*Expression) *Expression { return newCmd(expCmdOr, exps...) }

// ExpNot negates a subexpression.
func ExpNot(e *Expression) *Expression { return newCmd(expCmdNot, e) }

// ExpExclusive is true when exactly one subexpression is true.
func ExpExclusive(exps ...*Expression) *Expression { return newCmd(expCmdExclusive, exps...) }

func (e *Expression) pack(pk *Packer) error {
	if e.cmd == expCmdLiteral {
		return e.val.Pack(pk)
	}
	pk.PackArrayBegin(len(e.args) + 1)
	pk.PackInt64(int64(e.cmd))
	for _, arg := range e.args {
		if err := arg.pack(pk); err != nil {
			return err
		}
	}
	return nil
}

// Build serializes the expression tree into a command payload.
func (e *Expression) Build() ([]byte, error) {
	pk := NewPacker()
	if err := e.pack(pk); err != nil {
		return nil, err
	}
	return pk.Bytes(), nil
}

// Package ast defines the parsed syntax tree for a filter source file: a
// sequence of top-level statements, each either a variable definition or a
// block (Rule, Group, ConditionGroup, Modifier, or Default).
package ast

// Position tracks location information for error reporting and tooling.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

// Node is implemented by every syntax tree element.
type Node interface {
	NodePos() Position
	NodeEndPos() Position
	String() string
}

// File is the root of a parsed source file: an ordered list of top-level
// statements. Order matters - rule evaluation is purely sequential.
type File struct {
	Pos        Position
	EndPos     Position
	Statements []Statement
}

func (f *File) NodePos() Position    { return f.Pos }
func (f *File) NodeEndPos() Position { return f.EndPos }
func (f *File) String() string       { return "File" }

// Statement is a top-level or block-level element: a variable definition,
// a condition/action line, or a nested block.
type Statement interface {
	Node
	statementNode()
}

// VarDef binds a name to a reusable condition or action body, later
// expanded at every $Name reference site (spec.md's variable substitution
// is an external collaborator; this node only records the binding).
type VarDef struct {
	Pos, EndPos Position
	Name        string
	Body        []Statement
}

func (v *VarDef) NodePos() Position    { return v.Pos }
func (v *VarDef) NodeEndPos() Position { return v.EndPos }
func (v *VarDef) String() string       { return "$" + v.Name + " = ..." }
func (*VarDef) statementNode()         {}

// VarRef is a reference to a previously bound $Name, standing in for its
// body until the substitution pass expands it in place.
type VarRef struct {
	Pos, EndPos Position
	Name        string
}

func (v *VarRef) NodePos() Position    { return v.Pos }
func (v *VarRef) NodeEndPos() Position { return v.EndPos }
func (v *VarRef) String() string       { return "$" + v.Name }
func (*VarRef) statementNode()         {}

// BlockKind discriminates the five block shapes a filter source can nest.
type BlockKind int

const (
	KindRule BlockKind = iota
	KindGroup
	KindConditionGroup
	KindModifier
	KindDefault
)

func (k BlockKind) String() string {
	switch k {
	case KindRule:
		return "Rule"
	case KindGroup:
		return "Group"
	case KindConditionGroup:
		return "ConditionGroup"
	case KindModifier:
		return "Modifier"
	case KindDefault:
		return "Default"
	default:
		return "UnknownBlock"
	}
}

// Block is one {}-delimited nested scope: Rule (Show/Hide plus conditions
// and actions), Group/ConditionGroup (shared conditions for nested
// blocks), Modifier (conditions and actions folded into each rule produced
// before it in the enclosing block), or Default (a fallback rule emitted in
// place, which suppresses the enclosing block's own default rule).
type Block struct {
	Pos, EndPos Position
	Kind        BlockKind
	// Show is meaningful only for KindRule: true for "Show", false for "Hide".
	Show       bool
	TagNames   []string
	Conditions []*ConditionLine
	Actions    []*ActionLine
	Children   []Statement
}

func (b *Block) NodePos() Position    { return b.Pos }
func (b *Block) NodeEndPos() Position { return b.EndPos }
func (b *Block) String() string       { return b.Kind.String() }
func (*Block) statementNode()         {}

// ConditionLine is one attribute condition inside a block, e.g.
// `ItemLevel >= 10` or `Class "Currency" "Gem"`.
type ConditionLine struct {
	Pos, EndPos Position
	Attribute   string
	// Operator is one of "", "==", ">=", "<=" for Interval/Bool lines; the
	// empty string is used by NameList and SocketGroup lines, whose
	// arguments are a variadic list instead.
	Operator string
	Args     []string
	TagNames []string
}

func (c *ConditionLine) NodePos() Position    { return c.Pos }
func (c *ConditionLine) NodeEndPos() Position { return c.EndPos }
func (c *ConditionLine) String() string       { return c.Attribute }

// ActionLine is one styling directive inside a block, e.g.
// `SetFontSize 32` or `PlayAlertSound "1" 300`.
type ActionLine struct {
	Pos, EndPos Position
	Name        string
	Args        []string
	TagNames    []string
}

func (a *ActionLine) NodePos() Position    { return a.Pos }
func (a *ActionLine) NodeEndPos() Position { return a.EndPos }
func (a *ActionLine) String() string       { return a.Name }

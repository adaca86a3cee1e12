package grammar

import "github.com/alecthomas/participle/v2/lexer"

// Program is the root of a parsed source file: an ordered sequence of
// variable definitions and blocks.
type Program struct {
	Pos        lexer.Position
	EndPos     lexer.Position
	Statements []*Statement `@@*`
}

type Statement struct {
	Pos    lexer.Position
	EndPos lexer.Position
	VarDef *VarDef `  @@`
	Block  *Block  `| @@`
}

// VarDef binds "$Name" to a reusable block body.
type VarDef struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   string `"$" @Ident "="`
	Body   *Block `@@`
}

// Block is one {}-delimited Show/Hide/Group/ConditionGroup/Modifier/Default
// scope, carrying zero or more tag keywords and a body of lines.
type Block struct {
	Pos     lexer.Position
	EndPos  lexer.Position
	Keyword string   `@("Show" | "Hide" | "Group" | "ConditionGroup" | "Modifier" | "Default")`
	Tags    []string `{ @("Override" | "Final" | "NoDefault" | "Required") }`
	Open    string   `"{"`
	Lines   []*Line  `@@*`
	Close   string   `"}"`
}

// Line is one entry inside a block body: a reference to a previously
// bound variable, a nested block, or a condition/action directive. The
// grammar can't tell a condition line from an action line apart (both are
// just a name followed by arguments); that distinction is resolved
// against the attribute registry when building the AST.
type Line struct {
	Pos       lexer.Position
	EndPos    lexer.Position
	VarRef    *VarRef    `  @@`
	Nested    *Block     `| @@`
	Directive *Directive `| @@`
}

type VarRef struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   string `"$" @Ident`
}

// Directive is a bare "Name [op] args... [tags...]" line.
type Directive struct {
	Pos      lexer.Position
	EndPos   lexer.Position
	Name     string   `@Ident`
	Operator *string  `[ @(">=" | "<=" | "==") ]`
	Args     []*Arg   `{ @@ }`
	Tags     []string `{ @("Override" | "Final" | "NoDefault" | "Required") }`
}

// Arg is one directive argument: a numeric range, a bare number, a
// quoted string, a hex colour, a socket token ("2R"), or a bare word
// (true/false or a Rarity name).
type Arg struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Range  *RangeArg `  @@`
	Str    *string   `| @String`
	Color  *string   `| @HexColor`
	Socket *string   `| @SocketToken`
	Num    *string   `| @Integer`
	Ident  *string   `| @("true" | "false" | "Normal" | "Magic" | "Rare" | "Unique")`
}

type RangeArg struct {
	Pos    lexer.Position
	EndPos lexer.Position
	From   string `@Integer ".."`
	To     string `@Integer`
}

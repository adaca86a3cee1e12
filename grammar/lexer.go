package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// FilterLexer tokenizes item-filter source: condition/action lines inside
// Show/Hide/Group/ConditionGroup/Modifier/Default blocks, and $Name variable
// definitions and references.
var FilterLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"DocComment", `///[^\n]*`, nil},
		{"Comment", `//[^\n]*`, nil},

		{"HexColor", `#[0-9a-fA-F]{6}([0-9a-fA-F]{2})?`, nil},
		{"String", `"(\\"|[^"])*"`, nil},

		{"SocketToken", `[0-9]+[RGBWrgbw]`, nil},
		// Tag keywords get their own token type so a directive's trailing
		// tags are not swallowed by its greedy bare-identifier argument list.
		{"TagKeyword", `\b(Override|Final|NoDefault|Required)\b`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Integer", `-?[0-9]+`, nil},

		{"Operator", `(>=|<=|==|\.\.)`, nil},
		{"Punctuation", `[{}$=]`, nil},

		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})

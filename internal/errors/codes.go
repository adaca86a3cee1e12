package errors

// Error codes for the filter compiler.
//
// Error code ranges:
// E0001-E0099: Parser / grammar errors
// E0100-E0199: Attribute and value validation errors
// E0200-E0299: Tag and block-structure errors
// E0300-E0399: Variable substitution errors
// E0900-E0999: Internal errors (should never surface to a user)

const (
	// E0001: Unknown token or unparseable construct
	ErrorSyntax = "E0001"

	// E0002: Unknown block keyword (not Rule/Group/ConditionGroup/Modifier/Default)
	ErrorUnknownBlock = "E0002"

	// E0003: A ConditionGroup, Modifier, or Default block appears at the
	// top level of a file, where only Rule and Group are valid.
	ErrorInvalidTopLevelBlock = "E0003"

	// E0100: Reference to an attribute name not in the registry
	ErrorUnknownAttribute = "E0100"

	// E0101: A condition argument's kind doesn't match the attribute's registered Kind
	ErrorAttributeKindMismatch = "E0101"

	// E0102: A numeric literal falls outside the attribute's domain limits
	ErrorValueOutOfRange = "E0102"

	// E0103: A colour literal is malformed
	ErrorInvalidColor = "E0103"

	// E0104: A socket group requests more linked sockets than the domain allows
	ErrorSocketLimitExceeded = "E0104"

	// E0200: An unrecognised tag keyword (not Override/Final/NoDefault/Required)
	ErrorUnknownTag = "E0200"

	// E0201: A tag was used on a block shape that doesn't accept it
	ErrorTagNotAllowedHere = "E0201"

	// E0300: Reference to a $Name never defined
	ErrorUndefinedVariable = "E0300"

	// E0301: A $Name is defined more than once in the same scope
	ErrorDuplicateVariable = "E0301"

	// E0900: An invariant the compiler itself is responsible for was violated
	ErrorInternal = "E0900"

	// Warning codes

	// W0001: A rule can never match anything (proven useless by the algebra)
	WarningUselessRule = "W0001"

	// W0002: A block carries a tag that has no effect given its contents
	WarningRedundantTag = "W0002"
)

// GetErrorDescription returns a human-readable description of the error code.
func GetErrorDescription(code string) string {
	switch code {
	case ErrorSyntax:
		return "Source could not be parsed"
	case ErrorUnknownBlock:
		return "Block keyword is not one of Rule, Group, ConditionGroup, Modifier, Default"
	case ErrorInvalidTopLevelBlock:
		return "Only Rule and Group blocks are valid at the top level of a file"
	case ErrorUnknownAttribute:
		return "Attribute name is not registered"
	case ErrorAttributeKindMismatch:
		return "Condition arguments don't match the attribute's kind"
	case ErrorValueOutOfRange:
		return "Numeric value falls outside the attribute's domain range"
	case ErrorInvalidColor:
		return "Colour literal is malformed"
	case ErrorSocketLimitExceeded:
		return "Socket group requires more linked sockets than the domain allows"
	case ErrorUnknownTag:
		return "Tag keyword is not recognised"
	case ErrorTagNotAllowedHere:
		return "Tag is not valid on this kind of block"
	case ErrorUndefinedVariable:
		return "Variable reference has no matching definition"
	case ErrorDuplicateVariable:
		return "Variable is defined more than once in the same scope"
	case ErrorInternal:
		return "Internal compiler invariant violated"
	case WarningUselessRule:
		return "Rule can never match any item"
	case WarningRedundantTag:
		return "Tag has no effect given the block's contents"
	default:
		return "Unknown error code"
	}
}

// IsWarning returns true if the error code represents a warning rather than an error.
func IsWarning(code string) bool {
	return len(code) > 0 && code[0] == 'W'
}

// GetErrorCategory returns the category of the error based on its code.
func GetErrorCategory(code string) string {
	switch {
	case code >= "E0001" && code < "E0100":
		return "Parser"
	case code >= "E0100" && code < "E0200":
		return "Attribute"
	case code >= "E0200" && code < "E0300":
		return "Tag"
	case code >= "E0300" && code < "E0400":
		return "Variable"
	case code >= "E0900" && code < "E1000":
		return "Internal"
	case len(code) > 0 && code[0] == 'W':
		return "Warning"
	default:
		return "Unknown"
	}
}

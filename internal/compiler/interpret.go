package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"ifppc/internal/ast"
	"ifppc/internal/atoms"
	"ifppc/internal/attrs"
	"ifppc/internal/errors"
)

// interpretCondition resolves a parsed condition line against the
// attribute registry and produces the matching typed Condition.
func interpretCondition(line *ast.ConditionLine) (atoms.Condition, []errors.CompilerError) {
	kind, ok := attrs.Kind(line.Attribute)
	if !ok {
		return nil, []errors.CompilerError{errors.UnknownAttribute(line.Attribute, line.Pos, nil)}
	}

	switch kind {
	case atoms.KindInterval:
		return interpretInterval(line)
	case atoms.KindBool:
		return interpretBool(line)
	case atoms.KindNameList:
		return atoms.NewNameList(line.Attribute, line.Args, 0), nil
	case atoms.KindSocketGroup:
		return interpretSocketGroup(line)
	default:
		return nil, []errors.CompilerError{errors.Internal("interpretCondition", fmt.Sprintf("unhandled kind %v", kind), line.Pos)}
	}
}

func interpretInterval(line *ast.ConditionLine) (atoms.Condition, []errors.CompilerError) {
	limits, _ := attrs.IntervalLimits(line.Attribute)
	from, to := atoms.MinBound, atoms.MaxBound

	switch line.Operator {
	case ">=":
		n, err := parseBound(line.Attribute, line.Args[0])
		if err != nil {
			return nil, []errors.CompilerError{errors.Internal("interpretInterval", err.Error(), line.Pos)}
		}
		from = n
	case "<=":
		n, err := parseBound(line.Attribute, line.Args[0])
		if err != nil {
			return nil, []errors.CompilerError{errors.Internal("interpretInterval", err.Error(), line.Pos)}
		}
		to = n
	case "==", "":
		if len(line.Args) == 2 {
			f, err1 := parseBound(line.Attribute, line.Args[0])
			t, err2 := parseBound(line.Attribute, line.Args[1])
			if err1 != nil || err2 != nil {
				return nil, []errors.CompilerError{errors.Internal("interpretInterval", "malformed range", line.Pos)}
			}
			from, to = f, t
		} else if len(line.Args) == 1 {
			n, err := parseBound(line.Attribute, line.Args[0])
			if err != nil {
				return nil, []errors.CompilerError{errors.Internal("interpretInterval", err.Error(), line.Pos)}
			}
			from, to = n, n
		}
	}

	var errs []errors.CompilerError
	if from != atoms.MinBound && (from < limits.Min || from > limits.Max) {
		errs = append(errs, errors.ValueOutOfRange(line.Attribute, from, limits.Min, limits.Max, line.Pos))
	}
	if to != atoms.MaxBound && (to < limits.Min || to > limits.Max) {
		errs = append(errs, errors.ValueOutOfRange(line.Attribute, to, limits.Min, limits.Max, line.Pos))
	}
	return atoms.NewInterval(line.Attribute, from, to, 0), errs
}

func interpretBool(line *ast.ConditionLine) (atoms.Condition, []errors.CompilerError) {
	if len(line.Args) != 1 {
		return nil, []errors.CompilerError{errors.AttributeKindMismatch(line.Attribute, "Bool", "wrong arity", line.Pos)}
	}
	v := line.Args[0] == "true"
	return atoms.NewBool(line.Attribute, v, 0), nil
}

func interpretSocketGroup(line *ast.ConditionLine) (atoms.Condition, []errors.CompilerError) {
	var r, g, b, w int
	for _, tok := range line.Args {
		if len(tok) < 2 {
			continue
		}
		n, err := parseInt(tok[:len(tok)-1])
		if err != nil {
			return nil, []errors.CompilerError{errors.Internal("interpretSocketGroup", err.Error(), line.Pos)}
		}
		switch tok[len(tok)-1] {
		case 'R':
			r = n
		case 'G':
			g = n
		case 'B':
			b = n
		case 'W':
			w = n
		}
	}
	sg := atoms.NewSocketGroup(line.Attribute, r, g, b, w, 0)
	var errs []errors.CompilerError
	if !sg.Viable() {
		errs = append(errs, errors.SocketLimitExceeded(sg.Total(), atoms.MaxSockets, line.Pos))
	}
	return sg, errs
}

// interpretAction resolves a parsed action line into a typed Action.
func interpretAction(line *ast.ActionLine) (atoms.Action, []errors.CompilerError) {
	switch {
	case line.Name == "Hidden":
		if len(line.Args) != 1 {
			return nil, []errors.CompilerError{errors.Internal("interpretAction", "Hidden expects one boolean argument", line.Pos)}
		}
		return atoms.NewBoolAction(line.Name, line.Args[0] == "true", 0), nil

	case len(line.Args) == 1 && strings.HasPrefix(line.Args[0], "#"):
		c, err := atoms.ParseColor(line.Args[0])
		if err != nil {
			return nil, []errors.CompilerError{errors.InvalidColor(line.Args[0], line.Pos, err)}
		}
		return atoms.NewColorAction(line.Name, c, 0), nil

	case len(line.Args) == 1:
		if n, err := parseInt(line.Args[0]); err == nil {
			return atoms.NewNumberAction(line.Name, n, 0), nil
		}
		if line.Args[0] == "true" || line.Args[0] == "false" {
			return atoms.NewBoolAction(line.Name, line.Args[0] == "true", 0), nil
		}
		return atoms.NewFileAction(line.Name, line.Args[0], 0), nil

	case len(line.Args) == 2:
		if n, err := parseInt(line.Args[1]); err == nil {
			return atoms.NewSoundAction(line.Name, line.Args[0], n, 0), nil
		}
		return atoms.NewEffectAction(line.Name, line.Args[0], line.Args[1], 0), nil

	case len(line.Args) == 3:
		n, err := parseInt(line.Args[0])
		if err != nil {
			return nil, []errors.CompilerError{errors.Internal("interpretAction", err.Error(), line.Pos)}
		}
		return atoms.NewMapIconAction(line.Name, n, line.Args[1], line.Args[2], 0), nil

	default:
		return nil, []errors.CompilerError{errors.Internal("interpretAction", fmt.Sprintf("unsupported arity %d for %s", len(line.Args), line.Name), line.Pos)}
	}
}

// parseBound parses one interval bound: a decimal literal, or for the
// Rarity attribute one of the enum names the native format itself uses.
func parseBound(attr, s string) (int, error) {
	if attr == "Rarity" {
		if level, ok := attrs.RarityLevel(s); ok {
			return level, nil
		}
	}
	return parseInt(s)
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return n, nil
}

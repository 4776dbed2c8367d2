package capshape

import (
	"fmt"
	"regexp/syntax"
)

// FromRegexpSyntax converts an already-parsed regexp/syntax tree into a
// pattern tree. Concrete pattern parsing stays with the standard library;
// this adapter only maps structure.
//
// Assertions (anchors, word boundaries), non-greedy quantifiers and
// case-folded literals have no counterpart here and yield an error
// wrapping ErrPattern.
func FromRegexpSyntax(re *syntax.Regexp) (Node, error) {
	switch re.Op {
	case syntax.OpLiteral:
		if re.Flags&syntax.FoldCase != 0 {
			return nil, fmt.Errorf("%w: case-folded literal %q unsupported", ErrPattern, string(re.Rune))
		}
		return &Literal{Text: string(re.Rune)}, nil

	case syntax.OpEmptyMatch:
		return &Literal{}, nil

	case syntax.OpCharClass:
		if len(re.Rune)%2 != 0 {
			return nil, fmt.Errorf("%w: odd char class rune list", ErrPattern)
		}
		ranges := make([]RuneRange, 0, len(re.Rune)/2)
		for i := 0; i < len(re.Rune); i += 2 {
			ranges = append(ranges, RuneRange{Lo: re.Rune[i], Hi: re.Rune[i+1]})
		}
		return &CharClass{Ranges: ranges}, nil

	case syntax.OpAnyChar:
		return &AnyChar{}, nil

	case syntax.OpAnyCharNotNL:
		return &CharClass{Ranges: []RuneRange{{Lo: '\n', Hi: '\n'}}, Negated: true}, nil

	case syntax.OpCapture:
		sub, err := FromRegexpSyntax(re.Sub[0])
		if err != nil {
			return nil, err
		}
		return &Capture{Name: re.Name, Sub: sub}, nil

	case syntax.OpConcat:
		subs, err := fromSubs(re.Sub)
		if err != nil {
			return nil, err
		}
		return &Concat{Subs: subs}, nil

	case syntax.OpAlternate:
		subs, err := fromSubs(re.Sub)
		if err != nil {
			return nil, err
		}
		return &Alternate{Subs: subs}, nil

	case syntax.OpStar, syntax.OpPlus, syntax.OpQuest, syntax.OpRepeat:
		if re.Flags&syntax.NonGreedy != 0 {
			return nil, fmt.Errorf("%w: non-greedy quantifier unsupported", ErrPattern)
		}
		sub, err := FromRegexpSyntax(re.Sub[0])
		if err != nil {
			return nil, err
		}
		q := &Quantifier{Sub: sub}
		switch re.Op {
		case syntax.OpStar:
			q.Min, q.Max = 0, -1
		case syntax.OpPlus:
			q.Min, q.Max = 1, -1
		case syntax.OpQuest:
			q.Min, q.Max = 0, 1
		default:
			q.Min, q.Max = re.Min, re.Max
		}
		return q, nil

	default:
		return nil, fmt.Errorf("%w: unsupported op %v", ErrPattern, re.Op)
	}
}

func fromSubs(subs []*syntax.Regexp) ([]Node, error) {
	out := make([]Node, len(subs))
	for i, sub := range subs {
		n, err := FromRegexpSyntax(sub)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// CompileRegexp parses a regular expression with regexp/syntax (Perl
// flavor), adapts it and compiles it. The parse tree is used as-is:
// Simplify can rewrite counted repeats and disturb capture numbering.
func CompileRegexp(pattern string) (*Compiled, error) {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pattern: %w", err)
	}
	root, err := FromRegexpSyntax(re)
	if err != nil {
		return nil, err
	}
	return Compile(root)
}

package parser

import (
	"errors"
	"fmt"
	"strings"

	"csboot/internal/model"
)

var (
	// ErrMultipleTypeParameters rejects containers declared with more than one
	// type argument, such as Dictionary<int,string>.
	ErrMultipleTypeParameters = errors.New("multiple type parameters are not supported")
	// ErrUnbalancedBrackets rejects type tokens whose angle brackets do not pair up.
	ErrUnbalancedBrackets = errors.New("unbalanced angle brackets")
	// ErrEmptyTypeArgument rejects containers with nothing between the brackets.
	ErrEmptyTypeArgument = errors.New("empty type argument")
)

// ParseError reports a type token the classifier refused to model.
type ParseError struct {
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("type %q: %v", e.Token, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Classify maps a raw type token to a Type. It never fails: tokens that
// ParseType rejects are returned verbatim as a UserDefinedType.
func Classify(token string) model.Type {
	t, err := ParseType(token)
	if err != nil {
		return model.UserDefinedType{Name: token}
	}
	return t
}

// ParseType classifies a type token as a collection, a basic type or a
// user-defined type. A collection is recognized only when the whole token is
// a known container name followed by a bracketed argument list ending the
// token; its single argument is classified recursively.
func ParseType(token string) (model.Type, error) {
	if open := strings.IndexByte(token, '<'); open > 0 && strings.HasSuffix(token, ">") {
		if kind, ok := model.LookupCollection(token[:open]); ok {
			return parseCollection(kind, token, token[open+1:len(token)-1])
		}
	}
	if kind, ok := model.LookupBasic(token); ok {
		return model.Basic(kind), nil
	}
	return model.UserDefinedType{Name: token}, nil
}

func parseCollection(kind model.CollectionKind, token, inner string) (model.Type, error) {
	args, err := splitTypeArguments(inner)
	if err != nil {
		return nil, &ParseError{Token: token, Err: err}
	}
	if len(args) > 1 {
		return nil, &ParseError{Token: token, Err: ErrMultipleTypeParameters}
	}

	arg := args[0]
	nullable := strings.HasSuffix(arg, "?")
	arg = strings.TrimSuffix(arg, "?")
	if arg == "" {
		return nil, &ParseError{Token: token, Err: ErrEmptyTypeArgument}
	}

	innerType, err := ParseType(arg)
	if err != nil {
		return nil, err
	}
	return model.CollectionType{
		Collection:    kind,
		Inner:         innerType,
		InnerNullable: nullable,
	}, nil
}

// splitTypeArguments splits the text between a container's brackets on
// top-level commas.
func splitTypeArguments(s string) ([]string, error) {
	var args []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			depth--
			if depth < 0 {
				return nil, ErrUnbalancedBrackets
			}
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, ErrUnbalancedBrackets
	}
	return append(args, strings.TrimSpace(s[start:])), nil
}

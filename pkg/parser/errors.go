package parser

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/yaklabco/mdxor/pkg/mdast"
)

// Sentinel errors returned by Parse.
var (
	// ErrInputEncoding indicates the input is not valid UTF-8.
	ErrInputEncoding = errors.New("input is not valid UTF-8")

	// ErrInvariant indicates the parser produced an inconsistent tree.
	// It always signals a parser defect, never a problem with the input.
	ErrInvariant = errors.New("internal invariant violation")
)

// EncodingError reports where invalid UTF-8 was found.
type EncodingError struct {
	// Offset is the byte offset of the first invalid sequence.
	Offset int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("invalid UTF-8 at byte %d", e.Offset)
}

// Unwrap lets errors.Is match ErrInputEncoding.
func (e *EncodingError) Unwrap() error {
	return ErrInputEncoding
}

// InvariantError describes a span inconsistency in a parsed tree.
type InvariantError struct {
	// Kind is the kind of the offending node.
	Kind mdast.NodeKind

	// Span is the offending node's span.
	Span mdast.SourceRange

	// Detail describes the violated property.
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s [%d,%d): %s", e.Kind, e.Span.StartOffset, e.Span.EndOffset, e.Detail)
}

// Unwrap lets errors.Is match ErrInvariant.
func (e *InvariantError) Unwrap() error {
	return ErrInvariant
}

// checkEncoding returns an *EncodingError for the first invalid UTF-8 sequence.
func checkEncoding(content []byte) error {
	if utf8.Valid(content) {
		return nil
	}

	for offset := 0; offset < len(content); {
		r, size := utf8.DecodeRune(content[offset:])
		if r == utf8.RuneError && size <= 1 {
			return &EncodingError{Offset: offset}
		}
		offset += size
	}

	return &EncodingError{Offset: len(content)}
}

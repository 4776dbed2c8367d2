// Package capgen generates typed Go match structs from regular
// expression patterns, driven by the capture shape algebra in
// pkg/capshape.
package capgen

import (
	"fmt"
	"regexp/syntax"

	"github.com/regexkit/capshape/internal/codegen"
	"github.com/regexkit/capshape/pkg/capshape"
)

// Options configures struct generation.
type Options struct {
	// Pattern is the regular expression to compile (Perl flavor).
	Pattern string

	// Name is the prefix for generated identifiers (e.g. "User" generates
	// UserMatch and UserFromResult).
	Name string

	// OutputFile is the path where generated code will be written.
	OutputFile string

	// Package is the Go package name for the generated code.
	Package string

	// Verbose enables generation logging to stderr.
	Verbose bool
}

// Validate checks if the options are valid.
func (o Options) Validate() error {
	if o.Pattern == "" {
		return fmt.Errorf("pattern cannot be empty")
	}
	if o.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if o.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	if o.Package == "" {
		return fmt.Errorf("package cannot be empty")
	}
	return nil
}

// Compile parses the pattern, infers its capture shape and generates the
// typed match struct and decoder. It returns an error if the pattern is
// invalid or generation fails.
func Compile(opts Options) error {
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	logger := codegen.NewLogger(opts.Verbose)

	// Parse with the standard library; the tree is adapted as-is since
	// Simplify can rewrite counted repeats and disturb group numbering.
	regexAST, err := syntax.Parse(opts.Pattern, syntax.Perl)
	if err != nil {
		return fmt.Errorf("failed to parse pattern: %w", err)
	}

	root, err := capshape.FromRegexpSyntax(regexAST)
	if err != nil {
		return fmt.Errorf("failed to adapt pattern: %w", err)
	}

	compiled, err := capshape.Compile(root)
	if err != nil {
		return fmt.Errorf("failed to compile pattern: %w", err)
	}
	logger.Log("pattern %q: shape %s, %d groups", opts.Pattern, compiled.Shape(), compiled.NumGroups())

	g := codegen.New(codegen.Config{
		Pattern:    opts.Pattern,
		Name:       opts.Name,
		Package:    opts.Package,
		OutputFile: opts.OutputFile,
		Compiled:   compiled,
		Logger:     logger,
	})
	if err := g.Generate(); err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}
	return nil
}

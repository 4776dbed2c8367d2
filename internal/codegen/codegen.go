package codegen

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/regexkit/capshape/pkg/capshape"
)

const capshapePkg = "github.com/regexkit/capshape/pkg/capshape"

// Config configures the generation of a typed match struct.
type Config struct {
	// Pattern is the source pattern, reproduced in the file header.
	Pattern string

	// Name is the prefix for generated identifiers (e.g. "User" generates
	// UserMatch and UserFromResult).
	Name string

	// Package is the Go package name for the generated code.
	Package string

	// OutputFile is the path the generated code is written to.
	OutputFile string

	// Compiled is the compiled pattern driving field names and types.
	Compiled *capshape.Compiled

	// Logger receives verbose generation output; may be nil.
	Logger *Logger
}

// Generator emits a typed match struct and decoder for a compiled
// pattern. Field types follow the group's flattened shape: a plain group
// becomes a string, an optional group a *string, a repeated group a
// []string, nesting accordingly.
type Generator struct {
	config Config
	file   *jen.File
}

// New creates a generator for the given config.
func New(config Config) *Generator {
	return &Generator{config: config}
}

// Generate renders the file and writes it to the configured output path.
func (g *Generator) Generate() error {
	f, err := g.Build()
	if err != nil {
		return err
	}
	if g.config.OutputFile == "" {
		return fmt.Errorf("codegen: output file not set")
	}
	if err := f.Save(g.config.OutputFile); err != nil {
		return fmt.Errorf("failed to write %s: %w", g.config.OutputFile, err)
	}
	g.config.Logger.Log("wrote %s", g.config.OutputFile)
	return nil
}

// Build assembles the generated file without writing it out.
func (g *Generator) Build() (*jen.File, error) {
	c := g.config.Compiled
	switch {
	case c == nil:
		return nil, fmt.Errorf("codegen: nil compiled pattern")
	case g.config.Name == "":
		return nil, fmt.Errorf("codegen: name not set")
	case g.config.Package == "":
		return nil, fmt.Errorf("codegen: package not set")
	}

	g.file = jen.NewFile(g.config.Package)
	g.file.HeaderComment("Code generated by capgen. DO NOT EDIT.")
	g.file.Comment(fmt.Sprintf("Pattern: %s", g.config.Pattern))
	g.file.Comment(fmt.Sprintf("Shape:   %s", c.Shape()))
	g.file.Line()

	g.genStruct()
	g.genDecoder()
	return g.file, nil
}

func (g *Generator) genStruct() {
	c := g.config.Compiled
	structName := g.config.Name + "Match"

	fields := []jen.Code{
		jen.Id("Match").String().Comment("Full match"),
	}
	for k := 1; k <= c.NumGroups(); k++ {
		wrappers := c.GroupWrappers(k)
		field := FieldName(c.GroupName(k), k)
		g.config.Logger.Log("group %d -> field %s (%d wrapper levels)", k, field, len(wrappers))
		fields = append(fields, jen.Id(field).Add(goType(wrappers)))
	}

	g.file.Comment(fmt.Sprintf("%s holds one match of the pattern with typed capture fields.", structName))
	g.file.Type().Id(structName).Struct(fields...)
	g.file.Line()
}

func (g *Generator) genDecoder() {
	c := g.config.Compiled
	structName := g.config.Name + "Match"
	funcName := g.config.Name + "FromResult"

	body := []jen.Code{
		jen.Id("m").Op(":=").Op("&").Id(structName).Values(jen.Dict{
			jen.Id("Match"): jen.Id("r").Dot("Text").Call(),
		}),
	}
	for k := 1; k <= c.NumGroups(); k++ {
		id := fmt.Sprintf("g%d", k)
		vName := id + "v"
		okName := id + "ok"
		target := jen.Id("m").Dot(FieldName(c.GroupName(k), k))
		decode := g.decode(c.GroupWrappers(k), jen.Id(vName), target, id, 0)
		body = append(body, jen.If(
			jen.List(jen.Id(vName), jen.Id(okName)).Op(":=").Id("r").Dot("Group").Call(jen.Lit(k)),
			jen.Id(okName),
		).Block(decode...))
	}
	body = append(body, jen.Return(jen.Id("m")))

	g.file.Comment(fmt.Sprintf("%s converts a capture result into a %s.", funcName, structName))
	g.file.Func().Id(funcName).
		Params(jen.Id("r").Op("*").Qual(capshapePkg, "Result")).
		Op("*").Id(structName).
		Block(body...)
	g.file.Line()
}

// decode emits statements assigning the value reachable from src to
// target, peeling one Repeated/Opt wrapper level per recursion step.
func (g *Generator) decode(wrappers []capshape.Wrapper, src, target *jen.Statement, id string, depth int) []jen.Code {
	if len(wrappers) == 0 {
		lv := fmt.Sprintf("%slv%d", id, depth)
		ok := fmt.Sprintf("%slok%d", id, depth)
		return []jen.Code{
			jen.If(
				jen.List(jen.Id(lv), jen.Id(ok)).Op(":=").Add(src.Clone()).Assert(jen.Op("*").Qual(capshapePkg, "LeafValue")),
				jen.Id(ok).Op("&&").Id(lv).Dot("Present"),
			).Block(
				target.Clone().Op("=").Id("r").Dot("TextOf").Call(jen.Id(lv).Dot("Span")),
			),
		}
	}

	switch wrappers[0] {
	case capshape.WrapOpt:
		ov := fmt.Sprintf("%sov%d", id, depth)
		ok := fmt.Sprintf("%sook%d", id, depth)
		inner := fmt.Sprintf("%sopt%d", id, depth)
		body := []jen.Code{jen.Var().Id(inner).Add(goType(wrappers[1:]))}
		body = append(body, g.decode(wrappers[1:], jen.Id(ov).Dot("Of"), jen.Id(inner), id, depth+1)...)
		body = append(body, target.Clone().Op("=").Op("&").Id(inner))
		return []jen.Code{
			jen.If(
				jen.List(jen.Id(ov), jen.Id(ok)).Op(":=").Add(src.Clone()).Assert(jen.Op("*").Qual(capshapePkg, "OptValue")),
				jen.Id(ok).Op("&&").Id(ov).Dot("Of").Op("!=").Nil(),
			).Block(body...),
		}

	default: // WrapRepeated
		rv := fmt.Sprintf("%srv%d", id, depth)
		ok := fmt.Sprintf("%srok%d", id, depth)
		out := fmt.Sprintf("%sout%d", id, depth)
		item := fmt.Sprintf("%sit%d", id, depth)
		elem := fmt.Sprintf("%sel%d", id, depth)
		loop := []jen.Code{jen.Var().Id(elem).Add(goType(wrappers[1:]))}
		loop = append(loop, g.decode(wrappers[1:], jen.Id(item), jen.Id(elem), id, depth+1)...)
		loop = append(loop, jen.Id(out).Op("=").Append(jen.Id(out), jen.Id(elem)))
		return []jen.Code{
			jen.If(
				jen.List(jen.Id(rv), jen.Id(ok)).Op(":=").Add(src.Clone()).Assert(jen.Op("*").Qual(capshapePkg, "RepeatedValue")),
				jen.Id(ok),
			).Block(
				jen.Id(out).Op(":=").Make(goType(wrappers), jen.Lit(0), jen.Len(jen.Id(rv).Dot("Items"))),
				jen.For(jen.List(jen.Id("_"), jen.Id(item)).Op(":=").Range().Id(rv).Dot("Items")).Block(loop...),
				target.Clone().Op("=").Id(out),
			),
		}
	}
}

// goType builds the Go type for a group's flattened value: string at the
// leaf, a slice per Repeated level, a pointer per Opt level.
func goType(wrappers []capshape.Wrapper) *jen.Statement {
	t := jen.String()
	for i := len(wrappers) - 1; i >= 0; i-- {
		if wrappers[i] == capshape.WrapRepeated {
			t = jen.Index().Add(t)
		} else {
			t = jen.Op("*").Add(t)
		}
	}
	return t
}

// Command capshape inspects the capture shape of a pattern, runs the
// reference matcher, and generates typed match structs.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/regexkit/capshape/pkg/capgen"
	"github.com/regexkit/capshape/pkg/capshape"
)

func main() {
	cmd := &cli.Command{
		Name:  "capshape",
		Usage: "Typed capture shapes for regular expression patterns",
		Commands: []*cli.Command{
			{
				Name:      "inspect",
				Usage:     "Print the capture shape and group numbering of a pattern",
				ArgsUsage: "<pattern>",
				Action:    inspectAction,
			},
			{
				Name:      "match",
				Usage:     "Match a pattern against input and print the capture values",
				ArgsUsage: "<pattern> <input>",
				Action:    matchAction,
			},
			{
				Name:  "generate",
				Usage: "Generate a typed Go match struct for a pattern",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "pattern", Aliases: []string{"p"}, Usage: "Regular expression to compile"},
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Prefix for generated identifiers"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output file path"},
					&cli.StringFlag{Name: "package", Usage: "Package name for the generated code", Value: "main"},
					&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "Log generation decisions"},
				},
				Action: generateAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func inspectAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: capshape inspect <pattern>")
	}
	pattern := cmd.Args().First()
	c, err := capshape.CompileRegexp(pattern)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n", header("pattern:"), pattern)
	fmt.Printf("%s %s\n", header("shape:"), c.Shape())
	fmt.Println(header("groups:"))
	fmt.Printf("  %d  (whole match)\n", 0)
	for k := 1; k <= c.NumGroups(); k++ {
		name := c.GroupName(k)
		if name == "" {
			name = "-"
		}
		fmt.Printf("  %d  name=%s%s\n", k, name, wrapperSuffix(c.GroupWrappers(k)))
	}
	return nil
}

func matchAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 2 {
		return fmt.Errorf("usage: capshape match <pattern> <input>")
	}
	pattern, input := cmd.Args().Get(0), cmd.Args().Get(1)
	c, err := capshape.CompileRegexp(pattern)
	if err != nil {
		return err
	}
	r, err := c.FindString(input)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("no match")
	}

	fmt.Printf("%s %q at %s\n", header("match:"), r.Text(), r.Span())
	fmt.Printf("%s %s\n", header("value:"), r.Value())
	fmt.Println(header("groups:"))
	for k := 0; k <= r.NumGroups(); k++ {
		v, _ := r.Group(k)
		fmt.Printf("  %d  %s\n", k, renderGroup(r, v))
	}
	return nil
}

func generateAction(ctx context.Context, cmd *cli.Command) error {
	return capgen.Compile(capgen.Options{
		Pattern:    cmd.String("pattern"),
		Name:       cmd.String("name"),
		OutputFile: cmd.String("output"),
		Package:    cmd.String("package"),
		Verbose:    cmd.Bool("verbose"),
	})
}

// renderGroup shows a flat group value with the matched text when it is a
// plain leaf.
func renderGroup(r *capshape.Result, v capshape.Value) string {
	if lv, ok := v.(*capshape.LeafValue); ok {
		if !lv.Present {
			return "absent"
		}
		return fmt.Sprintf("%q %s", r.TextOf(lv.Span), lv.Span)
	}
	return v.String()
}

func wrapperSuffix(wrappers []capshape.Wrapper) string {
	s := ""
	for _, w := range wrappers {
		if w == capshape.WrapRepeated {
			s += " repeated"
		} else {
			s += " optional"
		}
	}
	return s
}

// header colors section labels when stdout is a terminal and NO_COLOR is
// unset.
func header(s string) string {
	if os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(os.Stdout.Fd())) {
		return s
	}
	return "\033[36m" + s + "\033[0m"
}

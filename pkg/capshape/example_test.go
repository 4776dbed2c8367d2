package capshape_test

import (
	"fmt"

	"github.com/regexkit/capshape/pkg/capshape"
)

func ExampleCompileRegexp() {
	c, err := capshape.CompileRegexp(`(?P<key>\w+)=(\w+)`)
	if err != nil {
		panic(err)
	}
	fmt.Println(c.Shape())
	// Output: Product[Leaf(key), Leaf]
}

func ExampleCompiled_FindString() {
	c, err := capshape.CompileRegexp(`(?:([0-9a-f]+)-?)+`)
	if err != nil {
		panic(err)
	}
	r, err := c.FindString("1234-5678-9abc-def0")
	if err != nil {
		panic(err)
	}
	texts, _ := r.GroupTexts(1)
	fmt.Println(texts)
	// Output: [1234 5678 9abc def0]
}

func ExampleResult_Named() {
	c, err := capshape.CompileRegexp(`(?P<user>\w+)@(?P<host>[\w.]+)`)
	if err != nil {
		panic(err)
	}
	r, err := c.FindString("mail from alice@example.com")
	if err != nil {
		panic(err)
	}
	user, _ := r.Named("user")
	host, _ := r.Named("host")
	fmt.Println(r.TextOf(user.(*capshape.LeafValue).Span))
	fmt.Println(r.TextOf(host.(*capshape.LeafValue).Span))
	// Output:
	// alice
	// example.com
}

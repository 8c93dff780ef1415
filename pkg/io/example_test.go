package io_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/viewstack/pkg/io"
	"github.com/matzehuels/viewstack/pkg/view"
)

func ExampleReadJSON() {
	doc := `{
	  "kind": "composite",
	  "tag": "aggregate",
	  "branches": [
	    {"kind": "element", "group": "Curve", "label": "fit", "data": [1, 2]},
	    {"kind": "element", "group": "Curve", "label": "fit", "data": [2, 3]},
	    {"kind": "element", "group": "Text", "data": "legend"}
	  ]
	}`

	n, err := io.ReadJSON(strings.NewReader(doc))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	c := n.(*view.Composite)
	fmt.Println(c.Tag(), c.Keys())
	// Output: aggregate [Curve.fit.I Curve.fit.II Text]
}

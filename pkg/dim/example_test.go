package dim_test

import (
	"fmt"

	"github.com/matzehuels/viewstack/pkg/dim"
)

func ExampleNew() {
	season, err := dim.New("season", dim.WithValues("spring", "summer", "autumn", "winter"))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	idx, _ := season.IndexOf("autumn")
	fmt.Println(season.Name(), idx)

	_, err = season.IndexOf("monsoon")
	fmt.Println(err)
	// Output:
	// season 2
	// DOMAIN_ERROR: dimension "season": value monsoon not in [spring summer autumn winter]
}

func ExampleDimension_Label() {
	t := dim.MustNew("time", dim.WithType(dim.TypeFloat), dim.WithUnit("s"))
	fmt.Println(t.Label())
	// Output: time (s)
}

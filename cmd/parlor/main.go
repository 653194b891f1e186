// Command parlor manages an ice cream parlor's catalog and cart.
package main

import (
	"os"

	"github.com/mesh-intelligence/parlor/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}

// csboot turns C# model classes into TypeScript client models, an ASP.NET
// CRUD stack and Go structs.
package main

import (
	"os"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// cmd/ldmat/main.go
package main

import (
	"ldmat/internal/app"
	"ldmat/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }

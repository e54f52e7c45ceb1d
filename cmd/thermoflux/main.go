// cmd/thermoflux/main.go
package main

import (
	"thermoflux/internal/app"
	"thermoflux/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}

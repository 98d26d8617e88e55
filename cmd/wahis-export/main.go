package main

import (
	"wahis-export/cmd/wahis-export/commands"
	"wahis-export/lib/serviceutil"
)

func main() {
	ctx := serviceutil.SignalContext()
	commands.ExecuteContext(ctx)
}

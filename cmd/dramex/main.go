package main

import (
	"dramex-logger/cmd/dramex/commands"
	"dramex-logger/lib/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}

package main

import (
	"gongbridge/cmd/gongbridge/commands"
	"gongbridge/lib/osutil"
	"gongbridge/lib/telemetry"
)

func main() {
	ctx := osutil.SignalContext()
	telemetry.SetupFromEnv(ctx, "gongbridge")
	telemetry.InitSlog(true)
	telemetry.InstrumentPerfStats(ctx)
	commands.ExecuteContext(ctx)
}

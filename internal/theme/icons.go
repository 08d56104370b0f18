package theme

// Battery status icons with semantic colors.
var (
	IconBatteryOK       = PassStyle.Render("▮")
	IconBatteryLow      = FailStyle.Render("▯")
	IconBatteryCharging = WarnStyle.Render("⚡")
)

// Clock style labels.
const (
	Label24h = "24h"
	Label12h = "12h"
)

// Command marswm is the entrypoint: connect to X, query the monitor
// layout, build the controller and default rule/keybinding tables, and run
// the event dispatcher until it is asked to quit.
package main

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/mars-wm/marswm/internal/config"
	"github.com/mars-wm/marswm/internal/dispatch"
	"github.com/mars-wm/marswm/internal/keys"
	"github.com/mars-wm/marswm/internal/monitor"
	"github.com/mars-wm/marswm/internal/rules"
	"github.com/mars-wm/marswm/internal/wm"
	"github.com/mars-wm/marswm/internal/xserver"
)

func main() {
	cfg := config.Default()

	conn, err := xserver.Connect(5, time.Second)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	monitors, err := monitor.Query(conn.X, cfg.EdgeMargin, cfg.EdgeMarginPrimary)
	if err != nil {
		log.Fatal("Monitor query failed: ", err)
	}

	controller := wm.New(conn, cfg, monitors, defaultRules())
	d := dispatch.New(conn, controller, keys.Default(modName(cfg.ModKey), len(cfg.WorkspaceNames)))
	d.Run()
}

// defaultRules seeds the startup placement table; a YAML rule-file loader
// is an external collaborator, so this is the fixed rule set the binary
// ships with.
func defaultRules() rules.Set {
	return rules.Set{
		{Application: "Pavucontrol", Action: rules.Action{Floating: true}},
	}
}

// modName maps the raw modifier mask config.Config.ModKey carries to the
// name keybind.ParseString expects ("Mod4", "Mod1", ...), since the
// binding table is built from spec strings rather than raw masks.
func modName(mask uint16) string {
	switch mask {
	case 0x08:
		return "Mod1"
	case 0x40:
		return "Mod4"
	default:
		return "Mod4"
	}
}

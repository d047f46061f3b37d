package window

import (
	_ "embed"
	"fmt"
	"strings"
)

// titlebarScript is the injected chrome: a custom title bar drawn over the
// hidden native one.
//
//go:embed titlebar.js
var titlebarScript string

// chromeScriptFor composes the full injection payload for a window: the
// bridge address and window label the script needs, followed by the chrome
// itself. The script is idempotent, so repeated injection is harmless.
func chromeScriptFor(bridgeAddr, label, script string) string {
	var b strings.Builder
	if bridgeAddr != "" {
		fmt.Fprintf(&b, "window.__ONYX_BRIDGE_ADDR__ = %q;\n", bridgeAddr)
	}
	fmt.Fprintf(&b, "window.__ONYX_WINDOW_LABEL__ = %q;\n", label)
	b.WriteString(script)
	return b.String()
}

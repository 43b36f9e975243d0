package collector

import "fmt"

// Sleep kinds systemd passes as the second argument to system-sleep hooks.
var sleepKinds = map[string]bool{
	"suspend":                true,
	"hibernate":              true,
	"hybrid-sleep":           true,
	"suspend-then-hibernate": true,
}

// HookEvent maps the arguments of a systemd-sleep hook to a log event.
// "pre" runs before sleeping and "post" after waking; every sleep kind is
// logged as a plain suspend/resume so reports pair them the same way.
// An empty kind is accepted for hooks that only forward their first argument.
func HookEvent(action, kind string) (string, error) {
	if kind != "" && !sleepKinds[kind] {
		return "", fmt.Errorf("unknown sleep kind %q", kind)
	}
	switch action {
	case "pre":
		return EventSuspend, nil
	case "post":
		return EventResume, nil
	default:
		return "", fmt.Errorf("unknown hook action %q, want pre or post", action)
	}
}

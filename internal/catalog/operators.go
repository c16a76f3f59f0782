package catalog

// Operators lists the named result operators the gateway can apply to an
// archive traversal. The names mirror the CLI operators of the upstream
// ad-library tooling so existing callers can discover them unchanged.
var operators = []string{
	"count",
	"save",
	"save_to_csv",
	"start_time_trending",
}

// OperatorNames returns the operator catalog as a fresh slice.
func OperatorNames() []string {
	out := make([]string, len(operators))
	copy(out, operators)
	return out
}

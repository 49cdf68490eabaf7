package weeks

import "fmt"

// HistoricPolicy selects which meals the history view contains.
type HistoricPolicy string

const (
	// HistoricAll lists every meal, planned, current and eaten alike.
	HistoricAll HistoricPolicy = "all"
	// HistoricPastOnly lists only meals planned strictly before the current week.
	HistoricPastOnly HistoricPolicy = "past"
)

func ParseHistoricPolicy(s string) (HistoricPolicy, error) {
	switch HistoricPolicy(s) {
	case "", HistoricAll:
		return HistoricAll, nil
	case HistoricPastOnly:
		return HistoricPastOnly, nil
	default:
		return "", fmt.Errorf("invalid historic policy %q (expected %q or %q)", s, HistoricAll, HistoricPastOnly)
	}
}

package normalize

import "strings"

// Characters that cannot appear in a storage key segment. Replaced rather
// than stripped so distinct values keep distinct keys in the common case;
// collisions are an accepted risk.
var keySanitizer = strings.NewReplacer(
	".", "_",
	"#", "_",
	"$", "_",
	"/", "_",
	"[", "_",
	"]", "_",
)

// BuildKey derives the deterministic aggregation key for a (type, normalized
// value) pair, e.g. ("phone", "+959912345678") -> "phone_+959912345678".
func BuildKey(entityType, value string) string {
	return entityType + "_" + keySanitizer.Replace(value)
}

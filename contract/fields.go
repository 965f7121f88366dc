package contract

// hackathonFieldNames maps storage names to the names clients send and receive.
// Fields not listed use the same name on both sides.
var hackathonFieldNames = map[string]string{
	"prize_pool": "prize_pool_details",
	"theme":      "theme_focus_area",
}

var hackathonInternalNames = invert(hackathonFieldNames)

// ExternalName returns the client-facing name of a hackathon column.
func ExternalName(internal string) string {
	if external, ok := hackathonFieldNames[internal]; ok {
		return external
	}
	return internal
}

// InternalName returns the column a client-facing hackathon field is stored in.
func InternalName(external string) string {
	if internal, ok := hackathonInternalNames[external]; ok {
		return internal
	}
	return external
}

func invert(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

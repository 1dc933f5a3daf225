package rawhttp

import "strconv"

// Method is one of the request methods the server understands.
type Method int

const (
	MethodUnknown Method = -1
	MethodGet     Method = 0
	MethodPost    Method = 1
)

var methodNames = [...]string{
	MethodGet:  "GET",
	MethodPost: "POST",
}

// ParseMethod matches s exactly (case-sensitive) against the supported methods.
func ParseMethod(s string) Method {
	for i, name := range methodNames {
		if s == name {
			return Method(i)
		}
	}

	return MethodUnknown
}

func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return "UNKNOWN"
	}

	return methodNames[m]
}

// Route identifies an endpoint of the server.
type Route struct {
	Method Method
	Path   string
}

// Len returns the length of the route's path in bytes.
func (r Route) Len() int { return len(r.Path) }

// Key renders the key that identifies the route in a [Router]: "<method ordinal>-<path>".
func (r Route) Key() string {
	return strconv.Itoa(int(r.Method)) + "-" + r.Path
}

func (r Route) String() string {
	return r.Method.String() + " " + r.Path
}

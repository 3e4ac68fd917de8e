package mode

// Mode is the retrieval path that produced a result.
type Mode string

// Search mode constants.
const (
	// Vector ranks by embedding similarity plus location boost.
	Vector Mode = "vector"
	// Keyword is the staged directory filter search used as fallback.
	Keyword Mode = "keyword"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Vector || m == Keyword
}

package ports

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Page is a limit/offset window over an ordered list.
type Page struct {
	Limit  int
	Offset int
}

// Normalize applies the default limit, caps it at MaxPageLimit and clamps a
// negative offset to zero.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// ListResult is one page of items plus the total size of the unpaged list.
type ListResult[T any] struct {
	Items []T
	Total int64
	Page  Page
}

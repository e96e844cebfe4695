package domain

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// NormalizePage clamps page/limit the same way for every listing and returns the row offset.
func NormalizePage(page, limit int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit, (page - 1) * limit
}

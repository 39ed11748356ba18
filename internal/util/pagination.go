// Package util holds small helpers shared across handlers.
package util

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Offsets converts 1-based page/size query values into a slice offset and
// limit. Out-of-range values fall back to page 1 and the default size.
func Offsets(page, size int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > maxPageSize {
		size = defaultPageSize
	}
	return (page - 1) * size, size
}

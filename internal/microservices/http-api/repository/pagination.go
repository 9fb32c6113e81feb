package repository

// Page is a limit/offset window over a result set.
type Page struct {
	Limit  int
	Offset int
}

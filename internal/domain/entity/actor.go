package entity

// Actor identifies who is performing a core operation. Identity and role come
// from the verified token; the core never reads ambient session state.
type Actor struct {
	ID       string
	Username string
	Role     string
}

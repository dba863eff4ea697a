package ports

// Principal is the authenticated identity passed explicitly into every core
// call. It is derived from verified JWT claims by the transport layer; the
// core never reads an ambient session. A nil *Principal means an anonymous
// request, which is legal on read paths (free content, channel pages).
type Principal struct {
	UserID   string
	Username string
	Role     string
}

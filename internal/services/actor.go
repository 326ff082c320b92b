package services

// Actor is the verified identity attached to a request by the auth
// middleware. Services never re-derive it.
type Actor struct {
	ID   int64
	Role string
	IP   string
}

func (a Actor) ipPtr() *string {
	if a.IP == "" {
		return nil
	}
	ip := a.IP
	return &ip
}

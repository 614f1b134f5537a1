package models

// Identity is the user resolved from a valid bearer token. It is attached to
// the request context by the authentication middleware and is read-only from
// the handlers' perspective.
type Identity struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
	Rol    string `json:"rol"`
}

package domain

// User is owned by the external data API; this service only reads and
// writes it through the UserStore interface.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	// CurrentToken holds the latest issued bearer token, nil after logout.
	// A presented token that no longer matches it is treated as revoked
	// even while cryptographically valid.
	CurrentToken *string
}

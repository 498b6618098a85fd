package domain

// FinancialRecord is the single active encrypted record per user, owned
// by the external data API. Data is base64 RSA ciphertext of the
// caller-supplied JSON document, decryptable only by the keypair of the
// same user.
type FinancialRecord struct {
	UserID string
	Data   string
}

// KeyPair is a user's RSA encryption material, PEM-encoded. It must live
// at least as long as the user's encrypted record: losing the private
// key makes the record unrecoverable.
type KeyPair struct {
	UserID     string
	PublicKey  string
	PrivateKey string
}

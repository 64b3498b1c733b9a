package ports

// TokenIssuer emite tokens de acceso para una identidad (proveedor de identidad).
type TokenIssuer interface {
	Generate(userID, email string) (string, error)
}

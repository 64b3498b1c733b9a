package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken token ausente, mal formado, expirado o con firma incorrecta.
var ErrInvalidToken = errors.New("jwt: token inválido")

// Claims sigue el formato de Supabase Auth: sub es el id del usuario y email viaja como claim propio.
// El token no lleva empresa ni rol: el empleado se resuelve en cada request.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// UserID devuelve el subject del token.
func (c *Claims) UserID() string {
	return c.Subject
}

// Generate genera un token HS256 firmado para userID/email.
func Generate(secret, userID, email, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Email: email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve sus claims.
// Retorna ErrInvalidToken (envolviendo la causa) si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Issuer emite tokens con una configuración fija (secret, issuer, expiración).
type Issuer struct {
	secret     string
	issuer     string
	expMinutes int
}

// NewIssuer construye el emisor.
func NewIssuer(secret, issuer string, expMinutes int) *Issuer {
	return &Issuer{secret: secret, issuer: issuer, expMinutes: expMinutes}
}

// Generate emite un token para la identidad.
func (i *Issuer) Generate(userID, email string) (string, error) {
	return Generate(i.secret, userID, email, i.issuer, i.expMinutes)
}

// Parse valida un token emitido con el mismo secret.
func (i *Issuer) Parse(tokenString string) (*Claims, error) {
	return Parse(i.secret, tokenString)
}

package auth

import (
	"fmt"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Claims is the verified claim set extracted from a bearer token.
type Claims struct {
	Subject string
}

// Verifier validates HS256-signed bearer tokens issued by the HR portal's
// login flow. It only verifies; issuance lives elsewhere.
type Verifier struct {
	secret []byte
	issuer string
}

func NewVerifier(secret []byte, issuer string) *Verifier {
	return &Verifier{secret: secret, issuer: issuer}
}

// Verify checks the token signature, expiry and issuer and returns the claim
// set. The signature check is in-process, no I/O.
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithIssuer(v.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type %T", token.Claims)
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return nil, fmt.Errorf("token carries no subject")
	}

	return &Claims{Subject: subject}, nil
}

package token

import (
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	apperrors "github.com/gymstack/gymstack/internal/errors"
	"github.com/gymstack/gymstack/internal/metrics"
	"github.com/pkg/errors"
)

// Codec encodes and decodes signed, expiring session tokens.
type Codec struct {
	signer  Signer
	nowTime func() time.Time // injectable for testing
}

// CodecOption modifies a Codec instance.
type CodecOption func(*Codec)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) CodecOption {
	return func(c *Codec) {
		c.nowTime = nowFunc
	}
}

func NewCodec(signer Signer, options ...CodecOption) *Codec {
	c := &Codec{
		signer:  signer,
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Encode signs the claims with issuedAt = now and expiresAt = now + ttl.
func (c *Codec) Encode(claims Claims, ttl time.Duration) (string, error) {
	now := c.nowTime()
	claims.RegisteredClaims = jwtlib.RegisteredClaims{
		IssuedAt:  jwtlib.NewNumericDate(now),
		ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
	}

	signedToken, err := c.signer.Sign(claims)
	if err != nil {
		return "", errors.Wrap(err, "[Codec.Encode] signer.Sign")
	}
	return signedToken, nil
}

// Decode verifies signature, shape, and expiry. Every failure collapses to
// ErrInvalidToken so callers always get a definite valid/invalid outcome and
// no internal detail leaks toward the client.
func (c *Codec) Decode(rawToken string) (*Claims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, apperrors.ErrInvalidToken
	}

	claims := &Claims{}
	parsed, err := jwtlib.ParseWithClaims(rawToken, claims, c.signer.GetVerificationKey,
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(c.nowTime),
		jwtlib.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		metrics.TokenDecodeFailures.Inc()
		return nil, apperrors.ErrInvalidToken
	}

	if !claims.Role.Valid() {
		metrics.TokenDecodeFailures.Inc()
		return nil, apperrors.ErrInvalidToken
	}

	return claims, nil
}

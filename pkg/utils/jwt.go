package utils

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/patrickmn/go-cache"
)

const (
	FirebaseCertsURL      = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"
	firebaseIssuerPrefix  = "https://securetoken.google.com/"
	firebaseCertsCacheKey = "certs"
	defaultCertsCacheTTL  = time.Hour
	defaultLocalTokenTTL  = time.Hour
	localTokenIssuer      = "tripgenie"
)

// Identity is the authenticated caller as asserted by a verified token.
type Identity struct {
	UID   string
	Email string
	Name  string
}

type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

type Claims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) identity() (*Identity, error) {
	if c.Subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", ErrUnauthorized)
	}
	return &Identity{UID: c.Subject, Email: c.Email, Name: c.Name}, nil
}

// FirebaseTokenVerifier checks Firebase ID tokens against Google's published
// x509 certificates. Certificates are cached for the max-age Google advertises.
type FirebaseTokenVerifier struct {
	projectID  string
	certsURL   string
	httpClient *http.Client
	certs      *cache.Cache
	mu         sync.Mutex
}

func NewFirebaseTokenVerifier(projectID, certsURL string, httpClient *http.Client) *FirebaseTokenVerifier {
	if certsURL == "" {
		certsURL = FirebaseCertsURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &FirebaseTokenVerifier{
		projectID:  projectID,
		certsURL:   certsURL,
		httpClient: httpClient,
		certs:      cache.New(defaultCertsCacheTTL, 10*time.Minute),
	}
}

func (v *FirebaseTokenVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (interface{}, error) {
			kid, _ := t.Header["kid"].(string)
			if kid == "" {
				return nil, errors.New("missing kid header")
			}
			return v.publicKey(ctx, kid)
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(v.projectID),
		jwt.WithIssuer(firebaseIssuerPrefix+v.projectID),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return claims.identity()
}

func (v *FirebaseTokenVerifier) publicKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	certs, err := v.loadCerts(ctx)
	if err != nil {
		return nil, err
	}
	pemCert, ok := certs[kid]
	if !ok {
		return nil, fmt.Errorf("unknown signing key %q", kid)
	}
	return jwt.ParseRSAPublicKeyFromPEM([]byte(pemCert))
}

func (v *FirebaseTokenVerifier) loadCerts(ctx context.Context) (map[string]string, error) {
	if cached, ok := v.certs.Get(firebaseCertsCacheKey); ok {
		return cached.(map[string]string), nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if cached, ok := v.certs.Get(firebaseCertsCacheKey); ok {
		return cached.(map[string]string), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.certsURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch signing certs: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch signing certs: status %d", resp.StatusCode)
	}

	certs := map[string]string{}
	if err := json.NewDecoder(resp.Body).Decode(&certs); err != nil {
		return nil, fmt.Errorf("decode signing certs: %w", err)
	}
	v.certs.Set(firebaseCertsCacheKey, certs, maxAge(resp.Header.Get("Cache-Control")))
	return certs, nil
}

func maxAge(cacheControl string) time.Duration {
	for _, directive := range strings.Split(cacheControl, ",") {
		directive = strings.TrimSpace(directive)
		if !strings.HasPrefix(directive, "max-age=") {
			continue
		}
		if secs, err := strconv.Atoi(strings.TrimPrefix(directive, "max-age=")); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultCertsCacheTTL
}

// HMACTokenVerifier accepts HS256 tokens signed with a shared secret. It backs
// local development and tests when no identity provider is configured.
type HMACTokenVerifier struct {
	secret []byte
}

func NewHMACTokenVerifier(secret string) *HMACTokenVerifier {
	return &HMACTokenVerifier{secret: []byte(secret)}
}

func (v *HMACTokenVerifier) Verify(_ context.Context, token string) (*Identity, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (interface{}, error) {
			return v.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(localTokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return claims.identity()
}

// CreateToken issues a token HMACTokenVerifier accepts.
func CreateToken(secret, uid, email string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = defaultLocalTokenTTL
	}
	now := time.Now()
	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			Issuer:    localTokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

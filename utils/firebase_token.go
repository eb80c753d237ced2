package utils

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v4"

	"github.com/RomeoThePickleTec/task-management-system-sub001/models"
)

const firebaseCertURL = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"

const certCacheKey = "firebase:securetoken:certs"

// TokenVerifier validates Firebase ID tokens against Google's published
// signing certificates. The certificates are cached in Redis so a login burst
// does not hammer the metadata endpoint.
type TokenVerifier struct {
	projectID string
	cache     *redis.Client
	client    *http.Client
}

func NewTokenVerifier(projectID string, cache *redis.Client) *TokenVerifier {
	return &TokenVerifier{
		projectID: projectID,
		cache:     cache,
		client:    &http.Client{},
	}
}

// VerifyIDToken checks the token's signature and claims and returns the
// federated identity it describes.
func (v *TokenVerifier) VerifyIDToken(ctx context.Context, tokenString string) (*models.FederatedIdentity, error) {
	// Parse the header first to find which certificate signed it.
	token, _, err := new(jwt.Parser).ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %v", err)
	}

	kid, ok := token.Header["kid"].(string)
	if !ok {
		return nil, errors.New("token has no kid header")
	}

	publicKey, err := v.publicKeyFor(ctx, kid)
	if err != nil {
		return nil, fmt.Errorf("fetching signing certificate: %v", err)
	}

	parsedToken, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return publicKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("verifying token signature: %v", err)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, errors.New("invalid token")
	}

	if claims["iss"] != "https://securetoken.google.com/"+v.projectID {
		return nil, errors.New("invalid issuer")
	}
	if claims["aud"] != v.projectID {
		return nil, errors.New("invalid audience")
	}
	exp, ok := claims["exp"].(float64)
	if !ok || time.Now().Unix() > int64(exp) {
		return nil, errors.New("token expired")
	}

	uid, ok := claims["sub"].(string)
	if !ok || uid == "" {
		return nil, errors.New("token has no subject")
	}

	identity := &models.FederatedIdentity{UID: uid}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		identity.DisplayName = name
	}
	return identity, nil
}

// publicKeyFor returns the RSA public key for the given certificate id,
// consulting the Redis cache before the metadata endpoint.
func (v *TokenVerifier) publicKeyFor(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	certs, err := v.cachedCerts(ctx)
	if err != nil {
		return nil, err
	}

	certPEM, ok := certs[kid]
	if !ok {
		return nil, fmt.Errorf("no certificate for kid %s", kid)
	}

	block, _ := pem.Decode([]byte(certPEM))
	if block == nil {
		return nil, errors.New("malformed certificate PEM")
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parsing certificate: %v", err)
	}
	key, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("certificate does not hold an RSA key")
	}
	return key, nil
}

func (v *TokenVerifier) cachedCerts(ctx context.Context) (map[string]string, error) {
	if v.cache != nil {
		if cached, err := v.cache.Get(ctx, certCacheKey).Result(); err == nil {
			var certs map[string]string
			if err := json.Unmarshal([]byte(cached), &certs); err == nil {
				return certs, nil
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, firebaseCertURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := v.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var certs map[string]string
	if err := json.Unmarshal(body, &certs); err != nil {
		return nil, fmt.Errorf("parsing certificates: %v", err)
	}

	if v.cache != nil {
		ttl := certTTL(resp.Header.Get("Cache-Control"))
		v.cache.Set(ctx, certCacheKey, body, ttl)
	}
	return certs, nil
}

// certTTL derives a cache TTL from the response's max-age, defaulting to an
// hour when the header is missing or unparsable.
func certTTL(cacheControl string) time.Duration {
	var maxAge int
	if _, err := fmt.Sscanf(cacheControl, "public, max-age=%d", &maxAge); err == nil && maxAge > 0 {
		return time.Duration(maxAge) * time.Second
	}
	return time.Hour
}

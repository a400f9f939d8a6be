// Package saml runs the service provider side of SAML sign-in and turns an
// asserted session into an SSO profile.
package saml

import (
	"context"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/cmlabs-hris/ops-backend-go/internal/config"
	"github.com/cmlabs-hris/ops-backend-go/internal/domain/auth"
	"github.com/crewjam/saml/samlsp"
)

var ErrNoSession = errors.New("no saml session")

var (
	emailAttributes = []string{
		"email",
		"mail",
		"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/emailaddress",
	}
	nameAttributes = []string{
		"displayName",
		"name",
		"cn",
		"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/name",
	}
)

type Provider struct {
	mw *samlsp.Middleware
}

// New loads the SP key pair and fetches IdP metadata. RootURL should end with
// the API prefix and a slash, e.g. https://ops.example.com/api/v1/, so that the
// metadata and ACS endpoints resolve under it.
func New(ctx context.Context, cfg config.SAMLConfig) (*Provider, error) {
	keyPair, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("load saml key pair: %w", err)
	}
	keyPair.Leaf, err = x509.ParseCertificate(keyPair.Certificate[0])
	if err != nil {
		return nil, fmt.Errorf("parse saml certificate: %w", err)
	}
	key, ok := keyPair.PrivateKey.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("saml key must be RSA")
	}

	metadataURL, err := url.Parse(cfg.IDPMetadataURL)
	if err != nil {
		return nil, fmt.Errorf("parse idp metadata url: %w", err)
	}
	idpMetadata, err := samlsp.FetchMetadata(ctx, http.DefaultClient, *metadataURL)
	if err != nil {
		return nil, fmt.Errorf("fetch idp metadata: %w", err)
	}

	rootURL, err := url.Parse(cfg.RootURL)
	if err != nil {
		return nil, fmt.Errorf("parse saml root url: %w", err)
	}

	mw, err := samlsp.New(samlsp.Options{
		URL:         *rootURL,
		Key:         key,
		Certificate: keyPair.Leaf,
		IDPMetadata: idpMetadata,
	})
	if err != nil {
		return nil, fmt.Errorf("create saml middleware: %w", err)
	}

	return &Provider{mw: mw}, nil
}

// ServeHTTP serves SP metadata and the assertion consumer service.
func (p *Provider) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.mw.ServeHTTP(w, r)
}

// RequireAccount starts the IdP flow when the request carries no session.
func (p *Provider) RequireAccount(next http.Handler) http.Handler {
	return p.mw.RequireAccount(next)
}

func ProfileFromContext(ctx context.Context) (auth.SSOProfile, error) {
	session := samlsp.SessionFromContext(ctx)
	if session == nil {
		return auth.SSOProfile{}, ErrNoSession
	}
	return ProfileFromSession(session)
}

func ProfileFromSession(session samlsp.Session) (auth.SSOProfile, error) {
	withAttrs, ok := session.(samlsp.SessionWithAttributes)
	if !ok {
		return auth.SSOProfile{}, fmt.Errorf("saml session of type %T has no attributes", session)
	}
	attrs := withAttrs.GetAttributes()

	var subject string
	if claims, ok := session.(samlsp.JWTSessionClaims); ok {
		subject = claims.Subject
	}
	if subject == "" {
		subject = attrs.Get("uid")
	}

	email := firstAttribute(attrs, emailAttributes)
	if subject == "" && email != "" {
		subject = email
	}

	return auth.SSOProfile{
		SubjectID:   "saml:" + subject,
		Email:       strings.ToLower(email),
		DisplayName: firstAttribute(attrs, nameAttributes),
	}, nil
}

func firstAttribute(attrs samlsp.Attributes, names []string) string {
	for _, name := range names {
		if v := strings.TrimSpace(attrs.Get(name)); v != "" {
			return v
		}
	}
	return ""
}

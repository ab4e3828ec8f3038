package verifier

import (
	"context"
	"time"

	recaptchaConfig "recaptcha-toolbox/config"
	recaptchaLogger "recaptcha-toolbox/utils/logger"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
)

// Verifier checks challenge response tokens against the siteverify
// endpoint. It is stateless after construction; concurrent Verify calls
// on one instance are safe.
type Verifier struct {
	siteKey  string
	secret   string
	endpoint recaptchaConfig.Endpoint
	client   *resty.Client
	logger   *recaptchaLogger.Logger
}

type Option func(*Verifier)

// WithEndpoint redirects verification to a non-default siteverify
// endpoint, e.g. a local stub in tests.
func WithEndpoint(endpoint recaptchaConfig.Endpoint) Option {
	return func(v *Verifier) {
		v.endpoint = endpoint
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(v *Verifier) {
		v.client.SetTimeout(timeout)
	}
}

func WithLogger(logger *recaptchaLogger.Logger) Option {
	return func(v *Verifier) {
		v.logger = logger
	}
}

// New builds a Verifier from a site key and secret. The secret is not
// validated here; verifying with an empty secret surfaces as a remote
// rejection.
func New(siteKey, secret string, opts ...Option) *Verifier {
	v := &Verifier{
		siteKey:  siteKey,
		secret:   secret,
		endpoint: recaptchaConfig.Default(),
		client:   resty.New().SetTimeout(recaptchaConfig.DefaultTimeout),
		logger:   recaptchaLogger.NewLogger("Verifier", "INFO", nil),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// NewWithSecretOnly is the legacy single-credential form. No site key is
// stored, so HTML rendering is disabled for the returned Verifier.
func NewWithSecretOnly(secret string, opts ...Option) *Verifier {
	return New("", secret, opts...)
}

// FromConfig builds a Verifier from a loaded config file.
func FromConfig(cfg *recaptchaConfig.Config, opts ...Option) *Verifier {
	base := []Option{WithEndpoint(cfg.Endpoint), WithTimeout(cfg.Timeout())}
	return New(cfg.Credentials.SiteKey, cfg.Credentials.Secret, append(base, opts...)...)
}

// SiteKey returns the public site identifier, empty for secret-only
// construction.
func (v *Verifier) SiteKey() string {
	return v.siteKey
}

// Verify checks one challenge response token. It performs a single GET
// against the siteverify endpoint and never retries; every failure is
// terminal for the call and reported as an *Error. A nil return means
// the remote service accepted the token.
func (v *Verifier) Verify(ctx context.Context, req *Request) error {
	if req == nil {
		return ErrVerifyParamsIncorrect
	}
	if req.Response == "" {
		return ErrMissingInputResponse
	}

	params := map[string]string{
		"secret":   v.secret,
		"response": req.Response,
	}
	if req.RemoteIP != "" {
		params["remoteip"] = req.RemoteIP
	}

	resp, err := v.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(v.endpoint.VerifyURL())
	if err != nil {
		v.logger.Errorf("siteverify request failed: %v", err)
		return ErrHTTPTransportError
	}

	var result SiteverifyResponse
	if err := sonic.Unmarshal(resp.Body(), &result); err != nil {
		v.logger.Errorf("siteverify response decode failed: %v, body: %s", err, string(resp.Body()))
		return ErrInvalidResponse
	}

	if result.Success {
		return nil
	}
	if len(result.ErrorCodes) == 0 {
		// Failed reply without the documented error-codes shape.
		return ErrInvalidResponse
	}
	return &Error{Codes: result.ErrorCodes}
}

// VerifyWithCallback is an adapter for node-style callers: cb receives
// the same outcome the call returns.
func (v *Verifier) VerifyWithCallback(ctx context.Context, req *Request, cb func(error)) error {
	err := v.Verify(ctx, req)
	if cb != nil {
		cb(err)
	}
	return err
}

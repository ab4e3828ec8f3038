package middleware

import (
	"errors"

	"recaptcha-toolbox/verifier"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

const (
	// TokenHeader carries the challenge response token when the client
	// sends it out of band instead of in the form or JSON body.
	TokenHeader = "X-Recaptcha-Token"

	// tokenFormField is the field name the browser widget submits.
	tokenFormField = "g-recaptcha-response"
)

// FailureHandler renders the response for a rejected request. err is
// always a *verifier.Error.
type FailureHandler func(c *fiber.Ctx, err *verifier.Error) error

type middlewareConfig struct {
	failureHandler FailureHandler
}

type Option func(*middlewareConfig)

func WithFailureHandler(handler FailureHandler) Option {
	return func(cfg *middlewareConfig) {
		if handler != nil {
			cfg.failureHandler = handler
		}
	}
}

// New returns a fiber handler that verifies the challenge response
// token on every request and only passes verified requests through.
func New(v *verifier.Verifier, opts ...Option) fiber.Handler {
	cfg := middlewareConfig{
		failureHandler: jsonFailureHandler,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(c *fiber.Ctx) error {
		req := &verifier.Request{
			Response: extractToken(c),
			RemoteIP: clientIP(c),
		}
		if err := v.Verify(c.UserContext(), req); err != nil {
			var verr *verifier.Error
			if !errors.As(err, &verr) {
				verr = &verifier.Error{Codes: []string{verifier.CodeInvalidResponse}}
			}
			return cfg.failureHandler(c, verr)
		}
		return c.Next()
	}
}

func jsonFailureHandler(c *fiber.Ctx, err *verifier.Error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":       "Invalid recaptcha challenge",
		"error_codes": err.Codes,
	})
}

func extractToken(c *fiber.Ctx) string {
	if t := c.Get(TokenHeader); t != "" {
		return t
	}
	if t := c.FormValue(tokenFormField); t != "" {
		return t
	}
	if body := c.Body(); len(body) > 0 {
		var payload struct {
			Token string `json:"token"`
		}
		if err := sonic.Unmarshal(body, &payload); err == nil && payload.Token != "" {
			return payload.Token
		}
	}
	return ""
}

func clientIP(c *fiber.Ctx) string {
	if ip := c.Get(fiber.HeaderXForwardedFor); ip != "" {
		return ip
	}
	return c.IP()
}

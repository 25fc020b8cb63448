package routes

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"time"

	"github.com/dreluiss/pulseon-mobile-evolve/internal/config"
	"github.com/gofiber/fiber/v2"
)

//go:embed openapi.yaml
var openAPISpec []byte

const docsIndexHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <style>
    body { margin: 0 auto; max-width: 960px; padding: 32px 16px; font-family: system-ui, sans-serif; color: #1b1f24; }
    h1 { margin: 0 0 8px; }
    table { border-collapse: collapse; margin: 16px 0; }
    td { padding: 4px 16px 4px 0; vertical-align: top; }
    code, pre { font-family: ui-monospace, monospace; }
    pre { padding: 16px; overflow: auto; background: #f2f4f3; border-radius: 8px; font-size: 0.85rem; }
    a { color: #1f8a4c; }
  </style>
</head>
<body>
  <h1>{{ .Title }}</h1>
  <p>Development only. Loaded {{ .LoadedAt }}. <a href="/docs/openapi.yaml">openapi.yaml</a></p>
  <table>
    <tr><td><code>/api/v1/auth</code></td><td>sign up, sign in, sign out, password recovery</td></tr>
    <tr><td><code>/api/v1/onboarding</code></td><td>eight-step wizard and one-shot completion</td></tr>
    <tr><td><code>/api/v1/profile</code></td><td>profile and avatar</td></tr>
    <tr><td><code>/api/v1/workouts</code></td><td>workout plan and completion</td></tr>
    <tr><td><code>/api/v1/dashboard</code></td><td>greeting, next workout and stats</td></tr>
    <tr><td><code>/api/v1/ws/session</code></td><td>session events over websocket</td></tr>
  </table>
  <pre>{{ .Spec }}</pre>
</body>
</html>
`

type docsPageData struct {
	Title    string
	LoadedAt string
	Spec     string
}

func registerDocsRoutes(app fiber.Router, cfg *config.Config) error {
	if !cfg.DocsEnabled() {
		return nil
	}

	spec := openAPISpec
	if len(spec) == 0 {
		return fmt.Errorf("openapi spec is empty")
	}

	indexTemplate, err := template.New("docs-index").Parse(docsIndexHTML)
	if err != nil {
		return fmt.Errorf("parse docs template: %w", err)
	}

	pageData := docsPageData{
		Title:    "PulseOn API Docs",
		LoadedAt: time.Now().UTC().Format(time.RFC3339),
		Spec:     string(spec),
	}

	indexHandler := func(c *fiber.Ctx) error {
		applyDocsBaseHeaders(c, fiber.MIMETextHTMLCharsetUTF8)
		c.Set("Content-Security-Policy", "default-src 'none'; style-src 'unsafe-inline'; img-src 'self' data:; base-uri 'none'; form-action 'none'; frame-ancestors 'none'")

		var body bytes.Buffer
		if err := indexTemplate.Execute(&body, pageData); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render api docs")
		}

		return c.Status(fiber.StatusOK).Send(body.Bytes())
	}

	app.Get("/docs", indexHandler)
	app.Get("/docs/", indexHandler)
	app.Get("/docs/openapi.yaml", func(c *fiber.Ctx) error {
		applyDocsBaseHeaders(c, "application/yaml; charset=utf-8")
		c.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'; base-uri 'none'; form-action 'none'")
		c.Set(fiber.HeaderContentDisposition, `inline; filename="openapi.yaml"`)
		return c.Status(fiber.StatusOK).Send(spec)
	})

	return nil
}

func applyDocsBaseHeaders(c *fiber.Ctx, contentType string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderCacheControl, "no-store, max-age=0")
	c.Set(fiber.HeaderPragma, "no-cache")
	c.Set(fiber.HeaderExpires, "0")
	c.Set(fiber.HeaderXContentTypeOptions, "nosniff")
	c.Set(fiber.HeaderXFrameOptions, "DENY")
	c.Set("Referrer-Policy", "no-referrer")
	c.Set("Permissions-Policy", "accelerometer=(), camera=(), geolocation=(), gyroscope=(), magnetometer=(), microphone=(), payment=(), usb=()")
	c.Set("Cross-Origin-Resource-Policy", "same-origin")
	c.Set("Cross-Origin-Opener-Policy", "same-origin")
	c.Set("Cross-Origin-Embedder-Policy", "require-corp")
	c.Set("X-Robots-Tag", "noindex, nofollow")
}

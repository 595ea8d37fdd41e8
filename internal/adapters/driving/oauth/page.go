package oauth

import (
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/spatialshot/spatialshot/internal/core/domain"
)

//go:embed page.html
var pageTemplate string

// Title colors for the result page.
const (
	successColor = "#202124"
	errorColor   = "#d93025"
)

// Page is one rendering of the callback result page.
// Body is trusted HTML; it is never built from request data.
type Page struct {
	Title   string
	Body    string
	IsError bool
}

// Render substitutes the page into the template. Substitution is literal,
// so values must not contain the placeholder tokens themselves.
func (p Page) Render() string {
	breadcrumb, color := "Success", successColor
	if p.IsError {
		breadcrumb, color = "Error", errorColor
	}
	return strings.NewReplacer(
		"${title}", p.Title,
		"${bodyContent}", p.Body,
		"${breadcrumb}", breadcrumb,
		"${dynamicStyle}", fmt.Sprintf("<style>:root { --title-color: %s; }</style>", color),
	).Replace(pageTemplate)
}

// Page texts.
var (
	successPage = Page{
		Title: "Authentication Successful",
		Body:  "<p>Spatialshot is now connected to your Google Account.</p><p>You can close this tab.</p>",
	}
	deniedPage = Page{
		Title:   "Authentication Failed",
		Body:    "No code found.",
		IsError: true,
	}
	exchangeFailedPage = Page{
		Title:   "Authentication Failed",
		Body:    "Google refused the code exchange.",
		IsError: true,
	}
	profileFailedPage = Page{
		Title:   "Authentication Failed",
		Body:    "Google did not return your profile.",
		IsError: true,
	}
	saveFailedPage = Page{
		Title:   "Authentication Failed",
		Body:    "Spatialshot could not save your profile.",
		IsError: true,
	}
)

// pageFor picks the page for a finished attempt.
func pageFor(result domain.AuthResult) Page {
	switch result.Outcome {
	case domain.AuthSucceeded:
		return successPage
	case domain.AuthDenied:
		return deniedPage
	}
	switch {
	case errors.Is(result.Err, domain.ErrTokenExchange):
		return exchangeFailedPage
	case errors.Is(result.Err, domain.ErrProfileFetch):
		return profileFailedPage
	default:
		return saveFailedPage
	}
}

func writePage(w http.ResponseWriter, page Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(page.Render()))
}

func setSecurityHeaders(w http.ResponseWriter) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'unsafe-inline'")
	w.Header().Set("Referrer-Policy", "no-referrer")
	w.Header().Set("Cache-Control", "no-store")
}

package web

import (
	"fmt"
	"net/http"
)

// The redirect pages are informational only; the source of truth for the
// purchase is the webhook, which may land before or after the redirect.

func (s *Server) handleBillingSuccess(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, "Payment received",
		"Thanks! Your payment went through. Your subscription will be activated in the bot within a few seconds.")
}

func (s *Server) handleBillingCancel(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, "Payment cancelled",
		"The payment was cancelled. You can start over from the bot whenever you like.")
}

func (s *Server) renderPage(w http.ResponseWriter, title, text string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head>
    <title>%s</title>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <style>
        body { font-family: Arial, sans-serif; text-align: center; padding: 50px; }
    </style>
</head>
<body>
    <h1>%s</h1>
    <p>%s</p>
    <p><a href="%s">Return to the bot</a></p>
</body>
</html>
`, title, title, text, s.botLink)
}

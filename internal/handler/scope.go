package handler

import (
	"net/http"
	"regexp"
)

const defaultTemplate = "pharmacy2"

var templatePattern = regexp.MustCompile(`^[a-z0-9]+$`)

// requestScope resolves which storefront partition a request targets.
// Demo previews carry ?demo=1 (or demo=true) and never touch live state.
func requestScope(r *http.Request) (template string, demo bool) {
	q := r.URL.Query()

	template = q.Get("template")
	if template == "" || !templatePattern.MatchString(template) {
		template = defaultTemplate
	}

	demoParam := q.Get("demo")
	demo = demoParam == "1" || demoParam == "true"

	return template, demo
}

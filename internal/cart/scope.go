package cart

// DemoSuffix marks demo-preview cart keys; the janitor purges them on a
// schedule.
const DemoSuffix = "_cart_demo"

// ScopeFor builds the storage key for a template's cart. Demo previews
// get their own partition so a preview session never touches the live
// cart.
func ScopeFor(template string, demo bool) string {
	if demo {
		return template + DemoSuffix
	}
	return template + "_cart"
}

package resolve

import "regexp"

// locationPatterns match script assignments to the browser location, most
// specific first. The captured group is the unresolved target.
var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)window\.location\.href\s*=\s*["']([^"']+)["']`),
	regexp.MustCompile(`(?i)window\.location\s*=\s*["']([^"']+)["']`),
	regexp.MustCompile(`(?i)location\.href\s*=\s*["']([^"']+)["']`),
	regexp.MustCompile(`(?i)location\s*=\s*["']([^"']+)["']`),
	regexp.MustCompile(`(?i)document\.location\s*=\s*["']([^"']+)["']`),
}

// ScriptTargets returns every location assignment target in script, in
// pattern order and then in order of appearance.
func ScriptTargets(script string) []string {
	var targets []string
	for _, re := range locationPatterns {
		for _, m := range re.FindAllStringSubmatch(script, -1) {
			targets = append(targets, m[1])
		}
	}
	return targets
}

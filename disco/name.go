package disco

import (
	"strings"
	"unicode"
)

// Camel converts a name to an exported CamelCase identifier. Word boundaries
// are '.', '-', '_' and spaces; interior capitals are preserved.
//
//	Camel("billingAccounts") == "BillingAccounts"
//	Camel("chrome-management") == "ChromeManagement"
func Camel(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	up := true
	for _, r := range s {
		switch r {
		case '.', '-', '_', ' ':
			up = true
			continue
		}
		if up {
			r = unicode.ToUpper(r)
			up = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Kebab converts a name to its lower kebab-case form, the shape used for
// page and subcommand names.
//
//	Kebab("billingAccounts") == "billing-accounts"
func Kebab(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	var started, prevSep, prevUpper bool
	for _, r := range s {
		if r == '.' || r == '_' || r == '-' || r == ' ' {
			b.WriteRune('-')
			started, prevSep, prevUpper = true, true, false
			continue
		}
		if unicode.IsUpper(r) {
			if started && !prevSep && !prevUpper {
				b.WriteRune('-')
			}
			r = unicode.ToLower(r)
			prevUpper = true
		} else {
			prevUpper = false
		}
		b.WriteRune(r)
		started, prevSep = true, false
	}
	return b.String()
}

// PageName returns the documentation page base name for a method, without
// extension: the top resource in kebab form, an underscore, then the
// remaining resources and the method joined with '-'. Methods declared at
// the API level use the bare method name.
//
//	PageName([]string{"billingAccounts", "budgets"}, "create") == "billing-accounts_budgets-create"
//	PageName([]string{"archive"}, "insert") == "archive_insert"
func PageName(path []string, method string) string {
	if len(path) == 0 {
		return Kebab(method)
	}
	parts := make([]string, 0, len(path))
	for _, p := range path[1:] {
		parts = append(parts, Kebab(p))
	}
	parts = append(parts, Kebab(method))
	return Kebab(path[0]) + "_" + strings.Join(parts, "-")
}

// ScopeIdent derives the identifier client libraries use for an OAuth scope.
// The scope granting blanket access to the whole service is Full. Other
// scopes are named from the final URL segment, one capitalized singular word
// per separated component, with a leading repeat of the api name stripped.
//
//	ScopeIdent("chromemanagement", "https://www.googleapis.com/auth/chrome.management.reports.readonly") == "ChromeManagementReportReadonly"
//	ScopeIdent("drive", "https://www.googleapis.com/auth/drive.readonly") == "Readonly"
//	ScopeIdent("books", "https://www.googleapis.com/auth/books") == "Full"
//	ScopeIdent("gmail", "https://mail.google.com/") == "Full"
func ScopeIdent(api, url string) string {
	u := strings.TrimSuffix(url, "/")
	if i := strings.Index(u, "://"); i >= 0 && !strings.Contains(u[i+3:], "/") {
		return "Full"
	}
	base := u
	if i := strings.LastIndex(u, "/"); i >= 0 {
		base = u[i+1:]
	}
	if squash(base) == squash(api) {
		return "Full"
	}
	if len(base) > len(api) && strings.HasPrefix(base, api) {
		if rest := strings.TrimLeft(base[len(api):], ".-_"); rest != "" {
			base = rest
		}
	}

	var b strings.Builder
	for _, w := range strings.FieldsFunc(base, isSep) {
		w = singular(strings.ToLower(w))
		b.WriteString(strings.ToUpper(w[:1]))
		b.WriteString(w[1:])
	}
	return b.String()
}

// VersionTag mangles an api version into the suffix package names carry: the
// leading 'v' dropped and any qualifier split off with an underscore.
//
//	VersionTag("v1") == "1"
//	VersionTag("v1beta1") == "1_beta1"
func VersionTag(version string) string {
	v := strings.TrimPrefix(version, "v")
	v = strings.ReplaceAll(v, ".", "_")
	i := 0
	for i < len(v) && v[i] >= '0' && v[i] <= '9' {
		i++
	}
	if i > 0 && i < len(v) && v[i] != '_' {
		v = v[:i] + "_" + v[i:]
	}
	return v
}

// PkgName returns the package name of the generated client library for an
// API version, without the family prefix.
//
//	PkgName("gamesManagement", "v1management") == "gamesmanagement1_management"
func PkgName(name, version string) string {
	return strings.ToLower(name) + VersionTag(version)
}

func isSep(r rune) bool { return r == '.' || r == '-' || r == '_' }

// squash lowers a name and drops its separators, for loose equality.
func squash(s string) string {
	return strings.Map(func(r rune) rune {
		if isSep(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}

// singular strips a plural suffix from a scope word. Words ending in a
// double 's' are left alone.
func singular(w string) string {
	switch {
	case strings.HasSuffix(w, "ies"):
		return w[:len(w)-3] + "y"
	case strings.HasSuffix(w, "ss"):
		return w
	case strings.HasSuffix(w, "s"):
		return w[:len(w)-1]
	}
	return w
}

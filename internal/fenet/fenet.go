// Package fenet contains hostname parsing helpers used by the filtering
// engine.
package fenet

import "strings"

// ExtractHostname quickly retrieves the hostname from the given URL.
//
// NOTE: This is an optimized, best-effort function.  The result is not
// guaranteed to be correct for some edge cases, which include
// non-hierarchical URLs and IPv6 hostnames.
func ExtractHostname(url string) (hostname string) {
	firstIdx := strings.Index(url, "//")
	if firstIdx == -1 {
		// This is a non-hierarchical structured URL (e.g. stun: or turn:)
		// https://tools.ietf.org/html/rfc4395#section-2.2
		firstIdx = strings.Index(url, ":")
		if firstIdx == -1 {
			return ""
		}

		firstIdx--
	} else {
		firstIdx += 2
	}

	if firstIdx < 0 {
		return ""
	}

	nextIdx := strings.IndexAny(url[firstIdx:], "/:?#")
	if nextIdx == -1 {
		nextIdx = len(url)
	} else {
		nextIdx += firstIdx
	}

	if nextIdx <= firstIdx {
		return ""
	}

	return url[firstIdx:nextIdx]
}

// BaseDomain returns the last two dot-separated labels of hostname, or the
// whole hostname if it has two labels or fewer.  This is a deliberate
// approximation that does not consult the public-suffix list.
func BaseDomain(hostname string) (base string) {
	last := strings.LastIndexByte(hostname, '.')
	if last == -1 {
		return hostname
	}

	prev := strings.LastIndexByte(hostname[:last], '.')

	return hostname[prev+1:]
}

// ParentDomains returns the parent domains of hostname, most specific
// first, produced by progressively dropping the left-most label.  The
// hostname itself is not included.
func ParentDomains(hostname string) (parents []string) {
	for {
		i := strings.IndexByte(hostname, '.')
		if i == -1 {
			return parents
		}

		hostname = hostname[i+1:]
		parents = append(parents, hostname)
	}
}

// IsDomainOrSubdomainOfAny returns true if domain equals or is a subdomain
// of any of domains.
func IsDomainOrSubdomainOfAny(domain string, domains []string) (ok bool) {
	for _, d := range domains {
		if domain == d || strings.HasSuffix(domain, "."+d) {
			return true
		}
	}

	return false
}

// IsDomainName reports whether name looks like a valid domain name: two or
// more labels of letters, digits, and hyphens, where no label starts or
// ends with a hyphen, each label is at most 63 bytes, and the whole name is
// at most 253 bytes.
func IsDomainName(name string) (ok bool) {
	if len(name) == 0 || len(name) > 253 {
		return false
	}

	labels := 0
	for name != "" {
		var label string
		if i := strings.IndexByte(name, '.'); i != -1 {
			label, name = name[:i], name[i+1:]
		} else {
			label, name = name, ""
		}

		if !isDomainLabel(label) {
			return false
		}

		labels++
	}

	return labels >= 2
}

// isDomainLabel reports whether label is a valid single domain-name label.
func isDomainLabel(label string) (ok bool) {
	if len(label) == 0 || len(label) > 63 {
		return false
	}

	if label[0] == '-' || label[len(label)-1] == '-' {
		return false
	}

	for i := 0; i < len(label); i++ {
		c := label[i]
		switch {
		case c >= 'a' && c <= 'z',
			c >= 'A' && c <= 'Z',
			c >= '0' && c <= '9',
			c == '-':
			// Go on.
		default:
			return false
		}
	}

	return true
}

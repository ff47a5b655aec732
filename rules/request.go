package rules

// maxURLLength limits the URL length by 4 KiB.  URLs longer than a
// megabyte exist in the wild, and there is no sense in matching the whole
// thing.
const maxURLLength = 4 * 1024

// Request represents one outbound network request to be classified.
type Request struct {
	// URL is the full request URL.
	URL string

	// Hostname is the lowercase hostname of URL.
	Hostname string

	// SourceHostname is the lowercase hostname of the initiating page.  It
	// is empty when the source URL is unknown.
	SourceHostname string

	// ResourceType is the normalized resource-type token of the request.
	// It may be empty when the interception layer does not report one.
	ResourceType string

	// ThirdParty is true if the request target and the initiating page
	// have different base domains.
	ThirdParty bool
}

// NewRequest creates a request for the given URL properties.  hostname and
// srcHostname must already be lowercase; resourceType is normalized here.
func NewRequest(url, hostname, srcHostname, resourceType string, thirdParty bool) (r *Request) {
	if len(url) > maxURLLength {
		url = url[:maxURLLength]
	}

	return &Request{
		URL:            url,
		Hostname:       hostname,
		SourceHostname: srcHostname,
		ResourceType:   NormalizeResourceType(resourceType),
		ThirdParty:     thirdParty,
	}
}

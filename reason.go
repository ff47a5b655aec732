package filterengine

// Reason identifies which check produced a match result.
type Reason string

// Possible match reasons.
const (
	// ReasonWhitelisted means an exception rule matched the request.
	ReasonWhitelisted Reason = "whitelisted"

	// ReasonDomainRule means a "||host^" rule matched the hostname.
	ReasonDomainRule Reason = "domain_rule"

	// ReasonThirdPartyRule means a $third-party rule matched a
	// cross-site request.
	ReasonThirdPartyRule Reason = "third_party_rule"

	// ReasonFirstPartyRule means a $first-party rule matched a same-site
	// request.
	ReasonFirstPartyRule Reason = "first_party_rule"

	// ReasonScriptRule means a script rule matched a script request.
	ReasonScriptRule Reason = "script_rule"

	// ReasonPathRule means a wildcard path rule matched the URL.
	ReasonPathRule Reason = "path_rule"

	// ReasonRegexRule means a regex rule matched the URL.
	ReasonRegexRule Reason = "regex_rule"

	// ReasonNoMatch means no rule matched the request.
	ReasonNoMatch Reason = "no_match"

	// ReasonError means the request URL could not be parsed.  The engine
	// fails open: an unparseable request is never blocked.
	ReasonError Reason = "error"
)

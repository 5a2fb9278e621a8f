// Package patch rewrites Foundry test sources to carry operator
// authorization signatures: every prank-guarded swapNative/revertNative
// call site gets a sigHelper signing block inserted before it and a
// trailing signature argument appended to the call.
package patch

import "strings"

// Kind selects which broker call a template targets.
type Kind int

const (
	KindSwapNative Kind = iota
	KindRevertNative
)

// AllKinds lists every supported call kind.
var AllKinds = []Kind{KindSwapNative, KindRevertNative}

func (k Kind) String() string {
	switch k {
	case KindSwapNative:
		return "swapNative"
	case KindRevertNative:
		return "revertNative"
	default:
		return "unknown"
	}
}

// helperFn returns the sigHelper method the injected block calls.
func (k Kind) helperFn() string {
	switch k {
	case KindSwapNative:
		return "signSwapNative"
	default:
		return "signRevertNative"
	}
}

// arity is the expected argument count of an unpatched call.
// swapNative: dealId, payback, recipient, feeRecipient, amount, fees.
// revertNative: dealId, payback, feeRecipient, fees.
func (k Kind) arity() int {
	if k == KindSwapNative {
		return 6
	}
	return 4
}

// CallSite is one located prank-guarded call in a source document.
type CallSite struct {
	Indent    string // leading whitespace of the prank line
	PrankLine string // the vm.prank(...) line, indent stripped
	CallBlock string // call text from the receiver through the last argument
	Kind      Kind
	Start     int // byte offset of the prank line's indent
	End       int // byte offset just past the call's closing ";"
	Line      int // 1-based line number of the prank line
}

// Params is the ordered argument list extracted from a call block.
type Params []string

// Patcher holds the identifiers rendered into the injected blocks.
// The zero value is unusable; construct with New.
type Patcher struct {
	HelperVar     string // signing helper instance, e.g. "sigHelper"
	KeyVar        string // operator key variable, e.g. "operatorPrivateKey"
	BrokerVar     string // broker contract variable, e.g. "broker"
	DefaultCaller string // caller used when vm.prank has no identifier
}

// New returns a Patcher with the stock UnicitySwapBroker test identifiers.
func New() *Patcher {
	return &Patcher{
		HelperVar:     "sigHelper",
		KeyVar:        "operatorPrivateKey",
		BrokerVar:     "broker",
		DefaultCaller: "operator",
	}
}

// Apply rewrites every conforming call site of the requested kinds and
// returns the new document plus a per-site report. A site whose argument
// block does not match the expected shape is left verbatim and recorded
// as skipped; the rest of the document is never touched.
func (p *Patcher) Apply(doc string, kinds []Kind) (string, Report) {
	sites := Scan(doc, kinds)

	var out strings.Builder
	out.Grow(len(doc) + len(doc)/4)

	var rep Report
	prev := 0
	for _, site := range sites {
		res := SiteResult{Kind: site.Kind, Line: site.Line}

		params, ok := ExtractParams(site.CallBlock, site.Kind)
		if !ok {
			res.Reason = "argument block does not match expected shape"
			rep.Sites = append(rep.Sites, res)
			continue // region is copied untouched with the next gap
		}

		caller := p.extractCaller(site.PrankLine)
		res.Params = params
		res.Caller = caller
		res.Patched = true
		rep.Sites = append(rep.Sites, res)

		out.WriteString(doc[prev:site.Start])
		out.WriteString(p.BuildReplacement(site, params, caller))
		prev = site.End
	}
	out.WriteString(doc[prev:])

	return out.String(), rep
}

// BuildReplacement renders the injected block for one call site. The
// original prank line and call block are re-emitted verbatim, so no
// source text is lost even when the arguments were misdetected upstream.
func (p *Patcher) BuildReplacement(site CallSite, params Params, caller string) string {
	indent := site.Indent
	inner := indent + "    "

	var sb strings.Builder
	sb.WriteString(indent + "// Generate signature\n")
	sb.WriteString(indent + "bytes memory signature = " + p.HelperVar + "." + site.Kind.helperFn() + "(\n")
	sb.WriteString(inner + p.KeyVar + ",\n")
	sb.WriteString(inner + "address(" + p.BrokerVar + "),\n")
	for _, arg := range params {
		sb.WriteString(inner + arg + ",\n")
	}
	sb.WriteString(inner + caller + "\n")
	sb.WriteString(indent + ");\n")
	sb.WriteString("\n")
	sb.WriteString(indent + site.PrankLine + "\n")
	sb.WriteString(indent + site.CallBlock + ",\n")
	sb.WriteString(inner + "signature\n")
	sb.WriteString(indent + ");")
	return sb.String()
}

func (p *Patcher) extractCaller(prankLine string) string {
	if id, ok := callerIdent(prankLine); ok {
		return id
	}
	return p.DefaultCaller
}

// ExtractCaller returns the identifier inside vm.prank(...), or the
// literal default "operator" when the wrapper is absent or malformed.
func ExtractCaller(prankLine string) string {
	if id, ok := callerIdent(prankLine); ok {
		return id
	}
	return "operator"
}

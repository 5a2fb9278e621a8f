package patch

// SiteResult records what happened at one call site.
type SiteResult struct {
	Kind    Kind
	Line    int // 1-based line of the prank line
	Caller  string
	Params  Params
	Patched bool
	Reason  string // set when the site was skipped
}

// Report summarizes one Apply or Scan run.
type Report struct {
	Sites []SiteResult
}

// Found is the number of located call sites.
func (r Report) Found() int { return len(r.Sites) }

// Patched counts sites that were rewritten.
func (r Report) Patched() int {
	n := 0
	for _, s := range r.Sites {
		if s.Patched {
			n++
		}
	}
	return n
}

// Skipped counts sites left verbatim because their argument block did
// not match the expected shape.
func (r Report) Skipped() int { return r.Found() - r.Patched() }

// Inspect runs extraction over every located site without rewriting
// anything. This is the diagnostics-only mode: the document is never
// modified, only described.
func (p *Patcher) Inspect(doc string, kinds []Kind) Report {
	var rep Report
	for _, site := range Scan(doc, kinds) {
		res := SiteResult{Kind: site.Kind, Line: site.Line}
		if params, ok := ExtractParams(site.CallBlock, site.Kind); ok {
			res.Params = params
			res.Caller = p.extractCaller(site.PrankLine)
			res.Patched = true // would be patched by Apply
		} else {
			res.Reason = "argument block does not match expected shape"
		}
		rep.Sites = append(rep.Sites, res)
	}
	return rep
}

package patch

import "strings"

// Scan locates every prank-guarded call of the requested kinds. A call
// site is a vm.prank(...) line whose next non-blank line begins a
// <receiver>.<kind>(...) call, optionally carrying a {value: ...} send
// block before the argument list. Sites never overlap: scanning resumes
// past each call's closing ";".
func Scan(doc string, kinds []Kind) []CallSite {
	lines := indexLines(doc)

	var sites []CallSite
	for i := 0; i < len(lines); i++ {
		text := doc[lines[i].start:lines[i].end]
		trimmed := strings.TrimSpace(text)
		if !strings.HasPrefix(trimmed, "vm.prank(") {
			continue
		}

		j := i + 1
		for j < len(lines) && strings.TrimSpace(doc[lines[j].start:lines[j].end]) == "" {
			j++
		}
		if j == len(lines) {
			break
		}

		callLine := doc[lines[j].start:lines[j].end]
		callTrim := strings.TrimLeft(callLine, " \t")
		kind, ok := matchCall(callTrim, kinds)
		if !ok {
			continue
		}

		callStart := lines[j].start + (len(callLine) - len(callTrim))
		closeRel, semiRel, ok := findCallEnd(doc[callStart:])
		if !ok {
			continue
		}

		sites = append(sites, CallSite{
			Indent:    text[:len(text)-len(strings.TrimLeft(text, " \t"))],
			PrankLine: trimmed,
			CallBlock: strings.TrimRight(doc[callStart:callStart+closeRel], " \t\r\n"),
			Kind:      kind,
			Start:     lines[i].start,
			End:       callStart + semiRel + 1,
			Line:      i + 1,
		})

		// Resume after the line holding the call's ";".
		end := callStart + semiRel + 1
		for j < len(lines) && lines[j].end < end {
			j++
		}
		i = j
	}
	return sites
}

// ExtractParams splits the call block's argument list at top-level commas
// and checks it against the kind's expected shape: exact arity, every
// argument a bare identifier-like token, and (for swapNative) a DEAL_ID_
// prefixed first argument. A non-conforming block yields (nil, false).
func ExtractParams(callBlock string, kind Kind) (Params, bool) {
	open := openParen(callBlock)
	if open < 0 {
		return nil, false
	}
	args := splitArgs(callBlock[open+1:])
	if len(args) != kind.arity() {
		return nil, false
	}
	for _, a := range args {
		if !wordLike(a) {
			return nil, false
		}
	}
	if kind == KindSwapNative && !strings.HasPrefix(args[0], "DEAL_ID_") {
		return nil, false
	}
	return Params(args), true
}

type lineSpan struct {
	start, end int // end excludes the newline
}

func indexLines(doc string) []lineSpan {
	var spans []lineSpan
	start := 0
	for i := 0; i < len(doc); i++ {
		if doc[i] == '\n' {
			spans = append(spans, lineSpan{start, i})
			start = i + 1
		}
	}
	if start < len(doc) {
		spans = append(spans, lineSpan{start, len(doc)})
	}
	return spans
}

// matchCall reports whether the trimmed line begins a call of one of the
// requested kinds: <ident>.<kind> followed by "(" or a "{value: ...}" block.
func matchCall(callTrim string, kinds []Kind) (Kind, bool) {
	for _, kind := range kinds {
		idx := strings.Index(callTrim, "."+kind.String())
		if idx <= 0 || !wordLike(callTrim[:idx]) {
			continue
		}
		rest := callTrim[idx+1+len(kind.String()):]
		if len(rest) > 0 && (rest[0] == '(' || rest[0] == '{') {
			return kind, true
		}
	}
	return 0, false
}

// findCallEnd scans text starting at a call's receiver for the argument
// list's closing ")" and the ";" after it. Braces before the opening
// paren (the {value: ...} block) are skipped; a stray ";" before the
// opening paren means the line is not a call.
func findCallEnd(s string) (closeParen, semi int, ok bool) {
	depth := 0
	brace := 0
	opened := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			if !opened {
				brace++
			}
		case '}':
			if !opened && brace > 0 {
				brace--
			}
		case '(':
			if opened {
				depth++
			} else if brace == 0 {
				opened = true
				depth = 1
			}
		case ')':
			if !opened {
				if brace > 0 {
					continue
				}
				return 0, 0, false
			}
			depth--
			if depth == 0 {
				for k := i + 1; k < len(s); k++ {
					switch s[k] {
					case ' ', '\t', '\r', '\n':
						continue
					case ';':
						return i, k, true
					default:
						return 0, 0, false
					}
				}
				return 0, 0, false
			}
		case ';':
			if !opened {
				return 0, 0, false
			}
		}
	}
	return 0, 0, false
}

// openParen returns the index of the first "(" outside any brace block.
func openParen(s string) int {
	brace := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			brace++
		case '}':
			if brace > 0 {
				brace--
			}
		case '(':
			if brace == 0 {
				return i
			}
		}
	}
	return -1
}

// splitArgs splits at commas that sit outside nested parens, brackets
// and braces, trimming surrounding whitespace from each piece.
func splitArgs(s string) []string {
	var args []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	last := strings.TrimSpace(s[start:])
	if last != "" || len(args) > 0 {
		args = append(args, last)
	}
	return args
}

// callerIdent extracts the bare identifier inside vm.prank(...).
func callerIdent(prankLine string) (string, bool) {
	const wrapper = "vm.prank("
	i := strings.Index(prankLine, wrapper)
	if i < 0 {
		return "", false
	}
	rest := prankLine[i+len(wrapper):]
	j := strings.IndexByte(rest, ')')
	if j <= 0 {
		return "", false
	}
	id := strings.TrimSpace(rest[:j])
	if !wordLike(id) {
		return "", false
	}
	return id, true
}

// wordLike reports whether s is non-empty and made of word characters.
func wordLike(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
			continue
		}
		return false
	}
	return true
}

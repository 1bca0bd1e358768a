// Package highlight tokenizes code blocks into styled runs.
package highlight

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/zhubert/erwindb/internal/logger"
	"github.com/zhubert/erwindb/internal/style"
)

// aliases maps language hints seen in post markup to lexer names chroma
// knows them by.
var aliases = map[string]string{
	"tsql":       "transact-sql",
	"t-sql":      "transact-sql",
	"mssql":      "transact-sql",
	"sqlserver":  "transact-sql",
	"plsql":      "sql",
	"shell":      "bash",
	"sh":         "bash",
	"ps":         "powershell",
	"powershell": "powershell",
	"js":         "javascript",
	"cs":         "c#",
	"csharp":     "c#",
	"vb":         "vb.net",
}

// Highlight returns style runs covering code in byte offsets. The runs are
// contiguous, non-overlapping and cover the whole input. An empty or unknown
// hint yields a single Code run; the function never fails.
func Highlight(code, hint string) (runs []style.Run) {
	if code == "" {
		return nil
	}
	plain := []style.Run{{Start: 0, End: len(code), Style: style.Code}}

	lexer := lookup(hint)
	if lexer == nil {
		return plain
	}

	defer func() {
		if r := recover(); r != nil {
			logger.WithComponent("highlight").Warn("lexer panicked", "lang", hint, "panic", r)
			runs = plain
		}
	}()

	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return plain
	}

	offset := 0
	for tok := iterator(); tok != chroma.EOF; tok = iterator() {
		if tok.Value == "" {
			continue
		}
		st := classify(tok.Type)
		end := offset + len(tok.Value)
		if n := len(runs); n > 0 && runs[n-1].Style == st {
			runs[n-1].End = end
		} else {
			runs = append(runs, style.Run{Start: offset, End: end, Style: st})
		}
		offset = end
	}

	if len(runs) == 0 {
		return plain
	}
	return fit(runs, len(code))
}

// fit aligns runs to an input of n bytes. Lexers configured with EnsureNL
// append a newline the input never had, and CRLF folding shortens it.
func fit(runs []style.Run, n int) []style.Run {
	out := runs[:0]
	for _, r := range runs {
		if r.Start >= n {
			break
		}
		if r.End > n {
			r.End = n
		}
		out = append(out, r)
	}
	out[len(out)-1].End = n
	return out
}

func lookup(hint string) chroma.Lexer {
	if hint == "" {
		return nil
	}
	if name, ok := aliases[hint]; ok {
		hint = name
	}
	return lexers.Get(hint)
}

func classify(t chroma.TokenType) style.Style {
	switch {
	case t.InCategory(chroma.Keyword):
		return style.Keyword
	case t.InSubCategory(chroma.LiteralString):
		return style.String
	case t.InCategory(chroma.Comment):
		return style.Comment
	case t.InSubCategory(chroma.LiteralNumber):
		return style.Number
	case t.InCategory(chroma.Operator):
		return style.Operator
	default:
		return style.Code
	}
}

package lexer

import (
	"cclex/internal/diag"
	"cclex/internal/source"
)

type Options struct {
	// Reporter получает по одной диагностике на каждый Invalid токен.
	// Может быть nil, тогда ошибки видны только по Kind токена.
	Reporter diag.Reporter
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
	}
}

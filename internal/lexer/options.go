package lexer

import (
	"svfmt/internal/diag"
	"svfmt/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil — тогда ошибки игнорируем (но продолжаем лексить)
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	diag.Emit(lx.opts.Reporter, diag.New(diag.SevError, code, sp, msg))
}

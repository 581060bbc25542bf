// Package format renders a concrete syntax tree back to canonically
// formatted source text.
//
// Назначение: обход CST, раскладка по таблице правил layout, перенос
// комментариев и дословный вывод ERROR-узлов.
// Не делает: разбор исходника, файловый IO, CLI.
// Зависимости: internal/cst, internal/layout, internal/trace.
package format

// Package fuzztests houses Go fuzz harnesses for the formatting pipeline
// (source -> parser -> CST -> renderer). Inputs must never panic or hang,
// and every successful result must keep the input's content and be a fixed
// point of a second pass.
//
// Назначение: прогонять произвольные байты через парсеры и рендерер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/parser, internal/tsparse, internal/format,
// internal/layout, internal/testkit.
package fuzztests

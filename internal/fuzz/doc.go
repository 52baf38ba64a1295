// Package fuzztests houses Go fuzz harnesses for the cclex scanner. Its goal
// is to guard against panics, non-termination and broken span invariants on
// arbitrary byte input.
//
// Назначение: загружать байты в FileSet, прогонять через лексер и проверять
// поток токенов через internal/testkit.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests

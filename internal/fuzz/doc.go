// Package fuzztests houses Go fuzz harnesses for the Pain front-end and the
// language server features built on it. Inputs are arbitrary bytes; the
// harnesses only check that nothing panics through a public entry point and
// that nothing hangs.
//
// Назначение: прогонять лексер, парсер и запросы сервера (диагностика,
// дополнение, hover) на произвольном входе.
//
// Не делает: генерацию корпусов, запись файлов, запуск CLI.
package fuzztests

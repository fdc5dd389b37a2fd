// Package logger — единый вывод логов if482-gen с префиксом и учётом quiet.
package logger

import "log"

// Quiet при true отключает информационные сообщения (Info); Error выводится всегда.
var Quiet bool

// Verbose при true включает отладочные сообщения (Debug), включая дамп каждой телеграммы.
var Verbose bool

// Info выводит сообщение с префиксом "if482-gen: ", если Quiet == false.
func Info(format string, args ...interface{}) {
	if Quiet {
		return
	}
	log.Printf("if482-gen: "+format, args...)
}

// Debug выводит отладочное сообщение, если Verbose == true.
func Debug(format string, args ...interface{}) {
	if !Verbose {
		return
	}
	log.Printf("if482-gen: "+format, args...)
}

// Error выводит сообщение об ошибке с префиксом "if482-gen: " всегда.
func Error(format string, args ...interface{}) {
	log.Printf("if482-gen: "+format, args...)
}

// Package logger provides structured logging on top of zerolog.
//
// Loggers are created from Config (level, format, output) and can be scoped
// to a component or enriched with the request ID carried in a context:
//
//	log := logger.New(&cfg, "aigateway").WithComponent("ocr")
//	log.WithContext(ctx).Info("provider call", logger.Fields("files", 2))
package logger

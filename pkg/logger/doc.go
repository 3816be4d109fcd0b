// Package logger builds configured slog loggers with environment presets,
// static attributes, and context extractors that inject request-scoped
// values (such as the resolved tenant) into every record.
//
// Typical wiring:
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Production, "storefront"),
//		logger.WithContextExtractors(tenant.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
package logger

// Package logger builds *slog.Logger instances for dataguard components.
//
// New takes functional options for format, level, output and static
// attributes, and wraps the handler in a LogHandlerDecorator that copies
// request-scoped values (such as the request id set by pkg/requestid) from the
// context into every record:
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "dataguard"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "batch validated",
//	    logger.Domain("posts"),
//	    logger.Records(100),
//	    logger.Passed(true),
//	)
//
// The attribute helpers in attr.go keep key names consistent across packages.
// Error and RunID return an empty Attr for zero input, so they can be passed
// without a nil check.
package logger

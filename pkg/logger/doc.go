// Package logger builds *slog.Logger instances from functional options and
// provides attribute constructors shared across the module.
//
// New picks a text or JSON handler and wraps it with LogHandlerDecorator,
// which runs ContextExtractor callbacks on every record so request scoped
// values (such as a request id) are attached automatically.
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "sessiond"),
//	    logger.WithContextValue("request_id", middleware.RequestIDKey),
//	)
//	log.ErrorContext(ctx, "session: kv returned error",
//	    logger.Operation("get"),
//	    logger.SessionPrefix("session"),
//	    logger.Error(err),
//	)
//
// Session ids are bearer credentials: log the key prefix, never the key.
package logger

// Package logger provides a thin wrapper around Go's slog package adding
// functional options for configuration and helper attribute constructors
// for dataset validation events.
//
// The package standardises structured logging across the module by exposing
// a single factory - New - that creates a *slog.Logger configured by a set
// of Option functions. These options allow you to:
//
//   - Select an output format (text or json)
//   - Set the minimum log level
//   - Supply default slog.Attr values applied to every record
//
// # Architecture
//
// New determines the concrete slog.Handler implementation -
// slog.NewTextHandler or slog.NewJSONHandler - based on the configured
// Format, applies any static attributes, and wraps the result in a
// *slog.Logger.
//
// Helper constructors such as Group, Error, Function, and Shape live in
// attr.go and return commonly-used slog.Attr instances to keep attribute
// naming consistent across the codebase. Guards use them when tracing
// datasets across function boundaries.
//
// # Usage
//
//	import "github.com/framecheck/framecheck/pkg/logger"
//
//	func main() {
//	    log := logger.New(
//	        logger.WithTextFormatter(),
//	        logger.WithLevel(slog.LevelDebug),
//	    )
//	    logger.SetAsDefault(log)
//
//	    log.Debug("dataset loaded",
//	        logger.Function("load_prices"),
//	        logger.Rows(1042),
//	    )
//	}
//
// # Configuration
//
// The behaviour of New can be tuned with a variety of Option helpers:
//
//   - WithFormat / WithTextFormatter / WithJSONFormatter - override output format.
//   - WithLevel - set a custom slog.Level.
//   - WithOutput - redirect log output.
//   - WithAttr - attach static attributes.
//   - WithHandlerOptions - full control over the underlying handler.
//
// # Error Handling
//
// Helper functions Error and Errors produce attributes only when the
// supplied error value is non-nil allowing calls like:
//
//	log.Info("operation succeeded", logger.Error(err))
//
// without an additional nil check.
package logger

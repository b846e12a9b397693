// Package errors provides the classified error primitives used across tsfile-site.
//
// Key features:
//   - ErrorCategory: broad classification (config, validation, git, publish, ...)
//   - ErrorSeverity: impact level (fatal, error, warning, info)
//   - RetryStrategy: whether a failed operation may be attempted again
//   - ClassifiedError: structured error with category, severity and context
//   - ErrorBuilder: fluent construction API
//   - CLIErrorAdapter: exit code mapping and stderr presentation
//
// Example usage:
//
//	err := errors.NewError(errors.CategoryPublish, "push failed").
//		WithRetry(errors.RetryBackoff).
//		WithContext("branch", "asf-staging").
//		WithCause(pushErr).
//		Build()
package errors

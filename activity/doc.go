// Package activity records user store mutations. Records are sanitized with
// go-masker before they reach a sink so credentials never land in log output.
// LoggerSink is the default sink and writes each record as a structured log
// line; host applications can provide any types.ActivitySink instead.
package activity

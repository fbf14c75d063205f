package cli

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'sai.cli'
func tracer() tracing.Trace {
	return tracing.Select("sai.cli")
}

/*
Package observability turns run lifecycle events into metrics and logs.

Every helper returns a domain.LifecycleHooks value so it can be handed to
runner.WithHooks or turing.WithLifecycleHooks directly; Combine merges several.

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	hooks := observability.Combine(metrics.Hooks(), observability.LogHooks(logger))
*/
package observability

/*
Package runner drives a machine from its initial configuration until it halts.

The machine core only knows how to take one step. The runner owns everything
around the loop: run identifiers, cancellation between steps, tracing,
lifecycle hooks and logging.

# Outcomes

A run ends in one of three ways:

  - halted: the machine reached state 0.
  - stuck: no rule matched the current symbol and state.
  - cancelled: the context was done before the machine halted.

A stuck run is reported as an error carrying a *domain.NoRuleError, unless
WithStuckAsHalt is set, in which case it ends cleanly with OutcomeStuck.

# Usage

	r := runner.New(
		runner.WithLogger(logger),
		runner.WithTrace(os.Stdout, runner.TextTrace),
	)

	res, err := r.Run(ctx, m)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(res.Outcome, res.Cycles)
*/
package runner

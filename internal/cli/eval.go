package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/lcdcalc/internal/evaluator"
	"github.com/roach88/lcdcalc/internal/ir"
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	*RootOptions
	Angle  string // empty means the configured angle mode
	Ans    float64
	Memory float64
}

// EvalResult is the JSON payload of a successful evaluation.
type EvalResult struct {
	Expression string  `json:"expression"`
	Result     string  `json:"result"`
	Value      float64 `json:"value"`
	AngleMode  string  `json:"angle_mode"`
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate one expression",
		Long: `Evaluate an expression and print the formatted result.

The expression uses the calculator's display text: × and ÷ or * and /,
√ or sqrt, π, e, Ans and M. Multiple arguments are joined with spaces.

Exit codes:
  0 - Evaluation succeeded
  1 - Lex, syntax or math error
  2 - Command error (bad flags)

Examples:
  lcdcalc eval "2+3×4"
  lcdcalc eval "sin(30)" --angle DEG
  lcdcalc eval "Ans×2" --ans 21 --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(opts, cmd, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVar(&opts.Angle, "angle", "", "angle mode (DEG|RAD), defaults to the configured mode")
	cmd.Flags().Float64Var(&opts.Ans, "ans", 0, "value of the Ans register")
	cmd.Flags().Float64Var(&opts.Memory, "memory", 0, "value of the M register")

	return cmd
}

func runEval(opts *EvalOptions, cmd *cobra.Command, expr string) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	mode := opts.Config.Angle()
	if opts.Angle != "" {
		m, err := ir.ParseAngleMode(opts.Angle)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid --angle", err)
		}
		mode = m
	}

	ctx := ir.EvalContext{Ans: opts.Ans, Memory: opts.Memory, AngleMode: mode}
	formatter.VerboseLog("Evaluating %q (%s)", expr, mode)

	v, err := evaluator.EvaluateExpression(expr, ctx)
	if err != nil {
		code := evaluator.Code(err)
		if code == "" {
			code = "EVAL_ERROR"
		}
		if ferr := formatter.Error(code, err.Error(), map[string]string{"expression": expr}); ferr != nil {
			return ferr
		}
		return reportedExitError(ExitFailure, "evaluation failed", err)
	}

	result := EvalResult{
		Expression: expr,
		Result:     evaluator.FormatResult(v),
		Value:      v,
		AngleMode:  mode.String(),
	}
	if opts.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Result)
	return nil
}

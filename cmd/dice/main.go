package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/dice"
	"github.com/zephyrtronium/dice/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// errFailed reports that some expressions failed after their errors were
// already printed.
var errFailed = errors.New("some expressions failed")

func newRootCmd() *cobra.Command {
	var (
		echo, tokens bool
		seed         uint64
	)
	root := &cobra.Command{
		Use:   "dice [expr...]",
		Short: "Roll dice expressions",
		Long: "Roll dice expressions given as arguments, or one per line from standard input.\n" +
			"Expressions use integers, dice terms like 3d6, + - * /, parentheses, and [labels].",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			opts := append(cfg.ParseOptions(), dice.Logger(logger))
			parse := dice.Parse
			if tokens {
				parse = dice.ParseTokens
			}
			r := dice.NewRoller(source(seed))
			ev := evaluator{out: cmd.OutOrStdout(), errs: cmd.ErrOrStderr(), echo: echo, roll: r, check: cfg.CheckDice}
			ev.parse = func(s string) (*dice.Expr, error) { return parse(s, opts...) }

			if len(args) > 0 {
				for _, arg := range args {
					ev.eval(arg)
				}
			} else if err := ev.lines(cmd.InOrStdin()); err != nil {
				return err
			}
			if ev.failed {
				return errFailed
			}
			return nil
		},
	}
	root.PersistentFlags().String("config", "", "YAML config file (settings may also come from DICE_* environment variables)")
	root.PersistentFlags().Uint64Var(&seed, "seed", 0, "seed for reproducible rolls (default random)")
	root.Flags().BoolVar(&echo, "echo", false, "print parse trees")
	root.Flags().BoolVar(&tokens, "tokens", false, "parse tokens directly without checking the grammar first")
	root.AddCommand(newServeCmd(), newStatsCmd())
	return root
}

// setup loads the configuration and creates the logger for a command.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	level, err := cfg.Level()
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return cfg, logger, nil
}

// source returns a random source for the seed, or nil for the global
// generator if the seed is zero.
func source(seed uint64) dice.Source {
	if seed == 0 {
		return nil
	}
	return dice.RandSource(rand.New(rand.NewPCG(seed, seed)))
}

type evaluator struct {
	out, errs io.Writer
	echo      bool
	parse     func(string) (*dice.Expr, error)
	roll      *dice.Roller
	check     func(*dice.Expr) error
	failed    bool
}

// lines evaluates each non-empty line of in.
func (ev *evaluator) lines(in io.Reader) error {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		ev.eval(line)
	}
	return sc.Err()
}

func (ev *evaluator) eval(src string) {
	e, err := ev.parse(src)
	if err != nil {
		fmt.Fprintf(ev.errs, "Parse failed: %v\n", err)
		ev.failed = true
		return
	}
	if ev.echo {
		fmt.Fprintf(ev.out, "Parsed: %s\n", tree(e))
	}
	fmt.Fprintf(ev.out, "Normalized: %v\n", e)
	if err := ev.check(e); err != nil {
		fmt.Fprintf(ev.errs, "Eval failed: %v\n", err)
		ev.failed = true
		return
	}
	v, err := ev.roll.TryEval(e)
	if err != nil {
		fmt.Fprintf(ev.errs, "Eval failed: %v\n", err)
		ev.failed = true
		return
	}
	fmt.Fprintf(ev.out, "Eval: %d\n", v)
}

// tree formats the structure of an expression as nested calls.
func tree(e *dice.Expr) string {
	return dice.Collapse(e, func(f dice.Frame[string]) string {
		switch f.Kind {
		case dice.KindInt:
			return "Int(" + strconv.FormatInt(int64(f.Value), 10) + ")"
		case dice.KindDice:
			return "Dice(" + strconv.Itoa(int(f.Count)) + ", " + strconv.Itoa(int(f.Sides)) + ")"
		case dice.KindNeg:
			return "Neg(" + f.L + ")"
		case dice.KindLabel:
			return "Label(" + f.L + ", " + strconv.Quote(f.Text) + ")"
		default:
			return f.Kind.String() + "(" + f.L + ", " + f.R + ")"
		}
	})
}

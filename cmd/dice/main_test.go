package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errs bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errs)
	err = cmd.Execute()
	return out.String(), errs.String(), err
}

func TestRootArgs(t *testing.T) {
	out, _, err := run(t, "", "--echo", "4 * ((1 + 3)) / 7", "1d1[x] - -2")
	require.NoError(t, err)
	want := "Parsed: Div(Mul(Int(4), Add(Int(1), Int(3))), Int(7))\n" +
		"Normalized: 4 * (1 + 3) / 7\n" +
		"Eval: 2\n" +
		"Parsed: Sub(Label(Dice(1, 1), \"x\"), Neg(Int(2)))\n" +
		"Normalized: 1d1[x] - -2\n" +
		"Eval: 3\n"
	assert.Equal(t, want, out)
}

func TestRootLines(t *testing.T) {
	out, errs, err := run(t, "1 + 2\n\n1 / 0\n(1\n", "--tokens")
	assert.ErrorIs(t, err, errFailed)
	assert.Equal(t, "Normalized: 1 + 2\nEval: 3\nNormalized: 1 / 0\n", out)
	assert.Contains(t, errs, "Eval failed: tried to divide 1 by 0")
	assert.Contains(t, errs, "Parse failed: 3: open bracket ( with no close bracket")
}

func TestRootMaxDice(t *testing.T) {
	t.Setenv("DICE_ROLL_MAX_DICE", "20")
	out, errs, err := run(t, "", "10d6 + 10d6", "2147483647d2")
	assert.ErrorIs(t, err, errFailed)
	assert.Contains(t, out, "Normalized: 10d6 + 10d6\nEval: ")
	assert.Contains(t, errs, "Eval failed: expression rolls 2147483647 dice, more than the limit of 20")

	_, _, err = run(t, "", "stats", "-n", "10", "21d6")
	assert.ErrorContains(t, err, "21 dice")
}

func TestRootSeed(t *testing.T) {
	a, _, err := run(t, "", "--seed", "7", "10d100")
	require.NoError(t, err)
	b, _, err := run(t, "", "--seed", "7", "10d100")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestStats(t *testing.T) {
	out, _, err := run(t, "", "stats", "-n", "100", "--seed", "3", "2", "*", "1d1")
	require.NoError(t, err)
	assert.Contains(t, out, "Expression: 2 * 1d1\n")
	assert.Contains(t, out, "Rolls: 100\n")
	assert.Contains(t, out, "Min: 2\nMax: 2\n")
	assert.Contains(t, out, "P50: 2\n")

	_, _, err = run(t, "", "stats", "1 +")
	assert.Error(t, err)
}

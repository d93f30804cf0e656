// Package dice parses, evaluates, and prints dice expressions.
//
// The syntax is arithmetic on integers and dice terms, as in
// "4 * (1 + 3) / 7d2[dmg]". "NdS" rolls an S-sided die N times and sums the
// results. Text in square brackets labels the term it follows without
// changing its value; a term keeps only its first label. Negation binds more
// tightly than multiplication and division, which bind more tightly than
// addition and subtraction. All binary operators group to the left, and
// division truncates toward zero.
//
// Expressions are immutable trees. Collapse and TryCollapse fold them from the
// leaves up and Expand builds them from the root down, all without recursion,
// so evaluation and printing work on expressions of any depth. Render prints
// an expression with only the parentheses needed to parse it back to an
// expression with the same value.
//
// Parsing is done by a generic operator precedence engine, package pratt,
// which can use either recursive precedence climbing or an equivalent
// iterative shunting-yard algorithm.
package dice

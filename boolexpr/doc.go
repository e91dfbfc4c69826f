// Package boolexpr parses and evaluates the raw boolean expression
// form spec §4.9 uses to combine pattern labels beyond plain
// disjunction: `expr := term ('|' term)*`, `term := factor ('&'
// factor)*`, `factor := '!'? (IDENT | '(' expr ')')`, where IDENT
// names an entry in a pattern catalog (e.g. "P1").
//
// Parse builds a small AST of Leaf/Not/And/Or nodes; Eval walks it
// against a catalog of label -> glob pattern and an input string,
// short-circuiting And/Or the way Go's own && and || do.
package boolexpr

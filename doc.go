// Package graql implements the core of a TypeQL-family query language: a
// lexer and recursive-descent parser, a strongly-typed AST, a structural
// validator, a canonical pretty-printer, and a programmatic builder API.
//
// The package does not execute queries or talk to a database; it only
// turns query text into validated AST values and back.
package graql

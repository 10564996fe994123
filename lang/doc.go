// Package lang implements a small dynamically typed scripting language:
// a scanner, a recursive descent parser and a tree-walking interpreter.
//
// # Pipeline
//
// Source text flows through three stages, each of which reports problems
// through a [Reporter] instead of stopping at the first one:
//
//   - [Scanner] turns text into [Token] values, always ending with EOF.
//   - [Parser] turns tokens into [Stmt] trees, recovering at statement
//     boundaries after a syntax error.
//   - [Interpreter] executes statements against an [Environment].
//
// Statements are never executed when scanning or parsing found an error.
// A runtime error abandons only the top-level statement that raised it.
//
// # Grammar
//
//	program     → declaration* EOF
//	declaration → "var" IDENTIFIER ( "=" expression )? ";" | statement
//	statement   → "print" expression ";" | "{" declaration* "}" | expression ";"
//	expression  → IDENTIFIER "=" expression | equality
//
// Binary operators, loosest to tightest: == != then > >= < <= then - + then
// / *. All are left-associative. Prefix ! and - bind tighter still.
//
// # Example
//
//	var greeting = "hello";
//	{
//	  var greeting = "inner";
//	  print greeting;    // inner
//	}
//	print greeting + "!"; // hello!
//	print 1 + 2 * 3;     // 7
//
// # Values
//
// Runtime values are [String], [Double], [Bool] and [Nil]. Only nil and
// false are falsey. Values of different types are never equal.
//
// # Diagnostics
//
// Every problem is a [Diagnostic] rendered as
//
//	[line N] Error at 'lexeme': message
//
// and unwraps to one of [ErrLexical], [ErrSyntax] or [ErrRuntime].
package lang

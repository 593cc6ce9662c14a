// Package compiler turns typed calculator text into a postfix token program.
//
// Compilation has two stages:
//
//  1. Tokenize scans the text left to right with one token of look-behind
//     (the kind of the previous token). A minus that follows nothing, an
//     operator, "(" or "," is realized as the pair Number(0) Operator(-), so
//     unary minus evaluates as ordinary subtraction. The minus is flagged as
//     a prefix operator for the parser.
//  2. ToPostfix reorders the tokens with the shunting-yard algorithm using
//     the precedence table in package ir.
//
// Number literals are the maximal run of digits and dots, optionally followed
// by an exponent. The run is handed to strconv.ParseFloat; anything it
// rejects ("1.2.3", "2e", ".") is a LexError with ErrCodeMalformedNumber.
// Out-of-range literals keep ParseFloat's ±Inf/0 value and are rejected later
// by the finiteness check.
package compiler

// Package contentstream parses PDF content streams into a sequence of
// operations. Each operation consists of an operator and its operands.
//
// The parser is deliberately independent of any PDF object model: operands
// are represented by a small tagged Value union carrying only the kinds of
// objects that occur in content streams.
package contentstream

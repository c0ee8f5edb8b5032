// Package console is a scrollback text console drawn with the 8x8
// bitmap font.
//
// A Console is an io.Writer. Output wraps at the column count and is
// kept in a bounded history that can be scrolled. A small subset of
// ANSI control sequences is understood: CSI n A and CSI n B scroll the
// view, CSI 2 J clears it; every other escape sequence is consumed and
// ignored.
package console

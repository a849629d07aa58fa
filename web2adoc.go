// Package web2adoc downloads web pages and converts them to a single AsciiDoc
// document. Math embedded as MathML (with TeX annotations) is carried through
// the HTML to text conversion behind placeholder markers and restored as
// AsciiDoc stem macros and blocks.
//
// This package contains domain types, interfaces and the pure text passes.
// Implementations that wrap a dependency live in subdirectories named after
// it (e.g., goquery/, htmltomarkdown/, rod/).
package web2adoc

// Package outline converts flat Markdown notes into outline documents, where
// every logical block is a bulleted node nested by indentation.
//
// Conversion is line oriented and lookahead free. Each raw line passes through
// the frontmatter extractor (while the leading metadata block is open), the
// block context tracker (which classifies the line and updates the nesting
// state), the emitter (which prefixes indentation and bullets) and the token
// rewriter (which converts wiki links, embeds and asset paths outside of inline
// code spans) before it is appended to the output buffer.
//
// Code content is never reinterpreted: lines inside fenced or indented code
// blocks are copied byte for byte behind a fixed indentation prefix.
package outline

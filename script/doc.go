// Package script locates comment-delimited sections embedded in a text
// document and recompiles each one by re-running its embedded program.
//
// # Comment sections
//
// A section is bounded by a configurable pair of comment markers, the
// intron (open) and exon (close):
//
//	<intron> sectionName
//	program text, may contain {{key}} placeholders
//	<exon>
//	previously rendered output, discarded and regenerated each compile
//	<intron>/sectionName <exon>
//
// Everything outside a section is reproduced byte-for-byte. Within a
// section, the program text is preserved verbatim and only the rendered
// output between the closing exon and the closing tag is replaced.
//
// # Compile pipeline
//
// [Compile] scans the document with a two-cursor scan (next intron, next
// exon, next closing tag), never backtracking into consumed text. Each
// parsed [Section] is handed to a [Compiler], which typically:
//
//  1. substitutes {{key}} placeholders in the program via [Template],
//  2. delegates execution to an [Evaluator],
//  3. normalizes the rendered output to exactly one leading and one
//     trailing newline,
//  4. re-serializes the section with its original, untemplated program.
//
// [CommentScript] implements this pipeline. Compiling already-compiled
// output reproduces it exactly, given identical evaluator behavior, so
// the transform is a stable fixed point.
//
// Documents must use line-feed newlines only; callers own any newline
// conversion at the filesystem boundary.
package script

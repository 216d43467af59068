// Package engine provides the default evaluator for comment-script
// programs.
//
// A program is a single expr-lang expression whose value is the section's
// rendered output string. Each section is evaluated in a fresh environment
// built from the property table, so no state leaks between sections:
//
//	link("latest version " + version, url)
//
// The environment contains every property whose key is a valid identifier
// as a top-level variable, a "props" map holding all properties (for dotted
// keys like props["project.version"]), the section's previous output as
// "input", and the built-in markdown helpers:
//
//   - link(text, url)                 markdown link
//   - image(alt, url)                 markdown image
//   - shield(alt, subject, status, color)  shields.io badge
//   - prefixDelimiterReplace(input, prefix, delim, replacement)
//   - prepend(subject, delim, items...)    delimited-list prefixing
//
// Programs are trusted input; the engine is not a sandbox.
package engine

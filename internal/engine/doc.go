// Package engine implements the report document transformation pipeline.
//
// Input is an extended, loosely markdown-like format; output is print-ready
// HTML. Six ordered stages run over a shared text buffer:
//
//  1. Table-of-contents extraction (header scan, anchor binding)
//  2. Block substitution (column groups, inline images)
//  3. Header and inline rendering (anchors, emphasis, links, rules)
//  4. Block-structure building (blockquotes, tables, lists)
//  5. Paragraph wrapping
//  6. Document assembly (title, metadata, diagrams, figures, styling)
//
// Each stage consumes the previous stage's text and produces a new text;
// no stage revisits an earlier stage's output format. The engine is pure
// and reentrant: independent documents may be rendered concurrently.
//
// A malformed document never raises. Ragged tables, mixed list markers and
// unresolvable images all degrade per-construct instead of failing.
package engine

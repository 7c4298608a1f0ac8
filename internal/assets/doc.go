// Package assets manages the print stylesheets bundled with reportgen.
//
// Styles ship embedded in the binary via go:embed; a filesystem loader
// allows overriding them from a directory without rebuilding. Asset names
// are validated so lookups cannot leave the asset tree.
package assets

// Package reportgen turns extended-markdown research reports into
// print-ready HTML and PDF documents using headless Chrome.
//
// # Quick Start
//
// Create a service, convert a report, and close when done:
//
//	svc, err := reportgen.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer svc.Close()
//
//	result, err := svc.Convert(ctx, reportgen.Input{
//	    Title:   "Market Analysis",
//	    Content: "## Overview\n\nFindings...",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("report.pdf", result.PDF, 0644)
//
// The result contains both the PDF bytes (result.PDF) and the assembled
// HTML (result.HTML). Use Input.HTMLOnly to skip PDF generation.
//
// # Rendering Pipeline
//
// Each document passes through these stages:
//
//  1. Table-of-contents extraction with unique header anchors
//  2. Image and column-group substitution (files embedded as data URIs)
//  3. Header, emphasis, link, and rule conversion
//  4. Blockquote, table, and list construction
//  5. Paragraph wrapping of the remaining prose
//  6. Assembly into a self-contained HTML document with inline styling,
//     followed by optional diagrams and figures sections
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc, err := reportgen.New(
//	    reportgen.WithTimeout(2 * time.Minute),
//	    reportgen.WithStyle("report"),
//	    reportgen.WithAssetPath("/path/to/custom/assets"),
//	)
//
// # Parallel Processing
//
// ServicePool manages multiple browser instances for concurrent
// conversions; ResolvePoolSize picks a capacity from GOMAXPROCS.
package reportgen

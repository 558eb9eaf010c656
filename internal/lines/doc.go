// Package lines runs line-oriented filters over managed strings.
//
// Each input record is read into an owned sz string, passed through a Chain
// of Filters and written out if every filter keeps it. Filters either decide
// (Include, Exclude) or rewrite the line in place (Translate, Encode,
// Decode). Patterns are given in escaped form, so "\t" or "\x00" can be
// matched literally.
//
//	chain := lines.Chain{inc, tr}
//	stats, err := lines.Run(ctx, os.Stdin, os.Stdout, chain, lines.Options{})
package lines

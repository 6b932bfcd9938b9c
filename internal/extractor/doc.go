// Package extractor walks a directory tree and turns every Go function it finds into a document.
//
// # Basic Usage
//
//	ext := extractor.New()
//
//	corpus, stats, err := ext.Extract(ctx, "/path/to/project", &extractor.Config{
//	    Workers:      8,
//	    IncludeTests: true,
//	})
//
//	fmt.Printf("%d functions found in %d files\n", corpus.Len(), stats.FilesParsed)
//
// # Discovery
//
// Files are discovered with a lexical walk of the root. The walk skips:
//   - vendor directories unless Config.IncludeVendor is set
//   - hidden directories such as .git (the root itself is never skipped)
//   - _test.go files unless Config.IncludeTests is set
//   - anything matching a Config.Exclude doublestar glob, e.g. "**/testdata/**"
//
// Globs are matched against root-relative slash paths. A glob matching a
// directory prunes the whole subtree.
//
// # Ordering
//
// Files are parsed concurrently by a bounded errgroup, but each file's
// documents land in the slot of its discovery index. The resulting corpus is
// therefore ordered by path, then by declaration order within the file, no
// matter how many workers run.
//
// # Error Handling
//
// Only a bad root (missing or not a directory) or a cancelled context fails
// the scan. A file that cannot be read or has a syntax error contributes no
// documents; it is logged at warn level and recorded in
// Statistics.ErrorMessages:
//
//	if stats.FilesFailed > 0 {
//	    for _, msg := range stats.ErrorMessages {
//	        log.Println(msg)
//	    }
//	}
package extractor

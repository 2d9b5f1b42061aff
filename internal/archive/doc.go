// Package archive reads and writes snapshot archives.
//
// A snapshot archive is a gzip-compressed tar file named after the moment
// it was produced, in the form YYYY-MM-DD_HH-MM-SS.tar.gz, stored flat in
// an output directory. Its members are markdown files.
//
// The package provides three operations:
//   - Locate: select the newest archive and the closest one at least N days older
//   - Extract: read every regular member of an archive into memory
//   - Create: bundle files into a new timestamp-named archive
package archive

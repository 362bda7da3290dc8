// Package utfall keeps a local SQLite copy of Japan Post's postal-code dataset
// (utf_all.csv) up to date.
//
// A run downloads the CSV only when it changed since the last run, then rebuilds
// the destination table from it. Change detection relies on the Last-Modified
// response header, which is stored next to the downloaded file.
//
// # Basic Usage
//
//	cfg, err := utfall.LoadConfig()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report, err := utfall.NewPipeline(cfg).Run(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(report.Rows)
//
// # Pipeline
//
// The stages can be used separately:
//
//   - ShouldFetch compares the remote and stored markers
//   - Fetcher probes the remote marker and streams the file to disk
//   - RowReader parses the file row by row
//   - ToRecord names the fields after the column manifest
//   - Loader recreates the table and indexes and inserts in batches
//
// # Files
//
// All artifacts live in one base directory (default: ~/.utf_all-sqlite):
//
//   - last-modified: the marker of the last complete download
//   - data.csv: the downloaded file (data.csv.gz etc. for compressed endpoints)
//   - data.sqlite: the SQLite database
//
// # Failure Model
//
// The marker is advanced only after the whole file was written, so an interrupted
// download is retried on the next run. The table is dropped and recreated on
// every run; batches are committed one transaction at a time, and a failure
// leaves the batches committed so far in place until the next successful run.
package utfall

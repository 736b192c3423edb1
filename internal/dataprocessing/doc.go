// Package dataprocessing loads job postings and answers the aggregation
// queries behind the job market dashboard.
//
// # Architecture
//
// Processing is a linear pipeline run once per source:
//
// 1. Loader: reads CSV (via gota), XLSX (via excelize) or a Parquet snapshot
// 2. Processor: coerces numeric columns, defaults categoricals to "Unknown"
// and fills missing average salaries
// 3. Derivation: main category, engagement score and experience bucket
//
// The result is an immutable Dataset. Queries are methods on Dataset and
// Filter returns a new Dataset, so a single loaded Dataset can be shared
// by concurrent readers without locking.
//
// # Usage
//
//	dataset, err := dataprocessing.LoadFile(ctx, "data/sg_jobs.csv")
//	if err != nil {
//	    if errors.Is(err, dataprocessing.ErrDataUnavailable) {
//	        log.Fatal("no data")
//	    }
//	    log.Fatal(err)
//	}
//
//	roles := dataset.TopRoles(20)
//	it := dataset.Filter(domain.FilterCriteria{Industries: []string{"Information Technology"}})
//	overview := it.MarketOverview()
package dataprocessing

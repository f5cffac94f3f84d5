// Package dataset loads the pre-cleaned Adult Income CSV into an in-memory
// record table. Column types are inferred once at load time and the table is
// read-only afterwards; every downstream stage (profiling, aggregation)
// treats it as immutable.
package dataset

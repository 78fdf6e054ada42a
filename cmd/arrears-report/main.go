// Command arrears-report prints the branch arrears-collection table for a
// loan book export.
//
//	arrears-report --source loans.xlsx
//	arrears-report --config report.yaml --output json
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

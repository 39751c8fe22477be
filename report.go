// Copyright 2026 The gpss Authors
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package gpss

import (
	"bytes"
	"fmt"
	"text/tabwriter"
)

// Report renders the queue and storage statistics as two tab-aligned
// tables, matching §6.3's column set exactly (exact whitespace is not
// normative; columns and their order are). Grounded on
// original_source/gpcc/simulation.cpp's report(), re-expressed with
// text/tabwriter since nothing in the example pack pulls in a dedicated
// table-formatting library.
func (s *Simulation) Report() string {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "QUEUE\tCURRENT\tMAX\tMEAN\tIDLE_FRACTION")
	for _, q := range s.QueueSnapshots() {
		fmt.Fprintf(w, "%s\t%d\t%d\t%.4f\t%.4f\n", q.Name, q.Current, q.Max, q.Mean, q.IdleFraction)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "STORAGE\tCAPACITY\tCURRENT\tMAX\tMEAN\tMEAN/CAPACITY\tIDLE_FRACTION\tFULL_FRACTION")
	for _, st := range s.StorageSnapshots() {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%.4f\t%.4f\t%.4f\t%.4f\n",
			st.Name, st.Capacity, st.Current, st.Max, st.Mean, st.MeanOverCapacity, st.IdleFraction, st.FullFraction)
	}

	w.Flush()
	return buf.String()
}

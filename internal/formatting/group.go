package formatting

// Group merges every maximal run of consecutive ItemLines into a single
// ListLine. Any other line, blank included, ends the current run, so two runs
// are never merged.
func Group(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	var run *Line
	for _, line := range lines {
		if line.Kind != ItemLine {
			if run != nil {
				out = append(out, *run)
				run = nil
			}
			out = append(out, line)
			continue
		}
		if run == nil {
			run = &Line{Kind: ListLine}
		}
		run.Items = append(run.Items, newListItem(line.Inline))
	}
	if run != nil {
		out = append(out, *run)
	}
	return out
}

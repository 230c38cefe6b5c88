// Package mftdiff implements a byte-level comparison of two MFT dump
// files, for the `mft diff` subcommand, per spec §6.
package mftdiff

import "fmt"

// Difference is one byte-level mismatch between the two compared files.
type Difference struct {
	Offset int64
	A, B   byte
}

// Result summarizes a comparison run.
type Result struct {
	SizeA, SizeB     int64
	Differences      []Difference
	FirstDifference  int64
	HasFirstDiff     bool
	RemainingDiffs   int // differences beyond what Differences captured, when capped
	LengthMismatchAt int64
	LengthMismatch   bool
}

// Identical reports whether the two files compared byte-identical, the
// condition `mft diff` must report for round-trip dumps, per spec §6.
func (r Result) Identical() bool {
	return !r.LengthMismatch && len(r.Differences) == 0 && r.RemainingDiffs == 0
}

const chunkSize = 4096

// Compare reads a and b in lock-step, recording up to maxDiffs byte-level
// differences (0 means the spec's default of 10). When verbose is false,
// comparison stops at the first difference, matching the original
// dumper's non-verbose early-exit behavior.
func Compare(a, b []byte, verbose bool, maxDiffs int) Result {
	if maxDiffs <= 0 {
		maxDiffs = 10
	}

	var result Result
	result.SizeA = int64(len(a))
	result.SizeB = int64(len(b))

	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}

	var position int64
	for position < int64(minLen) {
		end := position + chunkSize
		if end > int64(minLen) {
			end = int64(minLen)
		}
		for i := position; i < end; i++ {
			if a[i] != b[i] {
				if !result.HasFirstDiff {
					result.FirstDifference = i
					result.HasFirstDiff = true
				}
				if len(result.Differences) < maxDiffs {
					result.Differences = append(result.Differences, Difference{Offset: i, A: a[i], B: b[i]})
				} else {
					result.RemainingDiffs++
				}
				if !verbose {
					return finalizeLengthMismatch(result, int64(minLen), len(a), len(b))
				}
			}
		}
		position = end
	}

	return finalizeLengthMismatch(result, int64(minLen), len(a), len(b))
}

func finalizeLengthMismatch(result Result, comparedUpTo int64, lenA, lenB int) Result {
	if lenA != lenB {
		result.LengthMismatch = true
		result.LengthMismatchAt = comparedUpTo
		if !result.HasFirstDiff {
			result.FirstDifference = comparedUpTo
			result.HasFirstDiff = true
		}
	}
	return result
}

// Summary renders the human-readable report `mft diff` prints to stdout.
func Summary(result Result) string {
	s := fmt.Sprintf("File sizes: %d bytes vs %d bytes (difference %d bytes)\n", result.SizeA, result.SizeB, abs64(result.SizeA-result.SizeB))

	if result.Identical() {
		return s + "Files are identical.\n"
	}

	if result.LengthMismatch {
		s += fmt.Sprintf("Files differ in length starting at byte %d.\n", result.LengthMismatchAt)
	}

	total := len(result.Differences) + result.RemainingDiffs
	if result.HasFirstDiff {
		pct := float64(0)
		if min := minInt64(result.SizeA, result.SizeB); min > 0 {
			pct = float64(result.FirstDifference) / float64(min) * 100
		}
		s += fmt.Sprintf("First difference at byte: %d (%.2f%% into the smaller file).\n", result.FirstDifference, pct)
	}
	s += fmt.Sprintf("Total differences found: %d\n", total)

	switch {
	case total == 1:
		s += "Files are very similar (only 1 byte differs).\n"
	case result.HasFirstDiff && result.FirstDifference < 1024:
		s += "Files diverge very early (likely different headers/metadata).\n"
	default:
		s += "Files are mostly similar initially, then diverge.\n"
	}
	return s
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

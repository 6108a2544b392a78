package search

// The matcher is a bitap search over normalized ASCII text. It tolerates a
// configurable error rate and weights matches by how far they start from the
// beginning of the field, so that a guess has to cover the name rather than a
// fragment buried in the middle of it.

// maxBitapLength is the widest pattern a single machine word can track.
// Longer queries fall back to plain edit distance in the index.
const maxBitapLength = 64

// Interval is a contiguous run of aligned characters in field coordinates.
// End is inclusive. Normalized text is ASCII, so byte and character
// coordinates coincide.
type Interval struct {
	Start int
	End   int
}

// Span is the number of characters the interval covers.
func (iv Interval) Span() int {
	return iv.End - iv.Start + 1
}

// bitapSearch matches pattern against text, both already normalized.
// It reports whether the match clears the threshold, the match score
// (0 is perfect, lower is better), and the aligned intervals.
func bitapSearch(text, pattern string, opts Options) (bool, float64, []Interval) {
	textLen, patternLen := len(text), len(pattern)
	if patternLen == 0 || textLen == 0 || patternLen > maxBitapLength {
		return false, 1, nil
	}

	if text == pattern {
		return true, 0, []Interval{{Start: 0, End: textLen - 1}}
	}

	var alphabet ['z' + 1]uint64
	for i := 0; i < patternLen; i++ {
		c := pattern[i]
		if int(c) < len(alphabet) {
			alphabet[c] |= 1 << uint(patternLen-i-1)
		}
	}

	var (
		matchMask        = make([]bool, textLen)
		currentThreshold = opts.Threshold
		bestLocation     = -1
		finalScore       = 1.0
		foundMask        = uint64(1) << uint(patternLen-1)
		lastBitArr       []uint64
	)

	for e := 0; e < patternLen; e++ {
		// Scan right to left so that a set found bit names the location
		// where the match starts.
		bitArr := make([]uint64, textLen+2)
		bitArr[textLen+1] = (1 << uint(e)) - 1
		for j := textLen; j >= 1; j-- {
			location := j - 1
			var charMatch uint64
			if c := text[location]; int(c) < len(alphabet) {
				charMatch = alphabet[c]
			}
			if charMatch != 0 {
				matchMask[location] = true
			}

			// First row covers exact matches; subsequent rows add
			// substitutions, insertions, and deletions.
			bitArr[j] = ((bitArr[j+1] << 1) | 1) & charMatch
			if e > 0 {
				bitArr[j] |= ((lastBitArr[j+1] | lastBitArr[j]) << 1) | 1 | lastBitArr[j+1]
			}

			if bitArr[j]&foundMask == 0 {
				continue
			}
			score := bitapScore(e, location, patternLen, opts.Distance)
			if score <= currentThreshold {
				currentThreshold = score
				bestLocation = location
				finalScore = score
			}
		}

		// No point allowing another error if even a perfectly placed match
		// could not beat the current threshold.
		if bitapScore(e+1, 0, patternLen, opts.Distance) > currentThreshold {
			break
		}
		lastBitArr = bitArr
	}

	if bestLocation < 0 {
		return false, 1, nil
	}
	return true, finalScore, maskIntervals(matchMask, opts.MinMatchLength)
}

// bitapScore combines the error rate with how far the match start strays from
// the beginning of the field. Distance is the number of characters over which
// the positional penalty ramps up to 1.
func bitapScore(errors, location, patternLen, distance int) float64 {
	accuracy := float64(errors) / float64(patternLen)
	proximity := location
	if proximity < 0 {
		proximity = -proximity
	}
	if distance == 0 {
		if proximity != 0 {
			return 1
		}
		return accuracy
	}
	return accuracy + float64(proximity)/float64(distance)
}

// maskIntervals converts the aligned-character mask into contiguous runs,
// dropping runs shorter than minLength.
func maskIntervals(mask []bool, minLength int) []Interval {
	var intervals []Interval
	start := -1
	for i, aligned := range mask {
		if aligned {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			if i-start >= minLength {
				intervals = append(intervals, Interval{Start: start, End: i - 1})
			}
			start = -1
		}
	}
	if start >= 0 && len(mask)-start >= minLength {
		intervals = append(intervals, Interval{Start: start, End: len(mask) - 1})
	}
	return intervals
}

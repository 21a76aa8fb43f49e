package recommend

// NoBucket is returned for scores outside [0,100].
const NoBucket = 0

// ClassifyScore maps a readiness score to one of four buckets:
// [0,59]→1, [60,69]→2, [70,84]→3, [85,100]→4. The ranges are closed and
// cover [0,100] exactly.
func ClassifyScore(score int) int {
	switch {
	case score < 0 || score > 100:
		return NoBucket
	case score <= 59:
		return 1
	case score <= 69:
		return 2
	case score <= 84:
		return 3
	default:
		return 4
	}
}

package recommend

// NoComparisonMessage is returned when the wearable API had no reading for
// today.
const NoComparisonMessage = "当日スコアがないため比較できません"

// Lead-in phrases selected by comparing today's score to yesterday's. The
// "dropped" case deliberately keeps two distinct phrasings depending on
// whether any coping feedback was recorded today.
const (
	leadImproved            = "昨日よりもスコアが良くなっていますね。"
	leadSame                = "スコアは昨日と同じです。"
	leadDroppedWithFeedback = "昨日よりスコアが少し下がっていますが、焦らずにいきましょう。"
	leadDroppedNoFeedback   = "昨日よりスコアが少し下がっています。"
)

// ScoreComment returns the fixed encouragement/caution sentence for the
// score's bucket, using the same four ranges as ClassifyScore.
func ScoreComment(score int) string {
	switch ClassifyScore(score) {
	case 1:
		return "疲労が蓄積しています。あなたは十分に頑張っています。今は無理せず、心と体を休める時間を大切にしてください。自分を労わることも大切ですよ。"
	case 2:
		return "少し疲れが出てきていますね。ペースを落とし、安心して休息を取りましょう。焦らずに、あなたのペースで進めば大丈夫です。"
	case 3:
		return "体調は安定しています。少しリラックスして、無理せずに、休息も大切にしてください。"
	case 4:
		return "体調がとても良い状態です。この良い状態を維持するために、適度に休息を取りながら、日々を過ごしましょう。"
	default:
		return "スコアが不正です。"
	}
}

// GenerateDailyMessage produces the daily narrative: a yesterday-comparison
// lead-in followed by the score-band comment. A nil todaysScore short-circuits
// to the fixed no-comparison text.
func GenerateDailyMessage(todaysScore *int, yesterdaysScore int, hasFeedbackToday bool) string {
	if todaysScore == nil {
		return NoComparisonMessage
	}

	var lead string
	switch {
	case *todaysScore > yesterdaysScore:
		lead = leadImproved
	case *todaysScore == yesterdaysScore:
		lead = leadSame
	case hasFeedbackToday:
		lead = leadDroppedWithFeedback
	default:
		lead = leadDroppedNoFeedback
	}
	return lead + ScoreComment(*todaysScore)
}

package recommend

import (
	"fmt"
	"math/rand"
)

// Three fixed empathetic preambles per score bucket.
var preambles = map[int][]string{
	1: {
		"今は一度立ち止まる時です。体調が非常に心配です。残業で心身が限界に近づきつつあります。どうか無理をせず、今すぐ休息を取って、自分を大切にしてください。",
		"体調が非常に心配です。長時間の残業が続いていませんか？これ以上無理をすると、健康に大きな影響が出るかもしれません。まずは少し休んで、心と体を労わってください。",
		"かなり疲れが溜まっており、放置すると危険な状況です。今すぐしっかりと休息を取って、体をいたわってあげてください。あなたの健康が第一です。",
	},
	2: {
		"少し体調が悪化していますね。残業が続いていませんか？このままではもっと辛くなるかもしれません。早めに休息を取って、心身をリフレッシュしてくださいね。",
		"体調が気になります。長時間働きすぎていませんか？今、少しでも休むことで、これ以上の疲れを防げます。どうかご自身を大事にしてください。",
		"最近、体調が少し崩れているようです。残業が続いているので、今すぐにでも休息を取って、心と体をリセットしましょう。",
	},
	3: {
		"健康状態は良好ですね。ただ、残業が続くと疲労が溜まってしまうこともあります。健康を保つためにも、定期的にリフレッシュする時間を持つことをおすすめします。",
		"今の調子はとても良いですが、無理をしないよう気をつけてくださいね。疲れる前に休息を取り、この良い状態を保っていきましょう。",
		"あなたの健康は今とても良好ですが、疲れが溜まらないように、時々リフレッシュして体調を整えてください。",
	},
	4: {
		"今のあなたはとても良い状態です。この調子で、無理をせずに適度な休息を取りながらバランスよく過ごしていきましょうね。",
		"健康状態がとても良いですね。でも、無理をしないように、定期的にリフレッシュして今の素晴らしい状態を保ってください。",
		"あなたの状態はとても良いです。このまま無理をせず、適度な休息を取りながら過ごして、良い状態を維持してくださいね。",
	},
}

// SelectPreamble picks one of the bucket's three preambles uniformly at
// random. The bucket pool has no default branch, so callers must guard
// against NoBucket.
func SelectPreamble(bucket int, rng *rand.Rand) (string, error) {
	pool, ok := preambles[bucket]
	if !ok {
		return "", fmt.Errorf("no preamble pool for bucket %d", bucket)
	}
	return pool[rng.Intn(len(pool))], nil
}

// PreamblePool exposes the fixed strings of one bucket for tests and audits.
func PreamblePool(bucket int) []string {
	pool := preambles[bucket]
	out := make([]string, len(pool))
	copy(out, pool)
	return out
}

package recommend

import (
	"context"

	"github.com/notch-0314/heattech-backend/internal"
)

const (
	rewriteSystemPrompt = "あなたは残業が異常に多いビジネスマンに休憩の方法をアドバイスする、経験豊富なアドバイザーです。彼らは責任感が強く、休むことに対して罪悪感を感じる傾向があります。"
	rewriteInstruction  = "以下の休憩方法を50字以内で紹介してください。"
)

// ChatCompleter issues one completion request and returns the trimmed text
// of the first choice.
type ChatCompleter interface {
	Complete(ctx context.Context, system string, user ...string) (string, error)
}

// Rewriter turns coping records into short human-readable advice via a
// language-model completion per record.
type Rewriter struct {
	completer ChatCompleter
	logger    internal.Logger
}

func NewRewriter(completer ChatCompleter, logger internal.Logger) *Rewriter {
	return &Rewriter{completer: completer, logger: logger}
}

// Rewrite processes each record independently. A failed completion is logged
// and its record omitted; remaining records are still processed, so the
// output order follows the input order minus failures.
func (r *Rewriter) Rewrite(ctx context.Context, records []internal.CopingMaster) []string {
	var advice []string
	for i, record := range records {
		text, err := r.completer.Complete(ctx, rewriteSystemPrompt, rewriteInstruction, record.RestType)
		if err != nil {
			r.logger.Errorf("rewriting coping item %d: %v", i+1, err)
			continue
		}
		advice = append(advice, text)
	}
	return advice
}

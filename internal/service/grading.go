package service

import (
	"strings"

	"edulearn_backend/internal/model"
)

// gradeAnswer 按题型判分。纯函数：同样的题目和答案永远得到同样的结果。
//
// MCQ/TRUEORFALSE 按选项文本精确匹配（区分大小写）；没有任何选项被标记
// 为正确时一律判错，不报错。FILLINTHEBLANK 两侧去空白、转小写后比较。
// SHORTANSWER/DESCRIPTIVE 需要人工评分，引擎永远不自动给分。
func gradeAnswer(q *model.Question, answer string) bool {
	switch q.Type {
	case model.MCQ, model.TrueOrFalse:
		for _, opt := range q.Options {
			if opt.IsCorrect {
				return opt.Option == answer
			}
		}
		return false

	case model.FillInTheBlank:
		want := strings.ToLower(strings.TrimSpace(q.Answer))
		got := strings.ToLower(strings.TrimSpace(answer))
		return want == got

	case model.ShortAnswer, model.Descriptive:
		return false

	default:
		return false
	}
}

// correctAnswerFor 返回展示给学员的标准答案
func correctAnswerFor(q *model.Question) string {
	if q.Type.IsChoice() {
		for _, opt := range q.Options {
			if opt.IsCorrect {
				return opt.Option
			}
		}
		return "N/A"
	}
	if q.Answer == "" {
		return "N/A"
	}
	return q.Answer
}

package util

import "errors"

var (
	ErrUserNotFound           = errors.New("用户不存在")
	ErrEmailRegistered        = errors.New("该邮箱已被注册")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrQuizNotFound           = errors.New("quiz not found")
	ErrQuizTitleTaken         = errors.New("quiz with this title already exists")
	ErrQuizAlreadyAttempted   = errors.New("quiz already attempted")
	ErrQuestionNotFound       = errors.New("question not found")
	ErrQuestionNotInQuiz      = errors.New("answer references a question not in this quiz")
	ErrAttemptNotFound        = errors.New("attempt not found")
	ErrLessonNotFound         = errors.New("lesson not found")
	ErrCourseNotFound         = errors.New("course not found")
	ErrLessonAlreadyCompleted = errors.New("lesson already completed")
	ErrMultipleBindings       = errors.New("quiz must be attached to exactly one level")
	ErrTrueFalseOptions       = errors.New("TRUE/FALSE questions must have exactly 2 options")
)

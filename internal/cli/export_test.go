package cli

type InitAnswersForTest = initAnswers

var (
	DefaultAnswers = defaultAnswers
	ApplyAnswers   = (*initAnswers).apply
	ParseInts      = parseInts
)

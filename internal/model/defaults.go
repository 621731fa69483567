package model

// Shared defaults used by both the service and TUI binaries.
const (
	DefaultCode        = "DEFAULT"
	DefaultDisplayMode = DisplayCode
	DefaultBackground  = BackgroundParticles
	HomeBackground     = "#f0f2f5"
	MaxCodeLength      = 4
)

// DefaultStrings returns the stock Korean labels.
func DefaultStrings() Strings {
	return Strings{
		HomeHeading:     "당신의 MBTI를 알려주세요!",
		Placeholder:     "예: INFP",
		SubmitLabel:     "입력",
		EmptyInputError: "MBTI를 입력해주세요!",
		BackLabel:       "돌아가기",
		CelebrateTitle:  "축하합니다! 당신의 결과예요",
	}
}

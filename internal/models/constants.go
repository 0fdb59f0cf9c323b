package models

// Placeholders shown when a booking field is missing.
const (
	NoUserName    = "이름 없음"
	NoLocation    = "위치 정보 없음"
	NoServiceName = "서비스명 없음"
	NoPetInfo     = "반려동물 정보 없음"
	NoTime        = "시간 없음"
	DefaultAvatar = "/avatars/default.jpg"
)

const (
	// DayPageSize is the page size for a single-day reservation query.
	DayPageSize = 50
	// MonthPageSize is the page size for a calendar month query.
	MonthPageSize = 1000

	DefaultReviewPage     = 0
	DefaultReviewPageSize = 10

	// MaxReviewComment is the comment length limit in characters.
	MaxReviewComment = 1000

	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Service types used by the review keyword catalog.
const (
	ServiceWalk     = "WALK"
	ServiceCare     = "CARE"
	ServiceGroom    = "GROOM"
	ServiceHospital = "HOSPITAL"
	ServiceEtc      = "ETC"
)

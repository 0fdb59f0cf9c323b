package models

// Status is the booking lifecycle state as the UI sees it.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Backend status codes.
const (
	CodePending   = "0"
	CodeApproved  = "1"
	CodeCompleted = "2"
	CodeCancelled = "3"
)

var (
	codeToStatus = map[string]Status{
		CodePending:   StatusPending,
		CodeApproved:  StatusApproved,
		CodeCompleted: StatusCompleted,
		CodeCancelled: StatusCancelled,
	}
	statusToCode = map[Status]string{
		StatusPending:   CodePending,
		StatusApproved:  CodeApproved,
		StatusCompleted: CodeCompleted,
		StatusCancelled: CodeCancelled,
	}
)

// StatusFromCode maps a backend code to a UI status. Unknown codes are pending.
func StatusFromCode(code string) Status {
	if s, ok := codeToStatus[code]; ok {
		return s
	}
	return StatusPending
}

// ParseStatus accepts a UI status string. Unknown values are pending.
func ParseStatus(s string) Status {
	if st := Status(s); st.Valid() {
		return st
	}
	return StatusPending
}

// Code returns the backend code for the status, "0" for anything unknown.
func (s Status) Code() string {
	if code, ok := statusToCode[s]; ok {
		return code
	}
	return CodePending
}

// Valid reports whether s is one of the four UI statuses.
func (s Status) Valid() bool {
	_, ok := statusToCode[s]
	return ok
}

// Label is the Korean display label used in exports.
func (s Status) Label() string {
	switch s {
	case StatusApproved:
		return "승인"
	case StatusCompleted:
		return "완료"
	case StatusCancelled:
		return "취소"
	default:
		return "대기"
	}
}

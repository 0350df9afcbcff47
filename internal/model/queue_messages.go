package model

// CheckInSubmittedMessage 新签到待审批消息，worker 消费后通知审批人
type CheckInSubmittedMessage struct {
	MessageID   string `json:"message_id"`
	RecordID    int64  `json:"record_id"`
	UserID      int64  `json:"user_id"`
	UserName    string `json:"user_name"`
	Type        string `json:"type"`
	SubType     string `json:"sub_type,omitempty"`
	CheckInTime string `json:"check_in_time"`
	OccurredAt  string `json:"occurred_at"`
}

// ApprovalDecisionMessage 审批结果消息，worker 消费后通知打卡人
type ApprovalDecisionMessage struct {
	MessageID string `json:"message_id"`
	RecordID  int64  `json:"record_id"`
	UserID    int64  `json:"user_id"`
	Decision  string `json:"decision"` // approved, rejected
	DecidedBy string `json:"decided_by"`
	Reason    string `json:"reason,omitempty"`
	DecidedAt string `json:"decided_at"`
}

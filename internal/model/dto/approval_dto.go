package dto

// ========== 审批相关 DTO ==========

// ApproveRequest 审批通过请求，审批人可修订工作内容
type ApproveRequest struct {
	WorkContent string `json:"workContent"`
}

// RejectRequest 审批驳回请求
type RejectRequest struct {
	RejectionReason string `json:"rejectionReason"`
}

package models

// CreateSOSRequest 创建 SOS 会话请求
type CreateSOSRequest struct {
	UserID   string    `json:"userId"`
	Location *Location `json:"location"`
	Severity Severity  `json:"severity"`
}

// UpdateSOSRequest 更新 SOS 会话请求
type UpdateSOSRequest struct {
	SessionID string       `json:"sessionId"`
	Updates   SessionPatch `json:"updates"`
}

// AssignHelperRequest 指派守护人请求
type AssignHelperRequest struct {
	HelperID string `json:"helperId"`
}

// AnalyzeRequest 证据分析请求
type AnalyzeRequest struct {
	UserID    string       `json:"userId"`
	SessionID string       `json:"sessionId,omitempty"`
	Type      EvidenceType `json:"type"`
	Data      string       `json:"data"`
}

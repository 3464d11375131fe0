package models

import (
	"time"
)

// Certification is one role's durable sign-off on a scope
type Certification struct {
	ID           string    `json:"id" db:"id"`
	ScopeType    ScopeKind `json:"scope_type" db:"scope_type"`
	ScopeID      string    `json:"scope_id" db:"scope_id"`
	Role         Role      `json:"role" db:"role"`
	EventID      string    `json:"event_id" db:"event_id"`
	ContestID    *string   `json:"contest_id,omitempty" db:"contest_id"`
	CategoryID   *string   `json:"category_id,omitempty" db:"category_id"`
	ContestantID *string   `json:"contestant_id,omitempty" db:"contestant_id"`
	JudgeID      *string   `json:"judge_id,omitempty" db:"judge_id"`
	ActorUserID  string    `json:"actor_user_id" db:"actor_user_id"`
	ActorRole    Role      `json:"actor_role" db:"actor_role"`
	Comment      *string   `json:"comment,omitempty" db:"comment"`
	CertifiedAt  time.Time `json:"certified_at" db:"certified_at"`
}

// RoleProgress reports whether one required role has certified a scope
type RoleProgress struct {
	Role        Role       `json:"role"`
	Certified   bool       `json:"certified"`
	CertifiedBy *string    `json:"certified_by,omitempty"`
	CertifiedAt *time.Time `json:"certified_at,omitempty"`
}

// ProgressView is the per-role certification state of one scope
type ProgressView struct {
	Scope    ScopeRef       `json:"scope"`
	Roles    []RoleProgress `json:"roles"`
	Complete bool           `json:"complete"`
	// Unlocked is true when everything below the scope is certified, so
	// the scope itself may be certified.
	Unlocked bool `json:"unlocked"`
}

// Certified reports whether role has certified the scope.
func (p ProgressView) Certified(role Role) bool {
	for _, rp := range p.Roles {
		if rp.Role == role {
			return rp.Certified
		}
	}
	return false
}

// ContestantTracker is the per-contestant row of a category tracker
type ContestantTracker struct {
	ContestantID    string         `json:"contestant_id"`
	ContestantName  string         `json:"contestant_name"`
	CertifiedJudges []string       `json:"certified_judges"`
	PendingJudges   []string       `json:"pending_judges"`
	ContestantRoles []RoleProgress `json:"contestant_roles"`
	FullyCertified  bool           `json:"fully_certified"`
}

// CategoryTracker summarizes every certification beneath a category
type CategoryTracker struct {
	CategoryID  string              `json:"category_id"`
	Contestants []ContestantTracker `json:"contestants"`
	Category    ProgressView        `json:"category"`
}

// RequestStatus is the lifecycle state of deduction and uncertification requests
type RequestStatus string

const (
	StatusPending  RequestStatus = "PENDING"
	StatusApproved RequestStatus = "APPROVED"
	StatusRejected RequestStatus = "REJECTED"
)

// Decision is an approver's verdict on a deduction request
type Decision string

const (
	DecisionApproved Decision = "APPROVED"
	DecisionRejected Decision = "REJECTED"
)

// DeductionRequest proposes a point penalty for a contestant in a category
type DeductionRequest struct {
	ID            string        `json:"id" db:"id"`
	CategoryID    string        `json:"category_id" db:"category_id"`
	ContestantID  string        `json:"contestant_id" db:"contestant_id"`
	RequestedBy   string        `json:"requested_by" db:"requested_by"`
	RequestedRole Role          `json:"requested_role" db:"requested_role"`
	Reason        string        `json:"reason" db:"reason"`
	Points        int           `json:"points" db:"points"`
	Status        RequestStatus `json:"status" db:"status"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at"`
	DecidedAt     *time.Time    `json:"decided_at,omitempty" db:"decided_at"`
	AppliedAt     *time.Time    `json:"applied_at,omitempty" db:"applied_at"`
	AppliedBy     *string       `json:"applied_by,omitempty" db:"applied_by"`
}

// DeductionApproval is one role's decision on a deduction request
type DeductionApproval struct {
	ID             string    `json:"id" db:"id"`
	RequestID      string    `json:"request_id" db:"request_id"`
	ApproverUserID string    `json:"approver_user_id" db:"approver_user_id"`
	ApproverRole   Role      `json:"approver_role" db:"approver_role"`
	Decision       Decision  `json:"decision" db:"decision"`
	Comment        *string   `json:"comment,omitempty" db:"comment"`
	DecidedAt      time.Time `json:"decided_at" db:"decided_at"`
}

// ApprovalStatus is the quorum view of a deduction request
type ApprovalStatus struct {
	RequestID string        `json:"request_id"`
	Status    RequestStatus `json:"status"`
	Required  []Role        `json:"required"`
	Approved  []Role        `json:"approved"`
	Rejected  []Role        `json:"rejected"`
	Applied   bool          `json:"applied"`
}

// ScoreAdjustment is the applied effect of an approved deduction
type ScoreAdjustment struct {
	ID              string    `json:"id" db:"id"`
	CategoryID      string    `json:"category_id" db:"category_id"`
	ContestantID    string    `json:"contestant_id" db:"contestant_id"`
	Points          int       `json:"points" db:"points"`
	SourceRequestID string    `json:"source_request_id" db:"source_request_id"`
	CreatedBy       string    `json:"created_by" db:"created_by"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// UncertificationRequest asks for a judge's certifications in a category
// to be revoked
type UncertificationRequest struct {
	ID              string        `json:"id" db:"id"`
	JudgeID         string        `json:"judge_id" db:"judge_id"`
	CategoryID      string        `json:"category_id" db:"category_id"`
	Reason          string        `json:"reason" db:"reason"`
	RequestedBy     string        `json:"requested_by" db:"requested_by"`
	RequestedAt     time.Time     `json:"requested_at" db:"requested_at"`
	Status          RequestStatus `json:"status" db:"status"`
	RejectionReason *string       `json:"rejection_reason,omitempty" db:"rejection_reason"`
	RejectedBy      *string       `json:"rejected_by,omitempty" db:"rejected_by"`
	ExecutedBy      *string       `json:"executed_by,omitempty" db:"executed_by"`
	ExecutedAt      *time.Time    `json:"executed_at,omitempty" db:"executed_at"`
	UpdatedAt       time.Time     `json:"updated_at" db:"updated_at"`
}

// UncertificationSignature records one role's signature on a request
type UncertificationSignature struct {
	ID           string    `json:"id" db:"id"`
	RequestID    string    `json:"request_id" db:"request_id"`
	SignerUserID string    `json:"signer_user_id" db:"signer_user_id"`
	SignerRole   Role      `json:"signer_role" db:"signer_role"`
	SignedAt     time.Time `json:"signed_at" db:"signed_at"`
}

// SignatureStatus is the quorum view of an uncertification request
type SignatureStatus struct {
	Request   *UncertificationRequest `json:"request"`
	Required  []Role                  `json:"required"`
	Signed    []Role                  `json:"signed"`
	AllSigned bool                    `json:"all_signed"`
}

// ExecuteResult reports what an executed uncertification removed
// and how many contestant or category level certifications of the category
// were left standing above the removed rows.
type ExecuteResult struct {
	Message               string `json:"message"`
	RequestID             string `json:"request_id"`
	CertificationsRemoved int    `json:"certifications_removed"`
	ScoresRemoved         int    `json:"scores_removed"`
	CertificationsAbove   int    `json:"certifications_above"`
}

// ResetResult reports what a cascade reset removed
type ResetResult struct {
	Scope   ScopeRef          `json:"scope"`
	Removed int               `json:"removed"`
	ByKind  map[ScopeKind]int `json:"by_kind"`
}

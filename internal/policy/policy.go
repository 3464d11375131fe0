// Package policy answers which roles may perform an operation on a kind of
// scope. The built-in defaults can be overridden per deployment with a
// TOML file.
package policy

import (
	"fmt"
	"slices"

	"event-judging/internal/models"
)

// Operation names a workflow transition or read guarded by the policy
type Operation string

const (
	OpViewProgress           Operation = "view_progress"
	OpCertify                Operation = "certify"
	OpResetCertifications    Operation = "reset_certifications"
	OpCreateDeduction        Operation = "create_deduction"
	OpDecideDeduction        Operation = "decide_deduction"
	OpApplyDeduction         Operation = "apply_deduction"
	OpViewDeduction          Operation = "view_deduction"
	OpRequestUncertification Operation = "request_uncertification"
	OpSignUncertification    Operation = "sign_uncertification"
	OpRejectUncertification  Operation = "reject_uncertification"
	OpExecuteUncertification Operation = "execute_uncertification"
	OpViewUncertification    Operation = "view_uncertification"
	OpViewAudit              Operation = "view_audit"
	OpViewPolicy             Operation = "view_policy"
)

// Operations lists every operation the table knows about
var Operations = []Operation{
	OpViewProgress, OpCertify, OpResetCertifications,
	OpCreateDeduction, OpDecideDeduction, OpApplyDeduction, OpViewDeduction,
	OpRequestUncertification, OpSignUncertification, OpRejectUncertification,
	OpExecuteUncertification, OpViewUncertification,
	OpViewAudit, OpViewPolicy,
}

// Table is immutable after construction and safe for concurrent use.
type Table struct {
	required           map[models.ScopeKind]models.RoleSet
	judgeOverrides     models.RoleSet
	deductionApprovers models.RoleSet
	signers            models.RoleSet
	operations         map[Operation]models.RoleSet
}

// Default returns the built-in policy
func Default() *Table {
	return &Table{
		required: map[models.ScopeKind]models.RoleSet{
			models.ScopeJudgeContestant:    {models.RoleJudge},
			models.ScopeContestantCategory: {models.RoleTallyMaster, models.RoleAuditor},
			models.ScopeCategory:           {models.RoleTallyMaster, models.RoleAuditor, models.RoleBoard, models.RoleOrganizer},
			models.ScopeContest:            {models.RoleTallyMaster, models.RoleAuditor, models.RoleBoard, models.RoleOrganizer},
			models.ScopeEvent:              {models.RoleBoard, models.RoleOrganizer},
		},
		judgeOverrides:     models.RoleSet{models.RoleTallyMaster, models.RoleAuditor},
		deductionApprovers: models.RoleSet{models.RoleTallyMaster, models.RoleAuditor, models.RoleBoard},
		signers:            models.RoleSet{models.RoleAdmin, models.RoleOrganizer, models.RoleTallyMaster, models.RoleAuditor, models.RoleBoard},
		operations: map[Operation]models.RoleSet{
			OpViewProgress:           {models.RoleTallyMaster, models.RoleAuditor, models.RoleBoard, models.RoleJudge, models.RoleOrganizer},
			OpResetCertifications:    {models.RoleOrganizer, models.RoleBoard},
			OpCreateDeduction:        {models.RoleJudge, models.RoleOrganizer, models.RoleBoard},
			OpDecideDeduction:        {models.RoleJudge, models.RoleTallyMaster, models.RoleAuditor, models.RoleBoard, models.RoleOrganizer},
			OpApplyDeduction:         {models.RoleTallyMaster, models.RoleOrganizer},
			OpViewDeduction:          {models.RoleJudge, models.RoleTallyMaster, models.RoleAuditor, models.RoleBoard, models.RoleOrganizer},
			OpRequestUncertification: {models.RoleJudge},
			OpViewUncertification:    {models.RoleJudge, models.RoleTallyMaster, models.RoleAuditor, models.RoleBoard, models.RoleOrganizer},
			OpViewAudit:              {},
			OpViewPolicy:             slices.Clone(models.AllRoles),
		},
	}
}

// RequiredRoles returns the certifying role slots of a scope kind. A scope
// is complete when every slot holds a certification.
func (t *Table) RequiredRoles(kind models.ScopeKind) models.RoleSet {
	return slices.Clone(t.required[kind])
}

// JudgeOverrides returns the roles allowed to fill a judge's slot on the
// judge's behalf.
func (t *Table) JudgeOverrides() models.RoleSet {
	return slices.Clone(t.judgeOverrides)
}

// DeductionApprovers returns the quorum a deduction needs to be approved
func (t *Table) DeductionApprovers() models.RoleSet {
	return slices.Clone(t.deductionApprovers)
}

// UncertificationSigners returns the quorum an uncertification needs
func (t *Table) UncertificationSigners() models.RoleSet {
	return slices.Clone(t.signers)
}

// Permitted returns the roles, other than ADMIN, that may perform op on a
// scope of the given kind. kind is ignored by operations that are not
// scoped.
func (t *Table) Permitted(op Operation, kind models.ScopeKind) models.RoleSet {
	switch op {
	case OpCertify:
		roles := t.RequiredRoles(kind)
		if kind == models.ScopeJudgeContestant {
			roles = models.NewRoleSet(append(roles, t.judgeOverrides...)...)
		}
		return roles
	case OpSignUncertification, OpRejectUncertification, OpExecuteUncertification:
		return t.UncertificationSigners()
	}
	return slices.Clone(t.operations[op])
}

// Allows reports whether role may perform op. ADMIN is always allowed.
func (t *Table) Allows(op Operation, kind models.ScopeKind, role models.Role) bool {
	if role == models.RoleAdmin {
		return true
	}
	return t.Permitted(op, kind).Contains(role)
}

// CanFillSlot reports whether an actor with actorRole may certify the slot
// role on a scope of the given kind. Slots must be required for the kind.
// An actor fills its own role's slot; ADMIN may fill any slot and the
// judge overrides may fill the judge slot.
func (t *Table) CanFillSlot(kind models.ScopeKind, slot, actorRole models.Role) bool {
	if !t.required[kind].Contains(slot) {
		return false
	}
	switch {
	case actorRole == slot:
		return true
	case actorRole == models.RoleAdmin:
		return true
	case slot == models.RoleJudge && t.judgeOverrides.Contains(actorRole):
		return true
	}
	return false
}

// View is the serializable form of a table
type View struct {
	RequiredRoles          map[models.ScopeKind]models.RoleSet `json:"required_roles"`
	JudgeOverrides         models.RoleSet                      `json:"judge_overrides"`
	DeductionApprovers     models.RoleSet                      `json:"deduction_approvers"`
	UncertificationSigners models.RoleSet                      `json:"uncertification_signers"`
	Operations             map[Operation]models.RoleSet        `json:"operations"`
}

// View returns a copy of the effective policy
func (t *Table) View() View {
	ops := make(map[Operation]models.RoleSet, len(Operations))
	for _, op := range Operations {
		if op == OpCertify {
			continue
		}
		ops[op] = t.Permitted(op, "")
	}
	required := make(map[models.ScopeKind]models.RoleSet, len(t.required))
	for k, v := range t.required {
		required[k] = slices.Clone(v)
	}
	return View{
		RequiredRoles:          required,
		JudgeOverrides:         t.JudgeOverrides(),
		DeductionApprovers:     t.DeductionApprovers(),
		UncertificationSigners: t.UncertificationSigners(),
		Operations:             ops,
	}
}

func (t *Table) validate() error {
	for _, kind := range models.ScopeKinds {
		if len(t.required[kind]) == 0 {
			return fmt.Errorf("scope %s needs at least one required role", kind)
		}
	}
	if len(t.deductionApprovers) == 0 {
		return fmt.Errorf("deduction approvers must not be empty")
	}
	if len(t.signers) == 0 {
		return fmt.Errorf("uncertification signers must not be empty")
	}
	return nil
}

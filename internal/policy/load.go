package policy

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/pelletier/go-toml/v2"

	"event-judging/internal/models"
)

// fileFormat is the on-disk layout of a policy override file. Every section
// is optional; absent keys keep the defaults.
//
//	[certification]
//	judge_overrides = ["TALLY_MASTER", "AUDITOR"]
//
//	[certification.required]
//	CATEGORY = ["TALLY_MASTER", "AUDITOR"]
//
//	[deduction]
//	approvers = ["TALLY_MASTER", "AUDITOR", "BOARD"]
//
//	[uncertification]
//	signers = ["AUDITOR", "BOARD"]
//
//	[operations]
//	apply_deduction = ["TALLY_MASTER"]
type fileFormat struct {
	Certification struct {
		Required       map[string][]string `toml:"required"`
		JudgeOverrides []string            `toml:"judge_overrides"`
	} `toml:"certification"`
	Deduction struct {
		Approvers []string `toml:"approvers"`
	} `toml:"deduction"`
	Uncertification struct {
		Signers []string `toml:"signers"`
	} `toml:"uncertification"`
	Operations map[string][]string `toml:"operations"`
}

// Load reads a TOML override file. An empty path returns the defaults.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open policy file: %w", err)
	}
	defer f.Close()

	t, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("policy file %s: %w", path, err)
	}
	return t, nil
}

// Parse applies a TOML document on top of the defaults
func Parse(data []byte) (*Table, error) {
	return Decode(bytes.NewReader(data))
}

// Decode applies a TOML document read from r on top of the defaults.
// Unknown keys, roles, scope kinds and operations are errors.
func Decode(r io.Reader) (*Table, error) {
	var doc fileFormat
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode policy: %w", err)
	}

	t := Default()

	for kindName, names := range doc.Certification.Required {
		kind, err := models.ParseScopeKind(kindName)
		if err != nil {
			return nil, err
		}
		roles, err := parseRoles(names)
		if err != nil {
			return nil, fmt.Errorf("certification.required.%s: %w", kindName, err)
		}
		if slices.Contains(roles, models.RoleAdmin) {
			return nil, fmt.Errorf("certification.required.%s: ADMIN cannot be a required slot", kindName)
		}
		t.required[kind] = roles
	}

	if doc.Certification.JudgeOverrides != nil {
		roles, err := parseRoles(doc.Certification.JudgeOverrides)
		if err != nil {
			return nil, fmt.Errorf("certification.judge_overrides: %w", err)
		}
		t.judgeOverrides = roles
	}

	if doc.Deduction.Approvers != nil {
		roles, err := parseRoles(doc.Deduction.Approvers)
		if err != nil {
			return nil, fmt.Errorf("deduction.approvers: %w", err)
		}
		t.deductionApprovers = roles
	}

	if doc.Uncertification.Signers != nil {
		roles, err := parseRoles(doc.Uncertification.Signers)
		if err != nil {
			return nil, fmt.Errorf("uncertification.signers: %w", err)
		}
		t.signers = roles
	}

	for opName, names := range doc.Operations {
		op := Operation(opName)
		if !slices.Contains(Operations, op) {
			return nil, fmt.Errorf("operations: unknown operation %q", opName)
		}
		switch op {
		case OpCertify, OpSignUncertification, OpRejectUncertification, OpExecuteUncertification:
			return nil, fmt.Errorf("operations.%s is derived from the certification and uncertification sections", opName)
		}
		roles, err := parseRoles(names)
		if err != nil {
			return nil, fmt.Errorf("operations.%s: %w", opName, err)
		}
		t.operations[op] = roles
	}

	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func parseRoles(names []string) (models.RoleSet, error) {
	roles := make([]models.Role, 0, len(names))
	for _, name := range names {
		r, err := models.ParseRole(name)
		if err != nil {
			return nil, err
		}
		roles = append(roles, r)
	}
	return models.NewRoleSet(roles...), nil
}

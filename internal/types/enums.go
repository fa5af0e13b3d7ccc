package types

import (
	"fmt"
	"strings"
)

// Tier is the coarse quality bucket derived from a tier score.
// It is never stored independently of the score that produced it.
type Tier string

const (
	TierGreen  Tier = "green"
	TierYellow Tier = "yellow"
	TierRed    Tier = "red"
)

// PipelineStatus is the current human judgment about a candidate on a job.
// Transitions are unrestricted: any status may move to any other.
type PipelineStatus string

const (
	StatusNew       PipelineStatus = "new"
	StatusApproved  PipelineStatus = "approved"
	StatusContacted PipelineStatus = "contacted"
	StatusBackup    PipelineStatus = "backup"
	StatusRejected  PipelineStatus = "rejected"
)

// VehicleStatus records whether a candidate is known to have a personal vehicle.
type VehicleStatus string

const (
	VehicleHas     VehicleStatus = "has_vehicle"
	VehicleNone    VehicleStatus = "no_vehicle"
	VehicleUnknown VehicleStatus = "unknown"
)

// ContactMethod records how a candidate was reached out to.
type ContactMethod string

const (
	ContactManual ContactMethod = "manual"
	ContactSMS    ContactMethod = "sms"
	ContactEmail  ContactMethod = "email"
)

// JobStatus marks whether a job is open for matching.
type JobStatus string

const (
	JobActive  JobStatus = "active"
	JobDeleted JobStatus = "deleted"
)

// ParsePipelineStatus converts free-form input into a PipelineStatus.
// Input is trimmed and lowercased before the membership check.
func ParsePipelineStatus(s string) (PipelineStatus, error) {
	switch v := PipelineStatus(strings.ToLower(strings.TrimSpace(s))); v {
	case StatusNew, StatusApproved, StatusContacted, StatusBackup, StatusRejected:
		return v, nil
	default:
		return "", fmt.Errorf("unknown pipeline status %q", s)
	}
}

// ParseVehicleStatus converts free-form input into a VehicleStatus.
// Empty or unrecognized input maps to VehicleUnknown rather than an error,
// since the upstream analysis frequently omits the field.
func ParseVehicleStatus(s string) VehicleStatus {
	switch v := VehicleStatus(strings.ToLower(strings.TrimSpace(s))); v {
	case VehicleHas, VehicleNone, VehicleUnknown:
		return v
	default:
		return VehicleUnknown
	}
}

// ParseContactMethod converts free-form input into a ContactMethod.
func ParseContactMethod(s string) (ContactMethod, error) {
	switch v := ContactMethod(strings.ToLower(strings.TrimSpace(s))); v {
	case ContactManual, ContactSMS, ContactEmail:
		return v, nil
	default:
		return "", fmt.Errorf("unknown contact method %q", s)
	}
}

// Valid reports whether t is one of the three defined tiers.
func (t Tier) Valid() bool {
	return t == TierGreen || t == TierYellow || t == TierRed
}

// Valid reports whether s is a defined pipeline status.
func (s PipelineStatus) Valid() bool {
	switch s {
	case StatusNew, StatusApproved, StatusContacted, StatusBackup, StatusRejected:
		return true
	}
	return false
}

package models

import "time"

// CreatedAtLayout is the format of SuperAdmin.CreatedAt.
const CreatedAtLayout = time.RFC3339Nano

// SuperAdmin is one record of the super-admin sequence. The JSON field names
// are part of the stored format.
type SuperAdmin struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	SuperAdminID string `json:"superadminId"`
	OrgID        string `json:"orgId"`
	CreatedAt    string `json:"createdAt"`
}

// FormatCreatedAt renders t the way CreatedAt is stored.
func FormatCreatedAt(t time.Time) string {
	return t.UTC().Format(CreatedAtLayout)
}

// CreatedTime parses CreatedAt. Records written by other tools may carry an
// unparseable value; ok is false for those.
func (s SuperAdmin) CreatedTime() (t time.Time, ok bool) {
	t, err := time.Parse(CreatedAtLayout, s.CreatedAt)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

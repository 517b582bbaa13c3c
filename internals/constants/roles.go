package constants

import "github.com/google/uuid"

// Role staff di dalam satu gym (claim `roles` pada token staff).
const (
	RoleMember = "member"
	RoleStaff  = "staff"
	RoleAdmin  = "admin"
	RoleOwner  = "owner"
)

// SystemStaffID dipakai sebagai identitas staff untuk mutasi yang dijalankan sistem
// (auto-checkout sweep). Entry audit-nya tetap wajib, sama seperti override staff biasa.
var SystemStaffID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

const SystemUserAgent = "gymtrack-scheduler"

package model

// AttendanceMethod adalah channel check-in yang dikenal sistem.
type AttendanceMethod string

const (
	MethodManual    AttendanceMethod = "manual"
	MethodQR        AttendanceMethod = "qr"
	MethodNFC       AttendanceMethod = "nfc"
	MethodBiometric AttendanceMethod = "biometric"
)

// urutan kanonik, dipakai untuk normalisasi set & katalog
var AllMethods = []AttendanceMethod{MethodManual, MethodQR, MethodNFC, MethodBiometric}

func (m AttendanceMethod) Valid() bool {
	switch m {
	case MethodManual, MethodQR, MethodNFC, MethodBiometric:
		return true
	}
	return false
}

// AuthenticityTier murni informasional untuk dashboard, bukan access control.
func (m AttendanceMethod) AuthenticityTier() string {
	switch m {
	case MethodManual:
		return "low"
	case MethodQR:
		return "medium"
	case MethodNFC:
		return "medium_high"
	case MethodBiometric:
		return "high"
	}
	return ""
}

func AllMethodStrings() []string {
	out := make([]string, 0, len(AllMethods))
	for _, m := range AllMethods {
		out = append(out, string(m))
	}
	return out
}

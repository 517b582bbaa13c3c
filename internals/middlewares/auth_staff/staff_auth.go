package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"gymtrack_backend/internals/constants"
)

// Locals keys yang di-hydrate oleh AuthStaff
const (
	LocStaffID    = "staff_id"
	LocGymID      = "gym_id"
	LocStaffRoles = "staff_roles"
)

type AuthStaffOpts struct {
	Secret              string
	AllowCookieFallback bool // pakai cookie access_token jika tidak ada Bearer
}

// AuthStaff memverifikasi token staff dan menaruh staff_id + gym_id + roles di Locals.
// Mekanisme login/refresh/blacklist ada di service auth terpisah; di sini hanya
// ekstraksi identitas — setiap operasi override menolak request tanpa identitas staff.
func AuthStaff(o AuthStaffOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthStaff: Secret wajib diisi")
	}

	return func(c *fiber.Ctx) error {
		// 1) Ambil token: Authorization: Bearer xxx (atau cookie jika diizinkan)
		raw := ""
		if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			raw = strings.TrimSpace(authz[7:])
		} else if o.AllowCookieFallback {
			raw = strings.TrimSpace(c.Cookies("access_token"))
		}
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		// 2) Parse + verifikasi algoritma
		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
		}
		c.Locals("jwt_claims", claims)

		if sid := strClaim(claims, "staff_id"); sid != "" {
			c.Locals(LocStaffID, sid)
		}
		if gid := strClaim(claims, "gym_id"); gid != "" {
			c.Locals(LocGymID, gid)
		}
		if v, ok := claims["roles"]; ok {
			c.Locals(LocStaffRoles, v)
		}

		return c.Next()
	}
}

func strClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

/* ========== getters dipakai controller ========== */

// GetStaffID membaca identitas staff dari token; error kalau tidak ada/invalid.
func GetStaffID(c *fiber.Ctx) (uuid.UUID, error) {
	s, _ := c.Locals(LocStaffID).(string)
	if s == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Identitas staff tidak ditemukan di token")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "staff_id di token tidak valid")
	}
	return id, nil
}

// GetGymID membaca scope gym (tenant) dari token.
func GetGymID(c *fiber.Ctx) (uuid.UUID, error) {
	s, _ := c.Locals(LocGymID).(string)
	if s == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Scope gym tidak ditemukan di token")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "gym_id di token tidak valid")
	}
	return id, nil
}

func hasRole(c *fiber.Ctx, want ...string) bool {
	raw := c.Locals(LocStaffRoles)
	var roles []string
	switch t := raw.(type) {
	case []string:
		roles = t
	case []any:
		for _, v := range t {
			if s, ok := v.(string); ok {
				roles = append(roles, s)
			}
		}
	case string:
		roles = []string{t}
	}
	for _, r := range roles {
		for _, w := range want {
			if strings.EqualFold(r, w) {
				return true
			}
		}
	}
	return false
}

func IsAdmin(c *fiber.Ctx) bool { return hasRole(c, constants.RoleAdmin, constants.RoleOwner) }
func IsOwner(c *fiber.Ctx) bool { return hasRole(c, constants.RoleOwner) }

// RequireAdmin membatasi route grup admin (setting availableMethods dsb).
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !IsAdmin(c) {
			return fiber.NewError(fiber.StatusForbidden, "Hanya admin atau owner yang diizinkan")
		}
		return c.Next()
	}
}

// RequireOwner untuk operasi administratif lintas-privilege (availableMethods).
func RequireOwner() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !IsOwner(c) {
			return fiber.NewError(fiber.StatusForbidden, "Hanya owner yang diizinkan")
		}
		return c.Next()
	}
}

package service

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// QR dinamis = JWT pendek umur berisi gym_id + member_id, ditandatangani
// QR_TOKEN_SECRET. Kiosk men-scan QR member lalu mengirim token ini ke
// endpoint check-in publik.

const DefaultQRTokenTTL = 5 * time.Minute

func IssueQRToken(secret string, gymID, memberID uuid.UUID, ttl time.Duration, now time.Time) (string, time.Time, error) {
	if ttl <= 0 {
		ttl = DefaultQRTokenTTL
	}
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		"typ":       "qr_checkin",
		"gym_id":    gymID.String(),
		"member_id": memberID.String(),
		"iat":       now.Unix(),
		"exp":       exp.Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat QR token")
	}
	return tok, exp, nil
}

func ParseQRToken(secret, raw string, now time.Time) (gymID, memberID uuid.UUID, err error) {
	// exp divalidasi manual terhadap `now` (bukan jam parser), supaya kedaluwarsa
	// bisa diuji dengan clock injeksi
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	tok, perr := parser.Parse(raw, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if perr != nil || !tok.Valid {
		return uuid.Nil, uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "QR token tidak valid")
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || claims["typ"] != "qr_checkin" {
		return uuid.Nil, uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "QR token tidak valid")
	}
	if !claims.VerifyExpiresAt(now.Unix(), true) {
		return uuid.Nil, uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "QR token kedaluwarsa")
	}

	gymStr, _ := claims["gym_id"].(string)
	memberStr, _ := claims["member_id"].(string)
	gymID, err = uuid.Parse(gymStr)
	if err != nil {
		return uuid.Nil, uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "QR token tidak valid")
	}
	memberID, err = uuid.Parse(memberStr)
	if err != nil {
		return uuid.Nil, uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "QR token tidak valid")
	}
	return gymID, memberID, nil
}

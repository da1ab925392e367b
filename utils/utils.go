package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"swiftship-backend/database"
	"swiftship-backend/models/user"
	"swiftship-backend/types"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// trackingPrefix is the human-visible prefix on every tracking number.
const trackingPrefix = "SS-"

// GenerateTrackingNumber produces a candidate tracking number like
// "SS-9F4A1C02BD". Global uniqueness is enforced by the unique index on
// shipments.tracking_number; callers retry on a collision.
func GenerateTrackingNumber() string {
	id := uuid.New()
	hex := strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))
	return trackingPrefix + hex[:10]
}

// ParseMaxDeliveryDays extracts the upper bound from a delivery-day range
// such as "3-5" or "15-30". A single number is its own upper bound.
func ParseMaxDeliveryDays(deliveryDays string) (int, error) {
	parts := strings.Split(strings.TrimSpace(deliveryDays), "-")
	last := strings.TrimSpace(parts[len(parts)-1])

	days, err := strconv.Atoi(last)
	if err != nil {
		return 0, fmt.Errorf("invalid delivery day range %q", deliveryDays)
	}
	if days <= 0 {
		return 0, fmt.Errorf("invalid delivery day range %q", deliveryDays)
	}
	return days, nil
}

// GetProfileByUUID fetches the profile mirrored from the identity provider.
func GetProfileByUUID(userUUID string) (*user.Profile, error) {
	var profile user.Profile
	err := database.DB.Where("uuid = ?", userUUID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, err
	}
	return &profile, nil
}

// CurrentProfile resolves the authenticated user's profile from the JWT
// claims stored by the auth middleware.
func CurrentProfile(c *fiber.Ctx) (*user.Profile, error) {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid user claims")
	}

	userUUID, ok := claims["uuid"].(string)
	if !ok || userUUID == "" {
		return nil, errors.New("user uuid not found in token")
	}

	return GetProfileByUUID(userUUID)
}

// CreateSanitizedLogEntry builds an audit log entry for the current request
// with credentials redacted.
func CreateSanitizedLogEntry(c *fiber.Ctx) types.LogEntry {
	reqHeaders := make(map[string]string)
	for key, values := range c.GetReqHeaders() {
		if strings.EqualFold(key, "Authorization") || strings.EqualFold(key, "Cookie") {
			reqHeaders[key] = "[REDACTED]"
			continue
		}
		reqHeaders[key] = strings.Join(values, ", ")
	}

	respHeaders := make(map[string]string)
	c.Response().Header.VisitAll(func(key, value []byte) {
		respHeaders[string(key)] = string(value)
	})

	reqHeaderJSON, _ := json.Marshal(reqHeaders)
	respHeaderJSON, _ := json.Marshal(respHeaders)

	return types.LogEntry{
		Method:          c.Method(),
		URL:             c.OriginalURL(),
		RequestBody:     string(c.Body()),
		ResponseBody:    string(c.Response().Body()),
		RequestHeaders:  string(reqHeaderJSON),
		ResponseHeaders: string(respHeaderJSON),
		StatusCode:      c.Response().StatusCode(),
		CreatedAt:       time.Now(),
	}
}

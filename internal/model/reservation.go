package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Reservation is a stored table request.
//
// Fields:
//
//	ID        – surrogate key assigned by the store.
//	Name      – guest name.
//	Email     – contact email.
//	Phone     – contact phone number.
//	Date      – requested date as entered (YYYY-MM-DD from the date input).
//	Time      – requested time as entered (HH:MM).
//	Guests    – party size.
//	Message   – free-text note, may be empty.
//	CreatedAt – server-assigned creation timestamp.
type Reservation struct {
	ID        int64     `json:"id"`         // reservations.id
	Name      string    `json:"name"`       // reservations.name
	Email     string    `json:"email"`      // reservations.email
	Phone     string    `json:"phone"`      // reservations.phone
	Date      string    `json:"date"`       // reservations.reservation_date
	Time      string    `json:"time"`       // reservations.reservation_time
	Guests    int       `json:"guests"`     // reservations.guests
	Message   string    `json:"message"`    // reservations.message
	CreatedAt time.Time `json:"created_at"` // reservations.created_at
}

// NewReservation is the payload accepted by POST /reservations.
type NewReservation struct {
	Name    string     `json:"name"`
	Email   string     `json:"email"`
	Phone   string     `json:"phone"`
	Date    string     `json:"date"`
	Time    string     `json:"time"`
	Guests  GuestCount `json:"guests"`
	Message string     `json:"message"`
}

// GuestCount decodes from a JSON number or a numeric string, since HTML
// form values arrive as strings. Empty strings and null decode to zero.
// Values outside the 32-bit range of the guests column are rejected.
type GuestCount int32

func (g *GuestCount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*g = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*g = 0
			return nil
		}
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return fmt.Errorf("guests: %q is not a whole number", s)
		}
		*g = GuestCount(n)
		return nil
	}
	var n int32
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("guests: %w", err)
	}
	*g = GuestCount(n)
	return nil
}

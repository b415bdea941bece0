package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Separator joins title and coordinates inside a stored entry.
// Kept as is so entries written by earlier versions of the bot stay readable.
const Separator = "&#94"

// DecodeFailedText is shown instead of an entry that cannot be parsed
const DecodeFailedText = "Не удалось прочитать запись"

var (
	// ErrSeparatorInTitle is returned when a title contains Separator
	ErrSeparatorInTitle = errors.New("title contains reserved separator")
	// ErrMalformedEntry is returned when a stored entry has an unexpected field count
	ErrMalformedEntry = errors.New("malformed place entry")
)

// Coordinates holds a location pair exactly as it was stored.
// Values are not validated, callers parse them before using as numbers.
type Coordinates struct {
	Latitude  string
	Longitude string
}

// Place is a decoded entry
type Place struct {
	Title       string
	Coordinates *Coordinates // nil while the place is pending
}

// Pending reports whether the place still waits for its location
func (p Place) Pending() bool {
	return p.Coordinates == nil
}

// DisplayString returns user-friendly representation of the place
func (p Place) DisplayString() string {
	if p.Pending() {
		return fmt.Sprintf("Название: %s", p.Title)
	}
	return fmt.Sprintf("Название: '%s', координаты: '%s, %s'", p.Title, p.Coordinates.Latitude, p.Coordinates.Longitude)
}

// ValidateTitle checks that a title can be stored without breaking decoding
func ValidateTitle(title string) error {
	if strings.Contains(title, Separator) {
		return ErrSeparatorInTitle
	}
	return nil
}

// Encode joins title and coordinates into a single entry
func Encode(title, latitude, longitude string) (string, error) {
	if err := ValidateTitle(title); err != nil {
		return "", err
	}
	return title + Separator + latitude + Separator + longitude, nil
}

// Decode parses a stored entry. An entry without Separator is a pending title.
func Decode(entry string) (Place, error) {
	if !strings.Contains(entry, Separator) {
		return Place{Title: entry}, nil
	}

	fields := strings.Split(entry, Separator)
	if len(fields) != 3 {
		return Place{}, fmt.Errorf("%w: %d fields", ErrMalformedEntry, len(fields))
	}

	return Place{
		Title:       fields[0],
		Coordinates: &Coordinates{Latitude: fields[1], Longitude: fields[2]},
	}, nil
}

// DecodeDisplay renders a stored entry for the user
func DecodeDisplay(entry string) string {
	place, err := Decode(entry)
	if err != nil {
		return DecodeFailedText
	}
	return place.DisplayString()
}

// DecodeLocation extracts coordinates from a finalized entry
func DecodeLocation(entry string) (Coordinates, bool) {
	place, err := Decode(entry)
	if err != nil || place.Pending() {
		return Coordinates{}, false
	}
	return *place.Coordinates, true
}

// IsPending reports whether entry is a bare title without coordinates
func IsPending(entry string) bool {
	return !strings.Contains(entry, Separator)
}

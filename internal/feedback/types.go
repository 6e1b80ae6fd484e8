// Package feedback defines the feedback records served by the feedback
// endpoint and decodes them from their JSON wire form.
package feedback

import (
	"errors"
	"strconv"
	"time"
)

// ErrNotFound is returned when a requested feedback id is not in a response.
var ErrNotFound = errors.New("feedback not found")

// Rating is a user score between One and Five.
type Rating int

const (
	One   Rating = 1
	Two   Rating = 2
	Three Rating = 3
	Four  Rating = 4
	Five  Rating = 5
)

// Ratings is the full range of valid ratings in ascending order.
var Ratings = []Rating{One, Two, Three, Four, Five}

// Valid reports whether r is within One..Five.
func (r Rating) Valid() bool {
	return r >= One && r <= Five
}

// String returns the numeric form of the rating.
func (r Rating) String() string {
	return strconv.Itoa(int(r))
}

// Browser describes the client that submitted a feedback item.
type Browser struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Platform string `json:"platform"`
	Device   string `json:"device"`
}

// Feedback is the list-level view of one feedback item.
type Feedback struct {
	ID      string  `json:"id"`
	Rating  Rating  `json:"rating"`
	Comment string  `json:"comment"`
	Browser Browser `json:"browser"`
}

// Viewport is the browser viewport size in CSS pixels.
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Screen is the usable screen area reported by the browser.
type Screen struct {
	AvailableTop    int `json:"available_top"`
	AvailableLeft   int `json:"available_left"`
	AvailableWidth  int `json:"available_width"`
	AvailableHeight int `json:"available_height"`
}

// Position is a longitude/latitude pair.
type Position struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// Geo is the approximate location of the submitter.
type Geo struct {
	Country  string   `json:"country"`
	City     string   `json:"city"`
	Position Position `json:"position"`
}

// Detailed is the full record shown on the details page.
type Detailed struct {
	Feedback
	CreationDate time.Time `json:"creation_date"`
	Email        string    `json:"email"`
	URL          string    `json:"url"`
	Viewport     Viewport  `json:"viewport"`
	Screen       Screen    `json:"screen"`
	Geo          Geo       `json:"geo"`
}

package feedback

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"
)

// DecodeError describes a response body that does not have the expected shape.
type DecodeError struct {
	// Path is the JSON location of the problem, e.g. "items[3].rating".
	Path string
	// Reason is a short human-readable description.
	Reason string
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Path == "" {
		return "invalid response body: " + e.Reason
	}
	return fmt.Sprintf("invalid response body at %s: %s", e.Path, e.Reason)
}

// wire types mirror the endpoint JSON. Pointers distinguish missing fields
// from zero values.
type wireResponse struct {
	Items []json.RawMessage `json:"items"`
}

type wireBrowser struct {
	Browser  *string `json:"Browser"`
	Version  *string `json:"Version"`
	Platform *string `json:"Platform"`
	Device   *string `json:"Device"`
}

type wireViewport struct {
	Width  *int `json:"width"`
	Height *int `json:"height"`
}

type wireScreen struct {
	AvailTop    *int `json:"availTop"`
	AvailLeft   *int `json:"availLeft"`
	AvailWidth  *int `json:"availWidth"`
	AvailHeight *int `json:"availHeight"`
}

type wireGeo struct {
	Country *string  `json:"country"`
	City    *string  `json:"city"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
}

type wireItem struct {
	ID              *string      `json:"id"`
	Rating          *int         `json:"rating"`
	Comment         *string      `json:"comment"`
	ComputedBrowser *wireBrowser `json:"computed_browser"`

	CreationDate *int64        `json:"creation_date"`
	Email        *string       `json:"email"`
	URL          *string       `json:"url"`
	Viewport     *wireViewport `json:"viewport"`
	Screen       *wireScreen   `json:"screen"`
	Geo          *wireGeo      `json:"geo"`
}

// DecodeList decodes the list-level fields of every item in a response.
// Any invalid item fails the whole list.
func DecodeList(r io.Reader) ([]Feedback, error) {
	items, err := decodeItems(r)
	if err != nil {
		return nil, err
	}

	result := make([]Feedback, 0, len(items))
	for i, raw := range items {
		path := fmt.Sprintf("items[%d]", i)
		w, err := unmarshalItem(path, raw)
		if err != nil {
			return nil, err
		}
		fb, err := w.feedback(path)
		if err != nil {
			return nil, err
		}
		result = append(result, fb)
	}

	return result, nil
}

// DecodeDetailed finds the item with the given id and decodes its full record.
// Other items are not validated. Returns ErrNotFound when no item has the id.
func DecodeDetailed(r io.Reader, id string) (Detailed, error) {
	items, err := decodeItems(r)
	if err != nil {
		return Detailed{}, err
	}

	for i, raw := range items {
		var probe struct {
			ID string `json:"id"`
		}
		if json.Unmarshal(raw, &probe) != nil || probe.ID != id {
			continue
		}

		path := fmt.Sprintf("items[%d]", i)
		w, err := unmarshalItem(path, raw)
		if err != nil {
			return Detailed{}, err
		}
		return w.detailed(path)
	}

	return Detailed{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func decodeItems(r io.Reader) ([]json.RawMessage, error) {
	var resp wireResponse
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return nil, jsonError("", err)
	}
	if resp.Items == nil {
		return nil, &DecodeError{Path: "items", Reason: "missing field"}
	}
	return resp.Items, nil
}

func unmarshalItem(path string, raw json.RawMessage) (*wireItem, error) {
	var w wireItem
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, jsonError(path, err)
	}
	return &w, nil
}

// jsonError converts encoding/json failures into a DecodeError with a path.
func jsonError(path string, err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		p := path
		if typeErr.Field != "" {
			p = join(path, typeErr.Field)
		}
		return &DecodeError{
			Path:   p,
			Reason: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
		}
	}
	return &DecodeError{Path: path, Reason: err.Error()}
}

func join(path, field string) string {
	if path == "" {
		return field
	}
	return path + "." + field
}

func missing(path, field string) error {
	return &DecodeError{Path: join(path, field), Reason: "missing field"}
}

func (w *wireItem) feedback(path string) (Feedback, error) {
	if w.ID == nil || *w.ID == "" {
		return Feedback{}, missing(path, "id")
	}
	if w.Rating == nil {
		return Feedback{}, missing(path, "rating")
	}
	rating := Rating(*w.Rating)
	if !rating.Valid() {
		return Feedback{}, &DecodeError{
			Path:   join(path, "rating"),
			Reason: fmt.Sprintf("rating %d is out of range 1..5", *w.Rating),
		}
	}

	b := w.ComputedBrowser
	if b == nil {
		return Feedback{}, missing(path, "computed_browser")
	}
	bpath := join(path, "computed_browser")
	if b.Browser == nil {
		return Feedback{}, missing(bpath, "Browser")
	}
	if b.Version == nil {
		return Feedback{}, missing(bpath, "Version")
	}
	if b.Platform == nil {
		return Feedback{}, missing(bpath, "Platform")
	}

	fb := Feedback{
		ID:     *w.ID,
		Rating: rating,
		Browser: Browser{
			Name:     *b.Browser,
			Version:  *b.Version,
			Platform: *b.Platform,
			Device:   deref(b.Device),
		},
		Comment: deref(w.Comment),
	}
	return fb, nil
}

func (w *wireItem) detailed(path string) (Detailed, error) {
	fb, err := w.feedback(path)
	if err != nil {
		return Detailed{}, err
	}

	if w.CreationDate == nil {
		return Detailed{}, missing(path, "creation_date")
	}
	if w.URL == nil {
		return Detailed{}, missing(path, "url")
	}

	vp := w.Viewport
	if vp == nil {
		return Detailed{}, missing(path, "viewport")
	}
	vpath := join(path, "viewport")
	if vp.Width == nil {
		return Detailed{}, missing(vpath, "width")
	}
	if vp.Height == nil {
		return Detailed{}, missing(vpath, "height")
	}

	sc := w.Screen
	if sc == nil {
		return Detailed{}, missing(path, "screen")
	}
	spath := join(path, "screen")
	for _, field := range []struct {
		name  string
		value *int
	}{
		{"availTop", sc.AvailTop},
		{"availLeft", sc.AvailLeft},
		{"availWidth", sc.AvailWidth},
		{"availHeight", sc.AvailHeight},
	} {
		if field.value == nil {
			return Detailed{}, missing(spath, field.name)
		}
	}

	g := w.Geo
	if g == nil {
		return Detailed{}, missing(path, "geo")
	}
	gpath := join(path, "geo")
	if g.Country == nil {
		return Detailed{}, missing(gpath, "country")
	}
	if g.City == nil {
		return Detailed{}, missing(gpath, "city")
	}
	if g.Lat == nil {
		return Detailed{}, missing(gpath, "lat")
	}
	if g.Lon == nil {
		return Detailed{}, missing(gpath, "lon")
	}

	return Detailed{
		Feedback:     fb,
		CreationDate: time.Unix(*w.CreationDate, 0).UTC(),
		Email:        deref(w.Email),
		URL:          *w.URL,
		Viewport:     Viewport{Width: *vp.Width, Height: *vp.Height},
		Screen: Screen{
			AvailableTop:    *sc.AvailTop,
			AvailableLeft:   *sc.AvailLeft,
			AvailableWidth:  *sc.AvailWidth,
			AvailableHeight: *sc.AvailHeight,
		},
		Geo: Geo{
			Country:  *g.Country,
			City:     *g.City,
			Position: Position{Lng: *g.Lon, Lat: *g.Lat},
		},
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

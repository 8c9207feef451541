package searchapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"musicstream/internal/domain"
)

type wireResponse struct {
	Status  truthy     `json:"status"`
	Message string     `json:"message"`
	Songs   []wireSong `json:"songs"`
}

type wireSong struct {
	ID             flexString  `json:"id"`
	Name           string      `json:"name"`
	PrimaryArtists flexArtists `json:"primaryArtists"`
	Image          imageList   `json:"image"`
	VideoURL       string      `json:"videoUrl"`
}

func (s wireSong) toDomain() domain.Song {
	return domain.Song{
		ID:             string(s.ID),
		Name:           s.Name,
		PrimaryArtists: string(s.PrimaryArtists),
		Images:         []string(s.Image),
		VideoURL:       s.VideoURL,
	}
}

// truthy decodes the success flag the way a JavaScript condition reads it.
// false, null, 0 and "" are false. Any other value is true.
type truthy bool

func (t *truthy) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errors.New("empty status value")
	}
	switch data[0] {
	case 'n':
		*t = false
	case 't':
		*t = true
	case 'f':
		*t = false
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = s != ""
	case '{', '[':
		*t = true
	default:
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return err
		}
		*t = f != 0
	}
	return nil
}

// flexString accepts a JSON string or number
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// flexArtists accepts "A, B", ["A", "B"] or [{"name": "A"}]
type flexArtists string

func (f *flexArtists) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexArtists(s)
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	names := make([]string, 0, len(raw))
	for _, item := range raw {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			names = append(names, s)
			continue
		}
		var obj struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(item, &obj); err != nil {
			return err
		}
		if obj.Name != "" {
			names = append(names, obj.Name)
		}
	}
	*f = flexArtists(strings.Join(names, ", "))
	return nil
}

// imageList accepts a single URL, a list of URLs, or a list of objects
// carrying the URL under "url" or "link"
type imageList []string

func (l *imageList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = imageList{s}
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	urls := make(imageList, 0, len(raw))
	for _, item := range raw {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			if s != "" {
				urls = append(urls, s)
			}
			continue
		}
		var obj struct {
			URL  string `json:"url"`
			Link string `json:"link"`
		}
		if err := json.Unmarshal(item, &obj); err != nil {
			return err
		}
		switch {
		case obj.URL != "":
			urls = append(urls, obj.URL)
		case obj.Link != "":
			urls = append(urls, obj.Link)
		}
	}
	*l = urls
	return nil
}

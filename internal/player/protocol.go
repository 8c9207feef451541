package player

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// DefaultOrigin is the only origin whose status messages are trusted
const DefaultOrigin = "https://www.youtube.com"

// TargetAny is the wildcard target origin used for outbound commands
const TargetAny = "*"

// Player API function names
const (
	FuncPlay  = "playVideo"
	FuncPause = "pauseVideo"
)

// Player state codes reported by the frame
const (
	StateEnded     = 0
	StatePlaying   = 1
	StatePaused    = 2
	StateBuffering = 3
	StateCued      = 5
)

var (
	errNotJSON      = errors.New("payload is not a JSON object")
	errUnknownEvent = errors.New("unrecognised event")
)

// Message is one inbound cross-document message with its declared origin
type Message struct {
	Origin string
	Data   string
}

type command struct {
	Event string `json:"event"`
	Func  string `json:"func"`
}

// EncodeCommand renders the payload that asks the frame to call fn
func EncodeCommand(fn string) string {
	b, _ := json.Marshal(command{Event: "command", Func: fn})
	return string(b)
}

type statusEnvelope struct {
	Event string          `json:"event"`
	Info  json.RawMessage `json:"info"`
}

// parseStatus extracts a player state code from data. ok is false for
// well-formed messages that carry no state.
func parseStatus(data string) (state int, ok bool, err error) {
	raw := bytes.TrimSpace([]byte(data))
	if len(raw) == 0 || raw[0] != '{' {
		return 0, false, errNotJSON
	}

	var env statusEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return 0, false, fmt.Errorf("decode status: %w", err)
	}

	switch env.Event {
	case "onStateChange":
		var code int
		if err := json.Unmarshal(env.Info, &code); err != nil {
			return 0, false, fmt.Errorf("decode onStateChange info: %w", err)
		}
		return code, true, nil

	case "infoDelivery":
		var info struct {
			PlayerState *int `json:"playerState"`
		}
		if len(env.Info) == 0 || json.Unmarshal(env.Info, &info) != nil || info.PlayerState == nil {
			return 0, false, nil
		}
		return *info.PlayerState, true, nil

	case "initialDelivery", "onReady", "apiInfoDelivery", "onVideoProgress":
		return 0, false, nil

	default:
		return 0, false, errUnknownEvent
	}
}

// EmbedURL returns the iframe source for videoID on host
func EmbedURL(host, videoID string) string {
	if host == "" {
		host = DefaultOrigin
	}
	q := url.Values{}
	q.Set("enablejsapi", "1")
	q.Set("modestbranding", "1")
	q.Set("rel", "0")
	q.Set("controls", "1")
	return strings.TrimRight(host, "/") + "/embed/" + url.PathEscape(videoID) + "?" + q.Encode()
}

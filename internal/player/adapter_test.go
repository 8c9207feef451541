package player

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sent struct {
	data   string
	target string
}

// recordingFrame captures every posted message
type recordingFrame struct {
	posts []sent
	err   error
}

func (f *recordingFrame) PostMessage(data, targetOrigin string) error {
	if f.err != nil {
		return f.err
	}
	f.posts = append(f.posts, sent{data: data, target: targetOrigin})
	return nil
}

func (f *recordingFrame) funcs() []string {
	out := make([]string, 0, len(f.posts))
	for _, p := range f.posts {
		switch p.data {
		case EncodeCommand(FuncPlay):
			out = append(out, FuncPlay)
		case EncodeCommand(FuncPause):
			out = append(out, FuncPause)
		default:
			out = append(out, "?"+p.data)
		}
	}
	return out
}

func status(code string) Message {
	return Message{Origin: DefaultOrigin, Data: `{"event":"onStateChange","info":` + code + `}`}
}

func TestNewAdapterStartsPausedWithOverlay(t *testing.T) {
	a := NewAdapter("f1", "vid", &recordingFrame{})
	assert.False(t, a.Playing())
	assert.True(t, a.OverlayVisible())
}

func TestPlaySendsCommandEachTime(t *testing.T) {
	frame := &recordingFrame{}
	var notified []string
	a := NewAdapter("f1", "vid", frame, OnPlay(func(id string) { notified = append(notified, id) }))

	require.NoError(t, a.Play())
	assert.True(t, a.Playing())
	assert.False(t, a.OverlayVisible())
	require.Len(t, frame.posts, 1)
	assert.JSONEq(t, `{"event":"command","func":"playVideo"}`, frame.posts[0].data)
	assert.Equal(t, "*", frame.posts[0].target)

	require.NoError(t, a.Play())
	assert.Equal(t, []string{FuncPlay, FuncPlay}, frame.funcs())
	assert.Equal(t, []string{"f1", "f1"}, notified)
}

func TestPausedStatusOverridesOptimisticPlay(t *testing.T) {
	a := NewAdapter("f1", "vid", &recordingFrame{})
	require.NoError(t, a.Play())

	changed := a.HandleMessage(status("2"))

	assert.True(t, changed)
	assert.False(t, a.Playing())
	assert.True(t, a.OverlayVisible())
}

func TestPlayingStatusFromFrame(t *testing.T) {
	var reported []bool
	a := NewAdapter("f1", "vid", &recordingFrame{}, OnStatus(func(_ string, p bool) { reported = append(reported, p) }))

	assert.True(t, a.HandleMessage(status("1")))
	assert.True(t, a.Playing())
	assert.False(t, a.HandleMessage(status("1")), "repeat status is not a change")
	assert.Equal(t, []bool{true}, reported)
}

func TestForeignOriginIsIgnored(t *testing.T) {
	a := NewAdapter("f1", "vid", &recordingFrame{})
	require.NoError(t, a.Play())

	for _, origin := range []string{
		"https://evil.example",
		"http://www.youtube.com",
		"https://www.youtube.com.evil.example",
		"https://www.youtube.com/",
		"",
	} {
		changed := a.HandleMessage(Message{Origin: origin, Data: `{"event":"onStateChange","info":2}`})
		assert.False(t, changed, origin)
		assert.True(t, a.Playing(), "origin %q must not change state", origin)
	}
}

func TestCustomOrigin(t *testing.T) {
	a := NewAdapter("f1", "vid", &recordingFrame{}, WithOrigin("https://www.youtube-nocookie.com"))
	assert.False(t, a.HandleMessage(status("1")))
	assert.True(t, a.HandleMessage(Message{Origin: "https://www.youtube-nocookie.com", Data: `{"event":"onStateChange","info":1}`}))
}

func TestMalformedMessagesAreIgnored(t *testing.T) {
	a := NewAdapter("f1", "vid", &recordingFrame{})
	require.NoError(t, a.Play())

	for _, data := range []string{
		``,
		`not json`,
		`{"event":"onStateChange","info":`,
		`{"event":"onStateChange","info":"paused"}`,
		`[2]`,
		`{"event":"somethingElse","info":2}`,
	} {
		assert.False(t, a.HandleMessage(Message{Origin: DefaultOrigin, Data: data}), data)
		assert.True(t, a.Playing(), data)
	}
}

func TestOtherStateCodesAreNoOps(t *testing.T) {
	a := NewAdapter("f1", "vid", &recordingFrame{})
	require.NoError(t, a.Play())

	for _, code := range []string{"-1", "0", "3", "5"} {
		assert.False(t, a.HandleMessage(status(code)), code)
		assert.True(t, a.Playing(), code)
	}
}

func TestInfoDeliveryPlayerState(t *testing.T) {
	a := NewAdapter("f1", "vid", &recordingFrame{})

	assert.True(t, a.HandleMessage(Message{Origin: DefaultOrigin, Data: `{"event":"infoDelivery","info":{"playerState":1,"currentTime":3.2}}`}))
	assert.True(t, a.Playing())
	assert.False(t, a.HandleMessage(Message{Origin: DefaultOrigin, Data: `{"event":"infoDelivery","info":{"currentTime":4.0}}`}))
	assert.True(t, a.Playing())
}

func TestSyncSendsPlayThenPause(t *testing.T) {
	frame := &recordingFrame{}
	a := NewAdapter("f1", "vid", frame)

	require.NoError(t, a.Sync(false))
	require.NoError(t, a.Sync(true))
	require.NoError(t, a.Sync(false))

	assert.Equal(t, []string{FuncPlay, FuncPause}, frame.funcs())
	assert.False(t, a.Playing())
}

func TestSyncAfterPlayDoesNotResend(t *testing.T) {
	frame := &recordingFrame{}
	a := NewAdapter("f1", "vid", frame)

	require.NoError(t, a.Play())
	require.NoError(t, a.Sync(true))

	assert.Equal(t, []string{FuncPlay}, frame.funcs())
}

func TestClickOverlayOnlyWhilePaused(t *testing.T) {
	frame := &recordingFrame{}
	a := NewAdapter("f1", "vid", frame)

	require.NoError(t, a.ClickOverlay())
	require.NoError(t, a.ClickOverlay())

	assert.Equal(t, []string{FuncPlay}, frame.funcs())
}

func TestFrameErrorLeavesStateUntouched(t *testing.T) {
	a := NewAdapter("f1", "vid", &recordingFrame{err: errors.New("closed")})

	assert.Error(t, a.Play())
	assert.False(t, a.Playing())
	assert.Error(t, a.Sync(true))
	assert.False(t, a.Playing())
}

func TestEmbedURL(t *testing.T) {
	a := NewAdapter("f1", "dQw4w9WgXcQ", nil)
	u, err := url.Parse(a.EmbedURL())
	require.NoError(t, err)

	assert.Equal(t, "www.youtube.com", u.Host)
	assert.Equal(t, "/embed/dQw4w9WgXcQ", u.Path)
	assert.Equal(t, "1", u.Query().Get("enablejsapi"))
	assert.Equal(t, "1", u.Query().Get("modestbranding"))
	assert.Equal(t, "0", u.Query().Get("rel"))
	assert.Equal(t, "1", u.Query().Get("controls"))
}

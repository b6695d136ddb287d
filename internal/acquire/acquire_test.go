package acquire

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/laytan/ytsubtitles/internal/caption"
	"github.com/laytan/ytsubtitles/internal/tube"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	manualEn = tube.Track{Lang: "en", VSS: ".en"}
	manualFr = tube.Track{Lang: "fr", VSS: ".fr"}
	autoEn   = tube.Track{Lang: "en", Kind: tube.KindASR, VSS: "a.en"}
	autoId   = tube.Track{Lang: "id", Kind: tube.KindASR, VSS: "a.id"}

	hello = caption.Sequence{{Text: "hello", Start: 0, Duration: 1}}
	bye   = caption.Sequence{{Text: "bye", Start: 0, Duration: 1}}
)

type fakeTracks struct {
	tracks  []tube.Track
	listErr error
	cues    map[string]caption.Sequence // By VSS.
	fetched []string
}

func (f *fakeTracks) ListTracks(context.Context, string) ([]tube.Track, error) {
	return f.tracks, f.listErr
}

func (f *fakeTracks) FetchTrack(_ context.Context, _ string, track tube.Track) (caption.Sequence, error) {
	f.fetched = append(f.fetched, track.VSS)
	if cues, ok := f.cues[track.VSS]; ok {
		return cues, nil
	}

	return nil, fmt.Errorf("track %s: %w", track, tube.ErrTrackUnusable)
}

type fakeSource struct {
	cues  caption.Sequence
	err   error
	calls int
}

func (f *fakeSource) Acquire(context.Context, string, string) (caption.Sequence, error) {
	f.calls++
	return f.cues, f.err
}

type fakeTranscripts struct {
	prefs []string
	cues  caption.Sequence
}

func (f *fakeTranscripts) Fetch(_ context.Context, _ string, pref string) (caption.Sequence, error) {
	f.prefs = append(f.prefs, pref)
	if f.cues == nil {
		return nil, tube.ErrNoTranscript
	}

	return f.cues, nil
}

func TestOrder(t *testing.T) {
	tracks := []tube.Track{manualEn, manualFr, autoEn}

	assert.Equal(t, []tube.Track{manualEn, autoEn, manualFr}, Order(tracks, "en"))
	assert.Equal(t, []tube.Track{manualEn, manualFr, autoEn}, Order(tracks, Auto))
	assert.Equal(t, []tube.Track{manualEn, manualFr, autoEn}, Order(tracks, ""))
	assert.Equal(t, []tube.Track{manualFr, manualEn, autoEn}, Order(tracks, "fr"))

	mixed := []tube.Track{autoEn, autoId, manualFr, manualEn}
	assert.Equal(t, []tube.Track{autoId, manualFr, manualEn, autoEn}, Order(mixed, "id"))
	assert.Equal(t, []tube.Track{manualFr, manualEn, autoEn, autoId}, Order(mixed, Auto))
	assert.Equal(t, []tube.Track{manualFr, manualEn, autoEn, autoId}, Order(mixed, "ja"))

	assert.Equal(t, []tube.Track{autoEn, autoId, manualFr, manualEn}, mixed, "input must not be reordered")
}

func TestOrderPreferredLanguageBeforeOtherManual(t *testing.T) {
	tracks := []tube.Track{manualFr, autoEn}

	assert.Equal(t, []tube.Track{autoEn, manualFr}, Order(tracks, "en"))
	assert.Equal(t, []tube.Track{manualFr, autoEn}, Order(tracks, Auto))
}

func TestTracksPreferredLanguageServed(t *testing.T) {
	client := &fakeTracks{
		tracks: []tube.Track{manualFr, autoEn},
		cues:   map[string]caption.Sequence{manualFr.VSS: bye, autoEn.VSS: hello},
	}

	cues, err := Tracks{Client: client}.Acquire(context.Background(), "abcdefghijk", "en")
	require.NoError(t, err)
	assert.Equal(t, hello, cues)
	assert.Equal(t, []string{autoEn.VSS}, client.fetched)
}

func TestTracksFirstUsable(t *testing.T) {
	client := &fakeTracks{
		tracks: []tube.Track{autoEn, manualFr, manualEn},
		cues:   map[string]caption.Sequence{manualFr.VSS: bye},
	}

	cues, err := Tracks{Client: client}.Acquire(context.Background(), "abcdefghijk", "en")
	require.NoError(t, err)
	assert.Equal(t, bye, cues)
	assert.Equal(t, []string{autoEn.VSS, manualEn.VSS, manualFr.VSS}, client.fetched)
}

func TestTracksNoneListed(t *testing.T) {
	_, err := Tracks{Client: &fakeTracks{}}.Acquire(context.Background(), "abcdefghijk", Auto)
	assert.ErrorIs(t, err, ErrNoCaptions)
}

func TestTracksAllUnusable(t *testing.T) {
	client := &fakeTracks{tracks: []tube.Track{manualEn, autoEn}}

	_, err := Tracks{Client: client}.Acquire(context.Background(), "abcdefghijk", Auto)
	assert.ErrorIs(t, err, ErrNoCaptions)
	assert.Equal(t, []string{manualEn.VSS, autoEn.VSS}, client.fetched)
}

func TestTracksListTransportFailure(t *testing.T) {
	client := &fakeTracks{listErr: fmt.Errorf("listing: %w", tube.ErrTransport)}

	_, err := Tracks{Client: client}.Acquire(context.Background(), "abcdefghijk", Auto)
	assert.ErrorIs(t, err, tube.ErrTransport)
	assert.NotErrorIs(t, err, ErrNoCaptions)
}

func TestLibraryAutoMeansNoPreference(t *testing.T) {
	tr := &fakeTranscripts{cues: hello}

	_, err := Library{Transcripts: tr}.Acquire(context.Background(), "abcdefghijk", Auto)
	require.NoError(t, err)
	_, err = Library{Transcripts: tr}.Acquire(context.Background(), "abcdefghijk", "id")
	require.NoError(t, err)

	assert.Equal(t, []string{"", "id"}, tr.prefs)
}

func TestChainLibraryFirst(t *testing.T) {
	tr := &fakeTranscripts{cues: hello}
	client := &fakeTracks{tracks: []tube.Track{manualEn}, cues: map[string]caption.Sequence{manualEn.VSS: bye}}
	chain := &Chain{Sources: []Source{Library{Transcripts: tr}, Tracks{Client: client}}}

	cues, err := chain.Acquire(context.Background(), "abcdefghijk", "en")
	require.NoError(t, err)
	assert.Equal(t, hello, cues)
	assert.Empty(t, client.fetched, "tracks must not be fetched once the library succeeded")
}

func TestChainFallsBackToTracks(t *testing.T) {
	tr := &fakeTranscripts{}
	client := &fakeTracks{tracks: []tube.Track{manualEn}, cues: map[string]caption.Sequence{manualEn.VSS: bye}}
	chain := &Chain{Sources: []Source{Library{Transcripts: tr}, Tracks{Client: client}}}

	cues, err := chain.Acquire(context.Background(), "abcdefghijk", "")
	require.NoError(t, err)
	assert.Equal(t, bye, cues)
	assert.Equal(t, []string{""}, tr.prefs)
}

func TestChainEmptyEverything(t *testing.T) {
	chain := &Chain{Sources: []Source{
		Library{Transcripts: &fakeTranscripts{}},
		Tracks{Client: &fakeTracks{}},
	}}

	cues, err := chain.Acquire(context.Background(), "abcdefghijk", Auto)
	assert.ErrorIs(t, err, ErrNoCaptions)
	assert.Nil(t, cues)
}

func TestChainEmptySequenceIsNotSuccess(t *testing.T) {
	empty := &fakeSource{cues: caption.Sequence{}}
	last := &fakeSource{cues: hello}

	cues, err := (&Chain{Sources: []Source{empty, last}}).Acquire(context.Background(), "abcdefghijk", Auto)
	require.NoError(t, err)
	assert.Equal(t, hello, cues)
	assert.Equal(t, 1, empty.calls)
}

func TestChainSurfacesTransportOnlyWhenExhausted(t *testing.T) {
	down := &fakeSource{err: fmt.Errorf("listing: %w", tube.ErrTransport)}
	other := &fakeSource{err: errors.New("boom")}

	_, err := (&Chain{Sources: []Source{other, down}}).Acquire(context.Background(), "abcdefghijk", Auto)
	assert.ErrorIs(t, err, tube.ErrTransport)

	ok := &fakeSource{cues: hello}
	cues, err := (&Chain{Sources: []Source{down, ok}}).Acquire(context.Background(), "abcdefghijk", Auto)
	require.NoError(t, err)
	assert.Equal(t, hello, cues)
}

func TestChainCancelled(t *testing.T) {
	first := &fakeSource{err: errors.New("boom")}
	second := &fakeSource{cues: hello}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&Chain{Sources: []Source{first, second}}).Acquire(ctx, "abcdefghijk", Auto)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, second.calls)
}

package editor

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"
	"github.com/pkg/errors"
)

// PreviewRate is the output sample rate; clips are resampled to it.
const PreviewRate = beep.SampleRate(44100)

var ErrUnsupportedAudio = errors.New("unsupported audio format")

// Speaker is an audio output.
type Speaker interface {
	Play(s beep.Streamer)
	Clear()
}

type beepSpeaker struct{}

func (beepSpeaker) Play(s beep.Streamer) { speaker.Play(s) }
func (beepSpeaker) Clear()               { speaker.Clear() }

// OpenSpeaker initializes the system audio device.
func OpenSpeaker() (Speaker, error) {
	if err := speaker.Init(PreviewRate, PreviewRate.N(100*time.Millisecond)); err != nil {
		return nil, errors.Wrap(err, "init speaker")
	}
	return beepSpeaker{}, nil
}

// AudioPreview plays one clip at a time.
type AudioPreview struct {
	out Speaker

	mu      sync.Mutex
	playing string
	ctrl    *beep.Ctrl
	closer  beep.StreamSeekCloser
}

func NewAudioPreview(out Speaker) *AudioPreview {
	return &AudioPreview{out: out}
}

func decodeAudio(file string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, beep.Format{}, err
	}
	var (
		s      beep.StreamSeekCloser
		format beep.Format
	)
	switch strings.ToLower(filepath.Ext(file)) {
	case ".wav":
		s, format, err = wav.Decode(f)
	case ".ogg":
		s, format, err = vorbis.Decode(f)
	case ".mp3":
		s, format, err = mp3.Decode(f)
	default:
		err = ErrUnsupportedAudio
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, errors.Wrapf(err, "decode %s", filepath.Base(file))
	}
	return s, format, nil
}

// Play stops any clip in progress and starts the one at file. key names the
// clip for Playing.
func (a *AudioPreview) Play(file, key string) error {
	s, format, err := decodeAudio(file)
	if err != nil {
		return err
	}

	a.Stop()

	var stream beep.Streamer = s
	if format.SampleRate != PreviewRate {
		stream = beep.Resample(4, format.SampleRate, PreviewRate, s)
	}
	ctrl := &beep.Ctrl{Streamer: stream}

	a.mu.Lock()
	a.playing, a.ctrl, a.closer = key, ctrl, s
	a.mu.Unlock()

	a.out.Play(beep.Seq(ctrl, beep.Callback(func() { a.finished(ctrl) })))
	return nil
}

func (a *AudioPreview) finished(ctrl *beep.Ctrl) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ctrl == ctrl {
		a.release()
	}
}

// Stop silences the current clip.
func (a *AudioPreview) Stop() {
	a.out.Clear()
	a.mu.Lock()
	defer a.mu.Unlock()
	a.release()
}

func (a *AudioPreview) release() {
	if a.closer != nil {
		a.closer.Close()
	}
	a.playing, a.ctrl, a.closer = "", nil, nil
}

// Playing returns the key of the clip in progress, or "".
func (a *AudioPreview) Playing() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.playing
}

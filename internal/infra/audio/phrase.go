package audio

import (
	"math"
	"time"

	"jarvis/internal/domain"
)

const (
	minEnergyThreshold = 300.0
	thresholdRatio     = 1.5
	pauseThreshold     = 800 * time.Millisecond
)

// RMS is the root mean square energy of a frame.
func RMS(frame []int16) float64 {
	if len(frame) == 0 {
		return 0
	}
	var sum float64
	for _, s := range frame {
		v := float64(s)
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(frame)))
}

// SpeechThreshold derives the energy level that counts as speech from the
// measured ambient energy.
func SpeechThreshold(ambient float64) float64 {
	return math.Max(minEnergyThreshold, ambient*thresholdRatio)
}

// phraseRecorder segments a stream of frames into one phrase: it waits for
// energy above the threshold, then records until a pause or the phrase limit.
type phraseRecorder struct {
	threshold float64
	frameDur  time.Duration
	opts      domain.ListenOptions

	waited  time.Duration
	silence time.Duration
	length  time.Duration
	started bool
	samples []int16
}

func newPhraseRecorder(threshold float64, frameDur time.Duration, opts domain.ListenOptions) *phraseRecorder {
	return &phraseRecorder{
		threshold: threshold,
		frameDur:  frameDur,
		opts:      opts,
	}
}

// Feed consumes one frame. It reports true once the phrase is complete and
// returns domain.ErrListenTimeout when speech never started.
func (p *phraseRecorder) Feed(frame []int16) (bool, error) {
	loud := RMS(frame) > p.threshold

	if !p.started {
		if !loud {
			p.waited += p.frameDur
			if p.opts.Timeout > 0 && p.waited >= p.opts.Timeout {
				return false, domain.ErrListenTimeout
			}
			return false, nil
		}
		p.started = true
	}

	p.samples = append(p.samples, frame...)
	p.length += p.frameDur

	if loud {
		p.silence = 0
	} else {
		p.silence += p.frameDur
	}

	if p.silence >= pauseThreshold {
		return true, nil
	}
	if p.opts.PhraseTimeLimit > 0 && p.length >= p.opts.PhraseTimeLimit {
		return true, nil
	}
	return false, nil
}

func (p *phraseRecorder) Samples() []int16 {
	return p.samples
}

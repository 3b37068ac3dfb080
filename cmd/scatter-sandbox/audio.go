package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	audioSampleRate = beep.SampleRate(44100)

	fullCueHz      = 880
	fullCueLength  = 50 * time.Millisecond
	shortCueHz     = 220
	shortCueLength = 200 * time.Millisecond
)

// cuePlayer signals the outcome of a resample
type cuePlayer interface {
	Cue(partial bool)
}

// audioCue plays a short high tone for a complete scatter and a longer low
// tone when some points could not be placed
type audioCue struct{}

func newAudioCue() (*audioCue, error) {
	if err := speaker.Init(audioSampleRate, audioSampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &audioCue{}, nil
}

func (a *audioCue) Cue(partial bool) {
	freq, length := float64(fullCueHz), fullCueLength
	if partial {
		freq, length = shortCueHz, shortCueLength
	}

	sine, err := generators.SineTone(audioSampleRate, freq)
	if err != nil {
		return
	}
	speaker.Clear()
	speaker.Play(beep.Take(audioSampleRate.N(length), sine))
}

func (a *audioCue) Close() {
	speaker.Close()
}

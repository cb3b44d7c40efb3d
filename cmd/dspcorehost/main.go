// main.go - demo host for the DSP core: drives one 128-sample callback at
// a time through an ADSR-gated, Moog-filtered oscillator into the
// multiband compressor, and out to an audio backend.

package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"golang.design/x/clipboard"

	"github.com/greydoubt/dspcore/internal/adsr"
	"github.com/greydoubt/dspcore/internal/audioio"
	"github.com/greydoubt/dspcore/internal/dashboard"
	"github.com/greydoubt/dspcore/internal/dspcore"
	"github.com/greydoubt/dspcore/internal/moogfilter"
	"github.com/greydoubt/dspcore/internal/telemetry"
)

func main() {
	toneHz := flag.Float64("freq", 220, "oscillator frequency in Hz")
	durationSec := flag.Float64("duration", 5, "how long to run, in seconds")
	copyPreset := flag.Bool("copy-preset", false, "copy the running compressor preset as JSON to the system clipboard on exit")
	quiet := flag.Bool("quiet", false, "suppress the terminal telemetry dashboard")
	flag.Parse()

	rendered := adsr.NewRenderedTable()
	envelope := adsr.New(
		[]adsr.Step{
			{X: 0.1, Y: 1, Ramper: adsr.Linear{}},
			{X: 0.3, Y: 0.7, Ramper: adsr.Linear{}},
			{X: 0.8, Y: 0.7, Ramper: adsr.Linear{}},
			{X: 1.0, Y: 0, Ramper: adsr.Exponential{Exponent: 2}},
		},
		nil,
		float32(dspcore.SampleRate)*2,
		0.8,
		rendered,
	)
	envelope.Render()
	envelope.Gate()

	var ladder moogfilter.Filter

	core := dspcore.InitCompressor()

	preset := CompressorPreset{
		PreGain: 1, PostGain: 1,
		LowGain: 1, MidGain: 1, HighGain: 1,
		LowAttackMs: 10, LowReleaseMs: 120,
		MidAttackMs: 8, MidReleaseMs: 90,
		HighAttackMs: 5, HighReleaseMs: 60,
		LowBottomThresholdDB: -40, LowTopThresholdDB: -6,
		MidBottomThresholdDB: -40, MidTopThresholdDB: -6,
		HighBottomThresholdDB: -40, HighTopThresholdDB: -6,
		BottomRatio: 2, TopRatio: 4, Knee: 0,
		LookaheadSamples: 512,
	}

	player, err := audioio.NewOtoPlayer(dspcore.SampleRate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dspcorehost: failed to initialize audio: %v\n", err)
		os.Exit(1)
	}
	frames := audioio.NewFrameSource()
	player.SetupPlayer(frames)

	var dash *dashboard.Dashboard
	if !*quiet {
		dash = dashboard.New(func() [16]float32 { return *core.SAB() }, 150*time.Millisecond)
		dash.Start()
	}

	reporter := telemetry.NewReporter(log.Default(), 50)

	phase := float32(0)
	phaseStep := 2 * math.Pi * (*toneHz) / dspcore.SampleRate

	totalFrames := int(*durationSec * dspcore.SampleRate / dspcore.FrameSize)

	player.Start()

	for f := 0; f < totalFrames; f++ {
		envelope.RenderFrame()
		env := envelope.CurFrameOutput()

		var moogParams [moogfilter.ParamCount][dspcore.FrameSize]float32
		for i := range moogParams[moogfilter.ParamCutoff] {
			moogParams[moogfilter.ParamCutoff][i] = 400 + env[i]*4000
			moogParams[moogfilter.ParamResonance][i] = 3
			moogParams[moogfilter.ParamDrive][i] = 1
		}

		in := core.InputBuf()
		for i := 0; i < dspcore.FrameSize; i++ {
			in[i] = env[i] * float32(math.Sin(float64(phase)))
			phase += phaseStep
			if phase > 2*math.Pi {
				phase -= 2 * math.Pi
			}
		}
		var baseFreqs [dspcore.FrameSize]float32
		ladder.ApplyAll(moogParams, &baseFreqs, in)

		core.Process(
			preset.PreGain, preset.PostGain,
			dspcore.BandGains{Low: preset.LowGain, Mid: preset.MidGain, High: preset.HighGain},
			dspcore.BandEnvelope{AttackMs: preset.LowAttackMs, ReleaseMs: preset.LowReleaseMs, BottomThresholdDB: preset.LowBottomThresholdDB, TopThresholdDB: preset.LowTopThresholdDB},
			dspcore.BandEnvelope{AttackMs: preset.MidAttackMs, ReleaseMs: preset.MidReleaseMs, BottomThresholdDB: preset.MidBottomThresholdDB, TopThresholdDB: preset.MidTopThresholdDB},
			dspcore.BandEnvelope{AttackMs: preset.HighAttackMs, ReleaseMs: preset.HighReleaseMs, BottomThresholdDB: preset.HighBottomThresholdDB, TopThresholdDB: preset.HighTopThresholdDB},
			preset.BottomRatio, preset.TopRatio, preset.Knee,
			preset.LookaheadSamples,
		)

		frames.Push(core.OutputBuf()[:])
		reporter.Report(*core.SAB())

		if f == totalFrames*8/10 {
			envelope.Ungate()
		}
	}

	for frames.QueuedFrames() > 0 {
		time.Sleep(20 * time.Millisecond)
	}
	player.Stop()
	player.Close()

	if dash != nil {
		dash.Stop()
	}

	if *copyPreset {
		if err := clipboard.Init(); err != nil {
			fmt.Fprintf(os.Stderr, "dspcorehost: clipboard unavailable: %v\n", err)
		} else {
			payload, err := preset.Marshal()
			if err != nil {
				fmt.Fprintf(os.Stderr, "dspcorehost: failed to marshal preset: %v\n", err)
			} else {
				clipboard.Write(clipboard.FmtText, payload)
				fmt.Println("preset copied to clipboard")
			}
		}
	}
}

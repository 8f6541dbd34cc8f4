package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"go-fingerpick/audio"
	"go-fingerpick/config"
	"go-fingerpick/debug"
	"go-fingerpick/pedal"
	"go-fingerpick/sequencer"
	"go-fingerpick/theme"
	"go-fingerpick/tui"
)

func main() {
	var (
		debugFlag   = flag.Bool("debug", false, "write a debug log under ~/.config/go-fingerpick")
		backendFlag = flag.String("backend", "", "playback backend: midi or sampler")
		portFlag    = flag.String("port", "", "MIDI output port name")
		sampleFlag  = flag.String("sample", "", "instrument wav for the sampler backend")
	)
	flag.Parse()

	if *debugFlag {
		if err := debug.Enable(); err != nil {
			fmt.Fprintln(os.Stderr, "debug log:", err)
		}
		defer debug.Disable()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		cfg = config.DefaultConfig()
	}
	if *backendFlag != "" {
		cfg.Backend = config.BackendType(*backendFlag)
	}
	if *portFlag != "" {
		cfg.MIDIPort = *portFlag
	}
	if *sampleFlag != "" {
		cfg.SamplePath = *sampleFlag
	}

	th := theme.New(theme.LoadGPLOr(cfg.PalettePath))

	var backend audio.Backend
	switch cfg.Backend {
	case config.BackendSampler:
		sampler, err := audio.NewSampler(cfg.SamplePath)
		if err != nil {
			// Missing instrument degrades to silence, it never aborts.
			fmt.Fprintln(os.Stderr, err)
		}
		backend = sampler
	default:
		backend = audio.NewMIDIOut(cfg.MIDIPort)
	}

	engine := sequencer.NewEngine(backend, cfg.UI.LastTempo, cfg.UI.LastSwing)
	defer engine.Close()

	if err := engine.StartAudio(); err != nil {
		// Surfaced once; the UI keeps running and playback no-ops.
		fmt.Fprintln(os.Stderr, "audio unavailable:", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go pedal.NewListener(engine, cfg.PedalPort).Run(ctx)

	m := tui.NewModel(engine, th)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	_, runErr := p.Run()

	snap := engine.Snapshot()
	cfg.UI.LastTempo = snap.Tempo
	cfg.UI.LastSwing = snap.Swing
	if err := cfg.Save(); err != nil {
		debug.Log("main", "config save failed: %v", err)
	}

	if runErr != nil {
		fmt.Printf("Error: %v\n", runErr)
		os.Exit(1)
	}
}

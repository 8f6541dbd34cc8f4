package main

import (
	"fmt"
	"os"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"go-fingerpick/sequencer"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "play":
		port := ""
		if len(os.Args) > 2 {
			port = os.Args[2]
		}
		playTestChord(port)
	case "poll":
		pollPorts()
	default:
		usage()
	}
}

func usage() {
	fmt.Println("MIDI Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list         - List all MIDI ports")
	fmt.Println("  play [port]  - Play a test voicing on an output port")
	fmt.Println("  poll         - Poll for port changes")
}

func listPorts() {
	fmt.Println("(waiting up to 3 seconds...)")

	type result struct {
		ins  []drivers.In
		outs []drivers.Out
	}
	ch := make(chan result, 1)
	go func() {
		ch <- result{ins: midi.GetInPorts(), outs: midi.GetOutPorts()}
	}()

	select {
	case r := <-ch:
		fmt.Println("=== MIDI Input Ports ===")
		for i, p := range r.ins {
			fmt.Printf("  %d: %s\n", i, p.String())
		}
		fmt.Println("\n=== MIDI Output Ports ===")
		for i, p := range r.outs {
			fmt.Printf("  %d: %s\n", i, p.String())
		}
	case <-time.After(3 * time.Second):
		fmt.Println("\nTIMEOUT! MIDI subsystem is hung.")
		fmt.Println("Fix (macOS): sudo killall coreaudiod midiserver")
	}
}

// playTestChord strums the tonic voicing so the output chain can be checked
// without launching the sequencer.
func playTestChord(portName string) {
	defer midi.CloseDriver()

	var out drivers.Out
	for _, p := range midi.GetOutPorts() {
		if portName == "" || p.String() == portName {
			out = p
			break
		}
	}
	if out == nil {
		fmt.Printf("no output port matching %q\n", portName)
		return
	}

	send, err := midi.SendTo(out)
	if err != nil {
		fmt.Println("open failed:", err)
		return
	}
	fmt.Printf("playing on %q\n", out.String())

	v := sequencer.VoicingFor(sequencer.ChordI)
	for _, pitch := range []uint8{v.Root, v.Third, v.Fifth, v.Octave} {
		send(midi.NoteOn(0, pitch, 100))
		time.Sleep(150 * time.Millisecond)
	}
	time.Sleep(time.Second)
	for _, pitch := range []uint8{v.Root, v.Third, v.Fifth, v.Octave} {
		send(midi.NoteOff(0, pitch))
	}
}

func pollPorts() {
	fmt.Println("polling for port changes, ctrl+c to stop")

	seen := make(map[string]bool)
	for {
		current := make(map[string]bool)
		for _, p := range midi.GetInPorts() {
			current["in:"+p.String()] = true
		}
		for _, p := range midi.GetOutPorts() {
			current["out:"+p.String()] = true
		}

		for name := range current {
			if !seen[name] {
				fmt.Println("+", name)
			}
		}
		for name := range seen {
			if !current[name] {
				fmt.Println("-", name)
			}
		}
		seen = current
		time.Sleep(time.Second)
	}
}

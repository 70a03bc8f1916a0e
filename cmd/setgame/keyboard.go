package main

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"setgame-server/pkg/room"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// keyMaps are the keys of each human player, slot 0 first
var keyMaps = []string{
	"qwerasdfzxcv",
	"uiopjkl;m,./",
}

const ctrlC = 0x03

type keyTarget struct {
	player int
	slot   int
}

// keyboard routes key presses to the human players sharing it
type keyboard struct {
	targets map[byte]keyTarget
	players []*room.Player
}

func newKeyboard(humans []*room.Player, tableSize int) *keyboard {
	k := &keyboard{
		targets: make(map[byte]keyTarget),
		players: humans,
	}

	for i := range humans {
		if i >= len(keyMaps) {
			break
		}

		for slot, key := range []byte(keyMaps[i]) {
			if slot >= tableSize {
				break
			}

			k.targets[key] = keyTarget{player: i, slot: slot}
		}
	}

	return k
}

// press forwards the key to its player, and returns true if it was accepted
func (k *keyboard) press(key byte) bool {
	if key >= 'A' && key <= 'Z' {
		key += 'a' - 'A'
	}

	target, ok := k.targets[key]
	if !ok {
		return false
	}

	return k.players[target.player].KeyPressed(target.slot)
}

// read forwards every key read from r until ctrl-c or the end of input
// quit is called when the user presses ctrl-c
func (k *keyboard) read(r io.Reader, quit func()) {
	br := bufio.NewReader(r)
	for {
		key, err := br.ReadByte()
		if err != nil {
			if err != io.EOF {
				logrus.WithError(err).Error("could not read from the keyboard")
			}

			return
		}

		if key == ctrlC {
			quit()
			return
		}

		k.press(key)
	}
}

// listen reads key presses from stdin in the background
// If stdin is a terminal it's put into raw mode; the returned func restores it
func (k *keyboard) listen(quit func()) func() {
	restore := func() {}

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		state, err := term.MakeRaw(fd)
		if err != nil {
			logrus.WithError(err).Warn("could not put the terminal into raw mode")
		} else {
			logrus.SetOutput(crlfWriter{w: os.Stderr})
			restore = func() {
				_ = term.Restore(fd, state)
				logrus.SetOutput(os.Stderr)
			}
		}
	}

	go k.read(os.Stdin, quit)
	return restore
}

// crlfWriter puts the carriage returns back for a terminal in raw mode
type crlfWriter struct {
	w io.Writer
}

func (c crlfWriter) Write(p []byte) (int, error) {
	if _, err := c.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}

	return len(p), nil
}

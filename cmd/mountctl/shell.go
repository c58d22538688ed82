package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/tvm-protocol/motionmount-go/pkg/discovery"
	"github.com/tvm-protocol/motionmount-go/pkg/mount"
	"github.com/tvm-protocol/motionmount-go/pkg/state"
)

// shell is the interactive command loop around one Mount session.
type shell struct {
	rl  *readline.Instance
	cfg mount.Config

	m        *mount.Mount
	listener state.Handle
	watching bool
}

func newShell(cfg mount.Config) (*shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "mount> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	return &shell{rl: rl, cfg: cfg}, nil
}

// run reads and dispatches commands until EOF or quit.
func (s *shell) run() {
	defer s.rl.Close()

	s.printHelp()

	for {
		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			s.disconnect()
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			s.printHelp()

		case "discover", "d":
			s.cmdDiscover(args)

		case "connect", "c":
			s.cmdConnect(args)

		case "disconnect":
			s.disconnect()

		case "status", "s":
			s.cmdStatus()

		case "update", "u":
			s.cmdUpdate()

		case "name":
			s.cmdName(args)

		case "presets":
			s.cmdPresets()

		case "preset", "p":
			s.cmdPreset(args)

		case "position", "pos":
			s.cmdPosition(args)

		case "extension", "ext":
			s.cmdExtension(args)

		case "turn":
			s.cmdTurn(args)

		case "auth":
			s.cmdAuth(args)

		case "watch", "w":
			s.cmdWatch(args)

		case "quit", "exit", "q":
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			s.disconnect()
			return

		default:
			fmt.Fprintf(s.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func (s *shell) printHelp() {
	fmt.Fprintln(s.rl.Stdout(), `
MotionMount Commands:
  Connection:
    discover [seconds]    - Browse the local network for mounts
    connect [host:port]   - Connect (default: configured address)
    disconnect            - Close the session

  Mount:
    status                - Show cached device state
    update                - Refresh position from the device
    name [new-name]       - Show or change the device name
    presets               - List stored presets
    preset <index>        - Move to a preset (0 = Wall)
    position <ext> <turn> - Move to an explicit position
    extension <0..100>    - Move the extension axis
    turn <-100..100>      - Move the turn axis
    auth <pin>            - Authenticate with a pin
    watch on|off          - Print device state on every notification

  quit                    - Exit`)
}

func (s *shell) cmdDiscover(args []string) {
	seconds := 5
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			fmt.Fprintf(s.rl.Stdout(), "Invalid duration: %s\n", args[0])
			return
		}
		seconds = n
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(seconds)*time.Second)
	defer cancel()

	browser := discovery.NewBrowser(discovery.BrowserConfig{})
	found, err := browser.Browse(ctx)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Discovery failed: %v\n", err)
		return
	}

	fmt.Fprintf(s.rl.Stdout(), "Browsing for %ds...\n", seconds)
	count := 0
	for svc := range found {
		count++
		fmt.Fprintf(s.rl.Stdout(), "  %s at %s\n", svc.InstanceName, svc.Addr())
	}
	if count == 0 {
		fmt.Fprintln(s.rl.Stdout(), "No mounts found")
	}
}

func (s *shell) cmdConnect(args []string) {
	address := s.cfg.Address
	if len(args) > 0 {
		address = args[0]
	}
	if address == "" {
		fmt.Fprintln(s.rl.Stdout(), "No address: connect <host:port> or set one in the config")
		return
	}
	if s.m != nil {
		fmt.Fprintln(s.rl.Stdout(), "Already connected; disconnect first")
		return
	}

	cfg := s.cfg
	cfg.Address = address
	m := mount.New(cfg)

	fmt.Fprintf(s.rl.Stdout(), "Connecting to %s...\n", address)
	if err := m.Connect(context.Background()); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Connect failed: %v\n", err)
		return
	}

	s.m = m
	if name, ok := m.Name(); ok {
		fmt.Fprintf(s.rl.Stdout(), "Connected to %q\n", name)
	} else {
		fmt.Fprintln(s.rl.Stdout(), "Connected")
	}
	if !m.IsAuthenticated() {
		fmt.Fprintln(s.rl.Stdout(), "Device requires authentication (see 'auth')")
	}
}

func (s *shell) disconnect() {
	if s.m == nil {
		return
	}
	if s.watching {
		s.m.RemoveListener(s.listener)
		s.watching = false
	}
	s.m.Disconnect()
	s.m = nil
	fmt.Fprintln(s.rl.Stdout(), "Disconnected")
}

func (s *shell) connected() *mount.Mount {
	if s.m == nil {
		fmt.Fprintln(s.rl.Stdout(), "Not connected (see 'connect')")
		return nil
	}
	return s.m
}

func (s *shell) cmdStatus() {
	m := s.connected()
	if m == nil {
		return
	}

	out := s.rl.Stdout()
	fmt.Fprintf(out, "Session:    %s\n", m.State())
	if name, ok := m.Name(); ok {
		fmt.Fprintf(out, "Name:       %s\n", name)
	}
	if mac, ok := m.MAC(); ok {
		fmt.Fprintf(out, "MAC:        % x\n", mac)
	}
	if ext, ok := m.Extension(); ok {
		fmt.Fprintf(out, "Extension:  %d\n", ext)
	}
	if turn, ok := m.Turn(); ok {
		fmt.Fprintf(out, "Turn:       %d\n", turn)
	}
	if moving, ok := m.IsMoving(); ok {
		fmt.Fprintf(out, "Moving:     %t\n", moving)
	}
	if errStatus, ok := m.ErrorStatus(); ok {
		fmt.Fprintf(out, "Errors:     %#x\n", errStatus)
	}
	fmt.Fprintf(out, "Authorized: %t\n", m.IsAuthenticated())
}

func (s *shell) cmdUpdate() {
	m := s.connected()
	if m == nil {
		return
	}
	if err := m.UpdatePosition(context.Background()); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Update failed: %v\n", err)
		return
	}
	ext, _ := m.Extension()
	turn, _ := m.Turn()
	fmt.Fprintf(s.rl.Stdout(), "Extension %d, turn %d\n", ext, turn)
}

func (s *shell) cmdName(args []string) {
	m := s.connected()
	if m == nil {
		return
	}

	if len(args) == 0 {
		name, err := m.GetName(context.Background())
		if err != nil {
			fmt.Fprintf(s.rl.Stdout(), "Failed: %v\n", err)
			return
		}
		fmt.Fprintf(s.rl.Stdout(), "Name: %s\n", name)
		return
	}

	name := strings.Join(args, " ")
	if err := m.SetName(context.Background(), name); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "Name set to %q\n", name)
}

func (s *shell) cmdPresets() {
	m := s.connected()
	if m == nil {
		return
	}

	presets, err := m.Presets(context.Background())
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Failed: %v\n", err)
		return
	}
	for _, p := range presets {
		fmt.Fprintf(s.rl.Stdout(), "  %d: %-16s extension %3d, turn %4d\n",
			p.Index, p.Name, p.Extension, p.Turn)
	}
}

func (s *shell) cmdPreset(args []string) {
	m := s.connected()
	if m == nil {
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: preset <index>")
		return
	}
	index, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid index: %s\n", args[0])
		return
	}
	if err := m.GoToPreset(context.Background(), index); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "Moving to preset %d\n", index)
}

func (s *shell) cmdPosition(args []string) {
	m := s.connected()
	if m == nil {
		return
	}
	if len(args) != 2 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: position <extension> <turn>")
		return
	}
	ext, err1 := strconv.Atoi(args[0])
	turn, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		fmt.Fprintln(s.rl.Stdout(), "Usage: position <extension> <turn>")
		return
	}
	if err := m.GoToPosition(context.Background(), ext, turn); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "Moving to extension %d, turn %d\n", ext, turn)
}

func (s *shell) cmdExtension(args []string) {
	m := s.connected()
	if m == nil {
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: extension <0..100>")
		return
	}
	v, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid value: %s\n", args[0])
		return
	}
	if err := m.SetExtension(context.Background(), v); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "Moving extension to %d\n", v)
}

func (s *shell) cmdTurn(args []string) {
	m := s.connected()
	if m == nil {
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: turn <-100..100>")
		return
	}
	v, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid value: %s\n", args[0])
		return
	}
	if err := m.SetTurn(context.Background(), v); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "Moving turn to %d\n", v)
}

func (s *shell) cmdAuth(args []string) {
	m := s.connected()
	if m == nil {
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: auth <pin>")
		return
	}
	pin, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid pin: %s\n", args[0])
		return
	}

	if ok, backoff := m.CanAuthenticate(); !ok {
		fmt.Fprintf(s.rl.Stdout(), "Too many failed attempts; wait %v\n", backoff)
		return
	}
	if err := m.Authenticate(context.Background(), pin); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Failed: %v\n", err)
		return
	}
	if m.IsAuthenticated() {
		fmt.Fprintln(s.rl.Stdout(), "Authenticated")
	} else {
		fmt.Fprintln(s.rl.Stdout(), "Wrong pin")
	}
}

func (s *shell) cmdWatch(args []string) {
	m := s.connected()
	if m == nil {
		return
	}
	if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
		fmt.Fprintln(s.rl.Stdout(), "Usage: watch on|off")
		return
	}

	if args[0] == "off" {
		if s.watching {
			m.RemoveListener(s.listener)
			s.watching = false
		}
		fmt.Fprintln(s.rl.Stdout(), "Watch off")
		return
	}

	if s.watching {
		return
	}
	s.listener = m.AddListener(func() {
		ext, _ := m.Extension()
		turn, _ := m.Turn()
		moving, _ := m.IsMoving()
		fmt.Fprintf(s.rl.Stdout(), "\r[update] extension %d, turn %d, moving %t\n",
			ext, turn, moving)
	})
	s.watching = true
	fmt.Fprintln(s.rl.Stdout(), "Watch on")
}
